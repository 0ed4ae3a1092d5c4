//go:build tools
// +build tools

// Package tools pins development tool dependencies.
// mockgen is imported so its version follows go.mod; the remaining tools are
// installed globally via `go install`.
package tools

import (
	_ "go.uber.org/mock/mockgen"
)

// Development tools (install via `go install`):
//
// mockgen - regenerates internal/mocks (go generate ./internal/mocks)
//   Install: go install go.uber.org/mock/mockgen@v0.6.0
//   Docs: https://github.com/uber-go/mock
//
// golangci-lint - static checks run before merging
//   Install: go install github.com/golangci/golangci-lint/v2/cmd/golangci-lint@v2.4.0
//   Docs: https://golangci-lint.run
