// Package mocks provides mock implementations for testing the role and profile services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	mockRepo := mocks.NewMockCargoRepository(ctrl)
//	mockRepo.EXPECT().ListAll(gomock.Any()).Return(cargos, nil)
package mocks

// Generate mock for CargoRepository interface from internal/core package.
// This creates MockCargoRepository with methods for all CargoRepository interface methods:
// ListAll, Create, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cargo_repository_mock.go github.com/profSauloRenato/agenda-setor-vespasiano/internal/core CargoRepository

// Generate mock for UserProfileRepository interface from internal/core package.
// This creates MockUserProfileRepository with methods for all UserProfileRepository interface methods:
// GetWithRoles, Create
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_profile_repository_mock.go github.com/profSauloRenato/agenda-setor-vespasiano/internal/core UserProfileRepository

// Generate mock for LocationRepository interface from internal/core package.
// This creates MockLocationRepository with methods for all LocationRepository interface methods:
// GetByID
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=location_repository_mock.go github.com/profSauloRenato/agenda-setor-vespasiano/internal/core LocationRepository
