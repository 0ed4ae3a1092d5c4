package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/profSauloRenato/agenda-setor-vespasiano/config"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/adapters/devauth"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/adapters/oidc"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/ports"
)

// ErrAuthNotConfigured is returned when the selected auth mode lacks required settings.
var ErrAuthNotConfigured = errors.New("identity gateway not configured")

// AuthConfig contains configuration for the identity gateway.
type AuthConfig struct {
	Auth     config.AuthConfig
	Sessions ports.SessionStore
	Logger   *slog.Logger
}

// BuildIdentityGateway creates the identity gateway for the configured auth mode.
//
//nolint:ireturn // callers only need the port; the concrete gateway depends on the mode.
func BuildIdentityGateway(ctx context.Context, cfg AuthConfig) (ports.IdentityGateway, error) {
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("%w: session store is required", ErrAuthNotConfigured)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildDevGateway(cfg, logger)
	case config.AuthModeOAuth:
		return buildOIDCGateway(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("%w: unknown auth mode %q", ErrAuthNotConfigured, cfg.Auth.Mode)
	}
}

func buildDevGateway(cfg AuthConfig, logger *slog.Logger) (*devauth.Gateway, error) {
	accounts, err := config.ParseDevAccounts(cfg.Auth.DevAuth.Accounts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthNotConfigured, err)
	}
	devAccounts := make([]devauth.Account, 0, len(accounts))
	for _, a := range accounts {
		devAccounts = append(devAccounts, devauth.Account{ID: a.ID, Email: a.Email, Password: a.Password})
	}

	gw, err := devauth.NewGateway(devauth.Config{
		Accounts:        devAccounts,
		Sessions:        cfg.Sessions,
		SessionDuration: cfg.Auth.SessionTTL,
	})
	if err != nil {
		return nil, err
	}
	logger.Warn("dev identity gateway enabled; do not use in production", "accounts", len(devAccounts))
	return gw, nil
}

func buildOIDCGateway(ctx context.Context, cfg AuthConfig, logger *slog.Logger) (*oidc.Gateway, error) {
	// Only enable when fully configured
	oauth := cfg.Auth.OAuth
	if !oauth.Configured() {
		logger.Warn("AuthModeOAuth selected but required config missing",
			"discovery_url_empty", oauth.DiscoveryURL == "",
			"client_id_empty", oauth.ClientID == "",
			"client_secret_empty", oauth.ClientSecret == "",
		)
		return nil, fmt.Errorf("%w: OAUTH_CLIENT_ID, OAUTH_CLIENT_SECRET and OAUTH_DISCOVERY_URL are required", ErrAuthNotConfigured)
	}

	gw, err := oidc.NewGateway(ctx, oidc.GatewayConfig{
		ClientID:     oauth.ClientID,
		ClientSecret: oauth.ClientSecret,
		Scope:        oauth.Scope,
		DiscoveryURL: oauth.DiscoveryURL,
		SignupURL:    oauth.SignupURL,
		Sessions:     cfg.Sessions,
		SessionTTL:   cfg.Auth.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("create OIDC gateway: %w", err)
	}
	if oauth.SignupURL == "" {
		logger.Info("OAUTH_SIGNUP_URL not set; registration disabled")
	}
	return gw, nil
}
