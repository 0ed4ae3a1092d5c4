package oidc

// Package oidc provides the OIDC/OAuth2 identity gateway used for password logins.

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	domainauth "github.com/profSauloRenato/agenda-setor-vespasiano/internal/domain/auth"
	"github.com/profSauloRenato/agenda-setor-vespasiano/internal/ports"
	"golang.org/x/oauth2"
)

var _ ports.IdentityGateway = (*Gateway)(nil)

const (
	defaultSessionTTL = 8 * time.Hour
	maxErrorBody      = 64 << 10
)

// GatewayConfig holds configuration for the OIDC gateway.
type GatewayConfig struct {
	ClientID     string
	ClientSecret string
	Scope        string
	DiscoveryURL string
	// SignupURL accepts POSTed {"email","password"} documents; empty disables CreateIdentity.
	SignupURL  string
	HTTPClient *http.Client // Optional, defaults to a client with a 30s timeout
	Sessions   ports.SessionStore
	SessionTTL time.Duration // Used when the token response carries no expiry
}

// DiscoveryDocument represents the OIDC discovery document.
type DiscoveryDocument struct {
	Issuer                 string   `json:"issuer"`
	AuthorizationEndpoint  string   `json:"authorization_endpoint"`
	TokenEndpoint          string   `json:"token_endpoint"`
	UserinfoEndpoint       string   `json:"userinfo_endpoint"`
	JwksURI                string   `json:"jwks_uri"`
	IDTokenSigningAlgs     []string `json:"id_token_signing_alg_values_supported,omitempty"`
	GrantTypesSupported    []string `json:"grant_types_supported,omitempty"`
	ResponseTypesSupported []string `json:"response_types_supported,omitempty"`
}

// Gateway implements ports.IdentityGateway using the OAuth2 resource owner password grant
// against an OIDC provider. The verified subject becomes the identity id.
type Gateway struct {
	config     *oauth2.Config
	signupURL  string
	httpClient *http.Client
	sessions   ports.SessionStore
	sessionTTL time.Duration

	// go-oidc provider and verifier
	oidcProvider *gooidc.Provider
	verifier     *gooidc.IDTokenVerifier
}

// NewGateway performs discovery and builds the gateway.
func NewGateway(ctx context.Context, cfg GatewayConfig) (*Gateway, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session store is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	g := &Gateway{
		signupURL:  cfg.SignupURL,
		httpClient: httpClient,
		sessions:   cfg.Sessions,
		sessionTTL: ttl,
	}

	// Single discovery fetch; the key set reuses this client for later JWKS refreshes.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(cfg.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}
	g.oidcProvider = op
	g.verifier = op.Verifier(&gooidc.Config{ClientID: cfg.ClientID})

	g.config = &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       strings.Fields(cfg.Scope),
		Endpoint:     op.Endpoint(),
	}
	return g, nil
}

// VerifyCredentials exchanges email/secret for tokens and opens a session for the token subject.
func (g *Gateway) VerifyCredentials(ctx context.Context, email, secret string) (domainauth.Session, error) {
	httpCtx := context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	tok, err := g.config.PasswordCredentialsToken(httpCtx, email, secret)
	if err != nil {
		return domainauth.Session{}, tokenError(err)
	}

	claims, err := g.subjectClaims(httpCtx, tok)
	if err != nil {
		return domainauth.Session{}, err
	}
	if claims.Sub == "" {
		return domainauth.Session{}, &domainauth.GatewayError{Message: "token response has no subject"}
	}

	id, err := generateRandomString(32)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("generate session id: %w", err)
	}
	expiresAt := time.Now().Add(g.sessionTTL)
	if !tok.Expiry.IsZero() && tok.Expiry.Before(expiresAt) {
		expiresAt = tok.Expiry
	}
	sess := domainauth.Session{
		ID:         id,
		IdentityID: claims.Sub,
		Email:      firstNonEmpty(claims.Email, email),
		ExpiresAt:  expiresAt,
	}
	if err := g.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// CreateIdentity posts the new account to the signup endpoint and returns the issued id.
func (g *Gateway) CreateIdentity(ctx context.Context, email, secret string) (domainauth.Identity, error) {
	if g.signupURL == "" {
		return domainauth.Identity{}, &domainauth.GatewayError{
			Status:  http.StatusNotImplemented,
			Code:    "signup_disabled",
			Message: "registration is not enabled",
		}
	}

	body, err := json.Marshal(signupRequest{Email: email, Password: secret})
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("encode signup request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.signupURL, bytes.NewReader(body))
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("build signup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(g.config.ClientID, g.config.ClientSecret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("signup request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("read signup response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domainauth.Identity{}, responseError(resp.StatusCode, raw)
	}

	var out signupResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return domainauth.Identity{}, fmt.Errorf("decode signup response: %w", err)
	}
	ident := out.identity()
	if ident.ID == "" {
		return domainauth.Identity{}, &domainauth.GatewayError{
			Status:  resp.StatusCode,
			Message: "signup response has no identity id",
		}
	}
	if ident.Email == "" {
		ident.Email = email
	}
	return ident, nil
}

// CurrentSession returns the stored session, treating missing or expired ones as absent.
func (g *Gateway) CurrentSession(ctx context.Context, sessionID string) (domainauth.Session, bool, error) {
	if sessionID == "" {
		return domainauth.Session{}, false, nil
	}
	sess, err := g.sessions.Get(ctx, sessionID)
	if errors.Is(err, domainauth.ErrSessionNotFound) {
		return domainauth.Session{}, false, nil
	}
	if err != nil {
		return domainauth.Session{}, false, err
	}
	return sess, true, nil
}

// EndSession deletes the session. Unknown ids are ignored.
func (g *Gateway) EndSession(ctx context.Context, sessionID string) error {
	return g.sessions.Delete(ctx, sessionID)
}

type subjectClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Mail  string `json:"mail"`
}

func (g *Gateway) subjectClaims(ctx context.Context, tok *oauth2.Token) (subjectClaims, error) {
	var c subjectClaims
	if !g.hasOpenIDScope() {
		ui, err := g.oidcProvider.UserInfo(ctx, oauth2.StaticTokenSource(tok))
		if err != nil {
			return c, fmt.Errorf("fetch user info: %w", err)
		}
		if err := ui.Claims(&c); err != nil {
			return c, fmt.Errorf("decode user info: %w", err)
		}
		c.Email = firstNonEmpty(c.Email, c.Mail)
		return c, nil
	}

	rawID, err := getIDTokenFromToken(tok)
	if err != nil {
		return c, err
	}
	idTok, err := g.verifier.Verify(ctx, rawID)
	if err != nil {
		return c, fmt.Errorf("verify id_token: %w", err)
	}
	if err := idTok.Claims(&c); err != nil {
		return c, fmt.Errorf("parse id_token claims: %w", err)
	}
	c.Sub = firstNonEmpty(c.Sub, idTok.Subject)
	c.Email = firstNonEmpty(c.Email, c.Mail)
	return c, nil
}

// tokenError converts a token endpoint failure into a GatewayError, leaving transport
// and context errors wrapped so callers can still match them.
func tokenError(err error) error {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		return fmt.Errorf("password grant: %w", err)
	}
	status := 0
	if re.Response != nil {
		status = re.Response.StatusCode
	}
	code := re.ErrorCode
	msg := re.ErrorDescription
	if code == "" && msg == "" {
		// Non-standard bodies (e.g. {"msg": ...}) are not parsed by oauth2.
		parsed := parseErrorBody(re.Body)
		code, msg = parsed.code(), parsed.message()
	}
	return &domainauth.GatewayError{
		Status:  status,
		Code:    code,
		Message: firstNonEmpty(msg, code, "token request failed"),
		Cause:   err,
	}
}

func responseError(status int, raw []byte) error {
	parsed := parseErrorBody(raw)
	return &domainauth.GatewayError{
		Status:  status,
		Code:    parsed.code(),
		Message: firstNonEmpty(parsed.message(), http.StatusText(status)),
	}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	ID    string `json:"id"`
	Sub   string `json:"sub"`
	Email string `json:"email"`
	User  *struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (r signupResponse) identity() domainauth.Identity {
	if r.User != nil && r.User.ID != "" {
		return domainauth.Identity{ID: r.User.ID, Email: r.User.Email}
	}
	return domainauth.Identity{ID: firstNonEmpty(r.ID, r.Sub), Email: r.Email}
}

// errorBody covers the error shapes returned by common identity providers.
type errorBody struct {
	Error            string `json:"error"`
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func parseErrorBody(raw []byte) errorBody {
	var b errorBody
	_ = json.Unmarshal(raw, &b)
	return b
}

func (b errorBody) code() string    { return firstNonEmpty(b.ErrorCode, b.Error) }
func (b errorBody) message() string { return firstNonEmpty(b.ErrorDescription, b.Msg, b.Message) }

// firstNonEmpty returns the first non-empty string from vals, or empty string if none.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// generateRandomString generates a cryptographically secure URL-safe random string of exact length.
func generateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	b := make([]byte, (length*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:length], nil
}

// hasOpenIDScope reports whether the configured scopes include "openid".
func (g *Gateway) hasOpenIDScope() bool {
	for _, sc := range g.config.Scopes {
		if sc == "openid" {
			return true
		}
	}
	return false
}

// getIDTokenFromToken extracts the id_token from oauth2.Token.
func getIDTokenFromToken(tok *oauth2.Token) (string, error) {
	if tok == nil {
		return "", errors.New("nil token")
	}
	s, ok := tok.Extra("id_token").(string)
	if !ok || s == "" {
		return "", errors.New("missing id_token in token response")
	}
	return s, nil
}
