package firebase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	fb "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"parcel-service/internal/entities"
	"parcel-service/internal/pkg/config"
)

type IdentityGateway struct {
	verifier tokenVerifier
}

// New builds the Firebase Admin auth client from a credentials file or a
// base64 encoded service account key.
func New(ctx context.Context, cfg *config.Firebase) (*IdentityGateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("firebase config: %w", err)
	}

	var opt option.ClientOption
	if cfg.ServiceKey != "" {
		credentials, err := base64.StdEncoding.DecodeString(cfg.ServiceKey)
		if err != nil {
			return nil, fmt.Errorf("decode FB_SERVICE_KEY: %w", err)
		}
		opt = option.WithCredentialsJSON(credentials)
	} else {
		opt = option.WithCredentialsFile(cfg.CredentialsFile)
	}

	var appConfig *fb.Config
	if cfg.ProjectID != "" {
		appConfig = &fb.Config{ProjectID: cfg.ProjectID}
	}

	app, err := fb.NewApp(ctx, appConfig, opt)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}

	return NewWithVerifier(client), nil
}

func NewWithVerifier(verifier tokenVerifier) *IdentityGateway {
	return &IdentityGateway{
		verifier: verifier,
	}
}

// Verify checks the ID token signature and expiry and returns the principal.
// Any verification failure is reported as ErrInvalidToken.
func (g *IdentityGateway) Verify(ctx context.Context, idToken string) (*entities.Identity, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return nil, ErrEmptyToken
	}

	token, err := g.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	email, _ := token.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrMissingEmail
	}
	name, _ := token.Claims["name"].(string)

	return &entities.Identity{
		UID:    token.UID,
		Email:  email,
		Name:   name,
		Claims: token.Claims,
	}, nil
}
