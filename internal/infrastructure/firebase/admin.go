package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
)

// Admin wraps the user management calls used by the admin CLI.
type Admin struct {
	client *fbauth.Client
}

func NewAdmin(ctx context.Context, app *firebase.App) (*Admin, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return &Admin{client: client}, nil
}

// EnsureUser returns the uid for email, creating the account when it does
// not exist yet.
func (a *Admin) EnsureUser(ctx context.Context, email, password, displayName string) (string, bool, error) {
	existing, err := a.client.GetUserByEmail(ctx, email)
	if err == nil {
		return existing.UID, false, nil
	}
	if !fbauth.IsUserNotFound(err) {
		return "", false, fmt.Errorf("failed to look up user: %w", err)
	}

	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName).
		EmailVerified(true)
	created, err := a.client.CreateUser(ctx, params)
	if err != nil {
		return "", false, fmt.Errorf("failed to create user: %w", err)
	}
	return created.UID, true, nil
}

// CustomToken mints a custom token carrying the email as a developer claim.
// Clients exchange it for an ID token; development servers with unverified
// tokens enabled accept it directly.
func (a *Admin) CustomToken(ctx context.Context, uid, email string) (string, error) {
	token, err := a.client.CustomTokenWithClaims(ctx, uid, map[string]any{"email": email})
	if err != nil {
		return "", fmt.Errorf("failed to mint custom token: %w", err)
	}
	return token, nil
}
