package firebase

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"

	"moneytracker/internal/shared/auth"
)

// AuthVerifier implements auth.TokenVerifier with Firebase ID tokens.
type AuthVerifier struct {
	client *fbauth.Client
}

func NewAuthVerifier(ctx context.Context, app *firebase.App) (*AuthVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return &AuthVerifier{client: client}, nil
}

func (v *AuthVerifier) Verify(ctx context.Context, token string) (*auth.VerifiedToken, error) {
	decoded, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, token)
	if err != nil {
		return nil, classify(err)
	}

	email, _ := decoded.Claims["email"].(string)
	return &auth.VerifiedToken{UID: decoded.UID, Email: email}, nil
}

// classify maps Firebase verification errors onto gate failure kinds. The
// expired and revoked checks run first because IsIDTokenInvalid also
// matches them.
func classify(err error) *auth.VerifyError {
	switch {
	case fbauth.IsIDTokenExpired(err):
		return &auth.VerifyError{Kind: auth.TokenExpired, Err: err}
	case fbauth.IsIDTokenRevoked(err):
		return &auth.VerifyError{Kind: auth.TokenRevoked, Err: err}
	case fbauth.IsUserDisabled(err):
		return &auth.VerifyError{Kind: auth.TokenInvalidOther, Err: err}
	case fbauth.IsIDTokenInvalid(err), isMalformed(err):
		return &auth.VerifyError{
			Kind:        auth.TokenMalformed,
			CustomToken: strings.Contains(err.Error(), "custom token"),
			Err:         err,
		}
	default:
		return &auth.VerifyError{Kind: auth.TokenInvalidOther, Err: err}
	}
}

// isMalformed catches structural errors the SDK returns without an error
// code, such as a wrong segment count.
func isMalformed(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "custom token") ||
		strings.Contains(msg, "incorrect number of segments") ||
		strings.Contains(msg, "id token must be a non-empty string")
}
