package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v4"
)

type stubVerifier struct {
	verifyFunc func(ctx context.Context, token string) (*VerifiedToken, error)
	calls      int
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (*VerifiedToken, error) {
	s.calls++
	return s.verifyFunc(ctx, token)
}

func customToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-checked"))
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}
	return signed
}

func TestGate_UnconfiguredVerifier(t *testing.T) {
	t.Run("development gets the dev principal", func(t *testing.T) {
		g := NewGate(GateConfig{Development: true})

		p, err := g.Authenticate(context.Background(), "")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if p != DevPrincipal {
			t.Errorf("principal = %+v, want %+v", p, DevPrincipal)
		}
	})

	t.Run("production fails closed", func(t *testing.T) {
		g := NewGate(GateConfig{})

		_, err := g.Authenticate(context.Background(), "Bearer abc")
		var f *Failure
		if !errors.As(err, &f) {
			t.Fatalf("expected *Failure, got %v", err)
		}
		if f.Kind != NotConfigured {
			t.Errorf("kind = %q, want %q", f.Kind, NotConfigured)
		}
		if f.Kind.Status() != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", f.Kind.Status())
		}
	})
}

func TestGate_HeaderChecks(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantKind FailureKind
	}{
		{"missing header", "", MissingCredential},
		{"basic scheme", "Basic dXNlcjpwYXNz", MissingCredential},
		{"lowercase bearer", "bearer abc", MissingCredential},
		{"no separator", "Bearerabc", MissingCredential},
		{"empty token", "Bearer ", EmptyCredential},
		{"whitespace token", "Bearer    ", EmptyCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &stubVerifier{verifyFunc: func(ctx context.Context, token string) (*VerifiedToken, error) {
				return &VerifiedToken{UID: "u1"}, nil
			}}
			g := NewGate(GateConfig{Verifier: v})

			_, err := g.Authenticate(context.Background(), tt.header)
			var f *Failure
			if !errors.As(err, &f) {
				t.Fatalf("expected *Failure, got %v", err)
			}
			if f.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", f.Kind, tt.wantKind)
			}
			if f.Kind.Status() != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", f.Kind.Status())
			}
			if v.calls != 0 {
				t.Errorf("verifier called %d times, want 0", v.calls)
			}
		})
	}
}

func TestGate_VerifiedToken(t *testing.T) {
	v := &stubVerifier{verifyFunc: func(ctx context.Context, token string) (*VerifiedToken, error) {
		if token != "good-token" {
			t.Errorf("verifier got token %q", token)
		}
		return &VerifiedToken{UID: "firebase-uid", Email: "ana@example.com"}, nil
	}}
	g := NewGate(GateConfig{Verifier: v})

	p, err := g.Authenticate(context.Background(), "Bearer good-token")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if p.ID != "firebase-uid" || p.Email != "ana@example.com" {
		t.Errorf("principal = %+v", p)
	}
}

func TestGate_VerifiedTokenWithoutEmail(t *testing.T) {
	v := &stubVerifier{verifyFunc: func(ctx context.Context, token string) (*VerifiedToken, error) {
		return &VerifiedToken{UID: "phone-user"}, nil
	}}
	g := NewGate(GateConfig{Verifier: v})

	p, err := g.Authenticate(context.Background(), "Bearer t")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if p.Email != "" {
		t.Errorf("Email = %q, want empty", p.Email)
	}
}

func TestGate_VerificationFailures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantKind    FailureKind
		wantMessage string
	}{
		{
			name:        "expired",
			err:         &VerifyError{Kind: TokenExpired, Err: errors.New("ID token has expired")},
			wantKind:    TokenExpired,
			wantMessage: "Authentication token has expired. Please log in again.",
		},
		{
			name:        "malformed",
			err:         &VerifyError{Kind: TokenMalformed, Err: errors.New("incorrect number of segments")},
			wantKind:    TokenMalformed,
			wantMessage: "Invalid authentication token format.",
		},
		{
			name:        "revoked",
			err:         &VerifyError{Kind: TokenRevoked, Err: errors.New("ID token has been revoked")},
			wantKind:    TokenRevoked,
			wantMessage: "Authentication token has been revoked. Please log in again.",
		},
		{
			name:        "unclassified provider error",
			err:         errors.New("certificate fetch failed"),
			wantKind:    TokenInvalidOther,
			wantMessage: "Invalid or expired authentication token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &stubVerifier{verifyFunc: func(ctx context.Context, token string) (*VerifiedToken, error) {
				return nil, tt.err
			}}
			g := NewGate(GateConfig{Verifier: v, Development: true})

			_, err := g.Authenticate(context.Background(), "Bearer some-token")
			var f *Failure
			if !errors.As(err, &f) {
				t.Fatalf("expected *Failure, got %v", err)
			}
			if f.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", f.Kind, tt.wantKind)
			}
			if f.Kind.Message() != tt.wantMessage {
				t.Errorf("message = %q, want %q", f.Kind.Message(), tt.wantMessage)
			}
			if !errors.Is(err, tt.err) {
				t.Error("failure should wrap the verifier error")
			}
		})
	}
}

func TestGate_UnverifiedCustomToken(t *testing.T) {
	token := customToken(t, jwt.MapClaims{
		"uid":    "custom-uid",
		"claims": map[string]any{"email": "custom@example.com"},
	})
	customErr := &VerifyError{Kind: TokenMalformed, CustomToken: true, Err: errors.New("expected an ID token but got a custom token")}

	tests := []struct {
		name            string
		development     bool
		allowUnverified bool
		wantErr         bool
	}{
		{name: "enabled in development", development: true, allowUnverified: true, wantErr: false},
		{name: "flag off in development", development: true, allowUnverified: false, wantErr: true},
		{name: "flag on in production", development: false, allowUnverified: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &stubVerifier{verifyFunc: func(ctx context.Context, token string) (*VerifiedToken, error) {
				return nil, customErr
			}}
			g := NewGate(GateConfig{Verifier: v, Development: tt.development, AllowUnverifiedTokens: tt.allowUnverified})

			p, err := g.Authenticate(context.Background(), "Bearer "+token)
			if tt.wantErr {
				var f *Failure
				if !errors.As(err, &f) || f.Kind != TokenMalformed {
					t.Fatalf("expected malformed failure, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
			if p.ID != "custom-uid" || p.Email != "custom@example.com" {
				t.Errorf("principal = %+v", p)
			}
		})
	}
}

func TestGate_UnverifiedCustomTokenDefaults(t *testing.T) {
	token := customToken(t, jwt.MapClaims{"aud": "identitytoolkit"})
	v := &stubVerifier{verifyFunc: func(ctx context.Context, token string) (*VerifiedToken, error) {
		return nil, &VerifyError{Kind: TokenMalformed, CustomToken: true}
	}}
	g := NewGate(GateConfig{Verifier: v, Development: true, AllowUnverifiedTokens: true})

	p, err := g.Authenticate(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if p.ID != "dev-user" || p.Email != "dev@example.com" {
		t.Errorf("principal = %+v, want dev-user/dev@example.com", p)
	}
}

func TestGate_UnverifiedDecodeFailureKeepsOriginalError(t *testing.T) {
	v := &stubVerifier{verifyFunc: func(ctx context.Context, token string) (*VerifiedToken, error) {
		return nil, &VerifyError{Kind: TokenMalformed, CustomToken: true}
	}}
	g := NewGate(GateConfig{Verifier: v, Development: true, AllowUnverifiedTokens: true})

	_, err := g.Authenticate(context.Background(), "Bearer not-a-jwt")
	var f *Failure
	if !errors.As(err, &f) || f.Kind != TokenMalformed {
		t.Fatalf("expected malformed failure, got %v", err)
	}
}

func TestPrincipalContext(t *testing.T) {
	if _, ok := PrincipalFromContext(context.Background()); ok {
		t.Error("empty context should not carry a principal")
	}

	ctx := WithPrincipal(context.Background(), Principal{ID: "u1", Email: "a@b.c"})
	p, ok := PrincipalFromContext(ctx)
	if !ok || p.ID != "u1" {
		t.Errorf("PrincipalFromContext() = %+v, %v", p, ok)
	}

	ctx = WithPrincipal(context.Background(), Principal{})
	if _, ok := PrincipalFromContext(ctx); ok {
		t.Error("principal without ID should be rejected")
	}
}
