package firebase

import (
	"errors"
	"testing"

	"moneytracker/internal/shared/auth"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   auth.FailureKind
		wantCustom bool
	}{
		{
			name:       "custom token passed as id token",
			err:        errors.New("expected an ID token but got a custom token"),
			wantKind:   auth.TokenMalformed,
			wantCustom: true,
		},
		{
			name:     "wrong segment count",
			err:      errors.New("incorrect number of segments"),
			wantKind: auth.TokenMalformed,
		},
		{
			name:     "unclassified failure",
			err:      errors.New("failed to fetch public keys"),
			wantKind: auth.TokenInvalidOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if got.CustomToken != tt.wantCustom {
				t.Errorf("CustomToken = %v, want %v", got.CustomToken, tt.wantCustom)
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error should wrap the original")
			}
		})
	}
}

func TestTopicForUser(t *testing.T) {
	if got := TopicForUser("abc123"); got != "user-abc123" {
		t.Errorf("TopicForUser() = %q", got)
	}
}
