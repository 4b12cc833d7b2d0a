package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"moneytracker/internal/shared/config"
)

// NewApp initializes a Firebase app from a credentials file or, when no
// file is configured, from the inline service account fields. Callers
// should check cfg.Configured first.
func NewApp(ctx context.Context, cfg config.FirebaseConfig) (*firebase.App, error) {
	var opt option.ClientOption
	var fbConfig *firebase.Config

	if cfg.CredentialsFile != "" {
		opt = option.WithCredentialsFile(cfg.CredentialsFile)
	} else {
		creds, err := cfg.ServiceAccountJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode firebase credentials: %w", err)
		}
		opt = option.WithCredentialsJSON(creds)
		fbConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	return app, nil
}
