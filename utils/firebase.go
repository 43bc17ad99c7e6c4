// utils/firebase.go
package utils

import (
	"context"
	"fmt"
	"os"

	"pizzeria/config"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// FirebaseInit initializes the Firebase App. Without a credentials file it falls back to application default credentials.
func FirebaseInit(ctx context.Context) (*firebase.App, error) {
	var opts []option.ClientOption
	credPath := config.AppConfig.CredentialsFile
	if credPath != "" {
		if _, err := os.Stat(credPath); err == nil {
			opts = append(opts, option.WithCredentialsFile(credPath))
		} else {
			GetLogger().Sugar().Warnf("firebase: credentials file %s not found, using default credentials", credPath)
		}
	}

	app, err := firebase.NewApp(ctx, config.AppConfig.FirebaseConfig(), opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	return app, nil
}
