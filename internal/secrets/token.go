package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups this app's secrets in the OS keychain.
	KeyringService = "leadengine"

	// TokenEnv is the environment variable and keychain account name for
	// the Apify bearer token.
	TokenEnv = "APIFY_API_TOKEN"

	envFile = ".env.local"
)

// ErrTokenNotFound means no Apify token could be resolved anywhere. A
// missing token is a configuration error, never a pipeline error.
var ErrTokenNotFound = errors.New("missing " + TokenEnv)

// APIFYToken resolves the provider token: process environment first, then
// .env.local in the data dir, then the OS keychain.
func APIFYToken(dataDir string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(TokenEnv)); v != "" {
		return v, nil
	}

	if vals, err := godotenv.Read(filepath.Join(dataDir, envFile)); err == nil {
		if v := strings.TrimSpace(vals[TokenEnv]); v != "" {
			return v, nil
		}
	}

	if v, err := keyring.Get(KeyringService, TokenEnv); err == nil && strings.TrimSpace(v) != "" {
		return v, nil
	}

	return "", ErrTokenNotFound
}

func SetAPIFYToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, TokenEnv, token)
}

func DeleteAPIFYToken() error {
	return keyring.Delete(KeyringService, TokenEnv)
}
