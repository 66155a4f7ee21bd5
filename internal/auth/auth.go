// Package auth loads the search index and Rover API credentials and builds
// the request headers the upstream services expect.
package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/kelsos/rover-sync/internal/logger"
	"github.com/kelsos/rover-sync/internal/models"
	"github.com/kelsos/rover-sync/internal/utils"
)

const (
	EnvElasticCloudID    = "ELASTIC_SEARCH_CLOUD_ID"
	EnvElasticUsername   = "ELASTIC_USERNAME"
	EnvElasticPassword   = "ELASTIC_PASSWORD"
	EnvYieldXCredentials = "YIELDX_CREDENTIALS_PATH"
	bearerPrefix         = "Bearer "
	contentTypeJSON      = "application/json"
)

// Header carries the Authorization value attached to every Rover API call
type Header struct {
	Authorization string
}

// ToMap renders the header the way outbound requests send it
func (h Header) ToMap() map[string]string {
	return map[string]string{
		"Content-Type":  contentTypeJSON,
		"Authorization": h.Authorization,
	}
}

type ElasticSearchCredentials struct {
	CloudID  string
	Username string
	Password string
}

// Credentials is the token record stored in the YieldX credential file
type Credentials struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   string `json:"expires_in"`
	Scope       string `json:"scope"`
}

// CreateHeaders builds the bearer header from loaded credentials
func CreateHeaders(credentials Credentials) Header {
	return Header{
		Authorization: bearerPrefix + credentials.AccessToken,
	}
}

// LoadElasticSearchCredentials reads the search index credentials after loading dotenvPath
func LoadElasticSearchCredentials(dotenvPath string) (ElasticSearchCredentials, error) {
	if err := utils.LoadEnvFile(dotenvPath); err != nil {
		return ElasticSearchCredentials{}, err
	}

	values, missing := utils.RequireEnv(EnvElasticCloudID, EnvElasticUsername, EnvElasticPassword)
	if missing != "" {
		return ElasticSearchCredentials{}, fmt.Errorf("%w: environment variable %s is not set", models.ErrMissingConfiguration, missing)
	}

	return ElasticSearchCredentials{
		CloudID:  values[EnvElasticCloudID],
		Username: values[EnvElasticUsername],
		Password: values[EnvElasticPassword],
	}, nil
}

// LoadYieldXCredentials reads the credential file named by YIELDX_CREDENTIALS_PATH
func LoadYieldXCredentials(dotenvPath string) (Credentials, error) {
	if err := utils.LoadEnvFile(dotenvPath); err != nil {
		return Credentials{}, err
	}

	values, missing := utils.RequireEnv(EnvYieldXCredentials)
	if missing != "" {
		return Credentials{}, fmt.Errorf("%w: environment variable %s is not set", models.ErrMissingConfiguration, missing)
	}

	path := values[EnvYieldXCredentials]
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %w", models.ErrMalformedCredentialFile, err)
	}

	credentials, err := parseCredentials(data)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %s: %w", models.ErrMalformedCredentialFile, path, err)
	}

	logger.Debug("Loaded %s credentials with scope %q from %s", credentials.TokenType, credentials.Scope, path)
	return credentials, nil
}

// LoadHeaders loads the credential file and turns it into a Header
func LoadHeaders(dotenvPath string) (Header, error) {
	credentials, err := LoadYieldXCredentials(dotenvPath)
	if err != nil {
		return Header{}, err
	}
	return CreateHeaders(credentials), nil
}

// LoadCredentials loads everything needed to talk to the search index and the Rover APIs
func LoadCredentials(dotenvPath string) (ElasticSearchCredentials, Credentials, Header, error) {
	esCredentials, err := LoadElasticSearchCredentials(dotenvPath)
	if err != nil {
		return ElasticSearchCredentials{}, Credentials{}, Header{}, err
	}

	credentials, err := LoadYieldXCredentials(dotenvPath)
	if err != nil {
		return ElasticSearchCredentials{}, Credentials{}, Header{}, err
	}

	return esCredentials, credentials, CreateHeaders(credentials), nil
}

func parseCredentials(data []byte) (Credentials, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Credentials{}, fmt.Errorf("invalid JSON: %w", err)
	}

	fields := make(map[string]string, 4)
	for _, key := range []string{"access_token", "token_type", "expires_in", "scope"} {
		value, ok := raw[key]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return Credentials{}, fmt.Errorf("missing field %q", key)
		}

		text, err := scalarString(value)
		if err != nil {
			return Credentials{}, fmt.Errorf("field %q: %w", key, err)
		}
		fields[key] = text
	}

	return Credentials{
		AccessToken: fields["access_token"],
		TokenType:   fields["token_type"],
		ExpiresIn:   fields["expires_in"],
		Scope:       fields["scope"],
	}, nil
}

// scalarString accepts a JSON string or number; expires_in is numeric in most token responses
func scalarString(raw json.RawMessage) (string, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	number, err := decimal.NewFromString(string(bytes.TrimSpace(raw)))
	if err != nil {
		return "", fmt.Errorf("expected a string or number, got %s", raw)
	}
	return number.String(), nil
}
