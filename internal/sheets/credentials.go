package sheets

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/ledgerline/soa/internal/common"
)

// ServiceAccountKey is the subset of a Google service account key file we
// validate before handing the file to the OAuth2 JWT config.
type ServiceAccountKey struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	ProjectID   string `json:"project_id"`
}

func (k *ServiceAccountKey) missingFields() []string {
	var missing []string
	if k.ClientEmail == "" {
		missing = append(missing, "client_email")
	}
	if k.PrivateKey == "" {
		missing = append(missing, "private_key")
	}
	if k.ProjectID == "" {
		missing = append(missing, "project_id")
	}
	return missing
}

// DiscoverCredentials finds the first usable service account key file. An
// explicit path in the config wins; otherwise the candidate paths are
// probed in order. Files that are unreadable, malformed, or missing
// required fields are skipped with a warning.
func DiscoverCredentials(config Config, logger *slog.Logger) (string, *ServiceAccountKey, error) {
	if logger == nil {
		logger = slog.Default()
	}

	candidates := config.CredentialPaths
	if config.CredentialsPath != "" {
		candidates = []string{config.CredentialsPath}
	}

	logger.Info("searching for Google Sheets credentials", "candidates", len(candidates))

	for _, path := range candidates {
		key, err := readServiceAccountKey(path)
		if err != nil {
			if !os.IsNotExist(err) {
				logger.Warn("skipping credentials file", "path", path, "error", err)
			}
			continue
		}

		logger.Info("found credentials file",
			"path", path,
			"service_account", key.ClientEmail)
		return path, key, nil
	}

	return "", nil, fmt.Errorf("%w: ensure a service account key exists at one of the configured paths and the spreadsheet is shared with its client_email", common.ErrNoCredentials)
}

func readServiceAccountKey(path string) (*ServiceAccountKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var key ServiceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if missing := key.missingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("credentials file missing fields: %v", missing)
	}

	return &key, nil
}
