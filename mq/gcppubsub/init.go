package gcppubsub

import (
	"fmt"
	"os"
)

// ProjectID resolves the GCP project from the environment.
func ProjectID() (string, error) {
	id := os.Getenv("GCP_PROJECT_ID")
	if id == "" {
		return "", fmt.Errorf("GCP_PROJECT_ID environment variable must be set")
	}
	return id, nil
}
