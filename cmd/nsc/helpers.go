package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/neuroscanhq/neuroscan/internal/classifier"
	"github.com/neuroscanhq/neuroscan/internal/history"
	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8000"

// resolveServer returns the classification server base URL from the
// --server flag, $NSC_SERVER, or the default, in that order.
func resolveServer(cmd *cobra.Command) string {
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		return strings.TrimRight(server, "/")
	}
	if server := os.Getenv("NSC_SERVER"); server != "" {
		return strings.TrimRight(server, "/")
	}
	return defaultServer
}

// resolveClient creates the classifier client for this invocation.
func resolveClient(cmd *cobra.Command) *classifier.Client {
	return classifier.NewClient(resolveServer(cmd))
}

// resolveConfig reads the --resolution and --grayscale flags.
func resolveConfig(cmd *cobra.Command) (classifier.Config, error) {
	resolution, _ := cmd.Flags().GetInt("resolution")
	grayscale, _ := cmd.Flags().GetBool("grayscale")
	if !classifier.ValidResolution(resolution) {
		return classifier.Config{}, fmt.Errorf("invalid --resolution %d: must be one of %v", resolution, classifier.Resolutions)
	}
	return classifier.Config{Resolution: resolution, Grayscale: grayscale}, nil
}

// addConfigFlags registers the per-request preprocessing flags.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().Int("resolution", classifier.DefaultResolution, fmt.Sprintf("Square input size, one of %v", classifier.Resolutions))
	cmd.Flags().Bool("grayscale", false, "Collapse images to one channel before inference")
}

// openHistory creates the history service over the XDG-backed store.
func openHistory() *history.Service {
	return history.NewService(history.NewStore())
}
