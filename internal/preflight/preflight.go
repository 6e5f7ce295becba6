package preflight

import (
	"context"
	"path/filepath"

	"batchupload/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Targets lists the user-supplied paths to verify alongside the config.
type Targets struct {
	Files        []string
	PatternFiles []string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, targets Targets) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckCredentials(cfg.Credentials.APIKeyID, cfg.Credentials.APIKeySecret),
		CheckUploadServer(ctx, cfg.Upload.Server, cfg.Credentials.APIKeyID, cfg.Credentials.APIKeySecret),
	}

	if cfg.Logging.File != "" {
		results = append(results, CheckDirectoryAccess("Log directory", filepath.Dir(cfg.Logging.File)))
	}
	results = append(results, CheckNotifications(cfg))

	for _, path := range targets.PatternFiles {
		results = append(results, CheckReadable("Pattern file", path))
	}
	for _, path := range targets.Files {
		results = append(results, CheckMediaFile(path))
	}
	return results
}

// Failed counts results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
