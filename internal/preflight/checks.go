package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"batchupload/internal/config"
	"batchupload/internal/logging"
	"batchupload/internal/mediatype"
)

// CheckCredentials verifies both halves of the API key pair are present.
func CheckCredentials(id, secret string) Result {
	const name = "Credentials"

	switch {
	case strings.TrimSpace(id) == "" && strings.TrimSpace(secret) == "":
		return Result{Name: name, Detail: "missing api key id and secret"}
	case strings.TrimSpace(id) == "":
		return Result{Name: name, Detail: "missing api key id"}
	case strings.TrimSpace(secret) == "":
		return Result{Name: name, Detail: "missing api key secret"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s / %s", id, logging.MaskSecret(secret))}
}

// CheckUploadServer verifies the upload endpoint answers HTTP. Any status
// other than 401 or 403 counts as reachable since the endpoint only accepts
// uploads.
func CheckUploadServer(ctx context.Context, server, id, secret string) Result {
	const name = "Upload server"

	if err := config.ValidateServer(server); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodHead, server, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("request failed (%v)", err)}
	}
	if id != "" && secret != "" {
		req.SetBasicAuth(id, secret)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return Result{Name: name, Detail: fmt.Sprintf("credentials rejected (%d)", resp.StatusCode)}
	default:
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s reachable (%d)", server, resp.StatusCode)}
	}
}

// CheckReadable verifies that path is an existing regular file the current
// user can read.
func CheckReadable(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", path)}
}

// CheckMediaFile verifies an explicit upload target is readable and has a
// supported media extension.
func CheckMediaFile(path string) Result {
	result := CheckReadable("Media file", path)
	if !result.Passed {
		return result
	}
	mime, ok := mediatype.Classify(path)
	if !ok {
		ext := mediatype.Extension(path)
		if ext == "" {
			ext = "none"
		}
		return Result{Name: result.Name, Detail: fmt.Sprintf("%s (unsupported extension: %s)", path, ext)}
	}
	return Result{Name: result.Name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, mime)}
}

// CheckDirectoryAccess verifies that the directory exists and is writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (write ok)", path)}
}

// CheckNotifications reports whether ntfy delivery is configured. It does
// not send anything; use the test-notify command for that.
func CheckNotifications(cfg *config.Config) Result {
	const name = "Notifications"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	if err := config.ValidateServer(topic); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("ntfy %s", topic)}
}
