package trint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"batchupload/internal/logging"
	"batchupload/internal/mediatype"
	"batchupload/internal/services"
)

const defaultUserAgent = "batch-upload/0.1.0"

// ErrUnsupportedType is returned when a file's extension has no known media type.
var ErrUnsupportedType = errors.New("unsupported file type")

// Credentials is the Trint API key pair.
type Credentials struct {
	APIKeyID     string
	APIKeySecret string
}

// Request describes one file upload.
type Request struct {
	Path        string
	Credentials Credentials
	Server      string
	Language    string
	UploadID    string
}

// Outcome is the interpreted server reply for one upload.
type Outcome struct {
	Success    bool
	TrintID    string
	Message    string
	StatusCode int
}

// Err returns nil for a successful outcome and an ErrRejected-marked error otherwise.
func (o Outcome) Err() error {
	if o.Success {
		return nil
	}
	return services.Wrap(services.ErrRejected, "trint", "upload", o.Message, nil)
}

// TransportError reports a failure to reach the server or read its reply.
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is lets errors.Is match services.ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == services.ErrTransport
}

// HTTPDoer is the subset of *http.Client the uploader needs.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client uploads files to a Trint server.
type Client struct {
	http      HTTPDoer
	logger    *slog.Logger
	userAgent string
	timeout   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "trint")
	}
}

// WithTimeout bounds each upload. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if agent = strings.TrimSpace(agent); agent != "" {
			c.userAgent = agent
		}
	}
}

// NewClient constructs an upload client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{},
		logger:    logging.NewComponentLogger(nil, "trint"),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Upload sends one file. Errors cover failures before the request is sent
// (unreadable file, unsupported type, bad server URL) and *TransportError for
// network failures. Any reply from the server is reported through Outcome.
func (c *Client) Upload(ctx context.Context, req Request) (Outcome, error) {
	logger := logging.WithContext(ctx, c.logger)

	mime, ok := mediatype.Classify(req.Path)
	if !ok {
		ext := mediatype.Extension(req.Path)
		if ext == "" {
			ext = "none"
		}
		return Outcome{}, fmt.Errorf("%w %q: %s", ErrUnsupportedType, ext, req.Path)
	}

	endpoint, err := buildEndpoint(req.Server, filepath.Base(req.Path), req.Language)
	if err != nil {
		return Outcome{}, services.Wrap(services.ErrConfiguration, "trint", "build endpoint", "invalid server url", err)
	}

	file, err := os.Open(req.Path)
	if err != nil {
		return Outcome{}, fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Outcome{}, fmt.Errorf("stat upload file: %w", err)
	}
	if info.IsDir() {
		return Outcome{}, fmt.Errorf("upload file %s is a directory", req.Path)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader = file
	if info.Size() == 0 {
		body = http.NoBody
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return Outcome{}, fmt.Errorf("build upload request: %w", err)
	}
	httpReq.ContentLength = info.Size()
	httpReq.Header.Set("Content-Type", mime)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.SetBasicAuth(req.Credentials.APIKeyID, req.Credentials.APIKeySecret)

	logger.Debug("upload request",
		logging.String("method", httpReq.Method),
		logging.String("url", endpoint),
		logging.String("content_type", mime),
		logging.Int64("content_length", info.Size()),
		logging.String("api_key_id", req.Credentials.APIKeyID),
		logging.String("api_key_secret", logging.MaskSecret(req.Credentials.APIKeySecret)),
	)

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Outcome{}, &TransportError{Path: req.Path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{}, &TransportError{Path: req.Path, Err: fmt.Errorf("read response: %w", err)}
	}

	logger.Debug("upload response",
		logging.Int("status", resp.StatusCode),
		logging.Duration("elapsed", time.Since(started)),
		logging.String("body", strings.TrimSpace(string(payload))),
	)

	return interpret(resp.StatusCode, payload), nil
}

func interpret(status int, payload []byte) Outcome {
	if status < 200 || status >= 300 {
		return Outcome{
			StatusCode: status,
			Message:    fmt.Sprintf("Upload failed with status %d: %s", status, payload),
		}
	}
	id, err := decodeTrintID(payload)
	if err != nil {
		return Outcome{StatusCode: status, Message: "Bad response: " + err.Error()}
	}
	if id == "" {
		return Outcome{StatusCode: status, Message: "Bad response: missing trintId"}
	}
	return Outcome{
		Success:    true,
		TrintID:    id,
		StatusCode: status,
	}
}

// decodeTrintID extracts the trintId field from a JSON reply. Any value other
// than null, false, 0 or "" counts as present; non-string values are returned
// in their JSON text form. A reply that is not an object has no trintId.
func decodeTrintID(payload []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var reply any
	if err := dec.Decode(&reply); err != nil {
		return "", err
	}
	if dec.More() {
		return "", errors.New("unexpected data after JSON value")
	}
	fields, ok := reply.(map[string]any)
	if !ok {
		return "", nil
	}
	switch v := fields["trintId"].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		if !v {
			return "", nil
		}
		return "true", nil
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			return "", nil
		}
		return v.String(), nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
}

func buildEndpoint(server, filename, language string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(server))
	if err != nil {
		return "", err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("server %q is not an absolute http(s) url", server)
	}
	query := u.Query()
	// The service decodes the filename parameter twice, so it is
	// component-escaped before the query itself is encoded.
	query.Set("filename", escapeComponent(filename))
	if language != "" {
		query.Set("language", language)
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// escapeComponent percent-encodes every byte outside A-Z a-z 0-9 and
// -_.!~*'() using UTF-8.
func escapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if isComponentSafe(ch) {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[ch>>4])
		b.WriteByte(hex[ch&0x0F])
	}
	return b.String()
}

func isComponentSafe(ch byte) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
		return true
	}
	switch ch {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
