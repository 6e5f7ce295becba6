package batch

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"batchupload/internal/config"
	"batchupload/internal/language"
	"batchupload/internal/logging"
	"batchupload/internal/mediatype"
	"batchupload/internal/patterns"
	"batchupload/internal/services"
	"batchupload/internal/services/trint"
	"batchupload/internal/uploadid"
)

// Uploader sends one file to the upload service.
type Uploader interface {
	Upload(ctx context.Context, req trint.Request) (trint.Outcome, error)
}

// Notifier receives run-level events. Delivery failures are logged only.
type Notifier interface {
	NotifyBatchCompleted(ctx context.Context, succeeded, failed int, duration time.Duration) error
	NotifyRunFailed(ctx context.Context, err error) error
}

// Runner executes upload runs.
type Runner struct {
	uploader Uploader
	reporter Reporter
	notifier Notifier
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithReporter sets the progress sink. The default discards progress.
func WithReporter(reporter Reporter) Option {
	return func(r *Runner) {
		if reporter != nil {
			r.reporter = reporter
		}
	}
}

// WithNotifier enables run-level notifications.
func WithNotifier(notifier Notifier) Option {
	return func(r *Runner) {
		r.notifier = notifier
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logging.NewComponentLogger(logger, "batch")
	}
}

// NewRunner constructs a runner around the given uploader.
func NewRunner(uploader Uploader, opts ...Option) *Runner {
	r := &Runner{
		uploader: uploader,
		reporter: NopReporter{},
		logger:   logging.NewComponentLogger(nil, "batch"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs one batch. The returned error is non-nil only for
// configuration and resolution failures; individual upload failures are
// counted in the Summary.
func (r *Runner) Run(ctx context.Context, sel Selection) (Summary, error) {
	started := time.Now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	summary := Summary{RunID: runID, DryRun: sel.DryRun}

	if err := validateSelection(sel); err != nil {
		return summary, err
	}
	if sel.Language != "" && !language.IsSupported(sel.Language) {
		logging.WarnWithContext(logger, "language code not in the supported list", "unknown_language",
			logging.String("language", sel.Language),
			logging.String(logging.FieldErrorHint, "run 'batch-upload languages' to list supported codes"),
		)
	}
	r.reporter.Configuration(sel)
	logger.Debug("supported file extensions",
		logging.String("extensions", strings.Join(mediatype.SupportedExtensions(), ", ")),
	)

	candidates, err := r.collect(sel, logger)
	if err != nil {
		r.notifyFailure(ctx, logger, err)
		return summary, err
	}
	summary.Candidates = len(candidates)
	logger.Debug("candidate files collected", logging.Int("count", len(candidates)))

	files := mediatype.FilterSupported(candidates, logger)
	summary.Supported = len(files)
	logger.Debug("supported files remain after filtering", logging.Int("count", len(files)))

	if summary.NoSupportedFiles() {
		r.reporter.NoSupportedFiles(mediatype.SupportedExtensions())
		summary.Duration = time.Since(started)
		return summary, nil
	}
	if len(files) == 0 {
		r.reporter.NoFiles()
		summary.Duration = time.Since(started)
		return summary, nil
	}

	planned := plan(files)
	if sel.DryRun {
		summary.Planned = planned
		r.reporter.DryRun(planned)
		summary.Duration = time.Since(started)
		return summary, nil
	}

	r.reporter.UploadStarting(len(planned), sel.Concurrency)
	summary.Succeeded, summary.Failed = r.dispatch(ctx, sel, planned)
	summary.Duration = time.Since(started)

	logger.Info("batch complete",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
		logging.Duration("duration", summary.Duration),
	)
	r.reporter.Complete(summary)

	if r.notifier != nil {
		if err := r.notifier.NotifyBatchCompleted(ctx, summary.Succeeded, summary.Failed, summary.Duration); err != nil {
			logging.WarnWithContext(logger, "completion notification failed", "notification_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic"),
			)
		}
	}
	return summary, nil
}

func validateSelection(sel Selection) error {
	if sel.Credentials.APIKeyID == "" {
		return services.Wrap(services.ErrConfiguration, "", "",
			"API key ID is required. Provide via --api-key-id or TRINT_API_KEY_ID environment variable", nil)
	}
	if sel.Credentials.APIKeySecret == "" {
		return services.Wrap(services.ErrConfiguration, "", "",
			"API key secret is required. Provide via --api-key-secret or TRINT_API_KEY_SECRET environment variable", nil)
	}
	if err := config.ValidateConcurrency(sel.Concurrency); err != nil {
		return services.Wrap(services.ErrConfiguration, "", "", "", err)
	}
	if sel.Server != "" {
		if err := config.ValidateServer(sel.Server); err != nil {
			return services.Wrap(services.ErrConfiguration, "", "", "server", err)
		}
	}
	return nil
}

// collect returns explicit files, then pattern matches, then matches of the
// patterns read from each pattern file, without removing duplicates.
func (r *Runner) collect(sel Selection, logger *slog.Logger) ([]string, error) {
	candidates := make([]string, 0, len(sel.Files))
	candidates = append(candidates, sel.Files...)

	if len(sel.Patterns) > 0 {
		matched, err := patterns.Expand(sel.Patterns, logger)
		if err != nil {
			return nil, services.Wrap(services.ErrResolution, "", "", "", err)
		}
		candidates = append(candidates, matched...)
	}

	for _, patternFile := range sel.PatternFiles {
		list, err := patterns.ParseFile(patternFile)
		if err != nil {
			return nil, services.Wrap(services.ErrResolution, "", "", patternFile, err)
		}
		logger.Debug("loaded patterns from file",
			logging.String("pattern_file", patternFile),
			logging.Int("count", len(list)),
		)
		matched, err := patterns.Expand(list, logger)
		if err != nil {
			return nil, services.Wrap(services.ErrResolution, "", "", patternFile, err)
		}
		candidates = append(candidates, matched...)
	}
	return candidates, nil
}

func plan(files []string) []PlannedFile {
	planned := make([]PlannedFile, len(files))
	for i, path := range files {
		planned[i] = PlannedFile{Path: path, ID: uploadid.Derive(path)}
	}
	return planned
}

// dispatch uploads files in order with at most sel.Concurrency in flight.
// Each upload starts only after the one before it has started, so progress
// lines and requests follow the filtered order. Workers never return an
// error so one failure cannot stop the others.
func (r *Runner) dispatch(ctx context.Context, sel Selection, files []PlannedFile) (int, int) {
	var succeeded, failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(sel.Concurrency)
	prev := make(chan struct{})
	close(prev)
	for _, file := range files {
		turn, started := prev, make(chan struct{})
		prev = started
		g.Go(func() error {
			<-turn
			if r.uploadOne(ctx, sel, file, started) {
				succeeded.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	return int(succeeded.Load()), int(failed.Load())
}

func (r *Runner) uploadOne(ctx context.Context, sel Selection, file PlannedFile, started chan<- struct{}) bool {
	ctx = services.WithPath(services.WithUploadID(ctx, file.ID), file.Path)
	logger := logging.WithContext(ctx, r.logger)

	server := sel.Server
	if server == "" {
		server = config.DefaultServer
	}

	r.reporter.Uploading(file)
	close(started)
	outcome, err := r.uploader.Upload(ctx, trint.Request{
		Path:        file.Path,
		Credentials: sel.Credentials,
		Server:      server,
		Language:    sel.Language,
		UploadID:    file.ID,
	})
	if err != nil {
		logger.Info("upload error",
			logging.String(logging.FieldEventType, "upload_error"),
			logging.Bool("transport", services.IsTransport(err)),
			logging.Error(err),
		)
		r.reporter.Errored(file, err)
		return false
	}
	if !outcome.Success {
		logger.Info("upload rejected",
			logging.String(logging.FieldEventType, "upload_rejected"),
			logging.Int("status", outcome.StatusCode),
			logging.Error(outcome.Err()),
		)
		r.reporter.Failed(file, outcome.Message)
		return false
	}

	logger.Info("upload succeeded",
		logging.String("trint_id", outcome.TrintID),
		logging.Int("status", outcome.StatusCode),
	)
	r.reporter.Succeeded(file, outcome.TrintID)
	return true
}

func (r *Runner) notifyFailure(ctx context.Context, logger *slog.Logger, runErr error) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.NotifyRunFailed(ctx, runErr); err != nil {
		logging.WarnWithContext(logger, "failure notification failed", "notification_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic"),
		)
	}
}
