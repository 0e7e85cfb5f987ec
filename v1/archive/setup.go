package archive

import (
	"context"
	"fmt"
	"io"

	"github.com/billionvectors/asimplevectors-go/v1/observability"
)

// Logger is the logging surface used by Archiver. logger.Logger satisfies it.
// Entries carry trace_id and span_id when ctx holds a span.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// SnapshotSource moves snapshot archives in and out of an asimplevectors
// server. *asimplevectors.SnapshotService implements it.
type SnapshotSource interface {
	DownloadTo(ctx context.Context, date string, w io.Writer) (int64, error)
	UploadRestoreFrom(ctx context.Context, fileName string, r io.Reader) error
}

// Archiver copies server snapshots into an S3-compatible bucket and
// restores servers from them. Archives are streamed in both directions and
// never touch the local disk.
//
// An Archiver is safe for concurrent use.
type Archiver struct {
	cfg       Config
	store     objectStore
	snapshots SnapshotSource

	logger   Logger
	observer observability.Observer
}

// NewArchiver validates cfg and creates the bucket client. No request is
// made until the first operation; call EnsureBucket to create the bucket
// up front.
//
//	client, _ := asimplevectors.NewClient(nil)
//	arch, err := archive.NewArchiver(archive.DefaultConfig(), client.Snapshots)
//	if err != nil {
//	    return err
//	}
//	entry, err := arch.Archive(ctx, "20240115")
func NewArchiver(cfg Config, snapshots SnapshotSource) (*Archiver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if snapshots == nil {
		return nil, fmt.Errorf("%w: snapshot source is required", ErrInvalidConfig)
	}
	store, err := newMinioStore(cfg)
	if err != nil {
		return nil, err
	}
	return newArchiver(cfg, store, snapshots), nil
}

func newArchiver(cfg Config, store objectStore, snapshots SnapshotSource) *Archiver {
	return &Archiver{cfg: cfg, store: store, snapshots: snapshots}
}

// WithLogger attaches a logger. It returns a for chaining.
func (a *Archiver) WithLogger(l Logger) *Archiver {
	a.logger = l
	return a
}

// WithObserver attaches an operation observer. It returns a for chaining.
func (a *Archiver) WithObserver(o observability.Observer) *Archiver {
	a.observer = o
	return a
}

// Bucket returns the configured bucket name.
func (a *Archiver) Bucket() string { return a.cfg.Bucket }

// EnsureBucket creates the bucket when it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	err := a.store.ensureBucket(ctx)
	if err != nil {
		a.logError(ctx, "failed to ensure archive bucket", err, map[string]interface{}{"bucket": a.cfg.Bucket})
	}
	return err
}

func (a *Archiver) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if a.logger != nil {
		a.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (a *Archiver) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if a.logger != nil {
		a.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}
