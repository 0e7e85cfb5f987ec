package archive

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/billionvectors/asimplevectors-go/v1/asimplevectors"
)

// Entry is an archived snapshot.
type Entry struct {
	Key          string
	Date         string
	Size         int64
	LastModified time.Time
}

// Archive streams the server snapshot for date into the bucket. The
// download feeds the upload through a pipe, so memory use is bounded by
// the multipart part size. A failed download aborts the upload and no
// object is written.
func (a *Archiver) Archive(ctx context.Context, date string) (Entry, error) {
	start := time.Now()
	key := a.cfg.ObjectKey(date)

	if err := checkDate(date); err != nil {
		return Entry{}, err
	}

	pr, pw := io.Pipe()
	g, gctx := errgroup.WithContext(ctx)

	var downloadErr, uploadErr error
	var size int64
	g.Go(func() error {
		_, downloadErr = a.snapshots.DownloadTo(gctx, date, pw)
		pw.CloseWithError(downloadErr)
		return downloadErr
	})
	g.Go(func() error {
		size, uploadErr = a.store.put(gctx, key, pr)
		// Unblocks the download when the upload gave up early.
		pr.CloseWithError(uploadErr)
		return uploadErr
	})
	_ = g.Wait()

	// The upload sees the download failure through the pipe, so the
	// download error is the root cause when both failed.
	err := downloadErr
	if err == nil {
		err = uploadErr
	}
	a.observeOperation("archive", date, time.Since(start), err, size)
	if err != nil {
		a.logError(ctx, "failed to archive snapshot", err, map[string]interface{}{"date": date, "key": key})
		return Entry{}, fmt.Errorf("failed to archive snapshot %s: %w", date, err)
	}

	a.logInfo(ctx, "snapshot archived", map[string]interface{}{
		"date":   date,
		"key":    key,
		"bucket": a.cfg.Bucket,
		"bytes":  size,
	})
	return Entry{Key: key, Date: date, Size: size, LastModified: time.Now()}, nil
}

// ArchiveMany archives every date with at most parallel transfers in
// flight. It stops scheduling new transfers after the first failure and
// returns the entries archived so far, in the order of dates.
func (a *Archiver) ArchiveMany(ctx context.Context, dates []string, parallel int) ([]Entry, error) {
	if parallel < 1 {
		parallel = 1
	}

	entries := make([]Entry, len(dates))
	done := make([]bool, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, date := range dates {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			entry, err := a.Archive(gctx, date)
			if err != nil {
				return err
			}
			entries[i] = entry
			done[i] = true
			return nil
		})
	}
	err := g.Wait()

	out := make([]Entry, 0, len(dates))
	for i, ok := range done {
		if ok {
			out = append(out, entries[i])
		}
	}
	return out, err
}

// Restore streams the archive for date from the bucket into the server's
// upload-restore endpoint. This replaces the server state.
func (a *Archiver) Restore(ctx context.Context, date string) error {
	start := time.Now()
	if err := checkDate(date); err != nil {
		return err
	}
	key := a.cfg.ObjectKey(date)

	var size int64
	err := func() error {
		rc, err := a.store.get(ctx, key)
		if err != nil {
			return err
		}
		defer rc.Close()

		cr := &countingReader{r: rc}
		err = a.snapshots.UploadRestoreFrom(ctx, asimplevectors.SnapshotFileName(date), cr)
		size = cr.n
		return err
	}()

	a.observeOperation("restore", date, time.Since(start), err, size)
	if err != nil {
		a.logError(ctx, "failed to restore snapshot from archive", err, map[string]interface{}{"date": date, "key": key})
		return fmt.Errorf("failed to restore snapshot %s: %w", date, err)
	}
	a.logInfo(ctx, "snapshot restored from archive", map[string]interface{}{"date": date, "key": key, "bytes": size})
	return nil
}

// List returns the archived snapshots sorted by date. Objects under the
// prefix whose names are not snapshot archives are skipped.
func (a *Archiver) List(ctx context.Context) ([]Entry, error) {
	start := time.Now()
	objects, err := a.store.list(ctx, a.cfg.prefix())
	a.observeOperation("list", "", time.Since(start), err, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(objects))
	for _, obj := range objects {
		name := path.Base(obj.Key)
		if !strings.HasSuffix(name, ".zip") {
			continue
		}
		date, err := asimplevectors.ParseSnapshotDate(name)
		if err != nil || date == "" {
			continue
		}
		entries = append(entries, Entry{
			Key:          obj.Key,
			Date:         date,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries, nil
}

// Delete removes the archive for date. Deleting a missing archive is not
// an error.
func (a *Archiver) Delete(ctx context.Context, date string) error {
	start := time.Now()
	if err := checkDate(date); err != nil {
		return err
	}
	err := a.store.remove(ctx, a.cfg.ObjectKey(date))
	a.observeOperation("delete", date, time.Since(start), err, 0)
	return err
}

func checkDate(date string) error {
	if date == "" || strings.ContainsAny(date, `/\.`) {
		return fmt.Errorf("%w: invalid snapshot date %q", asimplevectors.ErrInvalidArgument, date)
	}
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
