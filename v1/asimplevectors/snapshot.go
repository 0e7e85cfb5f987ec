package asimplevectors

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotService creates server-side snapshots and moves snapshot
// archives between the server and the caller.
type SnapshotService struct{ service }

// CreateSnapshotRequest selects what to snapshot. An empty SpaceName
// snapshots every space.
type CreateSnapshotRequest struct {
	SpaceName string `json:"space_name,omitempty"`
}

// Snapshot describes a server-resident snapshot. Date is the identifier
// used by Download, Restore and Delete.
type Snapshot struct {
	FileName string `json:"file_name"`
	Date     string `json:"date,omitempty"`
}

// SnapshotFileName returns the archive name for date,
// e.g. "snapshot-20240115.zip".
func SnapshotFileName(date string) string {
	return snapshotPrefix + date + ".zip"
}

// Create asks the server to write a new snapshot.
func (s *SnapshotService) Create(ctx context.Context, req *CreateSnapshotRequest) error {
	if req == nil {
		req = &CreateSnapshotRequest{}
	}
	_, _, err := s.transport().send(ctx, "snapshot_create", http.MethodPost, "/api/snapshot", nil, req)
	return err
}

// List returns the server's snapshots with their date tokens filled in.
func (s *SnapshotService) List(ctx context.Context) ([]Snapshot, error) {
	_, body, err := s.transport().send(ctx, "snapshot_list", http.MethodGet, "/api/snapshots", nil, nil)
	if err != nil {
		return nil, err
	}
	return normalizeSnapshots(body)
}

// Download saves the snapshot for date as dir/snapshot-<date>.zip and
// returns that path. The archive is written to a temporary file in dir and
// renamed into place only once fully received, so the final path never
// holds a partial archive. The temporary file is removed on failure and on
// context cancellation. dir is created if needed.
func (s *SnapshotService) Download(ctx context.Context, date, dir string) (string, error) {
	if err := checkSnapshotDate(date); err != nil {
		return "", err
	}
	path, err := buildPath("/snapshot/%s/download", date)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+snapshotPrefix+date+"-*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := s.transport().stream(ctx, "snapshot_download", path, tmp); err != nil {
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("failed to flush snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close snapshot: %w", err)
	}

	target := filepath.Join(dir, SnapshotFileName(date))
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("failed to move snapshot into place: %w", err)
	}
	committed = true
	return target, nil
}

// DownloadTo streams the snapshot for date into w and returns the number of
// bytes written. On failure w may hold a partial archive.
//
// Parameters:
//   - date: the snapshot's date token as returned by List
//   - w: destination of the raw zip stream
//
// Returns the byte count and an error matching ErrNotFound when the server
// has no snapshot for date.
func (s *SnapshotService) DownloadTo(ctx context.Context, date string, w io.Writer) (int64, error) {
	if err := checkSnapshotDate(date); err != nil {
		return 0, err
	}
	path, err := buildPath("/snapshot/%s/download", date)
	if err != nil {
		return 0, err
	}
	return s.transport().stream(ctx, "snapshot_download", path, w)
}

// UploadRestore uploads the archive at path and makes the server replace
// its current state with it. This is destructive.
//
// Example:
//
//	path, err := client.Snapshots.Download(ctx, "20240115", "/var/backups")
//	if err != nil {
//	    return err
//	}
//	// later, against a fresh server
//	err = other.Snapshots.UploadRestore(ctx, path)
func (s *SnapshotService) UploadRestore(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	return s.UploadRestoreFrom(ctx, filepath.Base(path), f)
}

// UploadRestoreFrom is UploadRestore for an archive read from r. fileName
// is sent as the multipart file name.
func (s *SnapshotService) UploadRestoreFrom(ctx context.Context, fileName string, r io.Reader) error {
	if fileName == "" {
		return invalidArgument("snapshot file name is required")
	}
	_, _, err := s.transport().sendMultipart(ctx, "snapshot_upload_restore", "/api/snapshots/restore", "file", fileName, r)
	return err
}

// Restore restores the server-resident snapshot for date.
func (s *SnapshotService) Restore(ctx context.Context, date string) error {
	if err := checkSnapshotDate(date); err != nil {
		return err
	}
	path, err := buildPath("/api/snapshot/%s/restore", date)
	if err != nil {
		return err
	}
	_, _, err = s.transport().send(ctx, "snapshot_restore", http.MethodPost, path, nil, struct{}{})
	return err
}

// Delete removes the server-resident snapshot for date.
func (s *SnapshotService) Delete(ctx context.Context, date string) error {
	if err := checkSnapshotDate(date); err != nil {
		return err
	}
	path, err := buildPath("/api/snapshot/%s/delete", date)
	if err != nil {
		return err
	}
	_, _, err = s.transport().send(ctx, "snapshot_delete", http.MethodDelete, path, nil, nil)
	return err
}

func checkSnapshotDate(date string) error {
	if date == "" {
		return invalidArgument("snapshot date is required")
	}
	if strings.ContainsAny(date, `/\.`) {
		return invalidArgument("snapshot date %q must be a bare date token", date)
	}
	return nil
}
