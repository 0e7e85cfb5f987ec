// Package archive keeps asimplevectors snapshots in S3-compatible object
// storage such as MinIO.
//
// Archive streams GET /snapshot/{date}/download straight into a multipart
// upload, and Restore streams the object back into
// POST /api/snapshots/restore. Neither direction buffers the archive on
// local disk.
//
//	arch, err := archive.NewArchiver(cfg, client.Snapshots)
//	if err != nil {
//	    return err
//	}
//	if err := arch.EnsureBucket(ctx); err != nil {
//	    return err
//	}
//	if _, err := arch.Archive(ctx, "20240115"); err != nil {
//	    return err
//	}
//
// Objects are stored under Config.Prefix as snapshot-<date>.zip, the same
// name the server uses, so archives can be restored with any S3 tool too.
package archive
