package app

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/billionvectors/asimplevectors-go/v1/archive"
	"github.com/billionvectors/asimplevectors-go/v1/asimplevectors"
)

func (c *cli) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "snapshot", Short: "Create, transfer and restore snapshots"}

	var space string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a snapshot of one space or of all spaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.client.Snapshots.Create(cmd.Context(), &asimplevectors.CreateSnapshotRequest{SpaceName: space}); err != nil {
				return err
			}
			return c.ok()
		},
	}
	create.Flags().StringVar(&space, "space", "", "Only snapshot this space")

	var (
		dir         string
		downloadAll bool
		parallel    int
	)
	download := &cobra.Command{
		Use:   "download [date]...",
		Short: "Download snapshot archives into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dates, err := c.resolveDates(cmd.Context(), args, downloadAll)
			if err != nil {
				return err
			}
			paths, err := c.downloadSnapshots(cmd.Context(), dates, dir, parallel)
			if err != nil {
				return err
			}
			return c.print(paths)
		},
	}
	download.Flags().StringVarP(&dir, "dir", "d", ".", "Target directory")
	download.Flags().BoolVar(&downloadAll, "all", false, "Download every snapshot on the server")
	download.Flags().IntVarP(&parallel, "parallel", "p", 2, "Concurrent downloads")

	var (
		archiveAll      bool
		archiveParallel int
	)
	archiveCmd := &cobra.Command{
		Use:   "archive [date]...",
		Short: "Copy snapshots into the archive bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			dates, err := c.resolveDates(cmd.Context(), args, archiveAll)
			if err != nil {
				return err
			}
			a, err := c.archiver(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := a.ArchiveMany(cmd.Context(), dates, archiveParallel)
			if err != nil {
				return err
			}
			return c.print(entries)
		},
	}
	archiveCmd.Flags().BoolVar(&archiveAll, "all", false, "Archive every snapshot on the server")
	archiveCmd.Flags().IntVarP(&archiveParallel, "parallel", "p", 2, "Concurrent transfers")

	cmd.AddCommand(
		create,
		&cobra.Command{
			Use:   "list",
			Short: "List server snapshots",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				snapshots, err := c.client.Snapshots.List(cmd.Context())
				if err != nil {
					return err
				}
				return c.print(snapshots)
			},
		},
		download,
		&cobra.Command{
			Use:   "restore <date>",
			Short: "Restore a server-resident snapshot",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.client.Snapshots.Restore(cmd.Context(), args[0]); err != nil {
					return err
				}
				return c.ok()
			},
		},
		&cobra.Command{
			Use:   "upload-restore <file>",
			Short: "Upload a local archive and restore the server from it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.client.Snapshots.UploadRestore(cmd.Context(), args[0]); err != nil {
					return err
				}
				return c.ok()
			},
		},
		&cobra.Command{
			Use:   "delete <date>",
			Short: "Delete a server-resident snapshot",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.client.Snapshots.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				return c.ok()
			},
		},
		archiveCmd,
		&cobra.Command{
			Use:   "archive-list",
			Short: "List archived snapshots",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, err := c.archiver(cmd.Context())
				if err != nil {
					return err
				}
				entries, err := a.List(cmd.Context())
				if err != nil {
					return err
				}
				if entries == nil {
					entries = []archive.Entry{}
				}
				return c.print(entries)
			},
		},
		&cobra.Command{
			Use:   "restore-archive <date>",
			Short: "Restore the server from an archived snapshot",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := c.archiver(cmd.Context())
				if err != nil {
					return err
				}
				if err := a.Restore(cmd.Context(), args[0]); err != nil {
					return err
				}
				return c.ok()
			},
		},
		&cobra.Command{
			Use:   "archive-delete <date>",
			Short: "Delete an archived snapshot",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := c.archiver(cmd.Context())
				if err != nil {
					return err
				}
				if err := a.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				return c.ok()
			},
		},
	)
	return cmd
}

// resolveDates returns args, or every snapshot date on the server when all
// is set.
func (c *cli) resolveDates(ctx context.Context, args []string, all bool) ([]string, error) {
	if !all {
		if len(args) == 0 {
			return nil, errors.New("at least one snapshot date or --all is required")
		}
		return args, nil
	}
	if len(args) > 0 {
		return nil, errors.New("--all does not take snapshot dates")
	}
	snapshots, err := c.client.Snapshots.List(ctx)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(snapshots))
	for _, s := range snapshots {
		dates = append(dates, s.Date)
	}
	return dates, nil
}

// downloadSnapshots fetches dates into dir with at most parallel downloads
// in flight. The returned paths follow the order of dates.
func (c *cli) downloadSnapshots(ctx context.Context, dates []string, dir string, parallel int) ([]string, error) {
	if parallel < 1 {
		parallel = 1
	}
	paths := make([]string, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, date := range dates {
		g.Go(func() error {
			path, err := c.client.Snapshots.Download(gctx, date, dir)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
