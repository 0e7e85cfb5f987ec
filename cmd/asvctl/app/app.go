// Package app implements the asvctl command tree.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/billionvectors/asimplevectors-go/v1/archive"
	"github.com/billionvectors/asimplevectors-go/v1/asimplevectors"
	"github.com/billionvectors/asimplevectors-go/v1/logger"
	"github.com/billionvectors/asimplevectors-go/v1/metrics"
	"github.com/billionvectors/asimplevectors-go/v1/tracer"
)

// Name is the command name and the config file base name.
const Name = "asvctl"

const commandDesc = `asvctl manages an asimplevectors server.

Configuration is read from flags, then ASV_* environment variables, then
asvctl.yaml in the working directory or ~/.asvctl/. Results are printed
as JSON.`

// cli holds the state shared by all subcommands of one invocation.
type cli struct {
	v   *viper.Viper
	out io.Writer

	opts    *Options
	log     *logger.LoggerClient
	tracer  *tracer.Tracer
	metrics *metrics.Metrics
	client  *asimplevectors.Client
}

// Execute runs asvctl with os.Args and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLI().run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:]...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newCLI() *cli {
	return &cli{v: viper.New()}
}

// run executes one invocation and tears down whatever setup built, also
// when the command fails. cobra skips PersistentPostRunE after a RunE error.
func (c *cli) run(ctx context.Context, in io.Reader, out, errOut io.Writer, args ...string) (err error) {
	cmd := c.command()
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	defer func() {
		if terr := c.teardown(ctx); err == nil {
			err = terr
		}
	}()
	return cmd.ExecuteContext(ctx)
}

// command builds the root command.
func (c *cli) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:               Name,
		Short:             "Command line client for asimplevectors",
		Long:              commandDesc,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	addGlobalFlags(cmd)

	cmd.AddCommand(
		c.clusterCommand(),
		c.spaceCommand(),
		c.versionCommand(),
		c.vectorCommand(),
		c.searchCommand(),
		c.rerankCommand(),
		c.snapshotCommand(),
		c.tokenCommand(),
		c.keyCommand(),
	)
	return cmd
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	c.out = cmd.OutOrStdout()

	opts, err := loadOptions(c.v, cmd)
	if err != nil {
		return err
	}
	c.opts = opts

	c.log = logger.NewLoggerClient(opts.loggerConfig())

	c.tracer, err = tracer.NewClient(opts.tracerConfig(), c.log)
	if err != nil {
		return err
	}

	c.metrics = metrics.NewMetrics(opts.metricsConfig())
	if c.metrics.Server != nil {
		go func() {
			if err := c.metrics.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				c.log.Error("prometheus metrics server stopped", err, nil)
			}
		}()
	}

	cfg, err := opts.clientConfig()
	if err != nil {
		return err
	}
	c.client, err = asimplevectors.NewClient(cfg)
	if err != nil {
		return err
	}
	c.client.WithLogger(c.log).WithObserver(c.metrics)
	return nil
}

func (c *cli) teardown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if c.client != nil {
		c.client.Close()
	}
	if c.metrics != nil && c.metrics.Server != nil {
		_ = c.metrics.Server.Shutdown(ctx)
	}
	var err error
	if c.tracer != nil {
		err = c.tracer.Shutdown(ctx)
	}
	if c.log != nil {
		_ = c.log.Zap.Sync()
	}
	return err
}

// archiver builds the snapshot archiver on demand so that commands not
// touching the bucket need no archive settings.
func (c *cli) archiver(ctx context.Context) (*archive.Archiver, error) {
	a, err := archive.NewArchiver(c.opts.archiveConfig(), c.client.Snapshots)
	if err != nil {
		return nil, err
	}
	a.WithLogger(c.log).WithObserver(c.metrics)
	if err := a.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return a, nil
}
