package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/billionvectors/asimplevectors-go/v1/asimplevectors"
)

func (c *cli) print(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) ok() error {
	return c.print(map[string]string{"result": "success"})
}

// readInput returns the contents of path. "-" reads stdin.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func readJSONFile(cmd *cobra.Command, path string, v interface{}) error {
	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// listFlags registers --start and --limit (and --filter when withFilter)
// and returns a builder for the resulting ListOptions. Unset flags stay
// nil so the server default applies.
func listFlags(cmd *cobra.Command, withFilter bool) func() *asimplevectors.ListOptions {
	var start, limit int
	var filter string
	cmd.Flags().IntVar(&start, "start", 0, "Offset of the first entry")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of entries")
	if withFilter {
		cmd.Flags().StringVar(&filter, "filter", "", "Metadata filter expression")
	}
	return func() *asimplevectors.ListOptions {
		opts := &asimplevectors.ListOptions{Filter: filter}
		if cmd.Flags().Changed("start") {
			opts.Start = asimplevectors.Int(start)
		}
		if cmd.Flags().Changed("limit") {
			opts.Limit = asimplevectors.Int(limit)
		}
		return opts
	}
}
