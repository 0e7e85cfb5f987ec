package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billionvectors/asimplevectors-go/v1/asimplevectors"
)

func (c *cli) spaceCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "space", Short: "Manage spaces"}

	var (
		file        string
		dimension   int
		metric      string
		description string
	)
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a space from flags or a JSON request file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &asimplevectors.SpaceRequest{}
			if file != "" {
				if err := readJSONFile(cmd, file, req); err != nil {
					return err
				}
			} else {
				req.Dimension = dimension
				req.Metric = asimplevectors.Metric(metric)
				req.Description = description
			}
			req.Name = args[0]
			if err := c.client.Spaces.Create(cmd.Context(), req); err != nil {
				if asimplevectors.IsConflict(err) {
					return fmt.Errorf("space %s already exists: %w", req.Name, err)
				}
				return err
			}
			return c.ok()
		},
	}
	create.Flags().StringVarP(&file, "file", "f", "", "JSON space request, - for stdin")
	create.Flags().IntVar(&dimension, "dimension", 0, "Vector dimension")
	create.Flags().StringVar(&metric, "metric", string(asimplevectors.MetricL2), "Distance metric: L2, Cosine or IP")
	create.Flags().StringVar(&description, "description", "", "Space description")

	var updateFile string
	update := &cobra.Command{
		Use:   "update <name>",
		Short: "Apply a partial update from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upd := &asimplevectors.SpaceUpdate{}
			if err := readJSONFile(cmd, updateFile, upd); err != nil {
				return err
			}
			if err := c.client.Spaces.Update(cmd.Context(), args[0], upd); err != nil {
				return err
			}
			return c.ok()
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "", "JSON space update, - for stdin")
	_ = update.MarkFlagRequired("file")

	cmd.AddCommand(
		create,
		&cobra.Command{
			Use:   "get <name>",
			Short: "Show a space",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				space, err := c.client.Spaces.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.print(space)
			},
		},
		update,
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a space",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.client.Spaces.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				return c.ok()
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List spaces",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				spaces, err := c.client.Spaces.List(cmd.Context())
				if err != nil {
					return err
				}
				return c.print(spaces)
			},
		},
	)
	return cmd
}
