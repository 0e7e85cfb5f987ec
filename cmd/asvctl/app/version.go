package app

import (
	"github.com/spf13/cobra"

	"github.com/billionvectors/asimplevectors-go/v1/asimplevectors"
)

func (c *cli) versionCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "version", Short: "Manage space versions"}

	var req asimplevectors.VersionRequest
	create := &cobra.Command{
		Use:   "create <space> <name>",
		Short: "Create a version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := req
			r.Name = args[1]
			if err := c.client.Versions.Create(cmd.Context(), args[0], &r); err != nil {
				return err
			}
			return c.ok()
		},
	}
	create.Flags().StringVar(&req.Description, "description", "", "Version description")
	create.Flags().StringVar(&req.Tag, "tag", "", "Version tag")
	create.Flags().BoolVar(&req.IsDefault, "default", false, "Make this the default version")

	list := &cobra.Command{
		Use:   "list <space>",
		Short: "List versions",
		Args:  cobra.ExactArgs(1),
	}
	listOpts := listFlags(list, false)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		versions, err := c.client.Versions.List(cmd.Context(), args[0], listOpts())
		if err != nil {
			return err
		}
		return c.print(versions)
	}

	cmd.AddCommand(
		create,
		list,
		&cobra.Command{
			Use:   "get <space> <id>",
			Short: "Show a version",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[1])
				if err != nil {
					return err
				}
				v, err := c.client.Versions.Get(cmd.Context(), args[0], id)
				if err != nil {
					return err
				}
				return c.print(v)
			},
		},
		&cobra.Command{
			Use:   "default <space>",
			Short: "Show the default version",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := c.client.Versions.GetDefault(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return c.print(v)
			},
		},
		&cobra.Command{
			Use:   "delete <space> <id>",
			Short: "Delete a version",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[1])
				if err != nil {
					return err
				}
				if err := c.client.Versions.Delete(cmd.Context(), args[0], id); err != nil {
					return err
				}
				return c.ok()
			},
		},
	)
	return cmd
}
