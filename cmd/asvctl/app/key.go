package app

import (
	"github.com/spf13/cobra"
)

func (c *cli) keyCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "key", Short: "Per-space key-value store"}

	list := &cobra.Command{
		Use:   "list <space>",
		Short: "List keys",
		Args:  cobra.ExactArgs(1),
	}
	listOpts := listFlags(list, false)
	list.RunE = func(cmd *cobra.Command, args []string) error {
		keys, err := c.client.KeyValues.List(cmd.Context(), args[0], listOpts())
		if err != nil {
			return err
		}
		return c.print(keys)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "put <space> <key> <value>",
			Short: "Store a value",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.client.KeyValues.Put(cmd.Context(), args[0], args[1], args[2]); err != nil {
					return err
				}
				return c.ok()
			},
		},
		&cobra.Command{
			Use:   "get <space> <key>",
			Short: "Print a value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				value, err := c.client.KeyValues.Get(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return c.print(map[string]string{"key": args[1], "value": value})
			},
		},
		list,
		&cobra.Command{
			Use:   "delete <space> <key>",
			Short: "Delete a key",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.client.KeyValues.Delete(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				return c.ok()
			},
		},
	)
	return cmd
}
