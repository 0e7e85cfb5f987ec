package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (c *cli) clusterCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "cluster", Short: "Raft cluster administration"}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Initialize a single-node cluster on the target node",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := c.client.Cluster.Init(cmd.Context()); err != nil {
					return err
				}
				return c.ok()
			},
		},
		&cobra.Command{
			Use:   "add-learner <node-id> <api-addr> <rpc-addr>",
			Short: "Add a non-voting node",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseNodeID(args[0])
				if err != nil {
					return err
				}
				if err := c.client.Cluster.AddLearner(cmd.Context(), id, args[1], args[2]); err != nil {
					return err
				}
				return c.ok()
			},
		},
		&cobra.Command{
			Use:   "change-membership <node-id>...",
			Short: "Set the voting members",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ids := make([]uint64, 0, len(args))
				for _, a := range args {
					id, err := parseNodeID(a)
					if err != nil {
						return err
					}
					ids = append(ids, id)
				}
				if err := c.client.Cluster.ChangeMembership(cmd.Context(), ids); err != nil {
					return err
				}
				return c.ok()
			},
		},
		&cobra.Command{
			Use:   "metrics",
			Short: "Show Raft metrics of the target node",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				m, err := c.client.Cluster.Metrics(cmd.Context())
				if err != nil {
					return err
				}
				return c.print(m)
			},
		},
	)
	return cmd
}

func parseNodeID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid node id %q", s)
	}
	return id, nil
}
