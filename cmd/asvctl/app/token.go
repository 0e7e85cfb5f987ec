package app

import (
	"github.com/spf13/cobra"

	"github.com/billionvectors/asimplevectors-go/v1/asimplevectors"
)

func tokenFlags(cmd *cobra.Command, req *asimplevectors.TokenRequest) *string {
	var file string
	fs := cmd.Flags()
	fs.StringVarP(&file, "file", "f", "", "JSON token request, - for stdin; overrides the permission flags")
	fs.Int64Var(&req.SpaceID, "space-id", 0, "Restrict to one space, 0 for all spaces")
	perm := func(p *asimplevectors.Permission, name string) {
		fs.IntVar((*int)(p), name, 0, "Permission on "+name+": 0 deny, 1 read, 2 write")
	}
	perm(&req.System, "system")
	perm(&req.Space, "space")
	perm(&req.Version, "version")
	perm(&req.Vector, "vector")
	perm(&req.Search, "search")
	perm(&req.Snapshot, "snapshot")
	perm(&req.Security, "security")
	perm(&req.KeyValue, "keyvalue")
	return &file
}

func (c *cli) tokenCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "token", Short: "Manage RBAC tokens"}

	var createReq asimplevectors.TokenRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Mint a token",
		Args:  cobra.NoArgs,
	}
	createFile := tokenFlags(create, &createReq)
	create.RunE = func(cmd *cobra.Command, _ []string) error {
		req := createReq
		if *createFile != "" {
			if err := readJSONFile(cmd, *createFile, &req); err != nil {
				return err
			}
		}
		created, err := c.client.Tokens.Create(cmd.Context(), &req)
		if err != nil {
			return err
		}
		return c.print(created)
	}

	var updateReq asimplevectors.TokenRequest
	update := &cobra.Command{
		Use:   "update <token>",
		Short: "Replace the permissions of a token",
		Args:  cobra.ExactArgs(1),
	}
	updateFile := tokenFlags(update, &updateReq)
	update.RunE = func(cmd *cobra.Command, args []string) error {
		req := updateReq
		if *updateFile != "" {
			if err := readJSONFile(cmd, *updateFile, &req); err != nil {
				return err
			}
		}
		if err := c.client.Tokens.Update(cmd.Context(), args[0], &req); err != nil {
			return err
		}
		return c.ok()
	}

	cmd.AddCommand(
		create,
		&cobra.Command{
			Use:   "list",
			Short: "List tokens",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				tokens, err := c.client.Tokens.List(cmd.Context())
				if err != nil {
					return err
				}
				return c.print(tokens)
			},
		},
		update,
		&cobra.Command{
			Use:   "delete <token>",
			Short: "Revoke a token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.client.Tokens.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				return c.ok()
			},
		},
	)
	return cmd
}
