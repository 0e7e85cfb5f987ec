package app

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billionvectors/asimplevectors-go/v1/asimplevectors"
)

func (c *cli) vectorCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "vector", Short: "Write and list vectors"}

	var (
		file    string
		version int64
	)
	upsert := &cobra.Command{
		Use:   "upsert <space>",
		Short: "Upsert vectors from a JSON file",
		Long: `Upsert vectors from a JSON file holding either an array of vectors or
{"vectors": [...]}. Each vector has id, data and optional metadata, doc
and doc_tokens.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vectors, err := readVectors(cmd, file)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("version") {
				err = c.client.Vectors.UpsertByVersion(cmd.Context(), args[0], version, vectors)
			} else {
				err = c.client.Vectors.Upsert(cmd.Context(), args[0], vectors)
			}
			if err != nil {
				return err
			}
			return c.print(map[string]interface{}{"result": "success", "count": len(vectors)})
		},
	}
	upsert.Flags().StringVarP(&file, "file", "f", "", "JSON vectors, - for stdin")
	upsert.Flags().Int64Var(&version, "version", 0, "Target version id instead of the default version")
	_ = upsert.MarkFlagRequired("file")

	var listVersion int64
	list := &cobra.Command{
		Use:   "list <space>",
		Short: "List vectors",
		Args:  cobra.ExactArgs(1),
	}
	listOpts := listFlags(list, true)
	list.Flags().Int64Var(&listVersion, "version", 0, "Version id instead of the default version")
	list.RunE = func(cmd *cobra.Command, args []string) error {
		var (
			page *asimplevectors.VectorList
			err  error
		)
		if cmd.Flags().Changed("version") {
			page, err = c.client.Vectors.ListByVersion(cmd.Context(), args[0], listVersion, listOpts())
		} else {
			page, err = c.client.Vectors.List(cmd.Context(), args[0], listOpts())
		}
		if err != nil {
			return err
		}
		return c.print(map[string]interface{}{
			"vectors":     page.Vectors,
			"total_count": page.TotalCount,
		})
	}

	cmd.AddCommand(upsert, list)
	return cmd
}

// readVectors accepts either a bare array or {"vectors": [...]}.
func readVectors(cmd *cobra.Command, path string) ([]asimplevectors.Vector, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}

	var vectors []asimplevectors.Vector
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &vectors)
	} else {
		var wrapped struct {
			Vectors []asimplevectors.Vector `json:"vectors"`
		}
		err = json.Unmarshal(data, &wrapped)
		vectors = wrapped.Vectors
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%s holds no vectors", path)
	}
	return vectors, nil
}
