package app

import (
	"errors"
	"sort"

	"github.com/spf13/cobra"

	"github.com/billionvectors/asimplevectors-go/v1/asimplevectors"
)

func (c *cli) searchCommand() *cobra.Command {
	var (
		req     asimplevectors.SearchRequest
		version int64
		where   map[string]string
	)
	cmd := &cobra.Command{
		Use:   "search <space>",
		Short: "Nearest neighbour search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(where) > 0 {
				if req.Filter != "" {
					return errors.New("--where and --filter are mutually exclusive")
				}
				filter, err := whereFilter(where)
				if err != nil {
					return err
				}
				req.Filter = filter
			}
			var (
				hits []asimplevectors.SearchResult
				err  error
			)
			if cmd.Flags().Changed("version") {
				hits, err = c.client.Search.SearchByVersion(cmd.Context(), args[0], version, &req)
			} else {
				hits, err = c.client.Search.Search(cmd.Context(), args[0], &req)
			}
			if err != nil {
				return err
			}
			return c.print(hits)
		},
	}
	cmd.Flags().Float32SliceVar(&req.Vector, "vector", nil, "Query vector, comma separated")
	cmd.Flags().IntVar(&req.TopK, "top-k", 0, "Number of results, 0 for the server default")
	cmd.Flags().StringVar(&req.Filter, "filter", "", "Metadata filter expression")
	cmd.Flags().StringToStringVar(&where, "where", nil, "Metadata equality conditions, all must match, e.g. lang=en,meta=first")
	cmd.Flags().Int64Var(&version, "version", 0, "Version id instead of the default version")
	_ = cmd.MarkFlagRequired("vector")
	return cmd
}

// whereFilter turns field=value pairs into an AND filter. Fields are sorted
// so the expression is stable.
func whereFilter(where map[string]string) (string, error) {
	fields := make([]string, 0, len(where))
	for f := range where {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	set := &asimplevectors.FilterSet{}
	for _, f := range fields {
		set.Must = append(set.Must, &asimplevectors.MatchCondition{Field: f, Value: where[f]})
	}
	return set.Build()
}

func (c *cli) rerankCommand() *cobra.Command {
	var (
		req     asimplevectors.RerankRequest
		version int64
	)
	cmd := &cobra.Command{
		Use:   "rerank <space>",
		Short: "Vector search reranked with BM25 over query tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				hits []asimplevectors.RerankResult
				err  error
			)
			if cmd.Flags().Changed("version") {
				hits, err = c.client.Search.RerankByVersion(cmd.Context(), args[0], version, &req)
			} else {
				hits, err = c.client.Search.Rerank(cmd.Context(), args[0], &req)
			}
			if err != nil {
				return err
			}
			return c.print(hits)
		},
	}
	cmd.Flags().Float32SliceVar(&req.Vector, "vector", nil, "Query vector, comma separated")
	cmd.Flags().StringSliceVar(&req.Tokens, "tokens", nil, "Query tokens, comma separated")
	cmd.Flags().IntVar(&req.TopK, "top-k", 0, "Number of results, 0 for the server default")
	cmd.Flags().Int64Var(&version, "version", 0, "Version id instead of the default version")
	_ = cmd.MarkFlagRequired("vector")
	_ = cmd.MarkFlagRequired("tokens")
	return cmd
}
