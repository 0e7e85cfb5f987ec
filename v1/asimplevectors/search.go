package asimplevectors

import (
	"context"
	"net/http"
)

// SearchService runs similarity search and BM25 rerank. Scoring and
// ordering are done by the server; results are returned as received.
type SearchService struct{ service }

// SearchRequest is a nearest neighbour query. TopK bounds the number of
// results; zero leaves it to the server. Filter is passed through as is.
type SearchRequest struct {
	Vector []float32 `json:"vector"`
	TopK   int       `json:"top_k,omitempty"`
	Filter string    `json:"filter,omitempty"`
}

// SearchResult is one hit. Label is the vector ID.
type SearchResult struct {
	Distance float32 `json:"distance"`
	Label    int64   `json:"label"`
}

// RerankRequest combines a query vector with query tokens for BM25.
type RerankRequest struct {
	Vector []float32 `json:"vector"`
	Tokens []string  `json:"tokens"`
	TopK   int       `json:"top_k,omitempty"`
}

// RerankResult is one reranked hit. ID is the vector ID; Distance is the
// vector distance and BM25Score the text score of its doc tokens against
// the query tokens.
type RerankResult struct {
	ID        int64   `json:"vectorUniqueId"`
	Distance  float32 `json:"distance"`
	BM25Score float32 `json:"bm25Score"`
}

// Search queries the server's default version of space.
//
// Parameters:
//   - space: name of the space to query
//   - req: query vector, result bound and an optional filter expression
//
// Returns the hits in server order. A nil req or an empty vector fails
// with ErrInvalidArgument before any request is made.
//
// Example:
//
//	filter, err := asimplevectors.FilterSet{
//	    Should: []asimplevectors.FilterCondition{
//	        asimplevectors.MatchCondition{Field: "meta", Value: "first"},
//	        asimplevectors.MatchCondition{Field: "meta", Value: "second"},
//	    },
//	}.Build()
//	if err != nil {
//	    return err
//	}
//	hits, err := client.Search.Search(ctx, "docs", &asimplevectors.SearchRequest{
//	    Vector: []float32{0.2, 0.3, 0.4, 0.5},
//	    TopK:   5,
//	    Filter: filter,
//	})
func (s *SearchService) Search(ctx context.Context, space string, req *SearchRequest) ([]SearchResult, error) {
	path, err := buildPath("/api/space/%s/search", space)
	if err != nil {
		return nil, err
	}
	return s.search(ctx, "search", path, req)
}

// SearchByVersion queries one version of space.
func (s *SearchService) SearchByVersion(ctx context.Context, space string, version int64, req *SearchRequest) ([]SearchResult, error) {
	path, err := buildPath("/api/space/%s/version/%s/search", space, version)
	if err != nil {
		return nil, err
	}
	return s.search(ctx, "search_by_version", path, req)
}

func (s *SearchService) search(ctx context.Context, op, path string, req *SearchRequest) ([]SearchResult, error) {
	if req == nil || len(req.Vector) == 0 {
		return nil, invalidArgument("search needs a query vector")
	}
	if req.TopK < 0 {
		return nil, invalidArgument("top_k must not be negative, got %d", req.TopK)
	}
	_, body, err := s.transport().send(ctx, op, http.MethodPost, path, nil, req)
	if err != nil {
		return nil, err
	}
	var results []SearchResult
	if err := decodeInto(body, &results, "results", "an array of search results"); err != nil {
		return nil, err
	}
	return results, nil
}

// Rerank runs a vector search rescored with BM25 against the default
// version of space. Only vectors upserted with DocTokens take part in the
// text score.
//
// Example:
//
//	results, err := client.Search.Rerank(ctx, "docs", &asimplevectors.RerankRequest{
//	    Vector: []float32{0.2, 0.3, 0.4, 0.5},
//	    Tokens: []string{"vector", "database"},
//	    TopK:   3,
//	})
func (s *SearchService) Rerank(ctx context.Context, space string, req *RerankRequest) ([]RerankResult, error) {
	path, err := buildPath("/api/space/%s/rerank", space)
	if err != nil {
		return nil, err
	}
	return s.rerank(ctx, "rerank", path, req)
}

// RerankByVersion is Rerank against one version of space.
func (s *SearchService) RerankByVersion(ctx context.Context, space string, version int64, req *RerankRequest) ([]RerankResult, error) {
	path, err := buildPath("/api/space/%s/version/%s/rerank", space, version)
	if err != nil {
		return nil, err
	}
	return s.rerank(ctx, "rerank_by_version", path, req)
}

func (s *SearchService) rerank(ctx context.Context, op, path string, req *RerankRequest) ([]RerankResult, error) {
	if req == nil || len(req.Vector) == 0 {
		return nil, invalidArgument("rerank needs a query vector")
	}
	if len(req.Tokens) == 0 {
		return nil, invalidArgument("rerank needs query tokens")
	}
	if req.TopK < 0 {
		return nil, invalidArgument("top_k must not be negative, got %d", req.TopK)
	}
	_, body, err := s.transport().send(ctx, op, http.MethodPost, path, nil, req)
	if err != nil {
		return nil, err
	}
	var results []RerankResult
	if err := decodeInto(body, &results, "results", "an array of rerank results"); err != nil {
		return nil, err
	}
	return results, nil
}
