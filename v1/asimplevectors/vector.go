package asimplevectors

import (
	"context"
	"net/http"
)

// VectorService writes and lists vectors.
type VectorService struct{ service }

// Vector is one record of a space version. Upserting an existing ID in the
// same version overwrites it.
type Vector struct {
	ID        int64     `json:"id"`
	Data      []float32 `json:"data"`
	Metadata  Metadata  `json:"metadata,omitempty"`
	Doc       string    `json:"doc,omitempty"`
	DocTokens []string  `json:"doc_tokens,omitempty"`
}

// VectorList is one page of vectors.
type VectorList struct {
	Vectors    []Vector
	TotalCount int
}

type upsertRequest struct {
	Vectors []Vector `json:"vectors"`
}

// Upsert writes vectors into the server's default version of space.
//
// Parameters:
//   - space: name of the target space
//   - vectors: records to write; existing IDs are overwritten
//
// Returns ErrInvalidArgument for an empty batch without contacting the
// server. Dimension mismatches are reported by the server as a StatusError.
//
// Example:
//
//	err := client.Vectors.Upsert(ctx, "docs", []asimplevectors.Vector{
//	    {
//	        ID:       1,
//	        Data:     []float32{0.1, 0.2, 0.3, 0.4},
//	        Metadata: asimplevectors.Metadata{"label": asimplevectors.NewString("first")},
//	    },
//	    {ID: 2, Data: []float32{0.2, 0.3, 0.4, 0.3}},
//	})
func (s *VectorService) Upsert(ctx context.Context, space string, vectors []Vector) error {
	path, err := buildPath("/api/space/%s/vector", space)
	if err != nil {
		return err
	}
	return s.upsert(ctx, "vector_upsert", path, vectors)
}

// UpsertByVersion writes vectors into a specific version of space.
func (s *VectorService) UpsertByVersion(ctx context.Context, space string, version int64, vectors []Vector) error {
	path, err := buildPath("/api/space/%s/version/%s/vector", space, version)
	if err != nil {
		return err
	}
	return s.upsert(ctx, "vector_upsert_by_version", path, vectors)
}

func (s *VectorService) upsert(ctx context.Context, op, path string, vectors []Vector) error {
	if len(vectors) == 0 {
		return invalidArgument("no vectors to upsert")
	}
	for i := range vectors {
		if len(vectors[i].Data) == 0 {
			return invalidArgument("vector %d has no data", vectors[i].ID)
		}
	}
	_, _, err := s.transport().send(ctx, op, http.MethodPost, path, nil, upsertRequest{Vectors: vectors})
	return err
}

// List returns a page of vectors from the server's default version.
//
// Example:
//
//	page, err := client.Vectors.List(ctx, "docs", &asimplevectors.ListOptions{
//	    Start: asimplevectors.Int(0),
//	    Limit: asimplevectors.Int(100),
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(page.TotalCount, len(page.Vectors))
func (s *VectorService) List(ctx context.Context, space string, opts *ListOptions) (*VectorList, error) {
	path, err := buildPath("/api/space/%s/vectors", space)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, "vector_list", path, opts)
}

// ListByVersion returns a page of vectors from one version. The order of
// results across pages is whatever the server returns.
func (s *VectorService) ListByVersion(ctx context.Context, space string, version int64, opts *ListOptions) (*VectorList, error) {
	path, err := buildPath("/api/space/%s/version/%s/vectors", space, version)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, "vector_list_by_version", path, opts)
}

func (s *VectorService) list(ctx context.Context, op, path string, opts *ListOptions) (*VectorList, error) {
	_, body, err := s.transport().send(ctx, op, http.MethodGet, path, opts.query(true), nil)
	if err != nil {
		return nil, err
	}
	return flattenVectors(body)
}
