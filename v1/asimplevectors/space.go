package asimplevectors

import (
	"context"
	"encoding/json"
	"net/http"
)

// SpaceService manages spaces, the top-level vector collections.
type SpaceService struct{ service }

// Metric is a distance function.
type Metric string

const (
	MetricL2     Metric = "L2"
	MetricCosine Metric = "Cosine"
	MetricIP     Metric = "IP"
)

// HNSWConfig tunes the HNSW graph. Unset fields use server defaults.
type HNSWConfig struct {
	M           *int `json:"m,omitempty"`
	EfConstruct *int `json:"ef_construct,omitempty"`
}

// ScalarQuantization selects the scalar type vectors are stored as,
// e.g. "int8" or "float16".
type ScalarQuantization struct {
	Type string `json:"type"`
}

// QuantizationConfig selects how vectors of an index are quantized.
type QuantizationConfig struct {
	Scalar *ScalarQuantization `json:"scalar,omitempty"`
}

// SparseConfig enables a sparse vector index.
type SparseConfig struct {
	Metric Metric `json:"metric"`
}

// IndexConfig describes a named secondary index.
type IndexConfig struct {
	Dimension          int                 `json:"dimension"`
	Metric             Metric              `json:"metric"`
	HNSWConfig         *HNSWConfig         `json:"hnsw_config,omitempty"`
	QuantizationConfig *QuantizationConfig `json:"quantization_config,omitempty"`
}

// DenseConfig overrides the default dense index.
type DenseConfig struct {
	Dimension  int         `json:"dimension"`
	Metric     Metric      `json:"metric"`
	HNSWConfig *HNSWConfig `json:"hnsw_config,omitempty"`
}

// SpaceRequest creates a space. Optional sections are omitted from the
// request when nil.
type SpaceRequest struct {
	Name               string                 `json:"name"`
	Dimension          int                    `json:"dimension"`
	Metric             Metric                 `json:"metric"`
	Description        string                 `json:"description,omitempty"`
	HNSWConfig         *HNSWConfig            `json:"hnsw_config,omitempty"`
	QuantizationConfig *QuantizationConfig    `json:"quantization_config,omitempty"`
	Sparse             *SparseConfig          `json:"sparse,omitempty"`
	Indexes            map[string]IndexConfig `json:"indexes,omitempty"`
	Dense              *DenseConfig           `json:"dense,omitempty"`
}

// SpaceUpdate is a partial update. Only non-nil fields are sent, so the
// server keeps every setting that is left unset here.
type SpaceUpdate struct {
	Dimension          *int                   `json:"dimension,omitempty"`
	Metric             *Metric                `json:"metric,omitempty"`
	Description        *string                `json:"description,omitempty"`
	HNSWConfig         *HNSWConfig            `json:"hnsw_config,omitempty"`
	QuantizationConfig *QuantizationConfig    `json:"quantization_config,omitempty"`
	Sparse             *SparseConfig          `json:"sparse,omitempty"`
	Indexes            map[string]IndexConfig `json:"indexes,omitempty"`
	Dense              *DenseConfig           `json:"dense,omitempty"`
}

// VectorIndex describes one index of a space version as reported by the
// server. Metric and value types are the server's numeric codes.
type VectorIndex struct {
	ID                 int64           `json:"vectorIndexId"`
	Name               string          `json:"name"`
	Dimension          int             `json:"dimension"`
	MetricType         int             `json:"metricType"`
	VectorValueType    int             `json:"vectorValueType"`
	IsDefault          bool            `json:"is_default"`
	HNSWConfig         json.RawMessage `json:"hnswConfig,omitempty"`
	QuantizationConfig json.RawMessage `json:"quantizationConfig,omitempty"`
	CreatedTimeUTC     int64           `json:"created_time_utc"`
	UpdatedTimeUTC     int64           `json:"updated_time_utc"`
}

// SpaceVersion is the default version embedded in a space.
type SpaceVersion struct {
	ID            int64         `json:"versionId"`
	VectorIndices []VectorIndex `json:"vectorIndices"`
}

// Space is the detailed view returned by Get.
type Space struct {
	ID             int64        `json:"spaceId"`
	Name           string       `json:"name"`
	CreatedTimeUTC int64        `json:"created_time_utc"`
	UpdatedTimeUTC int64        `json:"updated_time_utc"`
	Version        SpaceVersion `json:"version"`
}

// SpaceSummary is one entry of List.
type SpaceSummary struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	CreatedTimeUTC int64  `json:"created_time_utc"`
	UpdatedTimeUTC int64  `json:"updated_time_utc"`
}

// Create creates a space. A space with the same name yields an error
// matching ErrConflict when the server reports 409.
//
// Parameters:
//   - req: name, dimension and metric of the default dense index plus the
//     optional HNSW, quantization, dense, sparse and named index sections
//
// Example:
//
//	err := client.Spaces.Create(ctx, &asimplevectors.SpaceRequest{
//	    Name:      "docs",
//	    Dimension: 4,
//	    Metric:    asimplevectors.MetricL2,
//	    HNSWConfig: &asimplevectors.HNSWConfig{
//	        M:           asimplevectors.Int(32),
//	        EfConstruct: asimplevectors.Int(123),
//	    },
//	})
//	if asimplevectors.IsConflict(err) {
//	    // already there
//	}
func (s *SpaceService) Create(ctx context.Context, req *SpaceRequest) error {
	if req == nil || req.Name == "" {
		return invalidArgument("space name is required")
	}
	if req.Dimension <= 0 {
		return invalidArgument("space %q: dimension must be positive, got %d", req.Name, req.Dimension)
	}
	_, _, err := s.transport().send(ctx, "space_create", http.MethodPost, "/api/space", nil, req)
	return err
}

// Get returns the space called name. An unknown name yields an error
// matching ErrNotFound.
func (s *SpaceService) Get(ctx context.Context, name string) (*Space, error) {
	path, err := buildPath("/api/space/%s", name)
	if err != nil {
		return nil, err
	}
	_, body, err := s.transport().send(ctx, "space_get", http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	var space Space
	if err := decodeInto(body, &space, "space", "a space object"); err != nil {
		return nil, err
	}
	return &space, nil
}

// Update applies a partial update to the space called name.
func (s *SpaceService) Update(ctx context.Context, name string, update *SpaceUpdate) error {
	if update == nil {
		return invalidArgument("space %q: update is required", name)
	}
	if update.Dimension != nil && *update.Dimension <= 0 {
		return invalidArgument("space %q: dimension must be positive, got %d", name, *update.Dimension)
	}
	path, err := buildPath("/api/space/%s", name)
	if err != nil {
		return err
	}
	_, _, err = s.transport().send(ctx, "space_update", http.MethodPost, path, nil, update)
	return err
}

// Delete removes the space called name together with its versions and
// vectors.
func (s *SpaceService) Delete(ctx context.Context, name string) error {
	path, err := buildPath("/api/space/%s", name)
	if err != nil {
		return err
	}
	_, _, err = s.transport().send(ctx, "space_delete", http.MethodDelete, path, nil, nil)
	return err
}

// List returns all spaces.
func (s *SpaceService) List(ctx context.Context) ([]SpaceSummary, error) {
	_, body, err := s.transport().send(ctx, "space_list", http.MethodGet, "/api/spaces", nil, nil)
	if err != nil {
		return nil, err
	}
	var wire struct {
		Values []SpaceSummary `json:"values"`
	}
	if err := decodeInto(body, &wire, "values", "a list of spaces"); err != nil {
		return nil, err
	}
	return wire.Values, nil
}
