package asimplevectors

import (
	"context"
	"net/http"
)

// VersionService manages the versions of a space.
type VersionService struct{ service }

// VersionRequest creates a version.
type VersionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Tag         string `json:"tag,omitempty"`
	IsDefault   bool   `json:"is_default"`
}

// Version is a named, isolated set of vectors inside a space. Timestamps
// are Unix seconds in UTC.
type Version struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	IsDefault      bool   `json:"is_default"`
	Tag            string `json:"tag,omitempty"`
	CreatedTimeUTC int64  `json:"created_time_utc"`
	UpdatedTimeUTC int64  `json:"updated_time_utc"`
}

// VersionList is one page of versions.
type VersionList struct {
	TotalCount int       `json:"total_count"`
	Values     []Version `json:"values"`
}

// Create adds a version to space. Marking it default moves the default
// flag on the server.
//
// Parameters:
//   - space: name of the owning space
//   - req: version name, optional description and tag, default flag
//
// Example:
//
//	err := client.Versions.Create(ctx, "docs", &asimplevectors.VersionRequest{
//	    Name:      "v2",
//	    Tag:       "reindex",
//	    IsDefault: true,
//	})
func (s *VersionService) Create(ctx context.Context, space string, req *VersionRequest) error {
	if req == nil || req.Name == "" {
		return invalidArgument("version name is required")
	}
	path, err := buildPath("/api/space/%s/version", space)
	if err != nil {
		return err
	}
	_, _, err = s.transport().send(ctx, "version_create", http.MethodPost, path, nil, req)
	return err
}

// List returns a page of the versions of space. Filter is ignored.
func (s *VersionService) List(ctx context.Context, space string, opts *ListOptions) (*VersionList, error) {
	path, err := buildPath("/api/space/%s/versions", space)
	if err != nil {
		return nil, err
	}
	_, body, err := s.transport().send(ctx, "version_list", http.MethodGet, path, opts.query(false), nil)
	if err != nil {
		return nil, err
	}
	var list VersionList
	if err := decodeInto(body, &list, "values", "a list of versions"); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns one version by id.
func (s *VersionService) Get(ctx context.Context, space string, id int64) (*Version, error) {
	path, err := buildPath("/api/space/%s/version/%s", space, id)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, "version_get", path)
}

// GetDefault returns the version the server currently treats as default.
func (s *VersionService) GetDefault(ctx context.Context, space string) (*Version, error) {
	path, err := buildPath("/api/space/%s/version", space)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, "version_get_default", path)
}

func (s *VersionService) get(ctx context.Context, op, path string) (*Version, error) {
	_, body, err := s.transport().send(ctx, op, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	var v Version
	if err := decodeInto(body, &v, "version", "a version object"); err != nil {
		return nil, err
	}
	return &v, nil
}

// Delete removes a version and its vectors.
func (s *VersionService) Delete(ctx context.Context, space string, id int64) error {
	path, err := buildPath("/api/space/%s/version/%s", space, id)
	if err != nil {
		return err
	}
	_, _, err = s.transport().send(ctx, "version_delete", http.MethodDelete, path, nil, nil)
	return err
}
