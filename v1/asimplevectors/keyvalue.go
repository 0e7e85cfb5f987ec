package asimplevectors

import (
	"context"
	"net/http"
)

// KeyValueService stores text values scoped to a space.
type KeyValueService struct{ service }

// KeyList is one page of keys.
type KeyList struct {
	TotalCount int      `json:"total_count"`
	Keys       []string `json:"keys"`
}

type putKeyRequest struct {
	Text string `json:"text"`
}

// Put stores value under key, replacing any previous value.
func (s *KeyValueService) Put(ctx context.Context, space, key, value string) error {
	path, err := buildPath("/api/space/%s/key/%s", space, key)
	if err != nil {
		return err
	}
	_, _, err = s.transport().send(ctx, "key_put", http.MethodPost, path, nil, putKeyRequest{Text: value})
	return err
}

// Get returns the value stored under key. A missing key yields an error
// matching ErrNotFound.
//
// Example:
//
//	value, err := client.KeyValues.Get(ctx, "docs", "schema")
//	switch {
//	case asimplevectors.IsNotFound(err):
//	    value = ""
//	case err != nil:
//	    return err
//	}
func (s *KeyValueService) Get(ctx context.Context, space, key string) (string, error) {
	path, err := buildPath("/api/space/%s/key/%s", space, key)
	if err != nil {
		return "", err
	}
	_, body, err := s.transport().send(ctx, "key_get", http.MethodGet, path, nil, nil)
	if err != nil {
		return "", err
	}
	return decodeKeyValue(body)
}

// List returns a page of the keys of space. Filter is ignored.
func (s *KeyValueService) List(ctx context.Context, space string, opts *ListOptions) (*KeyList, error) {
	path, err := buildPath("/api/space/%s/keys", space)
	if err != nil {
		return nil, err
	}
	_, body, err := s.transport().send(ctx, "key_list", http.MethodGet, path, opts.query(false), nil)
	if err != nil {
		return nil, err
	}
	var list KeyList
	if err := decodeInto(body, &list, "keys", "a list of keys"); err != nil {
		return nil, err
	}
	return &list, nil
}

// Delete removes key. Deleting a missing key yields an error matching
// ErrNotFound, which callers may treat as success.
func (s *KeyValueService) Delete(ctx context.Context, space, key string) error {
	path, err := buildPath("/api/space/%s/key/%s", space, key)
	if err != nil {
		return err
	}
	_, _, err = s.transport().send(ctx, "key_delete", http.MethodDelete, path, nil, nil)
	return err
}
