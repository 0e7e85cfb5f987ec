package asimplevectors

import (
	"context"
	"net/http"
)

// TokenService manages RBAC bearer tokens.
type TokenService struct{ service }

// Permission is the access level a token grants on one resource family.
type Permission int

// Permission levels.
const (
	PermissionDeny  Permission = 0
	PermissionRead  Permission = 1
	PermissionWrite Permission = 2
)

// TokenRequest sets the permission levels of a token. SpaceID 0 scopes the
// token to all spaces.
type TokenRequest struct {
	SpaceID  int64      `json:"space_id"`
	System   Permission `json:"system"`
	Space    Permission `json:"space"`
	Version  Permission `json:"version"`
	Vector   Permission `json:"vector"`
	Search   Permission `json:"search"`
	Snapshot Permission `json:"snapshot"`
	Security Permission `json:"security"`
	KeyValue Permission `json:"keyvalue"`
}

// Token is a stored token as returned by List.
type Token struct {
	ID            int64      `json:"id"`
	SpaceID       int64      `json:"space_id"`
	Token         string     `json:"token"`
	ExpireTimeUTC int64      `json:"expire_time_utc"`
	System        Permission `json:"system"`
	Space         Permission `json:"space"`
	Version       Permission `json:"version"`
	Vector        Permission `json:"vector"`
	Search        Permission `json:"search"`
	Snapshot      Permission `json:"snapshot"`
	Security      Permission `json:"security"`
	KeyValue      Permission `json:"keyvalue"`
}

// CreatedToken carries the newly minted bearer value. It is only returned
// once; the caller has to keep it.
type CreatedToken struct {
	Result string `json:"result"`
	Token  string `json:"token"`
}

// Create mints a token with the given permission levels.
//
// Returns the bearer value, which the server does not hand out again.
//
// Example:
//
//	created, err := client.Tokens.Create(ctx, &asimplevectors.TokenRequest{
//	    Space:  asimplevectors.PermissionWrite,
//	    Vector: asimplevectors.PermissionWrite,
//	    Search: asimplevectors.PermissionRead,
//	})
//	if err != nil {
//	    return err
//	}
//	client.SetToken(created.Token)
func (s *TokenService) Create(ctx context.Context, req *TokenRequest) (*CreatedToken, error) {
	if req == nil {
		return nil, invalidArgument("token request is required")
	}
	_, body, err := s.transport().send(ctx, "token_create", http.MethodPost, "/api/security/tokens", nil, req)
	if err != nil {
		return nil, err
	}
	var created CreatedToken
	if err := decodeInto(body, &created, "token", "a created token"); err != nil {
		return nil, err
	}
	if created.Token == "" {
		return nil, &EnvelopeError{Field: "token", Expected: "a non-empty bearer token", Body: body}
	}
	return &created, nil
}

// List returns all tokens.
func (s *TokenService) List(ctx context.Context) ([]Token, error) {
	_, body, err := s.transport().send(ctx, "token_list", http.MethodGet, "/api/security/tokens", nil, nil)
	if err != nil {
		return nil, err
	}
	var wire struct {
		Tokens []Token `json:"tokens"`
	}
	if err := decodeInto(body, &wire, "tokens", "a list of tokens"); err != nil {
		return nil, err
	}
	return wire.Tokens, nil
}

// Update replaces the permission levels of token.
func (s *TokenService) Update(ctx context.Context, token string, req *TokenRequest) error {
	if req == nil {
		return invalidArgument("token request is required")
	}
	path, err := buildPath("/api/security/tokens/%s", token)
	if err != nil {
		return err
	}
	_, _, err = s.transport().send(ctx, "token_update", http.MethodPut, path, nil, req)
	return err
}

// Delete revokes token.
func (s *TokenService) Delete(ctx context.Context, token string) error {
	path, err := buildPath("/api/security/tokens/%s", token)
	if err != nil {
		return err
	}
	_, _, err = s.transport().send(ctx, "token_delete", http.MethodDelete, path, nil, nil)
	return err
}
