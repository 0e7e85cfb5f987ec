package asimplevectors

import "sync/atomic"

// AuthContext holds the bearer token applied to outgoing requests.
// It is safe for concurrent use; the last SetToken wins.
type AuthContext struct {
	token atomic.Pointer[string]
}

// SetToken replaces the current token. An empty token clears it.
func (a *AuthContext) SetToken(token string) {
	if token == "" {
		a.token.Store(nil)
		return
	}
	a.token.Store(&token)
}

// Token returns the current token or "" when none is set.
func (a *AuthContext) Token() string {
	if t := a.token.Load(); t != nil {
		return *t
	}
	return ""
}

// ClearToken removes the current token.
func (a *AuthContext) ClearToken() {
	a.token.Store(nil)
}
