package cart

import (
	"encoding/base64"
	"encoding/json"
)

// Cookie names for the persisted state.
const (
	CookieName          = "brocante_cart"
	FavoritesCookieName = "brocante_favs"
)

// Encode serializes the store for the cart cookie.
func (s *Store) Encode() string {
	b, _ := json.Marshal(s)
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode rehydrates a store from a cookie value. Anything unreadable
// yields an empty store; a stale or tampered cookie must never break
// page rendering.
func Decode(raw string) *Store {
	s := New()
	if raw == "" {
		return s
	}
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return New()
	}
	if err := json.Unmarshal(b, s); err != nil {
		return New()
	}
	// Drop lines a buggy client may have produced.
	out := s.Items[:0]
	seen := map[string]bool{}
	for _, it := range s.Items {
		if it.ProductID == "" || it.Quantity < 1 || seen[it.ProductID] {
			continue
		}
		seen[it.ProductID] = true
		out = append(out, it)
	}
	s.Items = out
	return s
}
