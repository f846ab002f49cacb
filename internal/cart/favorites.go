package cart

import (
	"encoding/base64"
	"encoding/json"
)

// Favorites is the client-persisted set of product ids. It is resolved to
// live product records by a catalog lookup at render time; there is no
// server-side favorites entity.
type Favorites struct {
	IDs []string `json:"ids"`
}

func (f *Favorites) Has(productID string) bool {
	for _, id := range f.IDs {
		if id == productID {
			return true
		}
	}
	return false
}

func (f *Favorites) Add(productID string) {
	if productID == "" || f.Has(productID) {
		return
	}
	f.IDs = append(f.IDs, productID)
}

func (f *Favorites) Remove(productID string) {
	out := f.IDs[:0]
	for _, id := range f.IDs {
		if id != productID {
			out = append(out, id)
		}
	}
	f.IDs = out
}

func (f *Favorites) Encode() string {
	b, _ := json.Marshal(f)
	return base64.RawURLEncoding.EncodeToString(b)
}

func DecodeFavorites(raw string) *Favorites {
	f := &Favorites{}
	if raw == "" {
		return f
	}
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return &Favorites{}
	}
	if err := json.Unmarshal(b, f); err != nil {
		return &Favorites{}
	}
	return f
}
