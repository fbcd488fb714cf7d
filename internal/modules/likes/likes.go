// Package likes keeps a session's liked products.
package likes

import "github.com/drashti611/gowear-frontend/internal/modules/catalog"

type Entry struct {
	catalog.Product
}

// Toggle removes product when present and appends it otherwise; liked
// reports the state after the call.
func Toggle(likes []Entry, p catalog.Product) (out []Entry, liked bool) {
	if Contains(likes, p.ID) {
		return Remove(likes, p.ID), false
	}
	out = make([]Entry, len(likes), len(likes)+1)
	copy(out, likes)
	return append(out, Entry{Product: p}), true
}

func Remove(likes []Entry, productID string) []Entry {
	out := make([]Entry, 0, len(likes))
	for _, e := range likes {
		if e.ID != productID {
			out = append(out, e)
		}
	}
	return out
}

func Contains(likes []Entry, productID string) bool {
	for _, e := range likes {
		if e.ID == productID {
			return true
		}
	}
	return false
}

func Find(likes []Entry, productID string) (Entry, bool) {
	for _, e := range likes {
		if e.ID == productID {
			return e, true
		}
	}
	return Entry{}, false
}
