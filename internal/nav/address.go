package nav

import (
	"net/url"
	"strings"
	"sync"
)

// Address is the shareable location of the current view, e.g. a URL
// fragment. Push adds a history entry; Replace rewrites the current one.
type Address interface {
	Fragment() string
	Push(fragment string)
	Replace(fragment string)
}

// EncodeFragment percent-encodes id for use as an address fragment.
func EncodeFragment(id string) string {
	return url.PathEscape(id)
}

// DecodeFragment decodes a fragment produced by EncodeFragment. A leading
// "#" is ignored. Malformed percent-encoding degrades to the raw text.
func DecodeFragment(fragment string) string {
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	id, err := url.PathUnescape(fragment)
	if err != nil {
		return fragment
	}
	return id
}

// MemoryAddress is an in-process Address with back/forward history.
type MemoryAddress struct {
	mu      sync.Mutex
	entries []string
	pos     int
}

// NewMemoryAddress returns an address positioned at fragment.
func NewMemoryAddress(fragment string) *MemoryAddress {
	return &MemoryAddress{entries: []string{fragment}}
}

// Fragment returns the current fragment.
func (a *MemoryAddress) Fragment() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.entries[a.pos]
}

// Push adds a history entry, discarding any forward entries. Pushing the
// current fragment again is a no-op.
func (a *MemoryAddress) Push(fragment string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.entries[a.pos] == fragment {
		return
	}
	a.entries = append(a.entries[:a.pos+1], fragment)
	a.pos++
}

// Replace rewrites the current entry.
func (a *MemoryAddress) Replace(fragment string) {
	a.mu.Lock()
	a.entries[a.pos] = fragment
	a.mu.Unlock()
}

// Back moves one entry back and reports whether it moved.
func (a *MemoryAddress) Back() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pos == 0 {
		return false
	}
	a.pos--
	return true
}

// Forward moves one entry forward and reports whether it moved.
func (a *MemoryAddress) Forward() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pos == len(a.entries)-1 {
		return false
	}
	a.pos++
	return true
}

// Len returns the number of history entries.
func (a *MemoryAddress) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}
