package identity

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Namespace seeds hash-backed identifiers. It is versioned: changing the
// seed string changes every hash-backed identifier.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/goldenagents/ggdlinker/identity/v1"))

// BlankPrefix marks run-local identifiers.
const BlankPrefix = "_:"

// HashID derives a name-based (version 5) UUID from the ordered parts.
func HashID(parts ...string) uuid.UUID {
	return uuid.NewSHA1(Namespace, []byte(strings.Join(parts, "\x1f")))
}

// IsBlank reports whether id is a run-local identifier.
func IsBlank(id string) bool {
	return strings.HasPrefix(id, BlankPrefix)
}

// minter issues new identifiers. Counters are per category and start at 1.
type minter struct {
	base     string
	mu       sync.Mutex
	counters map[Category]int
}

func newMinter(base string) *minter {
	return &minter{
		base:     base,
		counters: make(map[Category]int),
	}
}

func (m *minter) sequential(c Category) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[c]++
	return fmt.Sprintf("%s%s/%d", m.base, c, m.counters[c])
}

func (m *minter) hashed(c Category, parts ...string) string {
	return m.base + string(c) + "/" + HashID(parts...).String()
}

func (m *minter) blank() string {
	return BlankPrefix + "b" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (m *minter) issued(c Category) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[c]
}

func (m *minter) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = make(map[Category]int)
}
