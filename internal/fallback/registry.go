package fallback

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/domain"
)

// Prefixes of synthetic transaction ids, one per trigger family.
const (
	PrefixDemo      = "demo-"
	PrefixEmergency = "emergency-"
	PrefixFallback  = "fallback-"
)

const defaultRegistrySize = 1024

// PrefixFor maps a fallback trigger to its id prefix.
func PrefixFor(reason string) string {
	switch reason {
	case domain.ReasonNotConfigured:
		return PrefixDemo
	case domain.ReasonTransport:
		return PrefixEmergency
	default:
		return PrefixFallback
	}
}

// IsSynthetic reports whether id was minted by the fallback policy.
func IsSynthetic(id string) bool {
	_, _, ok := parseSyntheticID(id)
	return ok
}

// parseSyntheticID splits "<prefix><unix-ms>[-<seq>]".
func parseSyntheticID(id string) (prefix string, created time.Time, ok bool) {
	for _, p := range []string{PrefixDemo, PrefixEmergency, PrefixFallback} {
		if !strings.HasPrefix(id, p) {
			continue
		}
		rest := strings.TrimPrefix(id, p)
		if i := strings.IndexByte(rest, '-'); i >= 0 {
			rest = rest[:i]
		}
		ms, err := strconv.ParseInt(rest, 10, 64)
		if err != nil || ms <= 0 {
			return "", time.Time{}, false
		}
		return p, time.UnixMilli(ms).UTC(), true
	}
	return "", time.Time{}, false
}

type registryEntry struct {
	tx      domain.Transaction
	expires time.Time
}

// Registry remembers synthesized transactions for the lifetime of their
// PIX expiry so status queries on the same id stay identical. It is
// process-local and bounded.
type Registry struct {
	mu      sync.Mutex
	clock   clock.Clock
	max     int
	entries map[string]registryEntry
}

func NewRegistry(clk clock.Clock, max int) *Registry {
	if max <= 0 {
		max = defaultRegistrySize
	}
	return &Registry{
		clock:   clk,
		max:     max,
		entries: make(map[string]registryEntry),
	}
}

// NewID mints an unused synthetic id for prefix at now.
func (r *Registry) NewID(prefix string, now time.Time) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := prefix + strconv.FormatInt(now.UnixMilli(), 10)
	id := base
	for seq := 2; ; seq++ {
		if _, taken := r.entries[id]; !taken {
			return id
		}
		id = base + "-" + strconv.Itoa(seq)
	}
}

func (r *Registry) Put(tx domain.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	r.evictExpired(now)
	if len(r.entries) >= r.max {
		r.evictOldest(len(r.entries) - r.max + 1)
	}

	expires := tx.ExpiresAt
	if !expires.After(now) {
		expires = now.Add(time.Minute)
	}
	r.entries[tx.ID] = registryEntry{tx: tx, expires: expires}
}

func (r *Registry) Get(id string) (domain.Transaction, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return domain.Transaction{}, false
	}
	if !r.clock.Now().Before(e.expires) {
		delete(r.entries, id)
		return domain.Transaction{}, false
	}
	return e.tx, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) evictExpired(now time.Time) {
	for id, e := range r.entries {
		if !now.Before(e.expires) {
			delete(r.entries, id)
		}
	}
}

func (r *Registry) evictOldest(n int) {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return r.entries[ids[i]].tx.CreatedAt.Before(r.entries[ids[j]].tx.CreatedAt)
	})
	for i := 0; i < n && i < len(ids); i++ {
		delete(r.entries, ids[i])
	}
}
