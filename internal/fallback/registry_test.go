package fallback

import (
	"fmt"
	"testing"
	"time"

	"github.com/grachmannico95/pix-relay/internal/clock"
	"github.com/grachmannico95/pix-relay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registryStart = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestPrefixFor(t *testing.T) {
	assert.Equal(t, PrefixDemo, PrefixFor(domain.ReasonNotConfigured))
	assert.Equal(t, PrefixEmergency, PrefixFor(domain.ReasonTransport))
	assert.Equal(t, PrefixFallback, PrefixFor(domain.ReasonNonJSON))
	assert.Equal(t, PrefixFallback, PrefixFor(domain.ReasonDecode))
	assert.Equal(t, PrefixFallback, PrefixFor(domain.ReasonMissingID))
	assert.Equal(t, PrefixFallback, PrefixFor(domain.ReasonMissingPix))
}

func TestIsSynthetic(t *testing.T) {
	cases := map[string]bool{
		"demo-1741608000000":        true,
		"emergency-1741608000000":   true,
		"fallback-1741608000000-3":  true,
		"demo-":                     false,
		"demo-abc":                  false,
		"tx_123":                    false,
		"1741608000000":             false,
		"demonstration-17416080000": false,
	}
	for id, want := range cases {
		assert.Equal(t, want, IsSynthetic(id), id)
	}
}

func TestParseSyntheticID_CreatedAt(t *testing.T) {
	prefix, created, ok := parseSyntheticID(fmt.Sprintf("emergency-%d-2", registryStart.UnixMilli()))
	require.True(t, ok)
	assert.Equal(t, PrefixEmergency, prefix)
	assert.True(t, registryStart.Equal(created))
}

func TestRegistry_NewIDIsUnique(t *testing.T) {
	clk := clock.NewManual(registryStart)
	r := NewRegistry(clk, 0)

	first := r.NewID(PrefixDemo, registryStart)
	r.Put(domain.Transaction{ID: first, CreatedAt: registryStart, ExpiresAt: registryStart.Add(time.Hour)})
	second := r.NewID(PrefixDemo, registryStart)
	r.Put(domain.Transaction{ID: second, CreatedAt: registryStart, ExpiresAt: registryStart.Add(time.Hour)})
	third := r.NewID(PrefixDemo, registryStart)

	assert.Equal(t, fmt.Sprintf("demo-%d", registryStart.UnixMilli()), first)
	assert.Equal(t, first+"-2", second)
	assert.Equal(t, first+"-3", third)
	assert.True(t, IsSynthetic(third))
}

func TestRegistry_Expiry(t *testing.T) {
	clk := clock.NewManual(registryStart)
	r := NewRegistry(clk, 0)

	r.Put(domain.Transaction{ID: "demo-1", CreatedAt: registryStart, ExpiresAt: registryStart.Add(30 * time.Minute)})

	_, ok := r.Get("demo-1")
	assert.True(t, ok)

	clk.Advance(30 * time.Minute)
	_, ok = r.Get("demo-1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_PastExpiryKeptBriefly(t *testing.T) {
	clk := clock.NewManual(registryStart)
	r := NewRegistry(clk, 0)

	r.Put(domain.Transaction{ID: "demo-1", CreatedAt: registryStart, ExpiresAt: registryStart.Add(-time.Second)})

	clk.Advance(59 * time.Second)
	_, ok := r.Get("demo-1")
	assert.True(t, ok)
}

func TestRegistry_EvictsOldestWhenFull(t *testing.T) {
	clk := clock.NewManual(registryStart)
	r := NewRegistry(clk, 2)

	for i := 0; i < 3; i++ {
		created := registryStart.Add(time.Duration(i) * time.Second)
		r.Put(domain.Transaction{
			ID:        fmt.Sprintf("demo-%d", i+1),
			CreatedAt: created,
			ExpiresAt: created.Add(time.Hour),
		})
	}

	assert.Equal(t, 2, r.Len())
	_, ok := r.Get("demo-1")
	assert.False(t, ok, "oldest entry is evicted")
	_, ok = r.Get("demo-3")
	assert.True(t, ok)
}
