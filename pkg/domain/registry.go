package domain

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// domainRegistry is the process-wide cache of constructed domains, keyed by
// the canonicalized expanded space tuple. It owns the canonical instances;
// callers receive shared read-only references. Downstream code relies on
// domain identity for its own caching, so two logically equal constructions
// must return the same pointer.
var domainRegistry = struct {
	mu      sync.Mutex
	domains map[string]*Domain
	hits    uint64
	misses  uint64
}{domains: make(map[string]*Domain)}

// NewDomain returns the shared domain for the given space set, constructing
// and registering it on first request. The argument order is irrelevant: the
// cache key is the expanded per-axis tuple.
func NewDomain(spaces []Space) (*Domain, error) {
	expanded, err := ExpandSpaces(spaces)
	if err != nil {
		return nil, err
	}
	key := registryKey(expanded)
	domainRegistry.mu.Lock()
	defer domainRegistry.mu.Unlock()
	if d, ok := domainRegistry.domains[key]; ok {
		domainRegistry.hits++
		return d, nil
	}
	d := newDomain(expanded)
	domainRegistry.domains[key] = d
	domainRegistry.misses++
	return d, nil
}

// registryKey canonicalizes an expanded space tuple. Space identity is
// pointer identity: distributors return stable constant-space instances and
// user spaces are immutable, so the pointer tuple is a faithful key.
func registryKey(expanded []Space) string {
	var b strings.Builder
	for _, s := range expanded {
		fmt.Fprintf(&b, "%p|", s)
	}
	return b.String()
}

// RegistryStats is a snapshot of domain registry cache behavior.
type RegistryStats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// DomainRegistryStats returns current registry cache counters.
func DomainRegistryStats() RegistryStats {
	domainRegistry.mu.Lock()
	defer domainRegistry.mu.Unlock()
	return RegistryStats{
		Hits:   domainRegistry.hits,
		Misses: domainRegistry.misses,
		Size:   len(domainRegistry.domains),
	}
}

// resetDomainRegistry clears the registry. Tests only.
func resetDomainRegistry() {
	domainRegistry.mu.Lock()
	defer domainRegistry.mu.Unlock()
	domainRegistry.domains = make(map[string]*Domain)
	domainRegistry.hits = 0
	domainRegistry.misses = 0
}

// shapeCache memoizes grid-shape computations by normalized scale tuple.
// Population is monotonic and never invalidated; first-time fills are
// serialized under the cache mutex.
type shapeCache struct {
	mu     sync.Mutex
	shapes map[string][]int
}

func newShapeCache() *shapeCache {
	return &shapeCache{shapes: make(map[string][]int)}
}

func (c *shapeCache) get(remedied []float64, compute func() ([]int, error)) ([]int, error) {
	key := scaleKey(remedied)
	c.mu.Lock()
	defer c.mu.Unlock()
	shape, ok := c.shapes[key]
	if !ok {
		var err error
		shape, err = compute()
		if err != nil {
			return nil, err
		}
		c.shapes[key] = shape
	}
	out := make([]int, len(shape))
	copy(out, shape)
	return out, nil
}

// scaleKey renders a remedied scale tuple as a stable string key.
func scaleKey(scales []float64) string {
	var b strings.Builder
	for _, s := range scales {
		b.WriteString(strconv.FormatFloat(s, 'g', -1, 64))
		b.WriteByte(',')
	}
	return b.String()
}
