package resolve

import (
	"fmt"

	gocache "github.com/patrickmn/go-cache"

	"github.com/canonica/canonica/internal/model"
	"github.com/canonica/canonica/internal/units"
)

// Resolver canonicalizes Constants and Instances through the unit registry.
// Entities are immutable once built, so canonical values are cached per
// entity id. The cache is an optimization only; disabling it changes
// nothing observable.
type Resolver struct {
	registry *units.Registry
	cache    *gocache.Cache // nil when caching is disabled
}

// New creates a resolver over a populated registry
func New(registry *units.Registry, cacheEnabled bool) *Resolver {
	r := &Resolver{registry: registry}
	if cacheEnabled {
		r.cache = gocache.New(gocache.NoExpiration, 0)
	}
	return r
}

// Constant resolves a constant's canonical value
func (r *Resolver) Constant(c model.Constant) (float64, error) {
	key := cacheKey("constant", c.ID)
	if v, found := r.cached(key); found {
		return v, nil
	}
	canonical, err := r.registry.ToCanonical(c.UnitID, c.Value)
	if err != nil {
		return 0, err
	}
	r.store(key, canonical)
	return canonical, nil
}

// InstanceLiteral resolves the canonical value of an instance carrying a
// literal observed value
func (r *Resolver) InstanceLiteral(i model.Instance) (float64, error) {
	if i.ObservedValue == nil {
		return 0, fmt.Errorf("instance %q has no literal value", i.ID)
	}
	key := cacheKey("instance", i.ID)
	if v, found := r.cached(key); found {
		return v, nil
	}
	canonical, err := r.registry.ToCanonical(i.UnitID, *i.ObservedValue)
	if err != nil {
		return 0, err
	}
	r.store(key, canonical)
	return canonical, nil
}

// InstanceDerived resolves a derived instance: the source canonical value
// is re-expressed in the instance's own unit, then canonicalized again.
// The round trip through the representation is deliberate; it is what the
// instance models.
func (r *Resolver) InstanceDerived(i model.Instance, sourceCanonical float64) (observed, canonical float64, err error) {
	observed, err = r.registry.FromCanonical(i.UnitID, sourceCanonical)
	if err != nil {
		return 0, 0, err
	}
	canonical, err = r.registry.ToCanonical(i.UnitID, observed)
	if err != nil {
		return 0, 0, err
	}
	r.store(cacheKey("instance", i.ID), canonical)
	return observed, canonical, nil
}

func (r *Resolver) cached(key string) (float64, bool) {
	if r.cache == nil {
		return 0, false
	}
	if v, found := r.cache.Get(key); found {
		return v.(float64), true
	}
	return 0, false
}

func (r *Resolver) store(key string, value float64) {
	if r.cache == nil {
		return
	}
	r.cache.Set(key, value, gocache.NoExpiration)
}

func cacheKey(kind, id string) string {
	return "canonica:v1:" + kind + ":" + id
}
