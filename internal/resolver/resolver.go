package resolver

import (
	"context"

	"github.com/rs/zerolog"

	"atelier/internal/model"
	"atelier/internal/parser"
)

// ReferenceStore is the persistence surface the resolver depends on. The
// implementation must treat a duplicate-key collision as success with the
// existing id, not as an error.
type ReferenceStore interface {
	FindOrCreate(ctx context.Context, kind model.ReferenceKind, name string) (id string, created bool, err error)
	GetByCode(ctx context.Context, kind model.ReferenceKind, code string) (string, error)
}

// Resolver resolves raw reference names to stable ids: alias table first,
// then the run-scoped cache, then find-or-create against the store. Within
// one run, at most one find-or-create call is issued per distinct normalized
// name.
type Resolver struct {
	store ReferenceStore
	cache *Cache
	log   *zerolog.Logger
}

// New creates a resolver bound to one run-scoped cache.
func New(store ReferenceStore, cache *Cache, log *zerolog.Logger) *Resolver {
	return &Resolver{store: store, cache: cache, log: log}
}

// Resolve maps a raw reference name to its id. Returns "" when the value is
// empty, curated as ignorable, or when the store call fails; a failed
// resolution never aborts row mapping.
func (r *Resolver) Resolve(ctx context.Context, kind model.ReferenceKind, rawName string) string {
	name := parser.CleanString(rawName)
	if name == "" {
		return ""
	}

	normalized := parser.NormalizeKey(name)

	if alias, ok := lookupAlias(kind, normalized); ok {
		if alias.Ignore {
			if r.log != nil {
				r.log.Debug().Str("kind", string(kind)).Str("raw", rawName).Msg("reference value curated as ignorable")
			}
			return ""
		}
		name = alias.Name
		normalized = parser.NormalizeKey(name)
	}

	if id, ok := r.cache.Get(kind, normalized); ok {
		return id
	}

	id, created, err := r.store.FindOrCreate(ctx, kind, name)
	if err != nil {
		if r.log != nil {
			r.log.Warn().Err(err).Str("kind", string(kind)).Str("name", name).Msg("reference resolution failed")
		}
		return ""
	}
	if created && r.log != nil {
		r.log.Info().Str("kind", string(kind)).Str("name", name).Str("id", id).Msg("reference entity created")
	}

	r.cache.Put(kind, normalized, id)
	return id
}

// ResolveByCode resolves a reference by its stable code instead of its name.
// Not cached: codes are rare and already unambiguous.
func (r *Resolver) ResolveByCode(ctx context.Context, kind model.ReferenceKind, code string) string {
	code = parser.CleanString(code)
	if code == "" {
		return ""
	}
	id, err := r.store.GetByCode(ctx, kind, code)
	if err != nil {
		if r.log != nil {
			r.log.Warn().Err(err).Str("kind", string(kind)).Str("code", code).Msg("reference code lookup failed")
		}
		return ""
	}
	return id
}
