package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"atelier/internal/model"
)

type fakeStore struct {
	calls   int
	failAll bool
	byName  map[string]string
}

func (f *fakeStore) FindOrCreate(_ context.Context, kind model.ReferenceKind, name string) (string, bool, error) {
	f.calls++
	if f.failAll {
		return "", false, errors.New("store unreachable")
	}
	key := string(kind) + "/" + name
	if id, ok := f.byName[key]; ok {
		return id, false, nil
	}
	if f.byName == nil {
		f.byName = map[string]string{}
	}
	id := key
	f.byName[key] = id
	return id, true, nil
}

func (f *fakeStore) GetByCode(_ context.Context, kind model.ReferenceKind, code string) (string, error) {
	if f.failAll {
		return "", errors.New("store unreachable")
	}
	return string(kind) + "#" + code, nil
}

func newTestResolver(store *fakeStore) *Resolver {
	log := zerolog.Nop()
	return New(store, NewCache(), &log)
}

func TestResolve_SingleFindOrCreatePerName(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	r := newTestResolver(store)
	ctx := context.Background()

	first := r.Resolve(ctx, model.KindTrade, "Plomberie")
	second := r.Resolve(ctx, model.KindTrade, "Plomberie")

	if first == "" || first != second {
		t.Fatalf("ids differ: %q vs %q", first, second)
	}
	if store.calls != 1 {
		t.Fatalf("want exactly 1 find-or-create call, got %d", store.calls)
	}
}

func TestResolve_NormalizedVariantsShareOneEntity(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	r := newTestResolver(store)
	ctx := context.Background()

	a := r.Resolve(ctx, model.KindTrade, "Plomberie")
	b := r.Resolve(ctx, model.KindTrade, "  PLOMBERIE ")
	c := r.Resolve(ctx, model.KindTrade, "plombier") // curated alias

	if a == "" || a != b {
		t.Fatalf("case variants must share one id: %q vs %q", a, b)
	}
	if c != a {
		t.Fatalf("alias must resolve to the canonical entity: %q vs %q", c, a)
	}
}

func TestResolve_IgnoreSentinelSkipsStore(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	r := newTestResolver(store)

	if got := r.Resolve(context.Background(), model.KindTrade, "divers"); got != "" {
		t.Fatalf("ignorable value must resolve to empty, got %q", got)
	}
	if store.calls != 0 {
		t.Fatalf("ignorable value must not hit the store, got %d calls", store.calls)
	}
}

func TestResolve_StoreFailureDegradesToEmpty(t *testing.T) {
	t.Parallel()

	store := &fakeStore{failAll: true}
	r := newTestResolver(store)

	if got := r.Resolve(context.Background(), model.KindAgency, "Nantes"); got != "" {
		t.Fatalf("store failure must degrade to empty id, got %q", got)
	}

	// a failed resolution is not cached; the next call retries
	store.failAll = false
	if got := r.Resolve(context.Background(), model.KindAgency, "Nantes"); got == "" {
		t.Fatalf("recovery after store failure expected")
	}
}

func TestResolve_EmptyAndNullInput(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	r := newTestResolver(store)

	if got := r.Resolve(context.Background(), model.KindZone, "  "); got != "" {
		t.Fatalf("blank input: %q", got)
	}
	if got := r.Resolve(context.Background(), model.KindZone, "null"); got != "" {
		t.Fatalf("null literal: %q", got)
	}
	if store.calls != 0 {
		t.Fatalf("no store calls expected, got %d", store.calls)
	}
}
