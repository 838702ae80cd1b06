package history

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruleofthree/internal/proportion"
	"ruleofthree/internal/storage"
)

func calc(n int) Calculation {
	a := float64(n)
	return Calculation{
		Mode:      proportion.Direct,
		Values:    Values{A: a, B: 10, C: 5, X: proportion.Round2(50 / a)},
		Formula:   proportion.DirectFormula,
		Timestamp: fmt.Sprintf("10:00:%02d", n),
	}
}

type failingStore struct {
	storage.Store
	err error
}

func (f failingStore) Set(context.Context, string, string) error { return f.err }
func (f failingStore) Delete(context.Context, string) error      { return f.err }
func (f failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, f.err
}

func TestRecordKeepsNewestFiveFirst(t *testing.T) {
	ctx := context.Background()
	h := New(storage.NewMemory(), "")

	for i := 1; i <= 6; i++ {
		require.NoError(t, h.Record(ctx, calc(i)))
		assert.LessOrEqual(t, h.Len(), MaxEntries)
	}

	entries := h.Entries()
	require.Len(t, entries, MaxEntries)
	for i, e := range entries {
		assert.Equal(t, float64(6-i), e.Values.A, "entry %d", i)
	}
}

func TestRecordPersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	h := New(store, DefaultKey)
	for i := 1; i <= 7; i++ {
		require.NoError(t, h.Record(ctx, calc(i)))
	}

	raw, ok, err := store.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)

	want, err := Marshal(h.Entries())
	require.NoError(t, err)
	assert.Equal(t, want, raw)

	reloaded := New(store, DefaultKey)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, h.Entries(), reloaded.Entries())
}

func TestPersistedFormat(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	h := New(store, "")

	require.NoError(t, h.Record(ctx, Calculation{
		Mode:      proportion.Inverse,
		Values:    Values{A: 4, B: 6, C: 2, X: 12},
		Formula:   proportion.InverseFormula,
		Timestamp: "14:05:09",
	}))

	raw, _, err := store.Get(ctx, "ruleOfThreeHistory")
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"mode":"inverse","values":{"a":4,"b":6,"c":2,"x":12},"formula":"X = (A × B) ÷ C","timestamp":"14:05:09"}]`,
		raw,
	)
}

func TestClearRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	h := New(store, "")
	require.NoError(t, h.Record(ctx, calc(1)))

	err := h.Clear(ctx, false)
	require.ErrorIs(t, err, ErrClearNotConfirmed)
	assert.Equal(t, 1, h.Len())

	require.NoError(t, h.Clear(ctx, true))
	assert.Equal(t, 0, h.Len())

	_, ok, err := store.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok, "clear removes the persisted key")

	reloaded := New(store, "")
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, 0, reloaded.Len())
}

func TestLoadEmptyRepresentations(t *testing.T) {
	ctx := context.Background()

	for _, raw := range []string{"[]", "null", "", "  "} {
		t.Run(fmt.Sprintf("%q", raw), func(t *testing.T) {
			store := storage.NewMemory()
			require.NoError(t, store.Set(ctx, DefaultKey, raw))

			h := New(store, "")
			require.NoError(t, h.Load(ctx))
			assert.Equal(t, 0, h.Len())

			_, ok := h.MostRecent()
			assert.False(t, ok)
		})
	}

	h := New(storage.NewMemory(), "")
	require.NoError(t, h.Load(ctx))
	assert.Equal(t, 0, h.Len())
}

func TestLoadTruncatesOverlongHistory(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	entries := make([]Calculation, 0, 8)
	for i := 8; i >= 1; i-- {
		entries = append(entries, calc(i))
	}
	raw, err := Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, DefaultKey, raw))

	h := New(store, "")
	require.NoError(t, h.Load(ctx))
	require.Equal(t, MaxEntries, h.Len())
	assert.Equal(t, entries[:MaxEntries], h.Entries())
}

func TestLoadRejectsCorruptHistory(t *testing.T) {
	ctx := context.Background()

	for _, raw := range []string{"{not json", `[{"mode":"sideways"}]`} {
		store := storage.NewMemory()
		require.NoError(t, store.Set(ctx, DefaultKey, raw))

		h := New(store, "")
		require.Error(t, h.Load(ctx))
		assert.Equal(t, 0, h.Len())
	}
}

func TestRecordDegradesWhenStoreFails(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("quota exceeded")
	h := New(failingStore{err: boom}, "")

	err := h.Record(ctx, calc(1))
	require.ErrorIs(t, err, ErrPersist)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, h.Len())

	err = h.Clear(ctx, true)
	require.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, 0, h.Len())

	require.Error(t, h.Load(ctx))
}

func TestNilStoreKeepsHistoryInMemory(t *testing.T) {
	ctx := context.Background()
	h := New(nil, "")

	require.NoError(t, h.Load(ctx))
	require.NoError(t, h.Record(ctx, calc(2)))
	assert.Equal(t, 1, h.Len())
	require.NoError(t, h.Clear(ctx, true))
	assert.Equal(t, 0, h.Len())
}

func TestMostRecent(t *testing.T) {
	ctx := context.Background()
	h := New(storage.NewMemory(), "")

	require.NoError(t, h.Record(ctx, calc(1)))
	require.NoError(t, h.Record(ctx, calc(2)))

	in, ok := h.MostRecent()
	require.True(t, ok)
	assert.Equal(t, Inputs{A: 2, B: 10, C: 5}, in)
}

func TestEntriesReturnsCopy(t *testing.T) {
	ctx := context.Background()
	h := New(nil, "")
	require.NoError(t, h.Record(ctx, calc(1)))

	entries := h.Entries()
	entries[0].Formula = "changed"

	assert.Equal(t, proportion.DirectFormula, h.Entries()[0].Formula)
}

func TestSummary(t *testing.T) {
	c := Calculation{Values: Values{A: 2, B: 10, C: 5, X: 25}}
	assert.Equal(t, "2 → 10 | 5 → 25", c.Summary())

	c = Calculation{Values: Values{A: 3, B: 1, C: 2, X: 0.67}}
	assert.Equal(t, "3 → 1 | 2 → 0.67", c.Summary())
}

func TestMarshalNil(t *testing.T) {
	raw, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}
