package catalog

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReplaceKeepsOldSnapshots(t *testing.T) {
	store := NewStore(NewDataset(sampleCards()))
	old := store.Snapshot()

	store.Replace(NewDataset(generatedCards(3)))

	assert.Equal(t, 6, old.Dataset.Len(), "readers keep the snapshot they took")
	assert.True(t, old.Facets.HasRace("Dragon"))
	assert.Equal(t, 3, store.Dataset().Len())
	assert.Equal(t, []string{"Warrior"}, store.Snapshot().Facets.Races)
	assert.Equal(t, 3, store.Snapshot().Stats.Total)
	assert.Equal(t, 6, old.Stats.Total)
}

func TestStore_NilDataset(t *testing.T) {
	store := NewStore(nil)
	assert.Equal(t, 0, store.Dataset().Len())
	assert.Empty(t, store.Snapshot().Facets.Races)
}

func TestWatcher_ReloadKeepsPreviousOnFailure(t *testing.T) {
	path := writeFile(t, twoCardDocument)
	store := NewStore(NewDataset(sampleCards()))

	var reloaded int
	w, err := NewWatcher(WatcherConfig{Path: path, Store: store, OnReload: func(*Snapshot) { reloaded++ }})
	require.NoError(t, err)

	assert.True(t, w.Reload(context.Background()))
	assert.Equal(t, 2, store.Dataset().Len())
	assert.Equal(t, 1, reloaded)

	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))
	assert.False(t, w.Reload(context.Background()))
	assert.Equal(t, 2, store.Dataset().Len())
	assert.Equal(t, 1, reloaded)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeFile(t, `{"data": []}`)
	store := NewStore(nil)

	done := make(chan *Snapshot, 1)
	w, err := NewWatcher(WatcherConfig{
		Path:  path,
		Store: store,
		OnReload: func(s *Snapshot) {
			select {
			case done <- s:
			default:
			}
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(twoCardDocument), 0o644))

	select {
	case snap := <-done:
		assert.Equal(t, 2, snap.Dataset.Len())
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload after write")
	}

	cancel()
	assert.NoError(t, <-errCh)
}

func TestNewWatcher_Validation(t *testing.T) {
	_, err := NewWatcher(WatcherConfig{Store: NewStore(nil)})
	assert.Error(t, err)

	_, err = NewWatcher(WatcherConfig{Path: "card.json"})
	assert.Error(t, err)
}
