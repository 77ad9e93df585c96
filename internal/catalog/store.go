package catalog

import (
	"sync/atomic"
)

// Snapshot is a dataset together with the facets and stats derived from it.
// Both are computed once per dataset and never change afterwards.
type Snapshot struct {
	Dataset *Dataset
	Facets  Facets
	Stats   Stats
}

// Store publishes the current snapshot. Readers take the snapshot once and
// keep using it; a reload swaps in a new one without touching old readers.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store holding ds. A nil ds yields an empty catalog.
func NewStore(ds *Dataset) *Store {
	s := &Store{}
	s.Replace(ds)
	return s
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Dataset returns the current dataset.
func (s *Store) Dataset() *Dataset {
	return s.Snapshot().Dataset
}

// Replace publishes ds with its facets and stats.
func (s *Store) Replace(ds *Dataset) *Snapshot {
	if ds == nil {
		ds = NewDataset(nil)
	}
	snap := &Snapshot{
		Dataset: ds,
		Facets:  ExtractFacets(ds.view()),
		Stats:   ComputeStats(ds.view()),
	}
	s.current.Store(snap)
	return snap
}
