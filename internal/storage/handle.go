package storage

import "sync/atomic"

// Handle is a publish-once cell for a BlobStore whose initialization may
// finish after the HTTP listener has started serving. The record store is a
// hard startup dependency, but the blob store connects in the background;
// until it is published, attachment operations report not-ready instead of
// blocking startup.
type Handle struct {
	v atomic.Value // holds cell
}

// atomic.Value requires a consistent concrete type across stores.
type cell struct {
	store BlobStore
}

// NewHandle returns an empty Handle. Get reports false until Set is called.
func NewHandle() *Handle {
	return &Handle{}
}

// NewReadyHandle returns a Handle already holding store. Convenient for tests
// and for deployments that initialize storage synchronously.
func NewReadyHandle(store BlobStore) *Handle {
	h := &Handle{}
	h.Set(store)
	return h
}

// Set publishes the blob store. Later calls replace the earlier value, though
// in practice it is called once at startup.
func (h *Handle) Set(store BlobStore) {
	h.v.Store(cell{store: store})
}

// Get returns the published blob store, or false while initialization is
// still pending. This is the readiness flag behind the façade's 503 response.
func (h *Handle) Get() (BlobStore, bool) {
	c, ok := h.v.Load().(cell)
	if !ok || c.store == nil {
		return nil, false
	}
	return c.store, true
}
