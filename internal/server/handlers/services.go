// Package handlers implements the API endpoint handlers.
package handlers

import (
	"sync"

	"github.com/notiondash/notiondash/internal/notion"
	"github.com/notiondash/notiondash/internal/records"
	"github.com/notiondash/notiondash/internal/storage"
)

// Services bundles the collaborators handlers depend on.
type Services struct {
	// Notion is the base gateway client; handlers derive per-request
	// clients from it with WithToken.
	Notion *notion.Client
	// Settings is the persisted settings store.
	Settings *storage.Store
}

// collectionSet tracks one in-memory Collection per database.
type collectionSet struct {
	mu          sync.Mutex
	collections map[string]*records.Collection
}

func newCollectionSet() *collectionSet {
	return &collectionSet{collections: make(map[string]*records.Collection)}
}

// get returns the collection for a database, creating it on first use.
func (s *collectionSet) get(databaseID string) *records.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[databaseID]
	if !ok {
		c = records.NewCollection()
		s.collections[databaseID] = c
	}
	return c
}

// Handler holds handler state shared across requests.
type Handler struct {
	svc         *Services
	version     string
	collections *collectionSet
	resolver    *records.TitleResolver
}

// NewHandler creates the API handler set.
func NewHandler(svc *Services, version string) *Handler {
	h := &Handler{
		svc:         svc,
		version:     version,
		collections: newCollectionSet(),
	}
	h.resolver = records.NewTitleResolver(titleFetcher{h})
	return h
}
