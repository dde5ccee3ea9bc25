package memory

import (
	"time"

	"rams-generator-be/pkg/document"

	"github.com/patrickmn/go-cache"
)

// WorkdocRepository holds partially assembled working documents for the
// incremental section endpoints, keyed by document id. Each entry is owned
// by one composition flow at a time.
type WorkdocRepository struct {
	cache *cache.Cache
}

func NewWorkdocRepository() *WorkdocRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &WorkdocRepository{
		cache: c,
	}
}

func (r *WorkdocRepository) Save(documentID string, doc *document.Document) {
	r.cache.Set(documentID, doc, cache.DefaultExpiration)
}

func (r *WorkdocRepository) Get(documentID string) (*document.Document, bool) {
	if x, found := r.cache.Get(documentID); found {
		return x.(*document.Document), true
	}
	return nil, false
}

func (r *WorkdocRepository) Delete(documentID string) {
	r.cache.Delete(documentID)
}
