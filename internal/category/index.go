// Package category provides the read-only Category Index: an id→record lookup
// built once per data load and used to resolve display names.
//
// An index that has not loaded yet, or an identifier that no longer exists,
// resolves to the Unknown label instead of failing.
package category

import (
	"context"
	"strings"
	"sync"

	"github.com/pfrederiksen/event-manager/internal/event"
	"github.com/pfrederiksen/event-manager/internal/logger"
)

// Unknown is the label shown for identifiers that do not resolve.
const Unknown = "Unknown"

// Source fetches the category collection
type Source interface {
	ListCategories(ctx context.Context) ([]event.Category, error)
}

// Index maps category identifiers to records. Safe for concurrent use.
type Index struct {
	mu         sync.RWMutex
	source     Source
	categories []event.Category
	byID       map[event.ID]event.Category
	loaded     bool
}

// NewIndex creates an empty index backed by source
func NewIndex(source Source) *Index {
	return &Index{
		source: source,
		byID:   make(map[event.ID]event.Category),
	}
}

// Load fetches all categories and replaces the index wholesale.
// On failure the previous contents are kept.
func (idx *Index) Load(ctx context.Context) ([]event.Category, error) {
	categories, err := idx.source.ListCategories(ctx)
	if err != nil {
		logger.Error("Loading categories failed", nil, err)
		return nil, err
	}

	idx.Replace(categories)

	logger.Debug("Categories loaded", logger.Fields{"count": len(categories)})
	return idx.All(), nil
}

// Replace swaps in a new category collection.
func (idx *Index) Replace(categories []event.Category) {
	byID := make(map[event.ID]event.Category, len(categories))
	list := make([]event.Category, 0, len(categories))
	for _, c := range categories {
		if _, dup := byID[c.ID]; dup {
			continue
		}
		byID[c.ID] = c
		list = append(list, c)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.categories = list
	idx.byID = byID
	idx.loaded = true
}

// Loaded reports whether a load has succeeded at least once
func (idx *Index) Loaded() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.loaded
}

// Len returns the number of categories
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.categories)
}

// All returns the categories in fetch order
func (idx *Index) All() []event.Category {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]event.Category, len(idx.categories))
	copy(out, idx.categories)
	return out
}

// Resolve looks up a category; the boolean is false when id is unknown.
func (idx *Index) Resolve(id event.ID) (event.Category, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	c, ok := idx.byID[id]
	return c, ok
}

// ResolveAll resolves every identifier, silently dropping dangling ones.
func (idx *Index) ResolveAll(ids []event.ID) []event.Category {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	resolved := make([]event.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := idx.byID[id]; ok {
			resolved = append(resolved, c)
		}
	}
	return resolved
}

// Label returns the category name, or Unknown.
func (idx *Index) Label(id event.ID) string {
	if c, ok := idx.Resolve(id); ok {
		return c.Name
	}
	return Unknown
}

// Labels joins the label of every identifier with ", ".
// Example: [1 2] with Music and Art loaded gives "Music, Art".
func (idx *Index) Labels(ids []event.ID) string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		labels = append(labels, idx.Label(id))
	}
	return strings.Join(labels, ", ")
}

// Lookup finds a category by identifier or case-insensitive name. Used to
// turn user input such as "music" or "1" into an identifier.
func (idx *Index) Lookup(key string) (event.Category, bool) {
	key = strings.TrimSpace(key)
	if c, ok := idx.Resolve(event.ID(key)); ok {
		return c, true
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()
	for _, c := range idx.categories {
		if strings.EqualFold(c.Name, key) {
			return c, true
		}
	}
	return event.Category{}, false
}
