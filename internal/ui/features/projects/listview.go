package projects

import (
	"slices"
	"sync"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/projectboard/internal/project"
)

// ListView renders one category of projects. It subscribes to the store when
// created and rebuilds its items from scratch on every notification, so
// repeated notifications never duplicate entries.
//
// Categorization is not implemented: every view lists every project.
type ListView struct {
	kind Kind

	mu       sync.RWMutex
	assigned []project.Record
	items    []string
	renders  int
}

// NewListView creates a view of the given kind and registers it with store.
// The view starts from the store's current contents.
func NewListView(kind Kind, store *project.Store) *ListView {
	v := &ListView{kind: kind}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.assigned = store.Subscribe(v.update)
	v.items = titles(v.assigned)
	return v
}

// Kind returns the view's category.
func (v *ListView) Kind() Kind {
	return v.kind
}

// Items returns the titles currently rendered in the list.
func (v *ListView) Items() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.items)
}

// Projects returns the snapshot the view last received.
func (v *ListView) Projects() []project.Record {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.assigned)
}

// Renders returns how many times the list has been rebuilt by a notification.
func (v *ListView) Renders() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.renders
}

// Component returns the view's "project-list" fragment with its current items.
func (v *ListView) Component() templ.Component {
	return ProjectList(v.kind, v.Items())
}

func (v *ListView) update(projects []project.Record) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.assigned = projects
	v.items = titles(projects)
	v.renders++
}

func titles(projects []project.Record) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}
