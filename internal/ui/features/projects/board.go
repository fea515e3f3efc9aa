package projects

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/projectboard/internal/project"
)

// Board is the #app container: the input form followed by the active and
// finished lists, in that order.
type Board struct {
	Form  *InputForm
	Views []*ListView
}

// NewBoard builds the form and both list views against store.
func NewBoard(store *project.Store) *Board {
	return &Board{
		Form: NewInputForm(store),
		Views: []*ListView{
			NewListView(KindActive, store),
			NewListView(KindFinished, store),
		},
	}
}

// View returns the list view of the given kind, or nil.
func (b *Board) View(kind Kind) *ListView {
	for _, v := range b.Views {
		if v.Kind() == kind {
			return v
		}
	}
	return nil
}

// Component renders the whole board. draft pre-fills the form and a non-empty
// alert is raised in the browser once the page loads.
func (b *Board) Component(draft project.Draft, alert string) templ.Component {
	lists := make([]templ.Component, 0, len(b.Views))
	for _, v := range b.Views {
		lists = append(lists, v.Component())
	}
	return App(ProjectInput(draft, alert), lists...)
}
