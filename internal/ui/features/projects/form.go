package projects

import (
	"github.com/leapstack-labs/projectboard/internal/project"
)

// InputForm turns submitted drafts into projects.
type InputForm struct {
	store *project.Store
}

// Result is the outcome of a submission. On failure Alert is set and Draft
// holds the values exactly as submitted; on success Draft is empty.
type Result struct {
	OK     bool
	Record project.Record
	Alert  string
	Draft  project.Draft
}

// NewInputForm creates a form that adds accepted projects to store.
func NewInputForm(store *project.Store) *InputForm {
	return &InputForm{store: store}
}

// Submit validates d and, if every field passes, adds the project and clears
// the fields. A rejected draft never reaches the store.
func (f *InputForm) Submit(d project.Draft) Result {
	in, ok := d.Validate()
	if !ok {
		return Result{Alert: AlertInvalidInputs, Draft: d}
	}

	rec := f.store.AddProject(in.Title, in.Description, in.People)
	return Result{OK: true, Record: rec}
}
