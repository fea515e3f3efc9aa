// Package projects provides the project board feature: the input form and
// the active/finished project lists.
package projects

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AlertInvalidInputs is shown when any form field fails validation.
const AlertInvalidInputs = "Invalid inputs, please try again"

// Element ids of the page fragments.
const (
	AppID  = "app"
	FormID = "user-input"
)

// Kind is the category a list view displays.
type Kind string

// List view categories.
const (
	KindActive   Kind = "active"
	KindFinished Kind = "finished"
)

var headingCaser = cases.Upper(language.English)

// ElementID is the id of the view's root element.
func (k Kind) ElementID() string {
	return string(k) + "-projects"
}

// ListID is the id of the view's <ul>.
func (k Kind) ListID() string {
	return string(k) + "-projects-list"
}

// Heading is the view's title, e.g. "ACTIVE PROJECTS".
func (k Kind) Heading() string {
	return headingCaser.String(string(k)) + " PROJECTS"
}
