// Package project holds the project records and the in-memory store that
// broadcasts every change to its listeners.
package project

// Record is a single submitted project. Records are never modified after
// the store creates them.
type Record struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	People      int    `json:"people" yaml:"people"`
}

// Listener receives the full, current list of projects after every change.
// The slice is a private copy owned by the listener.
type Listener func(projects []Record)
