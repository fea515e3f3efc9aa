package project

import (
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/projectboard/internal/validate"
)

// Input limits for a new project.
const (
	DescriptionMinLength = 5
	DescriptionMaxLength = 25
	PeopleMin            = 1
	PeopleMax            = 5
)

// Draft is the raw text a user typed into the project form.
type Draft struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	People      string `json:"people" yaml:"people"`
}

// Input is a validated draft, ready to be added to a Store.
type Input struct {
	Title       string
	Description string
	People      int
}

// NamedField pairs a form field name with its constraints.
type NamedField struct {
	Name  string
	Field validate.Field
}

// IsEmpty reports whether every field is blank.
func (d Draft) IsEmpty() bool {
	return d.Title == "" && d.Description == "" && d.People == ""
}

// Fields builds the constraints for the three form fields.
func (d Draft) Fields() []NamedField {
	return []NamedField{
		{
			Name:  "title",
			Field: validate.Field{Value: d.Title, Required: true},
		},
		{
			Name: "description",
			Field: validate.Field{
				Value:     d.Description,
				Required:  true,
				MinLength: validate.Int(DescriptionMinLength),
				MaxLength: validate.Int(DescriptionMaxLength),
			},
		},
		{
			Name: "people",
			Field: validate.Field{
				Value:    ParsePeople(d.People),
				Required: true,
				Min:      validate.Float(PeopleMin),
				Max:      validate.Float(PeopleMax),
			},
		},
	}
}

// Validate checks every field and returns the parsed input when all pass.
func (d Draft) Validate() (Input, bool) {
	for _, f := range d.Fields() {
		if !validate.Validate(f.Field) {
			return Input{}, false
		}
	}
	return Input{
		Title:       d.Title,
		Description: d.Description,
		People:      int(ParsePeople(d.People)),
	}, true
}

// ParsePeople converts the headcount text to a number. Anything that is not
// a whole number yields NaN, which no numeric bound accepts.
func ParsePeople(s string) float64 {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return math.NaN()
	}
	return float64(n)
}
