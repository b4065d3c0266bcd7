package domain

import (
	"strconv"
	"strings"
)

// AgePlaceholder marks where the generated age goes in a template background.
const AgePlaceholder = "{age}"

// AgeRange is an inclusive integer range.
type AgeRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether age lies in [Min, Max].
func (r AgeRange) Contains(age int) bool {
	return age >= r.Min && age <= r.Max
}

// PatientProfileTemplate is read-only reference data for a scenario.
type PatientProfileTemplate struct {
	Topic                     string   `json:"topic" yaml:"topic"`
	PresentingProblem         string   `json:"presenting_problem" yaml:"presenting_problem"`
	History                   string   `json:"history" yaml:"history"`
	ChiefComplaint            string   `json:"chief_complaint" yaml:"chief_complaint"`
	ConflictingChiefComplaint string   `json:"conflicting_chief_complaint,omitempty" yaml:"conflicting_chief_complaint,omitempty"`
	Background                string   `json:"background" yaml:"background"`
	AgeRange                  AgeRange `json:"age_range" yaml:"age_range"`
}

// HasConflictingComplaint reports whether the template models a patient whose
// stated reason for the visit differs from the presenting problem.
func (t PatientProfileTemplate) HasConflictingComplaint() bool {
	return strings.TrimSpace(t.ConflictingChiefComplaint) != ""
}

// BackgroundFor substitutes age into the background placeholder.
func (t PatientProfileTemplate) BackgroundFor(age int) string {
	return strings.ReplaceAll(t.Background, AgePlaceholder, strconv.Itoa(age))
}

// PatientProfile is the simulated patient for one practice session.
type PatientProfile struct {
	Name              string        `json:"name"`
	Age               int           `json:"age"`
	Sex               Sex           `json:"sex"`
	Background        string        `json:"background"`
	PresentingProblem string        `json:"presenting_problem"`
	Topic             string        `json:"topic"`
	History           string        `json:"history"`
	ChiefComplaint    string        `json:"chief_complaint"`
	StageOfChange     StageOfChange `json:"stage_of_change"`
}

// ProfileFilters narrows profile generation. Zero values mean "any".
type ProfileFilters struct {
	Topic         string
	StageOfChange StageOfChange
	Difficulty    Difficulty
}
