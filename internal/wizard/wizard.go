// Package wizard runs an ordered interactive question sequence.
//
// Each question carries an optional computed default, an applicability
// condition, and a validator. The validator is the only place where
// side effects happen, so the sequencing itself stays free of I/O.
// A validator that returns *Rejection re-asks the question; any other
// error aborts the whole run.
package wizard

import (
	"fmt"
	"strings"
)

// Kind selects the input style of a question.
type Kind int

const (
	// Input reads a free-text line.
	Input Kind = iota
	// Confirm reads a yes/no answer, stored as "y" or "n".
	Confirm
)

// Question defines one wizard prompt.
type Question struct {
	Name   string
	Prompt string
	Kind   Kind
	// Danger marks a destructive Confirm (red prompt, default No).
	Danger bool
	// Default computes the suggested value from earlier answers.
	// An error here aborts the run.
	Default func(a *Answers) (string, error)
	// When gates applicability; nil means always asked.
	When func(a *Answers) bool
	// Validate checks the answer and performs its side effects.
	Validate func(value string, a *Answers) error
}

// Rejection marks an answer as invalid without aborting the wizard.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string { return r.Reason }

// Rejectf builds a Rejection from a format string.
func Rejectf(format string, args ...any) error {
	return &Rejection{Reason: fmt.Sprintf(format, args...)}
}

// Answers accumulates collected values in question order.
type Answers struct {
	names  []string
	values map[string]string
}

// NewAnswers returns an empty answer accumulator.
func NewAnswers() *Answers {
	return &Answers{values: make(map[string]string)}
}

// Set stores a value, keeping first-set order.
func (a *Answers) Set(name, value string) {
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

// Get returns the stored value, or "" if the question was skipped.
func (a *Answers) Get(name string) string { return a.values[name] }

// Bool interprets a stored Confirm answer.
func (a *Answers) Bool(name string) bool { return isYes(a.values[name]) }

// Names returns the answered question names in order.
func (a *Answers) Names() []string {
	return append([]string(nil), a.names...)
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

// Runner asks questions through injectable prompt functions, which keeps
// the engine testable without a terminal.
type Runner struct {
	// Input prompts for a free-text line, offering def as the default.
	Input func(prompt, def string) string
	// Confirm prompts for a yes/no answer.
	Confirm func(prompt string, defaultYes bool) bool
	// Danger prompts for a destructive yes/no answer (always default No).
	// Falls back to Confirm when nil.
	Danger func(prompt string) bool
	// Reject reports a rejected answer before the question is re-asked.
	Reject func(msg string)
}

// Run executes the questions in order and returns the accumulated
// answers. Skipped questions leave no entry.
func (r *Runner) Run(questions []Question) (*Answers, error) {
	answers := NewAnswers()
	for _, q := range questions {
		if q.When != nil && !q.When(answers) {
			continue
		}

		def := ""
		if q.Default != nil {
			d, err := q.Default(answers)
			if err != nil {
				return answers, fmt.Errorf("default for %s: %w", q.Name, err)
			}
			def = d
		}

		for {
			value := r.ask(q, def)
			if q.Validate != nil {
				if err := q.Validate(value, answers); err != nil {
					if rej, ok := err.(*Rejection); ok {
						if r.Reject != nil {
							r.Reject(rej.Reason)
						}
						continue
					}
					return answers, err
				}
			}
			answers.Set(q.Name, value)
			break
		}
	}
	return answers, nil
}

func (r *Runner) ask(q Question, def string) string {
	if q.Kind == Confirm {
		if q.Danger && r.Danger != nil {
			if r.Danger(q.Prompt) {
				return "y"
			}
			return "n"
		}
		if r.Confirm(q.Prompt, isYes(def)) {
			return "y"
		}
		return "n"
	}
	return r.Input(q.Prompt, def)
}
