package script

import (
	"fmt"
	"strings"
)

// RepetitionUnit is the calendar unit of a repetition interval.
type RepetitionUnit string

// Repetition units accepted by RepetitionRule. They map one-to-one onto ICS
// RRULE frequencies.
const (
	UnitMinutely RepetitionUnit = "minutes"
	UnitHourly   RepetitionUnit = "hours"
	UnitDaily    RepetitionUnit = "days"
	UnitWeekly   RepetitionUnit = "weeks"
	UnitMonthly  RepetitionUnit = "months"
	UnitYearly   RepetitionUnit = "years"
)

// RepetitionMethod controls how OmniFocus anchors the next occurrence.
type RepetitionMethod string

// Repetition methods supported by OmniFocus.
const (
	MethodFixed                RepetitionMethod = "fixed"
	MethodStartAfterCompletion RepetitionMethod = "start-after-completion"
	MethodDueAfterCompletion   RepetitionMethod = "due-after-completion"
)

var unitFrequencies = map[RepetitionUnit]string{
	UnitMinutely: "MINUTELY",
	UnitHourly:   "HOURLY",
	UnitDaily:    "DAILY",
	UnitWeekly:   "WEEKLY",
	UnitMonthly:  "MONTHLY",
	UnitYearly:   "YEARLY",
}

var methodSelectors = map[RepetitionMethod]string{
	MethodFixed:                "Task.RepetitionMethod.Fixed",
	MethodStartAfterCompletion: "Task.RepetitionMethod.DeferUntilDate",
	MethodDueAfterCompletion:   "Task.RepetitionMethod.DueDate",
}

// RepetitionRule describes a recurrence for a task or project.
type RepetitionRule struct {
	// Unit is the calendar unit of the interval (days, weeks, ...).
	Unit RepetitionUnit

	// Steps is the number of units between occurrences. Must be >= 1.
	Steps int

	// Method anchors the next occurrence: on a fixed schedule, or relative
	// to the completion date. Empty defaults to fixed.
	Method RepetitionMethod
}

// Validate checks the rule for renderability.
func (r RepetitionRule) Validate() error {
	if _, ok := unitFrequencies[r.Unit]; !ok {
		return fmt.Errorf("unknown repetition unit %q", r.Unit)
	}
	if r.Steps < 1 {
		return fmt.Errorf("repetition steps must be at least 1, got %d", r.Steps)
	}
	if r.Method != "" {
		if _, ok := methodSelectors[r.Method]; !ok {
			return fmt.Errorf("unknown repetition method %q", r.Method)
		}
	}
	return nil
}

// RuleString renders the rule as the ICS RRULE string OmniFocus expects,
// e.g. "FREQ=WEEKLY;INTERVAL=2". Call Validate first.
func (r RepetitionRule) RuleString() string {
	freq := unitFrequencies[r.Unit]
	if r.Steps == 1 {
		return "FREQ=" + freq
	}
	return fmt.Sprintf("FREQ=%s;INTERVAL=%d", freq, r.Steps)
}

// OmniJS renders the rule as a Task.RepetitionRule constructor call.
// Call Validate first.
func (r RepetitionRule) OmniJS() string {
	method := r.Method
	if method == "" {
		method = MethodFixed
	}
	return fmt.Sprintf("new Task.RepetitionRule(%s, %s)",
		Quote(r.RuleString()), methodSelectors[method])
}

// ParseRepetitionUnit normalizes a user-supplied unit string. Singular forms
// are accepted ("day" for "days").
func ParseRepetitionUnit(s string) (RepetitionUnit, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasSuffix(normalized, "s") {
		normalized += "s"
	}
	unit := RepetitionUnit(normalized)
	if _, ok := unitFrequencies[unit]; !ok {
		return "", fmt.Errorf("unknown repetition unit %q (expected one of: minutes, hours, days, weeks, months, years)", s)
	}
	return unit, nil
}

// ParseRepetitionMethod normalizes a user-supplied method string.
func ParseRepetitionMethod(s string) (RepetitionMethod, error) {
	if s == "" {
		return MethodFixed, nil
	}
	method := RepetitionMethod(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := methodSelectors[method]; !ok {
		return "", fmt.Errorf("unknown repetition method %q (expected one of: fixed, start-after-completion, due-after-completion)", s)
	}
	return method, nil
}
