package workflow

import "bakhtbot/internal/tables"

// Step is the position of a user inside a selection flow.
type Step int

const (
	StepDecade Step = iota
	StepYear
	StepMonth
	StepDay
	StepGender
)

func (s Step) String() string {
	switch s {
	case StepDecade:
		return "decade"
	case StepYear:
		return "year"
	case StepMonth:
		return "month"
	case StepDay:
		return "day"
	case StepGender:
		return "gender"
	}
	return "unknown"
}

// State is the accumulator of partial answers for one (user, feature).
// It only grows through the with* transitions, so a field is set exactly
// when the step that collects it has passed.
type State struct {
	Step   Step
	Decade int
	Year   int
	Month  int
	Day    int
	Gender tables.Gender
}

func initialState() State {
	return State{Step: StepDecade}
}

func (s State) withDecade(decade int) State {
	return State{Step: StepYear, Decade: decade}
}

func (s State) withYear(year int) State {
	s.Year = year
	s.Step = StepMonth
	return s
}

func (s State) withMonth(month int) State {
	s.Month = month
	s.Step = StepDay
	return s
}

func (s State) withDay(day int) State {
	s.Day = day
	s.Step = StepGender
	return s
}
