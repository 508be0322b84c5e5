package workflow

import (
	"fmt"
	"strconv"
	"strings"

	"bakhtbot/internal/entities"
	"bakhtbot/internal/tables"
)

// Input is one parsed selection.
type Input struct {
	Kind   Step
	Number int
	Gender tables.Gender
}

var stepKinds = map[string]Step{
	"decade": StepDecade,
	"year":   StepYear,
	"month":  StepMonth,
	"day":    StepDay,
	"gender": StepGender,
}

// Token renders the callback data for one menu button,
// "<feature>_<stepKind>_<value>".
func Token(feature entities.Feature, step Step, value string) string {
	return fmt.Sprintf("%s_%s_%s", feature, step, value)
}

// ParseToken is the inverse of Token. Malformed tokens cannot come from a
// correctly rendered menu, so they are reported as errors rather than
// user-facing messages.
func ParseToken(data string) (entities.Feature, Input, error) {
	parts := strings.SplitN(data, "_", 3)
	if len(parts) != 3 {
		return "", Input{}, fmt.Errorf("malformed callback token %q", data)
	}

	var feature entities.Feature
	switch entities.Feature(parts[0]) {
	case entities.FeatureKua:
		feature = entities.FeatureKua
	case entities.FeatureZodiac:
		feature = entities.FeatureZodiac
	default:
		return "", Input{}, fmt.Errorf("unknown feature in token %q", data)
	}

	step, ok := stepKinds[parts[1]]
	if !ok {
		return "", Input{}, fmt.Errorf("unknown step in token %q", data)
	}

	in := Input{Kind: step}
	if step == StepGender {
		switch tables.Gender(parts[2]) {
		case tables.GenderMale:
			in.Gender = tables.GenderMale
		case tables.GenderFemale:
			in.Gender = tables.GenderFemale
		default:
			return "", Input{}, fmt.Errorf("unknown gender in token %q", data)
		}
		return feature, in, nil
	}

	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", Input{}, fmt.Errorf("non-numeric value in token %q", data)
	}
	in.Number = n
	return feature, in, nil
}
