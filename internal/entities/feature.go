package entities

// Feature identifies one of the calculation flows. Each feature has its
// own workflow state and ledger table.
type Feature string

const (
	FeatureKua     Feature = "kua"
	FeatureZodiac  Feature = "zodiac"
	FeatureQuiz    Feature = "quiz"
	FeatureJourney Feature = "journey"
)
