package workflow

import "bakhtbot/internal/tables"

// EffectKind tells the presentation layer what to render next. The
// engine itself never talks to telegram.
type EffectKind int

const (
	EffectJoinChannels EffectKind = iota
	EffectVisitLimit
	EffectPromptDecade
	EffectPromptYear
	EffectPromptMonth
	EffectPromptDay
	EffectPromptGender
	EffectInvalidDate // flow has been reset to the decade step
	EffectUnsupportedYear
	EffectKuaResult
	EffectZodiacResult
)

// Effect is the engine's answer to one inbound step.
type Effect struct {
	Kind EffectKind

	MissingChannels []string

	// year menu bounds, set for EffectPromptYear
	YearStart int
	YearEnd   int

	// result payload
	BirthDate string // Jalali, as selected
	Gender    tables.Gender
	KuaNumber int
	Sign      string
	Element   string
}
