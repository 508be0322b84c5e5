// Package ledger tracks how many completed calculations each user has
// made per feature and enforces the configured maximum.
package ledger

import (
	"fmt"

	"bakhtbot/internal/entities"
	"bakhtbot/internal/repository"
)

type Ledger struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Ledger {
	return &Ledger{repo: repo}
}

// MayProceed reports whether the user is still under the feature's visit
// cap. No row counts as zero visits. max <= 0 disables the cap.
func (l *Ledger) MayProceed(userId int64, feature entities.Feature, max int) (bool, error) {
	if max <= 0 {
		return true, nil
	}
	count, err := l.Count(userId, feature)
	if err != nil {
		return false, err
	}
	return count < max, nil
}

// Count returns the stored visit counter, zero when no row exists.
func (l *Ledger) Count(userId int64, feature entities.Feature) (int, error) {
	switch feature {
	case entities.FeatureKua:
		res, err := l.repo.GetKuaResult(userId)
		if err != nil || res == nil {
			return 0, err
		}
		return res.CountVisit, nil
	case entities.FeatureZodiac:
		res, err := l.repo.GetZodiacResult(userId)
		if err != nil || res == nil {
			return 0, err
		}
		return res.CountVisit, nil
	case entities.FeatureQuiz:
		res, err := l.repo.GetQuizResult(userId)
		if err != nil || res == nil {
			return 0, err
		}
		return res.CountVisit, nil
	}
	return 0, fmt.Errorf("feature %q has no visit counter", feature)
}

// RecordKua upserts the single kua row for the user. The caller supplies
// the already incremented counter; the engine serializes completions per
// (user, feature), so the read-then-write is safe.
func (l *Ledger) RecordKua(result *entities.KuaResult) error {
	return l.repo.UpsertKuaResult(result)
}

func (l *Ledger) RecordZodiac(result *entities.ZodiacResult) error {
	return l.repo.UpsertZodiacResult(result)
}

func (l *Ledger) RecordQuiz(result *entities.QuizResult) error {
	return l.repo.UpsertQuizResult(result)
}

// ResetAll zeroes every row's counter for the feature. Rows are kept.
func (l *Ledger) ResetAll(feature entities.Feature) error {
	return l.repo.ResetVisits(feature)
}
