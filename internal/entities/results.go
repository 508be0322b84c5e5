package entities

import "time"

// KuaResult is the single kua row per user. A repeated calculation
// overwrites the row; only CountVisit keeps growing.
type KuaResult struct {
	UserId     int64 `gorm:"primaryKey"`
	Gender     string
	BirthDate  string // Jalali, yyyy-mm-dd as entered
	KuaNumber  int
	CountVisit int
}

// ZodiacResult is the single zodiac row per user.
type ZodiacResult struct {
	UserId         int64 `gorm:"primaryKey"`
	BirthDate      string
	ChineseSign    string
	ChineseElement string
	CountVisit     int
}

// QuizResult stores the accumulated questionnaire score.
type QuizResult struct {
	UserId     int64 `gorm:"primaryKey"`
	Score      int
	CountVisit int
}

// JourneySignup is the one-shot trip registration. At most one row per
// user; re-registration is rejected, not overwritten.
type JourneySignup struct {
	UserId     int64 `gorm:"primaryKey"`
	Name       string
	City       string
	CreateDate time.Time
}

// ReplyWait marks that the user's next free-text message should be routed
// to the admin inbox. Persisted so it survives restarts; cleared after one
// use.
type ReplyWait struct {
	UserId  int64 `gorm:"primaryKey"`
	Waiting bool
}
