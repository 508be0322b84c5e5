package repository

import "bakhtbot/internal/entities"

type Config struct {
	Dsn string `yaml:"dsn" validate:"required"`
}

// Repository is the durable store for user records, feature results and
// counters. Lookups return (nil, nil) when no row exists.
type Repository interface {
	UpsertUser(user *entities.User) error
	GetUser(id int64) (*entities.User, error)
	CountUsers() (int64, error)
	// ListUserIds returns the ids of all stored users. With a non-empty
	// cities list only users whose city matches any entry (substring
	// match) are returned.
	ListUserIds(cities []string) ([]int64, error)

	GetKuaResult(userId int64) (*entities.KuaResult, error)
	UpsertKuaResult(result *entities.KuaResult) error
	GetZodiacResult(userId int64) (*entities.ZodiacResult, error)
	UpsertZodiacResult(result *entities.ZodiacResult) error
	GetQuizResult(userId int64) (*entities.QuizResult, error)
	UpsertQuizResult(result *entities.QuizResult) error
	// ResetVisits zeroes count_visit on every row of the feature's table
	// without deleting any row.
	ResetVisits(feature entities.Feature) error

	GetJourneySignup(userId int64) (*entities.JourneySignup, error)
	StoreJourneySignup(signup *entities.JourneySignup) error

	SetReplyWait(userId int64, waiting bool) error
	IsReplyWaiting(userId int64) (bool, error)
}
