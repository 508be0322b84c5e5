package sqlite_repo

import (
	"errors"
	"fmt"
	"strings"

	"bakhtbot/internal/entities"
	"bakhtbot/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type sqliteRepo struct {
	db *gorm.DB
}

func New(cfg *repository.Config) repository.Repository {
	db, err := gorm.Open(sqlite.Open(cfg.Dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		panic(err)
	}
	err = db.AutoMigrate(
		&entities.User{},
		&entities.KuaResult{},
		&entities.ZodiacResult{},
		&entities.QuizResult{},
		&entities.JourneySignup{},
		&entities.ReplyWait{},
	)
	if err != nil {
		panic(err)
	}
	return &sqliteRepo{db: db}
}

func (r *sqliteRepo) UpsertUser(user *entities.User) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(user).Error
}

func (r *sqliteRepo) GetUser(id int64) (*entities.User, error) {
	user := &entities.User{}
	if err := r.db.First(user, id).Error; err != nil {
		return nil, ignoreNotFound(err)
	}
	return user, nil
}

func (r *sqliteRepo) CountUsers() (int64, error) {
	var n int64
	err := r.db.Model(&entities.User{}).Count(&n).Error
	return n, err
}

func (r *sqliteRepo) ListUserIds(cities []string) ([]int64, error) {
	q := r.db.Model(&entities.User{})
	if len(cities) > 0 {
		conds := make([]string, 0, len(cities))
		args := make([]any, 0, len(cities))
		for _, c := range cities {
			conds = append(conds, "city LIKE ?")
			args = append(args, "%"+strings.TrimSpace(c)+"%")
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}
	var ids []int64
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *sqliteRepo) GetKuaResult(userId int64) (*entities.KuaResult, error) {
	result := &entities.KuaResult{}
	if err := r.db.First(result, userId).Error; err != nil {
		return nil, ignoreNotFound(err)
	}
	return result, nil
}

func (r *sqliteRepo) UpsertKuaResult(result *entities.KuaResult) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(result).Error
}

func (r *sqliteRepo) GetZodiacResult(userId int64) (*entities.ZodiacResult, error) {
	result := &entities.ZodiacResult{}
	if err := r.db.First(result, userId).Error; err != nil {
		return nil, ignoreNotFound(err)
	}
	return result, nil
}

func (r *sqliteRepo) UpsertZodiacResult(result *entities.ZodiacResult) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(result).Error
}

func (r *sqliteRepo) GetQuizResult(userId int64) (*entities.QuizResult, error) {
	result := &entities.QuizResult{}
	if err := r.db.First(result, userId).Error; err != nil {
		return nil, ignoreNotFound(err)
	}
	return result, nil
}

func (r *sqliteRepo) UpsertQuizResult(result *entities.QuizResult) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(result).Error
}

func (r *sqliteRepo) ResetVisits(feature entities.Feature) error {
	var model any
	switch feature {
	case entities.FeatureKua:
		model = &entities.KuaResult{}
	case entities.FeatureZodiac:
		model = &entities.ZodiacResult{}
	case entities.FeatureQuiz:
		model = &entities.QuizResult{}
	default:
		return fmt.Errorf("feature %q has no visit counter", feature)
	}
	return r.db.Model(model).Where("count_visit <> ?", 0).Update("count_visit", 0).Error
}

func (r *sqliteRepo) GetJourneySignup(userId int64) (*entities.JourneySignup, error) {
	signup := &entities.JourneySignup{}
	if err := r.db.First(signup, userId).Error; err != nil {
		return nil, ignoreNotFound(err)
	}
	return signup, nil
}

func (r *sqliteRepo) StoreJourneySignup(signup *entities.JourneySignup) error {
	return r.db.Create(signup).Error
}

func (r *sqliteRepo) SetReplyWait(userId int64, waiting bool) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entities.ReplyWait{UserId: userId, Waiting: waiting}).Error
}

func (r *sqliteRepo) IsReplyWaiting(userId int64) (bool, error) {
	rw := &entities.ReplyWait{}
	if err := r.db.First(rw, userId).Error; err != nil {
		return false, ignoreNotFound(err)
	}
	return rw.Waiting, nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
