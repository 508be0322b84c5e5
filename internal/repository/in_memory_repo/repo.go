package in_memory_repo

import (
	"fmt"
	"strings"
	"sync"

	"bakhtbot/internal/entities"
	"bakhtbot/internal/repository"
)

// inMemoryRepo is a map-backed Repository used in tests and local runs.
type inMemoryRepo struct {
	mu       sync.Mutex
	users    map[int64]entities.User
	kua      map[int64]entities.KuaResult
	zodiac   map[int64]entities.ZodiacResult
	quiz     map[int64]entities.QuizResult
	journeys map[int64]entities.JourneySignup
	waiting  map[int64]bool
}

func New() repository.Repository {
	return &inMemoryRepo{
		users:    map[int64]entities.User{},
		kua:      map[int64]entities.KuaResult{},
		zodiac:   map[int64]entities.ZodiacResult{},
		quiz:     map[int64]entities.QuizResult{},
		journeys: map[int64]entities.JourneySignup{},
		waiting:  map[int64]bool{},
	}
}

func (r *inMemoryRepo) UpsertUser(user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Id] = *user
	return nil
}

func (r *inMemoryRepo) GetUser(id int64) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *inMemoryRepo) CountUsers() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *inMemoryRepo) ListUserIds(cities []string) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for id, u := range r.users {
		if len(cities) == 0 {
			ids = append(ids, id)
			continue
		}
		for _, c := range cities {
			if strings.Contains(u.City, strings.TrimSpace(c)) {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids, nil
}

func (r *inMemoryRepo) GetKuaResult(userId int64) (*entities.KuaResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.kua[userId]; ok {
		return &res, nil
	}
	return nil, nil
}

func (r *inMemoryRepo) UpsertKuaResult(result *entities.KuaResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kua[result.UserId] = *result
	return nil
}

func (r *inMemoryRepo) GetZodiacResult(userId int64) (*entities.ZodiacResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.zodiac[userId]; ok {
		return &res, nil
	}
	return nil, nil
}

func (r *inMemoryRepo) UpsertZodiacResult(result *entities.ZodiacResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zodiac[result.UserId] = *result
	return nil
}

func (r *inMemoryRepo) GetQuizResult(userId int64) (*entities.QuizResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.quiz[userId]; ok {
		return &res, nil
	}
	return nil, nil
}

func (r *inMemoryRepo) UpsertQuizResult(result *entities.QuizResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quiz[result.UserId] = *result
	return nil
}

func (r *inMemoryRepo) ResetVisits(feature entities.Feature) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch feature {
	case entities.FeatureKua:
		for id, res := range r.kua {
			res.CountVisit = 0
			r.kua[id] = res
		}
	case entities.FeatureZodiac:
		for id, res := range r.zodiac {
			res.CountVisit = 0
			r.zodiac[id] = res
		}
	case entities.FeatureQuiz:
		for id, res := range r.quiz {
			res.CountVisit = 0
			r.quiz[id] = res
		}
	default:
		return fmt.Errorf("feature %q has no visit counter", feature)
	}
	return nil
}

func (r *inMemoryRepo) GetJourneySignup(userId int64) (*entities.JourneySignup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.journeys[userId]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *inMemoryRepo) StoreJourneySignup(signup *entities.JourneySignup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.journeys[signup.UserId]; ok {
		return fmt.Errorf("signup for user %d already exists", signup.UserId)
	}
	r.journeys[signup.UserId] = *signup
	return nil
}

func (r *inMemoryRepo) SetReplyWait(userId int64, waiting bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waiting[userId] = waiting
	return nil
}

func (r *inMemoryRepo) IsReplyWaiting(userId int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.waiting[userId], nil
}
