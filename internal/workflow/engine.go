package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bakhtbot/internal/calendar"
	"bakhtbot/internal/entities"
	"bakhtbot/internal/gate"
	"bakhtbot/internal/ledger"
	"bakhtbot/internal/metrics"
	"bakhtbot/internal/tables"

	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	MaxCalculations int `yaml:"max_calculations"`
	StateTTLMinutes int `yaml:"state_ttl_minutes"`
	FirstDecade     int `yaml:"first_decade" validate:"required"`
	DecadeCount     int `yaml:"decade_count" validate:"required,min=1"`
}

// StateTTL returns the idle-eviction TTL for workflow state, 30 minutes
// unless configured.
func (c *Config) StateTTL() time.Duration {
	if c.StateTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.StateTTLMinutes) * time.Minute
}

// Key addresses one user's state inside one feature.
type Key struct {
	UserId  int64
	Feature entities.Feature
}

// Engine drives the ordered decade -> year -> month -> day [-> gender]
// selection flows. It owns all transient state, re-checks the membership
// gate and the visit ledger on every inbound step, and on the final step
// validates the date and resolves the feature's lookup tables. The
// presentation layer renders the returned effects.
type Engine struct {
	gate   gate.Gate
	ledger *ledger.Ledger
	tables *tables.Tables
	states *Store[Key, State]
	cfg    *Config
	l      *slog.Logger
}

func NewEngine(g gate.Gate, led *ledger.Ledger, tbl *tables.Tables, states *Store[Key, State], cfg *Config, l *slog.Logger) *Engine {
	return &Engine{
		gate:   g,
		ledger: led,
		tables: tbl,
		states: states,
		cfg:    cfg,
		l:      l.With("service", "WorkflowEngine"),
	}
}

// Decades lists the decade menu options.
func (e *Engine) Decades() []int {
	out := make([]int, 0, e.cfg.DecadeCount)
	for i := 0; i < e.cfg.DecadeCount; i++ {
		out = append(out, e.cfg.FirstDecade+10*i)
	}
	return out
}

// Start (re)enters the flow at the decade step. Trigger commands are
// idempotent: a running flow is simply restarted.
func (e *Engine) Start(ctx context.Context, userId int64, feature entities.Feature) (Effect, error) {
	key := Key{UserId: userId, Feature: feature}
	unlock := e.states.Lock(key)
	defer unlock()

	if eff, blocked, err := e.precheck(ctx, userId, feature); blocked || err != nil {
		return eff, err
	}
	e.states.Put(key, initialState())
	return Effect{Kind: EffectPromptDecade}, nil
}

// Advance consumes one selection. The gate and the ledger run before any
// state is touched; failing either leaves the flow exactly where it was.
func (e *Engine) Advance(ctx context.Context, userId int64, feature entities.Feature, in Input) (Effect, error) {
	key := Key{UserId: userId, Feature: feature}
	unlock := e.states.Lock(key)
	defer unlock()

	if eff, blocked, err := e.precheck(ctx, userId, feature); blocked || err != nil {
		return eff, err
	}

	st, ok := e.states.Get(key)
	if !ok {
		// state was evicted or the process restarted mid-flow
		e.l.Info("no state for inbound step, restarting flow", "userId", userId, "feature", feature, "step", in.Kind)
		e.states.Put(key, initialState())
		return Effect{Kind: EffectPromptDecade}, nil
	}
	if in.Kind != st.Step {
		// stale button tap; keep the flow where it is
		e.l.Warn("out-of-order step ignored", "userId", userId, "feature", feature, "have", st.Step, "got", in.Kind)
		return e.prompt(st), nil
	}

	switch in.Kind {
	case StepDecade:
		if !e.validDecade(in.Number) {
			return Effect{}, fmt.Errorf("decade %d outside the supported range", in.Number)
		}
		st = st.withDecade(in.Number)
		e.states.Put(key, st)
		return Effect{Kind: EffectPromptYear, YearStart: st.Decade, YearEnd: st.Decade + 9}, nil

	case StepYear:
		if in.Number < st.Decade || in.Number > st.Decade+9 {
			return Effect{}, fmt.Errorf("year %d outside decade %d", in.Number, st.Decade)
		}
		st = st.withYear(in.Number)
		e.states.Put(key, st)
		return Effect{Kind: EffectPromptMonth}, nil

	case StepMonth:
		// months are always the canonical twelve
		if in.Number < 1 || in.Number > 12 {
			return Effect{}, fmt.Errorf("month %d out of range", in.Number)
		}
		st = st.withMonth(in.Number)
		e.states.Put(key, st)
		return Effect{Kind: EffectPromptDay}, nil

	case StepDay:
		// the day menu always offers 1..31; overshoot days are caught by
		// the calendar validation on the final step, not filtered here
		if in.Number < 1 || in.Number > 31 {
			return Effect{}, fmt.Errorf("day %d out of range", in.Number)
		}
		if feature == entities.FeatureKua {
			st = st.withDay(in.Number)
			e.states.Put(key, st)
			return Effect{Kind: EffectPromptGender}, nil
		}
		st.Day = in.Number
		return e.finalize(key, st)

	case StepGender:
		if feature == entities.FeatureKua {
			st.Gender = in.Gender
			return e.finalize(key, st)
		}
	}
	return Effect{}, fmt.Errorf("unexpected step %q for feature %q", in.Kind, feature)
}

// precheck runs the membership gate and the visit ledger. blocked=true
// means the returned effect must be rendered and the flow stays put.
func (e *Engine) precheck(ctx context.Context, userId int64, feature entities.Feature) (Effect, bool, error) {
	isMember, missing, err := e.gate.Check(ctx, userId)
	if err != nil {
		return Effect{}, false, fmt.Errorf("membership check: %w", err)
	}
	if !isMember {
		return Effect{Kind: EffectJoinChannels, MissingChannels: missing}, true, nil
	}

	ok, err := e.ledger.MayProceed(userId, feature, e.cfg.MaxCalculations)
	if err != nil {
		return Effect{}, false, fmt.Errorf("visit ledger: %w", err)
	}
	if !ok {
		return Effect{Kind: EffectVisitLimit}, true, nil
	}
	return Effect{}, false, nil
}

// finalize validates the accumulated date and produces the feature's
// result. State survives a store failure so the user can retry the same
// step; it is deleted on every other outcome.
func (e *Engine) finalize(key Key, st State) (Effect, error) {
	birthDate := fmt.Sprintf("%04d-%02d-%02d", st.Year, st.Month, st.Day)

	gdate, err := calendar.ToGregorian(st.Year, st.Month, st.Day)
	if errors.Is(err, calendar.ErrInvalidDate) {
		// deliberate reset-to-start policy, not retry-this-step
		metrics.InvalidDates.Inc()
		e.states.Put(key, initialState())
		return Effect{Kind: EffectInvalidDate, BirthDate: birthDate}, nil
	}
	if err != nil {
		return Effect{}, err
	}

	switch key.Feature {
	case entities.FeatureKua:
		number, err := e.tables.KuaNumber(st.Gender, gdate.Year)
		if errors.Is(err, tables.ErrUnsupportedYear) {
			e.states.Delete(key)
			return Effect{Kind: EffectUnsupportedYear, BirthDate: birthDate}, nil
		}
		if err != nil {
			return Effect{}, err
		}

		count, err := e.ledger.Count(key.UserId, key.Feature)
		if err != nil {
			return Effect{}, err
		}
		err = e.ledger.RecordKua(&entities.KuaResult{
			UserId:     key.UserId,
			Gender:     string(st.Gender),
			BirthDate:  birthDate,
			KuaNumber:  number,
			CountVisit: count + 1,
		})
		if err != nil {
			return Effect{}, err
		}

		e.states.Delete(key)
		metrics.CalculationsCompleted.With(prometheus.Labels{"feature": string(key.Feature)}).Inc()
		return Effect{Kind: EffectKuaResult, BirthDate: birthDate, Gender: st.Gender, KuaNumber: number}, nil

	case entities.FeatureZodiac:
		lunarYear, err := calendar.LunarYearOf(gdate)
		if errors.Is(err, calendar.ErrUnsupportedYear) {
			e.states.Delete(key)
			return Effect{Kind: EffectUnsupportedYear, BirthDate: birthDate}, nil
		}
		if err != nil {
			return Effect{}, err
		}
		// the animal table doubles as the supported-range guard; the
		// displayed sign comes from the lunar arithmetic, which is the
		// accurate one around the new-year boundary
		if _, err := e.tables.AnimalKey(gdate.Year); err != nil {
			if errors.Is(err, tables.ErrUnsupportedYear) {
				e.states.Delete(key)
				return Effect{Kind: EffectUnsupportedYear, BirthDate: birthDate}, nil
			}
			return Effect{}, err
		}

		sign := tables.Sign(lunarYear)
		element := tables.Element(lunarYear)

		count, err := e.ledger.Count(key.UserId, key.Feature)
		if err != nil {
			return Effect{}, err
		}
		err = e.ledger.RecordZodiac(&entities.ZodiacResult{
			UserId:         key.UserId,
			BirthDate:      birthDate,
			ChineseSign:    sign,
			ChineseElement: element,
			CountVisit:     count + 1,
		})
		if err != nil {
			return Effect{}, err
		}

		e.states.Delete(key)
		metrics.CalculationsCompleted.With(prometheus.Labels{"feature": string(key.Feature)}).Inc()
		return Effect{
			Kind:      EffectZodiacResult,
			BirthDate: birthDate,
			Sign:      sign,
			Element:   element,
		}, nil
	}
	return Effect{}, fmt.Errorf("feature %q has no finalizer", key.Feature)
}

func (e *Engine) prompt(st State) Effect {
	switch st.Step {
	case StepYear:
		return Effect{Kind: EffectPromptYear, YearStart: st.Decade, YearEnd: st.Decade + 9}
	case StepMonth:
		return Effect{Kind: EffectPromptMonth}
	case StepDay:
		return Effect{Kind: EffectPromptDay}
	case StepGender:
		return Effect{Kind: EffectPromptGender}
	}
	return Effect{Kind: EffectPromptDecade}
}

func (e *Engine) validDecade(decade int) bool {
	for _, d := range e.Decades() {
		if d == decade {
			return true
		}
	}
	return false
}
