package workflow

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"bakhtbot/internal/entities"
	"bakhtbot/internal/ledger"
	"bakhtbot/internal/repository"
	"bakhtbot/internal/repository/in_memory_repo"
	"bakhtbot/internal/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGate struct {
	missing []string
}

func (g *stubGate) Check(ctx context.Context, userId int64) (bool, []string, error) {
	return len(g.missing) == 0, g.missing, nil
}

type engineFixture struct {
	engine *Engine
	gate   *stubGate
	repo   repository.Repository
}

func newFixture(t *testing.T, maxCalculations int) *engineFixture {
	t.Helper()
	tbl, err := tables.Load()
	require.NoError(t, err)

	repo := in_memory_repo.New()
	g := &stubGate{}
	cfg := &Config{MaxCalculations: maxCalculations, FirstDecade: 1320, DecadeCount: 10}
	e := NewEngine(g, ledger.New(repo), tbl, NewStore[Key, State](time.Minute), cfg, slog.Default())
	return &engineFixture{engine: e, gate: g, repo: repo}
}

func (f *engineFixture) advance(t *testing.T, userId int64, feature entities.Feature, token string) Effect {
	t.Helper()
	parsedFeature, in, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, feature, parsedFeature)

	eff, err := f.engine.Advance(context.Background(), userId, feature, in)
	require.NoError(t, err)
	return eff
}

func TestKuaFlow(t *testing.T) {
	f := newFixture(t, 4)
	ctx := context.Background()

	eff, err := f.engine.Start(ctx, 1, entities.FeatureKua)
	require.NoError(t, err)
	assert.Equal(t, EffectPromptDecade, eff.Kind)

	eff = f.advance(t, 1, entities.FeatureKua, "kua_decade_1370")
	assert.Equal(t, EffectPromptYear, eff.Kind)
	assert.Equal(t, 1370, eff.YearStart)
	assert.Equal(t, 1379, eff.YearEnd)

	eff = f.advance(t, 1, entities.FeatureKua, "kua_year_1370")
	assert.Equal(t, EffectPromptMonth, eff.Kind)

	eff = f.advance(t, 1, entities.FeatureKua, "kua_month_2")
	assert.Equal(t, EffectPromptDay, eff.Kind)

	eff = f.advance(t, 1, entities.FeatureKua, "kua_day_15")
	assert.Equal(t, EffectPromptGender, eff.Kind)

	eff = f.advance(t, 1, entities.FeatureKua, "kua_gender_male")
	assert.Equal(t, EffectKuaResult, eff.Kind)
	// 1370/02/15 is 1991-05-05; male 1991 resolves to kua 9
	assert.Equal(t, 9, eff.KuaNumber)
	assert.Equal(t, "1370-02-15", eff.BirthDate)

	row, err := f.repo.GetKuaResult(1)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, 1, row.CountVisit)
	assert.Equal(t, 9, row.KuaNumber)
	assert.Equal(t, "male", row.Gender)

	// workflow state is cleared on completion
	_, ok := f.engine.states.Get(Key{UserId: 1, Feature: entities.FeatureKua})
	assert.False(t, ok)
}

func TestKuaFlowRepeatIncrementsCounter(t *testing.T) {
	f := newFixture(t, 4)
	ctx := context.Background()

	runOnce := func() Effect {
		_, err := f.engine.Start(ctx, 1, entities.FeatureKua)
		require.NoError(t, err)
		for _, token := range []string{"kua_decade_1370", "kua_year_1370", "kua_month_2", "kua_day_15"} {
			f.advance(t, 1, entities.FeatureKua, token)
		}
		return f.advance(t, 1, entities.FeatureKua, "kua_gender_male")
	}

	first := runOnce()
	second := runOnce()
	assert.Equal(t, first.KuaNumber, second.KuaNumber)

	row, err := f.repo.GetKuaResult(1)
	require.NoError(t, err)
	assert.Equal(t, 2, row.CountVisit)
}

func TestZodiacFlow(t *testing.T) {
	f := newFixture(t, 4)
	ctx := context.Background()

	_, err := f.engine.Start(ctx, 2, entities.FeatureZodiac)
	require.NoError(t, err)

	f.advance(t, 2, entities.FeatureZodiac, "zodiac_decade_1360")
	f.advance(t, 2, entities.FeatureZodiac, "zodiac_year_1369")
	f.advance(t, 2, entities.FeatureZodiac, "zodiac_month_11")

	// 1369/11/26 is 1991-02-15, the lunar new year: a Metal Goat
	eff := f.advance(t, 2, entities.FeatureZodiac, "zodiac_day_26")
	assert.Equal(t, EffectZodiacResult, eff.Kind)
	assert.Equal(t, "Goat", eff.Sign)
	assert.Equal(t, "Metal", eff.Element)

	row, err := f.repo.GetZodiacResult(2)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "Goat", row.ChineseSign)
	assert.Equal(t, "Metal", row.ChineseElement)
	assert.Equal(t, 1, row.CountVisit)
}

func TestZodiacLunarBoundary(t *testing.T) {
	f := newFixture(t, 4)
	ctx := context.Background()

	// one day earlier, 1369/11/25 = 1991-02-14, still the Horse year
	_, err := f.engine.Start(ctx, 3, entities.FeatureZodiac)
	require.NoError(t, err)
	f.advance(t, 3, entities.FeatureZodiac, "zodiac_decade_1360")
	f.advance(t, 3, entities.FeatureZodiac, "zodiac_year_1369")
	f.advance(t, 3, entities.FeatureZodiac, "zodiac_month_11")
	eff := f.advance(t, 3, entities.FeatureZodiac, "zodiac_day_25")

	assert.Equal(t, EffectZodiacResult, eff.Kind)
	assert.Equal(t, "Horse", eff.Sign)
}

func TestInvalidDateResetsFlow(t *testing.T) {
	f := newFixture(t, 4)
	ctx := context.Background()

	// 1369/12/30 does not exist: 1369 is not a leap year
	_, err := f.engine.Start(ctx, 4, entities.FeatureZodiac)
	require.NoError(t, err)
	f.advance(t, 4, entities.FeatureZodiac, "zodiac_decade_1360")
	f.advance(t, 4, entities.FeatureZodiac, "zodiac_year_1369")
	f.advance(t, 4, entities.FeatureZodiac, "zodiac_month_12")
	eff := f.advance(t, 4, entities.FeatureZodiac, "zodiac_day_30")

	assert.Equal(t, EffectInvalidDate, eff.Kind)

	// no row written
	row, err := f.repo.GetZodiacResult(4)
	require.NoError(t, err)
	assert.Nil(t, row)

	// flow restarted at the decade step
	st, ok := f.engine.states.Get(Key{UserId: 4, Feature: entities.FeatureZodiac})
	require.True(t, ok)
	assert.Equal(t, StepDecade, st.Step)
}

func TestUnsupportedYearDiscardsFlow(t *testing.T) {
	// decades beyond the lookup tables' range reach the day/gender step
	// fine and only fail at finalization
	tbl, err := tables.Load()
	require.NoError(t, err)
	repo := in_memory_repo.New()
	cfg := &Config{MaxCalculations: 4, FirstDecade: 1440, DecadeCount: 2}
	e := NewEngine(&stubGate{}, ledger.New(repo), tbl, NewStore[Key, State](time.Minute), cfg, slog.Default())
	ctx := context.Background()

	run := func(t *testing.T, userId int64, feature entities.Feature, tokens []string) Effect {
		t.Helper()
		_, err := e.Start(ctx, userId, feature)
		require.NoError(t, err)
		var eff Effect
		for _, token := range tokens {
			_, in, err := ParseToken(token)
			require.NoError(t, err)
			eff, err = e.Advance(ctx, userId, feature, in)
			require.NoError(t, err)
		}
		return eff
	}

	t.Run("kua", func(t *testing.T) {
		// 1445/01/01 is a valid date but maps to a Gregorian year past
		// the kua table
		eff := run(t, 6, entities.FeatureKua,
			[]string{"kua_decade_1440", "kua_year_1445", "kua_month_1", "kua_day_1", "kua_gender_male"})
		assert.Equal(t, EffectUnsupportedYear, eff.Kind)
		assert.Equal(t, "1445-01-01", eff.BirthDate)

		// state discarded, not reset
		_, ok := e.states.Get(Key{UserId: 6, Feature: entities.FeatureKua})
		assert.False(t, ok)

		row, err := repo.GetKuaResult(6)
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("zodiac", func(t *testing.T) {
		eff := run(t, 7, entities.FeatureZodiac,
			[]string{"zodiac_decade_1440", "zodiac_year_1445", "zodiac_month_1", "zodiac_day_1"})
		assert.Equal(t, EffectUnsupportedYear, eff.Kind)

		_, ok := e.states.Get(Key{UserId: 7, Feature: entities.FeatureZodiac})
		assert.False(t, ok)

		row, err := repo.GetZodiacResult(7)
		require.NoError(t, err)
		assert.Nil(t, row)
	})
}

func TestVisitLimitBlocksWithoutAdvancing(t *testing.T) {
	f := newFixture(t, 4)
	ctx := context.Background()

	require.NoError(t, f.repo.UpsertKuaResult(&entities.KuaResult{UserId: 5, KuaNumber: 1, CountVisit: 4}))

	eff, err := f.engine.Start(ctx, 5, entities.FeatureKua)
	require.NoError(t, err)
	assert.Equal(t, EffectVisitLimit, eff.Kind)

	_, ok := f.engine.states.Get(Key{UserId: 5, Feature: entities.FeatureKua})
	assert.False(t, ok)
}

func TestGateBlocksEveryStep(t *testing.T) {
	f := newFixture(t, 4)
	ctx := context.Background()

	_, err := f.engine.Start(ctx, 6, entities.FeatureKua)
	require.NoError(t, err)
	f.advance(t, 6, entities.FeatureKua, "kua_decade_1370")

	// user leaves the channel mid-flow
	f.gate.missing = []string{"somechannel"}
	eff := f.advance(t, 6, entities.FeatureKua, "kua_year_1373")
	assert.Equal(t, EffectJoinChannels, eff.Kind)
	assert.Equal(t, []string{"somechannel"}, eff.MissingChannels)

	// no state advance happened; rejoining resumes at the year step
	f.gate.missing = nil
	eff = f.advance(t, 6, entities.FeatureKua, "kua_year_1373")
	assert.Equal(t, EffectPromptMonth, eff.Kind)
}

func TestOutOfOrderStepKeepsFlow(t *testing.T) {
	f := newFixture(t, 4)
	ctx := context.Background()

	_, err := f.engine.Start(ctx, 7, entities.FeatureKua)
	require.NoError(t, err)
	f.advance(t, 7, entities.FeatureKua, "kua_decade_1370")

	// stale tap on an old month button
	eff := f.advance(t, 7, entities.FeatureKua, "kua_month_3")
	assert.Equal(t, EffectPromptYear, eff.Kind)
	assert.Equal(t, 1370, eff.YearStart)
}

func TestAdvanceWithoutStateRestarts(t *testing.T) {
	f := newFixture(t, 4)

	eff := f.advance(t, 8, entities.FeatureKua, "kua_year_1373")
	assert.Equal(t, EffectPromptDecade, eff.Kind)
}

func TestParseToken(t *testing.T) {
	feature, in, err := ParseToken("kua_decade_1370")
	require.NoError(t, err)
	assert.Equal(t, entities.FeatureKua, feature)
	assert.Equal(t, Input{Kind: StepDecade, Number: 1370}, in)

	feature, in, err = ParseToken("kua_gender_female")
	require.NoError(t, err)
	assert.Equal(t, entities.FeatureKua, feature)
	assert.Equal(t, Input{Kind: StepGender, Gender: "female"}, in)

	for _, bad := range []string{"", "kua", "kua_decade", "quiz_decade_1", "kua_epoch_1", "kua_year_x", "kua_gender_other"} {
		_, _, err = ParseToken(bad)
		assert.Error(t, err, bad)
	}
}

func TestDecades(t *testing.T) {
	f := newFixture(t, 4)
	decades := f.engine.Decades()
	require.Len(t, decades, 10)
	assert.Equal(t, 1320, decades[0])
	assert.Equal(t, 1410, decades[9])
}
