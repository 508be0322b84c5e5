package ledger

import (
	"testing"

	"bakhtbot/internal/entities"
	"bakhtbot/internal/repository/in_memory_repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMayProceed(t *testing.T) {
	t.Run("no record", func(t *testing.T) {
		l := New(in_memory_repo.New())
		ok, err := l.MayProceed(1, entities.FeatureKua, 4)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("under and at the cap", func(t *testing.T) {
		repo := in_memory_repo.New()
		l := New(repo)

		for visit := 1; visit <= 4; visit++ {
			err := l.RecordKua(&entities.KuaResult{UserId: 1, KuaNumber: 9, CountVisit: visit})
			require.NoError(t, err)

			ok, err := l.MayProceed(1, entities.FeatureKua, 4)
			require.NoError(t, err)
			assert.Equal(t, visit < 4, ok, "visit %d", visit)
		}
	})

	t.Run("cap disabled", func(t *testing.T) {
		repo := in_memory_repo.New()
		l := New(repo)
		require.NoError(t, l.RecordZodiac(&entities.ZodiacResult{UserId: 1, CountVisit: 100}))

		ok, err := l.MayProceed(1, entities.FeatureZodiac, 0)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestRecordOverwritesSingleRow(t *testing.T) {
	repo := in_memory_repo.New()
	l := New(repo)

	require.NoError(t, l.RecordKua(&entities.KuaResult{UserId: 7, BirthDate: "1370-02-15", KuaNumber: 9, CountVisit: 1}))
	require.NoError(t, l.RecordKua(&entities.KuaResult{UserId: 7, BirthDate: "1370-02-15", KuaNumber: 9, CountVisit: 2}))

	res, err := repo.GetKuaResult(7)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 2, res.CountVisit)
	assert.Equal(t, 9, res.KuaNumber)
}

func TestResetAll(t *testing.T) {
	repo := in_memory_repo.New()
	l := New(repo)

	for id := int64(1); id <= 3; id++ {
		require.NoError(t, l.RecordZodiac(&entities.ZodiacResult{UserId: id, ChineseSign: "Goat", CountVisit: int(id)}))
	}
	require.NoError(t, l.ResetAll(entities.FeatureZodiac))

	for id := int64(1); id <= 3; id++ {
		res, err := repo.GetZodiacResult(id)
		require.NoError(t, err)
		require.NotNil(t, res, "row %d must survive the reset", id)
		assert.Equal(t, 0, res.CountVisit)
		assert.Equal(t, "Goat", res.ChineseSign)
	}
}
