package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKuaNumber(t *testing.T) {
	tbl, err := Load()
	require.NoError(t, err)

	cases := []struct {
		gender Gender
		year   int
		want   int
	}{
		{GenderMale, 1990, 1},
		{GenderFemale, 1990, 8},
		{GenderMale, 1991, 9},
		{GenderMale, 2000, 9},
		{GenderFemale, 2000, 6},
	}
	for _, c := range cases {
		got, err := tbl.KuaNumber(c.gender, c.year)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%s %d", c.gender, c.year)
	}
}

func TestKuaNumberUnsupportedYear(t *testing.T) {
	tbl, err := Load()
	require.NoError(t, err)

	_, err = tbl.KuaNumber(GenderMale, 1800)
	assert.ErrorIs(t, err, ErrUnsupportedYear)
	_, err = tbl.KuaNumber(GenderFemale, 2100)
	assert.ErrorIs(t, err, ErrUnsupportedYear)
}

func TestAnimalKey(t *testing.T) {
	tbl, err := Load()
	require.NoError(t, err)

	for year, want := range map[int]string{1990: "Horse", 1991: "Goat", 2016: "Monkey", 2020: "Rat"} {
		got, err := tbl.AnimalKey(year)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = tbl.AnimalKey(1500)
	assert.ErrorIs(t, err, ErrUnsupportedYear)
}

func TestSignAndElement(t *testing.T) {
	assert.Equal(t, "Monkey", Sign(2016))
	assert.Equal(t, "Fire", Element(2016))
	assert.Equal(t, "Rat", Sign(2020))
	assert.Equal(t, "Metal", Element(2020))
	assert.Equal(t, "Goat", Sign(1991))
	assert.Equal(t, "Metal", Element(1991))
	assert.Equal(t, "Horse", Sign(1990))
}

func TestFarsiNames(t *testing.T) {
	for _, s := range signs {
		assert.NotEmpty(t, SignFarsi(s), s)
	}
	for _, e := range elements {
		assert.NotEmpty(t, ElementFarsi(e), e)
	}
}
