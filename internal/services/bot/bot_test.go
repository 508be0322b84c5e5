package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakhtbot/internal/entities"
	"bakhtbot/internal/workflow"
)

func TestParseCities(t *testing.T) {
	assert.Nil(t, parseCities(""))
	assert.Equal(t, []string{"tehran"}, parseCities("tehran"))
	assert.Equal(t, []string{"tehran", "mashhad"}, parseCities("tehran, mashhad"))
	assert.Equal(t, []string{"تهران", "مشهد"}, parseCities("تهران،مشهد"))
	assert.Equal(t, []string{"qom"}, parseCities(" , qom ,"))
}

func TestInlineGrid(t *testing.T) {
	markup := yearKeyboard(entities.FeatureKua, 1370, 1379)
	require.Len(t, markup.InlineKeyboard, 4)
	assert.Len(t, markup.InlineKeyboard[0], 3)
	assert.Len(t, markup.InlineKeyboard[3], 1)

	assert.Equal(t, "1370", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "kua_year_1370", markup.InlineKeyboard[0][0].Data)
	assert.Equal(t, "kua_year_1379", markup.InlineKeyboard[3][0].Data)
}

func TestKeyboardTokensRoundTrip(t *testing.T) {
	markup := monthKeyboard(entities.FeatureZodiac)
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			feature, in, err := workflow.ParseToken(btn.Data)
			require.NoError(t, err)
			assert.Equal(t, entities.FeatureZodiac, feature)
			assert.Equal(t, workflow.StepMonth, in.Kind)
			assert.GreaterOrEqual(t, in.Number, 1)
			assert.LessOrEqual(t, in.Number, 12)
		}
	}

	gender := genderKeyboard(entities.FeatureKua)
	feature, in, err := workflow.ParseToken(gender.InlineKeyboard[0][0].Data)
	require.NoError(t, err)
	assert.Equal(t, entities.FeatureKua, feature)
	assert.Equal(t, workflow.StepGender, in.Kind)
}

func TestJoinChannelsKeyboard(t *testing.T) {
	markup := joinChannelsKeyboard([]string{"lucky_channel", "second_one"})
	require.Len(t, markup.InlineKeyboard, 3)
	assert.Equal(t, "https://t.me/lucky_channel", markup.InlineKeyboard[0][0].URL)
	assert.Equal(t, cbConfirm, markup.InlineKeyboard[2][0].Data)
}

func TestParseQuizToken(t *testing.T) {
	question, option, err := parseQuizToken(quizToken(2, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, question)
	assert.Equal(t, 1, option)

	_, _, err = parseQuizToken("quiz_answer_99_0")
	assert.Error(t, err)
	_, _, err = parseQuizToken("quiz_answer_0_99")
	assert.Error(t, err)
	_, _, err = parseQuizToken("quiz_answer_x_y")
	assert.Error(t, err)
}

func TestQuizScoring(t *testing.T) {
	max := maxQuizScore()
	assert.Equal(t, 15, max)

	assert.Contains(t, quizVerdict(max), "عالی")
	assert.Contains(t, quizVerdict(max*3/5), "متوسط")
	assert.Contains(t, quizVerdict(0), "یادگیری")
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{AdminIds: []int64{7, 8}}

	assert.Equal(t, 10*time.Second, cfg.PollTimeout())
	cfg.PollTimeoutSeconds = 30
	assert.Equal(t, 30*time.Second, cfg.PollTimeout())

	assert.True(t, cfg.IsAdmin(7))
	assert.False(t, cfg.IsAdmin(9))
}
