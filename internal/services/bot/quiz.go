package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	tele "gopkg.in/telebot.v3"

	"bakhtbot/internal/entities"
	"bakhtbot/internal/metrics"
)

const quizAnswerPrefix = "quiz_answer_"

type quizOption struct {
	Text  string
	Score int
}

type quizQuestion struct {
	Text    string
	Options []quizOption
}

var quizQuestions = []quizQuestion{
	{
		Text: "فنگ‌شویی در اصل دانش چیست؟",
		Options: []quizOption{
			{Text: "هماهنگی انسان با محیط زندگی", Score: 3},
			{Text: "طالع‌بینی روزانه", Score: 1},
			{Text: "یک سبک دکوراسیون مدرن", Score: 2},
		},
	},
	{
		Text: "دو نیروی مکمل در فنگ‌شویی کدام‌اند؟",
		Options: []quizOption{
			{Text: "یین و یانگ", Score: 3},
			{Text: "آب و آتش", Score: 2},
			{Text: "ماه و خورشید", Score: 1},
		},
	},
	{
		Text: "عدد کوآ بر چه اساسی محاسبه می‌شود؟",
		Options: []quizOption{
			{Text: "سال تولد و جنسیت", Score: 3},
			{Text: "ماه تولد", Score: 1},
			{Text: "نام و نام خانوادگی", Score: 1},
		},
	},
	{
		Text: "کدام‌یک از عناصر پنج‌گانه فنگ‌شویی نیست؟",
		Options: []quizOption{
			{Text: "هوا", Score: 3},
			{Text: "چوب", Score: 1},
			{Text: "فلز", Score: 1},
		},
	},
	{
		Text: "در خانه، انرژی «چی» از کجا وارد می‌شود؟",
		Options: []quizOption{
			{Text: "در ورودی", Score: 3},
			{Text: "پنجره آشپزخانه", Score: 2},
			{Text: "کمد دیواری", Score: 1},
		},
	},
}

// quizState tracks the next unanswered question and the running score.
type quizState struct {
	Index int
	Score int
}

func quizToken(question, option int) string {
	return fmt.Sprintf("%s%d_%d", quizAnswerPrefix, question, option)
}

func quizQuestionKeyboard(question int) *tele.ReplyMarkup {
	q := quizQuestions[question]
	rows := make([][]tele.InlineButton, 0, len(q.Options))
	for i, opt := range q.Options {
		rows = append(rows, []tele.InlineButton{
			{Text: opt.Text, Data: quizToken(question, i)},
		})
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

func (s *Service) onQuiz(c tele.Context) error {
	return s.startQuiz(c)
}

func (s *Service) startQuiz(c tele.Context) error {
	userId := c.Sender().ID

	if blocked, err := s.gateCheck(c); blocked || err != nil {
		return err
	}
	ok, err := s.ledger.MayProceed(userId, entities.FeatureQuiz, s.wfCfg.MaxCalculations)
	if err != nil {
		s.l.Error("failed to check quiz ledger", "userId", userId, "error", err)
		return c.Send(textGenericError)
	}
	if !ok {
		return c.Send(textQuizLimit)
	}

	s.quizStates.Put(userId, quizState{})
	if err := c.Send(textQuizIntro); err != nil {
		return err
	}
	return s.sendQuestion(c, 0)
}

func (s *Service) onQuizAnswer(c tele.Context, data string) error {
	userId := c.Sender().ID

	question, option, err := parseQuizToken(data)
	if err != nil {
		s.l.Warn("ignoring malformed quiz answer", "userId", userId, "data", data)
		return nil
	}

	if blocked, err := s.gateCheck(c); blocked || err != nil {
		return err
	}

	unlock := s.quizStates.Lock(userId)
	defer unlock()

	st, ok := s.quizStates.Get(userId)
	if !ok {
		// evicted mid-quiz, start over
		s.quizStates.Put(userId, quizState{})
		if err := c.Send(textQuizIntro); err != nil {
			return err
		}
		return s.sendQuestion(c, 0)
	}
	if question != st.Index {
		// stale button tap
		return s.sendQuestion(c, st.Index)
	}

	st.Score += quizQuestions[question].Options[option].Score
	st.Index++
	if st.Index < len(quizQuestions) {
		s.quizStates.Put(userId, st)
		return s.sendQuestion(c, st.Index)
	}
	return s.finishQuiz(c, st)
}

// finishQuiz records the score the same way the calculation flows do:
// one row per user, overwritten each run, with a growing visit counter.
func (s *Service) finishQuiz(c tele.Context, st quizState) error {
	userId := c.Sender().ID

	count, err := s.ledger.Count(userId, entities.FeatureQuiz)
	if err != nil {
		s.l.Error("failed to read quiz counter", "userId", userId, "error", err)
		return c.Send(textGenericError)
	}
	err = s.ledger.RecordQuiz(&entities.QuizResult{
		UserId:     userId,
		Score:      st.Score,
		CountVisit: count + 1,
	})
	if err != nil {
		// state survives so the last answer can be retried
		s.l.Error("failed to store quiz result", "userId", userId, "error", err)
		return c.Send(textGenericError)
	}

	s.quizStates.Delete(userId)
	metrics.CalculationsCompleted.With(prometheus.Labels{"feature": string(entities.FeatureQuiz)}).Inc()

	msg := fmt.Sprintf("امتیاز شما: %d از %d\n\n%s", st.Score, maxQuizScore(), quizVerdict(st.Score))
	if err := c.Send(msg); err != nil {
		return err
	}
	return c.Send(textDashboard, dashboardKeyboard())
}

func (s *Service) sendQuestion(c tele.Context, question int) error {
	q := quizQuestions[question]
	text := fmt.Sprintf("پرسش %d از %d:\n\n%s", question+1, len(quizQuestions), q.Text)
	return c.Send(text, quizQuestionKeyboard(question))
}

func parseQuizToken(data string) (question, option int, err error) {
	parts := strings.Split(strings.TrimPrefix(data, quizAnswerPrefix), "_")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed quiz token %q", data)
	}
	question, err = strconv.Atoi(parts[0])
	if err != nil || question < 0 || question >= len(quizQuestions) {
		return 0, 0, fmt.Errorf("bad question index in %q", data)
	}
	option, err = strconv.Atoi(parts[1])
	if err != nil || option < 0 || option >= len(quizQuestions[question].Options) {
		return 0, 0, fmt.Errorf("bad option index in %q", data)
	}
	return question, option, nil
}

func maxQuizScore() int {
	total := 0
	for _, q := range quizQuestions {
		best := 0
		for _, opt := range q.Options {
			if opt.Score > best {
				best = opt.Score
			}
		}
		total += best
	}
	return total
}

func quizVerdict(score int) string {
	max := maxQuizScore()
	switch {
	case score >= max*4/5:
		return "عالی! شما با اصول فنگ‌شویی به‌خوبی آشنا هستید. 🌟"
	case score >= max*3/5:
		return "خوب است! آشنایی شما از حد متوسط بالاتر است. 👍"
	default:
		return "جای یادگیری هست! پیشنهاد می‌کنیم مطالب کانال ما را دنبال کنید. 📚"
	}
}
