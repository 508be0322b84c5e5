package bot

import (
	"context"
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v3"

	"bakhtbot/internal/entities"
	"bakhtbot/internal/gate"
	"bakhtbot/internal/ledger"
	"bakhtbot/internal/queue"
	"bakhtbot/internal/repository"
	"bakhtbot/internal/tables"
	"bakhtbot/internal/workflow"
)

// Service is the interactive bot: it owns the long-poll loop, routes
// updates to the workflow engine and the registration/journey/quiz flows,
// and renders engine effects into messages and keyboards.
type Service struct {
	cfg    *Config
	wfCfg  *workflow.Config
	repo   repository.Repository
	tables *tables.Tables
	ledger *ledger.Ledger
	q      *queue.Queue[entities.BroadcastJob]
	l      *slog.Logger

	states        *workflow.Store[workflow.Key, workflow.State]
	regStates     *workflow.Store[int64, regState]
	journeyStates *workflow.Store[int64, journeyState]
	quizStates    *workflow.Store[int64, quizState]

	// created in Run, the gate needs a live bot instance
	gate   gate.Gate
	engine *workflow.Engine
	ctx    context.Context
}

func New(
	cfg *Config,
	wfCfg *workflow.Config,
	repo repository.Repository,
	tbl *tables.Tables,
	q *queue.Queue[entities.BroadcastJob],
	l *slog.Logger,
) *Service {
	ttl := wfCfg.StateTTL()
	return &Service{
		cfg:    cfg,
		wfCfg:  wfCfg,
		repo:   repo,
		tables: tbl,
		ledger: ledger.New(repo),
		q:      q,
		l:      l.With("service", "Bot"),

		states:        workflow.NewStore[workflow.Key, workflow.State](ttl),
		regStates:     workflow.NewStore[int64, regState](ttl),
		journeyStates: workflow.NewStore[int64, journeyState](ttl),
		quizStates:    workflow.NewStore[int64, quizState](ttl),
	}
}

func (s *Service) Run(ctx context.Context) error {
	b, err := tele.NewBot(tele.Settings{
		Token:  s.cfg.Token,
		Poller: &tele.LongPoller{Timeout: s.cfg.PollTimeout()},
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	s.ctx = ctx
	s.gate = gate.NewChannelGate(b, s.cfg.Channels, s.l)
	s.engine = workflow.NewEngine(s.gate, s.ledger, s.tables, s.states, s.wfCfg, s.l)

	if err := b.SetCommands(botCommands()); err != nil {
		s.l.Warn("failed to set bot commands", "error", err)
	}
	// no typed helper for setMyDescription in telebot v3
	if _, err := b.Raw("setMyDescription", map[string]string{"description": textBotDescription}); err != nil {
		s.l.Warn("failed to set bot description", "error", err)
	}

	s.registerHandlers(b)

	go func() { _ = s.states.Run(ctx) }()
	go func() { _ = s.regStates.Run(ctx) }()
	go func() { _ = s.journeyStates.Run(ctx) }()
	go func() { _ = s.quizStates.Run(ctx) }()

	go func() {
		<-ctx.Done()
		b.Stop()
	}()

	s.l.Info("bot is ready", "username", b.Me.Username)
	b.Start()
	return nil
}

func botCommands() []tele.Command {
	return []tele.Command{
		{Text: "start", Description: "شروع و منوی اصلی"},
		{Text: "kua", Description: "محاسبه عدد شانس"},
		{Text: "zodiac", Description: "نماد سال تولد در تقویم چینی"},
		{Text: "quiz", Description: "آزمون فنگ‌شویی"},
		{Text: "journey", Description: "ثبت‌نام سفر"},
		{Text: "contact", Description: "ارسال پیام به پشتیبانی"},
	}
}

func (s *Service) registerHandlers(b *tele.Bot) {
	b.Handle("/start", s.onStart)
	b.Handle("/kua", func(c tele.Context) error { return s.startWorkflow(c, entities.FeatureKua) })
	b.Handle("/zodiac", func(c tele.Context) error { return s.startWorkflow(c, entities.FeatureZodiac) })
	b.Handle("/quiz", s.onQuiz)
	b.Handle("/journey", s.onJourney)
	b.Handle("/contact", s.onContactCommand)

	b.Handle("/users", s.onUserCount)
	b.Handle("/broadcast", s.onBroadcast)
	b.Handle("/reset", s.onReset)

	b.Handle(tele.OnContact, s.onContactShared)
	b.Handle(tele.OnText, s.onText)
	b.Handle(tele.OnCallback, s.onCallback)
}
