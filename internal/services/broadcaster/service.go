// Package broadcaster delivers admin-initiated messages to the stored
// user list. Jobs arrive through the queue so the bot handlers return
// immediately; delivery runs in the background with a per-message
// throttle.
package broadcaster

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"bakhtbot/internal/entities"
	"bakhtbot/internal/metrics"
	"bakhtbot/internal/queue"

	tele "gopkg.in/telebot.v3"
)

const defaultThrottle = 300 * time.Millisecond

type Service struct {
	tgBotToken string
	throttle   time.Duration
	q          *queue.Queue[entities.BroadcastJob]
	l          *slog.Logger
}

func New(cfg *Config, q *queue.Queue[entities.BroadcastJob], l *slog.Logger) *Service {
	throttle := defaultThrottle
	if cfg.ThrottleMs > 0 {
		throttle = time.Duration(cfg.ThrottleMs) * time.Millisecond
	}
	return &Service{
		tgBotToken: cfg.Token,
		throttle:   throttle,
		q:          q,
		l:          l.With("service", "Broadcaster"),
	}
}

func (s *Service) Run(ctx context.Context) error {
	// a send-only bot instance: no poller, same token
	bot, err := tele.NewBot(tele.Settings{Token: s.tgBotToken})
	if err != nil {
		return fmt.Errorf("telebot error: %w", err)
	}

	s.l.Info("broadcaster is ready", "username", bot.Me.Username)

	for {
		select {
		case <-ctx.Done():
			s.l.Info("stopping broadcaster")
			return nil
		case job := <-s.q.AsChan():
			s.deliver(ctx, bot, job)
		}
	}
}

// deliver sends the job to every recipient. Per-recipient failures are
// logged and skipped; they never abort the remaining recipients.
func (s *Service) deliver(ctx context.Context, bot *tele.Bot, job entities.BroadcastJob) {
	l := s.l.With("jobId", job.Id, "recipients", len(job.Recipients))
	l.Info("starting broadcast")

	delivered, failed := 0, 0
	for _, userId := range job.Recipients {
		if ctx.Err() != nil {
			l.Warn("broadcast interrupted by shutdown", "delivered", delivered)
			return
		}

		var err error
		switch job.Kind {
		case entities.BroadcastForward:
			_, err = bot.Forward(tele.ChatID(userId), tele.StoredMessage{
				ChatID:    job.FromChatId,
				MessageID: strconv.Itoa(job.MessageId),
			})
		default:
			_, err = bot.Send(tele.ChatID(userId), job.Text, tele.ModeHTML)
		}
		if err != nil {
			failed++
			metrics.BroadcastsFailed.Inc()
			l.Error(fmt.Errorf("delivery to %d failed: %w", userId, err).Error())
		} else {
			delivered++
			metrics.BroadcastsDelivered.Inc()
		}
		time.Sleep(s.throttle)
	}

	l.Info("broadcast finished", "delivered", delivered, "failed", failed)
	if job.ReportTo != 0 {
		report := fmt.Sprintf("📤 ارسال شد: %d\n⚠️ ناموفق: %d", delivered, failed)
		if _, err := bot.Send(tele.ChatID(job.ReportTo), report); err != nil {
			l.Error(fmt.Errorf("sending broadcast report: %w", err).Error())
		}
	}
}
