package bot

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v3"

	"bakhtbot/internal/entities"
)

func (s *Service) onUserCount(c tele.Context) error {
	if !s.cfg.IsAdmin(c.Sender().ID) {
		return c.Send(textNotAuthorized)
	}
	count, err := s.repo.CountUsers()
	if err != nil {
		s.l.Error("failed to count users", "error", err)
		return c.Send(textGenericError)
	}
	return c.Send(fmt.Sprintf("تعداد کاربران ثبت‌نام‌شده: %d", count))
}

// onBroadcast enqueues a forward of the replied-to message to every
// registered user, optionally narrowed to cities given as the command
// payload. Delivery happens asynchronously in the broadcaster service.
func (s *Service) onBroadcast(c tele.Context) error {
	if !s.cfg.IsAdmin(c.Sender().ID) {
		return c.Send(textNotAuthorized)
	}

	source := c.Message().ReplyTo
	if source == nil {
		return c.Send(textBroadcastUsage)
	}

	cities := parseCities(c.Message().Payload)
	recipients, err := s.repo.ListUserIds(cities)
	if err != nil {
		s.l.Error("failed to list broadcast recipients", "error", err)
		return c.Send(textGenericError)
	}
	if len(recipients) == 0 {
		return c.Send("هیچ کاربری با این فیلتر پیدا نشد.")
	}

	job := entities.BroadcastJob{
		Id:         uuid.New(),
		Kind:       entities.BroadcastForward,
		FromChatId: source.Chat.ID,
		MessageId:  source.ID,
		Recipients: recipients,
		ReportTo:   c.Chat().ID,
	}
	s.q.Put(job)
	s.l.Info("broadcast enqueued", "jobId", job.Id, "recipients", len(recipients), "cities", cities)

	return c.Send(textBroadcastQueued)
}

func (s *Service) onReset(c tele.Context) error {
	if !s.cfg.IsAdmin(c.Sender().ID) {
		return c.Send(textNotAuthorized)
	}
	for _, feature := range []entities.Feature{entities.FeatureKua, entities.FeatureZodiac, entities.FeatureQuiz} {
		if err := s.ledger.ResetAll(feature); err != nil {
			s.l.Error("failed to reset visit counters", "feature", feature, "error", err)
			return c.Send(textGenericError)
		}
	}
	s.l.Info("visit counters reset", "by", c.Sender().ID)
	return c.Send(textResetDone)
}

func parseCities(payload string) []string {
	payload = strings.ReplaceAll(payload, "،", ",")
	var cities []string
	for _, part := range strings.Split(payload, ",") {
		if city := strings.TrimSpace(part); city != "" {
			cities = append(cities, city)
		}
	}
	return cities
}
