package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"bakhtbot/internal/entities"
	"bakhtbot/internal/tables"
	"bakhtbot/internal/workflow"
)

func (s *Service) startWorkflow(c tele.Context, feature entities.Feature) error {
	eff, err := s.engine.Start(s.ctx, c.Sender().ID, feature)
	if err != nil {
		s.l.Error("failed to start flow", "userId", c.Sender().ID, "feature", feature, "error", err)
		return c.Send(textGenericError)
	}

	if eff.Kind == workflow.EffectPromptDecade {
		intro := textKuaIntro
		if feature == entities.FeatureZodiac {
			intro = textZodiacIntro
		}
		if err := c.Send(intro); err != nil {
			return err
		}
	}
	return s.renderEffect(c, feature, eff)
}

func (s *Service) onCallback(c tele.Context) error {
	userId := c.Sender().ID
	data := strings.TrimPrefix(c.Callback().Data, "\f")

	switch data {
	case cbKua:
		return respond(c, s.startWorkflow(c, entities.FeatureKua))
	case cbZodiac:
		return respond(c, s.startWorkflow(c, entities.FeatureZodiac))
	case cbQuiz:
		return respond(c, s.startQuiz(c))
	case cbJourney:
		return respond(c, s.onJourney(c))
	case cbHelp:
		return respond(c, c.Send(textHelp, dashboardKeyboard()))
	case cbStart:
		return respond(c, c.Send(textDashboard, dashboardKeyboard()))
	case cbConfirm:
		return s.onJoinConfirm(c)
	}

	if strings.HasPrefix(data, quizAnswerPrefix) {
		return respond(c, s.onQuizAnswer(c, data))
	}

	feature, in, err := workflow.ParseToken(data)
	if err != nil {
		s.l.Warn("ignoring unknown callback", "userId", userId, "data", data)
		return c.Respond()
	}

	eff, err := s.engine.Advance(s.ctx, userId, feature, in)
	if err != nil {
		s.l.Error("failed to advance flow", "userId", userId, "feature", feature, "error", err)
		return respond(c, c.Send(textGenericError))
	}
	return respond(c, s.renderEffect(c, feature, eff))
}

// respond acknowledges the callback so the client stops its spinner,
// whatever happened to the actual handling.
func respond(c tele.Context, err error) error {
	if respErr := c.Respond(); err == nil {
		return respErr
	}
	return err
}

func (s *Service) onJoinConfirm(c tele.Context) error {
	isMember, missing, err := s.gate.Check(s.ctx, c.Sender().ID)
	if err != nil {
		s.l.Error("membership check failed", "userId", c.Sender().ID, "error", err)
		return respond(c, c.Send(textGenericError))
	}
	if !isMember {
		if err := c.Send(textJoinChannels, joinChannelsKeyboard(missing)); err != nil {
			return err
		}
		return c.Respond(&tele.CallbackResponse{Text: "هنوز عضو همه کانال‌ها نشده‌اید."})
	}
	return respond(c, c.Send(textDashboard, dashboardKeyboard()))
}

func (s *Service) renderEffect(c tele.Context, feature entities.Feature, eff workflow.Effect) error {
	switch eff.Kind {
	case workflow.EffectJoinChannels:
		return c.Send(textJoinChannels, joinChannelsKeyboard(eff.MissingChannels))

	case workflow.EffectVisitLimit:
		return c.Send(visitLimitText(feature))

	case workflow.EffectPromptDecade:
		return c.Send(textChooseDecade, decadeKeyboard(feature, s.engine.Decades()))

	case workflow.EffectPromptYear:
		return c.Send(textChooseYear, yearKeyboard(feature, eff.YearStart, eff.YearEnd))

	case workflow.EffectPromptMonth:
		return c.Send(textChooseMonth, monthKeyboard(feature))

	case workflow.EffectPromptDay:
		return c.Send(textChooseDay, dayKeyboard(feature))

	case workflow.EffectPromptGender:
		return c.Send(textChooseGender, genderKeyboard(feature))

	case workflow.EffectInvalidDate:
		if err := c.Send(textInvalidDate); err != nil {
			return err
		}
		return c.Send(textChooseDecade, decadeKeyboard(feature, s.engine.Decades()))

	case workflow.EffectUnsupportedYear:
		return c.Send(textUnsupportedYear, dashboardKeyboard())

	case workflow.EffectKuaResult:
		msg := fmt.Sprintf(
			"🔢 تاریخ تولد شما: %s\n\nعدد شانس (کوآ) شما: <b>%d</b>\nعنصر عدد شما: %s",
			eff.BirthDate, eff.KuaNumber,
			tables.ElementFarsi(tables.KuaElement(eff.KuaNumber)),
		)
		if err := c.Send(msg, tele.ModeHTML); err != nil {
			return err
		}
		return c.Send(textDashboard, dashboardKeyboard())

	case workflow.EffectZodiacResult:
		msg := fmt.Sprintf(
			"🐉 تاریخ تولد شما: %s\n\nنماد سال تولد شما: <b>%s</b>\nعنصر سال تولد: %s",
			eff.BirthDate,
			tables.SignFarsi(eff.Sign),
			tables.ElementFarsi(eff.Element),
		)
		if err := c.Send(msg, tele.ModeHTML); err != nil {
			return err
		}
		return c.Send(textDashboard, dashboardKeyboard())
	}
	return nil
}

func visitLimitText(feature entities.Feature) string {
	switch feature {
	case entities.FeatureZodiac:
		return textZodiacLimit
	case entities.FeatureQuiz:
		return textQuizLimit
	}
	return textKuaLimit
}
