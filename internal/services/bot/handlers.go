package bot

import (
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"bakhtbot/internal/entities"
)

type regStep int

const (
	regAwaitingPhone regStep = iota
	regAwaitingName
	regAwaitingCity
)

// regState is the first-contact registration flow. It lives in its own
// store because, unlike the calculation flows, it is not feature-keyed.
type regState struct {
	Step  regStep
	Phone string
	Name  string
}

type journeyStep int

const (
	journeyAwaitingName journeyStep = iota
	journeyAwaitingCity
)

type journeyState struct {
	Step journeyStep
	Name string
}

func (s *Service) onStart(c tele.Context) error {
	userId := c.Sender().ID

	user, err := s.repo.GetUser(userId)
	if err != nil {
		s.l.Error("failed to look up user", "userId", userId, "error", err)
		return c.Send(textGenericError)
	}
	if user != nil {
		return c.Send(textDashboard, dashboardKeyboard())
	}

	s.regStates.Put(userId, regState{Step: regAwaitingPhone})
	return c.Send(textAskPhone, contactKeyboard())
}

func (s *Service) onContactShared(c tele.Context) error {
	userId := c.Sender().ID
	contact := c.Message().Contact
	if contact == nil {
		return nil
	}

	unlock := s.regStates.Lock(userId)
	defer unlock()

	st, ok := s.regStates.Get(userId)
	if !ok || st.Step != regAwaitingPhone {
		return nil
	}
	st.Phone = contact.PhoneNumber
	st.Step = regAwaitingName
	s.regStates.Put(userId, st)

	return c.Send(textAskName, &tele.ReplyMarkup{RemoveKeyboard: true})
}

// onText routes free text by priority: an armed support inbox consumes
// the message first, then registration, then the journey signup. Text
// outside any flow is ignored.
func (s *Service) onText(c tele.Context) error {
	userId := c.Sender().ID

	waiting, err := s.repo.IsReplyWaiting(userId)
	if err != nil {
		s.l.Error("failed to check reply wait", "userId", userId, "error", err)
	} else if waiting {
		return s.deliverToAdmins(c)
	}

	if handled, err := s.handleRegistrationText(c); handled {
		return err
	}
	if handled, err := s.handleJourneyText(c); handled {
		return err
	}
	return nil
}

func (s *Service) handleRegistrationText(c tele.Context) (bool, error) {
	userId := c.Sender().ID

	unlock := s.regStates.Lock(userId)
	defer unlock()

	st, ok := s.regStates.Get(userId)
	if !ok {
		return false, nil
	}

	switch st.Step {
	case regAwaitingPhone:
		// typed text instead of sharing the contact
		return true, c.Send(textAskPhone, contactKeyboard())

	case regAwaitingName:
		st.Name = strings.TrimSpace(c.Text())
		st.Step = regAwaitingCity
		s.regStates.Put(userId, st)
		return true, c.Send(textAskCity)

	case regAwaitingCity:
		sender := c.Sender()
		user := &entities.User{
			Id:          userId,
			Username:    sender.Username,
			PhoneNumber: st.Phone,
			FirstName:   sender.FirstName,
			LastName:    sender.LastName,
			GivenName:   st.Name,
			City:        strings.TrimSpace(c.Text()),
			CreateDate:  time.Now(),
		}
		if err := s.repo.UpsertUser(user); err != nil {
			// state stays so the user can retry with the same answer
			s.l.Error("failed to store user", "userId", userId, "error", err)
			return true, c.Send(textGenericError)
		}
		s.regStates.Delete(userId)
		s.l.Info("user registered", "userId", userId, "city", user.City)
		return true, c.Send(textWelcome, dashboardKeyboard())
	}
	return false, nil
}

func (s *Service) onJourney(c tele.Context) error {
	userId := c.Sender().ID

	if blocked, err := s.gateCheck(c); blocked || err != nil {
		return err
	}

	signup, err := s.repo.GetJourneySignup(userId)
	if err != nil {
		s.l.Error("failed to look up journey signup", "userId", userId, "error", err)
		return c.Send(textGenericError)
	}
	if signup != nil {
		return c.Send(textJourneyAlready)
	}

	s.journeyStates.Put(userId, journeyState{Step: journeyAwaitingName})
	return c.Send(textJourneyIntro)
}

func (s *Service) handleJourneyText(c tele.Context) (bool, error) {
	userId := c.Sender().ID

	unlock := s.journeyStates.Lock(userId)
	defer unlock()

	st, ok := s.journeyStates.Get(userId)
	if !ok {
		return false, nil
	}

	switch st.Step {
	case journeyAwaitingName:
		st.Name = strings.TrimSpace(c.Text())
		st.Step = journeyAwaitingCity
		s.journeyStates.Put(userId, st)
		return true, c.Send(textJourneyCity)

	case journeyAwaitingCity:
		signup := &entities.JourneySignup{
			UserId:     userId,
			Name:       st.Name,
			City:       strings.TrimSpace(c.Text()),
			CreateDate: time.Now(),
		}
		if err := s.repo.StoreJourneySignup(signup); err != nil {
			s.l.Error("failed to store journey signup", "userId", userId, "error", err)
			return true, c.Send(textGenericError)
		}
		s.journeyStates.Delete(userId)
		s.l.Info("journey signup stored", "userId", userId, "city", signup.City)
		return true, c.Send(textJourneyDone, dashboardKeyboard())
	}
	return false, nil
}

func (s *Service) onContactCommand(c tele.Context) error {
	userId := c.Sender().ID
	if err := s.repo.SetReplyWait(userId, true); err != nil {
		s.l.Error("failed to arm reply wait", "userId", userId, "error", err)
		return c.Send(textGenericError)
	}
	return c.Send(textContactPrompt)
}

// deliverToAdmins forwards the armed message to the admin chat and
// disarms the inbox. Forwarding keeps the sender attribution visible to
// the admins.
func (s *Service) deliverToAdmins(c tele.Context) error {
	userId := c.Sender().ID

	if s.cfg.AdminChatId != 0 {
		if _, err := c.Bot().Forward(tele.ChatID(s.cfg.AdminChatId), c.Message()); err != nil {
			s.l.Error("failed to forward to admin chat", "userId", userId, "error", err)
			return c.Send(textGenericError)
		}
	}
	if err := s.repo.SetReplyWait(userId, false); err != nil {
		s.l.Error("failed to disarm reply wait", "userId", userId, "error", err)
	}
	return c.Send(textContactSent)
}

// gateCheck renders the join prompt when the user is missing channels.
// blocked=true means the caller must stop.
func (s *Service) gateCheck(c tele.Context) (bool, error) {
	isMember, missing, err := s.gate.Check(s.ctx, c.Sender().ID)
	if err != nil {
		s.l.Error("membership check failed", "userId", c.Sender().ID, "error", err)
		return true, c.Send(textGenericError)
	}
	if !isMember {
		return true, c.Send(textJoinChannels, joinChannelsKeyboard(missing))
	}
	return false, nil
}
