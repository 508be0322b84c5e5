// Package gate checks that a user has joined every required channel
// before a feature may be used.
package gate

import (
	"context"
	"fmt"
	"log/slog"

	"bakhtbot/internal/metrics"

	tele "gopkg.in/telebot.v3"
)

// Gate reports whether the user belongs to all required channels and,
// when not, which channels are still missing.
type Gate interface {
	Check(ctx context.Context, userId int64) (bool, []string, error)
}

// ChatMemberClient is the slice of the telegram bot API the gate needs.
type ChatMemberClient interface {
	ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error)
}

// channel addresses a public channel by username.
type channel string

func (c channel) Recipient() string { return "@" + string(c) }

type channelGate struct {
	client   ChatMemberClient
	channels []string
	l        *slog.Logger
}

func NewChannelGate(client ChatMemberClient, channels []string, l *slog.Logger) Gate {
	return &channelGate{
		client:   client,
		channels: channels,
		l:        l.With("service", "MembershipGate"),
	}
}

// Check queries membership per channel. A failed query counts as
// "not a member": unreachable checks must never grant access.
func (g *channelGate) Check(ctx context.Context, userId int64) (bool, []string, error) {
	var missing []string
	for _, ch := range g.channels {
		if err := ctx.Err(); err != nil {
			return false, missing, err
		}
		member, err := g.client.ChatMemberOf(channel(ch), &tele.User{ID: userId})
		if err != nil {
			g.l.Error(fmt.Errorf("membership check for @%s failed: %w", ch, err).Error(), "userId", userId)
			metrics.MembershipCheckErrors.Inc()
			missing = append(missing, ch)
			continue
		}
		if !joined(member.Role) {
			missing = append(missing, ch)
		}
	}
	return len(missing) == 0, missing, nil
}

func joined(role tele.MemberStatus) bool {
	return role == tele.Member || role == tele.Administrator || role == tele.Creator
}
