package gate

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type stubClient struct {
	roles map[string]tele.MemberStatus
	fail  map[string]bool
}

func (s *stubClient) ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error) {
	name := chat.Recipient()[1:] // strip "@"
	if s.fail[name] {
		return nil, errors.New("api unavailable")
	}
	return &tele.ChatMember{Role: s.roles[name]}, nil
}

func TestCheck(t *testing.T) {
	l := slog.Default()

	t.Run("all joined", func(t *testing.T) {
		client := &stubClient{roles: map[string]tele.MemberStatus{"one": tele.Member, "two": tele.Administrator}}
		g := NewChannelGate(client, []string{"one", "two"}, l)

		ok, missing, err := g.Check(context.Background(), 42)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, missing)
	})

	t.Run("left counts as missing", func(t *testing.T) {
		client := &stubClient{roles: map[string]tele.MemberStatus{"one": tele.Member, "two": tele.Left}}
		g := NewChannelGate(client, []string{"one", "two"}, l)

		ok, missing, err := g.Check(context.Background(), 42)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"two"}, missing)
	})

	t.Run("query failure fails closed", func(t *testing.T) {
		client := &stubClient{
			roles: map[string]tele.MemberStatus{"one": tele.Member, "three": tele.Member},
			fail:  map[string]bool{"two": true},
		}
		g := NewChannelGate(client, []string{"one", "two", "three"}, l)

		ok, missing, err := g.Check(context.Background(), 42)
		require.NoError(t, err)
		assert.False(t, ok)
		// the unreachable channel is reported, later channels are still checked
		assert.Equal(t, []string{"two"}, missing)
	})

	t.Run("no channels configured", func(t *testing.T) {
		g := NewChannelGate(&stubClient{}, nil, l)
		ok, missing, err := g.Check(context.Background(), 42)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, missing)
	})
}
