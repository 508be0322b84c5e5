package bot

import "time"

type Config struct {
	Token              string   `yaml:"token" validate:"required"`
	AdminIds           []int64  `yaml:"admin_ids"`
	AdminChatId        int64    `yaml:"admin_chat_id"`
	Channels           []string `yaml:"channels"`
	PollTimeoutSeconds int      `yaml:"poll_timeout_seconds"`
}

func (c *Config) PollTimeout() time.Duration {
	if c.PollTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.PollTimeoutSeconds) * time.Second
}

func (c *Config) IsAdmin(userId int64) bool {
	for _, id := range c.AdminIds {
		if id == userId {
			return true
		}
	}
	return false
}
