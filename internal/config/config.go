package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"bakhtbot/internal/repository"
	"bakhtbot/internal/services/bot"
	"bakhtbot/internal/services/broadcaster"
	"bakhtbot/internal/services/http_server"
	"bakhtbot/internal/workflow"
)

type Config struct {
	BotConfig         *bot.Config         `yaml:"bot_config" validate:"required"`
	WorkflowConfig    *workflow.Config    `yaml:"workflow_config" validate:"required"`
	RepoConfig        *repository.Config  `yaml:"repo_config" validate:"required"`
	BroadcasterConfig *broadcaster.Config `yaml:"broadcaster_config"`
	HttpServerConfig  *http_server.Config `yaml:"http_config"`
}

func LoadConfigFromFile(path string) (cfg *Config, err error) {
	if _, err = os.Stat(path); err != nil {
		return nil, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err = yaml.Unmarshal(bytes, &cfg); err != nil {
		return nil, err
	}

	if err = validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
