package broadcaster

type Config struct {
	Token      string `yaml:"token" validate:"required"`
	ThrottleMs int    `yaml:"throttle_ms"`
}
