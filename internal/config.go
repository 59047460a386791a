package internal

import (
	"fmt"
	"strings"
	"time"

	"chatmux/moderation"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	LogLevel        string        `env:"LOG_LEVEL,required=true" validate:"oneof=debug info warn error"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true" validate:"required"`
	EventBufferSize int           `env:"EVENT_BUFFER_SIZE,required=true" validate:"gt=0"`
	SinkTimeout     time.Duration `env:"SINK_TIMEOUT,required=true" validate:"gt=0"`
	MetricInterval  time.Duration `env:"METRIC_INTERVAL,required=true" validate:"gt=0"`
	HealthInterval  time.Duration `env:"HEALTH_INTERVAL,required=true" validate:"gt=0"`

	ModerationWindow     time.Duration `env:"MODERATION_WINDOW,required=true" validate:"gt=0"`
	CorrelationRetention time.Duration `env:"CORRELATION_RETENTION,required=true" validate:"gt=0"`
	Moderators           []string      `env:"MODERATORS"`
	Admins               []string      `env:"ADMINS"`
	// Comma separated "service/channelId" pairs.
	ModerationChannels []string `env:"MODERATION_CHANNELS"`

	CensorEnabled   bool   `env:"CENSOR_ENABLED,required=true"`
	CharReplacement string `env:"CHARACTER_REPLACEMENT,required=true"`

	TimelineLimit      int           `env:"TIMELINE_LIMIT,required=true" validate:"gt=0"`
	AuditBatchSize     int           `env:"AUDIT_BATCH_SIZE,required=true" validate:"gt=0"`
	AuditBufferTimeout time.Duration `env:"AUDIT_BUFFER_TIMEOUT,required=true" validate:"gt=0"`

	DebugPort         int           `env:"DEBUG_PORT,required=true" validate:"gt=0,lt=65536"`
	AdminPort         int           `env:"ADMIN_PORT,required=true" validate:"gt=0,lt=65536"`
	AdminUsername     string        `env:"ADMIN_USERNAME,required=true" validate:"min=3"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH,required=true" validate:"required"`
	AdminTokenSecret  string        `env:"ADMIN_TOKEN_SECRET,required=true" validate:"min=32"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,required=true" validate:"gt=0"`
}

var validate = validator.New()

func (c Config) Validate() error {
	return validate.Struct(c)
}

// Policy assembles the moderation policy from the flat env fields.
func (c Config) Policy() (moderation.Policy, error) {
	channels := make(map[string][]string)
	for _, pair := range c.ModerationChannels {
		service, channelID, found := strings.Cut(strings.TrimSpace(pair), "/")
		if !found || service == "" || channelID == "" {
			return moderation.Policy{}, fmt.Errorf(
				"MODERATION_CHANNELS entries must be service/channelId, got %q", pair)
		}
		service = strings.ToLower(service)
		channels[service] = append(channels[service], channelID)
	}
	return moderation.Policy{
		Moderators: c.Moderators,
		Admins:     c.Admins,
		Channels:   channels,
		Window:     c.ModerationWindow,
	}, nil
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
