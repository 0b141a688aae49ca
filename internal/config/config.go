package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	TransportLiveKit = "livekit"
	TransportMemory  = "memory"
)

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TransportConfig struct {
	Kind    string        `mapstructure:"kind"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LiveKitConfig struct {
	Host      string        `mapstructure:"host"`
	APIKey    string        `mapstructure:"api_key"`
	APISecret string        `mapstructure:"api_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type Config struct {
	Mode       string          `mapstructure:"mode"`
	Port       int             `mapstructure:"port"`
	Secret     string          `mapstructure:"secret"`
	AdminToken string          `mapstructure:"admin_token"`
	Log        LogConfig       `mapstructure:"log"`
	Transport  TransportConfig `mapstructure:"transport"`
	LiveKit    LiveKitConfig   `mapstructure:"livekit"`
}

func (c *Config) Validate() error {
	switch c.Transport.Kind {
	case TransportMemory:
	case TransportLiveKit:
		if c.LiveKit.Host == "" {
			return errors.New("livekit.host is required for the livekit transport")
		}
	default:
		return fmt.Errorf("unknown transport kind %q", c.Transport.Kind)
	}
	if c.LiveKit.APIKey == "" || c.LiveKit.APISecret == "" {
		return errors.New("livekit.api_key and livekit.api_secret are required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// Flags returns the command line flags Load understands.
func Flags() *pflag.FlagSet {
	set := pflag.NewFlagSet("frontdesk", pflag.ContinueOnError)
	set.String("config", "", "path to a config file (default config/config.<CONFIG_ENV>.yaml)")
	set.Int("port", 0, "HTTP listen port")
	set.String("mode", "", "gin mode: debug, release or test")
	set.String("transport", "", "room transport: livekit or memory")
	return set
}

// Load resolves configuration from defaults, the config file, environment
// and flags, later sources winning. flags may be nil. An explicit --config
// file must exist and parse.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)
	explicit := false
	if flags != nil {
		if path, _ := flags.GetString("config"); path != "" {
			fileName = path
			explicit = true
		}
	}
	v.SetConfigFile(fileName)

	v.SetDefault("mode", "release")
	v.SetDefault("port", 3001)
	v.SetDefault("secret", "")
	v.SetDefault("admin_token", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("transport.kind", TransportLiveKit)
	v.SetDefault("transport.timeout", "5s")
	v.SetDefault("livekit.host", "")
	v.SetDefault("livekit.api_key", "")
	v.SetDefault("livekit.api_secret", "")
	v.SetDefault("livekit.token_ttl", "6h")

	v.SetEnvPrefix("FRONTDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Plain LIVEKIT_* names work too, as most LiveKit tooling sets them.
	_ = v.BindEnv("livekit.host", "FRONTDESK_LIVEKIT_HOST", "LIVEKIT_HOST")
	_ = v.BindEnv("livekit.api_key", "FRONTDESK_LIVEKIT_API_KEY", "LIVEKIT_API_KEY")
	_ = v.BindEnv("livekit.api_secret", "FRONTDESK_LIVEKIT_API_SECRET", "LIVEKIT_API_SECRET")

	if flags != nil {
		for key, flag := range map[string]string{
			"port":           "port",
			"mode":           "mode",
			"transport.kind": "transport",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}
		}
	}

	// Only a missing default file falls back to defaults.
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", fileName, err)
		}
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Str("transport", cfg.Transport.Kind).
		Msg("config resolved")
	return &cfg, nil
}
