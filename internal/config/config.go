// Package config loads runtime settings from defaults, an optional config
// file, a .env file and VGN360_* environment variables, in increasing order
// of precedence. Command-line flags bound with BindFlags win over all of them.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexanderramin/vgn360/internal/gateway"
	"github.com/alexanderramin/vgn360/internal/screen"
)

// EnvPrefix is prepended to every environment variable, e.g. VGN360_API_TIMEOUT.
const EnvPrefix = "VGN360"

type API struct {
	BaseURL     string        `mapstructure:"base_url" validate:"required,url"`
	LeadBaseURL string        `mapstructure:"lead_base_url" validate:"required,url"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type OTP struct {
	Mode       string `mapstructure:"mode" validate:"omitempty,oneof=bypass server"`
	TestMobile string `mapstructure:"test_mobile" validate:"omitempty,numeric,len=10"`
	TestCode   string `mapstructure:"test_code" validate:"omitempty,numeric,len=4"`
}

type Log struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	File  string `mapstructure:"file"`
}

// Config is the full set of settings.
type Config struct {
	API API `mapstructure:"api"`
	OTP OTP `mapstructure:"otp"`
	Log Log `mapstructure:"log"`
}

// Gateway returns the gateway settings.
func (c Config) Gateway() gateway.Config {
	return gateway.Config{
		BaseURL:     strings.TrimRight(c.API.BaseURL, "/"),
		LeadBaseURL: strings.TrimRight(c.API.LeadBaseURL, "/"),
		Timeout:     c.API.Timeout,
	}
}

// OTPMode returns the parsed verification mode.
func (c Config) OTPMode() screen.OTPMode {
	mode, err := screen.ParseOTPMode(c.OTP.Mode)
	if err != nil {
		return screen.OTPBypass
	}
	return mode
}

// Options controls where Load looks for settings.
type Options struct {
	File    string         // explicit config file; "" means none
	EnvFile string         // dotenv file; missing files are ignored
	Flags   *pflag.FlagSet // flags bound with BindFlags, may be nil
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("loading %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if opts.Flags != nil {
		for key, name := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var configValidator = validator.New()

// Validate checks field formats.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s fails %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	def := gateway.DefaultConfig()
	v.SetDefault("api.base_url", def.BaseURL)
	v.SetDefault("api.lead_base_url", def.LeadBaseURL)
	v.SetDefault("api.timeout", def.Timeout)
	v.SetDefault("otp.mode", string(screen.OTPBypass))
	v.SetDefault("otp.test_mobile", "9884358122")
	v.SetDefault("otp.test_code", "1234")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// flagKeys maps config keys to the flags BindFlags registers.
var flagKeys = map[string]string{
	"api.base_url":      "base-url",
	"api.lead_base_url": "lead-base-url",
	"api.timeout":       "timeout",
	"otp.mode":          "otp-mode",
	"log.level":         "log-level",
	"log.file":          "log-file",
}

// BindFlags registers the overridable settings on fs. Flags only take effect
// when explicitly set.
func BindFlags(fs *pflag.FlagSet) {
	def := gateway.DefaultConfig()
	fs.String("base-url", def.BaseURL, "API base URL")
	fs.String("lead-base-url", def.LeadBaseURL, "lead submission base URL")
	fs.Duration("timeout", def.Timeout, "per-request timeout")
	fs.String("otp-mode", string(screen.OTPBypass), "OTP verification: bypass or server")
	fs.String("log-level", "info", "log level")
	fs.String("log-file", "", "write logs to this file")
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
