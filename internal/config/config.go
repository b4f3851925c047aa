package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`

	// TaxRate is a decimal string so the rate never passes through a float.
	TaxRate string `mapstructure:"TAX_RATE"`

	// Admin surface: allow-listed emails share one bcrypt password hash,
	// generated with misc/hash-password.
	AdminEmails       string `mapstructure:"ADMIN_EMAILS"` // comma-separated
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`

	// Notification: Twilio for SMS, SES as an email fallback. All optional;
	// notification is best-effort and the service runs without it.
	TwilioAccountSID string `mapstructure:"TWILIO_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `mapstructure:"TWILIO_FROM_NUMBER"`
	AdminPhone       string `mapstructure:"ADMIN_PHONE"`
	SESSender        string `mapstructure:"SES_SENDER"`
	AdminNotifyEmail string `mapstructure:"ADMIN_NOTIFY_EMAIL"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("TAX_RATE", "0.0825")

	viper.AutomaticEnv() // Read in environment variables that match

	err := viper.ReadInConfig()
	if err != nil {
		// Allow a missing .env file; everything can come from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No .env file found.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// AdminEmailList splits the configured allow-list into normalized entries.
func (c *Config) AdminEmailList() []string {
	var out []string
	for _, e := range strings.Split(c.AdminEmails, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}
