package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"jwt"`

	DB struct {
		DSN string `yaml:"dsn"`
	} `yaml:"db"`

	Data struct {
		Dir         string `yaml:"dir"`
		CallCap     int    `yaml:"call_cap"`
		SMSCap      int    `yaml:"sms_cap"`
		MMSCap      int    `yaml:"mms_cap"`
		DedupeBySID bool   `yaml:"dedupe_by_sid"`
	} `yaml:"data"`

	Twilio struct {
		AccountSID     string `yaml:"account_sid"`
		AuthToken      string `yaml:"auth_token"`
		APIKey         string `yaml:"api_key"`
		APISecret      string `yaml:"api_secret"`
		PhoneNumber    string `yaml:"phone_number"`
		TwimlAppSID    string `yaml:"twiml_app_sid"`
		PublicURL      string `yaml:"public_url"`
		ClientIdentity string `yaml:"client_identity"`
	} `yaml:"twilio"`
}

func Load() *Config {
	// .env is optional, same as the original deployment
	_ = godotenv.Load()

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		panic(err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		panic(err)
	}

	c.ApplyDefaults()
	c.applyEnv()

	return &c
}

func (c *Config) ApplyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":3001"
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Data.CallCap == 0 {
		c.Data.CallCap = 1000
	}
	if c.Data.SMSCap == 0 {
		c.Data.SMSCap = 1000
	}
	if c.Data.MMSCap == 0 {
		c.Data.MMSCap = 500
	}
	if c.Twilio.ClientIdentity == "" {
		c.Twilio.ClientIdentity = "softphone-user"
	}
}

// Secrets come from the environment, never from config.yaml in production.
func (c *Config) applyEnv() {
	env := map[string]*string{
		"TWILIO_ACCOUNT_SID":   &c.Twilio.AccountSID,
		"TWILIO_AUTH_TOKEN":    &c.Twilio.AuthToken,
		"TWILIO_API_KEY":       &c.Twilio.APIKey,
		"TWILIO_API_SECRET":    &c.Twilio.APISecret,
		"TWILIO_PHONE_NUMBER":  &c.Twilio.PhoneNumber,
		"TWILIO_TWIML_APP_SID": &c.Twilio.TwimlAppSID,
		"PUBLIC_URL":           &c.Twilio.PublicURL,
		"JWT_SECRET":           &c.JWT.Secret,
		"DATABASE_DSN":         &c.DB.DSN,
	}
	for k, dst := range env {
		if v := os.Getenv(k); v != "" {
			*dst = v
		}
	}
}

func (c *Config) TwilioConfigured() bool {
	return c.Twilio.AccountSID != "" && c.Twilio.AuthToken != ""
}
