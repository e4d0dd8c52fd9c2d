package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	c := &Config{}
	c.ApplyDefaults()

	assert.Equal(t, ":3001", c.HTTP.Addr)
	assert.Equal(t, "data", c.Data.Dir)
	assert.Equal(t, 1000, c.Data.CallCap)
	assert.Equal(t, 1000, c.Data.SMSCap)
	assert.Equal(t, 500, c.Data.MMSCap)
	assert.False(t, c.Data.DedupeBySID)
	assert.Equal(t, "softphone-user", c.Twilio.ClientIdentity)
}

func TestEnvOverridesSecrets(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "ACenv")
	t.Setenv("TWILIO_AUTH_TOKEN", "tokenenv")

	c := &Config{}
	c.ApplyDefaults()
	c.applyEnv()

	assert.Equal(t, "ACenv", c.Twilio.AccountSID)
	assert.True(t, c.TwilioConfigured())
}

func TestTwilioConfigured(t *testing.T) {
	c := &Config{}
	assert.False(t, c.TwilioConfigured())

	c.Twilio.AccountSID = "AC1"
	assert.False(t, c.TwilioConfigured())

	c.Twilio.AuthToken = "tok"
	assert.True(t, c.TwilioConfigured())
}
