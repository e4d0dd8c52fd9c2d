package twilio

import (
	twiliojwt "github.com/twilio/twilio-go/client/jwt"
)

type TokenConfig struct {
	AccountSID  string
	APIKey      string
	APISecret   string
	TwimlAppSID string
}

// AccessToken mints the browser Device token: a voice grant allowing
// incoming calls and outgoing calls through the TwiML application.
func AccessToken(cfg TokenConfig, identity string) (string, error) {
	token := twiliojwt.CreateAccessToken(twiliojwt.AccessTokenParams{
		AccountSid:    cfg.AccountSID,
		SigningKeySid: cfg.APIKey,
		Secret:        cfg.APISecret,
		Identity:      identity,
	})

	token.AddGrant(&twiliojwt.VoiceGrant{
		Incoming: twiliojwt.Incoming{Allow: true},
		Outgoing: twiliojwt.Outgoing{ApplicationSid: cfg.TwimlAppSID},
	})

	return token.ToJwt()
}
