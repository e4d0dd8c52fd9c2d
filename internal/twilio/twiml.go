package twilio

import (
	"github.com/twilio/twilio-go/twiml"
)

const statusCallbackEvents = "initiated ringing answered completed failed busy no-answer"

// InboundCallTwiML bridges a ringing inbound call to the registered browser
// client, recording from answer and reporting every lifecycle status back.
func InboundCallTwiML(from, clientIdentity, statusCallback string) (string, error) {
	return twiml.Voice([]twiml.Element{
		&twiml.VoiceDial{
			CallerId: from,
			Timeout:  "30",
			Record:   "record-from-answer",
			InnerElements: []twiml.Element{
				&twiml.VoiceClient{
					Identity:             clientIdentity,
					StatusCallback:       statusCallback,
					StatusCallbackEvent:  statusCallbackEvents,
					StatusCallbackMethod: "POST",
				},
			},
		},
	})
}

// OutboundDialTwiML dials the PSTN leg of a call the browser Device placed.
func OutboundDialTwiML(to, callerID, statusCallback string) (string, error) {
	return twiml.Voice([]twiml.Element{
		&twiml.VoiceDial{
			CallerId: callerID,
			Timeout:  "30",
			Record:   "record-from-answer",
			InnerElements: []twiml.Element{
				&twiml.VoiceNumber{
					PhoneNumber:          to,
					StatusCallback:       statusCallback,
					StatusCallbackEvent:  statusCallbackEvents,
					StatusCallbackMethod: "POST",
				},
			},
		},
	})
}

// TransferTwiML redirects an in-progress call to another number.
func TransferTwiML(to string) (string, error) {
	return twiml.Voice([]twiml.Element{
		&twiml.VoiceDial{
			InnerElements: []twiml.Element{
				&twiml.VoiceNumber{PhoneNumber: to},
			},
		},
	})
}

// GreetingTwiML answers the REST-placed outbound call leg.
func GreetingTwiML() (string, error) {
	return twiml.Voice([]twiml.Element{
		&twiml.VoiceSay{Message: "You are connected to the softphone."},
		&twiml.VoicePause{Length: "1"},
		&twiml.VoiceSay{Message: "Your call is in progress."},
	})
}

// EmptyMessagingTwiML acknowledges a message webhook with no auto-reply.
func EmptyMessagingTwiML() (string, error) {
	return twiml.Messages([]twiml.Element{})
}
