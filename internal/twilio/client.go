package twilio

import (
	twiliosdk "github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type Call struct {
	SID    string
	Status string
}

type Message struct {
	SID    string
	Status string
}

// Client is the slice of the vendor API this server actually uses.
// Handlers depend on it so tests can swap in a mock.
type Client interface {
	CreateCall(to, from, voiceURL, statusCallback string) (*Call, error)
	CompleteCall(sid string) error
	RedirectCall(sid, twiml string) error
	SendMessage(to, from, body string, mediaURLs []string) (*Message, error)
}

// RestClient wraps the official SDK.
type RestClient struct {
	api *twiliosdk.RestClient
}

func NewRestClient(accountSID, authToken string) *RestClient {
	return &RestClient{
		api: twiliosdk.NewRestClientWithParams(twiliosdk.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
	}
}

func (c *RestClient) CreateCall(to, from, voiceURL, statusCallback string) (*Call, error) {
	params := &twilioapi.CreateCallParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetUrl(voiceURL)
	params.SetStatusCallback(statusCallback)
	params.SetStatusCallbackEvent([]string{"initiated", "ringing", "answered", "completed"})
	params.SetStatusCallbackMethod("POST")

	resp, err := c.api.Api.CreateCall(params)
	if err != nil {
		return nil, err
	}

	call := &Call{}
	if resp.Sid != nil {
		call.SID = *resp.Sid
	}
	if resp.Status != nil {
		call.Status = *resp.Status
	}
	return call, nil
}

func (c *RestClient) CompleteCall(sid string) error {
	params := &twilioapi.UpdateCallParams{}
	params.SetStatus("completed")
	_, err := c.api.Api.UpdateCall(sid, params)
	return err
}

func (c *RestClient) RedirectCall(sid, twiml string) error {
	params := &twilioapi.UpdateCallParams{}
	params.SetTwiml(twiml)
	_, err := c.api.Api.UpdateCall(sid, params)
	return err
}

func (c *RestClient) SendMessage(to, from, body string, mediaURLs []string) (*Message, error) {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)
	if len(mediaURLs) > 0 {
		params.SetMediaUrl(mediaURLs)
	}

	resp, err := c.api.Api.CreateMessage(params)
	if err != nil {
		return nil, err
	}

	msg := &Message{}
	if resp.Sid != nil {
		msg.SID = *resp.Sid
	}
	if resp.Status != nil {
		msg.Status = *resp.Status
	}
	return msg, nil
}
