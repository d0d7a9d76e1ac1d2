package email

import (
	"bytes"
	"fmt"
	"net/mail"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mailio/go-mailio-alias-server/global"
)

// MailgunForwarder delivers MIME messages over a Mailgun-compatible
// HTTP API (POST /v3/{domain}/messages.mime)
type MailgunForwarder struct {
	client *resty.Client
	domain string
}

type mailgunSendResponse struct {
	Id      string `json:"id"`
	Message string `json:"message"`
}

func NewMailgunForwarder(apiBaseUrl, domain, sendApiKey string) *MailgunForwarder {
	cl := resty.New().SetBaseURL(apiBaseUrl).SetTimeout(time.Second * 30)
	cl.SetBasicAuth("api", sendApiKey)
	return &MailgunForwarder{
		client: cl,
		domain: domain,
	}
}

func (m *MailgunForwarder) SendMimeMail(mime []byte, to []mail.Address) (string, error) {
	req := m.client.R()
	for _, t := range to {
		req.SetMultipartFormData(map[string]string{"to": t.Address})
	}
	req.SetMultipartField("message", "message.mime", "message/rfc822", bytes.NewReader(mime))

	var result mailgunSendResponse
	resp, err := req.SetResult(&result).Post(fmt.Sprintf("/v3/%s/messages.mime", m.domain))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		global.Logger.Log("error", "mailgun send failed", "status", resp.StatusCode(), "body", resp.String())
		return "", fmt.Errorf("mailgun send failed with status %d", resp.StatusCode())
	}
	return result.Id, nil
}
