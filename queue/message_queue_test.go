package queue

import (
	"net/mail"
	"strings"
	"testing"

	"github.com/mailio/go-mailio-alias-server/email"
	"github.com/mailio/go-mailio-alias-server/types"
	"github.com/tj/assert"
)

type captureForwarder struct {
	mime []byte
	to   []mail.Address
}

func (cf *captureForwarder) SendMimeMail(mime []byte, to []mail.Address) (string, error) {
	cf.mime = mime
	cf.to = to
	return "captured-id", nil
}

func TestForwardMail(t *testing.T) {
	mq := NewMessageQueue(types.NewEnvironment(nil))

	cf := &captureForwarder{}
	email.RegisterForwarder("forward.example.com", cf)

	task := &types.ForwardTask{
		AliasAddress: "site-74e423d7@forward.example.com",
		Recipient:    "inbox@real.com",
		Mail: &types.Mail{
			From:      mail.Address{Address: "sender@example.com"},
			Subject:   "hello",
			BodyText:  "hi",
			Timestamp: 1700000000000,
		},
	}
	if err := mq.ForwardMail(task); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, len(cf.to))
	assert.Equal(t, "inbox@real.com", cf.to[0].Address)
	assert.True(t, strings.Contains(string(cf.mime), "X-Forwarded-For-Alias: site-74e423d7@forward.example.com"))
}

func TestForwardMailNoForwarder(t *testing.T) {
	mq := NewMessageQueue(types.NewEnvironment(nil))

	task := &types.ForwardTask{
		AliasAddress: "site-74e423d7@unregistered.example.com",
		Recipient:    "inbox@real.com",
		Mail:         &types.Mail{From: mail.Address{Address: "sender@example.com"}},
	}
	err := mq.ForwardMail(task)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestBounceMail(t *testing.T) {
	mq := NewMessageQueue(types.NewEnvironment(nil))

	cf := &captureForwarder{}
	email.RegisterForwarder("bounce.example.com", cf)

	task := &types.BounceTask{
		Code:    "5.1.1",
		Reason:  "Mailbox does not exist",
		Domain:  "bounce.example.com",
		Address: "ghost-00000000@bounce.example.com",
		Mail: &types.Mail{
			From:    mail.Address{Address: "sender@example.com"},
			Subject: "hello",
		},
	}
	if err := mq.BounceMail(task); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "sender@example.com", cf.to[0].Address)
	s := string(cf.mime)
	assert.True(t, strings.Contains(s, "multipart/report"))
	assert.True(t, strings.Contains(s, "5.1.1"))
}
