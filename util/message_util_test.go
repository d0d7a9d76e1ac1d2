package util

import (
	"net/mail"
	"testing"
	"time"

	"github.com/mailio/go-mailio-alias-server/types"
	"github.com/tj/assert"
)

func TestMailToUniqueID(t *testing.T) {
	m := &types.Mail{
		From:      mail.Address{Address: "sender@example.com"},
		To:        []mail.Address{{Address: "site-74e423d7@alias.example.com"}},
		Subject:   "hello",
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
	}
	first, err := MailToUniqueID(m, "inbox")
	if err != nil {
		t.Fatal(err)
	}
	second, err := MailToUniqueID(m, "inbox")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, first, second)

	other, _ := MailToUniqueID(m, "other")
	assert.NotEqual(t, first, other)

	_, badErr := MailToUniqueID(&types.Mail{}, "")
	assert.Equal(t, types.ErrBadRequest, badErr)
}

func TestAliasDomain(t *testing.T) {
	assert.Equal(t, "example.com", AliasDomain("site-74e423d7@example.com"))
	assert.Equal(t, "", AliasDomain("no-at-sign"))
	assert.Equal(t, "", AliasDomain("dangling@"))
}
