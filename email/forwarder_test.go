package email

import (
	"net/mail"
	"testing"

	"github.com/tj/assert"
)

type noopForwarder struct{}

func (noopForwarder) SendMimeMail(mime []byte, to []mail.Address) (string, error) {
	return "noop-id", nil
}

func TestRegisterForwarder(t *testing.T) {
	defer unregisterAllForwarders()

	RegisterForwarder("b.example.com", noopForwarder{})
	RegisterForwarder("a.example.com", noopForwarder{})

	assert.Equal(t, []string{"a.example.com", "b.example.com"}, Forwarders())
	assert.NotNil(t, GetForwarder("a.example.com"))
	assert.Nil(t, GetForwarder("missing.example.com"))
}

func TestRegisterForwarderDuplicatePanics(t *testing.T) {
	defer unregisterAllForwarders()

	RegisterForwarder("a.example.com", noopForwarder{})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	RegisterForwarder("a.example.com", noopForwarder{})
}

func TestRegisterNilForwarderPanics(t *testing.T) {
	defer unregisterAllForwarders()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on nil forwarder")
		}
	}()
	RegisterForwarder("a.example.com", nil)
}
