// Package email delivers validated inbound messages to the real
// recipients bound to their alias keys and builds bounce reports for
// rejected ones. Delivery providers follow a driver-style registry.
package email

import (
	"net/mail"
	"sort"
	"sync"
)

var (
	forwardersMu sync.RWMutex
	forwarders   = make(map[string]Forwarder)
)

type Forwarder interface {
	// SendMimeMail returns the provider message id or error
	SendMimeMail(mime []byte, to []mail.Address) (string, error)
}

// RegisterForwarder makes a delivery provider available under the given
// domain. If RegisterForwarder is called twice with the same domain or if
// the forwarder is nil, it panics.
func RegisterForwarder(domain string, f Forwarder) {
	forwardersMu.Lock()
	defer forwardersMu.Unlock()
	if f == nil {
		panic("email: Register forwarder is nil")
	}
	if _, dup := forwarders[domain]; dup {
		panic("email: Register called twice for forwarder " + domain)
	}
	forwarders[domain] = f
}

// GetForwarder returns the forwarder registered for a domain, or nil
func GetForwarder(domain string) Forwarder {
	forwardersMu.RLock()
	defer forwardersMu.RUnlock()
	return forwarders[domain]
}

// Forwarders returns a sorted list of domains with a registered forwarder
func Forwarders() []string {
	forwardersMu.RLock()
	defer forwardersMu.RUnlock()
	list := make([]string, 0, len(forwarders))
	for domain := range forwarders {
		list = append(list, domain)
	}
	sort.Strings(list)
	return list
}

// for tests only
func unregisterAllForwarders() {
	forwardersMu.Lock()
	defer forwardersMu.Unlock()
	forwarders = make(map[string]Forwarder)
}
