package util

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mailio/go-mailio-alias-server/global"
	"github.com/mailio/go-mailio-alias-server/types"
)

// MailToUniqueID derives a stable task id for an inbound message so that
// webhook retries do not enqueue the same message twice
func MailToUniqueID(email *types.Mail, optionalSuffix string) (string, error) {
	if email == nil {
		return "", types.ErrBadRequest
	}
	if email.Timestamp == 0 {
		return "", types.ErrBadRequest
	}
	m, mErr := json.Marshal(email)
	if mErr != nil {
		return "", mErr
	}
	m = append(m, []byte(fmt.Sprintf("%d", email.Timestamp))...)
	if optionalSuffix != "" {
		m = append(m, []byte(optionalSuffix)...)
	}
	return Sha256Hex(m), nil
}

// IsServedDomain reports whether this server creates and validates
// aliases for the given domain
func IsServedDomain(domain string) bool {
	for _, d := range global.Conf.Alias.Domains {
		if strings.EqualFold(d, domain) {
			return true
		}
	}
	return false
}

// AliasDomain extracts the domain part of an address-like string
func AliasDomain(address string) string {
	at := strings.LastIndex(address, "@")
	if at < 0 || at == len(address)-1 {
		return ""
	}
	return address[at+1:]
}

// DayUTC formats the day bucket used by statistics keys
func DayUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
