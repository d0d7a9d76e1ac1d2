package types

import "net/mail"

// Mail is an inbound message parsed from the ESP webhook MIME payload.
// Only the envelope and size information the validation and forwarding
// path needs is kept; the raw MIME is carried for delivery.
type Mail struct {
	From      mail.Address   `json:"from"`
	To        []mail.Address `json:"to"`
	Subject   string         `json:"subject"`
	MessageId string         `json:"messageId"`
	BodyText  string         `json:"bodyText,omitempty"`
	BodyHTML  string         `json:"bodyHtml,omitempty"`
	SizeBytes int64          `json:"sizeBytes"`
	Timestamp int64          `json:"timestamp"`
	// RawMime is the original message as received, re-sent on forward
	RawMime []byte `json:"rawMime,omitempty"`
}
