package email

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/jhillyerd/enmime"
	"github.com/mailio/go-mailio-alias-server/global"
	"github.com/mailio/go-mailio-alias-server/types"
	"github.com/microcosm-cc/bluemonday"
)

var maxBigInt = big.NewInt(math.MaxInt64)

func htmlToText(html string) string {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	// Remove all tags to leave only text
	clean := p.Sanitize(html)
	clean = strings.ReplaceAll(clean, "\n", "")
	clean = strings.ReplaceAll(clean, "\t", " ")
	clean = strings.TrimSpace(clean)
	words := strings.Fields(clean)
	return strings.Join(words, " ")
}

// generateRFC2822MessageID generates a string suitable for an RFC 2822
// compliant Message-ID from the nanoseconds since epoch, the calling PID,
// a cryptographically random int64 and the sending hostname
func generateRFC2822MessageID(hostname string) (string, error) {
	t := time.Now().UnixNano()
	pid := os.Getpid()
	rint, err := rand.Int(rand.Reader, maxBigInt)
	if err != nil {
		return "", err
	}
	if hostname == "" {
		return "", types.ErrInvalidFormat
	}
	return fmt.Sprintf("<%d.%d.%d@%s>", t, pid, rint, hostname), nil
}

// ParseMime parses a raw inbound MIME message into the envelope the
// validation path consumes. The raw bytes are retained for forwarding.
func ParseMime(raw []byte) (*types.Mail, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	from, fErr := env.AddressList("From")
	if fErr != nil || len(from) == 0 {
		return nil, types.ErrInvalidFormat
	}
	to, tErr := env.AddressList("To")
	if tErr != nil {
		return nil, types.ErrInvalidFormat
	}
	toAddrs := make([]mail.Address, 0, len(to))
	for _, a := range to {
		toAddrs = append(toAddrs, *a)
	}

	m := &types.Mail{
		From:      *from[0],
		To:        toAddrs,
		Subject:   env.GetHeader("Subject"),
		MessageId: strings.Trim(env.GetHeader("Message-Id"), "<>"),
		BodyText:  env.Text,
		BodyHTML:  env.HTML,
		SizeBytes: int64(len(raw)),
		Timestamp: time.Now().UTC().UnixMilli(),
		RawMime:   raw,
	}
	if m.BodyText == "" && m.BodyHTML != "" {
		m.BodyText = htmlToText(m.BodyHTML)
	}
	return m, nil
}

// ToMime builds a forwardable MIME message for a validated inbound mail.
// The original sender stays visible in the body headers; the alias server
// adds its own Message-ID and an X-Forwarded-For-Alias header so that the
// recipient can see which alias the message arrived on.
func ToMime(msg *types.Mail, aliasAddress string, to mail.Address) ([]byte, error) {
	text := msg.BodyText
	if text == "" {
		text = htmlToText(msg.BodyHTML)
	}

	outgoingMime := enmime.Builder().
		From(msg.From.Name, msg.From.Address).
		Subject(msg.Subject).
		To(to.Name, to.Address).
		Text([]byte(text)).
		Date(time.UnixMilli(msg.Timestamp))

	if msg.BodyHTML != "" {
		outgoingMime = outgoingMime.HTML([]byte(msg.BodyHTML))
	}

	outgoingMime = outgoingMime.Header("X-Mailer", "Mailio Alias")
	outgoingMime = outgoingMime.Header("X-Forwarded-For-Alias", aliasAddress)

	host := "localhost"
	if global.Conf.Host != "" {
		host = global.Conf.Host
	}
	id, idErr := generateRFC2822MessageID(host)
	if idErr != nil {
		global.Logger.Log("error", "error generating message id", "error", idErr)
		return nil, idErr
	}
	outgoingMime = outgoingMime.Header("Message-ID", id)

	ep, err := outgoingMime.Build()
	if err != nil {
		global.Logger.Log("error", "error building mime message", "error", err)
		return nil, err
	}
	var buf bytes.Buffer
	if err = ep.Encode(&buf); err != nil {
		global.Logger.Log("error", "error encoding mime message", "error", err)
		return nil, err
	}

	return buf.Bytes(), nil
}

/*
Bounce reasons used by the alias server:
Mailbox Does Not Exist — SMTP Reply Code = 550, SMTP Status Code = 5.1.1
(aliases that validate against no key in the ring)
Message Too Large — SMTP Reply Code = 552, SMTP Status Code = 5.3.4
Too Many Recipients — SMTP Reply Code = 452, SMTP Status Code = 4.5.3

where 4.x.x codes are soft bounces, and 5.x.x codes are hard bounces
*/
func ToBounce(recipient mail.Address, msg *types.Mail, bounceCode string, bounceReason string) ([]byte, error) {
	host := "localhost"
	if global.Conf.Host != "" {
		host = global.Conf.Host
	}
	from := mail.Address{Name: "Mailer-Daemon", Address: fmt.Sprintf("MAILER-DAEMON@%s", host)}

	// buffer to hold the headers temporarily
	var headerBuf bytes.Buffer

	// buffer to hold MIME message
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)
	defer writer.Close()

	header := make(textproto.MIMEHeader)
	header.Set("From", from.String())
	header.Set("To", recipient.String())
	header.Set("Subject", "Delivery Status Notification (Failure)")
	header.Set("Date", time.Now().Format(time.RFC1123Z))
	header.Set("MIME-Version", "1.0")
	header.Set("Content-Type", fmt.Sprintf("multipart/report; report-type=delivery-status; boundary=\"%s\"", writer.Boundary()))

	for k, v := range header {
		fmt.Fprintf(&headerBuf, "%s: %s\r\n", k, strings.Join(v, ","))
	}

	// First part: Human-readable explanation of the bounce
	textPartHeader := make(textproto.MIMEHeader)
	textPartHeader.Set("Content-Type", "text/plain; charset=\"utf-8\"")
	textPart, _ := writer.CreatePart(textPartHeader)
	fmt.Fprintf(textPart, "The following message to %s was undeliverable.\n\n"+
		"The reason for the problem:\n"+
		"%s - %s\n", recipient.String(), bounceCode, bounceReason)

	// Second part: Machine-readable delivery status
	dsnPartHeader := make(textproto.MIMEHeader)
	dsnPartHeader.Set("Content-Type", "message/delivery-status")
	dsnPart, _ := writer.CreatePart(dsnPartHeader)
	fmt.Fprintf(dsnPart, "Reporting-MTA: dns; %s"+
		"\nArrival-Date: "+time.Now().UTC().Format(time.RFC1123Z)+"\n\n"+
		"Final-Recipient: rfc822; %s"+
		"\nAction: failed"+
		"\nStatus: %s"+
		"\nRemote-MTA: dns; %s"+
		"\nDiagnostic-Code: smtp; %s - %s", host, recipient.String(), bounceCode, host, bounceCode, bounceReason)

	// Third part: Original message headers
	originalPartHeader := make(textproto.MIMEHeader)
	originalPartHeader.Set("Content-Type", "message/rfc822")
	originalPart, _ := writer.CreatePart(originalPartHeader)
	fmt.Fprintf(originalPart, "From: %s\nTo: %s\nSubject: %s\nDate: %s\n\n%s",
		msg.From.String(), recipient.String(), msg.Subject,
		time.Now().UTC().Format(time.RFC1123Z), "The original message was not included in this report.")

	if err := writer.Close(); err != nil {
		return nil, err
	}

	// Combine headers and body, separated with an empty line
	var finalBuf bytes.Buffer
	finalBuf.Write(headerBuf.Bytes())
	finalBuf.WriteString("\r\n")
	finalBuf.Write(buf.Bytes())

	return finalBuf.Bytes(), nil
}
