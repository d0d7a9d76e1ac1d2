package types

// AliasKey is one entry of the key ring: a secret key bound to the real
// recipient its aliases forward to. Stored in the aliaskeys database.
type AliasKey struct {
	BaseDocument
	// SecretKey is the raw HMAC key material (opaque UTF-8 text)
	SecretKey string `json:"secretKey"`
	// Recipient is the real mailbox aliases for this key deliver to
	Recipient string `json:"recipient"`
	// Label is a human-chosen description (e.g. "work", "personal")
	Label   string `json:"label,omitempty"`
	Enabled bool   `json:"enabled"`
	Created int64  `json:"created"`
}

// KeyRingBackup is the CBOR-encoded snapshot uploaded to S3
type KeyRingBackup struct {
	Created int64       `cbor:"created"`
	Domains []string    `cbor:"domains"`
	Keys    []*AliasKey `cbor:"keys"`
}
