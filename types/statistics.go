package types

// AliasStatistics is one flushed statistics document in the aliasstats
// database: accept/reject counts for one day. Recipient identifiers are
// scrypt hashes, never clear-text addresses.
type AliasStatistics struct {
	BaseDocument
	Day           string           `json:"day"` // YYYY-MM-DD (UTC)
	Accepted      int64            `json:"accepted"`
	Rejected      int64            `json:"rejected"`
	ByRecipient   map[string]int64 `json:"byRecipient,omitempty"`
	FlushedMillis int64            `json:"flushed"`
}
