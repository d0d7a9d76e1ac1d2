package types

// OutputAliasKey never exposes the secret except directly after creation
type OutputAliasKey struct {
	ID        string `json:"id"`
	SecretKey string `json:"secretKey,omitempty"`
	Recipient string `json:"recipient"`
	Label     string `json:"label,omitempty"`
	Enabled   bool   `json:"enabled"`
	Created   int64  `json:"created,omitempty"`
}

type OutputAlias struct {
	Alias string `json:"alias"`
}

type OutputValidation struct {
	Valid     bool   `json:"valid"`
	Recipient string `json:"recipient,omitempty"`
}

type OutputToken struct {
	Token string `json:"token"`
}
