package types

// create a new alias key (the secret itself is generated server side)
type InputAliasKey struct {
	Recipient string `json:"recipient" validate:"required,email"`
	Label     string `json:"label"`
}

// deterministic alias generation for a stored key
type InputGenerateAlias struct {
	KeyID      string   `json:"keyId" validate:"required"`
	AliasParts []string `json:"aliasParts" validate:"required,min=1,dive,required"`
	Domain     string   `json:"domain" validate:"required"`
	HashLength int      `json:"hashLength"` // 0 means server default
}

// dry-run validation of a candidate alias against the key ring
type InputValidateAlias struct {
	Alias      string `json:"alias" validate:"required"`
	HashLength int    `json:"hashLength"` // 0 means server default
}
