package types

// ServerKeys is the on-disk format of the server ed25519 signing keys
// (created with the keys command)
type ServerKeys struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	Created    int64  `json:"created"`
}
