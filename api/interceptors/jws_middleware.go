package interceptors

import (
	"crypto/ed25519"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-jose/go-jose/v3"
	"github.com/google/uuid"
	"github.com/mailio/go-mailio-alias-server/global"
)

const (
	tokenExpiryHours = 30 * 24 // 30 days
	tokenAudience    = "alias-admin"
)

// JWSMiddleware guards the admin API. Tokens are compact JWS messages
// signed with the server ed25519 key (minted with the token command).
func JWSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		// Parse JWS message
		object, err := jose.ParseSigned(auth)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid JWS message"})
			return
		}

		// Verify the signature
		payload, err := object.Verify(global.PublicKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Failed to verify JWS message"})
			return
		}

		var plMap map[string]interface{}
		if uErr := json.Unmarshal(payload, &plMap); uErr != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to parse JWS payload"})
			return
		}
		exp, ok := plMap["exp"]
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to parse JWS payload (exp missing)"})
			return
		}
		expFloat, ok := exp.(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to parse JWS payload"})
			return
		}
		if expFloat < float64(time.Now().Unix()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "JWS message expired"})
			return
		}
		if aud, ok := plMap["aud"]; !ok || aud != tokenAudience {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "JWS message has wrong audience"})
			return
		}
		sub, ok := plMap["sub"]
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to parse JWS payload (sub missing)"})
			return
		}
		c.Set("subject", sub)
		c.Next()
	}
}

// GenerateJWSToken mints an admin token signed with the server key
func GenerateJWSToken(serverPrivateKey ed25519.PrivateKey, subject string) (string, error) {
	pl := map[string]interface{}{
		"iss": global.Conf.Host,
		"sub": subject,
		"iat": time.Now().Unix(),
		"jti": uuid.NewString(),
		"exp": time.Now().Add(time.Hour * tokenExpiryHours).Unix(),
		"aud": tokenAudience,
	}
	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.EdDSA, Key: serverPrivateKey}, nil)
	if err != nil {
		return "", err
	}

	plBytes, plErr := json.Marshal(pl)
	if plErr != nil {
		return "", plErr
	}
	object, err := signer.Sign(plBytes)
	if err != nil {
		return "", err
	}

	return object.CompactSerialize()
}
