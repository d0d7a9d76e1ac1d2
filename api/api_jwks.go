package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/mailio/go-mailio-alias-server/global"
)

type JwksAPI struct {
}

func NewJwksAPI() *JwksAPI {
	return &JwksAPI{}
}

// Jwks publishes the server verification key so admin token signatures
// can be checked without calling this server
// @Summary Get the server JSON Web Key Set
// @Description Get the public signing key of this server as a JWKS document
// @Tags Well Known
// @Produce json
// @Success 200
// @Failure 500 {object} api.ApiError "internal error"
// @Router /.well-known/jwks.json [get]
func (ja *JwksAPI) Jwks(c *gin.Context) {
	key, err := jwk.FromRaw(global.PublicKey)
	if err != nil {
		ApiErrorf(c, http.StatusInternalServerError, "failed to build jwks")
		return
	}
	key.Set(jwk.KeyUsageKey, jwk.ForSignature)
	key.Set(jwk.AlgorithmKey, jwa.EdDSA)

	set := jwk.NewSet()
	if aErr := set.AddKey(key); aErr != nil {
		ApiErrorf(c, http.StatusInternalServerError, "failed to build jwks")
		return
	}
	c.JSON(http.StatusOK, set)
}
