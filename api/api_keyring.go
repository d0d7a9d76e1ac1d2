package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mailio/go-mailio-alias-server/services"
	"github.com/mailio/go-mailio-alias-server/types"
)

type KeyRingAPI struct {
	keyService *services.KeyService
	validate   *validator.Validate
}

func NewKeyRingAPI(keyService *services.KeyService) *KeyRingAPI {
	return &KeyRingAPI{
		keyService: keyService,
		validate:   validator.New(),
	}
}

func toOutputKey(key *types.AliasKey, withSecret bool) types.OutputAliasKey {
	out := types.OutputAliasKey{
		ID:        key.ID,
		Recipient: key.Recipient,
		Label:     key.Label,
		Enabled:   key.Enabled,
		Created:   key.Created,
	}
	if withSecret {
		out.SecretKey = key.SecretKey
	}
	return out
}

// CreateKey creates a new alias key bound to a recipient
// @Summary Create a new alias key
// @Description Create a new alias key; the secret is returned only in this response
// @Tags Key Ring
// @Accept json
// @Produce json
// @Param key body types.InputAliasKey true "key input"
// @Success 201 {object} types.OutputAliasKey
// @Failure 400 {object} api.ApiError "bad request"
// @Failure 401 {object} api.ApiError "not authorized"
// @Router /api/v1/aliaskey [post]
func (ka *KeyRingAPI) CreateKey(c *gin.Context) {
	var input types.InputAliasKey
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid input")
		return
	}
	if vErr := ka.validate.Struct(input); vErr != nil {
		msg := ValidatorErrorToUser(vErr.(validator.ValidationErrors))
		ApiErrorf(c, http.StatusBadRequest, "%s", msg)
		return
	}

	key, err := ka.keyService.CreateKey(c.Request.Context(), input.Recipient, input.Label)
	if err != nil {
		ApiErrorf(c, http.StatusInternalServerError, "failed to create key")
		return
	}
	c.JSON(http.StatusCreated, toOutputKey(key, true))
}

// GetKey returns a stored key without its secret
// @Summary Get an alias key
// @Description Get an alias key by id (secret excluded)
// @Tags Key Ring
// @Produce json
// @Param id path string true "key id"
// @Success 200 {object} types.OutputAliasKey
// @Failure 401 {object} api.ApiError "not authorized"
// @Failure 404 {object} api.ApiError "key not found"
// @Router /api/v1/aliaskey/{id} [get]
func (ka *KeyRingAPI) GetKey(c *gin.Context) {
	id := c.Param("id")
	key, err := ka.keyService.GetKey(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			ApiErrorf(c, http.StatusNotFound, "key not found")
			return
		}
		ApiErrorf(c, http.StatusInternalServerError, "failed to get key")
		return
	}
	c.JSON(http.StatusOK, toOutputKey(key, false))
}

// ListKeys lists stored keys without their secrets
// @Summary List alias keys
// @Description List alias keys (secrets excluded)
// @Tags Key Ring
// @Produce json
// @Param limit query int false "max number of keys" default(50)
// @Param skip query int false "number of keys to skip" default(0)
// @Success 200 {array} types.OutputAliasKey
// @Failure 401 {object} api.ApiError "not authorized"
// @Router /api/v1/aliaskey [get]
func (ka *KeyRingAPI) ListKeys(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if limit <= 0 || limit > 1000 {
		limit = 50
	}

	keys, err := ka.keyService.ListKeys(c.Request.Context(), limit, skip)
	if err != nil {
		ApiErrorf(c, http.StatusInternalServerError, "failed to list keys")
		return
	}
	out := make([]types.OutputAliasKey, 0, len(keys))
	for _, key := range keys {
		out = append(out, toOutputKey(key, false))
	}
	c.JSON(http.StatusOK, out)
}

// DisableKey disables a key so its aliases stop validating
// @Summary Disable an alias key
// @Description Disable an alias key without deleting it
// @Tags Key Ring
// @Produce json
// @Param id path string true "key id"
// @Success 200
// @Failure 401 {object} api.ApiError "not authorized"
// @Failure 404 {object} api.ApiError "key not found"
// @Router /api/v1/aliaskey/{id}/disable [put]
func (ka *KeyRingAPI) DisableKey(c *gin.Context) {
	id := c.Param("id")
	if err := ka.keyService.DisableKey(c.Request.Context(), id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			ApiErrorf(c, http.StatusNotFound, "key not found")
			return
		}
		ApiErrorf(c, http.StatusInternalServerError, "failed to disable key")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "key disabled"})
}

// DeleteKey removes a key permanently
// @Summary Delete an alias key
// @Description Delete an alias key; its aliases stop validating permanently
// @Tags Key Ring
// @Produce json
// @Param id path string true "key id"
// @Success 200
// @Failure 401 {object} api.ApiError "not authorized"
// @Failure 404 {object} api.ApiError "key not found"
// @Router /api/v1/aliaskey/{id} [delete]
func (ka *KeyRingAPI) DeleteKey(c *gin.Context) {
	id := c.Param("id")
	if err := ka.keyService.DeleteKey(c.Request.Context(), id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			ApiErrorf(c, http.StatusNotFound, "key not found")
			return
		}
		ApiErrorf(c, http.StatusInternalServerError, "failed to delete key")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "key deleted"})
}
