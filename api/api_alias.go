package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mailio/go-mailio-alias-server/alias"
	"github.com/mailio/go-mailio-alias-server/services"
	"github.com/mailio/go-mailio-alias-server/types"
)

type AliasAPI struct {
	aliasService *services.AliasService
	validate     *validator.Validate
}

func NewAliasAPI(aliasService *services.AliasService) *AliasAPI {
	return &AliasAPI{
		aliasService: aliasService,
		validate:     validator.New(),
	}
}

// GenerateAlias creates a deterministic alias from a stored key
// @Summary Generate a verifiable alias
// @Description Generate a deterministic verifiable alias from a stored key
// @Tags Alias
// @Accept json
// @Produce json
// @Param alias body types.InputGenerateAlias true "alias generation input"
// @Success 200 {object} types.OutputAlias
// @Failure 400 {object} api.ApiError "bad request"
// @Failure 401 {object} api.ApiError "not authorized"
// @Failure 404 {object} api.ApiError "key not found"
// @Router /api/v1/alias [post]
func (aa *AliasAPI) GenerateAlias(c *gin.Context) {
	var input types.InputGenerateAlias
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid input")
		return
	}
	if vErr := aa.validate.Struct(input); vErr != nil {
		msg := ValidatorErrorToUser(vErr.(validator.ValidationErrors))
		ApiErrorf(c, http.StatusBadRequest, "%s", msg)
		return
	}

	generated, err := aa.aliasService.GenerateAlias(c.Request.Context(), input.KeyID, input.AliasParts, input.Domain, input.HashLength)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			ApiErrorf(c, http.StatusNotFound, "key not found")
			return
		}
		if errors.Is(err, types.ErrBadRequest) || errors.Is(err, alias.ErrInvalidInput) {
			ApiErrorf(c, http.StatusBadRequest, "%s", err.Error())
			return
		}
		ApiErrorf(c, http.StatusInternalServerError, "failed to generate alias")
		return
	}
	c.JSON(http.StatusOK, types.OutputAlias{Alias: generated})
}

// ValidateAlias dry-runs key ring validation for a candidate alias
// @Summary Validate an alias against the key ring
// @Description Validate an alias and return the resolved recipient
// @Tags Alias
// @Accept json
// @Produce json
// @Param alias body types.InputValidateAlias true "alias validation input"
// @Success 200 {object} types.OutputValidation
// @Failure 400 {object} api.ApiError "bad request"
// @Failure 401 {object} api.ApiError "not authorized"
// @Router /api/v1/alias/validate [post]
func (aa *AliasAPI) ValidateAlias(c *gin.Context) {
	var input types.InputValidateAlias
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrorf(c, http.StatusBadRequest, "invalid input")
		return
	}
	if vErr := aa.validate.Struct(input); vErr != nil {
		msg := ValidatorErrorToUser(vErr.(validator.ValidationErrors))
		ApiErrorf(c, http.StatusBadRequest, "%s", msg)
		return
	}

	recipient, err := aa.aliasService.ResolveRecipient(c.Request.Context(), input.Alias, input.HashLength)
	if err != nil {
		ApiErrorf(c, http.StatusInternalServerError, "failed to validate alias")
		return
	}
	c.JSON(http.StatusOK, types.OutputValidation{Valid: recipient != "", Recipient: recipient})
}
