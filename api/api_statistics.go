package api

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/mailio/go-mailio-alias-server/services"
	"github.com/mailio/go-mailio-alias-server/types"
)

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type StatisticsAPI struct {
	statsService *services.StatisticsService
}

func NewStatisticsAPI(statsService *services.StatisticsService) *StatisticsAPI {
	return &StatisticsAPI{statsService: statsService}
}

// GetStatistics returns the flushed accept/reject counts for one day
// @Summary Get validation statistics for a day
// @Description Get flushed accept/reject counts for a day (YYYY-MM-DD, UTC)
// @Tags Statistics
// @Produce json
// @Param day path string true "day (YYYY-MM-DD)"
// @Success 200 {object} types.AliasStatistics
// @Failure 400 {object} api.ApiError "bad request"
// @Failure 401 {object} api.ApiError "not authorized"
// @Failure 404 {object} api.ApiError "no statistics for day"
// @Router /api/v1/statistics/{day} [get]
func (sa *StatisticsAPI) GetStatistics(c *gin.Context) {
	day := c.Param("day")
	if !dayPattern.MatchString(day) {
		ApiErrorf(c, http.StatusBadRequest, "day must be YYYY-MM-DD")
		return
	}

	stats, err := sa.statsService.GetStatistics(c.Request.Context(), day)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			ApiErrorf(c, http.StatusNotFound, "no statistics for day %s", day)
			return
		}
		ApiErrorf(c, http.StatusInternalServerError, "failed to get statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}
