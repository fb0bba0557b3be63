package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxRangeDays = 365

func GetAnalytics(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := app.Store().Analytics(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load analytics")
			return
		}
		HandleSuccess(c, app.Logger(), data, nil)
	}
}

func GetAnalyticsRange(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		days := 7
		if raw := c.Query("days"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err == nil && (n < 1 || n > maxRangeDays) {
				err = fmt.Errorf("value %d out of range", n)
			}
			if err != nil {
				HandleError(c, app.Logger(), err, 400, "'days' must be an integer between 1 and 365")
				return
			}
			days = n
		}

		series, err := app.Store().Range(c.Request.Context(), days)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load range")
			return
		}
		HandleSuccess(c, app.Logger(), series, map[string]any{"days": days})
	}
}
