package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the HTTP surface on a gin engine.
func RegisterRoutes(r *gin.Engine, app App) {
	r.Use(RequestIDMiddleware())
	r.Use(AccessLogMiddleware(app.Logger()))

	days := r.Group("/api/days/:date")
	days.GET("", GetDay(app))
	days.POST("/toggle", PostToggle(app))
	days.POST("/tasks", PostTask(app))
	days.POST("/checkpoints", PostCheckpoint(app))
	days.DELETE("/tasks/:taskID", DeleteTask(app))
	days.DELETE("/checkpoints/:checkpointID", DeleteCheckpoint(app))

	r.GET("/api/analytics", GetAnalytics(app))
	r.GET("/api/analytics/range", GetAnalyticsRange(app))
}
