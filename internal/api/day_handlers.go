package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal/service"
)

var errBadDate = errors.New("date must be YYYY-MM-DD")

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// noOpMeta marks a mutation that targeted a missing item. The current day
// state is still returned so clients can resync.
func noOpMeta(ok bool) map[string]any {
	if ok {
		return nil
	}
	return map[string]any{"no_op": true}
}

func GetDay(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Param("date")
		if !validDate(date) {
			HandleError(c, app.Logger(), errBadDate, 400, "Invalid date")
			return
		}

		day, err := app.Store().GetOrCreate(c.Request.Context(), date)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load day")
			return
		}
		HandleSuccess(c, app.Logger(), day, nil)
	}
}

func PostToggle(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Param("date")
		if !validDate(date) {
			HandleError(c, app.Logger(), errBadDate, 400, "Invalid date")
			return
		}

		var body service.ToggleRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateToggleRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		day, ok, err := app.Store().Toggle(c.Request.Context(), date, body.ItemIndex, body.TaskID, body.ChecklistItemID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to toggle item")
			return
		}
		HandleSuccess(c, app.Logger(), day, noOpMeta(ok))
	}
}

func PostTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Param("date")
		if !validDate(date) {
			HandleError(c, app.Logger(), errBadDate, 400, "Invalid date")
			return
		}

		var body service.NewTaskRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateNewTaskRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		day, ok, err := app.Store().AddStandaloneTask(c.Request.Context(), date, body.CheckpointID, service.TaskParams{
			TitleAr:      body.TitleAr,
			Time:         body.Time,
			CustomPoints: body.CustomPoints,
			Icon:         body.Icon,
			Color:        body.Color,
		})
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to add task")
			return
		}
		HandleSuccess(c, app.Logger(), day, noOpMeta(ok))
	}
}

func PostCheckpoint(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Param("date")
		if !validDate(date) {
			HandleError(c, app.Logger(), errBadDate, 400, "Invalid date")
			return
		}

		var body service.NewCheckpointRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateNewCheckpointRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		day, ok, err := app.Store().AddCheckpoint(c.Request.Context(), date, service.CheckpointParams{
			TitleAr: body.TitleAr,
			Time:    body.Time,
			Icon:    body.Icon,
			Color:   body.Color,
		})
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to add checkpoint")
			return
		}
		HandleSuccess(c, app.Logger(), day, noOpMeta(ok))
	}
}

func DeleteTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Param("date")
		if !validDate(date) {
			HandleError(c, app.Logger(), errBadDate, 400, "Invalid date")
			return
		}

		day, ok, err := app.Store().RemoveTask(c.Request.Context(), date, c.Param("taskID"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to remove task")
			return
		}
		HandleSuccess(c, app.Logger(), day, noOpMeta(ok))
	}
}

func DeleteCheckpoint(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Param("date")
		if !validDate(date) {
			HandleError(c, app.Logger(), errBadDate, 400, "Invalid date")
			return
		}

		day, ok, err := app.Store().RemoveCheckpoint(c.Request.Context(), date, c.Param("checkpointID"))
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to remove checkpoint")
			return
		}
		HandleSuccess(c, app.Logger(), day, noOpMeta(ok))
	}
}
