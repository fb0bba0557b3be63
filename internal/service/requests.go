package service

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ToggleRequest targets one completion flag on a date's timeline. TaskID and
// ChecklistItemID narrow the target inside a checkpoint; both empty means the
// item at ItemIndex is a standalone task.
type ToggleRequest struct {
	ItemIndex       int    `json:"item_index" validate:"gte=0"`
	TaskID          string `json:"task_id" validate:"omitempty"`
	ChecklistItemID string `json:"checklist_item_id" validate:"omitempty"`
}

func ValidateToggleRequest(body *ToggleRequest) error {
	return validate.Struct(body)
}

// NewTaskRequest creates a user task under an existing checkpoint's section.
type NewTaskRequest struct {
	CheckpointID string `json:"checkpoint_id" validate:"required"`
	TitleAr      string `json:"title_ar" validate:"required"`
	Time         string `json:"time" validate:"omitempty,datetime=15:04"`
	CustomPoints *int   `json:"custom_points" validate:"omitempty,gt=0"`
	Icon         string `json:"icon" validate:"omitempty"`
	Color        string `json:"color" validate:"omitempty"`
}

func ValidateNewTaskRequest(body *NewTaskRequest) error {
	return validate.Struct(body)
}

// NewCheckpointRequest creates an unlocked user checkpoint.
type NewCheckpointRequest struct {
	TitleAr string `json:"title_ar" validate:"required"`
	Time    string `json:"time" validate:"omitempty,datetime=15:04"`
	Icon    string `json:"icon" validate:"omitempty"`
	Color   string `json:"color" validate:"omitempty"`
}

func ValidateNewCheckpointRequest(body *NewCheckpointRequest) error {
	return validate.Struct(body)
}
