package task

import (
	"errors"
	"time"

	"github.com/taskhub/api/internal/validate"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

const statusOneOf = "pending in-progress completed"

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	DueDate     Date      `json:"dueDate"`
	OwnerID     string    `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ErrNotFound covers both "no such task" and "task owned by someone else";
// handlers must not distinguish the two.
var ErrNotFound = errors.New("task not found")

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     Date   `json:"dueDate"`
}

func (r CreateTaskRequest) Validate() []validate.FieldError {
	var fields []validate.FieldError

	if r.Title == "" {
		fields = append(fields, validate.NewFieldError("title", "required", ""))
	}

	if r.Status != "" && !Status(r.Status).Valid() {
		fields = append(fields, validate.NewFieldError("status", "oneof", statusOneOf))
	}

	if r.DueDate.IsZero() {
		fields = append(fields, validate.NewFieldError("dueDate", "required", ""))
	}

	return fields
}

type UpdateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     Date   `json:"dueDate"`
}

func (r UpdateTaskRequest) Validate() []validate.FieldError {
	var fields []validate.FieldError

	if r.Status != "" && !Status(r.Status).Valid() {
		fields = append(fields, validate.NewFieldError("status", "oneof", statusOneOf))
	}

	return fields
}

// ApplyTo merges the update into t with "first truthy wins" semantics: an
// absent, empty, or zero field keeps the stored value. An empty string can
// therefore never clear a field; that matches the service's documented
// partial-update contract.
func (r UpdateTaskRequest) ApplyTo(t *Task) {
	if r.Title != "" {
		t.Title = r.Title
	}

	if r.Description != "" {
		t.Description = r.Description
	}

	if r.Status != "" {
		t.Status = Status(r.Status)
	}

	if !r.DueDate.IsZero() {
		t.DueDate = r.DueDate
	}
}

// NewFromCreateRequest builds the persisted record: generated id is left to
// the repo, status defaults to pending, owner comes from the authenticated
// identity.
func NewFromCreateRequest(req CreateTaskRequest, ownerID string, now time.Time) Task {
	status := Status(req.Status)

	if status == "" {
		status = StatusPending
	}

	return Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
