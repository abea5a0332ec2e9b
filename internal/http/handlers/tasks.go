package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/api/internal/config"
	"github.com/taskhub/api/internal/domain/task"
	"github.com/taskhub/api/internal/http/middlewares"
)

type TasksStore interface {
	Create(ctx context.Context, ownerID string, req task.CreateTaskRequest) (task.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]task.Task, error)
	GetByID(ctx context.Context, id string) (task.Task, error)
	Update(ctx context.Context, t task.Task) (task.Task, error)
	DeleteByOwner(ctx context.Context, id, ownerID string) error
}

type TasksHandler struct {
	repo TasksStore
}

func NewTasksHandler(repo TasksStore) *TasksHandler {
	return &TasksHandler{repo: repo}
}

func (h *TasksHandler) ListTasks(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	tasks, err := h.repo.ListByOwner(cctx, u.ID)

	if err != nil {
		RespondInternal(ctx, "Could not list tasks", err)

		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func (h *TasksHandler) CreateTask(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	var req task.CreateTaskRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if !RequireValid(ctx, req.Validate()) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	t, err := h.repo.Create(cctx, u.ID, req)

	if err != nil {
		RespondInternal(ctx, "Could not create task", err)
		return
	}

	ctx.JSON(http.StatusCreated, t)
}

// UpdateTask loads the task, then maps both "absent" and "not yours" to the
// same not-found response so other users' task ids stay unguessable.
func (h *TasksHandler) UpdateTask(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	var req task.UpdateTaskRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if !RequireValid(ctx, req.Validate()) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	id := ctx.Param("id")

	t, err := h.repo.GetByID(cctx, id)

	if err != nil || t.OwnerID != u.ID {
		if err != nil && !errors.Is(err, task.ErrNotFound) {
			RespondInternal(ctx, "Could not update task", err)
			return
		}

		RespondNotFound(ctx, "Task not found")
		return
	}

	req.ApplyTo(&t)

	updated, err := h.repo.Update(cctx, t)

	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			// deleted between the read and the write
			RespondNotFound(ctx, "Task not found")
			return
		}

		RespondInternal(ctx, "Could not update task", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *TasksHandler) DeleteTask(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity context")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.DeleteByOwner(cctx, ctx.Param("id"), u.ID)

	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			RespondNotFound(ctx, "Task not found")
			return
		}

		RespondInternal(ctx, "Could not delete task", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task removed"})
}
