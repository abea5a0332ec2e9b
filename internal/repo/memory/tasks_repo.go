package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskhub/api/internal/domain/task"
)

type TasksRepo struct {
	mu    sync.RWMutex
	tasks map[string]task.Task
}

func NewTasksRepo() *TasksRepo {
	return &TasksRepo{
		tasks: make(map[string]task.Task),
	}
}

func (r *TasksRepo) Create(ctx context.Context, ownerID string, req task.CreateTaskRequest) (task.Task, error) {
	t := task.NewFromCreateRequest(req, ownerID, time.Now().UTC())
	t.ID = uuid.NewString()

	r.mu.Lock()
	r.tasks[t.ID] = t
	r.mu.Unlock()

	return t, nil
}

func (r *TasksRepo) ListByOwner(ctx context.Context, ownerID string) ([]task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	output := make([]task.Task, 0)

	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			output = append(output, t)
		}
	}

	// map iteration order is random; keep listings stable
	sort.Slice(output, func(i, j int) bool {
		if output[i].CreatedAt.Equal(output[j].CreatedAt) {
			return output[i].ID < output[j].ID
		}
		return output[i].CreatedAt.Before(output[j].CreatedAt)
	})

	return output, nil
}

func (r *TasksRepo) GetByID(ctx context.Context, id string) (task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]

	if !ok {
		return task.Task{}, task.ErrNotFound
	}

	return t, nil
}

func (r *TasksRepo) Update(ctx context.Context, t task.Task) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[t.ID]; !ok {
		return task.Task{}, task.ErrNotFound
	}

	t.UpdatedAt = time.Now().UTC()
	r.tasks[t.ID] = t

	return t, nil
}

func (r *TasksRepo) DeleteByOwner(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]

	if !ok || t.OwnerID != ownerID {
		return task.ErrNotFound
	}

	delete(r.tasks, id)
	return nil
}
