package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskhub/api/internal/domain/task"
	"github.com/taskhub/api/internal/observability"
)

type TasksRepo struct {
	pool    *pgxpool.Pool
	metrics *observability.Prom
}

func NewTasksRepo(pool *pgxpool.Pool, metrics *observability.Prom) *TasksRepo {
	return &TasksRepo{pool: pool, metrics: metrics}
}

func (r *TasksRepo) Create(ctx context.Context, ownerID string, req task.CreateTaskRequest) (task.Task, error) {
	t := task.NewFromCreateRequest(req, ownerID, time.Now().UTC())
	t.ID = uuid.NewString()

	err := r.metrics.ObserveDB("tasks_create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO tasks (id, title, description, status, due_date, owner_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			t.ID, t.Title, t.Description, t.Status, t.DueDate.Time, t.OwnerID, t.CreatedAt, t.UpdatedAt,
		)
		return err
	})

	if err != nil {
		return task.Task{}, err
	}

	return t, nil
}

func (r *TasksRepo) ListByOwner(ctx context.Context, ownerID string) ([]task.Task, error) {
	var output []task.Task

	err := r.metrics.ObserveDB("tasks_list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, title, description, status, due_date, owner_id, created_at, updated_at
			 FROM tasks
			 WHERE owner_id = $1
			 ORDER BY created_at ASC, id ASC`,
			ownerID,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		output = make([]task.Task, 0)

		for rows.Next() {
			t, err := scanTask(rows)

			if err != nil {
				return err
			}

			output = append(output, t)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *TasksRepo) GetByID(ctx context.Context, id string) (task.Task, error) {
	var t task.Task

	err := r.metrics.ObserveDB("tasks_get_by_id", func() error {
		row := r.pool.QueryRow(ctx,
			`SELECT id, title, description, status, due_date, owner_id, created_at, updated_at
			 FROM tasks
			 WHERE id = $1`,
			id,
		)

		var err error
		t, err = scanTask(row)
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}

		return task.Task{}, err
	}

	return t, nil
}

func (r *TasksRepo) Update(ctx context.Context, t task.Task) (task.Task, error) {
	var updated task.Task

	err := r.metrics.ObserveDB("tasks_update", func() error {
		row := r.pool.QueryRow(ctx,
			`UPDATE tasks
			 SET title = $2,
			     description = $3,
			     status = $4,
			     due_date = $5,
			     updated_at = NOW()
			 WHERE id = $1
			 RETURNING id, title, description, status, due_date, owner_id, created_at, updated_at`,
			t.ID,
			t.Title,
			t.Description,
			t.Status,
			t.DueDate.Time,
		)

		var err error
		updated, err = scanTask(row)
		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}

		return task.Task{}, err
	}

	return updated, nil
}

// DeleteByOwner removes the task only when both id and owner match; a
// single owner-scoped DELETE keeps the check-and-delete atomic in the store.
func (r *TasksRepo) DeleteByOwner(ctx context.Context, id, ownerID string) error {
	var affected int64

	err := r.metrics.ObserveDB("tasks_delete", func() error {
		tag, err := r.pool.Exec(ctx,
			`DELETE FROM tasks WHERE id = $1 AND owner_id = $2`,
			id, ownerID,
		)

		if err != nil {
			return err
		}

		affected = tag.RowsAffected()
		return nil
	})

	if err != nil {
		return err
	}

	// zero rows means absent or someone else's task; both read as not found
	if affected == 0 {
		return task.ErrNotFound
	}

	return nil
}

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	var due time.Time

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&due,
		&t.OwnerID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		return task.Task{}, err
	}

	t.DueDate = task.NewDate(due)

	return t, nil
}
