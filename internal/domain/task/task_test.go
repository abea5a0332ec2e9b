package task_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/taskhub/api/internal/domain/task"
)

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "date_only",
			input: `"2024-09-30"`,
			want:  time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339",
			input: `"2024-09-30T15:04:05Z"`,
			want:  time.Date(2024, 9, 30, 15, 4, 5, 0, time.UTC),
		},
		{
			name:  "empty_is_zero",
			input: `""`,
			want:  time.Time{},
		},
		{
			name:  "null_is_zero",
			input: `null`,
			want:  time.Time{},
		},
		{
			name:    "garbage",
			input:   `"next tuesday"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			var d task.Date
			err := json.Unmarshal([]byte(tt.input), &d)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.input)
				}
				return
			}

			if err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}

			if !d.Time.Equal(tt.want) {
				t.Fatalf("got %v, want %v", d.Time, tt.want)
			}
		})
	}
}

func TestCreateTaskRequestValidate(t *testing.T) {
	due := task.NewDate(time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name       string
		req        task.CreateTaskRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  task.CreateTaskRequest{Title: "Buy groceries", DueDate: due},
		},
		{
			name: "valid_with_status",
			req:  task.CreateTaskRequest{Title: "Buy groceries", Status: "completed", DueDate: due},
		},
		{
			name:       "missing_title",
			req:        task.CreateTaskRequest{DueDate: due},
			wantFields: []string{"title"},
		},
		{
			name:       "missing_due_date",
			req:        task.CreateTaskRequest{Title: "Buy groceries"},
			wantFields: []string{"dueDate"},
		},
		{
			name:       "bad_status",
			req:        task.CreateTaskRequest{Title: "Buy groceries", Status: "done", DueDate: due},
			wantFields: []string{"status"},
		},
		{
			name:       "everything_wrong",
			req:        task.CreateTaskRequest{Status: "done"},
			wantFields: []string{"title", "status", "dueDate"},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fields := tt.req.Validate()

			if len(fields) != len(tt.wantFields) {
				t.Fatalf("got %d violations (%+v), want %d", len(fields), fields, len(tt.wantFields))
			}

			for i, want := range tt.wantFields {
				if fields[i].Field != want {
					t.Fatalf("violation %d is %q, want %q", i, fields[i].Field, want)
				}
			}
		})
	}
}

func TestNewFromCreateRequestDefaultsStatus(t *testing.T) {
	now := time.Now().UTC()
	got := task.NewFromCreateRequest(task.CreateTaskRequest{Title: "x"}, "owner-1", now)

	if got.Status != task.StatusPending {
		t.Fatalf("got status %q, want pending", got.Status)
	}

	if got.OwnerID != "owner-1" {
		t.Fatalf("got owner %q, want owner-1", got.OwnerID)
	}
}

func TestUpdateApplyToTruthyWins(t *testing.T) {
	due := task.NewDate(time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC))

	base := task.Task{
		ID:          "t1",
		Title:       "Buy groceries",
		Description: "Milk, Bread, Cheese",
		Status:      task.StatusPending,
		DueDate:     due,
		OwnerID:     "owner-1",
	}

	tests := []struct {
		name string
		req  task.UpdateTaskRequest
		want task.Task
	}{
		{
			name: "empty_request_changes_nothing",
			req:  task.UpdateTaskRequest{},
			want: base,
		},
		{
			// an empty string is "keep existing", not "clear" — the
			// documented partial-update policy
			name: "empty_title_keeps_existing",
			req:  task.UpdateTaskRequest{Title: "", Status: "completed"},
			want: func() task.Task {
				t := base
				t.Status = task.StatusCompleted
				return t
			}(),
		},
		{
			name: "set_fields_override",
			req: task.UpdateTaskRequest{
				Title:       "Buy more groceries",
				Description: "Eggs",
			},
			want: func() task.Task {
				t := base
				t.Title = "Buy more groceries"
				t.Description = "Eggs"
				return t
			}(),
		},
		{
			name: "zero_due_date_keeps_existing",
			req:  task.UpdateTaskRequest{DueDate: task.Date{}},
			want: base,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got := base
			tt.req.ApplyTo(&got)

			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
