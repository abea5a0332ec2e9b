package user_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/taskhub/api/internal/domain/user"
)

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name       string
		req        user.RegisterRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  user.RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "secret1"},
		},
		{
			name:       "missing_name",
			req:        user.RegisterRequest{Email: "john@example.com", Password: "secret1"},
			wantFields: []string{"name"},
		},
		{
			name:       "bad_email",
			req:        user.RegisterRequest{Name: "John Doe", Email: "not-an-email", Password: "secret1"},
			wantFields: []string{"email"},
		},
		{
			name:       "short_password",
			req:        user.RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "12345"},
			wantFields: []string{"password"},
		},
		{
			name:       "all_missing",
			req:        user.RegisterRequest{},
			wantFields: []string{"name", "email", "password"},
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

func TestPasswordHashNeverSerialized(t *testing.T) {
	u := user.User{ID: "u1", Name: "John", Email: "john@example.com", PasswordHash: "bcrypt-hash"}

	// the json tag is the only thing standing between the hash and the
	// client; make sure nobody removes it
	b, err := json.Marshal(u)

	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if strings.Contains(string(b), "bcrypt-hash") {
		t.Fatalf("password hash leaked into JSON: %s", b)
	}
}
