package user

import (
	"errors"
	"time"

	"github.com/taskhub/api/internal/validate"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("user already exists")
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration payload field by field. Email uniqueness
// is the store's concern, not the payload's.
func (r RegisterRequest) Validate() []validate.FieldError {
	var fields []validate.FieldError

	if r.Name == "" {
		fields = append(fields, validate.NewFieldError("name", "required", ""))
	}

	if !validate.Email(r.Email) {
		fields = append(fields, validate.NewFieldError("email", "email", ""))
	}

	if len(r.Password) < 6 {
		fields = append(fields, validate.NewFieldError("password", "min", "6"))
	}

	return fields
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() []validate.FieldError {
	var fields []validate.FieldError

	if !validate.Email(r.Email) {
		fields = append(fields, validate.NewFieldError("email", "email", ""))
	}

	if r.Password == "" {
		fields = append(fields, validate.NewFieldError("password", "required", ""))
	}

	return fields
}
