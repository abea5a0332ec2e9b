package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/api/internal/validate"
)

// BindJSON decodes the request body. Shape validation is not done here;
// each request type carries its own Validate method (see RequireValid).
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		RespondBadRequest(ctx, "Invalid request body", parseBindError(err))

		return false
	}

	return true
}

// RequireValid runs a request shape's validator and responds with the
// field-level violations when there are any.
func RequireValid(ctx *gin.Context, fields []validate.FieldError) bool {
	if len(fields) == 0 {
		return true
	}

	RespondBadRequest(ctx, "Invalid request body", gin.H{"fields": fields})
	return false
}

func parseBindError(err error) interface{} {
	var syntaxError *json.SyntaxError

	if errors.As(err, &syntaxError) {
		return gin.H{"json": "invalid_json_syntax"}
	}

	var unmatchedTypeError *json.UnmarshalTypeError

	if errors.As(err, &unmatchedTypeError) {
		return gin.H{
			"json":  "invalid_json_type",
			"field": unmatchedTypeError.Field,
		}
	}

	// final fallback if the error could not be deciphered
	return gin.H{"reason": err.Error()}
}
