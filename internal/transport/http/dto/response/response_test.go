package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"edge_api/internal/storage"

	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails interface{}
	}{
		{
			name:        "validation with reasons",
			err:         storage.NewValidationError("invalid upload", "images is empty"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_ERROR",
			wantMessage: "invalid upload",
			wantDetails: []string{"images is empty"},
		},
		{
			name: "wrapped validation with details",
			err: fmt.Errorf("failed to upload: %w",
				storage.NewValidationError("too many images").WithDetails(map[string]interface{}{"max_allowed": 6})),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_ERROR",
			wantMessage: "too many images",
			wantDetails: map[string]interface{}{"max_allowed": 6},
		},
		{
			name:        "not found",
			err:         fmt.Errorf("failed to get banner: %w", storage.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "failed to get banner: not found",
		},
		{
			name:        "conflict",
			err:         fmt.Errorf("retry limit reached: %w", storage.ErrConflict),
			wantStatus:  http.StatusConflict,
			wantCode:    "CONFLICT",
			wantMessage: "retry limit reached: conflict",
		},
		{
			name:        "upload error hides internals",
			err:         fmt.Errorf("%w: bucket missing", storage.ErrUpload),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "UPLOAD_ERROR",
			wantMessage: "internal server error",
		},
		{
			name:        "unexpected",
			err:         errors.New("connection reset"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "UNEXPECTED",
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := FromError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, tt.wantDetails, resp.Details)
		})
	}
}
