package response

import (
	"errors"
	"net/http"

	"edge_api/internal/domain/models"
	"edge_api/internal/storage"
)

type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

func SuccessWithMeta(data, meta interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

func ErrorResponseWithDetails(code, message string, details interface{}) ErrorResponse {
	return ErrorResponse{
		Status:  "error",
		Error:   code,
		Message: message,
		Details: details,
	}
}

// StatusFor HTTP-статус для кода ошибки
func StatusFor(kind models.ErrorKind) int {
	switch kind {
	case models.KindValidation, models.KindDecode:
		return http.StatusBadRequest
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromError статус и тело ответа для ошибки сервиса.
// Детали ValidationError передаются клиенту, текст внутренних ошибок нет.
func FromError(err error) (int, ErrorResponse) {
	kind := storage.KindOf(err)
	status := StatusFor(kind)

	resp := ErrorResponse{
		Status:  "error",
		Error:   string(kind),
		Message: err.Error(),
	}

	var verr *storage.ValidationError
	if errors.As(err, &verr) {
		resp.Message = verr.Message
		switch {
		case len(verr.Details) > 0:
			resp.Details = verr.Details
		case len(verr.Reasons) > 0:
			resp.Details = verr.Reasons
		}
	}

	if status == http.StatusInternalServerError {
		resp.Message = "internal server error"
	}

	return status, resp
}
