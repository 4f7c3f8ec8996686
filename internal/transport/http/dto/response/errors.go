package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "VALIDATION_ERROR",
		Message: "Invalid request format",
	}

	ErrInvalidID = ErrorResponse{
		Status:  "error",
		Error:   "VALIDATION_ERROR",
		Message: "Invalid id format",
	}

	ErrUnauthorized = ErrorResponse{
		Status:  "error",
		Error:   "UNAUTHORIZED",
		Message: "Missing or invalid bearer token",
	}
)

// MissingID ответ инкремента без id баннера
func MissingID(code string) ErrorResponse {
	return ErrorResponse{
		Status:  "error",
		Error:   code,
		Message: "Banner id is required",
	}
}
