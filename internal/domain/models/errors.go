package models

// ErrorKind стабильный машиночитаемый код ошибки
type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION_ERROR"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindConflict   ErrorKind = "CONFLICT"
	KindUpload     ErrorKind = "UPLOAD_ERROR"
	KindDecode     ErrorKind = "DECODE_ERROR"
	KindMetadata   ErrorKind = "METADATA_ERROR"
	KindUnexpected ErrorKind = "UNEXPECTED"
)
