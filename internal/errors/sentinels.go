package errors

import "net/http"

var (
	ErrTaskNotFound = &Exception{
		Message:    "task not found",
		StatusCode: http.StatusNotFound,
	}

	ErrTaskIDRequired = &Exception{
		Message:    "task id is required",
		StatusCode: http.StatusBadRequest,
	}

	ErrInvalidJSON = &Exception{
		Message:    "invalid JSON payload",
		StatusCode: http.StatusBadRequest,
	}

	ErrUnsupportedMediaType = &Exception{
		Message:    "Content-Type must be application/json",
		StatusCode: http.StatusUnsupportedMediaType,
	}
)
