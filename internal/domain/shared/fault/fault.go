package fault

import (
	"errors"
	"net/http"
)

// Fault is the structured error the domain services produce themselves:
// a human-readable message plus an HTTP-like severity code. Collaborator
// errors are never wrapped into one.
type Fault struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (f *Fault) Error() string {
	return f.Message
}

func BadRequest(message string) *Fault {
	return &Fault{Code: http.StatusBadRequest, Message: message}
}

func NotFound(message string) *Fault {
	return &Fault{Code: http.StatusNotFound, Message: message}
}

func Conflict(message string) *Fault {
	return &Fault{Code: http.StatusConflict, Message: message}
}

// StatusCode extracts the severity code, defaulting to 500 for errors that
// did not originate in the domain.
func StatusCode(err error) int {
	var f *Fault
	if errors.As(err, &f) {
		return f.Code
	}
	return http.StatusInternalServerError
}

// IsFault reports whether the error carries a domain severity code.
func IsFault(err error) bool {
	var f *Fault
	return errors.As(err, &f)
}
