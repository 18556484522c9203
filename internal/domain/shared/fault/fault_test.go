package fault

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad request", BadRequest("nope"), http.StatusBadRequest},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"conflict", Conflict("dup"), http.StatusConflict},
		{"wrapped fault", fmt.Errorf("handling: %w", NotFound("missing")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsFault(t *testing.T) {
	if !IsFault(BadRequest("nope")) {
		t.Error("BadRequest not recognized as fault")
	}
	if IsFault(errors.New("boom")) {
		t.Error("plain error recognized as fault")
	}
}
