package errors

import (
	"fmt"
	"testing"
)

func TestTrailError_Error(t *testing.T) {
	err := &TrailError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "record not found",
	}

	expected := "[NOT_FOUND] record not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("command is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "command is required" {
		t.Errorf("Message = %q, want %q", err.Message, "command is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("01J9FZZX")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["identifier"] != "01J9FZZX" {
		t.Errorf("Details[identifier] = %v, want %q", err.Details["identifier"], "01J9FZZX")
	}
}

func TestNewMalformedDocument(t *testing.T) {
	cause := fmt.Errorf("event %q: unknown project %q", "ev-1", "deadbeef")
	err := NewMalformedDocument("/home/u/.trail/memory.json", cause)

	if err.Code != ErrMalformedDocument {
		t.Errorf("Code = %q, want %q", err.Code, ErrMalformedDocument)
	}
	if err.Status != 500 {
		t.Errorf("Status = %d, want 500", err.Status)
	}
	if err.Details["path"] != "/home/u/.trail/memory.json" {
		t.Errorf("Details[path] = %v, want the document path", err.Details["path"])
	}

	// The cause is part of the message so the user can repair by hand.
	want := `memory document is malformed: event "ev-1": unknown project "deadbeef"`
	if err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
}

func TestNewIO(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := NewIO("/home/u/.trail/memory.json", cause)

	if err.Code != ErrIO {
		t.Errorf("Code = %q, want %q", err.Code, ErrIO)
	}
	if err.Status != 500 {
		t.Errorf("Status = %d, want 500", err.Status)
	}
	if err.Message != "permission denied" {
		t.Errorf("Message = %q, want the cause text", err.Message)
	}
	if err.Details["path"] != "/home/u/.trail/memory.json" {
		t.Errorf("Details[path] = %v, want the file path", err.Details["path"])
	}
}

func TestNewInternal(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		originalErr := fmt.Errorf("template execution failed")
		err := NewInternal(originalErr)

		if err.Code != ErrInternal {
			t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
		// Message should be generic (not leak internal details)
		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q, want %q", err.Message, "an internal error occurred")
		}
		// Original error should be stored in Details for logging
		if err.Details["internal_error"] != "template execution failed" {
			t.Errorf("Details[internal_error] = %q, want %q", err.Details["internal_error"], "template execution failed")
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewInternal(nil)

		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q, want %q", err.Message, "an internal error occurred")
		}
		// Details should be empty but not nil
		if err.Details == nil {
			t.Error("Details should not be nil")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		err := NewNotFound("test")
		if !Is(err, ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		err := NewNotFound("test")
		if Is(err, ErrIO) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("non-TrailError", func(t *testing.T) {
		err := fmt.Errorf("plain error")
		if Is(err, ErrNotFound) {
			t.Error("Is() = true, want false for non-TrailError")
		}
	})

	t.Run("wrapped TrailError", func(t *testing.T) {
		inner := NewNotFound("test")
		wrapped := fmt.Errorf("lookup: %w", inner)
		if !Is(wrapped, ErrNotFound) {
			t.Error("Is() = false, want true for wrapped TrailError")
		}
		if Is(wrapped, ErrIO) {
			t.Error("Is() = true, want false for wrong code on wrapped TrailError")
		}
	})
}
