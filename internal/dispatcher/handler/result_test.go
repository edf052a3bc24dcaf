package handler_test

import (
	"errors"
	"testing"

	"github.com/dshills/modalcore/internal/dispatcher/handler"
	"github.com/dshills/modalcore/internal/engine/buffer"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status handler.Status
		want   string
	}{
		{handler.StatusOK, "ok"},
		{handler.StatusNoOp, "no-op"},
		{handler.StatusError, "error"},
		{handler.Status(42), "Status(42)"},
	}

	for _, tc := range tests {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("Status(%d).String() = %q, want %q", uint8(tc.status), got, tc.want)
		}
	}
}

func TestResultConstructors(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		result  handler.Result
		status  handler.Status
		message string
		moved   bool
	}{
		{"success", handler.Success(), handler.StatusOK, "", false},
		{"moved", handler.Moved(buffer.Point{Line: 1}), handler.StatusOK, "", true},
		{"noop", handler.NoOp().WithMessage("nothing"), handler.StatusNoOp, "nothing", false},
		{"error", handler.Error(errBoom), handler.StatusError, "", false},
		{"errorf", handler.Errorf("bad count %d", 3), handler.StatusError, "bad count 3", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.result.Status != tc.status {
				t.Errorf("status = %v, want %v", tc.result.Status, tc.status)
			}
			if tc.result.Message != tc.message {
				t.Errorf("message = %q, want %q", tc.result.Message, tc.message)
			}
			if (tc.result.Cursor != nil) != tc.moved {
				t.Errorf("cursor = %v, moved %v", tc.result.Cursor, tc.moved)
			}
			if tc.result.IsOK() != (tc.status == handler.StatusOK) {
				t.Error("IsOK disagrees with status")
			}
			if tc.result.IsError() != (tc.status == handler.StatusError) {
				t.Error("IsError disagrees with status")
			}
		})
	}

	if res := handler.Error(errBoom); !errors.Is(res.Error, errBoom) {
		t.Errorf("Error lost the cause: %v", res.Error)
	}
}

func TestResultModifiersCopy(t *testing.T) {
	base := handler.Success()
	res := base.WithMessage("3 fewer lines").WithCursor(buffer.Point{Line: 2, Column: 1}).WithEdit()

	if res.Message != "3 fewer lines" {
		t.Errorf("message = %q", res.Message)
	}
	if res.Cursor == nil || *res.Cursor != (buffer.Point{Line: 2, Column: 1}) {
		t.Errorf("cursor = %v, want 2:1", res.Cursor)
	}
	if !res.Edited {
		t.Error("expected Edited")
	}
	if base.Message != "" || base.Cursor != nil || base.Edited {
		t.Error("modifiers changed the receiver")
	}
}
