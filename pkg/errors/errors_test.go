package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppErrorFormat(t *testing.T) {
	err := New(CodeSelectionOutOfRange, "selection index out of range")
	if got := err.Error(); got != "[SOL_001] selection index out of range" {
		t.Errorf("unexpected Error() output: %q", got)
	}

	withDetail := err.WithDetail("index=7 len=3")
	if !strings.Contains(withDetail.Error(), "index=7 len=3") {
		t.Errorf("detail missing from Error(): %q", withDetail.Error())
	}
	// WithDetail must not mutate the receiver.
	if err.Detail != "" {
		t.Errorf("WithDetail mutated the original error")
	}
}

func TestWrapPreservesChain(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, CodeOptimizerUnreachable, "optimize request failed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if !IsCode(err, CodeOptimizerUnreachable) {
		t.Error("IsCode failed on direct code")
	}

	outer := fmt.Errorf("service: %w", err)
	if !IsCode(outer, CodeOptimizerUnreachable) {
		t.Error("IsCode failed through fmt.Errorf wrapping")
	}
	if GetCode(outer) != CodeOptimizerUnreachable {
		t.Errorf("GetCode = %s, want %s", GetCode(outer), CodeOptimizerUnreachable)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, CodeInternal, "should be nil") != nil {
		t.Error("Wrap(nil, ...) must return nil")
	}
}

func TestWrapUnknownKeepsOriginalCode(t *testing.T) {
	inner := New(CodeRenderRegionMissing, "render region not available")
	wrapped := Wrap(inner, CodeUnknown, "export failed")
	if wrapped.Code != CodeRenderRegionMissing {
		t.Errorf("Wrap with CodeUnknown lost original code, got %s", wrapped.Code)
	}
}

func TestHTTPStatusForCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeSelectionOutOfRange, http.StatusBadRequest},
		{CodeNoActiveSolution, http.StatusNotFound},
		{CodeOptimizerUnreachable, http.StatusBadGateway},
		{CodeRenderRegionMissing, http.StatusNotFound},
		{ErrorCode("BOGUS"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatusForCode(tt.code); got != tt.want {
			t.Errorf("HTTPStatusForCode(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(New(CodeNoActiveSolution, "no active solution")) {
		t.Error("CodeNoActiveSolution should report as not-found")
	}
	if IsNotFound(New(CodeInternal, "boom")) {
		t.Error("CodeInternal must not report as not-found")
	}
}
