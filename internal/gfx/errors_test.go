package gfx

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestNativeOperationError(t *testing.T) {
	cause := errors.New("device lost")
	err := errors.Wrap(NewNativeError(APIVulkan, "QueueSubmit", -4, cause), "drawing frame")

	var native *NativeOperationError
	if !errors.As(err, &native) {
		t.Fatalf("errors.As failed for %v", err)
	}
	if native.API != APIVulkan || native.Op != "QueueSubmit" || native.Code != -4 {
		t.Errorf("error = %+v", native)
	}
	if !errors.Is(err, cause) {
		t.Error("cause is not reachable")
	}

	msg := err.Error()
	for _, want := range []string{"drawing frame", "vulkan", "QueueSubmit", "-4", "device lost"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}

	// The shell prints %+v; it must carry a stack trace.
	if verbose := fmt.Sprintf("%+v", err); !strings.Contains(verbose, "errors_test.go") {
		t.Errorf("%%+v output has no stack trace:\n%s", verbose)
	}
}

func TestNativeOperationErrorWithoutCause(t *testing.T) {
	err := NewNativeError(APIWindow, "CreateSurface", 0, nil)
	if got, want := err.Error(), "sdl: CreateSurface failed (code 0)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestShaderCompilationError(t *testing.T) {
	err := &ShaderCompilationError{Shader: "triangle.vert.wgsl", Kind: ShaderKindVertex, Diagnostic: "unexpected token"}
	if got, want := err.Error(), `compiling vertex shader "triangle.vert.wgsl": unexpected token`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
