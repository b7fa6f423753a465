package gfx

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// APIs a NativeOperationError can originate from.
const (
	APIVulkan = "vulkan"
	APIWindow = "sdl"
)

var (
	// ErrNoSuitableDevice is returned when no enumerated physical device can
	// render and present to the surface.
	ErrNoSuitableDevice = errors.New("no suitable GPU found")

	// ErrResourceNotFound is returned when a packaged resource is missing.
	ErrResourceNotFound = errors.New("resource not found")
)

// NativeOperationError is a failed call into the graphics or windowing API.
type NativeOperationError struct {
	API  string
	Op   string
	Code int
	Err  error
}

// NewNativeError wraps a native failure. err may be nil when the API only
// reported a status code.
func NewNativeError(api, op string, code int, err error) error {
	return errors.WithStackDepth(&NativeOperationError{
		API:  api,
		Op:   op,
		Code: code,
		Err:  err,
	}, 1)
}

func (e *NativeOperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s failed (code %d): %v", e.API, e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s failed (code %d)", e.API, e.Op, e.Code)
}

func (e *NativeOperationError) Unwrap() error { return e.Err }

// ShaderCompilationError carries the compiler diagnostic for a shader that
// failed to compile.
type ShaderCompilationError struct {
	Shader     string
	Kind       ShaderKind
	Diagnostic string
}

func (e *ShaderCompilationError) Error() string {
	return fmt.Sprintf("compiling %s shader %q: %s", e.Kind, e.Shader, e.Diagnostic)
}
