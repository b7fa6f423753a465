package gfx

import (
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"
)

// Options configures Initialize. The zero value is usable.
type Options struct {
	ApplicationName string

	// Validation enables the validation layer when it is installed.
	Validation bool

	// ClearColor is the colour the framebuffer is cleared to each frame.
	// Nil means opaque black.
	ClearColor *mgl32.Vec4

	DevicePolicy DevicePolicy
	FormatPolicy FormatPolicy

	// Compiler defaults to NagaCompiler.
	Compiler Compiler
	// Shaders holds the pipeline's shader files. Defaults to the packaged set.
	Shaders fs.FS
}

const engineName = "ember"

func (o Options) withDefaults() Options {
	if o.ApplicationName == "" {
		o.ApplicationName = engineName
	}
	if o.ClearColor == nil {
		o.ClearColor = &mgl32.Vec4{0, 0, 0, 1}
	}
	if o.DevicePolicy == nil {
		o.DevicePolicy = FirstSuitableDevice
	}
	if o.FormatPolicy == nil {
		o.FormatPolicy = FirstSurfaceFormat
	}
	if o.Compiler == nil {
		o.Compiler = NagaCompiler{}
	}
	if o.Shaders == nil {
		o.Shaders = Shaders()
	}
	return o
}
