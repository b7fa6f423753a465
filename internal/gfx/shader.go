package gfx

import (
	"embed"
	"io/fs"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/naga"
)

//go:embed shaders
var shaders embed.FS

// ShaderSource is shader text ready for compilation.
type ShaderSource struct {
	Name       string
	Kind       ShaderKind
	EntryPoint string
	Code       string
}

// Compiler turns shader source into SPIR-V words.
type Compiler interface {
	Compile(src ShaderSource) ([]uint32, error)
}

// NagaCompiler compiles WGSL to SPIR-V in pure Go.
type NagaCompiler struct{}

// Compile implements Compiler.
func (NagaCompiler) Compile(src ShaderSource) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src.Code)
	if err != nil {
		return nil, &ShaderCompilationError{
			Shader:     src.Name,
			Kind:       src.Kind,
			Diagnostic: err.Error(),
		}
	}
	if len(spirvBytes)%4 != 0 {
		return nil, &ShaderCompilationError{
			Shader:     src.Name,
			Kind:       src.Kind,
			Diagnostic: "output is not a whole number of SPIR-V words",
		}
	}

	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// builtinShader names a packaged shader file.
type builtinShader struct {
	path       string
	kind       ShaderKind
	entryPoint string
}

var builtinShaders = []builtinShader{
	{path: "shaders/triangle.vert.wgsl", kind: ShaderKindVertex, entryPoint: "vs_main"},
	{path: "shaders/triangle.frag.wgsl", kind: ShaderKindFragment, entryPoint: "fs_main"},
}

// Shaders returns the packaged shader files.
func Shaders() fs.FS {
	return shaders
}

// LoadShader reads a shader file from fsys.
func LoadShader(fsys fs.FS, name string, kind ShaderKind, entryPoint string) (ShaderSource, error) {
	code, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return ShaderSource{}, errors.Wrapf(ErrResourceNotFound, "shader %q", name)
	} else if err != nil {
		return ShaderSource{}, errors.Wrapf(err, "reading shader %q", name)
	}

	return ShaderSource{
		Name:       name,
		Kind:       kind,
		EntryPoint: entryPoint,
		Code:       string(code),
	}, nil
}

// BuiltinShaders loads the vertex and fragment shader of the triangle
// pipeline from fsys, in that order.
func BuiltinShaders(fsys fs.FS) ([]ShaderSource, error) {
	sources := make([]ShaderSource, 0, len(builtinShaders))
	for _, shader := range builtinShaders {
		src, err := LoadShader(fsys, shader.path, shader.kind, shader.entryPoint)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}
