package gfx

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/cockroachdb/errors"
)

const spirvMagic = 0x07230203

func TestBuiltinShaders(t *testing.T) {
	sources, err := BuiltinShaders(Shaders())
	if err != nil {
		t.Fatalf("BuiltinShaders() error = %+v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("got %d shaders, want 2", len(sources))
	}

	tests := []struct {
		kind     ShaderKind
		required []string
	}{
		{ShaderKindVertex, []string{"@vertex", "vs_main", "vertex_index"}},
		{ShaderKindFragment, []string{"@fragment", "fs_main", "@location(0)"}},
	}

	for i, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			src := sources[i]
			if src.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", src.Kind, tt.kind)
			}
			for _, req := range tt.required {
				if !strings.Contains(src.Code, req) {
					t.Errorf("%s missing %q", src.Name, req)
				}
			}
		})
	}
}

func TestNagaCompilerBuiltins(t *testing.T) {
	sources, err := BuiltinShaders(Shaders())
	if err != nil {
		t.Fatalf("BuiltinShaders() error = %+v", err)
	}

	for _, src := range sources {
		t.Run(src.Kind.String(), func(t *testing.T) {
			code, err := NagaCompiler{}.Compile(src)
			if err != nil {
				t.Fatalf("Compile() error = %+v", err)
			}
			if len(code) < 5 {
				t.Fatalf("SPIR-V too short: %d words", len(code))
			}
			if code[0] != spirvMagic {
				t.Errorf("magic = %#x, want %#x", code[0], spirvMagic)
			}
		})
	}
}

func TestNagaCompilerDiagnostic(t *testing.T) {
	src := ShaderSource{
		Name: "broken.wgsl",
		Kind: ShaderKindFragment,
		Code: "@fragment fn fs_main( -> {",
	}

	_, err := NagaCompiler{}.Compile(src)
	var compileErr *ShaderCompilationError
	if !errors.As(err, &compileErr) {
		t.Fatalf("error = %v, want a ShaderCompilationError", err)
	}
	if compileErr.Shader != "broken.wgsl" || compileErr.Kind != ShaderKindFragment {
		t.Errorf("error = %+v", compileErr)
	}
	if compileErr.Diagnostic == "" {
		t.Error("empty diagnostic")
	}
}

func TestLoadShaderMissing(t *testing.T) {
	_, err := LoadShader(fstest.MapFS{}, "shaders/nope.wgsl", ShaderKindVertex, "vs_main")
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("error = %v, want ErrResourceNotFound", err)
	}
	if !strings.Contains(err.Error(), "shaders/nope.wgsl") {
		t.Errorf("error %q does not name the shader", err)
	}
}
