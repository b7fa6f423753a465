// Package window owns the SDL2 window the engine presents to.
package window

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"

	"github.com/vkngwrapper/ember/internal/gfx"
	"github.com/vkngwrapper/ember/internal/vulkan"
)

// Config describes the window to open.
type Config struct {
	Title  string
	Width  int
	Height int
}

// SDL is a Vulkan-capable SDL2 window.
type SDL struct {
	window      *sdl.Window
	shouldClose bool
}

var _ gfx.Window = (*SDL)(nil)

// Open initialises SDL video and creates the window. SDL calls must be made
// from the thread that called Open.
func Open(cfg Config) (*SDL, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, gfx.NewNativeError(gfx.APIWindow, "Init", 0, err)
	}

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		sdl.Quit()
		return nil, gfx.NewNativeError(gfx.APIWindow, "VulkanLoadLibrary", 0, err)
	}

	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		sdl.VulkanUnloadLibrary()
		sdl.Quit()
		return nil, gfx.NewNativeError(gfx.APIWindow, "CreateWindow", 0, err)
	}

	return &SDL{window: window}, nil
}

// ProcAddr returns vkGetInstanceProcAddr as loaded by SDL.
func (w *SDL) ProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

// RequiredExtensions implements gfx.Window.
func (w *SDL) RequiredExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

// CreateSurface implements gfx.Window.
func (w *SDL) CreateSurface(instance gfx.Instance) (gfx.Surface, error) {
	vi, ok := instance.(*vulkan.Instance)
	if !ok {
		return nil, errors.AssertionFailedf("cannot create an SDL surface for %T", instance)
	}

	surface, err := vi.AdoptSurface(func(handle core1_0.Instance, ext khr_surface.ExtensionDriver) (khr_surface.Surface, error) {
		return vkng_sdl2.CreateSurface(handle, ext, w.window)
	})
	if err != nil {
		return nil, gfx.NewNativeError(gfx.APIWindow, "VulkanCreateSurface", 0, err)
	}
	return surface, nil
}

// FramebufferSize implements gfx.Window. It is the drawable size in pixels,
// which differs from the window size on high-DPI displays.
func (w *SDL) FramebufferSize() (int, int) {
	width, height := w.window.VulkanGetDrawableSize()
	return int(width), int(height)
}

// ShouldClose implements gfx.Window.
func (w *SDL) ShouldClose() bool {
	return w.shouldClose
}

// PollEvents implements gfx.Window. A quit request or the Escape key closes
// the window.
func (w *SDL) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if closes(event) {
			w.shouldClose = true
		}
	}
}

func closes(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return true
	case *sdl.KeyboardEvent:
		return e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE
	}
	return false
}

// Close destroys the window and shuts SDL down.
func (w *SDL) Close() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	sdl.VulkanUnloadLibrary()
	sdl.Quit()
}
