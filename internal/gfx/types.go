package gfx

import "math"

// undefinedExtent is the value a surface reports in CurrentExtent when the
// swapchain size is left to the application.
const undefinedExtent = math.MaxUint32

// Extent is a two dimensional size in pixels.
type Extent struct {
	Width  uint32
	Height uint32
}

// SurfaceFormat pairs a native image format with its colour space. Values are
// the native enumerants and are passed through to the backend untouched.
type SurfaceFormat struct {
	Format     int32
	ColorSpace int32
}

// PresentMode selects how finished images are queued for display.
// The values match the native enumerants.
type PresentMode int32

const (
	PresentModeImmediate PresentMode = iota
	PresentModeMailbox
	PresentModeFIFO
	PresentModeFIFORelaxed
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeImmediate:
		return "immediate"
	case PresentModeMailbox:
		return "mailbox"
	case PresentModeFIFO:
		return "fifo"
	case PresentModeFIFORelaxed:
		return "fifo-relaxed"
	}
	return "unknown"
}

// SharingMode describes how swapchain images are shared between queue families.
// The values match the native enumerants.
type SharingMode int32

const (
	SharingModeExclusive SharingMode = iota
	SharingModeConcurrent
)

func (m SharingMode) String() string {
	if m == SharingModeConcurrent {
		return "concurrent"
	}
	return "exclusive"
}

// QueueFamily is what the engine needs to know about one queue family of a
// physical device. Present is evaluated against a particular surface.
type QueueFamily struct {
	Index    int
	Graphics bool
	Present  bool
}

// QueueFamilyIndices holds the family chosen for each role; nil means not found.
type QueueFamilyIndices struct {
	GraphicsFamily *int
	PresentFamily  *int
}

// IsComplete reports whether both a graphics and a present family were found.
func (i QueueFamilyIndices) IsComplete() bool {
	return i.GraphicsFamily != nil && i.PresentFamily != nil
}

// Unique returns the distinct family indices, graphics first.
func (i QueueFamilyIndices) Unique() []int {
	families := []int{*i.GraphicsFamily}
	if *i.PresentFamily != *i.GraphicsFamily {
		families = append(families, *i.PresentFamily)
	}
	return families
}

// SurfaceCapabilities mirrors the surface capability query.
type SurfaceCapabilities struct {
	MinImageCount    uint32
	MaxImageCount    uint32 // 0 means unbounded
	CurrentExtent    Extent
	MinImageExtent   Extent
	MaxImageExtent   Extent
	CurrentTransform uint32
}

// SwapchainSupport is the result of querying a physical device/surface pair.
type SwapchainSupport struct {
	Capabilities SurfaceCapabilities
	Formats      []SurfaceFormat
	PresentModes []PresentMode
}

// Viewport is a rasterisation viewport.
type Viewport struct {
	X, Y          float32
	Width, Height float32
	MinDepth      float32
	MaxDepth      float32
}

// Rect is a 2D region starting at an offset.
type Rect struct {
	X, Y   int32
	Extent Extent
}
