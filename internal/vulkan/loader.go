// Package vulkan implements the gfx driver interfaces on top of vkngwrapper.
package vulkan

import (
	"unsafe"

	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_surface"

	"github.com/vkngwrapper/ember/internal/gfx"
)

// Loader is the global Vulkan entry point.
type Loader struct {
	driver core1_0.GlobalDriver
}

var _ gfx.Loader = (*Loader)(nil)

// NewLoader loads Vulkan through a vkGetInstanceProcAddr pointer, as
// returned by sdl.VulkanGetVkGetInstanceProcAddr.
func NewLoader(procAddr unsafe.Pointer) (*Loader, error) {
	driver, err := core.CreateDriverFromProcAddr(procAddr)
	if err != nil {
		return nil, nativeError("CreateDriverFromProcAddr", 0, err)
	}
	return &Loader{driver: driver}, nil
}

// AvailableExtensions implements gfx.Loader.
func (l *Loader) AvailableExtensions() (map[string]struct{}, error) {
	extensions, res, err := l.driver.AvailableExtensions()
	if err != nil {
		return nil, nativeError("EnumerateInstanceExtensionProperties", res, err)
	}
	return names(extensions), nil
}

// AvailableLayers implements gfx.Loader.
func (l *Loader) AvailableLayers() (map[string]struct{}, error) {
	layers, res, err := l.driver.AvailableLayers()
	if err != nil {
		return nil, nativeError("EnumerateInstanceLayerProperties", res, err)
	}
	return names(layers), nil
}

func names[T any](m map[string]T) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for name := range m {
		out[name] = struct{}{}
	}
	return out
}

// CreateInstance implements gfx.Loader.
func (l *Loader) CreateInstance(info gfx.InstanceInfo) (gfx.Instance, error) {
	options := core1_0.InstanceCreateInfo{
		ApplicationName:       info.ApplicationName,
		ApplicationVersion:    common.CreateVersion(1, 0, 0),
		EngineName:            info.EngineName,
		EngineVersion:         common.CreateVersion(1, 0, 0),
		APIVersion:            common.Vulkan1_2,
		EnabledExtensionNames: info.Extensions,
		EnabledLayerNames:     info.Layers,
	}

	for _, name := range info.Extensions {
		if name == khr_portability_enumeration.ExtensionName {
			options.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
		}
	}

	if info.Validation {
		// Chained so instance creation and destruction are validated too.
		options.Next = debugMessengerOptions()
	}

	handle, res, err := l.driver.CreateInstance(nil, options)
	if err != nil {
		return nil, nativeError("CreateInstance", res, err)
	}

	driver, err := l.driver.BuildInstanceDriver(handle)
	if err != nil {
		return nil, nativeError("BuildInstanceDriver", 0, err)
	}

	instance := &Instance{
		driver:  driver,
		surface: khr_surface.CreateExtensionDriverFromCoreDriver(driver),
	}

	if info.Validation {
		instance.debug = ext_debug_utils.CreateExtensionDriverFromCoreDriver(driver)
		instance.messenger, res, err = instance.debug.CreateDebugUtilsMessenger(nil, debugMessengerOptions())
		if err != nil {
			driver.DestroyInstance(nil)
			return nil, nativeError("CreateDebugUtilsMessenger", res, err)
		}
	}

	return instance, nil
}
