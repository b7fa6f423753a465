package vulkan

import (
	"fmt"

	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"

	"github.com/vkngwrapper/ember/internal/gfx"
)

// Instance is a Vulkan instance plus the instance-level extension drivers.
type Instance struct {
	driver  core1_0.CoreInstanceDriver
	surface khr_surface.ExtensionDriver

	debug     ext_debug_utils.ExtensionDriver
	messenger ext_debug_utils.DebugUtilsMessenger
}

var _ gfx.Instance = (*Instance)(nil)

// SurfaceFunc creates a platform surface for an instance.
type SurfaceFunc func(instance core1_0.Instance, extension khr_surface.ExtensionDriver) (khr_surface.Surface, error)

// AdoptSurface creates a surface with create and takes ownership of it.
// Window integrations use it to implement gfx.Window.CreateSurface.
func (i *Instance) AdoptSurface(create SurfaceFunc) (*Surface, error) {
	handle, err := create(i.driver.Instance(), i.surface)
	if err != nil {
		return nil, err
	}
	return &Surface{extension: i.surface, handle: handle}, nil
}

// PhysicalDevices implements gfx.Instance.
func (i *Instance) PhysicalDevices() ([]gfx.PhysicalDevice, error) {
	handles, res, err := i.driver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, nativeError("EnumeratePhysicalDevices", res, err)
	}

	devices := make([]gfx.PhysicalDevice, 0, len(handles))
	for index, handle := range handles {
		devices = append(devices, &PhysicalDevice{
			instance: i,
			handle:   handle,
			name:     i.deviceName(index, handle),
		})
	}
	return devices, nil
}

func (i *Instance) deviceName(index int, handle core1_0.PhysicalDevice) string {
	properties, err := i.driver.GetPhysicalDeviceProperties(handle)
	if err != nil || properties == nil || properties.DriverName == "" {
		return fmt.Sprintf("gpu%d", index)
	}
	return properties.DriverName
}

// Destroy implements gfx.Instance.
func (i *Instance) Destroy() {
	if i.messenger.Initialized() {
		i.debug.DestroyDebugUtilsMessenger(i.messenger, nil)
	}
	i.driver.DestroyInstance(nil)
}

// Surface is a presentation surface.
type Surface struct {
	extension khr_surface.ExtensionDriver
	handle    khr_surface.Surface
}

var _ gfx.Surface = (*Surface)(nil)

// Destroy implements gfx.Surface.
func (s *Surface) Destroy() {
	s.extension.DestroySurface(s.handle, nil)
}

func asSurface(s gfx.Surface) (*Surface, error) {
	surface, ok := s.(*Surface)
	if !ok {
		return nil, wrongHandle("surface", s)
	}
	return surface, nil
}
