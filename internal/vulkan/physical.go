package vulkan

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkngwrapper/ember/internal/gfx"
)

// PhysicalDevice is an enumerated GPU.
type PhysicalDevice struct {
	instance *Instance
	handle   core1_0.PhysicalDevice
	name     string
}

var _ gfx.PhysicalDevice = (*PhysicalDevice)(nil)

// Name implements gfx.PhysicalDevice.
func (d *PhysicalDevice) Name() string {
	return d.name
}

// QueueFamilies implements gfx.PhysicalDevice.
func (d *PhysicalDevice) QueueFamilies(s gfx.Surface) ([]gfx.QueueFamily, error) {
	surface, err := asSurface(s)
	if err != nil {
		return nil, err
	}

	properties := d.instance.driver.GetPhysicalDeviceQueueFamilyProperties(d.handle)
	families := make([]gfx.QueueFamily, 0, len(properties))
	for index, family := range properties {
		present, res, err := d.instance.surface.GetPhysicalDeviceSurfaceSupport(surface.handle, d.handle, index)
		if err != nil {
			return nil, nativeError("GetPhysicalDeviceSurfaceSupport", res, err)
		}

		families = append(families, gfx.QueueFamily{
			Index:    index,
			Graphics: family.QueueFlags&core1_0.QueueGraphics != 0,
			Present:  present,
		})
	}
	return families, nil
}

// Extensions implements gfx.PhysicalDevice.
func (d *PhysicalDevice) Extensions() (map[string]struct{}, error) {
	extensions, res, err := d.instance.driver.EnumerateDeviceExtensionProperties(d.handle)
	if err != nil {
		return nil, nativeError("EnumerateDeviceExtensionProperties", res, err)
	}
	return names(extensions), nil
}

// SwapchainSupport implements gfx.PhysicalDevice.
func (d *PhysicalDevice) SwapchainSupport(s gfx.Surface) (gfx.SwapchainSupport, error) {
	var support gfx.SwapchainSupport

	surface, err := asSurface(s)
	if err != nil {
		return support, err
	}
	ext := d.instance.surface

	caps, res, err := ext.GetPhysicalDeviceSurfaceCapabilities(surface.handle, d.handle)
	if err != nil {
		return support, nativeError("GetPhysicalDeviceSurfaceCapabilities", res, err)
	}
	support.Capabilities = gfx.SurfaceCapabilities{
		MinImageCount:    uint32(caps.MinImageCount),
		MaxImageCount:    uint32(caps.MaxImageCount),
		CurrentExtent:    fromExtent(caps.CurrentExtent),
		MinImageExtent:   fromExtent(caps.MinImageExtent),
		MaxImageExtent:   fromExtent(caps.MaxImageExtent),
		CurrentTransform: uint32(caps.CurrentTransform),
	}

	formats, res, err := ext.GetPhysicalDeviceSurfaceFormats(surface.handle, d.handle)
	if err != nil {
		return support, nativeError("GetPhysicalDeviceSurfaceFormats", res, err)
	}
	for _, format := range formats {
		support.Formats = append(support.Formats, gfx.SurfaceFormat{
			Format:     int32(format.Format),
			ColorSpace: int32(format.ColorSpace),
		})
	}

	modes, res, err := ext.GetPhysicalDeviceSurfacePresentModes(surface.handle, d.handle)
	if err != nil {
		return support, nativeError("GetPhysicalDeviceSurfacePresentModes", res, err)
	}
	for _, mode := range modes {
		support.PresentModes = append(support.PresentModes, gfx.PresentMode(mode))
	}

	return support, nil
}

// CreateDevice implements gfx.PhysicalDevice.
func (d *PhysicalDevice) CreateDevice(info gfx.DeviceInfo) (gfx.Device, error) {
	queues := make([]core1_0.DeviceQueueCreateInfo, 0, len(info.QueueFamilies))
	for _, family := range info.QueueFamilies {
		queues = append(queues, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: family,
			QueuePriorities:  []float32{1.0},
		})
	}

	handle, res, err := d.instance.driver.CreateDevice(d.handle, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queues,
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: info.Extensions,
	})
	if err != nil {
		return nil, nativeError("CreateDevice", res, err)
	}

	driver, err := d.instance.driver.BuildDeviceDriver(handle)
	if err != nil {
		return nil, nativeError("BuildDeviceDriver", 0, err)
	}

	return &Device{
		driver:    driver,
		swapchain: khr_swapchain.CreateExtensionDriverFromCoreDriver(driver),
	}, nil
}

// The surface reports -1 for an extent the application chooses.
func fromExtent(e core1_0.Extent2D) gfx.Extent {
	if e.Width < 0 || e.Height < 0 {
		return gfx.Extent{Width: ^uint32(0), Height: ^uint32(0)}
	}
	return gfx.Extent{Width: uint32(e.Width), Height: uint32(e.Height)}
}

func toExtent(e gfx.Extent) core1_0.Extent2D {
	return core1_0.Extent2D{Width: int(e.Width), Height: int(e.Height)}
}
