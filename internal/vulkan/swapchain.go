package vulkan

import (
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkngwrapper/ember/internal/gfx"
)

// Swapchain is the queue of presentable images.
type Swapchain struct {
	device *Device
	handle khr_swapchain.Swapchain
}

var _ gfx.Swapchain = (*Swapchain)(nil)

// CreateSwapchain implements gfx.Device.
func (d *Device) CreateSwapchain(info gfx.SwapchainInfo) (gfx.Swapchain, error) {
	surface, err := asSurface(info.Surface)
	if err != nil {
		return nil, err
	}

	sharingMode := core1_0.SharingModeExclusive
	if info.SharingMode == gfx.SharingModeConcurrent {
		sharingMode = core1_0.SharingModeConcurrent
	}

	swapchain, res, err := d.swapchain.CreateSwapchain(nil, khr_swapchain.SwapchainCreateInfo{
		Surface: surface.handle,

		MinImageCount:    int(info.MinImageCount),
		ImageFormat:      core1_0.Format(info.Format.Format),
		ImageColorSpace:  khr_surface.ColorSpace(info.Format.ColorSpace),
		ImageExtent:      toExtent(info.Extent),
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   sharingMode,
		QueueFamilyIndices: info.QueueFamilyIndices,

		PreTransform:   khr_surface.SurfaceTransformFlags(info.PreTransform),
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    khr_surface.PresentMode(info.PresentMode),
		Clipped:        true,
	})
	if err != nil {
		return nil, nativeError("CreateSwapchain", res, err)
	}
	return &Swapchain{device: d, handle: swapchain}, nil
}

// Images implements gfx.Swapchain.
func (s *Swapchain) Images() ([]gfx.Image, error) {
	handles, res, err := s.device.swapchain.GetSwapchainImages(s.handle)
	if err != nil {
		return nil, nativeError("GetSwapchainImages", res, err)
	}

	images := make([]gfx.Image, 0, len(handles))
	for _, image := range handles {
		images = append(images, image)
	}
	return images, nil
}

// AcquireNextImage implements gfx.Swapchain.
func (s *Swapchain) AcquireNextImage(signal gfx.Semaphore) (int, error) {
	semaphore, ok := signal.(*Semaphore)
	if !ok {
		return 0, wrongHandle("semaphore", signal)
	}

	index, res, err := s.device.swapchain.AcquireNextImage(s.handle, common.NoTimeout, &semaphore.handle, nil)
	if err != nil {
		return 0, nativeError("AcquireNextImage", res, err)
	}
	return index, nil
}

// Present implements gfx.Swapchain.
func (s *Swapchain) Present(q gfx.Queue, imageIndex int, wait gfx.Semaphore) error {
	queue, ok := q.(*Queue)
	if !ok {
		return wrongHandle("queue", q)
	}
	semaphore, ok := wait.(*Semaphore)
	if !ok {
		return wrongHandle("semaphore", wait)
	}

	res, err := s.device.swapchain.QueuePresent(queue.handle, khr_swapchain.PresentInfo{
		WaitSemaphores: []core1_0.Semaphore{semaphore.handle},
		Swapchains:     []khr_swapchain.Swapchain{s.handle},
		ImageIndices:   []int{imageIndex},
	})
	if err != nil {
		return nativeError("QueuePresent", res, err)
	}
	return nil
}

// Destroy implements gfx.Swapchain.
func (s *Swapchain) Destroy() {
	s.device.swapchain.DestroySwapchain(s.handle, nil)
}
