package vulkan

import (
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkngwrapper/ember/internal/gfx"
)

// Device is a logical device plus the swapchain extension driver.
type Device struct {
	driver    core1_0.CoreDeviceDriver
	swapchain khr_swapchain.ExtensionDriver
}

var _ gfx.Device = (*Device)(nil)

// Queue implements gfx.Device.
func (d *Device) Queue(family int) gfx.Queue {
	return &Queue{device: d, handle: d.driver.GetQueue(family, 0)}
}

// CreateImageView implements gfx.Device.
func (d *Device) CreateImageView(image gfx.Image, format gfx.SurfaceFormat) (gfx.ImageView, error) {
	handle, ok := image.(core1_0.Image)
	if !ok {
		return nil, wrongHandle("image", image)
	}

	view, res, err := d.driver.CreateImageView(nil, core1_0.ImageViewCreateInfo{
		Image:    handle,
		ViewType: core1_0.ImageViewType2D,
		Format:   core1_0.Format(format.Format),
		SubresourceRange: core1_0.ImageSubresourceRange{
			AspectMask:     core1_0.ImageAspectColor,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	})
	if err != nil {
		return nil, nativeError("CreateImageView", res, err)
	}
	return &ImageView{device: d, handle: view}, nil
}

// CreateShaderModule implements gfx.Device.
func (d *Device) CreateShaderModule(code []uint32) (gfx.ShaderModule, error) {
	module, res, err := d.driver.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: code,
	})
	if err != nil {
		return nil, nativeError("CreateShaderModule", res, err)
	}
	return &ShaderModule{device: d, handle: module}, nil
}

// CreatePipelineLayout implements gfx.Device. The layout has no descriptor
// sets and no push constants.
func (d *Device) CreatePipelineLayout() (gfx.PipelineLayout, error) {
	layout, res, err := d.driver.CreatePipelineLayout(nil, core1_0.PipelineLayoutCreateInfo{})
	if err != nil {
		return nil, nativeError("CreatePipelineLayout", res, err)
	}
	return &PipelineLayout{device: d, handle: layout}, nil
}

// CreateFramebuffer implements gfx.Device.
func (d *Device) CreateFramebuffer(info gfx.FramebufferInfo) (gfx.Framebuffer, error) {
	renderPass, ok := info.RenderPass.(*RenderPass)
	if !ok {
		return nil, wrongHandle("render pass", info.RenderPass)
	}
	view, ok := info.Attachment.(*ImageView)
	if !ok {
		return nil, wrongHandle("image view", info.Attachment)
	}

	framebuffer, res, err := d.driver.CreateFramebuffer(nil, core1_0.FramebufferCreateInfo{
		RenderPass:  renderPass.handle,
		Layers:      1,
		Attachments: []core1_0.ImageView{view.handle},
		Width:       int(info.Extent.Width),
		Height:      int(info.Extent.Height),
	})
	if err != nil {
		return nil, nativeError("CreateFramebuffer", res, err)
	}
	return &Framebuffer{device: d, handle: framebuffer}, nil
}

// CreateSemaphore implements gfx.Device.
func (d *Device) CreateSemaphore() (gfx.Semaphore, error) {
	semaphore, res, err := d.driver.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return nil, nativeError("CreateSemaphore", res, err)
	}
	return &Semaphore{device: d, handle: semaphore}, nil
}

// CreateFence implements gfx.Device.
func (d *Device) CreateFence(signaled bool) (gfx.Fence, error) {
	var info core1_0.FenceCreateInfo
	if signaled {
		info.Flags = core1_0.FenceCreateSignaled
	}

	fence, res, err := d.driver.CreateFence(nil, info)
	if err != nil {
		return nil, nativeError("CreateFence", res, err)
	}
	return &Fence{device: d, handle: fence}, nil
}

// WaitForFence implements gfx.Device.
func (d *Device) WaitForFence(f gfx.Fence) error {
	fence, ok := f.(*Fence)
	if !ok {
		return wrongHandle("fence", f)
	}

	res, err := d.driver.WaitForFences(true, common.NoTimeout, fence.handle)
	if err != nil {
		return nativeError("WaitForFences", res, err)
	}
	return nil
}

// ResetFence implements gfx.Device.
func (d *Device) ResetFence(f gfx.Fence) error {
	fence, ok := f.(*Fence)
	if !ok {
		return wrongHandle("fence", f)
	}

	res, err := d.driver.ResetFences(fence.handle)
	if err != nil {
		return nativeError("ResetFences", res, err)
	}
	return nil
}

// WaitIdle implements gfx.Device.
func (d *Device) WaitIdle() error {
	res, err := d.driver.DeviceWaitIdle()
	if err != nil {
		return nativeError("DeviceWaitIdle", res, err)
	}
	return nil
}

// Destroy implements gfx.Device.
func (d *Device) Destroy() {
	d.driver.DestroyDevice(nil)
}

// Queue is a device queue.
type Queue struct {
	device *Device
	handle core1_0.Queue
}

var _ gfx.Queue = (*Queue)(nil)

// Submit implements gfx.Queue.
func (q *Queue) Submit(info gfx.SubmitInfo) error {
	submit := core1_0.SubmitInfo{}

	for _, s := range info.WaitSemaphores {
		semaphore, ok := s.(*Semaphore)
		if !ok {
			return wrongHandle("semaphore", s)
		}
		submit.WaitSemaphores = append(submit.WaitSemaphores, semaphore.handle)
	}
	for _, stage := range info.WaitStages {
		submit.WaitDstStageMask = append(submit.WaitDstStageMask, pipelineStages(stage))
	}
	for _, c := range info.CommandBuffers {
		buffer, ok := c.(*CommandBuffer)
		if !ok {
			return wrongHandle("command buffer", c)
		}
		submit.CommandBuffers = append(submit.CommandBuffers, buffer.handle)
	}
	for _, s := range info.SignalSemaphores {
		semaphore, ok := s.(*Semaphore)
		if !ok {
			return wrongHandle("semaphore", s)
		}
		submit.SignalSemaphores = append(submit.SignalSemaphores, semaphore.handle)
	}

	var fence *core1_0.Fence
	if info.Fence != nil {
		f, ok := info.Fence.(*Fence)
		if !ok {
			return wrongHandle("fence", info.Fence)
		}
		fence = &f.handle
	}

	res, err := q.device.driver.QueueSubmit(q.handle, fence, submit)
	if err != nil {
		return nativeError("QueueSubmit", res, err)
	}
	return nil
}
