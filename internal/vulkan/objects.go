package vulkan

import (
	"github.com/vkngwrapper/core/v3/core1_0"
)

// ImageView is a colour view over a swapchain image.
type ImageView struct {
	device *Device
	handle core1_0.ImageView
}

func (v *ImageView) Destroy() { v.device.driver.DestroyImageView(v.handle, nil) }

// ShaderModule holds SPIR-V until a pipeline is built from it.
type ShaderModule struct {
	device *Device
	handle core1_0.ShaderModule
}

func (m *ShaderModule) Destroy() { m.device.driver.DestroyShaderModule(m.handle, nil) }

type PipelineLayout struct {
	device *Device
	handle core1_0.PipelineLayout
}

func (l *PipelineLayout) Destroy() { l.device.driver.DestroyPipelineLayout(l.handle, nil) }

type Pipeline struct {
	device *Device
	handle core1_0.Pipeline
}

func (p *Pipeline) Destroy() { p.device.driver.DestroyPipeline(p.handle, nil) }

type RenderPass struct {
	device *Device
	handle core1_0.RenderPass
}

func (r *RenderPass) Destroy() { r.device.driver.DestroyRenderPass(r.handle, nil) }

type Framebuffer struct {
	device *Device
	handle core1_0.Framebuffer
}

func (f *Framebuffer) Destroy() { f.device.driver.DestroyFramebuffer(f.handle, nil) }

type Semaphore struct {
	device *Device
	handle core1_0.Semaphore
}

func (s *Semaphore) Destroy() { s.device.driver.DestroySemaphore(s.handle, nil) }

type Fence struct {
	device *Device
	handle core1_0.Fence
}

func (f *Fence) Destroy() { f.device.driver.DestroyFence(f.handle, nil) }
