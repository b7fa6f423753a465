package vulkan

import (
	"github.com/vkngwrapper/core/v3/core1_0"

	"github.com/vkngwrapper/ember/internal/gfx"
)

// CommandPool allocates primary command buffers.
type CommandPool struct {
	device *Device
	handle core1_0.CommandPool
}

var _ gfx.CommandPool = (*CommandPool)(nil)

// CreateCommandPool implements gfx.Device.
func (d *Device) CreateCommandPool(info gfx.CommandPoolInfo) (gfx.CommandPool, error) {
	options := core1_0.CommandPoolCreateInfo{
		QueueFamilyIndex: info.QueueFamily,
	}
	if info.ResetCommandBuffer {
		options.Flags = core1_0.CommandPoolCreateResetBuffer
	}

	pool, res, err := d.driver.CreateCommandPool(nil, options)
	if err != nil {
		return nil, nativeError("CreateCommandPool", res, err)
	}
	return &CommandPool{device: d, handle: pool}, nil
}

// AllocateCommandBuffer implements gfx.CommandPool.
func (p *CommandPool) AllocateCommandBuffer() (gfx.CommandBuffer, error) {
	buffers, res, err := p.device.driver.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        p.handle,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	})
	if err != nil {
		return nil, nativeError("AllocateCommandBuffers", res, err)
	}
	return &CommandBuffer{device: p.device, handle: buffers[0]}, nil
}

// Destroy implements gfx.CommandPool. Buffers allocated from the pool are
// freed with it.
func (p *CommandPool) Destroy() {
	p.device.driver.DestroyCommandPool(p.handle, nil)
}

// CommandBuffer is a primary command buffer.
type CommandBuffer struct {
	device *Device
	handle core1_0.CommandBuffer
}

var _ gfx.CommandBuffer = (*CommandBuffer)(nil)

func (c *CommandBuffer) Reset() error {
	res, err := c.device.driver.ResetCommandBuffer(c.handle, 0)
	if err != nil {
		return nativeError("ResetCommandBuffer", res, err)
	}
	return nil
}

func (c *CommandBuffer) Begin() error {
	res, err := c.device.driver.BeginCommandBuffer(c.handle, core1_0.CommandBufferBeginInfo{})
	if err != nil {
		return nativeError("BeginCommandBuffer", res, err)
	}
	return nil
}

func (c *CommandBuffer) BeginRenderPass(info gfx.RenderPassBegin) error {
	renderPass, ok := info.RenderPass.(*RenderPass)
	if !ok {
		return wrongHandle("render pass", info.RenderPass)
	}
	framebuffer, ok := info.Framebuffer.(*Framebuffer)
	if !ok {
		return wrongHandle("framebuffer", info.Framebuffer)
	}

	err := c.device.driver.CmdBeginRenderPass(c.handle, core1_0.SubpassContentsInline,
		core1_0.RenderPassBeginInfo{
			RenderPass:  renderPass.handle,
			Framebuffer: framebuffer.handle,
			RenderArea:  toRect(info.Area),
			ClearValues: []core1_0.ClearValue{
				core1_0.ClearValueFloat(info.ClearColor),
			},
		})
	if err != nil {
		return nativeError("CmdBeginRenderPass", 0, err)
	}
	return nil
}

func (c *CommandBuffer) BindPipeline(p gfx.Pipeline) error {
	pipeline, ok := p.(*Pipeline)
	if !ok {
		return wrongHandle("pipeline", p)
	}
	c.device.driver.CmdBindPipeline(c.handle, core1_0.PipelineBindPointGraphics, pipeline.handle)
	return nil
}

func (c *CommandBuffer) SetViewport(viewport gfx.Viewport) {
	c.device.driver.CmdSetViewport(c.handle, core1_0.Viewport{
		X:        viewport.X,
		Y:        viewport.Y,
		Width:    viewport.Width,
		Height:   viewport.Height,
		MinDepth: viewport.MinDepth,
		MaxDepth: viewport.MaxDepth,
	})
}

func (c *CommandBuffer) SetScissor(scissor gfx.Rect) {
	c.device.driver.CmdSetScissor(c.handle, toRect(scissor))
}

func (c *CommandBuffer) Draw(vertexCount, instanceCount, firstVertex, firstInstance int) {
	c.device.driver.CmdDraw(c.handle, vertexCount, instanceCount, uint32(firstVertex), uint32(firstInstance))
}

func (c *CommandBuffer) EndRenderPass() {
	c.device.driver.CmdEndRenderPass(c.handle)
}

func (c *CommandBuffer) End() error {
	res, err := c.device.driver.EndCommandBuffer(c.handle)
	if err != nil {
		return nativeError("EndCommandBuffer", res, err)
	}
	return nil
}

func toRect(r gfx.Rect) core1_0.Rect2D {
	return core1_0.Rect2D{
		Offset: core1_0.Offset2D{X: int(r.X), Y: int(r.Y)},
		Extent: toExtent(r.Extent),
	}
}
