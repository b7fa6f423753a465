package gfx

import (
	"github.com/cockroachdb/errors"
)

// DrawFrame renders and presents one frame. Only one frame is ever in
// flight: the fence wait at the start guarantees the command buffer from the
// previous frame has finished executing before it is recorded again.
func (r *Renderer) DrawFrame() error {
	if err := r.device.WaitForFence(r.inFlight); err != nil {
		return errors.Wrap(err, "waiting for in-flight fence")
	}
	if err := r.device.ResetFence(r.inFlight); err != nil {
		return errors.Wrap(err, "resetting in-flight fence")
	}

	imageIndex, err := r.swapchain.AcquireNextImage(r.imageAvailable)
	if err != nil {
		return errors.Wrap(err, "acquiring swapchain image")
	}

	if err := r.commandBuffer.Reset(); err != nil {
		return errors.Wrap(err, "resetting command buffer")
	}
	if err := r.recordCommandBuffer(imageIndex); err != nil {
		return err
	}

	err = r.graphicsQueue.Submit(SubmitInfo{
		WaitSemaphores:   []Semaphore{r.imageAvailable},
		WaitStages:       []PipelineStage{PipelineStageColorAttachmentOutput},
		CommandBuffers:   []CommandBuffer{r.commandBuffer},
		SignalSemaphores: []Semaphore{r.renderFinished},
		Fence:            r.inFlight,
	})
	if err != nil {
		return errors.Wrap(err, "submitting draw command buffer")
	}

	if err := r.swapchain.Present(r.presentQueue, imageIndex, r.renderFinished); err != nil {
		return errors.Wrap(err, "presenting")
	}
	return nil
}

func (r *Renderer) recordCommandBuffer(imageIndex int) error {
	if imageIndex < 0 || imageIndex >= len(r.framebuffers) {
		return errors.AssertionFailedf("acquired image %d of %d", imageIndex, len(r.framebuffers))
	}

	cb := r.commandBuffer
	if err := cb.Begin(); err != nil {
		return errors.Wrap(err, "beginning command buffer")
	}

	area := Rect{Extent: r.config.Extent}
	err := cb.BeginRenderPass(RenderPassBegin{
		RenderPass:  r.renderPass,
		Framebuffer: r.framebuffers[imageIndex],
		Area:        area,
		ClearColor:  r.clearColor,
	})
	if err != nil {
		return errors.Wrap(err, "beginning render pass")
	}

	if err := cb.BindPipeline(r.pipeline); err != nil {
		return errors.Wrap(err, "binding pipeline")
	}
	cb.SetViewport(Viewport{
		Width:    float32(r.config.Extent.Width),
		Height:   float32(r.config.Extent.Height),
		MinDepth: 0,
		MaxDepth: 1,
	})
	cb.SetScissor(area)
	cb.Draw(3, 1, 0, 0)
	cb.EndRenderPass()

	if err := cb.End(); err != nil {
		return errors.Wrap(err, "ending command buffer")
	}
	return nil
}
