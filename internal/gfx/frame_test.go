package gfx

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
)

var frameCalls = []string{
	"WaitForFence",
	"ResetFence",
	"AcquireNextImage",
	"cmd:Reset",
	"cmd:Begin",
	"cmd:BeginRenderPass",
	"cmd:BindPipeline",
	"cmd:SetViewport",
	"cmd:SetScissor",
	"cmd:Draw",
	"cmd:EndRenderPass",
	"cmd:End",
	"Submit",
	"Present",
}

func TestDrawFrameProtocol(t *testing.T) {
	s := newScenario()
	r, err := s.initialize()
	if err != nil {
		t.Fatalf("Initialize() error = %+v", err)
	}
	defer r.Destroy()

	for frame := 0; frame < 3; frame++ {
		n := len(s.rec.calls)
		if err := r.DrawFrame(); err != nil {
			t.Fatalf("frame %d: DrawFrame() error = %+v", frame, err)
		}
		if got := s.rec.since(n); !reflect.DeepEqual(got, frameCalls) {
			t.Errorf("frame %d calls =\n%v\nwant\n%v", frame, got, frameCalls)
		}
	}

	d := s.gpu.device
	cb := d.commandBuffer
	if cb.draw != [4]int{3, 1, 0, 0} {
		t.Errorf("draw = %v, want [3 1 0 0]", cb.draw)
	}
	if want := [4]float32{0, 0, 0, 1}; cb.begin.ClearColor != want {
		t.Errorf("clear colour = %v, want %v", cb.begin.ClearColor, want)
	}
	if want := (Rect{Extent: Extent{Width: 800, Height: 600}}); cb.begin.Area != want || cb.scissor != want {
		t.Errorf("area = %+v, scissor = %+v, want %+v", cb.begin.Area, cb.scissor, want)
	}
	if cb.viewport.Width != 800 || cb.viewport.Height != 600 || cb.viewport.MaxDepth != 1 {
		t.Errorf("viewport = %+v", cb.viewport)
	}
	// The third frame wraps around to the first image.
	if cb.begin.Framebuffer != r.framebuffers[0] {
		t.Error("render pass began on the wrong framebuffer")
	}
}

func TestDrawFrameSynchronisation(t *testing.T) {
	s := newScenario()
	r, err := s.initialize()
	if err != nil {
		t.Fatalf("Initialize() error = %+v", err)
	}
	defer r.Destroy()

	if err := r.DrawFrame(); err != nil {
		t.Fatalf("DrawFrame() error = %+v", err)
	}

	queue := s.gpu.device.queues[0]
	if len(queue.submits) != 1 {
		t.Fatalf("submits = %d, want 1", len(queue.submits))
	}
	submit := queue.submits[0]
	if len(submit.WaitSemaphores) != 1 || submit.WaitSemaphores[0] != r.imageAvailable {
		t.Error("submit does not wait on the image-available semaphore")
	}
	if !reflect.DeepEqual(submit.WaitStages, []PipelineStage{PipelineStageColorAttachmentOutput}) {
		t.Errorf("wait stages = %v", submit.WaitStages)
	}
	if len(submit.SignalSemaphores) != 1 || submit.SignalSemaphores[0] != r.renderFinished {
		t.Error("submit does not signal the render-finished semaphore")
	}
	if submit.Fence != r.inFlight {
		t.Error("submit does not signal the in-flight fence")
	}

	presents := s.gpu.device.swapchain.presents
	if len(presents) != 1 {
		t.Fatalf("presents = %d, want 1", len(presents))
	}
	if presents[0].wait != r.renderFinished || presents[0].imageIndex != 0 || presents[0].queue != queue {
		t.Errorf("present = %+v", presents[0])
	}
}

func TestDrawFrameSplitQueues(t *testing.T) {
	s := newScenario()
	s.gpu.families = []QueueFamily{
		{Index: 0, Graphics: true},
		{Index: 1, Present: true},
	}
	r, err := s.initialize()
	if err != nil {
		t.Fatalf("Initialize() error = %+v", err)
	}
	defer r.Destroy()

	if err := r.DrawFrame(); err != nil {
		t.Fatalf("DrawFrame() error = %+v", err)
	}

	d := s.gpu.device
	if len(d.queues[0].submits) != 1 || len(d.queues[1].submits) != 0 {
		t.Error("submit did not go to the graphics queue")
	}
	if d.swapchain.presents[0].queue != d.queues[1] {
		t.Error("present did not go to the present queue")
	}
}

func TestDrawFrameClearColor(t *testing.T) {
	tests := []struct {
		name  string
		color *mgl32.Vec4
		want  [4]float32
	}{
		{"default", nil, [4]float32{0, 0, 0, 1}},
		{"custom", &mgl32.Vec4{0.1, 0.2, 0.3, 1}, [4]float32{0.1, 0.2, 0.3, 1}},
		{"transparent black", &mgl32.Vec4{0, 0, 0, 0}, [4]float32{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScenario()
			opts := s.options()
			opts.ClearColor = tt.color

			r, err := Initialize(s.loader, s.window, opts)
			if err != nil {
				t.Fatalf("Initialize() error = %+v", err)
			}
			defer r.Destroy()

			if err := r.DrawFrame(); err != nil {
				t.Fatalf("DrawFrame() error = %+v", err)
			}
			if got := s.gpu.device.commandBuffer.begin.ClearColor; got != tt.want {
				t.Errorf("clear colour = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrawFrameAbortsOnFailure(t *testing.T) {
	for i, call := range frameCalls {
		if call == "cmd:SetViewport" || call == "cmd:SetScissor" ||
			call == "cmd:Draw" || call == "cmd:EndRenderPass" {
			// Recording commands cannot fail.
			continue
		}

		t.Run(call, func(t *testing.T) {
			s := newScenario()
			r, err := s.initialize()
			if err != nil {
				t.Fatalf("Initialize() error = %+v", err)
			}
			defer r.Destroy()

			n := len(s.rec.calls)
			s.rec.failOn = call
			err = r.DrawFrame()

			var native *NativeOperationError
			if !errors.As(err, &native) {
				t.Fatalf("error = %v, want a NativeOperationError", err)
			}
			if got := s.rec.since(n); !reflect.DeepEqual(got, frameCalls[:i+1]) {
				t.Errorf("calls = %v, want %v", got, frameCalls[:i+1])
			}
			s.rec.failOn = ""
		})
	}
}
