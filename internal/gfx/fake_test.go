package gfx

import (
	"strings"
)

// recorder logs every call made on the fake driver, in order, and fails the
// call named by failOn.
type recorder struct {
	calls  []string
	failOn string
}

func (r *recorder) record(call string) error {
	r.calls = append(r.calls, call)
	if r.failOn != "" && call == r.failOn {
		return NewNativeError(APIVulkan, call, -3, nil)
	}
	return nil
}

// since returns the calls recorded after the first n.
func (r *recorder) since(n int) []string {
	return append([]string(nil), r.calls[n:]...)
}

func (r *recorder) matching(prefix string) []string {
	var out []string
	for _, call := range r.calls {
		if strings.HasPrefix(call, prefix) {
			out = append(out, call)
		}
	}
	return out
}

type fakeLoader struct {
	rec        *recorder
	extensions map[string]struct{}
	layers     map[string]struct{}
	instance   *fakeInstance

	info InstanceInfo
}

func (l *fakeLoader) AvailableExtensions() (map[string]struct{}, error) {
	return l.extensions, l.rec.record("AvailableExtensions")
}

func (l *fakeLoader) AvailableLayers() (map[string]struct{}, error) {
	return l.layers, l.rec.record("AvailableLayers")
}

func (l *fakeLoader) CreateInstance(info InstanceInfo) (Instance, error) {
	l.info = info
	if err := l.rec.record("CreateInstance"); err != nil {
		return nil, err
	}
	return l.instance, nil
}

type fakeInstance struct {
	rec     *recorder
	devices []PhysicalDevice
}

func (i *fakeInstance) PhysicalDevices() ([]PhysicalDevice, error) {
	return i.devices, i.rec.record("EnumeratePhysicalDevices")
}

func (i *fakeInstance) Destroy() { i.rec.record("DestroyInstance") }

type fakeWindow struct {
	rec        *recorder
	extensions []string
	width      int
	height     int

	// closeAfter is the number of PollEvents calls after which the window
	// reports it should close.
	closeAfter int
	polls      int
}

func (w *fakeWindow) RequiredExtensions() []string { return w.extensions }

func (w *fakeWindow) CreateSurface(Instance) (Surface, error) {
	if err := w.rec.record("CreateSurface"); err != nil {
		return nil, err
	}
	return &fakeHandle{rec: w.rec, kind: "Surface"}, nil
}

func (w *fakeWindow) FramebufferSize() (int, int) {
	w.rec.record("FramebufferSize")
	return w.width, w.height
}

func (w *fakeWindow) ShouldClose() bool { return w.polls >= w.closeAfter }

func (w *fakeWindow) PollEvents() {
	w.polls++
	w.rec.record("PollEvents")
}

type fakePhysicalDevice struct {
	rec        *recorder
	name       string
	families   []QueueFamily
	extensions map[string]struct{}
	support    SwapchainSupport
	device     *fakeDevice

	info DeviceInfo
}

func (d *fakePhysicalDevice) Name() string { return d.name }

func (d *fakePhysicalDevice) QueueFamilies(Surface) ([]QueueFamily, error) {
	return d.families, d.rec.record("QueueFamilies:" + d.name)
}

func (d *fakePhysicalDevice) Extensions() (map[string]struct{}, error) {
	return d.extensions, d.rec.record("Extensions:" + d.name)
}

func (d *fakePhysicalDevice) SwapchainSupport(Surface) (SwapchainSupport, error) {
	return d.support, d.rec.record("SwapchainSupport:" + d.name)
}

func (d *fakePhysicalDevice) CreateDevice(info DeviceInfo) (Device, error) {
	d.info = info
	if err := d.rec.record("CreateDevice:" + d.name); err != nil {
		return nil, err
	}
	if d.device == nil {
		d.device = &fakeDevice{rec: d.rec, images: 2}
	}
	return d.device, nil
}

type fakeDevice struct {
	rec    *recorder
	images int

	swapchainInfo  SwapchainInfo
	renderPassInfo RenderPassInfo
	pipelineInfo   PipelineInfo
	poolInfo       CommandPoolInfo
	fenceSignaled  bool
	queues         map[int]*fakeQueue
	swapchain      *fakeSwapchain
	commandBuffer  *fakeCommandBuffer
}

func (d *fakeDevice) Queue(family int) Queue {
	d.rec.record("GetQueue")
	if d.queues == nil {
		d.queues = map[int]*fakeQueue{}
	}
	if q, ok := d.queues[family]; ok {
		return q
	}
	q := &fakeQueue{rec: d.rec, family: family}
	d.queues[family] = q
	return q
}

func (d *fakeDevice) CreateSwapchain(info SwapchainInfo) (Swapchain, error) {
	d.swapchainInfo = info
	if err := d.rec.record("CreateSwapchain"); err != nil {
		return nil, err
	}
	d.swapchain = &fakeSwapchain{rec: d.rec, images: d.images}
	return d.swapchain, nil
}

func (d *fakeDevice) CreateImageView(Image, SurfaceFormat) (ImageView, error) {
	return d.handle("ImageView")
}

func (d *fakeDevice) CreateRenderPass(info RenderPassInfo) (RenderPass, error) {
	d.renderPassInfo = info
	return d.handle("RenderPass")
}

func (d *fakeDevice) CreateShaderModule([]uint32) (ShaderModule, error) {
	return d.handle("ShaderModule")
}

func (d *fakeDevice) CreatePipelineLayout() (PipelineLayout, error) {
	return d.handle("PipelineLayout")
}

func (d *fakeDevice) CreateGraphicsPipeline(info PipelineInfo) (Pipeline, error) {
	d.pipelineInfo = info
	return d.handle("Pipeline")
}

func (d *fakeDevice) CreateFramebuffer(FramebufferInfo) (Framebuffer, error) {
	return d.handle("Framebuffer")
}

func (d *fakeDevice) CreateCommandPool(info CommandPoolInfo) (CommandPool, error) {
	d.poolInfo = info
	if err := d.rec.record("CreateCommandPool"); err != nil {
		return nil, err
	}
	return &fakeCommandPool{fakeHandle: fakeHandle{rec: d.rec, kind: "CommandPool"}, device: d}, nil
}

func (d *fakeDevice) CreateSemaphore() (Semaphore, error) {
	return d.handle("Semaphore")
}

func (d *fakeDevice) CreateFence(signaled bool) (Fence, error) {
	d.fenceSignaled = signaled
	return d.handle("Fence")
}

func (d *fakeDevice) WaitForFence(Fence) error { return d.rec.record("WaitForFence") }
func (d *fakeDevice) ResetFence(Fence) error   { return d.rec.record("ResetFence") }
func (d *fakeDevice) WaitIdle() error          { return d.rec.record("WaitIdle") }
func (d *fakeDevice) Destroy()                 { d.rec.record("DestroyDevice") }

func (d *fakeDevice) handle(kind string) (*fakeHandle, error) {
	if err := d.rec.record("Create" + kind); err != nil {
		return nil, err
	}
	return &fakeHandle{rec: d.rec, kind: kind}, nil
}

// fakeHandle stands in for every object whose only behaviour is Destroy.
type fakeHandle struct {
	rec  *recorder
	kind string
}

func (h *fakeHandle) Destroy() { h.rec.record("Destroy" + h.kind) }

type fakeQueue struct {
	rec     *recorder
	family  int
	submits []SubmitInfo
}

func (q *fakeQueue) Submit(info SubmitInfo) error {
	q.submits = append(q.submits, info)
	return q.rec.record("Submit")
}

type fakeSwapchain struct {
	rec      *recorder
	images   int
	next     int
	presents []fakePresent
}

type fakePresent struct {
	queue      *fakeQueue
	imageIndex int
	wait       Semaphore
}

func (s *fakeSwapchain) Images() ([]Image, error) {
	images := make([]Image, s.images)
	for i := range images {
		images[i] = i
	}
	return images, s.rec.record("GetSwapchainImages")
}

func (s *fakeSwapchain) AcquireNextImage(Semaphore) (int, error) {
	if err := s.rec.record("AcquireNextImage"); err != nil {
		return 0, err
	}
	index := s.next
	s.next = (s.next + 1) % s.images
	return index, nil
}

func (s *fakeSwapchain) Present(queue Queue, imageIndex int, wait Semaphore) error {
	s.presents = append(s.presents, fakePresent{queue: queue.(*fakeQueue), imageIndex: imageIndex, wait: wait})
	return s.rec.record("Present")
}

func (s *fakeSwapchain) Destroy() { s.rec.record("DestroySwapchain") }

type fakeCommandPool struct {
	fakeHandle
	device *fakeDevice
}

func (p *fakeCommandPool) AllocateCommandBuffer() (CommandBuffer, error) {
	if err := p.rec.record("AllocateCommandBuffer"); err != nil {
		return nil, err
	}
	p.device.commandBuffer = &fakeCommandBuffer{rec: p.rec}
	return p.device.commandBuffer, nil
}

type fakeCommandBuffer struct {
	rec *recorder

	begin    RenderPassBegin
	viewport Viewport
	scissor  Rect
	draw     [4]int
}

func (c *fakeCommandBuffer) Reset() error { return c.rec.record("cmd:Reset") }
func (c *fakeCommandBuffer) Begin() error { return c.rec.record("cmd:Begin") }

func (c *fakeCommandBuffer) BeginRenderPass(info RenderPassBegin) error {
	c.begin = info
	return c.rec.record("cmd:BeginRenderPass")
}

func (c *fakeCommandBuffer) BindPipeline(Pipeline) error { return c.rec.record("cmd:BindPipeline") }

func (c *fakeCommandBuffer) SetViewport(viewport Viewport) {
	c.viewport = viewport
	c.rec.record("cmd:SetViewport")
}

func (c *fakeCommandBuffer) SetScissor(scissor Rect) {
	c.scissor = scissor
	c.rec.record("cmd:SetScissor")
}

func (c *fakeCommandBuffer) Draw(vertexCount, instanceCount, firstVertex, firstInstance int) {
	c.draw = [4]int{vertexCount, instanceCount, firstVertex, firstInstance}
	c.rec.record("cmd:Draw")
}

func (c *fakeCommandBuffer) EndRenderPass() { c.rec.record("cmd:EndRenderPass") }
func (c *fakeCommandBuffer) End() error     { return c.rec.record("cmd:End") }

type fakeCompiler struct {
	rec *recorder
	err error
}

func (c *fakeCompiler) Compile(src ShaderSource) ([]uint32, error) {
	c.rec.record("Compile:" + src.Kind.String())
	if c.err != nil {
		return nil, c.err
	}
	return []uint32{0x07230203}, nil
}

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, name := range names {
		m[name] = struct{}{}
	}
	return m
}

// scenario is one universal queue family, one format, FIFO only, two
// swapchain images and a fixed 800x600 surface.
type scenario struct {
	rec      *recorder
	loader   *fakeLoader
	window   *fakeWindow
	gpu      *fakePhysicalDevice
	compiler *fakeCompiler
}

func newScenario() *scenario {
	rec := &recorder{}
	gpu := &fakePhysicalDevice{
		rec:        rec,
		name:       "gpu0",
		families:   []QueueFamily{{Index: 0, Graphics: true, Present: true}},
		extensions: set(SwapchainExtension),
		support: SwapchainSupport{
			Capabilities: SurfaceCapabilities{
				MinImageCount:  2,
				MaxImageCount:  2,
				CurrentExtent:  Extent{Width: 800, Height: 600},
				MinImageExtent: Extent{Width: 1, Height: 1},
				MaxImageExtent: Extent{Width: 4096, Height: 4096},
			},
			Formats:      []SurfaceFormat{{Format: 44, ColorSpace: 0}},
			PresentModes: []PresentMode{PresentModeFIFO},
		},
	}
	return &scenario{
		rec: rec,
		loader: &fakeLoader{
			rec:        rec,
			extensions: set("VK_KHR_surface", "VK_KHR_xlib_surface"),
			layers:     set(),
			instance:   &fakeInstance{rec: rec, devices: []PhysicalDevice{gpu}},
		},
		window: &fakeWindow{
			rec:        rec,
			extensions: []string{"VK_KHR_surface", "VK_KHR_xlib_surface"},
			width:      800,
			height:     600,
		},
		gpu:      gpu,
		compiler: &fakeCompiler{rec: rec},
	}
}

func (s *scenario) options() Options {
	return Options{Compiler: s.compiler}
}

func (s *scenario) initialize() (*Renderer, error) {
	return Initialize(s.loader, s.window, s.options())
}
