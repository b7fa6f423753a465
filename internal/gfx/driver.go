package gfx

// The interfaces in this file are the whole native surface the engine
// touches. internal/vulkan implements them on top of vkngwrapper; tests
// implement them with a recording fake.

// Well-known extension and layer names.
const (
	SwapchainExtension              = "VK_KHR_swapchain"
	PortabilitySubsetExtension      = "VK_KHR_portability_subset"
	PortabilityEnumerationExtension = "VK_KHR_portability_enumeration"
	DebugUtilsExtension             = "VK_EXT_debug_utils"
	ValidationLayer                 = "VK_LAYER_KHRONOS_validation"
)

// Loader is the entry point into the graphics API.
type Loader interface {
	AvailableExtensions() (map[string]struct{}, error)
	AvailableLayers() (map[string]struct{}, error)
	CreateInstance(info InstanceInfo) (Instance, error)
}

// InstanceInfo describes the instance to create.
type InstanceInfo struct {
	ApplicationName string
	EngineName      string
	Extensions      []string
	Layers          []string

	// Validation installs a debug messenger that forwards validation
	// messages to the logger.
	Validation bool
}

// Instance owns every other API object.
type Instance interface {
	PhysicalDevices() ([]PhysicalDevice, error)
	Destroy()
}

// Window is the OS window collaborator.
type Window interface {
	// RequiredExtensions lists the instance extensions the platform
	// surface needs.
	RequiredExtensions() []string
	CreateSurface(instance Instance) (Surface, error)
	FramebufferSize() (width, height int)
	ShouldClose() bool
	PollEvents()
}

// Surface is a presentation target bound to a window.
type Surface interface {
	Destroy()
}

// PhysicalDevice is an enumerated GPU. It is not owned by the application.
type PhysicalDevice interface {
	Name() string
	QueueFamilies(surface Surface) ([]QueueFamily, error)
	Extensions() (map[string]struct{}, error)
	SwapchainSupport(surface Surface) (SwapchainSupport, error)
	CreateDevice(info DeviceInfo) (Device, error)
}

// DeviceInfo describes the logical device to create: one queue per family.
type DeviceInfo struct {
	QueueFamilies []int
	Extensions    []string
}

// Device is a logical device. Everything created from it dies with it.
type Device interface {
	Queue(family int) Queue

	CreateSwapchain(info SwapchainInfo) (Swapchain, error)
	CreateImageView(image Image, format SurfaceFormat) (ImageView, error)
	CreateRenderPass(info RenderPassInfo) (RenderPass, error)
	CreateShaderModule(code []uint32) (ShaderModule, error)
	CreatePipelineLayout() (PipelineLayout, error)
	CreateGraphicsPipeline(info PipelineInfo) (Pipeline, error)
	CreateFramebuffer(info FramebufferInfo) (Framebuffer, error)
	CreateCommandPool(info CommandPoolInfo) (CommandPool, error)
	CreateSemaphore() (Semaphore, error)
	CreateFence(signaled bool) (Fence, error)

	// WaitForFence blocks without a timeout.
	WaitForFence(fence Fence) error
	ResetFence(fence Fence) error
	WaitIdle() error

	Destroy()
}

// Queue accepts command buffer submissions.
type Queue interface {
	Submit(info SubmitInfo) error
}

// SubmitInfo is a single queue submission.
type SubmitInfo struct {
	WaitSemaphores   []Semaphore
	WaitStages       []PipelineStage
	CommandBuffers   []CommandBuffer
	SignalSemaphores []Semaphore
	// Fence is signaled when the submission completes. May be nil.
	Fence Fence
}

// SwapchainInfo describes the swapchain to create.
type SwapchainInfo struct {
	Surface            Surface
	MinImageCount      uint32
	Format             SurfaceFormat
	Extent             Extent
	SharingMode        SharingMode
	QueueFamilyIndices []int
	PreTransform       uint32
	PresentMode        PresentMode
}

// Swapchain is the queue of presentable images.
type Swapchain interface {
	Images() ([]Image, error)
	// AcquireNextImage blocks without a timeout and signals the semaphore
	// once the returned image is available.
	AcquireNextImage(signal Semaphore) (int, error)
	Present(queue Queue, imageIndex int, wait Semaphore) error
	Destroy()
}

// Image is a swapchain image. It is owned by the swapchain.
type Image interface{}

// ImageView is a 2D colour view over one image.
type ImageView interface {
	Destroy()
}

// ShaderModule wraps compiled shader bytecode.
type ShaderModule interface {
	Destroy()
}

// PipelineLayout describes the resources a pipeline binds.
type PipelineLayout interface {
	Destroy()
}

// Pipeline is a fully baked graphics pipeline.
type Pipeline interface {
	Destroy()
}

// RenderPass describes attachment usage for a draw.
type RenderPass interface {
	Destroy()
}

// Framebuffer binds image views to a render pass.
type Framebuffer interface {
	Destroy()
}

// FramebufferInfo describes one framebuffer with a single colour attachment.
type FramebufferInfo struct {
	RenderPass RenderPass
	Attachment ImageView
	Extent     Extent
}

// CommandPoolInfo describes a command pool.
type CommandPoolInfo struct {
	QueueFamily int
	// ResetCommandBuffer allows buffers from the pool to be reset one by one.
	ResetCommandBuffer bool
}

// CommandPool allocates command buffers. Destroying it frees them.
type CommandPool interface {
	AllocateCommandBuffer() (CommandBuffer, error)
	Destroy()
}

// CommandBuffer is a primary command buffer.
type CommandBuffer interface {
	Reset() error
	Begin() error
	BeginRenderPass(info RenderPassBegin) error
	BindPipeline(pipeline Pipeline) error
	SetViewport(viewport Viewport)
	SetScissor(scissor Rect)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance int)
	EndRenderPass()
	End() error
}

// RenderPassBegin starts a render pass instance.
type RenderPassBegin struct {
	RenderPass  RenderPass
	Framebuffer Framebuffer
	Area        Rect
	ClearColor  [4]float32
}

// Semaphore orders queue operations on the GPU.
type Semaphore interface {
	Destroy()
}

// Fence is signaled by the GPU and waited on by the host.
type Fence interface {
	Destroy()
}
