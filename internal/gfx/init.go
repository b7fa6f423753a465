package gfx

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// codeExtensionNotPresent is VK_ERROR_EXTENSION_NOT_PRESENT.
const codeExtensionNotPresent = -7

// SwapchainConfig is everything decided about the swapchain before it is
// created.
type SwapchainConfig struct {
	Format        SurfaceFormat
	PresentMode   PresentMode
	ImageCount    uint32
	Extent        Extent
	SharingMode   SharingMode
	QueueFamilies []int
	PreTransform  uint32
}

// Renderer owns every resource needed to present frames.
type Renderer struct {
	physical Candidate

	device        Device
	graphicsQueue Queue
	presentQueue  Queue

	swapchain    Swapchain
	config       SwapchainConfig
	framebuffers []Framebuffer

	renderPass    RenderPass
	pipeline      Pipeline
	commandBuffer CommandBuffer

	imageAvailable Semaphore
	renderFinished Semaphore
	inFlight       Fence

	clearColor [4]float32
	releaser   *Releaser
}

// Config returns the swapchain configuration chosen during initialisation.
func (r *Renderer) Config() SwapchainConfig {
	return r.config
}

// PhysicalDevice returns the device that was selected.
func (r *Renderer) PhysicalDevice() Candidate {
	return r.physical
}

// Initialize creates the instance, surface, device, swapchain, pipeline,
// framebuffers, command buffer and synchronisation objects, in that order.
// If any step fails, everything created so far is released and the error
// is returned.
func Initialize(loader Loader, window Window, opts Options) (*Renderer, error) {
	opts = opts.withDefaults()

	releaser := &Releaser{}
	renderer, err := initialize(loader, window, opts, releaser)
	if err != nil {
		releaser.Release()
		return nil, err
	}
	return renderer, nil
}

func initialize(loader Loader, window Window, opts Options, releaser *Releaser) (*Renderer, error) {
	log := Logger()
	r := &Renderer{
		releaser:   releaser,
		clearColor: [4]float32(*opts.ClearColor),
	}

	instance, err := createInstance(loader, window, opts, releaser)
	if err != nil {
		return nil, err
	}

	surface, err := window.CreateSurface(instance)
	if err != nil {
		return nil, errors.Wrap(err, "creating surface")
	}
	releaser.Push("surface", surface.Destroy)
	log.Info("created surface")

	devices, err := instance.PhysicalDevices()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating physical devices")
	}
	r.physical, err = SelectPhysicalDevice(devices, surface, opts.DevicePolicy)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"device":         r.physical.Index,
		"name":           r.physical.Device.Name(),
		"graphicsFamily": *r.physical.Families.GraphicsFamily,
		"presentFamily":  *r.physical.Families.PresentFamily,
	}).Info("selected physical device")

	if err := r.createDevice(); err != nil {
		return nil, err
	}

	support, err := r.physical.Device.SwapchainSupport(surface)
	if err != nil {
		return nil, errors.Wrap(err, "querying swapchain support")
	}
	if !SwapchainAdequate(support) {
		return nil, errors.Wrap(ErrNoSuitableDevice, "surface lost its formats or present modes")
	}
	r.config = chooseSwapchainConfig(support, r.physical.Families, window, opts.FormatPolicy)

	images, err := r.createSwapchain(surface)
	if err != nil {
		return nil, err
	}

	views, err := r.createImageViews(images)
	if err != nil {
		return nil, err
	}

	if err := r.createRenderPass(); err != nil {
		return nil, err
	}

	if err := r.createGraphicsPipeline(opts); err != nil {
		return nil, err
	}

	if err := r.createFramebuffers(views); err != nil {
		return nil, err
	}

	if err := r.createCommandBuffer(); err != nil {
		return nil, err
	}

	if err := r.createSyncObjects(); err != nil {
		return nil, err
	}

	log.Info("renderer initialised")
	return r, nil
}

func createInstance(loader Loader, window Window, opts Options, releaser *Releaser) (Instance, error) {
	log := Logger()

	available, err := loader.AvailableExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "listing instance extensions")
	}

	extensions := append([]string(nil), window.RequiredExtensions()...)
	if missing := CheckDeviceExtensions(available, extensions); len(missing) > 0 {
		return nil, NewNativeError(APIVulkan, "CreateInstance", codeExtensionNotPresent,
			errors.Newf("missing required instance extensions %v", missing))
	}
	if _, ok := available[PortabilityEnumerationExtension]; ok {
		extensions = append(extensions, PortabilityEnumerationExtension)
	}

	var layers []string
	validation := false
	if opts.Validation {
		validation, err = validationAvailable(loader, available)
		if err != nil {
			return nil, err
		}
		if validation {
			layers = append(layers, ValidationLayer)
			extensions = append(extensions, DebugUtilsExtension)
		} else {
			log.Warn("validation requested but the validation layer is not installed")
		}
	}

	instance, err := loader.CreateInstance(InstanceInfo{
		ApplicationName: opts.ApplicationName,
		EngineName:      engineName,
		Extensions:      extensions,
		Layers:          layers,
		Validation:      validation,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating instance")
	}
	releaser.Push("instance", instance.Destroy)

	log.WithFields(logrus.Fields{
		"extensions": extensions,
		"layers":     layers,
	}).Info("created instance")
	return instance, nil
}

func validationAvailable(loader Loader, extensions map[string]struct{}) (bool, error) {
	layers, err := loader.AvailableLayers()
	if err != nil {
		return false, errors.Wrap(err, "listing instance layers")
	}
	if _, ok := layers[ValidationLayer]; !ok {
		return false, nil
	}
	_, ok := extensions[DebugUtilsExtension]
	return ok, nil
}

func (r *Renderer) createDevice() error {
	families := r.physical.Families.Unique()

	device, err := r.physical.Device.CreateDevice(DeviceInfo{
		QueueFamilies: families,
		Extensions:    r.physical.Extensions,
	})
	if err != nil {
		return errors.Wrap(err, "creating logical device")
	}
	r.releaser.Push("device", device.Destroy)
	r.device = device

	r.graphicsQueue = device.Queue(*r.physical.Families.GraphicsFamily)
	r.presentQueue = device.Queue(*r.physical.Families.PresentFamily)

	Logger().WithField("queueFamilies", families).Info("created logical device")
	return nil
}

func chooseSwapchainConfig(support SwapchainSupport, families QueueFamilyIndices, window Window, formatPolicy FormatPolicy) SwapchainConfig {
	width, height := window.FramebufferSize()
	caps := support.Capabilities

	sharing, queueFamilies := ChooseSharing(families)
	return SwapchainConfig{
		Format:        formatPolicy(support.Formats),
		PresentMode:   ChoosePresentMode(support.PresentModes),
		ImageCount:    ChooseImageCount(caps),
		Extent:        ChooseExtent(caps, width, height),
		SharingMode:   sharing,
		QueueFamilies: queueFamilies,
		PreTransform:  caps.CurrentTransform,
	}
}

func (r *Renderer) createSwapchain(surface Surface) ([]Image, error) {
	swapchain, err := r.device.CreateSwapchain(SwapchainInfo{
		Surface:            surface,
		MinImageCount:      r.config.ImageCount,
		Format:             r.config.Format,
		Extent:             r.config.Extent,
		SharingMode:        r.config.SharingMode,
		QueueFamilyIndices: r.config.QueueFamilies,
		PreTransform:       r.config.PreTransform,
		PresentMode:        r.config.PresentMode,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating swapchain")
	}
	r.releaser.Push("swapchain", swapchain.Destroy)
	r.swapchain = swapchain

	images, err := swapchain.Images()
	if err != nil {
		return nil, errors.Wrap(err, "getting swapchain images")
	}

	Logger().WithFields(logrus.Fields{
		"format":      r.config.Format.Format,
		"colorSpace":  r.config.Format.ColorSpace,
		"presentMode": r.config.PresentMode,
		"imageCount":  len(images),
		"extent":      r.config.Extent,
		"sharing":     r.config.SharingMode,
	}).Info("created swapchain")
	return images, nil
}

func (r *Renderer) createImageViews(images []Image) ([]ImageView, error) {
	views := make([]ImageView, 0, len(images))
	for i, image := range images {
		view, err := r.device.CreateImageView(image, r.config.Format)
		if err != nil {
			return nil, errors.Wrapf(err, "creating image view %d", i)
		}
		r.releaser.Push("image view", view.Destroy)
		views = append(views, view)
	}

	Logger().WithField("count", len(views)).Info("created image views")
	return views, nil
}

func (r *Renderer) createRenderPass() error {
	renderPass, err := r.device.CreateRenderPass(presentRenderPass(r.config.Format.Format))
	if err != nil {
		return errors.Wrap(err, "creating render pass")
	}
	r.releaser.Push("render pass", renderPass.Destroy)
	r.renderPass = renderPass

	Logger().Info("created render pass")
	return nil
}

func (r *Renderer) createGraphicsPipeline(opts Options) error {
	log := Logger()

	sources, err := BuiltinShaders(opts.Shaders)
	if err != nil {
		return err
	}

	stages := make([]ShaderStage, 0, len(sources))
	// Modules are only needed until the pipeline is built.
	defer func() {
		for _, stage := range stages {
			stage.Module.Destroy()
		}
	}()

	for _, src := range sources {
		code, err := opts.Compiler.Compile(src)
		if err != nil {
			return errors.Wrapf(err, "compiling %s", src.Name)
		}

		module, err := r.device.CreateShaderModule(code)
		if err != nil {
			return errors.Wrapf(err, "creating shader module for %s", src.Name)
		}
		stages = append(stages, ShaderStage{
			Kind:       src.Kind,
			Module:     module,
			EntryPoint: src.EntryPoint,
		})
		log.WithFields(logrus.Fields{
			"shader": src.Name,
			"words":  len(code),
		}).Info("compiled shader")
	}

	layout, err := r.device.CreatePipelineLayout()
	if err != nil {
		return errors.Wrap(err, "creating pipeline layout")
	}
	r.releaser.Push("pipeline layout", layout.Destroy)

	pipeline, err := r.device.CreateGraphicsPipeline(trianglePipeline(layout, r.renderPass, stages))
	if err != nil {
		return errors.Wrap(err, "creating graphics pipeline")
	}
	r.releaser.Push("pipeline", pipeline.Destroy)
	r.pipeline = pipeline

	log.Info("created graphics pipeline")
	return nil
}

func (r *Renderer) createFramebuffers(views []ImageView) error {
	r.framebuffers = make([]Framebuffer, 0, len(views))
	for i, view := range views {
		framebuffer, err := r.device.CreateFramebuffer(FramebufferInfo{
			RenderPass: r.renderPass,
			Attachment: view,
			Extent:     r.config.Extent,
		})
		if err != nil {
			return errors.Wrapf(err, "creating framebuffer %d", i)
		}
		r.releaser.Push("framebuffer", framebuffer.Destroy)
		r.framebuffers = append(r.framebuffers, framebuffer)
	}

	Logger().WithField("count", len(r.framebuffers)).Info("created framebuffers")
	return nil
}

func (r *Renderer) createCommandBuffer() error {
	pool, err := r.device.CreateCommandPool(CommandPoolInfo{
		QueueFamily:        *r.physical.Families.GraphicsFamily,
		ResetCommandBuffer: true,
	})
	if err != nil {
		return errors.Wrap(err, "creating command pool")
	}
	r.releaser.Push("command pool", pool.Destroy)

	r.commandBuffer, err = pool.AllocateCommandBuffer()
	if err != nil {
		return errors.Wrap(err, "allocating command buffer")
	}

	Logger().Info("created command buffer")
	return nil
}

func (r *Renderer) createSyncObjects() error {
	var err error

	r.imageAvailable, err = r.device.CreateSemaphore()
	if err != nil {
		return errors.Wrap(err, "creating image-available semaphore")
	}
	r.releaser.Push("semaphore", r.imageAvailable.Destroy)

	r.renderFinished, err = r.device.CreateSemaphore()
	if err != nil {
		return errors.Wrap(err, "creating render-finished semaphore")
	}
	r.releaser.Push("semaphore", r.renderFinished.Destroy)

	// Signaled so the first frame does not wait on a submission that never happened.
	r.inFlight, err = r.device.CreateFence(true)
	if err != nil {
		return errors.Wrap(err, "creating in-flight fence")
	}
	r.releaser.Push("fence", r.inFlight.Destroy)

	Logger().Info("created sync objects")
	return nil
}

// WaitIdle blocks until the device has finished all submitted work.
func (r *Renderer) WaitIdle() error {
	return errors.Wrap(r.device.WaitIdle(), "waiting for device idle")
}

// Destroy releases every resource in the reverse of creation order. It is
// safe to call more than once.
func (r *Renderer) Destroy() {
	r.releaser.Release()
}
