package gfx

// LoadOp is what happens to an attachment when a render pass begins.
type LoadOp int

const (
	LoadOpDontCare LoadOp = iota
	LoadOpClear
)

// StoreOp is what happens to an attachment when a render pass ends.
type StoreOp int

const (
	StoreOpDontCare StoreOp = iota
	StoreOpStore
)

// ImageLayout is the subset of image layouts the engine uses.
type ImageLayout int

const (
	ImageLayoutUndefined ImageLayout = iota
	ImageLayoutColorAttachment
	ImageLayoutPresentSrc
)

// PipelineStage is a pipeline stage flag.
type PipelineStage uint32

const (
	PipelineStageColorAttachmentOutput PipelineStage = 1 << iota
)

// Access is a memory access flag.
type Access uint32

const (
	AccessColorAttachmentWrite Access = 1 << iota
)

// SubpassExternal refers to commands outside the render pass.
const SubpassExternal = -1

// AttachmentDescription describes the single colour attachment.
type AttachmentDescription struct {
	Format        int32
	LoadOp        LoadOp
	StoreOp       StoreOp
	InitialLayout ImageLayout
	FinalLayout   ImageLayout
}

// SubpassDependency orders work between two subpasses.
type SubpassDependency struct {
	SrcSubpass int
	DstSubpass int
	SrcStage   PipelineStage
	DstStage   PipelineStage
	SrcAccess  Access
	DstAccess  Access
}

// RenderPassInfo describes a render pass with one colour attachment and one
// subpass referencing it in the colour-attachment layout.
type RenderPassInfo struct {
	ColorAttachment AttachmentDescription
	Dependencies    []SubpassDependency
}

// ShaderKind is the pipeline stage a shader runs in.
type ShaderKind int

const (
	ShaderKindVertex ShaderKind = iota
	ShaderKindFragment
)

func (k ShaderKind) String() string {
	switch k {
	case ShaderKindVertex:
		return "vertex"
	case ShaderKindFragment:
		return "fragment"
	}
	return "unknown"
}

// ShaderStage binds a module to a pipeline stage.
type ShaderStage struct {
	Kind       ShaderKind
	Module     ShaderModule
	EntryPoint string
}

// Topology is the primitive topology.
type Topology int

const (
	TopologyTriangleList Topology = iota
)

// DynamicState is state set while recording instead of baked into the pipeline.
type DynamicState int

const (
	DynamicStateViewport DynamicState = iota
	DynamicStateScissor
)

// PolygonMode is the rasterisation fill mode.
type PolygonMode int

const (
	PolygonModeFill PolygonMode = iota
)

// RasterizationState is the fixed-function rasteriser configuration.
type RasterizationState struct {
	PolygonMode PolygonMode
	LineWidth   float32
	DepthClamp  bool
	DepthBias   bool
	CullBack    bool
}

// BlendFactor is a colour blend factor.
type BlendFactor int

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
)

// BlendState configures blending of the single colour attachment.
type BlendState struct {
	Enabled   bool
	SrcFactor BlendFactor
	DstFactor BlendFactor
}

// PipelineInfo describes the graphics pipeline. There are no vertex input
// bindings: vertices are generated in the vertex shader.
type PipelineInfo struct {
	Stages           []ShaderStage
	Layout           PipelineLayout
	RenderPass       RenderPass
	Topology         Topology
	PrimitiveRestart bool
	DynamicStates    []DynamicState
	Rasterization    RasterizationState
	Samples          int
	Blend            BlendState
}

// trianglePipeline is the fixed pipeline the engine draws with.
func trianglePipeline(layout PipelineLayout, renderPass RenderPass, stages []ShaderStage) PipelineInfo {
	return PipelineInfo{
		Stages:           stages,
		Layout:           layout,
		RenderPass:       renderPass,
		Topology:         TopologyTriangleList,
		PrimitiveRestart: false,
		DynamicStates:    []DynamicState{DynamicStateViewport, DynamicStateScissor},
		Rasterization: RasterizationState{
			PolygonMode: PolygonModeFill,
			LineWidth:   1,
		},
		Samples: 1,
		Blend: BlendState{
			Enabled:   false,
			SrcFactor: BlendFactorOne,
			DstFactor: BlendFactorZero,
		},
	}
}

// presentRenderPass is the single-subpass render pass drawing into a
// swapchain image.
func presentRenderPass(format int32) RenderPassInfo {
	return RenderPassInfo{
		ColorAttachment: AttachmentDescription{
			Format:        format,
			LoadOp:        LoadOpClear,
			StoreOp:       StoreOpStore,
			InitialLayout: ImageLayoutUndefined,
			FinalLayout:   ImageLayoutPresentSrc,
		},
		Dependencies: []SubpassDependency{
			{
				// Colour writes must wait until the acquired image is available.
				SrcSubpass: SubpassExternal,
				DstSubpass: 0,
				SrcStage:   PipelineStageColorAttachmentOutput,
				DstStage:   PipelineStageColorAttachmentOutput,
				SrcAccess:  0,
				DstAccess:  AccessColorAttachmentWrite,
			},
		},
	}
}
