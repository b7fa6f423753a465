package vulkan

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkngwrapper/ember/internal/gfx"
)

func loadOp(op gfx.LoadOp) core1_0.AttachmentLoadOp {
	if op == gfx.LoadOpClear {
		return core1_0.AttachmentLoadOpClear
	}
	return core1_0.AttachmentLoadOpDontCare
}

func storeOp(op gfx.StoreOp) core1_0.AttachmentStoreOp {
	if op == gfx.StoreOpStore {
		return core1_0.AttachmentStoreOpStore
	}
	return core1_0.AttachmentStoreOpDontCare
}

func imageLayout(layout gfx.ImageLayout) core1_0.ImageLayout {
	switch layout {
	case gfx.ImageLayoutColorAttachment:
		return core1_0.ImageLayoutColorAttachmentOptimal
	case gfx.ImageLayoutPresentSrc:
		return khr_swapchain.ImageLayoutPresentSrc
	}
	return core1_0.ImageLayoutUndefined
}

func pipelineStages(stages gfx.PipelineStage) core1_0.PipelineStageFlags {
	var flags core1_0.PipelineStageFlags
	if stages&gfx.PipelineStageColorAttachmentOutput != 0 {
		flags |= core1_0.PipelineStageColorAttachmentOutput
	}
	return flags
}

func accessFlags(access gfx.Access) core1_0.AccessFlags {
	var flags core1_0.AccessFlags
	if access&gfx.AccessColorAttachmentWrite != 0 {
		flags |= core1_0.AccessColorAttachmentWrite
	}
	return flags
}

func subpassIndex(index int) int {
	if index == gfx.SubpassExternal {
		return core1_0.SubpassExternal
	}
	return index
}

// CreateRenderPass implements gfx.Device.
func (d *Device) CreateRenderPass(info gfx.RenderPassInfo) (gfx.RenderPass, error) {
	color := info.ColorAttachment

	dependencies := make([]core1_0.SubpassDependency, 0, len(info.Dependencies))
	for _, dep := range info.Dependencies {
		dependencies = append(dependencies, core1_0.SubpassDependency{
			SrcSubpass: subpassIndex(dep.SrcSubpass),
			DstSubpass: subpassIndex(dep.DstSubpass),

			SrcStageMask:  pipelineStages(dep.SrcStage),
			SrcAccessMask: accessFlags(dep.SrcAccess),

			DstStageMask:  pipelineStages(dep.DstStage),
			DstAccessMask: accessFlags(dep.DstAccess),
		})
	}

	renderPass, res, err := d.driver.CreateRenderPass(nil, core1_0.RenderPassCreateInfo{
		Attachments: []core1_0.AttachmentDescription{
			{
				Format:         core1_0.Format(color.Format),
				Samples:        core1_0.Samples1,
				LoadOp:         loadOp(color.LoadOp),
				StoreOp:        storeOp(color.StoreOp),
				StencilLoadOp:  core1_0.AttachmentLoadOpDontCare,
				StencilStoreOp: core1_0.AttachmentStoreOpDontCare,
				InitialLayout:  imageLayout(color.InitialLayout),
				FinalLayout:    imageLayout(color.FinalLayout),
			},
		},
		Subpasses: []core1_0.SubpassDescription{
			{
				PipelineBindPoint: core1_0.PipelineBindPointGraphics,
				ColorAttachments: []core1_0.AttachmentReference{
					{
						Attachment: 0,
						Layout:     core1_0.ImageLayoutColorAttachmentOptimal,
					},
				},
			},
		},
		SubpassDependencies: dependencies,
	})
	if err != nil {
		return nil, nativeError("CreateRenderPass", res, err)
	}
	return &RenderPass{device: d, handle: renderPass}, nil
}

func shaderStage(kind gfx.ShaderKind) core1_0.ShaderStageFlags {
	if kind == gfx.ShaderKindFragment {
		return core1_0.StageFragment
	}
	return core1_0.StageVertex
}

func dynamicState(state gfx.DynamicState) core1_0.DynamicState {
	if state == gfx.DynamicStateScissor {
		return core1_0.DynamicStateScissor
	}
	return core1_0.DynamicStateViewport
}

func blendFactor(factor gfx.BlendFactor) core1_0.BlendFactor {
	if factor == gfx.BlendFactorOne {
		return core1_0.BlendFactorOne
	}
	return core1_0.BlendFactorZero
}

// CreateGraphicsPipeline implements gfx.Device. Viewport and scissor counts
// are fixed at one; their values come from dynamic state.
func (d *Device) CreateGraphicsPipeline(info gfx.PipelineInfo) (gfx.Pipeline, error) {
	layout, ok := info.Layout.(*PipelineLayout)
	if !ok {
		return nil, wrongHandle("pipeline layout", info.Layout)
	}
	renderPass, ok := info.RenderPass.(*RenderPass)
	if !ok {
		return nil, wrongHandle("render pass", info.RenderPass)
	}

	stages := make([]core1_0.PipelineShaderStageCreateInfo, 0, len(info.Stages))
	for _, stage := range info.Stages {
		module, ok := stage.Module.(*ShaderModule)
		if !ok {
			return nil, wrongHandle("shader module", stage.Module)
		}
		stages = append(stages, core1_0.PipelineShaderStageCreateInfo{
			Stage:  shaderStage(stage.Kind),
			Module: module.handle,
			Name:   stage.EntryPoint,
		})
	}

	dynamicStates := make([]core1_0.DynamicState, 0, len(info.DynamicStates))
	for _, state := range info.DynamicStates {
		dynamicStates = append(dynamicStates, dynamicState(state))
	}

	cullMode := core1_0.CullModeFlags(0)
	if info.Rasterization.CullBack {
		cullMode = core1_0.CullModeBack
	}

	pipelines, res, err := d.driver.CreateGraphicsPipelines(nil, nil,
		core1_0.GraphicsPipelineCreateInfo{
			Stages:           stages,
			VertexInputState: &core1_0.PipelineVertexInputStateCreateInfo{},
			InputAssemblyState: &core1_0.PipelineInputAssemblyStateCreateInfo{
				Topology:               core1_0.PrimitiveTopologyTriangleList,
				PrimitiveRestartEnable: info.PrimitiveRestart,
			},
			ViewportState: &core1_0.PipelineViewportStateCreateInfo{
				Viewports: []core1_0.Viewport{{}},
				Scissors:  []core1_0.Rect2D{{}},
			},
			RasterizationState: &core1_0.PipelineRasterizationStateCreateInfo{
				DepthClampEnable:        info.Rasterization.DepthClamp,
				RasterizerDiscardEnable: false,

				PolygonMode: core1_0.PolygonModeFill,
				CullMode:    cullMode,
				FrontFace:   core1_0.FrontFaceClockwise,

				DepthBiasEnable: info.Rasterization.DepthBias,

				LineWidth: info.Rasterization.LineWidth,
			},
			MultisampleState: &core1_0.PipelineMultisampleStateCreateInfo{
				SampleShadingEnable:  false,
				RasterizationSamples: core1_0.Samples1,
				MinSampleShading:     1.0,
			},
			ColorBlendState: &core1_0.PipelineColorBlendStateCreateInfo{
				LogicOpEnabled: false,
				LogicOp:        core1_0.LogicOpCopy,

				BlendConstants: [4]float32{0, 0, 0, 0},
				Attachments: []core1_0.PipelineColorBlendAttachmentState{
					{
						BlendEnabled:        info.Blend.Enabled,
						SrcColorBlendFactor: blendFactor(info.Blend.SrcFactor),
						DstColorBlendFactor: blendFactor(info.Blend.DstFactor),
						ColorBlendOp:        core1_0.BlendOpAdd,
						SrcAlphaBlendFactor: blendFactor(info.Blend.SrcFactor),
						DstAlphaBlendFactor: blendFactor(info.Blend.DstFactor),
						AlphaBlendOp:        core1_0.BlendOpAdd,
						ColorWriteMask:      core1_0.ColorComponentRed | core1_0.ColorComponentGreen | core1_0.ColorComponentBlue | core1_0.ColorComponentAlpha,
					},
				},
			},
			DynamicState: &core1_0.PipelineDynamicStateCreateInfo{
				DynamicStates: dynamicStates,
			},
			Layout:            layout.handle,
			RenderPass:        renderPass.handle,
			Subpass:           0,
			BasePipelineIndex: -1,
		},
	)
	if err != nil {
		return nil, nativeError("CreateGraphicsPipelines", res, err)
	}
	return &Pipeline{device: d, handle: pipelines[0]}, nil
}
