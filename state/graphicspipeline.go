// Copyright (C) 2026 Fossilize Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package state

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/DuckSoft/Fossilize/core/hash"
	"github.com/DuckSoft/Fossilize/core/memory/arena"
)

// The optional sub-states of a graphics pipeline. Each is a pointer: nil
// means the corresponding VkPipeline*StateCreateInfo pointer was absent
// from the VkGraphicsPipelineCreateInfo.

type VertexInputBinding struct {
	Binding   uint32
	Stride    uint32
	InputRate vk.VertexInputRate
}

type VertexInputAttribute struct {
	Location uint32
	Binding  uint32
	Format   vk.Format
	Offset   uint32
}

type VertexInputState struct {
	Bindings   []VertexInputBinding
	Attributes []VertexInputAttribute
}

type InputAssemblyState struct {
	Topology               vk.PrimitiveTopology
	PrimitiveRestartEnable bool
}

type TessellationState struct {
	PatchControlPoints uint32
}

type ViewportState struct {
	Viewports []vk.Viewport // body omitted from the hash if DYNAMIC_VIEWPORT is set
	Scissors  []vk.Rect2D   // body omitted from the hash if DYNAMIC_SCISSOR is set
}

type RasterizationState struct {
	DepthClampEnable        bool
	RasterizerDiscardEnable bool
	PolygonMode              vk.PolygonMode
	CullMode                 vk.CullModeFlags
	FrontFace                vk.FrontFace
	DepthBiasEnable          bool
	DepthBiasConstantFactor  float32
	DepthBiasClamp           float32
	DepthBiasSlopeFactor     float32
	LineWidth                float32
}

type MultisampleState struct {
	RasterizationSamples  vk.SampleCountFlagBits
	SampleShadingEnable   bool
	MinSampleShading      float32
	SampleMask            []vk.SampleMask // nil if pSampleMask was absent
	AlphaToCoverageEnable bool
	AlphaToOneEnable      bool
}

type StencilOpState struct {
	FailOp      vk.StencilOp
	PassOp      vk.StencilOp
	DepthFailOp vk.StencilOp
	CompareOp   vk.CompareOp
	CompareMask uint32
	WriteMask   uint32
	Reference   uint32
}

type DepthStencilState struct {
	DepthTestEnable       bool
	DepthWriteEnable      bool
	DepthCompareOp        vk.CompareOp
	DepthBoundsTestEnable bool
	StencilTestEnable     bool
	Front                 StencilOpState
	Back                  StencilOpState
	MinDepthBounds        float32
	MaxDepthBounds        float32
}

type ColorBlendAttachment struct {
	BlendEnable         bool
	SrcColorBlendFactor vk.BlendFactor
	DstColorBlendFactor vk.BlendFactor
	ColorBlendOp        vk.BlendOp
	SrcAlphaBlendFactor vk.BlendFactor
	DstAlphaBlendFactor vk.BlendFactor
	AlphaBlendOp        vk.BlendOp
	ColorWriteMask      vk.ColorComponentFlags
}

type ColorBlendState struct {
	LogicOpEnable  bool
	LogicOp        vk.LogicOp
	Attachments    []ColorBlendAttachment
	BlendConstants [4]float32
}

type DynamicState struct {
	States []vk.DynamicState
}

// GraphicsPipeline is the creation-time state of a VkPipeline created from a
// VkGraphicsPipelineCreateInfo.
type GraphicsPipeline struct {
	Flags             vk.PipelineCreateFlags
	Layout            vk.PipelineLayout
	RenderPass        vk.RenderPass
	Subpass           uint32
	BasePipeline      vk.Pipeline // vk.NullHandle if absent
	BasePipelineIndex int32
	Stages            []ShaderStage

	VertexInput  *VertexInputState
	InputAssembly *InputAssemblyState
	Tessellation *TessellationState
	Viewport     *ViewportState
	Rasterization *RasterizationState
	Multisample  *MultisampleState
	DepthStencil *DepthStencilState
	ColorBlend   *ColorBlendState
	Dynamic      *DynamicState
}

// GraphicsPipelineFromVK deep-copies a VkGraphicsPipelineCreateInfo,
// including every shader stage and every present optional sub-state.
func GraphicsPipelineFromVK(a *arena.Arena, info *vk.GraphicsPipelineCreateInfo) (*GraphicsPipeline, error) {
	if info.PNext != nil {
		return nil, errUnsupportedExtension("graphicsPipeline")
	}
	stages := make([]ShaderStage, len(info.PStages))
	for i := range info.PStages {
		st, err := shaderStageFromVK(a, &info.PStages[i])
		if err != nil {
			return nil, err
		}
		stages[i] = st
	}

	p := arena.Allocate[GraphicsPipeline](a)
	*p = GraphicsPipeline{
		Flags:             info.Flags,
		Layout:            info.Layout,
		RenderPass:        info.RenderPass,
		Subpass:           info.Subpass,
		BasePipeline:      info.BasePipelineHandle,
		BasePipelineIndex: info.BasePipelineIndex,
		Stages:            arena.Slice(a, stages),
	}

	if vi := info.PVertexInputState; vi != nil {
		if vi.PNext != nil {
			return nil, errUnsupportedExtension("graphicsPipeline.vertexInputState")
		}
		bindings := make([]VertexInputBinding, len(vi.PVertexBindingDescriptions))
		for i, b := range vi.PVertexBindingDescriptions {
			bindings[i] = VertexInputBinding{Binding: b.Binding, Stride: b.Stride, InputRate: b.InputRate}
		}
		attrs := make([]VertexInputAttribute, len(vi.PVertexAttributeDescriptions))
		for i, at := range vi.PVertexAttributeDescriptions {
			attrs[i] = VertexInputAttribute{Location: at.Location, Binding: at.Binding, Format: at.Format, Offset: at.Offset}
		}
		s := arena.Allocate[VertexInputState](a)
		*s = VertexInputState{Bindings: arena.Slice(a, bindings), Attributes: arena.Slice(a, attrs)}
		p.VertexInput = s
	}

	if ia := info.PInputAssemblyState; ia != nil {
		s := arena.Allocate[InputAssemblyState](a)
		*s = InputAssemblyState{Topology: ia.Topology, PrimitiveRestartEnable: ia.PrimitiveRestartEnable != 0}
		p.InputAssembly = s
	}

	if ts := info.PTessellationState; ts != nil {
		s := arena.Allocate[TessellationState](a)
		*s = TessellationState{PatchControlPoints: ts.PatchControlPoints}
		p.Tessellation = s
	}

	if vp := info.PViewportState; vp != nil {
		s := arena.Allocate[ViewportState](a)
		*s = ViewportState{Viewports: arena.Slice(a, vp.PViewports), Scissors: arena.Slice(a, vp.PScissors)}
		p.Viewport = s
	}

	if rs := info.PRasterizationState; rs != nil {
		s := arena.Allocate[RasterizationState](a)
		*s = RasterizationState{
			DepthClampEnable:        rs.DepthClampEnable != 0,
			RasterizerDiscardEnable: rs.RasterizerDiscardEnable != 0,
			PolygonMode:             rs.PolygonMode,
			CullMode:                rs.CullMode,
			FrontFace:               rs.FrontFace,
			DepthBiasEnable:         rs.DepthBiasEnable != 0,
			DepthBiasConstantFactor: rs.DepthBiasConstantFactor,
			DepthBiasClamp:          rs.DepthBiasClamp,
			DepthBiasSlopeFactor:    rs.DepthBiasSlopeFactor,
			LineWidth:               rs.LineWidth,
		}
		p.Rasterization = s
	}

	if ms := info.PMultisampleState; ms != nil {
		s := arena.Allocate[MultisampleState](a)
		*s = MultisampleState{
			RasterizationSamples: ms.RasterizationSamples,
			SampleShadingEnable:   ms.SampleShadingEnable != 0,
			MinSampleShading:      ms.MinSampleShading,
			SampleMask:            arena.Slice(a, ms.PSampleMask),
			AlphaToCoverageEnable: ms.AlphaToCoverageEnable != 0,
			AlphaToOneEnable:      ms.AlphaToOneEnable != 0,
		}
		p.Multisample = s
	}

	if ds := info.PDepthStencilState; ds != nil {
		s := arena.Allocate[DepthStencilState](a)
		*s = DepthStencilState{
			DepthTestEnable:       ds.DepthTestEnable != 0,
			DepthWriteEnable:      ds.DepthWriteEnable != 0,
			DepthCompareOp:        ds.DepthCompareOp,
			DepthBoundsTestEnable: ds.DepthBoundsTestEnable != 0,
			StencilTestEnable:     ds.StencilTestEnable != 0,
			Front:                 stencilOpStateFromVK(ds.Front),
			Back:                  stencilOpStateFromVK(ds.Back),
			MinDepthBounds:        ds.MinDepthBounds,
			MaxDepthBounds:        ds.MaxDepthBounds,
		}
		p.DepthStencil = s
	}

	if cb := info.PColorBlendState; cb != nil {
		if cb.PNext != nil {
			return nil, errUnsupportedExtension("graphicsPipeline.colorBlendState")
		}
		atts := make([]ColorBlendAttachment, len(cb.PAttachments))
		for i, at := range cb.PAttachments {
			atts[i] = ColorBlendAttachment{
				BlendEnable:         at.BlendEnable != 0,
				SrcColorBlendFactor: at.SrcColorBlendFactor,
				DstColorBlendFactor: at.DstColorBlendFactor,
				ColorBlendOp:        at.ColorBlendOp,
				SrcAlphaBlendFactor: at.SrcAlphaBlendFactor,
				DstAlphaBlendFactor: at.DstAlphaBlendFactor,
				AlphaBlendOp:        at.AlphaBlendOp,
				ColorWriteMask:      at.ColorWriteMask,
			}
		}
		s := arena.Allocate[ColorBlendState](a)
		*s = ColorBlendState{
			LogicOpEnable:  cb.LogicOpEnable != 0,
			LogicOp:        cb.LogicOp,
			Attachments:    arena.Slice(a, atts),
			BlendConstants: cb.BlendConstants,
		}
		p.ColorBlend = s
	}

	if dyn := info.PDynamicState; dyn != nil {
		s := arena.Allocate[DynamicState](a)
		*s = DynamicState{States: arena.Slice(a, dyn.PDynamicStates)}
		p.Dynamic = s
	}

	return p, nil
}

func stencilOpStateFromVK(s vk.StencilOpState) StencilOpState {
	return StencilOpState{
		FailOp:      s.FailOp,
		PassOp:      s.PassOp,
		DepthFailOp: s.DepthFailOp,
		CompareOp:   s.CompareOp,
		CompareMask: s.CompareMask,
		WriteMask:   s.WriteMask,
		Reference:   s.Reference,
	}
}

// Kind identifies this descriptor's entity type.
func (p *GraphicsPipeline) Kind() Kind { return KindGraphicsPipeline }

// Hash implements the central subtlety of the whole system: fields the
// runtime is permitted to ignore under an active dynamic-state flag must
// not influence the hash, or two pipelines identical modulo dynamic state
// would hash differently (§4.3, "Conditional-field rule").
func (p *GraphicsPipeline) Hash(r Resolver) (hash.Hash, error) {
	h := hash.New()
	h.U32(uint32(p.Flags))

	if p.BasePipeline == vk.NullHandle {
		h.U32(0)
	} else {
		bh, ok := r.Pipeline(p.BasePipeline)
		if !ok {
			return 0, errUnregisteredHandle("graphicsPipeline.basePipeline")
		}
		h.U64(uint64(bh))
		h.S32(p.BasePipelineIndex)
	}

	lh, ok := r.PipelineLayout(p.Layout)
	if !ok {
		return 0, errUnregisteredHandle("graphicsPipeline.layout")
	}
	h.U64(uint64(lh))

	rph, ok := r.RenderPass(p.RenderPass)
	if !ok {
		return 0, errUnregisteredHandle("graphicsPipeline.renderPass")
	}
	h.U64(uint64(rph))

	h.U32(p.Subpass)
	h.U32(uint32(len(p.Stages)))

	dyn := newDynamicStateSet(dynamicStates(p.Dynamic))
	hashDynamicState(h, p.Dynamic)
	hashDepthStencilState(h, p.DepthStencil, dyn)
	hashInputAssemblyState(h, p.InputAssembly)
	hashRasterizationState(h, p.Rasterization, dyn)
	hashMultisampleState(h, p.Multisample)
	hashViewportState(h, p.Viewport, dyn)
	hashVertexInputState(h, p.VertexInput)
	hashColorBlendState(h, p.ColorBlend, dyn)
	hashTessellationState(h, p.Tessellation)

	for i := range p.Stages {
		if err := hashShaderStage(h, r, &p.Stages[i]); err != nil {
			return 0, err
		}
	}
	return h.Sum(), nil
}

func dynamicStates(d *DynamicState) []vk.DynamicState {
	if d == nil {
		return nil
	}
	return d.States
}

func hashDynamicState(h *hash.Hasher, d *DynamicState) {
	if d == nil {
		h.U32(0)
		return
	}
	h.U32(1)
	h.U32(uint32(len(d.States)))
	for _, s := range d.States {
		h.U32(uint32(s))
	}
}

func hashInputAssemblyState(h *hash.Hasher, s *InputAssemblyState) {
	if s == nil {
		h.U32(0)
		return
	}
	h.U32(1)
	h.U32(uint32(s.Topology))
	h.Bool(s.PrimitiveRestartEnable)
}

func hashTessellationState(h *hash.Hasher, s *TessellationState) {
	if s == nil {
		h.U32(0)
		return
	}
	h.U32(1)
	h.U32(s.PatchControlPoints)
}

func hashVertexInputState(h *hash.Hasher, s *VertexInputState) {
	if s == nil {
		h.U32(0)
		return
	}
	h.U32(1)
	h.U32(uint32(len(s.Bindings)))
	h.U32(uint32(len(s.Attributes)))
	for _, b := range s.Bindings {
		h.U32(b.Binding)
		h.U32(b.Stride)
		h.U32(uint32(b.InputRate))
	}
	for _, at := range s.Attributes {
		h.U32(at.Location)
		h.U32(at.Binding)
		h.U32(uint32(at.Format))
		h.U32(at.Offset)
	}
}

func hashRasterizationState(h *hash.Hasher, s *RasterizationState, dyn dynamicStateSet) {
	if s == nil {
		h.U32(0)
		return
	}
	h.U32(1)
	h.Bool(s.DepthClampEnable)
	h.Bool(s.RasterizerDiscardEnable)
	h.U32(uint32(s.PolygonMode))
	h.U32(uint32(s.CullMode))
	h.U32(uint32(s.FrontFace))
	h.Bool(s.DepthBiasEnable)
	if !dyn.has(vk.DynamicStateDepthBias) && s.DepthBiasEnable {
		h.Float(s.DepthBiasClamp)
		h.Float(s.DepthBiasSlopeFactor)
		h.Float(s.DepthBiasConstantFactor)
	}
	if !dyn.has(vk.DynamicStateLineWidth) {
		h.Float(s.LineWidth)
	}
}

func hashMultisampleState(h *hash.Hasher, s *MultisampleState) {
	if s == nil {
		h.U32(0)
		return
	}
	h.U32(1)
	h.U32(uint32(s.RasterizationSamples))
	h.Bool(s.SampleShadingEnable)
	h.Float(s.MinSampleShading)
	h.Bool(s.AlphaToCoverageEnable)
	h.Bool(s.AlphaToOneEnable)
	if s.SampleMask != nil {
		words := (uint32(s.RasterizationSamples) + 31) / 32
		for i := uint32(0); i < words && int(i) < len(s.SampleMask); i++ {
			h.U32(uint32(s.SampleMask[i]))
		}
	} else {
		h.U32(0)
	}
}

func hashViewportState(h *hash.Hasher, s *ViewportState, dyn dynamicStateSet) {
	if s == nil {
		h.U32(0)
		return
	}
	h.U32(1)
	h.U32(uint32(len(s.Viewports)))
	h.U32(uint32(len(s.Scissors)))
	if !dyn.has(vk.DynamicStateViewport) {
		for _, v := range s.Viewports {
			h.Float(v.X)
			h.Float(v.Y)
			h.Float(v.Width)
			h.Float(v.Height)
			h.Float(v.MinDepth)
			h.Float(v.MaxDepth)
		}
	}
	if !dyn.has(vk.DynamicStateScissor) {
		for _, sc := range s.Scissors {
			h.S32(sc.Offset.X)
			h.S32(sc.Offset.Y)
			h.U32(sc.Extent.Width)
			h.U32(sc.Extent.Height)
		}
	}
}

func hashDepthStencilState(h *hash.Hasher, s *DepthStencilState, dyn dynamicStateSet) {
	if s == nil {
		h.U32(0)
		return
	}
	h.U32(1)
	h.Bool(s.DepthTestEnable)
	h.Bool(s.DepthWriteEnable)
	h.U32(uint32(s.DepthCompareOp))
	h.Bool(s.DepthBoundsTestEnable)
	h.Bool(s.StencilTestEnable)

	hashStencilOps(h, &s.Front)
	hashStencilOps(h, &s.Back)
	if s.StencilTestEnable {
		if !dyn.has(vk.DynamicStateStencilCompareMask) {
			h.U32(s.Front.CompareMask)
			h.U32(s.Back.CompareMask)
		}
		if !dyn.has(vk.DynamicStateStencilWriteMask) {
			h.U32(s.Front.WriteMask)
			h.U32(s.Back.WriteMask)
		}
		if !dyn.has(vk.DynamicStateStencilReference) {
			h.U32(s.Front.Reference)
			h.U32(s.Back.Reference)
		}
	}

	if !dyn.has(vk.DynamicStateDepthBounds) {
		if s.DepthBoundsTestEnable {
			h.Float(s.MinDepthBounds)
			h.Float(s.MaxDepthBounds)
		}
	}
}

func hashStencilOps(h *hash.Hasher, s *StencilOpState) {
	h.U32(uint32(s.FailOp))
	h.U32(uint32(s.PassOp))
	h.U32(uint32(s.DepthFailOp))
	h.U32(uint32(s.CompareOp))
}

func blendFactorUsesConstant(f vk.BlendFactor) bool {
	return f == vk.BlendFactorConstantColor || f == vk.BlendFactorOneMinusConstantColor ||
		f == vk.BlendFactorConstantAlpha || f == vk.BlendFactorOneMinusConstantAlpha
}

func hashColorBlendState(h *hash.Hasher, s *ColorBlendState, dyn dynamicStateSet) {
	if s == nil {
		h.U32(0)
		return
	}
	h.U32(1)
	h.Bool(s.LogicOpEnable)
	h.U32(uint32(s.LogicOp))
	h.U32(uint32(len(s.Attachments)))

	usesConstant := false
	for _, at := range s.Attachments {
		if !at.BlendEnable {
			h.U32(0)
			continue
		}
		if blendFactorUsesConstant(at.SrcColorBlendFactor) || blendFactorUsesConstant(at.DstColorBlendFactor) ||
			blendFactorUsesConstant(at.SrcAlphaBlendFactor) || blendFactorUsesConstant(at.DstAlphaBlendFactor) {
			usesConstant = true
		}
		h.U32(1)
		h.U32(uint32(at.SrcColorBlendFactor))
		h.U32(uint32(at.DstColorBlendFactor))
		h.U32(uint32(at.ColorBlendOp))
		h.U32(uint32(at.SrcAlphaBlendFactor))
		h.U32(uint32(at.DstAlphaBlendFactor))
		h.U32(uint32(at.AlphaBlendOp))
		h.U32(uint32(at.ColorWriteMask))
	}

	if !dyn.has(vk.DynamicStateBlendConstants) && usesConstant {
		for _, c := range s.BlendConstants {
			h.Float(c)
		}
	}
}

// Remap rewrites layout, render-pass, base-pipeline and every stage's
// shader-module handle to content hashes in place, per §4.5's remapping
// targets for graphics pipelines.
func (p *GraphicsPipeline) Remap(r Resolver) error {
	lh, ok := r.PipelineLayout(p.Layout)
	if !ok {
		return errUnregisteredHandle("graphicsPipeline.layout")
	}
	p.Layout = vk.PipelineLayout(lh)

	rph, ok := r.RenderPass(p.RenderPass)
	if !ok {
		return errUnregisteredHandle("graphicsPipeline.renderPass")
	}
	p.RenderPass = vk.RenderPass(rph)

	if p.BasePipeline != vk.NullHandle {
		bh, ok := r.Pipeline(p.BasePipeline)
		if !ok {
			return errUnregisteredHandle("graphicsPipeline.basePipeline")
		}
		p.BasePipeline = vk.Pipeline(bh)
	}

	for i := range p.Stages {
		if err := remapShaderStage(r, &p.Stages[i]); err != nil {
			return err
		}
	}
	return nil
}
