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

package recorder

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/DuckSoft/Fossilize/core/hash"
	"github.com/DuckSoft/Fossilize/state"
	"github.com/DuckSoft/Fossilize/wire"
)

// encode* converts an already-remapped state.* descriptor (whose reference
// fields hold hash-derived handle values) into its plain, vocabulary-free
// wire.* counterpart. This is where the graphics-API vocabulary that
// package state speaks gets translated into the pinned schema of §6; it
// lives in recorder because wire deliberately carries no dependency on the
// vk bindings.

func encodeSampler(s *state.Sampler) wire.Sampler {
	return wire.Sampler{
		Flags:                   uint32(s.Flags),
		MagFilter:               int32(s.MagFilter),
		MinFilter:               int32(s.MinFilter),
		MipmapMode:              int32(s.MipmapMode),
		AddressModeU:            int32(s.AddressModeU),
		AddressModeV:            int32(s.AddressModeV),
		AddressModeW:            int32(s.AddressModeW),
		MipLodBias:              s.MipLodBias,
		AnisotropyEnable:        s.AnisotropyEnable,
		MaxAnisotropy:           s.MaxAnisotropy,
		CompareEnable:           s.CompareEnable,
		CompareOp:               int32(s.CompareOp),
		MinLod:                  s.MinLod,
		MaxLod:                  s.MaxLod,
		BorderColor:             int32(s.BorderColor),
		UnnormalizedCoordinates: s.UnnormalizedCoordinates,
	}
}

func encodeSetLayout(d *state.DescriptorSetLayout) wire.DescriptorSetLayout {
	bindings := make([]wire.DescriptorSetLayoutBinding, len(d.Bindings))
	for i, b := range d.Bindings {
		wb := wire.DescriptorSetLayoutBinding{
			Binding:         b.Binding,
			DescriptorType:  int32(b.DescriptorType),
			DescriptorCount: b.DescriptorCount,
			StageFlags:      uint32(b.StageFlags),
		}
		if b.ImmutableSamplers != nil {
			refs := make([]wire.Ref, len(b.ImmutableSamplers))
			for j, s := range b.ImmutableSamplers {
				refs[j] = hash.Hash(s)
			}
			wb.ImmutableSamplers = refs
		}
		bindings[i] = wb
	}
	return wire.DescriptorSetLayout{Flags: uint32(d.Flags), Bindings: bindings}
}

func encodePipelineLayout(p *state.PipelineLayout) wire.PipelineLayout {
	setLayouts := make([]wire.Ref, len(p.SetLayouts))
	for i, sl := range p.SetLayouts {
		if sl == vk.NullHandle {
			setLayouts[i] = 0
			continue
		}
		setLayouts[i] = hash.Hash(sl)
	}
	ranges := make([]wire.PushConstantRange, len(p.PushConstantRange))
	for i, pr := range p.PushConstantRange {
		ranges[i] = wire.PushConstantRange{StageFlags: uint32(pr.StageFlags), Offset: pr.Offset, Size: pr.Size}
	}
	return wire.PipelineLayout{Flags: uint32(p.Flags), SetLayouts: setLayouts, PushConstantRanges: ranges}
}

func encodeShaderModule(m *state.ShaderModule) wire.ShaderModule {
	return wire.ShaderModule{Flags: uint32(m.Flags), CodeSize: uint32(m.CodeSize), Code: m.Code}
}

func encodeAttachmentRef(r state.AttachmentReference) wire.AttachmentReference {
	return wire.AttachmentReference{Attachment: r.Attachment, Layout: int32(r.Layout)}
}

func encodeAttachmentRefs(refs []state.AttachmentReference) []wire.AttachmentReference {
	if refs == nil {
		return nil
	}
	out := make([]wire.AttachmentReference, len(refs))
	for i, r := range refs {
		out[i] = encodeAttachmentRef(r)
	}
	return out
}

func encodeRenderPass(rp *state.RenderPass) wire.RenderPass {
	atts := make([]wire.AttachmentDescription, len(rp.Attachments))
	for i, at := range rp.Attachments {
		atts[i] = wire.AttachmentDescription{
			Flags:          uint32(at.Flags),
			Format:         int32(at.Format),
			Samples:        uint32(at.Samples),
			LoadOp:         int32(at.LoadOp),
			StoreOp:        int32(at.StoreOp),
			StencilLoadOp:  int32(at.StencilLoadOp),
			StencilStoreOp: int32(at.StencilStoreOp),
			InitialLayout:  int32(at.InitialLayout),
			FinalLayout:    int32(at.FinalLayout),
		}
	}
	deps := make([]wire.SubpassDependency, len(rp.Dependencies))
	for i, dep := range rp.Dependencies {
		deps[i] = wire.SubpassDependency{
			SrcSubpass:      dep.SrcSubpass,
			DstSubpass:      dep.DstSubpass,
			SrcStageMask:    uint32(dep.SrcStageMask),
			DstStageMask:    uint32(dep.DstStageMask),
			SrcAccessMask:   uint32(dep.SrcAccessMask),
			DstAccessMask:   uint32(dep.DstAccessMask),
			DependencyFlags: uint32(dep.DependencyFlags),
		}
	}
	subpasses := make([]wire.Subpass, len(rp.Subpasses))
	for i, sp := range rp.Subpasses {
		ws := wire.Subpass{
			Flags:                   uint32(sp.Flags),
			PipelineBindPoint:       int32(sp.PipelineBindPoint),
			InputAttachments:        encodeAttachmentRefs(sp.InputAttachments),
			ColorAttachments:        encodeAttachmentRefs(sp.ColorAttachments),
			PreserveAttachmentIndex: sp.PreserveAttachmentIndex,
		}
		if sp.ResolveAttachments != nil {
			r := encodeAttachmentRefs(sp.ResolveAttachments)
			ws.ResolveAttachments = &r
		}
		if sp.DepthStencilAttachment != nil {
			r := encodeAttachmentRef(*sp.DepthStencilAttachment)
			ws.DepthStencilAttachment = &r
		}
		subpasses[i] = ws
	}
	return wire.RenderPass{Flags: uint32(rp.Flags), Attachments: atts, Dependencies: deps, Subpasses: subpasses}
}

func encodeShaderStage(st *state.ShaderStage) wire.ShaderStage {
	ws := wire.ShaderStage{
		Flags:      uint32(st.Flags),
		Stage:      uint32(st.Stage),
		Module:     hash.Hash(st.Module),
		EntryPoint: st.EntryPoint,
	}
	if st.Specialization != nil {
		entries := make([]wire.SpecializationMapEntry, len(st.Specialization.MapEntries))
		for i, e := range st.Specialization.MapEntries {
			entries[i] = wire.SpecializationMapEntry{ConstantID: e.ConstantID, Offset: e.Offset, Size: uint32(e.Size)}
		}
		ws.Specialization = &wire.SpecializationInfo{
			DataSize:   uint32(len(st.Specialization.Data)),
			Data:       st.Specialization.Data,
			MapEntries: entries,
		}
	}
	return ws
}

func encodeComputePipeline(p *state.ComputePipeline) wire.ComputePipeline {
	w := wire.ComputePipeline{
		Flags:             uint32(p.Flags),
		Layout:            hash.Hash(p.Layout),
		BasePipelineIndex: p.BasePipelineIndex,
		Stage:             encodeShaderStage(&p.Stage),
	}
	if p.BasePipeline != vk.NullHandle {
		w.BasePipeline = hash.Hash(p.BasePipeline)
	}
	return w
}

func encodeGraphicsPipeline(p *state.GraphicsPipeline) wire.GraphicsPipeline {
	stages := make([]wire.ShaderStage, len(p.Stages))
	for i := range p.Stages {
		stages[i] = encodeShaderStage(&p.Stages[i])
	}
	w := wire.GraphicsPipeline{
		Flags:             uint32(p.Flags),
		Layout:            hash.Hash(p.Layout),
		RenderPass:        hash.Hash(p.RenderPass),
		Subpass:           p.Subpass,
		BasePipelineIndex: p.BasePipelineIndex,
		Stages:            stages,
	}
	if p.BasePipeline != vk.NullHandle {
		w.BasePipeline = hash.Hash(p.BasePipeline)
	}
	if vi := p.VertexInput; vi != nil {
		bindings := make([]wire.VertexInputBinding, len(vi.Bindings))
		for i, b := range vi.Bindings {
			bindings[i] = wire.VertexInputBinding{Binding: b.Binding, Stride: b.Stride, InputRate: int32(b.InputRate)}
		}
		attrs := make([]wire.VertexInputAttribute, len(vi.Attributes))
		for i, at := range vi.Attributes {
			attrs[i] = wire.VertexInputAttribute{Location: at.Location, Binding: at.Binding, Format: int32(at.Format), Offset: at.Offset}
		}
		w.VertexInput = &wire.VertexInputState{Bindings: bindings, Attributes: attrs}
	}
	if ia := p.InputAssembly; ia != nil {
		w.InputAssembly = &wire.InputAssemblyState{Topology: int32(ia.Topology), PrimitiveRestartEnable: ia.PrimitiveRestartEnable}
	}
	if ts := p.Tessellation; ts != nil {
		w.Tessellation = &wire.TessellationState{PatchControlPoints: ts.PatchControlPoints}
	}
	if vp := p.Viewport; vp != nil {
		viewports := make([]wire.Viewport, len(vp.Viewports))
		for i, v := range vp.Viewports {
			viewports[i] = wire.Viewport{X: v.X, Y: v.Y, Width: v.Width, Height: v.Height, MinDepth: v.MinDepth, MaxDepth: v.MaxDepth}
		}
		scissors := make([]wire.Rect2D, len(vp.Scissors))
		for i, s := range vp.Scissors {
			scissors[i] = wire.Rect2D{OffsetX: s.Offset.X, OffsetY: s.Offset.Y, Width: s.Extent.Width, Height: s.Extent.Height}
		}
		w.Viewport = &wire.ViewportState{
			ViewportCount: uint32(len(vp.Viewports)),
			ScissorCount:  uint32(len(vp.Scissors)),
			Viewports:     viewports,
			Scissors:      scissors,
		}
	}
	if rs := p.Rasterization; rs != nil {
		w.Rasterization = &wire.RasterizationState{
			DepthClampEnable:        rs.DepthClampEnable,
			RasterizerDiscardEnable: rs.RasterizerDiscardEnable,
			PolygonMode:             int32(rs.PolygonMode),
			CullMode:                uint32(rs.CullMode),
			FrontFace:               int32(rs.FrontFace),
			DepthBiasEnable:         rs.DepthBiasEnable,
			DepthBiasConstantFactor: rs.DepthBiasConstantFactor,
			DepthBiasClamp:          rs.DepthBiasClamp,
			DepthBiasSlopeFactor:    rs.DepthBiasSlopeFactor,
			LineWidth:               rs.LineWidth,
		}
	}
	if ms := p.Multisample; ms != nil {
		var mask []uint32
		if ms.SampleMask != nil {
			mask = make([]uint32, len(ms.SampleMask))
			for i, m := range ms.SampleMask {
				mask[i] = uint32(m)
			}
		}
		w.Multisample = &wire.MultisampleState{
			RasterizationSamples: uint32(ms.RasterizationSamples),
			SampleShadingEnable:  ms.SampleShadingEnable,
			MinSampleShading:     ms.MinSampleShading,
			SampleMask:           mask,
			AlphaToCoverageEnable: ms.AlphaToCoverageEnable,
			AlphaToOneEnable:     ms.AlphaToOneEnable,
		}
	}
	if ds := p.DepthStencil; ds != nil {
		w.DepthStencil = &wire.DepthStencilState{
			DepthTestEnable:       ds.DepthTestEnable,
			DepthWriteEnable:      ds.DepthWriteEnable,
			DepthCompareOp:        int32(ds.DepthCompareOp),
			DepthBoundsTestEnable: ds.DepthBoundsTestEnable,
			StencilTestEnable:     ds.StencilTestEnable,
			Front:                 encodeStencilOp(ds.Front),
			Back:                  encodeStencilOp(ds.Back),
			MinDepthBounds:        ds.MinDepthBounds,
			MaxDepthBounds:        ds.MaxDepthBounds,
		}
	}
	if cb := p.ColorBlend; cb != nil {
		atts := make([]wire.ColorBlendAttachment, len(cb.Attachments))
		for i, at := range cb.Attachments {
			atts[i] = wire.ColorBlendAttachment{
				BlendEnable:         at.BlendEnable,
				SrcColorBlendFactor: int32(at.SrcColorBlendFactor),
				DstColorBlendFactor: int32(at.DstColorBlendFactor),
				ColorBlendOp:        int32(at.ColorBlendOp),
				SrcAlphaBlendFactor: int32(at.SrcAlphaBlendFactor),
				DstAlphaBlendFactor: int32(at.DstAlphaBlendFactor),
				AlphaBlendOp:        int32(at.AlphaBlendOp),
				ColorWriteMask:      uint32(at.ColorWriteMask),
			}
		}
		w.ColorBlend = &wire.ColorBlendState{
			LogicOpEnable:  cb.LogicOpEnable,
			LogicOp:        int32(cb.LogicOp),
			Attachments:    atts,
			BlendConstants: cb.BlendConstants,
		}
	}
	if dyn := p.Dynamic; dyn != nil {
		states := make([]int32, len(dyn.States))
		for i, s := range dyn.States {
			states[i] = int32(s)
		}
		w.Dynamic = &wire.DynamicState{States: states}
	}
	return w
}

func encodeStencilOp(s state.StencilOpState) wire.StencilOpState {
	return wire.StencilOpState{
		FailOp:      int32(s.FailOp),
		PassOp:      int32(s.PassOp),
		DepthFailOp: int32(s.DepthFailOp),
		CompareOp:   int32(s.CompareOp),
		CompareMask: s.CompareMask,
		WriteMask:   s.WriteMask,
		Reference:   s.Reference,
	}
}
