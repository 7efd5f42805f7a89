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
	"testing"

	vk "github.com/vulkan-go/vulkan"

	"github.com/stretchr/testify/require"

	"github.com/DuckSoft/Fossilize/core/hash"
	"github.com/DuckSoft/Fossilize/core/memory/arena"
)

// fakeResolver is a minimal, in-memory Resolver backed by plain maps, used
// to exercise descriptor Hash/Remap methods without a recorder.
type fakeResolver struct {
	samplers  map[vk.Sampler]hash.Hash
	setLayouts map[vk.DescriptorSetLayout]hash.Hash
	layouts   map[vk.PipelineLayout]hash.Hash
	modules   map[vk.ShaderModule]hash.Hash
	passes    map[vk.RenderPass]hash.Hash
	pipelines map[vk.Pipeline]hash.Hash
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		samplers:   map[vk.Sampler]hash.Hash{},
		setLayouts: map[vk.DescriptorSetLayout]hash.Hash{},
		layouts:    map[vk.PipelineLayout]hash.Hash{},
		modules:    map[vk.ShaderModule]hash.Hash{},
		passes:     map[vk.RenderPass]hash.Hash{},
		pipelines:  map[vk.Pipeline]hash.Hash{},
	}
}

func (f *fakeResolver) Sampler(h vk.Sampler) (hash.Hash, bool) { v, ok := f.samplers[h]; return v, ok }
func (f *fakeResolver) DescriptorSetLayout(h vk.DescriptorSetLayout) (hash.Hash, bool) {
	v, ok := f.setLayouts[h]
	return v, ok
}
func (f *fakeResolver) PipelineLayout(h vk.PipelineLayout) (hash.Hash, bool) {
	v, ok := f.layouts[h]
	return v, ok
}
func (f *fakeResolver) ShaderModule(h vk.ShaderModule) (hash.Hash, bool) {
	v, ok := f.modules[h]
	return v, ok
}
func (f *fakeResolver) RenderPass(h vk.RenderPass) (hash.Hash, bool) { v, ok := f.passes[h]; return v, ok }
func (f *fakeResolver) Pipeline(h vk.Pipeline) (hash.Hash, bool)     { v, ok := f.pipelines[h]; return v, ok }

// S1: a sampler's hash is stable and survives a string round trip.
func TestSamplerHashIsStableAcrossSerialization(t *testing.T) {
	a := arena.New()
	s, err := SamplerFromVK(a, &vk.SamplerCreateInfo{
		MagFilter:     vk.FilterLinear,
		MinFilter:     vk.FilterNearest,
		MaxAnisotropy: 16.0,
		CompareEnable: vk.Bool32(1),
		CompareOp:     vk.CompareOpLess,
	})
	require.NoError(t, err)

	r := newFakeResolver()
	h1, err := s.Hash(r)
	require.NoError(t, err)

	parsed, err := hash.Parse(h1.String())
	require.NoError(t, err)
	require.Equal(t, h1, parsed)

	h2, err := s.Hash(r)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func vkBool(b bool) vk.Bool32 {
	if b {
		return vk.Bool32(1)
	}
	return vk.Bool32(0)
}

func baseGraphicsPipeline(r *fakeResolver) *GraphicsPipeline {
	layout := vk.PipelineLayout(1)
	rp := vk.RenderPass(1)
	mod := vk.ShaderModule(1)
	r.layouts[layout] = hash.Hash(0x1111)
	r.passes[rp] = hash.Hash(0x2222)
	r.modules[mod] = hash.Hash(0x3333)
	return &GraphicsPipeline{
		Layout:     layout,
		RenderPass: rp,
		Stages: []ShaderStage{
			{Stage: vk.ShaderStageFragmentBit, Module: mod, EntryPoint: "main"},
		},
	}
}

// S2: two pipelines differ only in depth bounds, both with
// DYNAMIC_DEPTH_BOUNDS active -> equal hashes.
func TestDepthBoundsIgnoredWhenDynamic(t *testing.T) {
	r := newFakeResolver()

	p1 := baseGraphicsPipeline(r)
	p1.DepthStencil = &DepthStencilState{DepthBoundsTestEnable: true, MinDepthBounds: 0.0, MaxDepthBounds: 1.0}
	p1.Dynamic = &DynamicState{States: []vk.DynamicState{vk.DynamicStateDepthBounds}}

	p2 := baseGraphicsPipeline(r)
	p2.DepthStencil = &DepthStencilState{DepthBoundsTestEnable: true, MinDepthBounds: 0.5, MaxDepthBounds: 1.0}
	p2.Dynamic = &DynamicState{States: []vk.DynamicState{vk.DynamicStateDepthBounds}}

	h1, err := p1.Hash(r)
	require.NoError(t, err)
	h2, err := p2.Hash(r)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

// Without the dynamic flag, differing depth bounds must change the hash.
func TestDepthBoundsMattersWhenNotDynamic(t *testing.T) {
	r := newFakeResolver()

	p1 := baseGraphicsPipeline(r)
	p1.DepthStencil = &DepthStencilState{DepthBoundsTestEnable: true, MinDepthBounds: 0.0, MaxDepthBounds: 1.0}

	p2 := baseGraphicsPipeline(r)
	p2.DepthStencil = &DepthStencilState{DepthBoundsTestEnable: true, MinDepthBounds: 0.5, MaxDepthBounds: 1.0}

	h1, err := p1.Hash(r)
	require.NoError(t, err)
	h2, err := p2.Hash(r)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

// Front/back stencil ops (failOp/passOp/depthFailOp/compareOp) are fed
// unconditionally regardless of stencilTestEnable; only the compareMask/
// writeMask/reference groups are gated on stencilTestEnable (and, within
// that, on their own dynamic-state flags).
func TestStencilOpsMatterEvenWhenStencilTestDisabled(t *testing.T) {
	r := newFakeResolver()

	p1 := baseGraphicsPipeline(r)
	p1.DepthStencil = &DepthStencilState{
		StencilTestEnable: false,
		Front:             StencilOpState{FailOp: vk.StencilOpKeep, PassOp: vk.StencilOpKeep},
		Back:              StencilOpState{FailOp: vk.StencilOpKeep, PassOp: vk.StencilOpKeep},
	}

	p2 := baseGraphicsPipeline(r)
	p2.DepthStencil = &DepthStencilState{
		StencilTestEnable: false,
		Front:             StencilOpState{FailOp: vk.StencilOpReplace, PassOp: vk.StencilOpZero},
		Back:              StencilOpState{FailOp: vk.StencilOpKeep, PassOp: vk.StencilOpKeep},
	}

	h1, err := p1.Hash(r)
	require.NoError(t, err)
	h2, err := p2.Hash(r)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2, "stencil ops must affect the hash even when stencilTestEnable is false")
}

// S3: a disabled color-blend attachment's other fields must not affect the
// hash.
func TestDisabledBlendAttachmentFieldsIgnored(t *testing.T) {
	r := newFakeResolver()

	p1 := baseGraphicsPipeline(r)
	p1.ColorBlend = &ColorBlendState{
		Attachments: []ColorBlendAttachment{
			{BlendEnable: false, SrcColorBlendFactor: vk.BlendFactorOne, ColorWriteMask: 0xf},
		},
	}

	p2 := baseGraphicsPipeline(r)
	p2.ColorBlend = &ColorBlendState{
		Attachments: []ColorBlendAttachment{
			{BlendEnable: false, SrcColorBlendFactor: vk.BlendFactorZero, ColorWriteMask: 0x1},
		},
	}

	h1, err := p1.Hash(r)
	require.NoError(t, err)
	h2, err := p2.Hash(r)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

// When blendEnable is true, the same field differences must change the hash.
func TestEnabledBlendAttachmentFieldsMatter(t *testing.T) {
	r := newFakeResolver()

	p1 := baseGraphicsPipeline(r)
	p1.ColorBlend = &ColorBlendState{
		Attachments: []ColorBlendAttachment{
			{BlendEnable: true, SrcColorBlendFactor: vk.BlendFactorOne},
		},
	}

	p2 := baseGraphicsPipeline(r)
	p2.ColorBlend = &ColorBlendState{
		Attachments: []ColorBlendAttachment{
			{BlendEnable: true, SrcColorBlendFactor: vk.BlendFactorZero},
		},
	}

	h1, err := p1.Hash(r)
	require.NoError(t, err)
	h2, err := p2.Hash(r)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

// A disabled attachment whose ignored blend factors reference
// CONSTANT_COLOR/CONSTANT_ALPHA must not cause blend constants to be fed,
// since the attachment's factors are themselves ignored while disabled.
func TestDisabledBlendAttachmentConstantFactorIgnored(t *testing.T) {
	r := newFakeResolver()

	p1 := baseGraphicsPipeline(r)
	p1.ColorBlend = &ColorBlendState{
		Attachments:    []ColorBlendAttachment{{BlendEnable: false, SrcColorBlendFactor: vk.BlendFactorConstantColor}},
		BlendConstants: [4]float32{1, 2, 3, 4},
	}
	p2 := baseGraphicsPipeline(r)
	p2.ColorBlend = &ColorBlendState{
		Attachments:    []ColorBlendAttachment{{BlendEnable: false, SrcColorBlendFactor: vk.BlendFactorConstantColor}},
		BlendConstants: [4]float32{5, 6, 7, 8},
	}

	h1, err := p1.Hash(r)
	require.NoError(t, err)
	h2, err := p2.Hash(r)
	require.NoError(t, err)
	require.Equal(t, h1, h2, "a disabled attachment's constant-referencing factor must not pull in blend constants")
}

// Blend constants are only fed when some attachment's factors reference
// CONSTANT_COLOR/CONSTANT_ALPHA and DYNAMIC_BLEND_CONSTANTS is not set.
func TestBlendConstantsOnlyMatterWhenReferenced(t *testing.T) {
	r := newFakeResolver()

	p1 := baseGraphicsPipeline(r)
	p1.ColorBlend = &ColorBlendState{
		Attachments:    []ColorBlendAttachment{{BlendEnable: true, SrcColorBlendFactor: vk.BlendFactorOne}},
		BlendConstants: [4]float32{1, 2, 3, 4},
	}
	p2 := baseGraphicsPipeline(r)
	p2.ColorBlend = &ColorBlendState{
		Attachments:    []ColorBlendAttachment{{BlendEnable: true, SrcColorBlendFactor: vk.BlendFactorOne}},
		BlendConstants: [4]float32{5, 6, 7, 8},
	}
	h1, err := p1.Hash(r)
	require.NoError(t, err)
	h2, err := p2.Hash(r)
	require.NoError(t, err)
	require.Equal(t, h1, h2, "blend constants unused by any attachment factor must not affect the hash")

	p3 := baseGraphicsPipeline(r)
	p3.ColorBlend = &ColorBlendState{
		Attachments:    []ColorBlendAttachment{{BlendEnable: true, SrcColorBlendFactor: vk.BlendFactorConstantColor}},
		BlendConstants: [4]float32{1, 2, 3, 4},
	}
	p4 := baseGraphicsPipeline(r)
	p4.ColorBlend = &ColorBlendState{
		Attachments:    []ColorBlendAttachment{{BlendEnable: true, SrcColorBlendFactor: vk.BlendFactorConstantColor}},
		BlendConstants: [4]float32{5, 6, 7, 8},
	}
	h3, err := p3.Hash(r)
	require.NoError(t, err)
	h4, err := p4.Hash(r)
	require.NoError(t, err)
	require.NotEqual(t, h3, h4, "blend constants referenced by an attachment factor must affect the hash")
}

// S5: swapping the hash behind an immutable sampler reference changes the
// set layout's hash.
func TestSetLayoutImmutableSamplerSensitivity(t *testing.T) {
	a := arena.New()
	r := newFakeResolver()
	samplerA := vk.Sampler(1)
	samplerB := vk.Sampler(2)
	r.samplers[samplerA] = hash.Hash(0xAAAA)
	r.samplers[samplerB] = hash.Hash(0xBBBB)

	mk := func(s vk.Sampler) *DescriptorSetLayout {
		d, err := DescriptorSetLayoutFromVK(a, &vk.DescriptorSetLayoutCreateInfo{
			PBindings: []vk.DescriptorSetLayoutBinding{
				{Binding: 0, DescriptorType: vk.DescriptorTypeUniformBuffer, DescriptorCount: 1},
				{
					Binding:           1,
					DescriptorType:    vk.DescriptorTypeCombinedImageSampler,
					DescriptorCount:   1,
					PImmutableSamplers: []vk.Sampler{s},
				},
			},
		})
		require.NoError(t, err)
		return d
	}

	d1 := mk(samplerA)
	d2 := mk(samplerB)
	h1, err := d1.Hash(r)
	require.NoError(t, err)
	h2, err := d2.Hash(r)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestSetLayoutIgnoresSamplersOnNonSamplerBindings(t *testing.T) {
	a := arena.New()
	r := newFakeResolver()
	d, err := DescriptorSetLayoutFromVK(a, &vk.DescriptorSetLayoutCreateInfo{
		PBindings: []vk.DescriptorSetLayoutBinding{
			// The sampler handle is not registered with r: Hash only succeeds
			// if it skips immutable samplers on a non-sampler binding.
			{Binding: 0, DescriptorType: vk.DescriptorTypeUniformBuffer, DescriptorCount: 1, PImmutableSamplers: []vk.Sampler{vk.Sampler(42)}},
		},
	})
	require.NoError(t, err)
	_, err = d.Hash(r)
	require.NoError(t, err)
}

func TestRenderPassResolveAttachmentsOmittedWhenAbsent(t *testing.T) {
	a := arena.New()
	r := newFakeResolver()

	withResolve, err := RenderPassFromVK(a, &vk.RenderPassCreateInfo{
		PSubpasses: []vk.SubpassDescription{
			{
				PColorAttachments:   []vk.AttachmentReference{{Attachment: 0, Layout: vk.ImageLayoutColorAttachmentOptimal}},
				PResolveAttachments: []vk.AttachmentReference{{Attachment: 1, Layout: vk.ImageLayoutColorAttachmentOptimal}},
			},
		},
	})
	require.NoError(t, err)

	withoutResolve, err := RenderPassFromVK(a, &vk.RenderPassCreateInfo{
		PSubpasses: []vk.SubpassDescription{
			{
				PColorAttachments: []vk.AttachmentReference{{Attachment: 0, Layout: vk.ImageLayoutColorAttachmentOptimal}},
			},
		},
	})
	require.NoError(t, err)

	h1, err := withResolve.Hash(r)
	require.NoError(t, err)
	h2, err := withoutResolve.Hash(r)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2, "a present resolve-attachment array must hash differently from an absent one")
}

func TestComputePipelineRemapRewritesHandles(t *testing.T) {
	a := arena.New()
	r := newFakeResolver()
	layout := vk.PipelineLayout(7)
	mod := vk.ShaderModule(9)
	r.layouts[layout] = hash.Hash(0xABCD)
	r.modules[mod] = hash.Hash(0xEF01)

	p, err := ComputePipelineFromVK(a, &vk.ComputePipelineCreateInfo{
		Layout: layout,
		Stage:  vk.PipelineShaderStageCreateInfo{Stage: vk.ShaderStageComputeBit, Module: mod, PName: "main"},
	})
	require.NoError(t, err)

	require.NoError(t, p.Remap(r))
	require.Equal(t, vk.PipelineLayout(r.layouts[layout]), p.Layout)
	require.Equal(t, vk.ShaderModule(r.modules[mod]), p.Stage.Module)
}

func TestGraphicsPipelineUnregisteredLayoutFails(t *testing.T) {
	r := newFakeResolver()
	p := &GraphicsPipeline{Layout: vk.PipelineLayout(999)}
	_, err := p.Hash(r)
	require.Error(t, err)
}
