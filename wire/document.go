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

// Package wire pins the on-disk document schema (§6): plain, vocabulary-
// agnostic value types with no dependency on the graphics-API bindings used
// by package state. Every reference field is a hash.Hash, which already
// marshals to the canonical 16-hex-digit uppercase form (and to
// "0000000000000000" for the zero hash, the null-reference sentinel).
package wire

// FormatVersion is the only schema version this module understands. A
// document whose Version field differs is rejected outright rather than
// migrated: spec.md declares cross-version migration a non-goal.
const FormatVersion = 1

// Document is a single JSON document: either a full store dump (serialize)
// or a dependency closure rooted at one pipeline or shader module
// (serialize_<kind>). Every map is keyed by the 16-hex-digit uppercase
// string form of hash.Hash and omitted entirely when empty.
type Document struct {
	Version int `json:"version"`

	Samplers          map[string]Sampler             `json:"samplers,omitempty"`
	SetLayouts        map[string]DescriptorSetLayout `json:"setLayouts,omitempty"`
	PipelineLayouts   map[string]PipelineLayout      `json:"pipelineLayouts,omitempty"`
	ShaderModules     map[string]ShaderModule        `json:"shaderModules,omitempty"`
	RenderPasses      map[string]RenderPass          `json:"renderPasses,omitempty"`
	ComputePipelines  map[string]ComputePipeline     `json:"computePipelines,omitempty"`
	GraphicsPipelines map[string]GraphicsPipeline    `json:"graphicsPipelines,omitempty"`
}

// NewDocument returns an empty document stamped with FormatVersion, with
// every section map ready to receive entries.
func NewDocument() *Document {
	return &Document{
		Version:           FormatVersion,
		Samplers:          map[string]Sampler{},
		SetLayouts:        map[string]DescriptorSetLayout{},
		PipelineLayouts:   map[string]PipelineLayout{},
		ShaderModules:     map[string]ShaderModule{},
		RenderPasses:      map[string]RenderPass{},
		ComputePipelines:  map[string]ComputePipeline{},
		GraphicsPipelines: map[string]GraphicsPipeline{},
	}
}

// Prune drops every section map that ended up empty, so an encoded document
// doesn't carry seven empty `{}` entries.
func (d *Document) Prune() {
	if len(d.Samplers) == 0 {
		d.Samplers = nil
	}
	if len(d.SetLayouts) == 0 {
		d.SetLayouts = nil
	}
	if len(d.PipelineLayouts) == 0 {
		d.PipelineLayouts = nil
	}
	if len(d.ShaderModules) == 0 {
		d.ShaderModules = nil
	}
	if len(d.RenderPasses) == 0 {
		d.RenderPasses = nil
	}
	if len(d.ComputePipelines) == 0 {
		d.ComputePipelines = nil
	}
	if len(d.GraphicsPipelines) == 0 {
		d.GraphicsPipelines = nil
	}
}

type Sampler struct {
	Flags                   uint32  `json:"flags"`
	MagFilter               int32   `json:"magFilter"`
	MinFilter               int32   `json:"minFilter"`
	MipmapMode              int32   `json:"mipmapMode"`
	AddressModeU            int32   `json:"addressModeU"`
	AddressModeV            int32   `json:"addressModeV"`
	AddressModeW            int32   `json:"addressModeW"`
	MipLodBias              float32 `json:"mipLodBias"`
	AnisotropyEnable        bool    `json:"anisotropyEnable"`
	MaxAnisotropy           float32 `json:"maxAnisotropy"`
	CompareEnable           bool    `json:"compareEnable"`
	CompareOp               int32   `json:"compareOp"`
	MinLod                  float32 `json:"minLod"`
	MaxLod                  float32 `json:"maxLod"`
	BorderColor             int32   `json:"borderColor"`
	UnnormalizedCoordinates bool    `json:"unnormalizedCoordinates"`
}

type DescriptorSetLayoutBinding struct {
	Binding           uint32 `json:"binding"`
	DescriptorType    int32  `json:"descriptorType"`
	DescriptorCount   uint32 `json:"descriptorCount"`
	StageFlags        uint32 `json:"stageFlags"`
	ImmutableSamplers []Ref  `json:"immutableSamplers,omitempty"`
}

type DescriptorSetLayout struct {
	Flags    uint32                       `json:"flags"`
	Bindings []DescriptorSetLayoutBinding `json:"bindings"`
}

type PushConstantRange struct {
	StageFlags uint32 `json:"stageFlags"`
	Offset     uint32 `json:"offset"`
	Size       uint32 `json:"size"`
}

type PipelineLayout struct {
	Flags              uint32              `json:"flags"`
	SetLayouts         []Ref               `json:"setLayouts"`
	PushConstantRanges []PushConstantRange `json:"pushConstantRanges,omitempty"`
}

type ShaderModule struct {
	Flags    uint32 `json:"flags"`
	CodeSize uint32 `json:"codeSize"`
	Code     []byte `json:"code"`
}

type AttachmentDescription struct {
	Flags          uint32 `json:"flags"`
	Format         int32  `json:"format"`
	Samples        uint32 `json:"samples"`
	LoadOp         int32  `json:"loadOp"`
	StoreOp        int32  `json:"storeOp"`
	StencilLoadOp  int32  `json:"stencilLoadOp"`
	StencilStoreOp int32  `json:"stencilStoreOp"`
	InitialLayout  int32  `json:"initialLayout"`
	FinalLayout    int32  `json:"finalLayout"`
}

type SubpassDependency struct {
	SrcSubpass      uint32 `json:"srcSubpass"`
	DstSubpass      uint32 `json:"dstSubpass"`
	SrcStageMask    uint32 `json:"srcStageMask"`
	DstStageMask    uint32 `json:"dstStageMask"`
	SrcAccessMask   uint32 `json:"srcAccessMask"`
	DstAccessMask   uint32 `json:"dstAccessMask"`
	DependencyFlags uint32 `json:"dependencyFlags"`
}

type AttachmentReference struct {
	Attachment uint32 `json:"attachment"`
	Layout     int32  `json:"layout"`
}

type Subpass struct {
	Flags                   uint32                 `json:"flags"`
	PipelineBindPoint       int32                  `json:"pipelineBindPoint"`
	InputAttachments        []AttachmentReference  `json:"inputAttachments,omitempty"`
	ColorAttachments        []AttachmentReference  `json:"colorAttachments,omitempty"`
	ResolveAttachments      *[]AttachmentReference `json:"resolveAttachments,omitempty"`
	DepthStencilAttachment  *AttachmentReference    `json:"depthStencilAttachment,omitempty"`
	PreserveAttachmentIndex []uint32               `json:"preserveAttachmentIndex,omitempty"`
}

type RenderPass struct {
	Flags        uint32              `json:"flags"`
	Attachments  []AttachmentDescription `json:"attachments,omitempty"`
	Dependencies []SubpassDependency `json:"dependencies,omitempty"`
	Subpasses    []Subpass           `json:"subpasses"`
}

type SpecializationMapEntry struct {
	ConstantID uint32 `json:"constantID"`
	Offset     uint32 `json:"offset"`
	Size       uint32 `json:"size"`
}

type SpecializationInfo struct {
	DataSize   uint32                   `json:"dataSize"`
	Data       []byte                   `json:"data"`
	MapEntries []SpecializationMapEntry `json:"mapEntries,omitempty"`
}

type ShaderStage struct {
	Flags          uint32              `json:"flags"`
	Stage          uint32              `json:"stage"`
	Module         Ref                 `json:"module"`
	EntryPoint     string              `json:"entryPoint"`
	Specialization *SpecializationInfo `json:"specialization,omitempty"`
}

type ComputePipeline struct {
	Flags             uint32      `json:"flags"`
	Layout            Ref         `json:"layout"`
	BasePipeline      Ref         `json:"basePipeline,omitempty"`
	BasePipelineIndex int32       `json:"basePipelineIndex"`
	Stage             ShaderStage `json:"stage"`
}

type VertexInputBinding struct {
	Binding   uint32 `json:"binding"`
	Stride    uint32 `json:"stride"`
	InputRate int32  `json:"inputRate"`
}

type VertexInputAttribute struct {
	Location uint32 `json:"location"`
	Binding  uint32 `json:"binding"`
	Format   int32  `json:"format"`
	Offset   uint32 `json:"offset"`
}

type VertexInputState struct {
	Bindings   []VertexInputBinding   `json:"bindings,omitempty"`
	Attributes []VertexInputAttribute `json:"attributes,omitempty"`
}

type InputAssemblyState struct {
	Topology               int32 `json:"topology"`
	PrimitiveRestartEnable bool  `json:"primitiveRestartEnable"`
}

type TessellationState struct {
	PatchControlPoints uint32 `json:"patchControlPoints"`
}

type Viewport struct {
	X        float32 `json:"x"`
	Y        float32 `json:"y"`
	Width    float32 `json:"width"`
	Height   float32 `json:"height"`
	MinDepth float32 `json:"minDepth"`
	MaxDepth float32 `json:"maxDepth"`
}

type Rect2D struct {
	OffsetX int32  `json:"offsetX"`
	OffsetY int32  `json:"offsetY"`
	Width   uint32 `json:"width"`
	Height  uint32 `json:"height"`
}

type ViewportState struct {
	ViewportCount uint32     `json:"viewportCount"`
	ScissorCount  uint32     `json:"scissorCount"`
	Viewports     []Viewport `json:"viewports,omitempty"`
	Scissors      []Rect2D   `json:"scissors,omitempty"`
}

type RasterizationState struct {
	DepthClampEnable        bool    `json:"depthClampEnable"`
	RasterizerDiscardEnable bool    `json:"rasterizerDiscardEnable"`
	PolygonMode             int32   `json:"polygonMode"`
	CullMode                uint32  `json:"cullMode"`
	FrontFace               int32   `json:"frontFace"`
	DepthBiasEnable         bool    `json:"depthBiasEnable"`
	DepthBiasConstantFactor float32 `json:"depthBiasConstantFactor"`
	DepthBiasClamp          float32 `json:"depthBiasClamp"`
	DepthBiasSlopeFactor    float32 `json:"depthBiasSlopeFactor"`
	LineWidth               float32 `json:"lineWidth"`
}

type MultisampleState struct {
	RasterizationSamples uint32   `json:"rasterizationSamples"`
	SampleShadingEnable  bool     `json:"sampleShadingEnable"`
	MinSampleShading     float32  `json:"minSampleShading"`
	SampleMask           []uint32 `json:"sampleMask,omitempty"`
	AlphaToCoverageEnable bool    `json:"alphaToCoverageEnable"`
	AlphaToOneEnable     bool     `json:"alphaToOneEnable"`
}

type StencilOpState struct {
	FailOp      int32  `json:"failOp"`
	PassOp      int32  `json:"passOp"`
	DepthFailOp int32  `json:"depthFailOp"`
	CompareOp   int32  `json:"compareOp"`
	CompareMask uint32 `json:"compareMask"`
	WriteMask   uint32 `json:"writeMask"`
	Reference   uint32 `json:"reference"`
}

type DepthStencilState struct {
	DepthTestEnable       bool            `json:"depthTestEnable"`
	DepthWriteEnable      bool            `json:"depthWriteEnable"`
	DepthCompareOp        int32           `json:"depthCompareOp"`
	DepthBoundsTestEnable bool            `json:"depthBoundsTestEnable"`
	StencilTestEnable     bool            `json:"stencilTestEnable"`
	Front                 StencilOpState  `json:"front"`
	Back                  StencilOpState  `json:"back"`
	MinDepthBounds        float32         `json:"minDepthBounds"`
	MaxDepthBounds        float32         `json:"maxDepthBounds"`
}

type ColorBlendAttachment struct {
	BlendEnable         bool   `json:"blendEnable"`
	SrcColorBlendFactor int32  `json:"srcColorBlendFactor"`
	DstColorBlendFactor int32  `json:"dstColorBlendFactor"`
	ColorBlendOp        int32  `json:"colorBlendOp"`
	SrcAlphaBlendFactor int32  `json:"srcAlphaBlendFactor"`
	DstAlphaBlendFactor int32  `json:"dstAlphaBlendFactor"`
	AlphaBlendOp        int32  `json:"alphaBlendOp"`
	ColorWriteMask      uint32 `json:"colorWriteMask"`
}

type ColorBlendState struct {
	LogicOpEnable  bool                   `json:"logicOpEnable"`
	LogicOp        int32                  `json:"logicOp"`
	Attachments    []ColorBlendAttachment `json:"attachments,omitempty"`
	BlendConstants [4]float32             `json:"blendConstants"`
}

type DynamicState struct {
	States []int32 `json:"states,omitempty"`
}

type GraphicsPipeline struct {
	Flags             uint32      `json:"flags"`
	Layout            Ref         `json:"layout"`
	RenderPass        Ref         `json:"renderPass"`
	Subpass           uint32      `json:"subpass"`
	BasePipeline      Ref         `json:"basePipeline,omitempty"`
	BasePipelineIndex int32       `json:"basePipelineIndex"`
	Stages            []ShaderStage `json:"stages"`

	VertexInput   *VertexInputState   `json:"vertexInput,omitempty"`
	InputAssembly *InputAssemblyState `json:"inputAssembly,omitempty"`
	Tessellation  *TessellationState  `json:"tessellation,omitempty"`
	Viewport      *ViewportState      `json:"viewport,omitempty"`
	Rasterization *RasterizationState `json:"rasterization,omitempty"`
	Multisample   *MultisampleState   `json:"multisample,omitempty"`
	DepthStencil  *DepthStencilState  `json:"depthStencil,omitempty"`
	ColorBlend    *ColorBlendState    `json:"colorBlend,omitempty"`
	Dynamic       *DynamicState       `json:"dynamic,omitempty"`
}
