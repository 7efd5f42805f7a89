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

// ComputePipeline is the creation-time state of a VkPipeline created from a
// VkComputePipelineCreateInfo. BasePipelineIndex is signed, per spec.md's
// Open Question resolution: the Vulkan API defines it as int32, even though
// the original C++ source's JSON layer parsed it unsigned.
type ComputePipeline struct {
	Flags             vk.PipelineCreateFlags
	Layout            vk.PipelineLayout
	BasePipeline      vk.Pipeline // vk.NullHandle if absent
	BasePipelineIndex int32
	Stage             ShaderStage
}

// ComputePipelineFromVK deep-copies a VkComputePipelineCreateInfo.
func ComputePipelineFromVK(a *arena.Arena, info *vk.ComputePipelineCreateInfo) (*ComputePipeline, error) {
	if info.PNext != nil {
		return nil, errUnsupportedExtension("computePipeline")
	}
	stage, err := shaderStageFromVK(a, &info.Stage)
	if err != nil {
		return nil, err
	}
	p := arena.Allocate[ComputePipeline](a)
	*p = ComputePipeline{
		Flags:             info.Flags,
		Layout:            info.Layout,
		BasePipeline:      info.BasePipelineHandle,
		BasePipelineIndex: info.BasePipelineIndex,
		Stage:             stage,
	}
	return p, nil
}

// Hash feeds: layout hash, flags, base-pipeline hash + base-index (or
// u32(0) if absent), then the shader stage (module hash, entry-point
// string, stage flags, stage bits, specialization info or u32(0)).
func (p *ComputePipeline) Hash(r Resolver) (hash.Hash, error) {
	h := hash.New()
	lh, ok := r.PipelineLayout(p.Layout)
	if !ok {
		return 0, errUnregisteredHandle("computePipeline.layout")
	}
	h.U64(uint64(lh))
	h.U32(uint32(p.Flags))
	if p.BasePipeline == vk.NullHandle {
		h.U32(0)
	} else {
		bh, ok := r.Pipeline(p.BasePipeline)
		if !ok {
			return 0, errUnregisteredHandle("computePipeline.basePipeline")
		}
		h.U64(uint64(bh))
		h.S32(p.BasePipelineIndex)
	}
	if err := hashShaderStage(h, r, &p.Stage); err != nil {
		return 0, err
	}
	return h.Sum(), nil
}

// Kind identifies this descriptor's entity type.
func (p *ComputePipeline) Kind() Kind { return KindComputePipeline }

// Remap rewrites layout, base-pipeline and shader-module handles to content
// hashes in place, per §4.5's remapping targets for compute pipelines.
func (p *ComputePipeline) Remap(r Resolver) error {
	lh, ok := r.PipelineLayout(p.Layout)
	if !ok {
		return errUnregisteredHandle("computePipeline.layout")
	}
	p.Layout = vk.PipelineLayout(lh)
	if p.BasePipeline != vk.NullHandle {
		bh, ok := r.Pipeline(p.BasePipeline)
		if !ok {
			return errUnregisteredHandle("computePipeline.basePipeline")
		}
		p.BasePipeline = vk.Pipeline(bh)
	}
	return remapShaderStage(r, &p.Stage)
}
