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

// PushConstantRange mirrors VkPushConstantRange.
type PushConstantRange struct {
	StageFlags vk.ShaderStageFlags
	Offset     uint32
	Size       uint32
}

// PipelineLayout is the creation-time state of a VkPipelineLayout.
// SetLayouts holds live vk.DescriptorSetLayout handles (a zero entry
// represents a null set layout slot) until Remap rewrites them to hashes.
type PipelineLayout struct {
	Flags             vk.PipelineLayoutCreateFlags
	SetLayouts        []vk.DescriptorSetLayout
	PushConstantRange []PushConstantRange
}

// PipelineLayoutFromVK deep-copies a VkPipelineLayoutCreateInfo.
func PipelineLayoutFromVK(a *arena.Arena, info *vk.PipelineLayoutCreateInfo) (*PipelineLayout, error) {
	if info.PNext != nil {
		return nil, errUnsupportedExtension("pipelineLayout")
	}
	ranges := make([]PushConstantRange, len(info.PPushConstantRanges))
	for i, pr := range info.PPushConstantRanges {
		ranges[i] = PushConstantRange{StageFlags: pr.StageFlags, Offset: pr.Offset, Size: pr.Size}
	}
	p := arena.Allocate[PipelineLayout](a)
	*p = PipelineLayout{
		Flags:             info.Flags,
		SetLayouts:        arena.Slice(a, info.PSetLayouts),
		PushConstantRange: arena.Slice(a, ranges),
	}
	return p, nil
}

// Hash feeds setLayoutCount, then each set-layout's hash (or u32(0) for a
// null slot), pushConstantRangeCount, then each range, then flags.
func (p *PipelineLayout) Hash(r Resolver) (hash.Hash, error) {
	h := hash.New()
	h.U32(uint32(len(p.SetLayouts)))
	for _, sl := range p.SetLayouts {
		if sl == vk.NullHandle {
			h.U32(0)
			continue
		}
		slh, ok := r.DescriptorSetLayout(sl)
		if !ok {
			return 0, errUnregisteredHandle("pipelineLayout.setLayout")
		}
		h.U64(uint64(slh))
	}
	h.U32(uint32(len(p.PushConstantRange)))
	for _, pr := range p.PushConstantRange {
		h.U32(uint32(pr.StageFlags))
		h.U32(pr.Offset)
		h.U32(pr.Size)
	}
	h.U32(uint32(p.Flags))
	return h.Sum(), nil
}

// Kind identifies this descriptor's entity type.
func (p *PipelineLayout) Kind() Kind { return KindPipelineLayout }

// Remap rewrites each set-layout handle to its content hash in place.
func (p *PipelineLayout) Remap(r Resolver) error {
	for i, sl := range p.SetLayouts {
		if sl == vk.NullHandle {
			continue
		}
		slh, ok := r.DescriptorSetLayout(sl)
		if !ok {
			return errUnregisteredHandle("pipelineLayout.setLayout")
		}
		p.SetLayouts[i] = vk.DescriptorSetLayout(slh)
	}
	return nil
}
