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

// DescriptorSetLayoutBinding is one binding slot of a descriptor set layout.
// ImmutableSamplers holds live vk.Sampler handles until the worker's
// handle-remapping pass (§4.5) rewrites them in place to content hashes.
type DescriptorSetLayoutBinding struct {
	Binding           uint32
	DescriptorType    vk.DescriptorType
	DescriptorCount   uint32
	StageFlags        vk.ShaderStageFlags
	ImmutableSamplers []vk.Sampler // nil if pImmutableSamplers was absent
}

// DescriptorSetLayout is the creation-time state of a VkDescriptorSetLayout.
type DescriptorSetLayout struct {
	Flags    vk.DescriptorSetLayoutCreateFlags
	Bindings []DescriptorSetLayoutBinding
}

// DescriptorSetLayoutFromVK deep-copies a VkDescriptorSetLayoutCreateInfo
// into the arena, including each binding's immutable-sampler array.
func DescriptorSetLayoutFromVK(a *arena.Arena, info *vk.DescriptorSetLayoutCreateInfo) (*DescriptorSetLayout, error) {
	if info.PNext != nil {
		return nil, errUnsupportedExtension("descriptorSetLayout")
	}
	bindings := make([]DescriptorSetLayoutBinding, len(info.PBindings))
	for i, b := range info.PBindings {
		if b.PImmutableSamplers != nil {
			bindings[i].ImmutableSamplers = arena.Slice(a, b.PImmutableSamplers)
		}
		bindings[i].Binding = b.Binding
		bindings[i].DescriptorType = b.DescriptorType
		bindings[i].DescriptorCount = b.DescriptorCount
		bindings[i].StageFlags = b.StageFlags
	}
	d := arena.Allocate[DescriptorSetLayout](a)
	*d = DescriptorSetLayout{
		Flags:    info.Flags,
		Bindings: arena.Slice(a, bindings),
	}
	return d, nil
}

// usesImmutableSamplers reports whether a binding's descriptor type is one
// of the two kinds for which immutable samplers are meaningful, per §4.3.
func usesImmutableSamplers(t vk.DescriptorType) bool {
	return t == vk.DescriptorTypeSampler || t == vk.DescriptorTypeCombinedImageSampler
}

// Hash feeds bindingCount, flags, then each binding's
// {binding, descriptorCount, descriptorType, stageFlags}; if immutable
// samplers are present *and* the descriptor type is SAMPLER or
// COMBINED_IMAGE_SAMPLER, each referenced sampler's hash is fed too.
func (d *DescriptorSetLayout) Hash(r Resolver) (hash.Hash, error) {
	h := hash.New()
	h.U32(uint32(len(d.Bindings)))
	h.U32(uint32(d.Flags))
	for _, b := range d.Bindings {
		h.U32(b.Binding)
		h.U32(b.DescriptorCount)
		h.U32(uint32(b.DescriptorType))
		h.U32(uint32(b.StageFlags))
		if b.ImmutableSamplers != nil && usesImmutableSamplers(b.DescriptorType) {
			for _, s := range b.ImmutableSamplers {
				sh, ok := r.Sampler(s)
				if !ok {
					return 0, errUnregisteredHandle("descriptorSetLayout.binding.immutableSampler")
				}
				h.U64(uint64(sh))
			}
		}
	}
	return h.Sum(), nil
}

// Kind identifies this descriptor's entity type.
func (d *DescriptorSetLayout) Kind() Kind { return KindDescriptorSetLayout }

// Remap rewrites every contained sampler handle to the opaque,
// bit-equal-to-hash sentinel value, per §4.5's handle-remapping pass.
func (d *DescriptorSetLayout) Remap(r Resolver) error {
	for bi := range d.Bindings {
		b := &d.Bindings[bi]
		if b.ImmutableSamplers == nil || !usesImmutableSamplers(b.DescriptorType) {
			continue
		}
		for i, s := range b.ImmutableSamplers {
			sh, ok := r.Sampler(s)
			if !ok {
				return errUnregisteredHandle("descriptorSetLayout.binding.immutableSampler")
			}
			b.ImmutableSamplers[i] = vk.Sampler(sh)
		}
	}
	return nil
}
