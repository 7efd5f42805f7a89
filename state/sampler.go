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

// Sampler is the creation-time state of a VkSampler. It has no reference
// fields: its hash depends only on its own enum and float fields.
type Sampler struct {
	Flags                   vk.SamplerCreateFlags
	MagFilter               vk.Filter
	MinFilter               vk.Filter
	MipmapMode              vk.SamplerMipmapMode
	AddressModeU            vk.SamplerAddressMode
	AddressModeV            vk.SamplerAddressMode
	AddressModeW            vk.SamplerAddressMode
	MipLodBias              float32
	AnisotropyEnable        bool
	MaxAnisotropy           float32
	CompareEnable           bool
	CompareOp               vk.CompareOp
	MinLod                  float32
	MaxLod                  float32
	BorderColor             vk.BorderColor
	UnnormalizedCoordinates bool
}

// SamplerFromVK deep-copies a VkSamplerCreateInfo. Samplers carry no arrays
// and no pNext-able sub-state, so the arena is used only to give the
// returned value a single, uniform owner alongside every other descriptor.
func SamplerFromVK(a *arena.Arena, info *vk.SamplerCreateInfo) (*Sampler, error) {
	if info.PNext != nil {
		return nil, errUnsupportedExtension("sampler")
	}
	s := arena.Allocate[Sampler](a)
	*s = Sampler{
		Flags:                   info.Flags,
		MagFilter:               info.MagFilter,
		MinFilter:               info.MinFilter,
		MipmapMode:              info.MipmapMode,
		AddressModeU:            info.AddressModeU,
		AddressModeV:            info.AddressModeV,
		AddressModeW:            info.AddressModeW,
		MipLodBias:              info.MipLodBias,
		AnisotropyEnable:        info.AnisotropyEnable != 0,
		MaxAnisotropy:           info.MaxAnisotropy,
		CompareEnable:           info.CompareEnable != 0,
		CompareOp:               info.CompareOp,
		MinLod:                  info.MinLod,
		MaxLod:                  info.MaxLod,
		BorderColor:             info.BorderColor,
		UnnormalizedCoordinates: info.UnnormalizedCoordinates != 0,
	}
	return s, nil
}

// Hash feeds the fields in the exact source order pinned by §4.3: flags,
// maxAnisotropy, mipLodBias, minLod, maxLod, minFilter, magFilter,
// mipmapMode, compareEnable, compareOp, anisotropyEnable, the three address
// modes, borderColor, unnormalizedCoordinates.
func (s *Sampler) Hash(_ Resolver) (hash.Hash, error) {
	h := hash.New()
	h.U32(uint32(s.Flags))
	h.Float(s.MaxAnisotropy)
	h.Float(s.MipLodBias)
	h.Float(s.MinLod)
	h.Float(s.MaxLod)
	h.U32(uint32(s.MinFilter))
	h.U32(uint32(s.MagFilter))
	h.U32(uint32(s.MipmapMode))
	h.Bool(s.CompareEnable)
	h.U32(uint32(s.CompareOp))
	h.Bool(s.AnisotropyEnable)
	h.U32(uint32(s.AddressModeU))
	h.U32(uint32(s.AddressModeV))
	h.U32(uint32(s.AddressModeW))
	h.U32(uint32(s.BorderColor))
	h.Bool(s.UnnormalizedCoordinates)
	return h.Sum(), nil
}

// Kind identifies this descriptor's entity type.
func (s *Sampler) Kind() Kind { return KindSampler }
