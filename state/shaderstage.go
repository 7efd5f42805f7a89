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

// SpecializationMapEntry mirrors VkSpecializationMapEntry.
type SpecializationMapEntry struct {
	ConstantID uint32
	Offset     uint32
	Size       uint
}

// SpecializationInfo mirrors VkSpecializationInfo: a data blob plus the map
// entries that carve constant values out of it.
type SpecializationInfo struct {
	Data       []byte
	MapEntries []SpecializationMapEntry
}

// ShaderStage is the creation-time state of one
// VkPipelineShaderStageCreateInfo, shared between compute and graphics
// pipelines. Module holds a live vk.ShaderModule handle until Remap
// rewrites it to a content hash.
type ShaderStage struct {
	Flags              vk.PipelineShaderStageCreateFlags
	Stage              vk.ShaderStageFlagBits
	Module             vk.ShaderModule
	EntryPoint         string
	Specialization     *SpecializationInfo // nil if pSpecializationInfo was absent
}

func specializationFromVK(a *arena.Arena, info *vk.SpecializationInfo) *SpecializationInfo {
	if info == nil {
		return nil
	}
	entries := make([]SpecializationMapEntry, len(info.PMapEntries))
	for i, e := range info.PMapEntries {
		entries[i] = SpecializationMapEntry{ConstantID: e.ConstantID, Offset: e.Offset, Size: uint(e.Size)}
	}
	s := arena.Allocate[SpecializationInfo](a)
	*s = SpecializationInfo{
		Data:       arena.Bytes(a, info.PData),
		MapEntries: arena.Slice(a, entries),
	}
	return s
}

func shaderStageFromVK(a *arena.Arena, info *vk.PipelineShaderStageCreateInfo) (ShaderStage, error) {
	if info.PNext != nil {
		return ShaderStage{}, errUnsupportedExtension("shaderStage")
	}
	return ShaderStage{
		Flags:          info.Flags,
		Stage:          info.Stage,
		Module:         info.Module,
		EntryPoint:     arena.String(a, info.PName),
		Specialization: specializationFromVK(a, info.PSpecializationInfo),
	}, nil
}

// hashShaderStage feeds the module hash, the entry-point string, the stage
// flags, the stage bits, then the specialization info (or u32(0) if
// absent), matching the field order pinned for both pipeline kinds in
// §4.3.
func hashShaderStage(h *hash.Hasher, r Resolver, st *ShaderStage) error {
	mh, ok := r.ShaderModule(st.Module)
	if !ok {
		return errUnregisteredHandle("shaderStage.module")
	}
	h.U64(uint64(mh))
	h.String(st.EntryPoint)
	h.U32(uint32(st.Flags))
	h.U32(uint32(st.Stage))
	if st.Specialization == nil {
		h.U32(0)
		return nil
	}
	h.Data(st.Specialization.Data)
	h.U32(uint32(len(st.Specialization.MapEntries)))
	for _, e := range st.Specialization.MapEntries {
		h.U32(e.ConstantID)
		h.U32(e.Offset)
		h.U32(uint32(e.Size))
	}
	return nil
}

func remapShaderStage(r Resolver, st *ShaderStage) error {
	mh, ok := r.ShaderModule(st.Module)
	if !ok {
		return errUnregisteredHandle("shaderStage.module")
	}
	st.Module = vk.ShaderModule(mh)
	return nil
}
