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
	"encoding/binary"

	vk "github.com/vulkan-go/vulkan"

	"github.com/DuckSoft/Fossilize/core/hash"
	"github.com/DuckSoft/Fossilize/core/memory/arena"
)

// ShaderModule is the creation-time state of a VkShaderModule. Code is the
// raw SPIR-V word stream as little-endian bytes, cut to CodeSize bytes
// (Code may therefore end mid-word if CodeSize is not a multiple of 4,
// which is preserved rather than papered over). If CodeSize exceeds the
// words supplied, Code holds only those words.
type ShaderModule struct {
	Flags    vk.ShaderModuleCreateFlags
	CodeSize uint
	Code     []byte // CodeSize raw bytes of the 32-bit-word code blob
}

// ShaderModuleFromVK deep-copies a VkShaderModuleCreateInfo's code blob.
// PCode is a []uint32 in the vulkan-go binding; it is re-packed to raw
// little-endian bytes so the stored form matches what §6 puts on disk.
func ShaderModuleFromVK(a *arena.Arena, info *vk.ShaderModuleCreateInfo) (*ShaderModule, error) {
	if info.PNext != nil {
		return nil, errUnsupportedExtension("shaderModule")
	}
	raw := make([]byte, len(info.PCode)*4)
	for i, w := range info.PCode {
		binary.LittleEndian.PutUint32(raw[i*4:], w)
	}
	if n := int(info.CodeSize); n < len(raw) {
		raw = raw[:n]
	}
	m := arena.Allocate[ShaderModule](a)
	*m = ShaderModule{
		Flags:    info.Flags,
		CodeSize: uint(info.CodeSize),
		Code:     arena.Bytes(a, raw),
	}
	return m, nil
}

// Hash feeds the code bytes, then flags.
func (m *ShaderModule) Hash(_ Resolver) (hash.Hash, error) {
	h := hash.New()
	h.Data(m.Code)
	h.U32(uint32(m.Flags))
	return h.Sum(), nil
}

// Kind identifies this descriptor's entity type.
func (m *ShaderModule) Kind() Kind { return KindShaderModule }

// Remap is a no-op: a shader module has no reference fields.
func (m *ShaderModule) Remap(Resolver) error { return nil }
