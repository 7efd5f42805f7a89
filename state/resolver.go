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
)

// Resolver looks up the content hash previously assigned to a live runtime
// handle. It is implemented by the recorder's handle->hash tables; a
// descriptor's Hash method calls back into it once per reference field, in
// the fixed field order §4.3 pins for that descriptor kind. A false second
// result means the handle was never registered — a fatal
// ErrUnregisteredHandle at the call site.
type Resolver interface {
	Sampler(vk.Sampler) (hash.Hash, bool)
	DescriptorSetLayout(vk.DescriptorSetLayout) (hash.Hash, bool)
	PipelineLayout(vk.PipelineLayout) (hash.Hash, bool)
	ShaderModule(vk.ShaderModule) (hash.Hash, bool)
	RenderPass(vk.RenderPass) (hash.Hash, bool)
	Pipeline(vk.Pipeline) (hash.Hash, bool)
}
