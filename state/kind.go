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

// Package state holds the owned, arena-backed representation of every
// recorded descriptor kind together with their canonical content hash
// functions. A descriptor here is a deep, self-contained copy of a Vulkan
// creation struct with every inter-object handle left exactly as the
// runtime gave it to us until its Remap method rewrites those handles in
// place to the referents' content hashes. The handle->hash lookups come
// from a Resolver, supplied by whoever owns the handle->hash tables (the
// recorder package).
package state

// Kind tags a descriptor's entity type, matching the RecordedType enum the
// original Fossilize source carries on every queued record. Every
// Descriptor reports it through Kind(); the recorder's worker uses it to
// decide which kinds get a closure write. Queued work items do not store it
// separately, and the on-disk document's section maps are chosen by the
// descriptor's concrete type, not by Kind.
type Kind int

const (
	KindSampler Kind = iota + 1
	KindDescriptorSetLayout
	KindPipelineLayout
	KindShaderModule
	KindRenderPass
	KindComputePipeline
	KindGraphicsPipeline
)

// String returns the lower camel-case singular name of the kind; the
// document's section names ("samplers", "setLayouts", and so on, §6) are
// the plural forms of these.
func (k Kind) String() string {
	switch k {
	case KindSampler:
		return "sampler"
	case KindDescriptorSetLayout:
		return "setLayout"
	case KindPipelineLayout:
		return "pipelineLayout"
	case KindShaderModule:
		return "shaderModule"
	case KindRenderPass:
		return "renderPass"
	case KindComputePipeline:
		return "computePipeline"
	case KindGraphicsPipeline:
		return "graphicsPipeline"
	default:
		return "unknown"
	}
}
