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

package recorder

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/DuckSoft/Fossilize/core/hash"
	"github.com/DuckSoft/Fossilize/state"
)

// enqueue deep-copies happen under the arena mutex (the arena itself is
// not thread-safe, §5), then the copy is pushed onto the queue channel.
// record_* never waits on the worker — only, briefly, on a full channel.
func (r *Recorder) enqueue(handle any, build func(*Recorder) (state.Descriptor, error)) error {
	r.arenaMu.Lock()
	d, err := build(r)
	r.arenaMu.Unlock()
	if err != nil {
		return err
	}
	r.queue <- workItem{descriptor: d, handle: handle}
	return nil
}

// RecordSampler deep-copies and enqueues a VkSamplerCreateInfo.
func (r *Recorder) RecordSampler(handle vk.Sampler, info *vk.SamplerCreateInfo) error {
	return r.enqueue(handle, func(r *Recorder) (state.Descriptor, error) {
		return state.SamplerFromVK(r.arena, info)
	})
}

// RecordDescriptorSetLayout deep-copies and enqueues a
// VkDescriptorSetLayoutCreateInfo.
func (r *Recorder) RecordDescriptorSetLayout(handle vk.DescriptorSetLayout, info *vk.DescriptorSetLayoutCreateInfo) error {
	return r.enqueue(handle, func(r *Recorder) (state.Descriptor, error) {
		return state.DescriptorSetLayoutFromVK(r.arena, info)
	})
}

// RecordPipelineLayout deep-copies and enqueues a VkPipelineLayoutCreateInfo.
func (r *Recorder) RecordPipelineLayout(handle vk.PipelineLayout, info *vk.PipelineLayoutCreateInfo) error {
	return r.enqueue(handle, func(r *Recorder) (state.Descriptor, error) {
		return state.PipelineLayoutFromVK(r.arena, info)
	})
}

// RecordShaderModule deep-copies and enqueues a VkShaderModuleCreateInfo.
func (r *Recorder) RecordShaderModule(handle vk.ShaderModule, info *vk.ShaderModuleCreateInfo) error {
	return r.enqueue(handle, func(r *Recorder) (state.Descriptor, error) {
		return state.ShaderModuleFromVK(r.arena, info)
	})
}

// RecordRenderPass deep-copies and enqueues a VkRenderPassCreateInfo.
func (r *Recorder) RecordRenderPass(handle vk.RenderPass, info *vk.RenderPassCreateInfo) error {
	return r.enqueue(handle, func(r *Recorder) (state.Descriptor, error) {
		return state.RenderPassFromVK(r.arena, info)
	})
}

// RecordComputePipeline deep-copies and enqueues a
// VkComputePipelineCreateInfo.
func (r *Recorder) RecordComputePipeline(handle vk.Pipeline, info *vk.ComputePipelineCreateInfo) error {
	return r.enqueue(handle, func(r *Recorder) (state.Descriptor, error) {
		return state.ComputePipelineFromVK(r.arena, info)
	})
}

// RecordGraphicsPipeline deep-copies and enqueues a
// VkGraphicsPipelineCreateInfo.
func (r *Recorder) RecordGraphicsPipeline(handle vk.Pipeline, info *vk.GraphicsPipelineCreateInfo) error {
	return r.enqueue(handle, func(r *Recorder) (state.Descriptor, error) {
		return state.GraphicsPipelineFromVK(r.arena, info)
	})
}

// GetHashForSampler returns the content hash previously assigned to handle.
func (r *Recorder) GetHashForSampler(handle vk.Sampler) (hash.Hash, error) {
	h, ok := r.tables.Sampler(handle)
	if !ok {
		return 0, errNotFound("sampler")
	}
	return h, nil
}

// GetHashForDescriptorSetLayout returns the content hash previously
// assigned to handle.
func (r *Recorder) GetHashForDescriptorSetLayout(handle vk.DescriptorSetLayout) (hash.Hash, error) {
	h, ok := r.tables.DescriptorSetLayout(handle)
	if !ok {
		return 0, errNotFound("descriptorSetLayout")
	}
	return h, nil
}

// GetHashForPipelineLayout returns the content hash previously assigned to
// handle.
func (r *Recorder) GetHashForPipelineLayout(handle vk.PipelineLayout) (hash.Hash, error) {
	h, ok := r.tables.PipelineLayout(handle)
	if !ok {
		return 0, errNotFound("pipelineLayout")
	}
	return h, nil
}

// GetHashForShaderModule returns the content hash previously assigned to
// handle.
func (r *Recorder) GetHashForShaderModule(handle vk.ShaderModule) (hash.Hash, error) {
	h, ok := r.tables.ShaderModule(handle)
	if !ok {
		return 0, errNotFound("shaderModule")
	}
	return h, nil
}

// GetHashForRenderPass returns the content hash previously assigned to
// handle.
func (r *Recorder) GetHashForRenderPass(handle vk.RenderPass) (hash.Hash, error) {
	h, ok := r.tables.RenderPass(handle)
	if !ok {
		return 0, errNotFound("renderPass")
	}
	return h, nil
}

// GetHashForPipeline returns the content hash previously assigned to
// handle (compute or graphics).
func (r *Recorder) GetHashForPipeline(handle vk.Pipeline) (hash.Hash, error) {
	h, ok := r.tables.Pipeline(handle)
	if !ok {
		return 0, errNotFound("pipeline")
	}
	return h, nil
}
