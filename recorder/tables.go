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
	"sync"

	vk "github.com/vulkan-go/vulkan"

	"github.com/DuckSoft/Fossilize/core/hash"
	"github.com/DuckSoft/Fossilize/state"
)

// table is a handle->hash map plus a hash->descriptor store for one
// descriptor kind, both guarded by a single RWMutex per table. The worker goroutine is
// the sole writer (Lock); host threads calling get_hash_for_* or hashing a
// descriptor that references this kind take the RLock path. This is the
// resolution spec.md §5 leaves open ("reads ... safe against concurrent
// worker writes") for this port: per-kind RWMutexes rather than funnelling
// every host-side hash lookup through the worker itself.
type table[H comparable, D any] struct {
	mu           sync.RWMutex
	handleToHash map[H]hash.Hash
	byHash       map[hash.Hash]D
}

func newTable[H comparable, D any]() *table[H, D] {
	return &table[H, D]{
		handleToHash: make(map[H]hash.Hash),
		byHash:       make(map[hash.Hash]D),
	}
}

func (t *table[H, D]) lookup(handle H) (hash.Hash, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	h, ok := t.handleToHash[handle]
	return h, ok
}

func (t *table[H, D]) get(h hash.Hash) (D, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	d, ok := t.byHash[h]
	return d, ok
}

// insert records handle->h unconditionally (so every submitted handle maps
// to its content's hash, even on a duplicate) and stores desc under h only
// the first time that hash is seen. It reports whether this call was the
// one that actually stored the descriptor.
func (t *table[H, D]) insert(handle H, h hash.Hash, desc D) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handleToHash[handle] = h
	if _, exists := t.byHash[h]; exists {
		return false
	}
	t.byHash[h] = desc
	return true
}

func (t *table[H, D]) size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byHash)
}

// all returns a snapshot copy of the hash->descriptor store, used by
// Serialize to dump the entire current contents as one document.
func (t *table[H, D]) all() map[hash.Hash]D {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[hash.Hash]D, len(t.byHash))
	for k, v := range t.byHash {
		out[k] = v
	}
	return out
}

// tables bundles the six stores (compute and graphics pipelines share the
// pipelines table, one vk.Pipeline handle namespace) and implements
// state.Resolver over them.
type tables struct {
	samplers   *table[vk.Sampler, *state.Sampler]
	setLayouts *table[vk.DescriptorSetLayout, *state.DescriptorSetLayout]
	layouts    *table[vk.PipelineLayout, *state.PipelineLayout]
	modules    *table[vk.ShaderModule, *state.ShaderModule]
	renderPass *table[vk.RenderPass, *state.RenderPass]
	pipelines  *table[vk.Pipeline, state.Descriptor]
}

func newTables() *tables {
	return &tables{
		samplers:   newTable[vk.Sampler, *state.Sampler](),
		setLayouts: newTable[vk.DescriptorSetLayout, *state.DescriptorSetLayout](),
		layouts:    newTable[vk.PipelineLayout, *state.PipelineLayout](),
		modules:    newTable[vk.ShaderModule, *state.ShaderModule](),
		renderPass: newTable[vk.RenderPass, *state.RenderPass](),
		pipelines:  newTable[vk.Pipeline, state.Descriptor](),
	}
}

func (t *tables) Sampler(h vk.Sampler) (hash.Hash, bool)               { return t.samplers.lookup(h) }
func (t *tables) DescriptorSetLayout(h vk.DescriptorSetLayout) (hash.Hash, bool) {
	return t.setLayouts.lookup(h)
}
func (t *tables) PipelineLayout(h vk.PipelineLayout) (hash.Hash, bool) { return t.layouts.lookup(h) }
func (t *tables) ShaderModule(h vk.ShaderModule) (hash.Hash, bool)     { return t.modules.lookup(h) }
func (t *tables) RenderPass(h vk.RenderPass) (hash.Hash, bool)         { return t.renderPass.lookup(h) }
func (t *tables) Pipeline(h vk.Pipeline) (hash.Hash, bool)             { return t.pipelines.lookup(h) }

var _ state.Resolver = (*tables)(nil)
