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
	"context"

	vk "github.com/vulkan-go/vulkan"
	"go.uber.org/zap"

	"github.com/DuckSoft/Fossilize/core/hash"
	"github.com/DuckSoft/Fossilize/internal/logctx"
	"github.com/DuckSoft/Fossilize/state"
)

// workItem is one queued record_* call: a tagged descriptor payload plus
// the live runtime handle it arrived under. shutdown is the sentinel
// record_end enqueues — a typed zero value sent on the channel itself,
// since the channel *is* the queue here (see DESIGN.md).
type workItem struct {
	descriptor state.Descriptor
	handle     any
	shutdown   bool
}

func loggerFrom(ctx context.Context) *zap.Logger {
	return logctx.From(ctx)
}

// runWorker is the single background consumer: it pops items strictly
// FIFO (the channel's own ordering guarantee), hashes, deduplicates,
// remaps, and — for shader modules and pipelines — fans out a closure
// write. A dispatch error is logged and the worker continues (§4.5).
func (r *Recorder) runWorker() {
	defer r.workerWG.Done()
	ctx := r.withLogger(context.Background())
	for item := range r.queue {
		if item.shutdown {
			return
		}
		r.dispatch(ctx, item)
	}
}

func (r *Recorder) dispatch(ctx context.Context, item workItem) {
	log := loggerFrom(ctx)
	h, err := item.descriptor.Hash(r.tables)
	if err != nil {
		log.Warn("failed to hash recorded descriptor", zap.Error(err))
		return
	}

	// Remap before store: store publishes the descriptor pointer for other
	// goroutines' lookups (e.g. as a base pipeline or closure reference), so
	// a descriptor that fails remap partway through must never be reachable
	// there half-mutated. Skip the remap entirely for a known hash — it was
	// already remapped the first time this content was seen.
	if !r.known(item.descriptor, h) {
		if err := item.descriptor.Remap(r.tables); err != nil {
			log.Warn("failed to remap recorded descriptor", zap.Error(err))
			return
		}
	}

	isNew, err := r.store(item, h)
	if err != nil {
		log.Warn("failed to store recorded descriptor", zap.Error(err))
		return
	}
	if !isNew {
		return
	}

	switch item.descriptor.Kind() {
	case state.KindShaderModule, state.KindComputePipeline, state.KindGraphicsPipeline:
		d := item.descriptor
		r.closures.Go(func() error {
			if err := r.writeClosure(h, d); err != nil {
				log.Warn("failed to write closure", zap.Stringer("hash", h), zap.Error(err))
				return err
			}
			return nil
		})
	}
}

// known reports whether a descriptor with this content hash has already
// been stored, without mutating anything — used to decide whether remap is
// necessary before store runs.
func (r *Recorder) known(d state.Descriptor, h hash.Hash) bool {
	switch d.(type) {
	case *state.Sampler:
		_, ok := r.tables.samplers.get(h)
		return ok
	case *state.DescriptorSetLayout:
		_, ok := r.tables.setLayouts.get(h)
		return ok
	case *state.PipelineLayout:
		_, ok := r.tables.layouts.get(h)
		return ok
	case *state.ShaderModule:
		_, ok := r.tables.modules.get(h)
		return ok
	case *state.RenderPass:
		_, ok := r.tables.renderPass.get(h)
		return ok
	case *state.ComputePipeline, *state.GraphicsPipeline:
		_, ok := r.tables.pipelines.get(h)
		return ok
	default:
		return false
	}
}

// store inserts the descriptor into the table matching its own handle type
// and reports whether this call was the one that actually stored it (the
// deduplication decision the rest of dispatch hinges on).
func (r *Recorder) store(item workItem, h hash.Hash) (bool, error) {
	switch d := item.descriptor.(type) {
	case *state.Sampler:
		return r.tables.samplers.insert(item.handle.(vk.Sampler), h, d), nil
	case *state.DescriptorSetLayout:
		return r.tables.setLayouts.insert(item.handle.(vk.DescriptorSetLayout), h, d), nil
	case *state.PipelineLayout:
		return r.tables.layouts.insert(item.handle.(vk.PipelineLayout), h, d), nil
	case *state.ShaderModule:
		return r.tables.modules.insert(item.handle.(vk.ShaderModule), h, d), nil
	case *state.RenderPass:
		return r.tables.renderPass.insert(item.handle.(vk.RenderPass), h, d), nil
	case *state.ComputePipeline:
		return r.tables.pipelines.insert(item.handle.(vk.Pipeline), h, d), nil
	case *state.GraphicsPipeline:
		return r.tables.pipelines.insert(item.handle.(vk.Pipeline), h, d), nil
	default:
		return false, errUnknownDescriptorKind
	}
}
