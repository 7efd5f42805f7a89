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

package replay

import (
	"github.com/DuckSoft/Fossilize/core/hash"
	"github.com/DuckSoft/Fossilize/internal/fzerr"
	"github.com/DuckSoft/Fossilize/wire"
)

// replayComputePipelines handles the computePipelines section. A pipeline's
// layout must already be resolved (pipelineLayouts replays earlier in the
// fixed order); its base pipeline and stage module are resolved optimistically
// against what's already in the table, falling back to the resolver only when
// the reference is genuinely missing (§4.6's "optimistic, then resolve").
func (rp *Replayer) replayComputePipelines(doc *wire.Document) error {
	rp.creator.SetNumComputePipelines(len(doc.ComputePipelines))
	for key, p := range doc.ComputePipelines {
		h, err := hash.Parse(key)
		if err != nil {
			return fzerr.Wrap(fzerr.ErrParse, "computePipelines key %q: %v", key, err)
		}
		if _, ok := rp.pipelines[h]; ok {
			continue
		}
		layout, ok := rp.layouts[p.Layout]
		if !ok {
			return fzerr.Wrap(fzerr.ErrUnresolvedReference, "computePipeline %s: layout %s not created", h, p.Layout)
		}
		module, err := rp.resolveModule(doc, p.Stage.Module)
		if err != nil {
			return err
		}
		basePipeline, err := rp.resolveBasePipeline(doc, p.BasePipeline)
		if err != nil {
			return err
		}
		handle, err := rp.creator.EnqueueCreateComputePipeline(h, p, layout, module, basePipeline)
		if err != nil {
			return fzerr.Wrap(fzerr.ErrCreatorRejection, "computePipeline %s: %v", h, err)
		}
		rp.pipelines[h] = handle
	}
	return rp.creator.WaitEnqueue()
}

// replayGraphicsPipelines handles the graphicsPipelines section, the same
// way as compute pipelines but with a render pass reference and multiple
// stage modules.
func (rp *Replayer) replayGraphicsPipelines(doc *wire.Document) error {
	rp.creator.SetNumGraphicsPipelines(len(doc.GraphicsPipelines))
	for key, p := range doc.GraphicsPipelines {
		h, err := hash.Parse(key)
		if err != nil {
			return fzerr.Wrap(fzerr.ErrParse, "graphicsPipelines key %q: %v", key, err)
		}
		if _, ok := rp.pipelines[h]; ok {
			continue
		}
		layout, ok := rp.layouts[p.Layout]
		if !ok {
			return fzerr.Wrap(fzerr.ErrUnresolvedReference, "graphicsPipeline %s: layout %s not created", h, p.Layout)
		}
		renderPass, ok := rp.passes[p.RenderPass]
		if !ok {
			return fzerr.Wrap(fzerr.ErrUnresolvedReference, "graphicsPipeline %s: renderPass %s not created", h, p.RenderPass)
		}
		stageModules := make([]Handle, len(p.Stages))
		for i, st := range p.Stages {
			m, err := rp.resolveModule(doc, st.Module)
			if err != nil {
				return err
			}
			stageModules[i] = m
		}
		basePipeline, err := rp.resolveBasePipeline(doc, p.BasePipeline)
		if err != nil {
			return err
		}
		handle, err := rp.creator.EnqueueCreateGraphicsPipeline(h, p, layout, renderPass, stageModules, basePipeline)
		if err != nil {
			return fzerr.Wrap(fzerr.ErrCreatorRejection, "graphicsPipeline %s: %v", h, err)
		}
		rp.pipelines[h] = handle
	}
	return rp.creator.WaitEnqueue()
}

// resolveModule looks up a shader module handle, first against the table
// already populated by this document's own shaderModules section, then
// against the resolver if the hash is not zero but still missing (a stage
// referencing a module recorded in a different closure).
func (rp *Replayer) resolveModule(doc *wire.Document, h hash.Hash) (Handle, error) {
	if !h.IsValid() {
		return 0, nil
	}
	if m, ok := rp.modules[h]; ok {
		return m, nil
	}
	return rp.fetchAndRetry(h, func(fetched *wire.Document) error {
		return rp.replayShaderModules(fetched)
	}, func() (Handle, bool) {
		m, ok := rp.modules[h]
		return m, ok
	}, "shaderModule")
}

// resolveBasePipeline looks up a base-pipeline reference. The zero hash
// means "no base pipeline" (basePipelineIndex governs instead, per §4.4/§4.5).
func (rp *Replayer) resolveBasePipeline(doc *wire.Document, h hash.Hash) (Handle, error) {
	if !h.IsValid() {
		return 0, nil
	}
	if p, ok := rp.pipelines[h]; ok {
		return p, nil
	}
	return rp.fetchAndRetry(h, func(fetched *wire.Document) error {
		return rp.replayDocument(fetched)
	}, func() (Handle, bool) {
		p, ok := rp.pipelines[h]
		return p, ok
	}, "basePipeline")
}

// fetchAndRetry is the shared "optimistic, then resolve" tail: the caller
// has already established the reference isn't satisfied by what's been
// replayed so far. This drains any pending enqueue, asks the resolver for a
// document containing the hash, replays it with replayFn (which populates
// the shared tables), then retries lookupFn once.
func (rp *Replayer) fetchAndRetry(h hash.Hash, replayFn func(*wire.Document) error, lookupFn func() (Handle, bool), what string) (Handle, error) {
	if err := rp.creator.WaitEnqueue(); err != nil {
		return 0, err
	}
	data, err := rp.resolver.Resolve(h)
	if err != nil || len(data) == 0 {
		return 0, fzerr.Wrap(fzerr.ErrUnresolvedReference, "%s %s not found by resolver", what, h)
	}
	fetched, err := parseDocument(data)
	if err != nil {
		return 0, err
	}
	if err := replayFn(fetched); err != nil {
		return 0, err
	}
	if handle, ok := lookupFn(); ok {
		return handle, nil
	}
	return 0, fzerr.Wrap(fzerr.ErrUnresolvedReference, "%s %s still missing after resolver fetch", what, h)
}
