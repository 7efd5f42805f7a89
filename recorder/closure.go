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
	"github.com/DuckSoft/Fossilize/internal/fzerr"
	"github.com/DuckSoft/Fossilize/state"
	"github.com/DuckSoft/Fossilize/wire"
)

// writeClosure builds the minimal self-contained document for a freshly
// stored shader module or pipeline (§4.7) and writes it to disk under the
// serialization mutex.
func (r *Recorder) writeClosure(h hash.Hash, d state.Descriptor) error {
	doc := wire.NewDocument()
	switch v := d.(type) {
	case *state.ShaderModule:
		doc.ShaderModules[h.String()] = encodeShaderModule(v)
	case *state.ComputePipeline:
		if err := r.addComputePipelineClosure(doc, h, v); err != nil {
			return err
		}
	case *state.GraphicsPipeline:
		if err := r.addGraphicsPipelineClosure(doc, h, v); err != nil {
			return err
		}
	default:
		return nil
	}
	doc.Prune()
	return r.writeDocument(h, doc)
}

func (r *Recorder) addSampler(doc *wire.Document, h hash.Hash) error {
	if h == 0 {
		return nil
	}
	s, ok := r.tables.samplers.get(h)
	if !ok {
		return fzerr.Wrap(fzerr.ErrUnresolvedReference, "sampler %s not in store", h)
	}
	doc.Samplers[h.String()] = encodeSampler(s)
	return nil
}

func (r *Recorder) addSetLayoutClosure(doc *wire.Document, h hash.Hash) error {
	if h == 0 {
		return nil
	}
	sl, ok := r.tables.setLayouts.get(h)
	if !ok {
		return fzerr.Wrap(fzerr.ErrUnresolvedReference, "setLayout %s not in store", h)
	}
	doc.SetLayouts[h.String()] = encodeSetLayout(sl)
	for _, b := range sl.Bindings {
		if b.ImmutableSamplers == nil || !usesImmutableSamplers(b.DescriptorType) {
			continue
		}
		for _, s := range b.ImmutableSamplers {
			if err := r.addSampler(doc, hash.Hash(s)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Recorder) addPipelineLayoutClosure(doc *wire.Document, h hash.Hash) error {
	if h == 0 {
		return nil
	}
	pl, ok := r.tables.layouts.get(h)
	if !ok {
		return fzerr.Wrap(fzerr.ErrUnresolvedReference, "pipelineLayout %s not in store", h)
	}
	doc.PipelineLayouts[h.String()] = encodePipelineLayout(pl)
	for _, sl := range pl.SetLayouts {
		if sl == vk.NullHandle {
			continue
		}
		if err := r.addSetLayoutClosure(doc, hash.Hash(sl)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) addRenderPassClosure(doc *wire.Document, h hash.Hash) error {
	if h == 0 {
		return nil
	}
	rp, ok := r.tables.renderPass.get(h)
	if !ok {
		return fzerr.Wrap(fzerr.ErrUnresolvedReference, "renderPass %s not in store", h)
	}
	doc.RenderPasses[h.String()] = encodeRenderPass(rp)
	return nil
}

func (r *Recorder) addShaderModuleClosure(doc *wire.Document, h hash.Hash) error {
	if h == 0 {
		return nil
	}
	m, ok := r.tables.modules.get(h)
	if !ok {
		return fzerr.Wrap(fzerr.ErrUnresolvedReference, "shaderModule %s not in store", h)
	}
	doc.ShaderModules[h.String()] = encodeShaderModule(m)
	return nil
}

// addComputePipelineClosure deliberately does not pull in the shader
// module body: per the Open Question resolution recorded in DESIGN.md,
// compute-pipeline closures reference their stage's module by hash only,
// since shader modules are persisted separately by hash.
func (r *Recorder) addComputePipelineClosure(doc *wire.Document, h hash.Hash, p *state.ComputePipeline) error {
	doc.ComputePipelines[h.String()] = encodeComputePipeline(p)
	return r.addPipelineLayoutClosure(doc, hash.Hash(p.Layout))
}

func (r *Recorder) addGraphicsPipelineClosure(doc *wire.Document, h hash.Hash, p *state.GraphicsPipeline) error {
	doc.GraphicsPipelines[h.String()] = encodeGraphicsPipeline(p)
	if err := r.addPipelineLayoutClosure(doc, hash.Hash(p.Layout)); err != nil {
		return err
	}
	if err := r.addRenderPassClosure(doc, hash.Hash(p.RenderPass)); err != nil {
		return err
	}
	for i := range p.Stages {
		if err := r.addShaderModuleClosure(doc, hash.Hash(p.Stages[i].Module)); err != nil {
			return err
		}
	}
	return nil
}
