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

// Package replay implements the Replayer half of the system: it parses a
// serialized document, walks its sections in strict dependency order, and
// drives a caller-supplied StateCreatorInterface to materialize fresh
// runtime handles, resolving forward references through a
// ResolverInterface on demand.
package replay

import (
	goccyjson "github.com/goccy/go-json"

	"github.com/DuckSoft/Fossilize/core/hash"
	"github.com/DuckSoft/Fossilize/internal/fzerr"
	"github.com/DuckSoft/Fossilize/wire"
)

// Handle is an opaque creator-assigned identifier for a freshly materialized
// object. The Replayer never interprets it beyond storing and forwarding it
// to later enqueue_create_* calls that reference it.
type Handle uint64

// StateCreatorInterface is the pluggable creation surface the Replayer
// drives. Each Enqueue* call returns the assigned Handle (or an error to
// abort the whole replay, per §6 — a failed enqueue is a Creator rejection).
// SetNum announces a section's size ahead of its entries so an implementer
// that pre-allocates can do so; implementers that don't care may ignore it.
// WaitEnqueue is the barrier the Replayer calls after each section so that
// downstream sections observe only fully-created handles.
type StateCreatorInterface interface {
	SetNumSamplers(n int)
	SetNumDescriptorSetLayouts(n int)
	SetNumPipelineLayouts(n int)
	SetNumShaderModules(n int)
	SetNumRenderPasses(n int)
	SetNumComputePipelines(n int)
	SetNumGraphicsPipelines(n int)

	EnqueueCreateSampler(h hash.Hash, d wire.Sampler) (Handle, error)
	EnqueueCreateDescriptorSetLayout(h hash.Hash, d wire.DescriptorSetLayout, resolvedSamplers []Handle) (Handle, error)
	EnqueueCreatePipelineLayout(h hash.Hash, d wire.PipelineLayout, resolvedSetLayouts []Handle) (Handle, error)
	EnqueueCreateShaderModule(h hash.Hash, d wire.ShaderModule) (Handle, error)
	EnqueueCreateRenderPass(h hash.Hash, d wire.RenderPass) (Handle, error)
	EnqueueCreateComputePipeline(h hash.Hash, d wire.ComputePipeline, layout Handle, module Handle, basePipeline Handle) (Handle, error)
	EnqueueCreateGraphicsPipeline(h hash.Hash, d wire.GraphicsPipeline, layout, renderPass Handle, stageModules []Handle, basePipeline Handle) (Handle, error)

	WaitEnqueue() error
}

// ResolverInterface fetches the raw bytes of a document containing a hash
// not found in the document currently being replayed. Empty bytes mean
// "not found", which is fatal when needed to satisfy a forward reference.
type ResolverInterface interface {
	Resolve(h hash.Hash) ([]byte, error)
}

// Replayer walks a parsed document's sections in the fixed order of §4.6
// and maintains the hash->created-handle table shared across recursive
// resolver fetches.
type Replayer struct {
	creator  StateCreatorInterface
	resolver ResolverInterface

	samplers   map[hash.Hash]Handle
	setLayouts map[hash.Hash]Handle
	layouts    map[hash.Hash]Handle
	modules    map[hash.Hash]Handle
	passes     map[hash.Hash]Handle
	pipelines  map[hash.Hash]Handle
}

// New constructs a Replayer over the given creator and resolver.
func New(creator StateCreatorInterface, resolver ResolverInterface) *Replayer {
	return &Replayer{
		creator:    creator,
		resolver:   resolver,
		samplers:   map[hash.Hash]Handle{},
		setLayouts: map[hash.Hash]Handle{},
		layouts:    map[hash.Hash]Handle{},
		modules:    map[hash.Hash]Handle{},
		passes:     map[hash.Hash]Handle{},
		pipelines:  map[hash.Hash]Handle{},
	}
}

// Replay parses data as a Document and drives the creator interface over
// every section it contains, in strict dependency order (§4.6):
// shaderModules, samplers, setLayouts, pipelineLayouts, renderPasses,
// computePipelines, graphicsPipelines.
func (rp *Replayer) Replay(data []byte) error {
	doc, err := parseDocument(data)
	if err != nil {
		return err
	}
	return rp.replayDocument(doc)
}

func parseDocument(data []byte) (*wire.Document, error) {
	var doc wire.Document
	if err := goccyjson.Unmarshal(data, &doc); err != nil {
		return nil, fzerr.Wrap(fzerr.ErrParse, "decode document: %v", err)
	}
	if doc.Version != wire.FormatVersion {
		return nil, fzerr.Wrap(fzerr.ErrParse, "document version %d, expected %d", doc.Version, wire.FormatVersion)
	}
	return &doc, nil
}

func (rp *Replayer) replayDocument(doc *wire.Document) error {
	if err := rp.replayShaderModules(doc); err != nil {
		return err
	}
	if err := rp.replaySamplers(doc); err != nil {
		return err
	}
	if err := rp.replaySetLayouts(doc); err != nil {
		return err
	}
	if err := rp.replayPipelineLayouts(doc); err != nil {
		return err
	}
	if err := rp.replayRenderPasses(doc); err != nil {
		return err
	}
	if err := rp.replayComputePipelines(doc); err != nil {
		return err
	}
	if err := rp.replayGraphicsPipelines(doc); err != nil {
		return err
	}
	return nil
}

func (rp *Replayer) replayShaderModules(doc *wire.Document) error {
	rp.creator.SetNumShaderModules(len(doc.ShaderModules))
	for key, m := range doc.ShaderModules {
		h, err := hash.Parse(key)
		if err != nil {
			return fzerr.Wrap(fzerr.ErrParse, "shaderModules key %q: %v", key, err)
		}
		if _, ok := rp.modules[h]; ok {
			continue
		}
		handle, err := rp.creator.EnqueueCreateShaderModule(h, m)
		if err != nil {
			return fzerr.Wrap(fzerr.ErrCreatorRejection, "shaderModule %s: %v", h, err)
		}
		rp.modules[h] = handle
	}
	return rp.creator.WaitEnqueue()
}

func (rp *Replayer) replaySamplers(doc *wire.Document) error {
	rp.creator.SetNumSamplers(len(doc.Samplers))
	for key, s := range doc.Samplers {
		h, err := hash.Parse(key)
		if err != nil {
			return fzerr.Wrap(fzerr.ErrParse, "samplers key %q: %v", key, err)
		}
		if _, ok := rp.samplers[h]; ok {
			continue
		}
		handle, err := rp.creator.EnqueueCreateSampler(h, s)
		if err != nil {
			return fzerr.Wrap(fzerr.ErrCreatorRejection, "sampler %s: %v", h, err)
		}
		rp.samplers[h] = handle
	}
	return rp.creator.WaitEnqueue()
}

func (rp *Replayer) replaySetLayouts(doc *wire.Document) error {
	rp.creator.SetNumDescriptorSetLayouts(len(doc.SetLayouts))
	for key, d := range doc.SetLayouts {
		h, err := hash.Parse(key)
		if err != nil {
			return fzerr.Wrap(fzerr.ErrParse, "setLayouts key %q: %v", key, err)
		}
		if _, ok := rp.setLayouts[h]; ok {
			continue
		}
		samplers := make([]Handle, 0)
		for _, b := range d.Bindings {
			for _, sref := range b.ImmutableSamplers {
				sh, err := rp.samplerHandle(doc, sref)
				if err != nil {
					return err
				}
				samplers = append(samplers, sh)
			}
		}
		handle, err := rp.creator.EnqueueCreateDescriptorSetLayout(h, d, samplers)
		if err != nil {
			return fzerr.Wrap(fzerr.ErrCreatorRejection, "setLayout %s: %v", h, err)
		}
		rp.setLayouts[h] = handle
	}
	return rp.creator.WaitEnqueue()
}

func (rp *Replayer) replayPipelineLayouts(doc *wire.Document) error {
	rp.creator.SetNumPipelineLayouts(len(doc.PipelineLayouts))
	for key, p := range doc.PipelineLayouts {
		h, err := hash.Parse(key)
		if err != nil {
			return fzerr.Wrap(fzerr.ErrParse, "pipelineLayouts key %q: %v", key, err)
		}
		if _, ok := rp.layouts[h]; ok {
			continue
		}
		sets := make([]Handle, len(p.SetLayouts))
		for i, sref := range p.SetLayouts {
			if sref == 0 {
				sets[i] = 0
				continue
			}
			sh, ok := rp.setLayouts[sref]
			if !ok {
				return fzerr.Wrap(fzerr.ErrUnresolvedReference, "pipelineLayout %s: setLayout %s not created", h, sref)
			}
			sets[i] = sh
		}
		handle, err := rp.creator.EnqueueCreatePipelineLayout(h, p, sets)
		if err != nil {
			return fzerr.Wrap(fzerr.ErrCreatorRejection, "pipelineLayout %s: %v", h, err)
		}
		rp.layouts[h] = handle
	}
	return rp.creator.WaitEnqueue()
}

func (rp *Replayer) replayRenderPasses(doc *wire.Document) error {
	rp.creator.SetNumRenderPasses(len(doc.RenderPasses))
	for key, r := range doc.RenderPasses {
		h, err := hash.Parse(key)
		if err != nil {
			return fzerr.Wrap(fzerr.ErrParse, "renderPasses key %q: %v", key, err)
		}
		if _, ok := rp.passes[h]; ok {
			continue
		}
		handle, err := rp.creator.EnqueueCreateRenderPass(h, r)
		if err != nil {
			return fzerr.Wrap(fzerr.ErrCreatorRejection, "renderPass %s: %v", h, err)
		}
		rp.passes[h] = handle
	}
	return rp.creator.WaitEnqueue()
}

// samplerHandle resolves a sampler reference, consulting the resolver on a
// miss (a sampler is never the root of a closure by itself, but its
// document may be split across fetches when an immutable sampler lives
// outside the current document).
func (rp *Replayer) samplerHandle(_ *wire.Document, h hash.Hash) (Handle, error) {
	if sh, ok := rp.samplers[h]; ok {
		return sh, nil
	}
	// replayDocument always runs replaySamplers, which populates rp.samplers
	// from the whole document, before replaySetLayouts (the only caller
	// here) runs; a miss above therefore always means the reference points
	// outside this document, so there's nothing left to try but the
	// resolver.
	return rp.fetchAndRetry(h, rp.replaySamplers, func() (Handle, bool) {
		sh, ok := rp.samplers[h]
		return sh, ok
	}, "sampler")
}
