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
	"os"
	"path/filepath"

	goccyjson "github.com/goccy/go-json"

	"github.com/DuckSoft/Fossilize/core/hash"
	"github.com/DuckSoft/Fossilize/internal/fzerr"
	"github.com/DuckSoft/Fossilize/state"
	"github.com/DuckSoft/Fossilize/wire"
)

// writeDocument marshals doc and writes it to
// <serialization_path>/<HASH16>.json. Writes are non-atomic
// open-truncate-write-close, serialized by the serialization mutex, per
// §6's "Per-object filename" note.
func (r *Recorder) writeDocument(h hash.Hash, doc *wire.Document) error {
	data, err := goccyjson.Marshal(doc)
	if err != nil {
		return fzerr.Wrap(fzerr.ErrIO, "marshal document %s: %v", h, err)
	}

	r.serializeMu.Lock()
	defer r.serializeMu.Unlock()
	if r.serializePath == "" {
		return fzerr.Wrap(fzerr.ErrIO, "serialization path not set")
	}
	path := filepath.Join(r.serializePath, h.String()+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fzerr.Wrap(fzerr.ErrIO, "write %s: %v", path, err)
	}
	return nil
}

// Serialize emits the entire current store as one document.
func (r *Recorder) Serialize() *wire.Document {
	doc := wire.NewDocument()
	for h, s := range r.tables.samplers.all() {
		doc.Samplers[h.String()] = encodeSampler(s)
	}
	for h, sl := range r.tables.setLayouts.all() {
		doc.SetLayouts[h.String()] = encodeSetLayout(sl)
	}
	for h, pl := range r.tables.layouts.all() {
		doc.PipelineLayouts[h.String()] = encodePipelineLayout(pl)
	}
	for h, m := range r.tables.modules.all() {
		doc.ShaderModules[h.String()] = encodeShaderModule(m)
	}
	for h, rp := range r.tables.renderPass.all() {
		doc.RenderPasses[h.String()] = encodeRenderPass(rp)
	}
	for h, d := range r.tables.pipelines.all() {
		switch v := d.(type) {
		case *state.ComputePipeline:
			doc.ComputePipelines[h.String()] = encodeComputePipeline(v)
		case *state.GraphicsPipeline:
			doc.GraphicsPipelines[h.String()] = encodeGraphicsPipeline(v)
		}
	}
	doc.Prune()
	return doc
}

// SerializeShaderModule emits a self-contained document for exactly one
// shader module.
func (r *Recorder) SerializeShaderModule(h hash.Hash) (*wire.Document, error) {
	doc := wire.NewDocument()
	if err := r.addShaderModuleClosure(doc, h); err != nil {
		return nil, err
	}
	doc.Prune()
	return doc, nil
}

// SerializeComputePipeline emits the dependency closure of one compute
// pipeline.
func (r *Recorder) SerializeComputePipeline(h hash.Hash) (*wire.Document, error) {
	d, ok := r.tables.pipelines.get(h)
	if !ok {
		return nil, fzerr.Wrap(fzerr.ErrUnresolvedReference, "computePipeline %s not in store", h)
	}
	p, ok := d.(*state.ComputePipeline)
	if !ok {
		return nil, fzerr.Wrap(fzerr.ErrUnresolvedReference, "%s is not a computePipeline", h)
	}
	doc := wire.NewDocument()
	if err := r.addComputePipelineClosure(doc, h, p); err != nil {
		return nil, err
	}
	doc.Prune()
	return doc, nil
}

// SerializeGraphicsPipeline emits the dependency closure of one graphics
// pipeline.
func (r *Recorder) SerializeGraphicsPipeline(h hash.Hash) (*wire.Document, error) {
	d, ok := r.tables.pipelines.get(h)
	if !ok {
		return nil, fzerr.Wrap(fzerr.ErrUnresolvedReference, "graphicsPipeline %s not in store", h)
	}
	p, ok := d.(*state.GraphicsPipeline)
	if !ok {
		return nil, fzerr.Wrap(fzerr.ErrUnresolvedReference, "%s is not a graphicsPipeline", h)
	}
	doc := wire.NewDocument()
	if err := r.addGraphicsPipelineClosure(doc, h, p); err != nil {
		return nil, err
	}
	doc.Prune()
	return doc, nil
}

// WriteDocument writes an already-built document under the given root
// hash, using the same path and locking as the worker's own closure
// writes. Exported so callers can persist a document returned by Serialize
// or SerializeGraphicsPipeline without reaching into package internals.
func (r *Recorder) WriteDocument(h hash.Hash, doc *wire.Document) error {
	return r.writeDocument(h, doc)
}
