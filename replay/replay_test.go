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
	"errors"
	"testing"

	goccyjson "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/DuckSoft/Fossilize/core/hash"
	"github.com/DuckSoft/Fossilize/wire"
)

var errBoom = errors.New("creator rejected")

// recordingCreator implements StateCreatorInterface, recording the order in
// which each section's entries were enqueued so tests can assert on §4.6's
// fixed section order.
type recordingCreator struct {
	order []string
	fail  hash.Hash
}

func (c *recordingCreator) SetNumSamplers(int)             {}
func (c *recordingCreator) SetNumDescriptorSetLayouts(int) {}
func (c *recordingCreator) SetNumPipelineLayouts(int)      {}
func (c *recordingCreator) SetNumShaderModules(int)        {}
func (c *recordingCreator) SetNumRenderPasses(int)         {}
func (c *recordingCreator) SetNumComputePipelines(int)     {}
func (c *recordingCreator) SetNumGraphicsPipelines(int)    {}

func (c *recordingCreator) EnqueueCreateSampler(h hash.Hash, _ wire.Sampler) (Handle, error) {
	c.order = append(c.order, "sampler:"+h.String())
	return Handle(h), nil
}

func (c *recordingCreator) EnqueueCreateDescriptorSetLayout(h hash.Hash, _ wire.DescriptorSetLayout, _ []Handle) (Handle, error) {
	c.order = append(c.order, "setLayout:"+h.String())
	return Handle(h), nil
}

func (c *recordingCreator) EnqueueCreatePipelineLayout(h hash.Hash, _ wire.PipelineLayout, _ []Handle) (Handle, error) {
	c.order = append(c.order, "pipelineLayout:"+h.String())
	return Handle(h), nil
}

func (c *recordingCreator) EnqueueCreateShaderModule(h hash.Hash, _ wire.ShaderModule) (Handle, error) {
	if h == c.fail {
		return 0, errBoom
	}
	c.order = append(c.order, "shaderModule:"+h.String())
	return Handle(h), nil
}

func (c *recordingCreator) EnqueueCreateRenderPass(h hash.Hash, _ wire.RenderPass) (Handle, error) {
	c.order = append(c.order, "renderPass:"+h.String())
	return Handle(h), nil
}

func (c *recordingCreator) EnqueueCreateComputePipeline(h hash.Hash, _ wire.ComputePipeline, layout, module, base Handle) (Handle, error) {
	c.order = append(c.order, "computePipeline:"+h.String())
	return Handle(h), nil
}

func (c *recordingCreator) EnqueueCreateGraphicsPipeline(h hash.Hash, _ wire.GraphicsPipeline, layout, renderPass Handle, stages []Handle, base Handle) (Handle, error) {
	c.order = append(c.order, "graphicsPipeline:"+h.String())
	return Handle(h), nil
}

func (c *recordingCreator) WaitEnqueue() error { return nil }

// emptyResolver always reports "not found", used to assert closure
// self-containment: a well-formed closure document never needs it.
type emptyResolver struct{ calls int }

func (r *emptyResolver) Resolve(hash.Hash) ([]byte, error) {
	r.calls++
	return nil, nil
}

// mapResolver serves documents keyed by root hash, used to simulate a
// multi-document store split across separate closure files.
type mapResolver struct {
	docs map[hash.Hash][]byte
}

func (r *mapResolver) Resolve(h hash.Hash) ([]byte, error) {
	return r.docs[h], nil
}

func layoutHash() hash.Hash   { h, _ := hash.Parse("0000000000000001"); return h }
func moduleHash() hash.Hash   { h, _ := hash.Parse("0000000000000002"); return h }
func passHash() hash.Hash     { h, _ := hash.Parse("0000000000000003"); return h }
func pipelineHash() hash.Hash { h, _ := hash.Parse("0000000000000004"); return h }
func basePipeHash() hash.Hash { h, _ := hash.Parse("0000000000000005"); return h }

func graphicsClosureDoc() *wire.Document {
	doc := wire.NewDocument()
	doc.ShaderModules[moduleHash().String()] = wire.ShaderModule{CodeSize: 4, Code: []byte{1, 2, 3, 4}}
	doc.PipelineLayouts[layoutHash().String()] = wire.PipelineLayout{SetLayouts: []wire.Ref{}}
	doc.RenderPasses[passHash().String()] = wire.RenderPass{Subpasses: []wire.Subpass{{}}}
	doc.GraphicsPipelines[pipelineHash().String()] = wire.GraphicsPipeline{
		Layout:     layoutHash(),
		RenderPass: passHash(),
		Stages:     []wire.ShaderStage{{Module: moduleHash()}},
	}
	doc.Prune()
	return doc
}

func TestReplayRejectsVersionMismatch(t *testing.T) {
	doc := wire.NewDocument()
	doc.Version = wire.FormatVersion + 1
	data, err := goccyjson.Marshal(doc)
	require.NoError(t, err)

	rp := New(&recordingCreator{}, &emptyResolver{})
	err = rp.Replay(data)
	require.Error(t, err)
}

func TestGraphicsClosureIsSelfContained(t *testing.T) {
	doc := graphicsClosureDoc()
	data, err := goccyjson.Marshal(doc)
	require.NoError(t, err)

	creator := &recordingCreator{}
	resolver := &emptyResolver{}
	rp := New(creator, resolver)
	require.NoError(t, rp.Replay(data))
	require.Equal(t, 0, resolver.calls)

	// Section order: shaderModules, then pipelineLayouts (setLayouts empty),
	// then renderPasses, then graphicsPipelines.
	require.Equal(t, []string{
		"shaderModule:" + moduleHash().String(),
		"pipelineLayout:" + layoutHash().String(),
		"renderPass:" + passHash().String(),
		"graphicsPipeline:" + pipelineHash().String(),
	}, creator.order)
}

func TestComputePipelineBasePipelineResolvedFromSeparateDocument(t *testing.T) {
	baseDoc := wire.NewDocument()
	baseDoc.PipelineLayouts[layoutHash().String()] = wire.PipelineLayout{SetLayouts: []wire.Ref{}}
	baseDoc.ShaderModules[moduleHash().String()] = wire.ShaderModule{CodeSize: 1, Code: []byte{9}}
	baseDoc.ComputePipelines[basePipeHash().String()] = wire.ComputePipeline{
		Layout: layoutHash(),
		Stage:  wire.ShaderStage{Module: moduleHash()},
	}
	baseDoc.Prune()
	baseData, err := goccyjson.Marshal(baseDoc)
	require.NoError(t, err)

	mainDoc := wire.NewDocument()
	mainDoc.PipelineLayouts[layoutHash().String()] = wire.PipelineLayout{SetLayouts: []wire.Ref{}}
	mainDoc.ShaderModules[moduleHash().String()] = wire.ShaderModule{CodeSize: 1, Code: []byte{9}}
	mainDoc.ComputePipelines[pipelineHash().String()] = wire.ComputePipeline{
		Layout:       layoutHash(),
		Stage:        wire.ShaderStage{Module: moduleHash()},
		BasePipeline: basePipeHash(),
	}
	mainDoc.Prune()
	mainData, err := goccyjson.Marshal(mainDoc)
	require.NoError(t, err)

	resolver := &mapResolver{docs: map[hash.Hash][]byte{basePipeHash(): baseData}}
	creator := &recordingCreator{}
	rp := New(creator, resolver)
	require.NoError(t, rp.Replay(mainData))

	require.Contains(t, rp.pipelines, basePipeHash())
	require.Contains(t, rp.pipelines, pipelineHash())
}

func TestMissingBasePipelineFailsWhenResolverHasNothing(t *testing.T) {
	mainDoc := wire.NewDocument()
	mainDoc.PipelineLayouts[layoutHash().String()] = wire.PipelineLayout{SetLayouts: []wire.Ref{}}
	mainDoc.ShaderModules[moduleHash().String()] = wire.ShaderModule{CodeSize: 1, Code: []byte{9}}
	mainDoc.ComputePipelines[pipelineHash().String()] = wire.ComputePipeline{
		Layout:       layoutHash(),
		Stage:        wire.ShaderStage{Module: moduleHash()},
		BasePipeline: basePipeHash(),
	}
	mainDoc.Prune()
	mainData, err := goccyjson.Marshal(mainDoc)
	require.NoError(t, err)

	rp := New(&recordingCreator{}, &emptyResolver{})
	err = rp.Replay(mainData)
	require.Error(t, err)
}
