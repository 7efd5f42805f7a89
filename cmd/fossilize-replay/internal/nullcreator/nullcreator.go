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

// Package nullcreator implements replay.StateCreatorInterface without a
// graphics driver: every enqueue_create_* call is accepted immediately,
// assigned a sequential handle, and counted. It exists so
// fossilize-replay's check command can validate that a document's
// references resolve and its section order is well-formed, the way the
// real driver-backed creator would, without requiring one.
package nullcreator

import (
	"fmt"
	"io"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/DuckSoft/Fossilize/core/hash"
	"github.com/DuckSoft/Fossilize/replay"
	"github.com/DuckSoft/Fossilize/wire"
)

// Creator counts objects created per kind and hands out sequential handles.
type Creator struct {
	logger *zap.Logger
	next   uint64

	samplers          uint64
	setLayouts        uint64
	pipelineLayouts   uint64
	shaderModules     uint64
	renderPasses      uint64
	computePipelines  uint64
	graphicsPipelines uint64
}

// New returns a Creator that logs every enqueue_create_* call to logger.
func New(logger *zap.Logger) *Creator {
	return &Creator{logger: logger}
}

func (c *Creator) alloc() replay.Handle {
	return replay.Handle(atomic.AddUint64(&c.next, 1))
}

func (c *Creator) SetNumSamplers(n int)             { c.logger.Debug("section", zap.String("kind", "samplers"), zap.Int("count", n)) }
func (c *Creator) SetNumDescriptorSetLayouts(n int) { c.logger.Debug("section", zap.String("kind", "setLayouts"), zap.Int("count", n)) }
func (c *Creator) SetNumPipelineLayouts(n int)      { c.logger.Debug("section", zap.String("kind", "pipelineLayouts"), zap.Int("count", n)) }
func (c *Creator) SetNumShaderModules(n int)        { c.logger.Debug("section", zap.String("kind", "shaderModules"), zap.Int("count", n)) }
func (c *Creator) SetNumRenderPasses(n int)         { c.logger.Debug("section", zap.String("kind", "renderPasses"), zap.Int("count", n)) }
func (c *Creator) SetNumComputePipelines(n int)     { c.logger.Debug("section", zap.String("kind", "computePipelines"), zap.Int("count", n)) }
func (c *Creator) SetNumGraphicsPipelines(n int)    { c.logger.Debug("section", zap.String("kind", "graphicsPipelines"), zap.Int("count", n)) }

func (c *Creator) EnqueueCreateSampler(h hash.Hash, _ wire.Sampler) (replay.Handle, error) {
	atomic.AddUint64(&c.samplers, 1)
	c.logger.Debug("create", zap.String("kind", "sampler"), zap.Stringer("hash", h))
	return c.alloc(), nil
}

func (c *Creator) EnqueueCreateDescriptorSetLayout(h hash.Hash, _ wire.DescriptorSetLayout, _ []replay.Handle) (replay.Handle, error) {
	atomic.AddUint64(&c.setLayouts, 1)
	c.logger.Debug("create", zap.String("kind", "setLayout"), zap.Stringer("hash", h))
	return c.alloc(), nil
}

func (c *Creator) EnqueueCreatePipelineLayout(h hash.Hash, _ wire.PipelineLayout, _ []replay.Handle) (replay.Handle, error) {
	atomic.AddUint64(&c.pipelineLayouts, 1)
	c.logger.Debug("create", zap.String("kind", "pipelineLayout"), zap.Stringer("hash", h))
	return c.alloc(), nil
}

func (c *Creator) EnqueueCreateShaderModule(h hash.Hash, _ wire.ShaderModule) (replay.Handle, error) {
	atomic.AddUint64(&c.shaderModules, 1)
	c.logger.Debug("create", zap.String("kind", "shaderModule"), zap.Stringer("hash", h))
	return c.alloc(), nil
}

func (c *Creator) EnqueueCreateRenderPass(h hash.Hash, _ wire.RenderPass) (replay.Handle, error) {
	atomic.AddUint64(&c.renderPasses, 1)
	c.logger.Debug("create", zap.String("kind", "renderPass"), zap.Stringer("hash", h))
	return c.alloc(), nil
}

func (c *Creator) EnqueueCreateComputePipeline(h hash.Hash, _ wire.ComputePipeline, _, _, _ replay.Handle) (replay.Handle, error) {
	atomic.AddUint64(&c.computePipelines, 1)
	c.logger.Debug("create", zap.String("kind", "computePipeline"), zap.Stringer("hash", h))
	return c.alloc(), nil
}

func (c *Creator) EnqueueCreateGraphicsPipeline(h hash.Hash, _ wire.GraphicsPipeline, _, _ replay.Handle, _ []replay.Handle, _ replay.Handle) (replay.Handle, error) {
	atomic.AddUint64(&c.graphicsPipelines, 1)
	c.logger.Debug("create", zap.String("kind", "graphicsPipeline"), zap.Stringer("hash", h))
	return c.alloc(), nil
}

// WaitEnqueue is a no-op: every Enqueue call above already completed
// synchronously.
func (c *Creator) WaitEnqueue() error { return nil }

// PrintSummary writes a per-kind object count to w.
func (c *Creator) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "samplers:           %d\n", atomic.LoadUint64(&c.samplers))
	fmt.Fprintf(w, "setLayouts:         %d\n", atomic.LoadUint64(&c.setLayouts))
	fmt.Fprintf(w, "pipelineLayouts:    %d\n", atomic.LoadUint64(&c.pipelineLayouts))
	fmt.Fprintf(w, "shaderModules:      %d\n", atomic.LoadUint64(&c.shaderModules))
	fmt.Fprintf(w, "renderPasses:       %d\n", atomic.LoadUint64(&c.renderPasses))
	fmt.Fprintf(w, "computePipelines:   %d\n", atomic.LoadUint64(&c.computePipelines))
	fmt.Fprintf(w, "graphicsPipelines:  %d\n", atomic.LoadUint64(&c.graphicsPipelines))
}

var _ replay.StateCreatorInterface = (*Creator)(nil)
