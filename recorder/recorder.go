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

// Package recorder implements the Recorder half of the system: it ingests
// live object-creation descriptors, computes their canonical content hash,
// deep-copies them into private arena storage with handles remapped to
// hashes, deduplicates by hash, and asynchronously serializes dependency
// closures to a content-addressed store on disk.
package recorder

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DuckSoft/Fossilize/core/memory/arena"
	"github.com/DuckSoft/Fossilize/internal/logctx"
)

const defaultQueueDepth = 256

// Recorder is safe for concurrent use by multiple host threads calling the
// Record* methods; it owns exactly one background worker goroutine plus a
// fan-out of closure-writer goroutines coordinated by an errgroup.
type Recorder struct {
	logger *zap.Logger

	arenaMu sync.Mutex // the arena is not itself thread-safe (§5)
	arena   *arena.Arena

	tables *tables

	queue     chan workItem
	workerWG  sync.WaitGroup
	closeOnce sync.Once

	serializeMu   sync.Mutex
	serializePath string

	closures *errgroup.Group
}

// Option configures a Recorder at construction time.
type Option func(*Recorder)

// WithLogger attaches a *zap.Logger the worker and closure writers use for
// best-effort diagnostics (§4.8). Defaults to zap.NewNop() if not supplied.
func WithLogger(l *zap.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

// WithQueueDepth sets the buffered channel capacity backing the record
// queue. Defaults to 256; record_* still never blocks on the worker itself,
// only briefly on a full channel.
func WithQueueDepth(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.queue = make(chan workItem, n)
		}
	}
}

// WithSerializationPath sets the initial output directory, equivalent to
// calling SetSerializationPath immediately after New.
func WithSerializationPath(path string) Option {
	return func(r *Recorder) { r.serializePath = path }
}

// New constructs a Recorder and starts its background worker.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		logger: zap.NewNop(),
		arena:  arena.New(),
		tables: newTables(),
		queue:  make(chan workItem, defaultQueueDepth),
	}
	for _, opt := range opts {
		opt(r)
	}
	group, _ := errgroup.WithContext(context.Background())
	r.closures = group

	r.workerWG.Add(1)
	go r.runWorker()
	return r
}

// SetSerializationPath sets the directory subsequent closure writes target.
func (r *Recorder) SetSerializationPath(path string) {
	r.serializeMu.Lock()
	defer r.serializeMu.Unlock()
	r.serializePath = path
}

func (r *Recorder) withLogger(ctx context.Context) context.Context {
	return logctx.With(ctx, r.logger)
}

// Close enqueues record_end's shutdown sentinel, waits for the worker to
// drain the queue, then waits for every in-flight closure write, surfacing
// the first write error without losing the worker's own best-effort
// logging (§4.5's record_end + join, generalized with errgroup per §5).
func (r *Recorder) Close() error {
	var err error
	r.closeOnce.Do(func() {
		r.queue <- workItem{shutdown: true}
		r.workerWG.Wait()
		err = r.closures.Wait()
	})
	return err
}

// Stats exposes the underlying arena's allocation statistics, useful for
// diagnostics and tests.
func (r *Recorder) Stats() arena.Stats {
	r.arenaMu.Lock()
	defer r.arenaMu.Unlock()
	return r.arena.Stats()
}
