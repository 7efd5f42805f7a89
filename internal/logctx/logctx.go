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

// Package logctx threads a *zap.Logger through a context.Context, the
// stand-in for gapid's bespoke core/log.Context carrier. gapid predates
// structured logging libraries in the Go ecosystem; this port has zap
// available, so the carrier is reduced to the two functions below instead
// of reimplementing handlers, filters and severities by hand.
package logctx

import (
	"context"

	"go.uber.org/zap"
)

type loggerKey struct{}

// With returns a context carrying l, retrievable with From.
func With(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// From returns the logger attached to ctx, or zap.NewNop() if none was
// attached. Callers never need a nil check.
func From(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}
