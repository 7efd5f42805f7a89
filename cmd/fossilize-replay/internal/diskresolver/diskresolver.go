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

// Package diskresolver implements replay.ResolverInterface by looking up
// <hash>.json files under a directory, mirroring the per-object filenames
// the recorder writes (§6).
package diskresolver

import (
	"os"
	"path/filepath"

	"github.com/DuckSoft/Fossilize/core/hash"
)

// Resolver fetches a document's bytes from dir/<HASH16>.json, returning nil
// bytes (never an error) when the file doesn't exist, per
// replay.ResolverInterface's "empty bytes means not found" contract.
type Resolver struct {
	dir string
}

// New returns a Resolver rooted at dir.
func New(dir string) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve implements replay.ResolverInterface.
func (r *Resolver) Resolve(h hash.Hash) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, h.String()+".json"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	return data, err
}
