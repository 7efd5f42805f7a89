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

package state

import "github.com/DuckSoft/Fossilize/core/hash"

// Descriptor is the common surface every recorded entity kind implements:
// a canonical content hash, a dispatch tag, and an in-place handle->hash
// remapping pass. The recorder's worker operates on this interface and
// only type-switches down to a concrete type when it needs the kind's own
// handle type for the handle->hash tables.
type Descriptor interface {
	Hash(Resolver) (hash.Hash, error)
	Kind() Kind
	Remap(Resolver) error
}
