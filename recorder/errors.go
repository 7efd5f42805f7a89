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

import "github.com/DuckSoft/Fossilize/internal/fzerr"

// errUnknownDescriptorKind guards the worker's type switch; it can only
// fire if a new state.Descriptor implementation is added to package state
// without a matching case here.
var errUnknownDescriptorKind = fzerr.Wrap(fzerr.ErrUnregisteredHandle, "worker: descriptor of unrecognized concrete type")

// errNotFound reports a get_hash_for_* call for a handle that has not yet
// been processed by the worker.
func errNotFound(what string) error {
	return fzerr.Wrap(fzerr.ErrUnregisteredHandle, "%s: handle not yet recorded", what)
}
