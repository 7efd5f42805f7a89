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

package wire

import "github.com/DuckSoft/Fossilize/core/hash"

// Ref is a reference field: the hash of another entry in this document or
// in one fetched through a ResolverInterface. The zero Ref marshals to
// "0000000000000000", the null-reference sentinel pinned by §6.
type Ref = hash.Hash
