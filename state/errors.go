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

import "github.com/DuckSoft/Fossilize/internal/fzerr"

func errUnsupportedExtension(what string) error {
	return fzerr.Wrap(fzerr.ErrUnsupportedExtension, "%s: non-null pNext chain", what)
}

func errUnregisteredHandle(what string) error {
	return fzerr.Wrap(fzerr.ErrUnregisteredHandle, "%s: referenced handle not registered", what)
}
