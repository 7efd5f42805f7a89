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

// Package fzerr defines the fatal error kinds of the recorder/replayer, each
// a sentinel that callers can recover with errors.Is after unwrapping with
// github.com/pkg/errors, the way google-gapid and dolthub-dolt both wrap
// their own sentinel errors.
package fzerr

import "github.com/pkg/errors"

// Sentinel error kinds. Every fatal error surfaced by this module wraps
// exactly one of these with context-specific detail.
var (
	// ErrUnregisteredHandle is returned by get_hash_for_* when the caller
	// asks for the hash of a handle that was never recorded, or recorded
	// but not yet processed by the worker.
	ErrUnregisteredHandle = errors.New("fossilize: unregistered handle")

	// ErrUnsupportedExtension is returned when a descriptor arrives with a
	// non-null pNext extension chain. No extension support is implemented.
	ErrUnsupportedExtension = errors.New("fossilize: unsupported pNext extension chain")

	// ErrParse is returned for a malformed on-disk document, including a
	// version mismatch against FormatVersion.
	ErrParse = errors.New("fossilize: malformed document")

	// ErrUnresolvedReference is returned when a referenced hash cannot be
	// found locally and the configured resolver returns no bytes for it.
	ErrUnresolvedReference = errors.New("fossilize: unresolved reference")

	// ErrCreatorRejection is returned when a StateCreatorInterface
	// enqueue_create_* call reports failure.
	ErrCreatorRejection = errors.New("fossilize: creator rejected object")

	// ErrIO wraps a disk write or file-open failure.
	ErrIO = errors.New("fossilize: i/o failure")
)

// Wrap annotates cause (one of the sentinels above) with a formatted
// message, preserving cause for errors.Is.
func Wrap(cause error, format string, args ...interface{}) error {
	return errors.Wrapf(cause, format, args...)
}
