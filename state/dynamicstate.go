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

import vk "github.com/vulkan-go/vulkan"

// dynamicStateSet is a small-set membership test over a pipeline's dynamic
// state array. It exists to make the conditional-field rule of §4.3
// readable at each call site instead of re-scanning the slice inline.
type dynamicStateSet map[vk.DynamicState]bool

func newDynamicStateSet(states []vk.DynamicState) dynamicStateSet {
	if len(states) == 0 {
		return nil
	}
	s := make(dynamicStateSet, len(states))
	for _, d := range states {
		s[d] = true
	}
	return s
}

func (s dynamicStateSet) has(d vk.DynamicState) bool {
	return s != nil && s[d]
}
