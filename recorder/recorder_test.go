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

import (
	"sync"
	"testing"

	vk "github.com/vulkan-go/vulkan"

	"github.com/stretchr/testify/require"
)

// S6: 10,000 sampler records submitted from four goroutines; after Close,
// the store size equals the number of distinct sampler contents, and every
// submitted handle maps to the corresponding content's hash.
func TestConcurrentSamplerRecordingDeduplicates(t *testing.T) {
	r := New()

	const perWorker = 2500
	const workers = 4
	const distinctContents = 5

	infoFor := func(i int) *vk.SamplerCreateInfo {
		return &vk.SamplerCreateInfo{MaxAnisotropy: float32(i % distinctContents)}
	}

	var wg sync.WaitGroup
	handles := make([][]vk.Sampler, workers)
	for w := 0; w < workers; w++ {
		handles[w] = make([]vk.Sampler, perWorker)
		for i := 0; i < perWorker; i++ {
			handles[w][i] = vk.Sampler(uint64(w*perWorker + i + 1))
		}
	}

	for w := 0; w < workers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				require.NoError(t, r.RecordSampler(handles[w][i], infoFor(i)))
			}
		}()
	}
	wg.Wait()
	require.NoError(t, r.Close())

	require.Equal(t, distinctContents, r.tables.samplers.size())

	for w := 0; w < workers; w++ {
		for i := 0; i < perWorker; i++ {
			h, ok := r.tables.Sampler(handles[w][i])
			require.True(t, ok)
			// Every handle recorded with the same content (same i%distinctContents)
			// must resolve to the same hash as every other handle sharing that content.
			otherHandle := handles[0][i%distinctContents]
			other, ok := r.tables.Sampler(otherHandle)
			require.True(t, ok)
			require.Equal(t, other, h)
		}
	}
}

func TestGetHashForUnrecordedHandleFails(t *testing.T) {
	r := New()
	defer r.Close()
	_, err := r.GetHashForSampler(vk.Sampler(12345))
	require.Error(t, err)
}

func TestSamplerRecordThenGetHash(t *testing.T) {
	r := New()
	handle := vk.Sampler(1)
	require.NoError(t, r.RecordSampler(handle, &vk.SamplerCreateInfo{MaxAnisotropy: 4}))
	require.NoError(t, r.Close())

	h, err := r.GetHashForSampler(handle)
	require.NoError(t, err)
	require.True(t, h.IsValid())
}

func TestSerializeFullStoreOmitsEmptyKinds(t *testing.T) {
	r := New()
	require.NoError(t, r.RecordSampler(vk.Sampler(1), &vk.SamplerCreateInfo{MaxAnisotropy: 2}))
	require.NoError(t, r.Close())

	doc := r.Serialize()
	require.Len(t, doc.Samplers, 1)
	require.Nil(t, doc.SetLayouts)
}
