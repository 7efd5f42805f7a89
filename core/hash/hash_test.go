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

package hash_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DuckSoft/Fossilize/core/hash"
)

func TestDeterministic(t *testing.T) {
	feed := func() hash.Hash {
		h := hash.New()
		h.U32(7).String("sampler").Float(16.0).Bool(true).U64(0xdeadbeefcafef00d)
		return h.Sum()
	}
	a, b := feed(), feed()
	assert.Equal(t, a, b)
}

func TestFeedOrderMatters(t *testing.T) {
	h1 := hash.New()
	h1.U32(1).U32(2)
	h2 := hash.New()
	h2.U32(2).U32(1)
	assert.NotEqual(t, h1.Sum(), h2.Sum())
}

func TestStringDoesNotCollideWithRawBytes(t *testing.T) {
	h1 := hash.New()
	h1.String(string([]byte{1, 2}))
	h2 := hash.New()
	h2.Data([]byte{1, 2})
	assert.NotEqual(t, h1.Sum(), h2.Sum())
}

func TestStringLengthIsDistinguished(t *testing.T) {
	h1 := hash.New()
	h1.String("ab")
	h2 := hash.New()
	h2.String("a")
	h2.String("b")
	assert.NotEqual(t, h1.Sum(), h2.Sum())
}

func TestZeroIsInvalid(t *testing.T) {
	assert.False(t, hash.Hash(0).IsValid())
	assert.True(t, hash.Hash(1).IsValid())
}

func TestStringRoundTrip(t *testing.T) {
	h := hash.Hash(0x0123456789abcdef)
	s := h.String()
	assert.Equal(t, "0123456789ABCDEF", s)

	parsed, err := hash.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, h, parsed)

	parsedLower, err := hash.Parse("0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, h, parsedLower)
}

func TestJSONRoundTrip(t *testing.T) {
	h := hash.Hash(0xff00ff00ff00ff00)
	b, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, `"FF00FF00FF00FF00"`, string(b))

	var out hash.Hash
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, h, out)
}
