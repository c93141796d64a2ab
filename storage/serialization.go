// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// vectorBlobVersion is written first in every vector store blob.
const vectorBlobVersion = 1

// MarshalVector serializes a single vector to bytes.
func MarshalVector(vec []float32) []byte {
	buf := make([]byte, vectorSize(vec))
	marshalVectorTo(vec, buf)
	return buf
}

// UnmarshalVector deserializes a vector written by MarshalVector.
func UnmarshalVector(data []byte) ([]float32, error) {
	vec, n, err := unmarshalVectorFrom(data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return vec, nil
}

// MarshalVectors serializes an ordered vector store.
// Layout: version, count, then each vector as length followed by raw float32s.
func MarshalVectors(vectors [][]float32) []byte {
	size := varint.Uint64.Size(vectorBlobVersion) + varint.Uint64.Size(uint64(len(vectors)))
	for _, vec := range vectors {
		size += vectorSize(vec)
	}

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(vectorBlobVersion, buf)
	n += varint.Uint64.Marshal(uint64(len(vectors)), buf[n:])
	for _, vec := range vectors {
		n += marshalVectorTo(vec, buf[n:])
	}
	return buf
}

// UnmarshalVectors deserializes a vector store written by MarshalVectors.
func UnmarshalVectors(data []byte) ([][]float32, error) {
	version, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: version: %w", ErrSerializationFailed, err)
	}
	if version != vectorBlobVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	count, m, err := varint.Uint64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: count: %w", ErrSerializationFailed, err)
	}
	n += m

	// Every vector takes at least one byte for its length.
	if count > uint64(len(data)-n) {
		return nil, fmt.Errorf("%w: %d vectors declared in %d bytes", ErrTruncatedData, count, len(data)-n)
	}

	vectors := make([][]float32, count)
	for i := range vectors {
		vec, m, err := unmarshalVectorFrom(data[n:])
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		vectors[i] = vec
		n += m
	}

	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return vectors, nil
}

func vectorSize(vec []float32) int {
	size := varint.Uint64.Size(uint64(len(vec)))
	for _, v := range vec {
		size += raw.Float32.Size(v)
	}
	return size
}

func marshalVectorTo(vec []float32, buf []byte) int {
	n := varint.Uint64.Marshal(uint64(len(vec)), buf)
	for _, v := range vec {
		n += raw.Float32.Marshal(v, buf[n:])
	}
	return n
}

func unmarshalVectorFrom(data []byte) ([]float32, int, error) {
	length, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, n, fmt.Errorf("%w: length: %w", ErrSerializationFailed, err)
	}

	// float32 values are always four bytes wide.
	if length > uint64(len(data)-n)/4 {
		return nil, n, fmt.Errorf("%w: vector of %d values in %d bytes", ErrTruncatedData, length, len(data)-n)
	}

	vec := make([]float32, length)
	for i := range vec {
		v, m, err := raw.Float32.Unmarshal(data[n:])
		if err != nil {
			return nil, n, fmt.Errorf("%w: value %d: %w", ErrSerializationFailed, i, err)
		}
		vec[i] = v
		n += m
	}
	return vec, n, nil
}
