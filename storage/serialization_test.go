package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorRoundTrip(t *testing.T) {
	vec := []float32{0.1, -2.5, 3.75, 0}

	got, err := UnmarshalVector(MarshalVector(vec))
	require.NoError(t, err)
	assert.Equal(t, vec, got)
}

func TestVectorsRoundTrip(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0.5, 0.5, 0},
		{},
	}

	got, err := UnmarshalVectors(MarshalVectors(vectors))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, vectors[0], got[0])
	assert.Equal(t, vectors[1], got[1])
	assert.Empty(t, got[2])
}

func TestUnmarshalVectors_Empty(t *testing.T) {
	got, err := UnmarshalVectors(MarshalVectors(nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmarshalVectors_Truncated(t *testing.T) {
	data := MarshalVectors([][]float32{{1, 2, 3}, {4, 5, 6}})

	_, err := UnmarshalVectors(data[:len(data)-3])
	assert.ErrorIs(t, err, ErrTruncatedData)
}

func TestUnmarshalVectors_TrailingBytes(t *testing.T) {
	data := append(MarshalVectors([][]float32{{1}}), 0x00)

	_, err := UnmarshalVectors(data)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestUnmarshalVectors_UnknownVersion(t *testing.T) {
	data := MarshalVectors([][]float32{{1}})
	data[0] = 0x7f

	_, err := UnmarshalVectors(data)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestUnmarshalVectors_NoData(t *testing.T) {
	_, err := UnmarshalVectors(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
