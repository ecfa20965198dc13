package generator_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomArray(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	arr, err := generator.RandomArray(rng, 50)
	require.NoError(t, err)
	require.Len(t, arr, 50)
	for i, el := range arr {
		assert.Equal(t, i, el.ID)
		assert.Equal(t, domain.ElementDefault, el.State)
		assert.GreaterOrEqual(t, el.Value, generator.MinValue)
		assert.LessOrEqual(t, el.Value, generator.MaxValue)
	}

	again, err := generator.RandomArray(rand.New(rand.NewPCG(1, 2)), 50)
	require.NoError(t, err)
	assert.Equal(t, arr, again, "same seed must give the same array")
}

func TestRandomArray_SizeBounds(t *testing.T) {
	for _, n := range []int{-1, 0, 1, generator.MaxSize + 1} {
		_, err := generator.RandomArray(nil, n)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "n=%d", n)
	}
	_, err := generator.RandomArray(nil, generator.MinSize)
	assert.NoError(t, err)
}

func TestParseCustom(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"5, -2, abc, 10, 0, 999999", []int{5, 10}},
		{"  3 1\t2  ", []int{3, 1, 2}},
		{"1,,2 ,3", []int{1, 2, 3}},
		{"500,501", []int{500}},
		{"7,7,7", []int{7, 7, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			arr, err := generator.ParseCustom(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, domain.Values(arr))
		})
	}
}

func TestParseCustom_NothingValid(t *testing.T) {
	for _, in := range []string{"", "   ", "abc, -1, 0", "1000"} {
		arr, err := generator.ParseCustom(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "input %q", in)
		assert.Nil(t, arr)
	}
}

func TestParseCustom_TooMany(t *testing.T) {
	in := strings.TrimSuffix(strings.Repeat("1,", generator.MaxSize+1), ",")
	arr, err := generator.ParseCustom(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, arr)

	arr, err = generator.ParseCustom(strings.TrimSuffix(strings.Repeat("1,", generator.MaxSize), ","))
	require.NoError(t, err)
	assert.Len(t, arr, generator.MaxSize)
}

func TestSampleGraph(t *testing.T) {
	g := generator.SampleGraph()
	require.NoError(t, g.Validate())
	assert.Len(t, g.Nodes, 5)
	assert.Len(t, g.Edges, 6)
	assert.True(t, g.HasNode(generator.SampleStart))

	require.NoError(t, generator.DisconnectedGraph().Validate())
	assert.Empty(t, generator.DisconnectedGraph().Neighbors("Z"))
}

func TestSampleInput(t *testing.T) {
	for _, info := range domain.Catalog() {
		in, err := generator.SampleInput(info.ID, rand.New(rand.NewPCG(7, 7)))
		require.NoError(t, err, info.ID)
		assert.NoError(t, in.Validate(info.ID), info.ID)
	}
	_, err := generator.SampleInput("bogo", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownAlgorithm)
}

func TestFibonacci(t *testing.T) {
	p, err := generator.Fibonacci(10)
	require.NoError(t, err)
	assert.Equal(t, 10, p.N)
	_, err = generator.Fibonacci(domain.MaxFibonacci + 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
