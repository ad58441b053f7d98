/*
 *     Copyright 2023 The Dragonfly Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package dataset

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		expect func(t *testing.T, d Dataset, err error)
	}{
		{
			name: "generate observations in range",
			n:    2000,
			expect: func(t *testing.T, d Dataset, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(d, 2000)
				for _, o := range d {
					for _, v := range []float64{o.LatencyA, o.LatencyB} {
						assert.GreaterOrEqual(v, float64(MinLatency))
						assert.LessOrEqual(v, float64(MaxLatency))
						assert.Equal(math.Trunc(v), v)
					}

					for _, v := range []float64{o.LoadA, o.LoadB} {
						assert.GreaterOrEqual(v, float64(MinLoad))
						assert.LessOrEqual(v, float64(MaxLoad))
						assert.Equal(math.Trunc(v), v)
					}

					for _, v := range []float64{o.SuccessRateA, o.SuccessRateB} {
						assert.GreaterOrEqual(v, MinSuccessRate)
						assert.LessOrEqual(v, MaxSuccessRate)
						assert.InDelta(math.Round(v*100)/100, v, 1e-12)
					}

					assert.Equal(o.LatencyA-o.LatencyB, o.LatencyDiff)
					assert.Equal(o.LoadA-o.LoadB, o.LoadDiff)
					assert.Equal(o.SuccessRateA-o.SuccessRateB, o.SuccessRateDiff)
					if o.LatencyA < o.LatencyB {
						assert.Equal(NodeA, o.BestNode)
					} else {
						assert.Equal(NodeB, o.BestNode)
					}
				}
			},
		},
		{
			name: "generate covers both labels",
			n:    500,
			expect: func(t *testing.T, d Dataset, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				counts := map[int]int{}
				for _, o := range d {
					counts[o.BestNode]++
				}

				assert.NotZero(counts[NodeA])
				assert.NotZero(counts[NodeB])
			},
		},
		{
			name: "generate zero rows",
			n:    0,
			expect: func(t *testing.T, d Dataset, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Empty(d)
			},
		},
		{
			name: "generate negative rows",
			n:    -1,
			expect: func(t *testing.T, d Dataset, err error) {
				assert := assert.New(t)
				assert.True(errors.Is(err, ErrInvalidRowCount))
				assert.Nil(d)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Generate(tc.n, rand.NewSource(42))
			tc.expect(t, d, err)
		})
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	assert := assert.New(t)
	a, err := Generate(100, rand.NewSource(1))
	assert.NoError(err)
	b, err := Generate(100, rand.NewSource(1))
	assert.NoError(err)
	assert.Equal(a, b)
}

func TestNewObservation(t *testing.T) {
	tests := []struct {
		name        string
		observation Observation
		expect      func(t *testing.T, o Observation)
	}{
		{
			name:        "node A has lower latency",
			observation: NewObservation(10, 20, 3, 5, 0.9, 0.95),
			expect: func(t *testing.T, o Observation) {
				assert := assert.New(t)
				assert.Equal(NodeA, o.BestNode)
				assert.Equal(float64(-10), o.LatencyDiff)
				assert.Equal(float64(-2), o.LoadDiff)
				assert.Equal(0.9-0.95, o.SuccessRateDiff)
			},
		},
		{
			name:        "node B has lower latency",
			observation: NewObservation(30, 20, 1, 1, 1, 1),
			expect: func(t *testing.T, o Observation) {
				assert := assert.New(t)
				assert.Equal(NodeB, o.BestNode)
				assert.Equal(float64(10), o.LatencyDiff)
				assert.Zero(o.LoadDiff)
				assert.Zero(o.SuccessRateDiff)
			},
		},
		{
			name:        "tie goes to node B",
			observation: NewObservation(20, 20, 1, 10, 0.85, 1),
			expect: func(t *testing.T, o Observation) {
				assert := assert.New(t)
				assert.Equal(NodeB, o.BestNode)
				assert.Zero(o.LatencyDiff)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, tc.observation)
		})
	}
}

func TestDataset_Features(t *testing.T) {
	assert := assert.New(t)
	d := Dataset{
		NewObservation(10, 20, 3, 5, 0.9, 0.95),
		NewObservation(30, 20, 1, 1, 1, 1),
	}

	x, y, err := d.Features()
	assert.NoError(err)
	rows, cols := x.Dims()
	assert.Equal(2, rows)
	assert.Equal(len(FeatureNames), cols)
	assert.Equal(d[0].Features(), mat.Row(nil, 0, x))
	assert.Equal([]int{NodeA, NodeB}, y)

	_, _, err = Dataset{}.Features()
	assert.ErrorIs(err, ErrEmptyDataset)
}

func TestNewSplit(t *testing.T) {
	d, err := Generate(100, rand.NewSource(42))
	if err != nil {
		t.Fatal(err)
	}

	x, y, err := d.Features()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		x        *mat.Dense
		y        []int
		testSize float64
		expect   func(t *testing.T, s *Split, err error)
	}{
		{
			name:     "split 80/20",
			x:        x,
			y:        y,
			testSize: 0.2,
			expect: func(t *testing.T, s *Split, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				trainRows, _ := s.XTrain.Dims()
				testRows, _ := s.XTest.Dims()
				assert.Equal(80, trainRows)
				assert.Equal(20, testRows)
				assert.Len(s.YTrain, 80)
				assert.Len(s.YTest, 20)
			},
		},
		{
			name:     "split rounds test size up",
			x:        mat.NewDense(7, 1, []float64{0, 1, 2, 3, 4, 5, 6}),
			y:        []int{0, 1, 0, 1, 0, 1, 0},
			testSize: 0.2,
			expect: func(t *testing.T, s *Split, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(s.YTest, 2)
				assert.Len(s.YTrain, 5)
			},
		},
		{
			name:     "split keeps rows paired with labels",
			x:        mat.NewDense(6, 1, []float64{0, 1, 2, 3, 4, 5}),
			y:        []int{0, 1, 2, 3, 4, 5},
			testSize: 0.5,
			expect: func(t *testing.T, s *Split, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				seen := map[int]bool{}
				for i, label := range s.YTrain {
					assert.Equal(float64(label), s.XTrain.At(i, 0))
					seen[label] = true
				}

				for i, label := range s.YTest {
					assert.Equal(float64(label), s.XTest.At(i, 0))
					seen[label] = true
				}

				assert.Len(seen, 6)
			},
		},
		{
			name:     "split empty dataset",
			testSize: 0.2,
			expect: func(t *testing.T, s *Split, err error) {
				assert := assert.New(t)
				assert.ErrorIs(err, ErrEmptyDataset)
			},
		},
		{
			name:     "split invalid test size",
			x:        x,
			y:        y,
			testSize: 1,
			expect: func(t *testing.T, s *Split, err error) {
				assert := assert.New(t)
				assert.ErrorIs(err, ErrInvalidTestSize)
			},
		},
		{
			name:     "split single row",
			x:        mat.NewDense(1, 1, []float64{1}),
			y:        []int{1},
			testSize: 0.2,
			expect: func(t *testing.T, s *Split, err error) {
				assert := assert.New(t)
				assert.ErrorIs(err, ErrInsufficientRows)
			},
		},
		{
			name:     "split mismatched labels",
			x:        mat.NewDense(2, 1, []float64{1, 2}),
			y:        []int{1},
			testSize: 0.5,
			expect: func(t *testing.T, s *Split, err error) {
				assert := assert.New(t)
				assert.Error(err)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSplit(tc.x, tc.y, tc.testSize, 42)
			tc.expect(t, s, err)
		})
	}
}

func TestNewSplit_Deterministic(t *testing.T) {
	assert := assert.New(t)
	d, err := Generate(200, rand.NewSource(3))
	assert.NoError(err)
	x, y, err := d.Features()
	assert.NoError(err)

	a, err := NewSplit(x, y, 0.2, 42)
	assert.NoError(err)
	b, err := NewSplit(x, y, 0.2, 42)
	assert.NoError(err)
	assert.True(mat.Equal(a.XTrain, b.XTrain))
	assert.True(mat.Equal(a.XTest, b.XTest))
	assert.Equal(a.YTrain, b.YTrain)
	assert.Equal(a.YTest, b.YTest)

	c, err := NewSplit(x, y, 0.2, 43)
	assert.NoError(err)
	assert.False(mat.Equal(a.XTest, c.XTest))
}
