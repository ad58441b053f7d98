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
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Split is a train/test partition of a feature matrix.
type Split struct {
	XTrain *mat.Dense
	XTest  *mat.Dense
	YTrain []int
	YTest  []int
}

// NewSplit shuffles the rows of x and y with seed and holds out
// ceil(testSize*n) of them for testing.
func NewSplit(x *mat.Dense, y []int, testSize float64, seed uint64) (*Split, error) {
	if x == nil || len(y) == 0 {
		return nil, ErrEmptyDataset
	}

	n, cols := x.Dims()
	if n != len(y) {
		return nil, errors.Errorf("feature rows %d do not match labels %d", n, len(y))
	}

	if testSize <= 0 || testSize >= 1 || math.IsNaN(testSize) {
		return nil, errors.Wrapf(ErrInvalidTestSize, "test size %v", testSize)
	}

	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTest == 0 || nTrain == 0 {
		return nil, errors.Wrapf(ErrInsufficientRows, "split %d rows with test size %v", n, testSize)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	s := &Split{
		XTest:  mat.NewDense(nTest, cols, nil),
		XTrain: mat.NewDense(nTrain, cols, nil),
		YTest:  make([]int, nTest),
		YTrain: make([]int, nTrain),
	}

	for i, row := range perm {
		if i < nTest {
			s.XTest.SetRow(i, x.RawRowView(row))
			s.YTest[i] = y[row]
			continue
		}

		s.XTrain.SetRow(i-nTest, x.RawRowView(row))
		s.YTrain[i-nTest] = y[row]
	}

	return s, nil
}
