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
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// MinLatency is the lowest generated latency, inclusive.
	MinLatency = 5

	// MaxLatency is the highest generated latency, inclusive.
	MaxLatency = 50

	// MinLoad is the lowest generated load, inclusive.
	MinLoad = 1

	// MaxLoad is the highest generated load, inclusive.
	MaxLoad = 10

	// MinSuccessRate is the lower bound of generated success rates.
	MinSuccessRate = 0.85

	// MaxSuccessRate is the upper bound of generated success rates.
	MaxSuccessRate = 1.0
)

// Generate draws n observations from src.
func Generate(n int, src rand.Source) (Dataset, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidRowCount, "generate %d rows", n)
	}

	r := rand.New(src)
	successRate := distuv.Uniform{
		Min: MinSuccessRate,
		Max: MaxSuccessRate,
		Src: src,
	}

	d := make(Dataset, 0, n)
	for i := 0; i < n; i++ {
		d = append(d, NewObservation(
			float64(randInt(r, MinLatency, MaxLatency)),
			float64(randInt(r, MinLatency, MaxLatency)),
			float64(randInt(r, MinLoad, MaxLoad)),
			float64(randInt(r, MinLoad, MaxLoad)),
			round2(successRate.Rand()),
			round2(successRate.Rand()),
		))
	}

	return d, nil
}

// randInt returns an integer in [min, max].
func randInt(r *rand.Rand, min, max int) int {
	return min + r.Intn(max-min+1)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
