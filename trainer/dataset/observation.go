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
	"gonum.org/v1/gonum/mat"
)

const (
	// NodeA is the label of observations where node A has the lower latency.
	NodeA = 0

	// NodeB is the label of observations where node B is preferred, ties included.
	NodeB = 1
)

// FeatureNames is the column order of every feature matrix.
var FeatureNames = []string{
	"latency_a",
	"latency_b",
	"load_a",
	"load_b",
	"success_rate_a",
	"success_rate_b",
	"latency_diff",
	"load_diff",
	"success_rate_diff",
}

// Observation contains content for a pair of candidate nodes.
type Observation struct {
	// LatencyA is the latency of node A in milliseconds.
	LatencyA float64 `csv:"latency_a"`

	// LatencyB is the latency of node B in milliseconds.
	LatencyB float64 `csv:"latency_b"`

	// LoadA is the load of node A.
	LoadA float64 `csv:"load_a"`

	// LoadB is the load of node B.
	LoadB float64 `csv:"load_b"`

	// SuccessRateA is the success rate of node A.
	SuccessRateA float64 `csv:"success_rate_a"`

	// SuccessRateB is the success rate of node B.
	SuccessRateB float64 `csv:"success_rate_b"`

	// LatencyDiff is LatencyA minus LatencyB.
	LatencyDiff float64 `csv:"latency_diff"`

	// LoadDiff is LoadA minus LoadB.
	LoadDiff float64 `csv:"load_diff"`

	// SuccessRateDiff is SuccessRateA minus SuccessRateB.
	SuccessRateDiff float64 `csv:"success_rate_diff"`

	// BestNode is the label, NodeA or NodeB.
	BestNode int `csv:"best_node"`
}

// NewObservation returns an observation with derived fields and label filled.
func NewObservation(latencyA, latencyB, loadA, loadB, successRateA, successRateB float64) Observation {
	o := Observation{
		LatencyA:     latencyA,
		LatencyB:     latencyB,
		LoadA:        loadA,
		LoadB:        loadB,
		SuccessRateA: successRateA,
		SuccessRateB: successRateB,
	}
	o.Derive()
	return o
}

// Derive recomputes the difference features and the label from the base fields.
func (o *Observation) Derive() {
	o.LatencyDiff = o.LatencyA - o.LatencyB
	o.LoadDiff = o.LoadA - o.LoadB
	o.SuccessRateDiff = o.SuccessRateA - o.SuccessRateB

	o.BestNode = NodeB
	if o.LatencyA < o.LatencyB {
		o.BestNode = NodeA
	}
}

// Features returns the observation in FeatureNames order.
func (o Observation) Features() []float64 {
	return []float64{
		o.LatencyA,
		o.LatencyB,
		o.LoadA,
		o.LoadB,
		o.SuccessRateA,
		o.SuccessRateB,
		o.LatencyDiff,
		o.LoadDiff,
		o.SuccessRateDiff,
	}
}

// Dataset is an ordered set of observations.
type Dataset []Observation

// Features projects the dataset onto the feature matrix and the label vector.
func (d Dataset) Features() (*mat.Dense, []int, error) {
	if len(d) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	x := mat.NewDense(len(d), len(FeatureNames), nil)
	y := make([]int, len(d))
	for i, o := range d {
		x.SetRow(i, o.Features())
		y[i] = o.BestNode
	}

	return x, y, nil
}
