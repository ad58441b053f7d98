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

package training

import (
	"math"
	"os"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/mat"
)

// Scaler standardizes features by removing the mean and scaling to unit variance.
type Scaler struct {
	// RunID is the id of the run that fitted the scaler.
	RunID string `msgpack:"runID"`

	// FeatureNames are the columns the scaler was fitted on.
	FeatureNames []string `msgpack:"featureNames"`

	// Mean of every column.
	Mean []float64 `msgpack:"mean"`

	// Scale of every column, the population standard deviation or 1 for constant columns.
	Scale []float64 `msgpack:"scale"`
}

// NewScaler returns a scaler for the given feature columns.
func NewScaler(featureNames []string) *Scaler {
	return &Scaler{FeatureNames: featureNames}
}

// Fitted reports whether Fit has succeeded.
func (s *Scaler) Fitted() bool {
	return len(s.Mean) > 0 && len(s.Mean) == len(s.Scale)
}

// Fit computes the mean and scale of every column of x.
func (s *Scaler) Fit(x *mat.Dense) error {
	if x == nil || x.IsEmpty() {
		return ErrEmptyFeatures
	}

	_, cols := x.Dims()
	if cols != len(s.FeatureNames) {
		return errors.Wrapf(ErrFeatureMismatch, "fit %d columns with %d feature names", cols, len(s.FeatureNames))
	}

	mean := make([]float64, cols)
	scale := make([]float64, cols)
	for j := 0; j < cols; j++ {
		col := stats.Float64Data(mat.Col(nil, j, x))
		m, err := stats.Mean(col)
		if err != nil {
			return errors.Wrapf(err, "mean of %s", s.FeatureNames[j])
		}

		std, err := stats.StandardDeviationPopulation(col)
		if err != nil {
			return errors.Wrapf(err, "standard deviation of %s", s.FeatureNames[j])
		}

		// Constant columns are only centered.
		if std <= zeroVarianceTolerance*math.Max(1, math.Abs(m)) {
			std = 1
		}

		mean[j] = m
		scale[j] = std
	}

	s.Mean = mean
	s.Scale = scale
	return nil
}

// Transform returns (x - mean) / scale.
func (s *Scaler) Transform(x *mat.Dense) (*mat.Dense, error) {
	if err := s.check(x); err != nil {
		return nil, err
	}

	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}, x)
	return out, nil
}

// InverseTransform returns x * scale + mean.
func (s *Scaler) InverseTransform(x *mat.Dense) (*mat.Dense, error) {
	if err := s.check(x); err != nil {
		return nil, err
	}

	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	}, x)
	return out, nil
}

// Save writes the fitted scaler in msgpack format.
func (s *Scaler) Save(filePath string) error {
	if !s.Fitted() {
		return ErrScalerNotFitted
	}

	b, err := msgpack.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(filePath, b, 0600)
}

// Load reads a scaler in msgpack format.
func (s *Scaler) Load(filePath string) error {
	b, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	var loaded Scaler
	if err := msgpack.Unmarshal(b, &loaded); err != nil {
		return err
	}

	if !loaded.Fitted() || len(loaded.FeatureNames) != len(loaded.Mean) {
		return errors.Wrapf(ErrScalerNotFitted, "load %s", filePath)
	}

	*s = loaded
	return nil
}

func (s *Scaler) check(x *mat.Dense) error {
	if !s.Fitted() {
		return ErrScalerNotFitted
	}

	if x == nil || x.IsEmpty() {
		return ErrEmptyFeatures
	}

	if _, cols := x.Dims(); cols != len(s.Mean) {
		return errors.Wrapf(ErrFeatureMismatch, "transform %d columns with scaler of %d", cols, len(s.Mean))
	}

	return nil
}
