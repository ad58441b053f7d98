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
	"github.com/pkg/errors"

	logger "d7y.io/bestnode/internal/dflog"
	"d7y.io/bestnode/pkg/slices"
	"d7y.io/bestnode/trainer/dataset"
	"d7y.io/bestnode/trainer/storage"
)

// Predictor applies a persisted scaler and classifier pair.
type Predictor struct {
	scaler     *Scaler
	classifier *Classifier
}

// NewPredictor loads the scaler and the classifier from storage. Both must
// have been fitted by the same run on the current feature columns.
func NewPredictor(s storage.Storage) (*Predictor, error) {
	scaler := NewScaler(nil)
	if err := s.LoadScaler(scaler); err != nil {
		return nil, err
	}

	if !slices.Equal(scaler.FeatureNames, dataset.FeatureNames) {
		return nil, errors.Wrapf(ErrFeatureMismatch, "scaler fitted on %v", scaler.FeatureNames)
	}

	classifier := NewClassifier()
	if err := s.LoadClassifier(classifier); err != nil {
		return nil, err
	}

	if !slices.Equal(classifier.FeatureNames(), scaler.FeatureNames) {
		return nil, errors.Wrapf(ErrFeatureMismatch, "classifier fitted on %v", classifier.FeatureNames())
	}

	if classifier.RunID() != scaler.RunID {
		return nil, errors.Wrapf(ErrUnpairedModel, "classifier of run %q, scaler of run %q", classifier.RunID(), scaler.RunID)
	}

	logger.WithRun(scaler.RunID).With("features", len(scaler.FeatureNames)).Info("predictor loaded")
	return &Predictor{
		scaler:     scaler,
		classifier: classifier,
	}, nil
}

// Predict returns the best node of every observation.
func (p *Predictor) Predict(d dataset.Dataset) ([]int, error) {
	x, _, err := d.Features()
	if err != nil {
		return nil, err
	}

	scaled, err := p.scaler.Transform(x)
	if err != nil {
		return nil, err
	}

	return p.classifier.Predict(scaled)
}
