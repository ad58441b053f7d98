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

import "errors"

var (
	// ErrEmptyFeatures is returned when a feature matrix has no rows.
	ErrEmptyFeatures = errors.New("empty features")

	// ErrFeatureMismatch is returned when features do not match the fitted shape or names.
	ErrFeatureMismatch = errors.New("feature mismatch")

	// ErrScalerNotFitted is returned when a scaler is used before Fit.
	ErrScalerNotFitted = errors.New("scaler not fitted")

	// ErrClassifierNotFitted is returned when a classifier is used before Fit.
	ErrClassifierNotFitted = errors.New("classifier not fitted")

	// ErrInvalidHyperParameter is returned when a classifier is configured with invalid values.
	ErrInvalidHyperParameter = errors.New("invalid hyper parameter")

	// ErrUnpairedModel is returned when the classifier and the scaler were fitted by different runs.
	ErrUnpairedModel = errors.New("unpaired classifier and scaler")
)
