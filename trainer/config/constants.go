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

package config

const (
	// DefaultLogRotateMaxSize is the default maximum size in megabytes of log files before rotation.
	DefaultLogRotateMaxSize = 1024

	// DefaultLogRotateMaxAge is the default number of days to retain old log files.
	DefaultLogRotateMaxAge = 7

	// DefaultLogRotateMaxBackups is the default maximum number of old log files to keep.
	DefaultLogRotateMaxBackups = 20
)

const (
	// DefaultDatasetRows is the default number of synthetic observations.
	DefaultDatasetRows = 10000
)

const (
	// DefaultSplitTestSize is the default fraction of rows held out for testing.
	DefaultSplitTestSize = 0.2

	// DefaultSplitSeed is the default seed of the train/test shuffle.
	DefaultSplitSeed = 42
)

const (
	// DefaultForestTrees is the default number of trees in the forest.
	DefaultForestTrees = 100

	// DefaultForestFeatures is the default number of features considered at each split.
	DefaultForestFeatures = 3

	// DefaultForestSeed is the default seed of the forest.
	DefaultForestSeed = 42
)

const (
	// DefaultEvaluationFolds is the default number of cross-validation folds.
	DefaultEvaluationFolds = 5
)

const (
	// DefaultMetricsTextFile is the default file name of the metrics snapshot under the data directory.
	DefaultMetricsTextFile = "metrics.prom"
)
