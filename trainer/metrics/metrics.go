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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"d7y.io/bestnode/pkg/types"
	"d7y.io/bestnode/version"
)

// Variables declared for metrics.
var (
	TrainingCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "training_total",
		Help:      "Counter of the number of the training runs.",
	})

	TrainingFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "training_failure_total",
		Help:      "Counter of the number of failed of the training runs.",
	}, []string{"stage"})

	TrainingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "training_duration_seconds",
		Help:      "Histogram of the time each training run took.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	DatasetRowsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "dataset_rows",
		Help:      "Gauge of the number of generated observations of the last run.",
	})

	CrossValidationScoreGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "cross_validation_score",
		Help:      "Gauge of the cross-validation accuracy of the last run.",
	}, []string{"statistic"})

	TestAccuracyGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "test_accuracy",
		Help:      "Gauge of the holdout accuracy of the last run.",
	})

	ArtifactSizeGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "artifact_size_bytes",
		Help:      "Gauge of the size of the persisted artifacts.",
	}, []string{"artifact"})

	VersionGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "version",
		Help:      "Version info of the service.",
	}, []string{"major", "minor", "git_version", "git_commit", "platform", "build_time", "go_version", "go_tags", "go_gcflags"})
)

// WriteTextFile writes a snapshot of the default registry to filename
// in the text exposition format.
func WriteTextFile(filename string) error {
	VersionGauge.WithLabelValues(version.Major, version.Minor, version.GitVersion, version.GitCommit, version.Platform, version.BuildTime, version.GoVersion, version.Gotags, version.Gogcflags).Set(1)
	return prometheus.WriteToTextfile(filename, prometheus.DefaultGatherer)
}
