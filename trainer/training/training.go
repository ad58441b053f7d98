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

//go:generate mockgen -destination mocks/training_mock.go -source training.go -package mocks

package training

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	logger "d7y.io/bestnode/internal/dflog"
	"d7y.io/bestnode/trainer/config"
	"d7y.io/bestnode/trainer/dataset"
	"d7y.io/bestnode/trainer/metrics"
	"d7y.io/bestnode/trainer/storage"
)

const (
	StageGenerate = "generate"
	StageSplit    = "split"
	StageScale    = "scale"
	StageFit      = "fit"
	StageEvaluate = "evaluate"
	StageSave     = "save"
	StageReport   = "report"
)

// Training defines the interface to train the best node classifier.
type Training interface {
	// Train runs the pipeline once and persists the scaler and classifier.
	Train(context.Context) (*Result, error)
}

// Result is the outcome of a training run.
type Result struct {
	// RunID is the id of the run.
	RunID string

	// Rows is the number of generated observations.
	Rows int

	// Eval is the cross-validation on the training rows.
	Eval *Eval

	// Accuracy is the holdout accuracy on the test rows.
	Accuracy float64

	// Duration of the run.
	Duration time.Duration
}

// training implements Training interface.
type training struct {
	// Trainer config.
	config *config.Config

	// Storage interface.
	storage storage.Storage

	// Source of the synthetic observations.
	src rand.Source
}

// New returns a new Training.
func New(cfg *config.Config, storage storage.Storage, src rand.Source) Training {
	return &training{
		config:  cfg,
		storage: storage,
		src:     src,
	}
}

// Run trains once with the given config.
func Run(ctx context.Context, cfg *config.Config, storage storage.Storage, src rand.Source) (*Result, error) {
	return New(cfg, storage, src).Train(ctx)
}

// Train runs generate, split, scale, fit, evaluate and save in order.
func (t *training) Train(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	start := time.Now()
	metrics.TrainingCount.Inc()

	fail := func(stage string, err error) (*Result, error) {
		metrics.TrainingFailureCount.WithLabelValues(stage).Inc()
		logger.WithRunAndStage(runID, stage).Errorf("training failed: %v", err)
		return nil, errors.Wrapf(err, "%s", stage)
	}

	log := logger.WithRun(runID)
	log.Infof("training started with %d rows", t.config.Dataset.Rows)

	// Generate synthetic observations.
	d, err := dataset.Generate(t.config.Dataset.Rows, t.src)
	if err != nil {
		return fail(StageGenerate, err)
	}
	metrics.DatasetRowsGauge.Set(float64(len(d)))

	if t.config.Dataset.Export {
		if err := t.storage.SaveDataset(&d); err != nil {
			return fail(StageGenerate, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return fail(StageSplit, err)
	}

	// Split into train and test rows.
	x, y, err := d.Features()
	if err != nil {
		return fail(StageSplit, err)
	}

	split, err := dataset.NewSplit(x, y, t.config.Split.TestSize, t.config.Split.Seed)
	if err != nil {
		return fail(StageSplit, err)
	}
	log.Debugf("split %d train rows and %d test rows", len(split.YTrain), len(split.YTest))

	// Standardize with statistics of the train rows only.
	scaler := NewScaler(dataset.FeatureNames)
	scaler.RunID = runID
	if err := scaler.Fit(split.XTrain); err != nil {
		return fail(StageScale, err)
	}

	xTrain, err := scaler.Transform(split.XTrain)
	if err != nil {
		return fail(StageScale, err)
	}

	xTest, err := scaler.Transform(split.XTest)
	if err != nil {
		return fail(StageScale, err)
	}

	if err := ctx.Err(); err != nil {
		return fail(StageFit, err)
	}

	// Fit the classifier.
	classifier := t.newClassifier(WithRunID(runID))
	if err := classifier.Fit(xTrain, split.YTrain); err != nil {
		return fail(StageFit, err)
	}
	log.Infof("fitted random forest of %d trees", classifier.Trees())

	// Evaluate with cross-validation and the holdout rows.
	var options []EvaluateOption
	if t.config.Evaluation.Progress {
		options = append(options, WithProgress(os.Stderr))
	}

	eval, err := CrossValidate(ctx, xTrain, split.YTrain, t.config.Evaluation.Folds, func() *Classifier {
		return t.newClassifier()
	}, options...)
	if err != nil {
		return fail(StageEvaluate, err)
	}
	metrics.CrossValidationScoreGauge.WithLabelValues("mean").Set(eval.Mean)
	metrics.CrossValidationScoreGauge.WithLabelValues("std").Set(eval.Std)

	pred, err := classifier.Predict(xTest)
	if err != nil {
		return fail(StageEvaluate, err)
	}

	accuracy, err := Accuracy(split.YTest, pred)
	if err != nil {
		return fail(StageEvaluate, err)
	}
	metrics.TestAccuracyGauge.Set(accuracy)
	log.Infof("cross-validation mean %.4f std %.4f, test accuracy %.4f", eval.Mean, eval.Std, accuracy)

	if err := ctx.Err(); err != nil {
		return fail(StageSave, err)
	}

	// Persist the pair.
	if err := t.storage.SaveModel(classifier, scaler); err != nil {
		return fail(StageSave, err)
	}

	result := &Result{
		RunID:    runID,
		Rows:     len(d),
		Eval:     eval,
		Accuracy: accuracy,
		Duration: time.Since(start),
	}
	metrics.TrainingDuration.Observe(result.Duration.Seconds())

	if err := t.storage.CreateReport(storage.Report{
		RunID:     runID,
		Rows:      result.Rows,
		Trees:     classifier.Trees(),
		Scores:    eval.Scores,
		MeanScore: eval.Mean,
		StdScore:  eval.Std,
		Accuracy:  accuracy,
		Duration:  result.Duration.Nanoseconds(),
		CreatedAt: time.Now().UnixNano(),
	}); err != nil {
		return fail(StageReport, err)
	}

	if t.config.Metrics.Enable {
		if err := metrics.WriteTextFile(t.metricsTextFile()); err != nil {
			return fail(StageReport, err)
		}
	}

	log.Infof("training finished in %s", result.Duration)
	return result, nil
}

func (t *training) newClassifier(options ...ClassifierOption) *Classifier {
	return NewClassifier(append([]ClassifierOption{
		WithTrees(t.config.Forest.Trees),
		WithFeatures(t.config.Forest.Features),
		WithSeed(t.config.Forest.Seed),
	}, options...)...)
}

func (t *training) metricsTextFile() string {
	if filepath.IsAbs(t.config.Metrics.TextFile) {
		return t.config.Metrics.TextFile
	}

	return filepath.Join(t.config.Server.DataDir, t.config.Metrics.TextFile)
}
