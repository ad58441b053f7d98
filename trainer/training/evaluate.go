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
	"context"
	"io"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sjwhitworth/golearn/evaluation"
	"gonum.org/v1/gonum/mat"
)

// Eval is the summary of a cross-validation.
type Eval struct {
	// Scores is the accuracy of every fold.
	Scores []float64

	// Mean of Scores.
	Mean float64

	// Std is the population standard deviation of Scores.
	Std float64
}

// NewClassifierFunc returns a fresh unfitted classifier.
type NewClassifierFunc func() *Classifier

type evaluateOptions struct {
	progress io.Writer
}

// EvaluateOption is a functional option for configuring cross-validation.
type EvaluateOption func(o *evaluateOptions)

// WithProgress renders a progress bar of folds to w.
func WithProgress(w io.Writer) EvaluateOption {
	return func(o *evaluateOptions) {
		o.progress = w
	}
}

// CrossValidate fits one classifier per stratified fold of x and y and
// returns the accuracy of every fold on its held out rows.
func CrossValidate(ctx context.Context, x *mat.Dense, y []int, k int, newClassifier NewClassifierFunc, options ...EvaluateOption) (*Eval, error) {
	o := &evaluateOptions{}
	for _, opt := range options {
		opt(o)
	}

	if x == nil || x.IsEmpty() {
		return nil, ErrEmptyFeatures
	}

	rows, cols := x.Dims()
	if rows != len(y) {
		return nil, errors.Wrapf(ErrFeatureMismatch, "%d rows with %d labels", rows, len(y))
	}

	folds, err := StratifiedKFold(y, k)
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if o.progress != nil {
		bar = progressbar.NewOptions(k,
			progressbar.OptionSetWriter(o.progress),
			progressbar.OptionSetDescription("cross-validation"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	scores := make([]float64, 0, k)
	for fold := 0; fold < k; fold++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var train, test []int
		for i, f := range folds {
			if f == fold {
				test = append(test, i)
				continue
			}

			train = append(train, i)
		}

		xTrain, yTrain := selectRows(x, y, cols, train)
		xTest, yTest := selectRows(x, y, cols, test)
		classifier := newClassifier()
		if err := classifier.Fit(xTrain, yTrain); err != nil {
			return nil, errors.Wrapf(err, "fit fold %d", fold)
		}

		pred, err := classifier.Predict(xTest)
		if err != nil {
			return nil, errors.Wrapf(err, "predict fold %d", fold)
		}

		score, err := Accuracy(yTest, pred)
		if err != nil {
			return nil, errors.Wrapf(err, "score fold %d", fold)
		}

		scores = append(scores, score)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	mean, err := stats.Mean(scores)
	if err != nil {
		return nil, err
	}

	std, err := stats.StandardDeviationPopulation(scores)
	if err != nil {
		return nil, err
	}

	return &Eval{
		Scores: scores,
		Mean:   mean,
		Std:    std,
	}, nil
}

// StratifiedKFold assigns every row of y to one of k folds without
// shuffling. Classes are numbered by first appearance and every class is
// spread over the folds in order, so fold sizes differ by at most one per
// class.
func StratifiedKFold(y []int, k int) ([]int, error) {
	if k < 2 {
		return nil, errors.Errorf("folds %d must be at least 2", k)
	}

	if len(y) < k {
		return nil, errors.Errorf("folds %d greater than rows %d", k, len(y))
	}

	classes := map[int]int{}
	encoded := make([]int, len(y))
	for i, label := range y {
		c, ok := classes[label]
		if !ok {
			c = len(classes)
			classes[label] = c
		}

		encoded[i] = c
	}

	counts := make([]int, len(classes))
	for _, c := range encoded {
		counts[c]++
	}

	largest := 0
	for _, n := range counts {
		if n > largest {
			largest = n
		}
	}

	if k > largest {
		return nil, errors.Errorf("folds %d greater than the members of every class", k)
	}

	sorted := append([]int(nil), encoded...)
	sort.Ints(sorted)

	// allocation[f][c] is the number of rows of class c in fold f.
	allocation := make([][]int, k)
	for f := 0; f < k; f++ {
		allocation[f] = make([]int, len(classes))
		for i := f; i < len(sorted); i += k {
			allocation[f][sorted[i]]++
		}
	}

	folds := make([]int, len(y))
	for c := range counts {
		assign := make([]int, 0, counts[c])
		for f := 0; f < k; f++ {
			for n := 0; n < allocation[f][c]; n++ {
				assign = append(assign, f)
			}
		}

		next := 0
		for i, e := range encoded {
			if e == c {
				folds[i] = assign[next]
				next++
			}
		}
	}

	return folds, nil
}

// Accuracy returns the fraction of pred equal to truth.
func Accuracy(truth, pred []int) (float64, error) {
	if len(truth) == 0 {
		return 0, errors.New("empty labels")
	}

	if len(truth) != len(pred) {
		return 0, errors.Errorf("labels %d do not match predictions %d", len(truth), len(pred))
	}

	ref, err := newLabelInstances(truth)
	if err != nil {
		return 0, err
	}

	gen, err := newLabelInstances(pred)
	if err != nil {
		return 0, err
	}

	cm, err := evaluation.GetConfusionMatrix(ref, gen)
	if err != nil {
		return 0, err
	}

	return evaluation.GetAccuracy(cm), nil
}

func selectRows(x *mat.Dense, y []int, cols int, rows []int) (*mat.Dense, []int) {
	xs := mat.NewDense(len(rows), cols, nil)
	ys := make([]int, len(rows))
	for i, row := range rows {
		xs.SetRow(i, x.RawRowView(row))
		ys[i] = y[row]
	}

	return xs, ys
}
