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

package storage

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// scoresSeparator separates fold scores within a csv cell.
const scoresSeparator = ";"

// Report contains content for a training run.
type Report struct {
	// RunID is the id of the run.
	RunID string `csv:"runID"`

	// Rows is the number of generated observations.
	Rows int `csv:"rows"`

	// Trees is the number of trees of the classifier.
	Trees int `csv:"trees"`

	// Scores is the cross-validation accuracy of every fold.
	Scores Scores `csv:"scores"`

	// MeanScore is the mean of Scores.
	MeanScore float64 `csv:"meanScore"`

	// StdScore is the population standard deviation of Scores.
	StdScore float64 `csv:"stdScore"`

	// Accuracy is the holdout accuracy.
	Accuracy float64 `csv:"accuracy"`

	// Duration is the run time in nanoseconds.
	Duration int64 `csv:"duration"`

	// CreatedAt is the report create nanosecond time.
	CreatedAt int64 `csv:"createdAt"`
}

// Scores is a list of fold scores stored in a single csv cell.
type Scores []float64

// MarshalCSV implements gocsv.TypeMarshaller.
func (s Scores) MarshalCSV() (string, error) {
	values := make([]string, 0, len(s))
	for _, v := range s {
		values = append(values, strconv.FormatFloat(v, 'g', -1, 64))
	}

	return strings.Join(values, scoresSeparator), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (s *Scores) UnmarshalCSV(value string) error {
	*s = nil
	if value == "" {
		return nil
	}

	for _, field := range strings.Split(value, scoresSeparator) {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return errors.Wrapf(err, "parse score %q", field)
		}

		*s = append(*s, v)
	}

	return nil
}
