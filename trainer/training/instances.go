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
	"strconv"

	"github.com/pkg/errors"
	"github.com/sjwhitworth/golearn/base"
	"gonum.org/v1/gonum/mat"

	"d7y.io/bestnode/pkg/slices"
)

// classValues are registered in this order so both labels have stable system values.
var classValues = []string{"0", "1"}

// newClassAttribute returns the categorical class attribute.
func newClassAttribute() *base.CategoricalAttribute {
	attr := base.NewCategoricalAttribute()
	attr.SetName(ClassAttributeName)
	for _, v := range classValues {
		attr.GetSysValFromString(v)
	}

	return attr
}

// newInstances converts x and y into golearn instances with one float
// attribute per feature name and a categorical class attribute. y may be
// nil for prediction.
func newInstances(featureNames []string, x *mat.Dense, y []int) (*base.DenseInstances, error) {
	rows, cols := x.Dims()
	if cols != len(featureNames) {
		return nil, errors.Wrapf(ErrFeatureMismatch, "%d columns with %d feature names", cols, len(featureNames))
	}

	if y != nil && len(y) != rows {
		return nil, errors.Wrapf(ErrFeatureMismatch, "%d rows with %d labels", rows, len(y))
	}

	instances := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, cols)
	for j, name := range featureNames {
		specs[j] = instances.AddAttribute(base.NewFloatAttribute(name))
	}

	classAttr := newClassAttribute()
	classSpec := instances.AddAttribute(classAttr)
	if err := instances.AddClassAttribute(classAttr); err != nil {
		return nil, err
	}

	if err := instances.Extend(rows); err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			instances.Set(specs[j], i, base.PackFloatToBytes(x.At(i, j)))
		}

		if y != nil {
			label := strconv.Itoa(y[i])
			if !slices.Contains(classValues, label) {
				return nil, errors.Errorf("unknown label %s of row %d", label, i)
			}

			instances.Set(classSpec, i, classAttr.GetSysValFromString(label))
		}
	}

	return instances, nil
}

// newLabelInstances converts labels into instances holding only the class attribute.
func newLabelInstances(y []int) (*base.DenseInstances, error) {
	instances := base.NewDenseInstances()
	classAttr := newClassAttribute()
	classSpec := instances.AddAttribute(classAttr)
	if err := instances.AddClassAttribute(classAttr); err != nil {
		return nil, err
	}

	if err := instances.Extend(len(y)); err != nil {
		return nil, err
	}

	for i, label := range y {
		instances.Set(classSpec, i, classAttr.GetSysValFromString(strconv.Itoa(label)))
	}

	return instances, nil
}

// labels reads the class column of a prediction grid.
func labels(grid base.FixedDataGrid) ([]int, error) {
	_, rows := grid.Size()
	y := make([]int, rows)
	for i := 0; i < rows; i++ {
		label, err := strconv.Atoi(base.GetClass(grid, i))
		if err != nil {
			return nil, errors.Wrapf(err, "parse class of row %d", i)
		}

		y[i] = label
	}

	return y, nil
}
