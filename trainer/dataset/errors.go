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

import "errors"

var (
	// ErrInvalidRowCount is returned when a negative number of rows is requested.
	ErrInvalidRowCount = errors.New("invalid row count")

	// ErrEmptyDataset is returned when an operation needs at least one row.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrInvalidTestSize is returned when the test fraction is not in (0, 1).
	ErrInvalidTestSize = errors.New("invalid test size")

	// ErrInsufficientRows is returned when a split would leave one side empty.
	ErrInsufficientRows = errors.New("insufficient rows")
)
