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

import (
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// ReadCSV reads observations from csv with a header row. Derived fields and
// labels are recomputed from the base fields, so those columns may be omitted.
func ReadCSV(r io.Reader) (Dataset, error) {
	var d Dataset
	if err := gocsv.Unmarshal(r, &d); err != nil {
		return nil, err
	}

	for i := range d {
		d[i].Derive()
	}

	return d, nil
}

// WriteCSV writes observations as csv with a header row.
func (d Dataset) WriteCSV(w io.Writer) error {
	return gocsv.Marshal(d, w)
}

// Save writes the dataset as csv to the given file path.
func (d Dataset) Save(filePath string) error {
	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	return d.WriteCSV(file)
}

// Load reads the dataset from a csv file.
func (d *Dataset) Load(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	loaded, err := ReadCSV(file)
	if err != nil {
		return err
	}

	*d = loaded
	return nil
}
