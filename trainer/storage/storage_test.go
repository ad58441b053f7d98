/*
 *     Copyright 2022 The Dragonfly Authors
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
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fileArtifact is an Artifact that stores raw bytes.
type fileArtifact struct {
	data []byte
	err  error
}

func (a *fileArtifact) Save(filePath string) error {
	if a.err != nil {
		return a.err
	}

	return os.WriteFile(filePath, a.data, 0600)
}

func (a *fileArtifact) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	a.data = data
	return nil
}

var mockReport = Report{
	RunID:     "4e6c8a5e-9f7d-4f1c-8a6e-0b1f2c3d4e5f",
	Rows:      10000,
	Trees:     100,
	Scores:    Scores{0.98, 0.9775, 0.97875, 0.985, 0.98125},
	MeanScore: 0.9805,
	StdScore:  0.0026,
	Accuracy:  0.9815,
	Duration:  1500000000,
	CreatedAt: 1690000000000000000,
}

func TestStorage_New(t *testing.T) {
	tests := []struct {
		name    string
		baseDir string
		expect  func(t *testing.T, s Storage)
	}{
		{
			name:    "new storage",
			baseDir: os.TempDir(),
			expect: func(t *testing.T, s Storage) {
				assert := assert.New(t)
				assert.Equal(reflect.TypeOf(s).Elem().Name(), "storage")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, New(tc.baseDir))
		})
	}
}

func TestStorage_SaveAndLoad(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(t *testing.T, s Storage, baseDir string)
		expect func(t *testing.T, s Storage, baseDir string)
	}{
		{
			name: "save and load model",
			mock: func(t *testing.T, s Storage, baseDir string) {
				if err := s.SaveModel(&fileArtifact{data: []byte("foo")}, &fileArtifact{data: []byte("bar")}); err != nil {
					t.Fatal(err)
				}
			},
			expect: func(t *testing.T, s Storage, baseDir string) {
				assert := assert.New(t)
				assert.FileExists(filepath.Join(baseDir, ClassifierFileName))
				assert.FileExists(filepath.Join(baseDir, ScalerFileName))

				classifier := &fileArtifact{}
				assert.NoError(s.LoadClassifier(classifier))
				assert.Equal([]byte("foo"), classifier.data)

				scaler := &fileArtifact{}
				assert.NoError(s.LoadScaler(scaler))
				assert.Equal([]byte("bar"), scaler.data)
			},
		},
		{
			name: "save dataset",
			mock: func(t *testing.T, s Storage, baseDir string) {
				if err := s.SaveDataset(&fileArtifact{data: []byte("latency_a\n5\n")}); err != nil {
					t.Fatal(err)
				}
			},
			expect: func(t *testing.T, s Storage, baseDir string) {
				assert := assert.New(t)
				b, err := os.ReadFile(filepath.Join(baseDir, DatasetFileName))
				assert.NoError(err)
				assert.Equal("latency_a\n5\n", string(b))
			},
		},
		{
			name: "save replaces previous model",
			mock: func(t *testing.T, s Storage, baseDir string) {
				if err := s.SaveModel(&fileArtifact{data: []byte("foo")}, &fileArtifact{data: []byte("foo")}); err != nil {
					t.Fatal(err)
				}

				if err := s.SaveModel(&fileArtifact{data: []byte("bar")}, &fileArtifact{data: []byte("bar")}); err != nil {
					t.Fatal(err)
				}
			},
			expect: func(t *testing.T, s Storage, baseDir string) {
				assert := assert.New(t)
				classifier := &fileArtifact{}
				assert.NoError(s.LoadClassifier(classifier))
				assert.Equal([]byte("bar"), classifier.data)

				scaler := &fileArtifact{}
				assert.NoError(s.LoadScaler(scaler))
				assert.Equal([]byte("bar"), scaler.data)
			},
		},
		{
			name: "failed classifier keeps previous model",
			mock: func(t *testing.T, s Storage, baseDir string) {
				if err := s.SaveModel(&fileArtifact{data: []byte("foo")}, &fileArtifact{data: []byte("foo")}); err != nil {
					t.Fatal(err)
				}
			},
			expect: func(t *testing.T, s Storage, baseDir string) {
				assert := assert.New(t)
				err := s.SaveModel(&fileArtifact{err: errors.New("bar")}, &fileArtifact{data: []byte("bar")})
				assert.EqualError(err, "save best_node_model.cls: bar")

				classifier := &fileArtifact{}
				assert.NoError(s.LoadClassifier(classifier))
				assert.Equal([]byte("foo"), classifier.data)

				scaler := &fileArtifact{}
				assert.NoError(s.LoadScaler(scaler))
				assert.Equal([]byte("foo"), scaler.data)

				matches, err := filepath.Glob(filepath.Join(baseDir, "*.tmp"))
				assert.NoError(err)
				assert.Empty(matches)
			},
		},
		{
			name: "failed scaler keeps previous model",
			mock: func(t *testing.T, s Storage, baseDir string) {
				if err := s.SaveModel(&fileArtifact{data: []byte("foo")}, &fileArtifact{data: []byte("foo")}); err != nil {
					t.Fatal(err)
				}
			},
			expect: func(t *testing.T, s Storage, baseDir string) {
				assert := assert.New(t)
				err := s.SaveModel(&fileArtifact{data: []byte("bar")}, &fileArtifact{err: errors.New("disk full")})
				assert.EqualError(err, "save scaler.msgpack: disk full")

				classifier := &fileArtifact{}
				assert.NoError(s.LoadClassifier(classifier))
				assert.Equal([]byte("foo"), classifier.data)

				scaler := &fileArtifact{}
				assert.NoError(s.LoadScaler(scaler))
				assert.Equal([]byte("foo"), scaler.data)

				matches, err := filepath.Glob(filepath.Join(baseDir, "*.tmp"))
				assert.NoError(err)
				assert.Empty(matches)
			},
		},
		{
			name: "failed save keeps previous dataset",
			mock: func(t *testing.T, s Storage, baseDir string) {
				if err := s.SaveDataset(&fileArtifact{data: []byte("foo")}); err != nil {
					t.Fatal(err)
				}
			},
			expect: func(t *testing.T, s Storage, baseDir string) {
				assert := assert.New(t)
				err := s.SaveDataset(&fileArtifact{err: errors.New("bar")})
				assert.EqualError(err, "save dataset.csv: bar")

				b, err := os.ReadFile(filepath.Join(baseDir, DatasetFileName))
				assert.NoError(err)
				assert.Equal("foo", string(b))
			},
		},
		{
			name: "save to missing directory",
			mock: func(t *testing.T, s Storage, baseDir string) {
				s.(*storage).baseDir = filepath.Join(baseDir, "foo")
			},
			expect: func(t *testing.T, s Storage, baseDir string) {
				assert := assert.New(t)
				assert.Error(s.SaveModel(&fileArtifact{data: []byte("foo")}, &fileArtifact{data: []byte("bar")}))
			},
		},
		{
			name: "load missing artifact",
			mock: func(t *testing.T, s Storage, baseDir string) {},
			expect: func(t *testing.T, s Storage, baseDir string) {
				assert := assert.New(t)
				err := s.LoadClassifier(&fileArtifact{})
				assert.True(os.IsNotExist(err))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			baseDir := t.TempDir()
			s := New(baseDir)
			tc.mock(t, s, baseDir)
			tc.expect(t, s, baseDir)
		})
	}
}

func TestStorage_ListReport(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(t *testing.T, s Storage, baseDir string)
		expect func(t *testing.T, s Storage, baseDir string)
	}{
		{
			name: "empty csv file given",
			mock: func(t *testing.T, s Storage, baseDir string) {
				file, err := os.OpenFile(filepath.Join(baseDir, ReportFileName), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
				if err != nil {
					t.Fatal(err)
				}
				defer file.Close()
			},
			expect: func(t *testing.T, s Storage, baseDir string) {
				assert := assert.New(t)
				_, err := s.ListReport()
				assert.EqualError(err, "empty csv file given")
			},
		},
		{
			name: "get file failed",
			mock: func(t *testing.T, s Storage, baseDir string) {},
			expect: func(t *testing.T, s Storage, baseDir string) {
				assert := assert.New(t)
				_, err := s.ListReport()
				assert.True(os.IsNotExist(err))
			},
		},
		{
			name: "list reports of a file",
			mock: func(t *testing.T, s Storage, baseDir string) {
				for i := 0; i < 2; i++ {
					if err := s.CreateReport(mockReport); err != nil {
						t.Fatal(err)
					}
				}
			},
			expect: func(t *testing.T, s Storage, baseDir string) {
				assert := assert.New(t)
				reports, err := s.ListReport()
				assert.NoError(err)
				assert.Len(reports, 2)
				assert.EqualValues(mockReport, reports[0])
				assert.EqualValues(mockReport, reports[1])
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			baseDir := t.TempDir()
			s := New(baseDir)
			tc.mock(t, s, baseDir)
			tc.expect(t, s, baseDir)
		})
	}
}

func TestStorage_Clear(t *testing.T) {
	assert := assert.New(t)
	baseDir := t.TempDir()
	s := New(baseDir)

	assert.NoError(s.Clear())
	assert.NoError(s.SaveModel(&fileArtifact{data: []byte("foo")}, &fileArtifact{data: []byte("bar")}))
	assert.NoError(s.SaveDataset(&fileArtifact{data: []byte("baz")}))
	assert.NoError(s.CreateReport(mockReport))
	assert.NoError(s.Clear())

	for _, name := range []string{ClassifierFileName, ScalerFileName, DatasetFileName, ReportFileName} {
		assert.NoFileExists(filepath.Join(baseDir, name))
	}
}

func TestScores_CSV(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		expect func(t *testing.T, s Scores, err error)
	}{
		{
			name:  "unmarshal scores",
			value: "0.5;1;0.25",
			expect: func(t *testing.T, s Scores, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(Scores{0.5, 1, 0.25}, s)

				value, err := s.MarshalCSV()
				assert.NoError(err)
				assert.Equal("0.5;1;0.25", value)
			},
		},
		{
			name:  "unmarshal empty scores",
			value: "",
			expect: func(t *testing.T, s Scores, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Empty(s)
			},
		},
		{
			name:  "unmarshal invalid scores",
			value: "0.5;foo",
			expect: func(t *testing.T, s Scores, err error) {
				assert := assert.New(t)
				assert.Error(err)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var s Scores
			err := s.UnmarshalCSV(tc.value)
			tc.expect(t, s, err)
		})
	}
}
