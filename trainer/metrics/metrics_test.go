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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteTextFile(t *testing.T) {
	tests := []struct {
		name     string
		filename func(dir string) string
		expect   func(t *testing.T, filename string, err error)
	}{
		{
			name: "write metrics snapshot",
			filename: func(dir string) string {
				return filepath.Join(dir, "metrics.prom")
			},
			expect: func(t *testing.T, filename string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				b, err := os.ReadFile(filename)
				assert.NoError(err)
				assert.Contains(string(b), "bestnode_trainer_training_total 1")
				assert.Contains(string(b), "bestnode_trainer_test_accuracy 0.9")
				assert.Contains(string(b), "bestnode_trainer_version")
			},
		},
		{
			name: "write metrics snapshot to missing directory",
			filename: func(dir string) string {
				return filepath.Join(dir, "foo", "metrics.prom")
			},
			expect: func(t *testing.T, filename string, err error) {
				assert := assert.New(t)
				assert.Error(err)
			},
		},
	}

	TrainingCount.Add(1)
	TestAccuracyGauge.Set(0.9)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			filename := tc.filename(t.TempDir())
			tc.expect(t, filename, WriteTextFile(filename))
		})
	}
}
