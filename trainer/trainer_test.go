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

package trainer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"d7y.io/bestnode/trainer/config"
	"d7y.io/bestnode/trainer/storage"
	storagemocks "d7y.io/bestnode/trainer/storage/mocks"
	"d7y.io/bestnode/trainer/training"
	trainingmocks "d7y.io/bestnode/trainer/training/mocks"
)

func newMockConfig(dataDir string) *config.Config {
	seed := uint64(42)
	cfg := config.New()
	cfg.Server.DataDir = dataDir
	cfg.Dataset.Rows = 500
	cfg.Dataset.Seed = &seed
	cfg.Forest.Trees = 5
	cfg.Evaluation.Folds = 2
	return cfg
}

func TestServer_Train(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(mt *trainingmocks.MockTrainingMockRecorder)
		expect func(t *testing.T, result *training.Result, err error)
	}{
		{
			name: "train succeeded",
			mock: func(mt *trainingmocks.MockTrainingMockRecorder) {
				mt.Train(gomock.Any()).Return(&training.Result{RunID: "foo", Accuracy: 0.9}, nil).Times(1)
			},
			expect: func(t *testing.T, result *training.Result, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("foo", result.RunID)
			},
		},
		{
			name: "train failed",
			mock: func(mt *trainingmocks.MockTrainingMockRecorder) {
				mt.Train(gomock.Any()).Return(nil, errors.New("foo")).Times(1)
			},
			expect: func(t *testing.T, result *training.Result, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "foo")
				assert.Nil(result)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			mt := trainingmocks.NewMockTraining(ctl)
			tc.mock(mt.EXPECT())

			svr := &Server{config: config.New(), training: mt}
			result, err := svr.Train(context.Background())
			tc.expect(t, result, err)
		})
	}
}

func TestServer_TrainAndPredict(t *testing.T) {
	assert := assert.New(t)
	dataDir := t.TempDir()
	svr, err := New(newMockConfig(dataDir))
	assert.NoError(err)

	result, err := svr.Train(context.Background())
	assert.NoError(err)
	assert.Equal(500, result.Rows)

	reports, err := svr.Reports()
	assert.NoError(err)
	assert.Len(reports, 1)

	pred, err := svr.Predict(strings.NewReader("latency_a,latency_b,load_a,load_b,success_rate_a,success_rate_b\n5,50,1,1,0.9,0.9\n50,5,1,1,0.9,0.9\n"))
	assert.NoError(err)
	assert.Len(pred, 2)

	assert.NoError(svr.Clear())
	_, err = os.Stat(filepath.Join(dataDir, storage.ClassifierFileName))
	assert.True(os.IsNotExist(err))

	_, err = svr.Predict(strings.NewReader("latency_a,latency_b,load_a,load_b,success_rate_a,success_rate_b\n5,50,1,1,0.9,0.9\n"))
	assert.Error(err)
}

func TestServer_Clear(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(ms *storagemocks.MockStorageMockRecorder)
		expect func(t *testing.T, err error)
	}{
		{
			name: "clear succeeded",
			mock: func(ms *storagemocks.MockStorageMockRecorder) {
				ms.Clear().Return(nil).Times(1)
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name: "clear failed",
			mock: func(ms *storagemocks.MockStorageMockRecorder) {
				ms.Clear().Return(errors.New("foo")).Times(1)
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "foo")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			ms := storagemocks.NewMockStorage(ctl)
			tc.mock(ms.EXPECT())

			svr := &Server{config: config.New(), storage: ms}
			tc.expect(t, svr.Clear())
		})
	}
}
