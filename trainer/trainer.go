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

package trainer

import (
	"context"
	"io"
	"time"

	"golang.org/x/exp/rand"

	logger "d7y.io/bestnode/internal/dflog"
	"d7y.io/bestnode/trainer/config"
	"d7y.io/bestnode/trainer/dataset"
	"d7y.io/bestnode/trainer/storage"
	"d7y.io/bestnode/trainer/training"
)

type Server struct {
	// Server configuration.
	config *config.Config

	// Storage interface.
	storage storage.Storage

	// Training interface.
	training training.Training
}

func New(cfg *config.Config) (*Server, error) {
	s := &Server{config: cfg}

	// Initialize Storage.
	s.storage = storage.New(cfg.Server.DataDir)

	// Initialize training.
	s.training = training.New(cfg, s.storage, newSource(cfg.Dataset.Seed))
	return s, nil
}

// Train runs the training pipeline once.
func (s *Server) Train(ctx context.Context) (*training.Result, error) {
	return s.training.Train(ctx)
}

// Predict returns the best node of every csv observation read from r.
func (s *Server) Predict(r io.Reader) ([]int, error) {
	d, err := dataset.ReadCSV(r)
	if err != nil {
		return nil, err
	}

	p, err := training.NewPredictor(s.storage)
	if err != nil {
		return nil, err
	}

	return p.Predict(d)
}

// Reports returns the reports of previous runs.
func (s *Server) Reports() ([]storage.Report, error) {
	return s.storage.ListReport()
}

// Clear removes persisted artifacts and reports.
func (s *Server) Clear() error {
	if err := s.storage.Clear(); err != nil {
		logger.Errorf("clean storage file failed %s", err.Error())
		return err
	}

	logger.Info("clean storage file completed")
	return nil
}

// newSource returns the source of synthetic observations, seeded from the
// clock unless a seed is configured.
func newSource(seed *uint64) rand.Source {
	if seed != nil {
		return rand.NewSource(*seed)
	}

	return rand.NewSource(uint64(time.Now().UnixNano()))
}
