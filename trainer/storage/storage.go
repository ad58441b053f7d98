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

//go:generate mockgen -destination mocks/storage_mock.go -source storage.go -package mocks

package storage

import (
	"os"
	"path/filepath"

	"github.com/docker/go-units"
	"github.com/gocarina/gocsv"
	"github.com/gofrs/flock"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	logger "d7y.io/bestnode/internal/dflog"
	"d7y.io/bestnode/trainer/metrics"
)

const (
	// ClassifierFileName is file name of the serialized classifier.
	ClassifierFileName = "best_node_model.cls"

	// ScalerFileName is file name of the serialized scaler.
	ScalerFileName = "scaler.msgpack"

	// DatasetFileName is file name of the exported dataset.
	DatasetFileName = "dataset.csv"

	// ReportFileName is file name of the run reports.
	ReportFileName = "report.csv"

	// lockFileName is file name of the data directory lock.
	lockFileName = ".lock"
)

// Artifact is a fitted object that can be written to and read from a file.
type Artifact interface {
	// Save writes the artifact to the given file path.
	Save(string) error

	// Load reads the artifact from the given file path.
	Load(string) error
}

// Storage is the interface used for storage.
type Storage interface {
	// SaveModel persists the classifier and the scaler as a pair, replacing
	// the previous pair only when both are written.
	SaveModel(classifier Artifact, scaler Artifact) error

	// SaveDataset persists the generated dataset, replacing the previous one.
	SaveDataset(Artifact) error

	// LoadClassifier reads the persisted classifier into the given artifact.
	LoadClassifier(Artifact) error

	// LoadScaler reads the persisted scaler into the given artifact.
	LoadScaler(Artifact) error

	// CreateReport appends a run report into the csv file.
	CreateReport(Report) error

	// ListReport returns all run reports in the csv file.
	ListReport() ([]Report, error)

	// Clear removes all files.
	Clear() error
}

type storage struct {
	baseDir string
	lock    *flock.Flock
}

// New returns a new Storage instance.
func New(baseDir string) Storage {
	return &storage{
		baseDir: baseDir,
		lock:    flock.New(filepath.Join(baseDir, lockFileName)),
	}
}

// SaveModel persists the classifier and the scaler as a pair, replacing
// the previous pair only when both are written.
func (s *storage) SaveModel(classifier Artifact, scaler Artifact) error {
	if err := s.lock.Lock(); err != nil {
		return errors.Wrap(err, "lock data directory")
	}
	defer s.lock.Unlock()

	classifierTmp, err := s.stage(ClassifierFileName, classifier)
	if err != nil {
		return err
	}

	scalerTmp, err := s.stage(ScalerFileName, scaler)
	if err != nil {
		os.Remove(classifierTmp)
		return err
	}

	if err := s.commit(ScalerFileName, scalerTmp); err != nil {
		os.Remove(classifierTmp)
		return err
	}

	return s.commit(ClassifierFileName, classifierTmp)
}

// SaveDataset persists the generated dataset, replacing the previous one.
func (s *storage) SaveDataset(dataset Artifact) error {
	return s.save(DatasetFileName, dataset)
}

// LoadClassifier reads the persisted classifier into the given artifact.
func (s *storage) LoadClassifier(classifier Artifact) error {
	return s.load(ClassifierFileName, classifier)
}

// LoadScaler reads the persisted scaler into the given artifact.
func (s *storage) LoadScaler(scaler Artifact) error {
	return s.load(ScalerFileName, scaler)
}

// CreateReport appends a run report into the csv file.
func (s *storage) CreateReport(report Report) error {
	if err := s.lock.Lock(); err != nil {
		return errors.Wrap(err, "lock data directory")
	}
	defer s.lock.Unlock()

	file, err := os.OpenFile(s.filename(ReportFileName), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gocsv.MarshalWithoutHeaders([]Report{report}, file); err != nil {
		return errors.Wrapf(err, "write report %s", report.RunID)
	}

	return nil
}

// ListReport returns all run reports in the csv file.
func (s *storage) ListReport() ([]Report, error) {
	if err := s.lock.RLock(); err != nil {
		return nil, errors.Wrap(err, "lock data directory")
	}
	defer s.lock.Unlock()

	file, err := os.Open(s.filename(ReportFileName))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var reports []Report
	if err := gocsv.UnmarshalWithoutHeaders(file, &reports); err != nil {
		return nil, err
	}

	return reports, nil
}

// Clear removes all files.
func (s *storage) Clear() error {
	if err := s.lock.Lock(); err != nil {
		return errors.Wrap(err, "lock data directory")
	}
	defer s.lock.Unlock()

	var result *multierror.Error
	for _, name := range []string{ClassifierFileName, ScalerFileName, DatasetFileName, ReportFileName} {
		if err := os.Remove(s.filename(name)); err != nil && !os.IsNotExist(err) {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// save writes the artifact to a temporary file and renames it into place,
// so a failed write never replaces a previous artifact.
func (s *storage) save(name string, artifact Artifact) error {
	if err := s.lock.Lock(); err != nil {
		return errors.Wrap(err, "lock data directory")
	}
	defer s.lock.Unlock()

	tmp, err := s.stage(name, artifact)
	if err != nil {
		return err
	}

	return s.commit(name, tmp)
}

// stage writes the artifact to a temporary file of the data directory.
func (s *storage) stage(name string, artifact Artifact) (string, error) {
	file, err := os.CreateTemp(s.baseDir, name+".*.tmp")
	if err != nil {
		return "", err
	}

	tmp := file.Name()
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}

	if err := artifact.Save(tmp); err != nil {
		os.Remove(tmp)
		return "", errors.Wrapf(err, "save %s", name)
	}

	return tmp, nil
}

// commit renames a staged file into place.
func (s *storage) commit(name, tmp string) error {
	filename := s.filename(name)
	if err := os.Rename(tmp, filename); err != nil {
		os.Remove(tmp)
		return err
	}

	info, err := os.Stat(filename)
	if err != nil {
		return err
	}

	metrics.ArtifactSizeGauge.WithLabelValues(name).Set(float64(info.Size()))
	logger.StorageLogger.Infof("save %s to %s, size is %s", name, filename, units.HumanSize(float64(info.Size())))
	return nil
}

func (s *storage) load(name string, artifact Artifact) error {
	if err := s.lock.RLock(); err != nil {
		return errors.Wrap(err, "lock data directory")
	}
	defer s.lock.Unlock()

	filename := s.filename(name)
	if _, err := os.Stat(filename); err != nil {
		return err
	}

	if err := artifact.Load(filename); err != nil {
		return errors.Wrapf(err, "load %s", name)
	}

	logger.WithArtifact(name, filename).Debugf("load %s", name)
	return nil
}

// filename generates file name of the data directory.
func (s *storage) filename(name string) string {
	return filepath.Join(s.baseDir, name)
}
