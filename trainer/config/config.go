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

package config

import (
	"errors"

	"d7y.io/bestnode/cmd/dependency/base"
	"d7y.io/bestnode/pkg/dfpath"
)

type Config struct {
	// Base options.
	base.Options `yaml:",inline" mapstructure:",squash"`

	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Dataset configuration.
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`

	// Split configuration.
	Split SplitConfig `yaml:"split" mapstructure:"split"`

	// Forest configuration.
	Forest ForestConfig `yaml:"forest" mapstructure:"forest"`

	// Evaluation configuration.
	Evaluation EvaluationConfig `yaml:"evaluation" mapstructure:"evaluation"`

	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

type ServerConfig struct {
	// Server work directory.
	WorkHome string `yaml:"workHome" mapstructure:"workHome"`

	// Server log directory.
	LogDir string `yaml:"logDir" mapstructure:"logDir"`

	// Maximum size in megabytes of log files before rotation (default: 1024)
	LogMaxSize int `yaml:"logMaxSize" mapstructure:"logMaxSize"`

	// Maximum number of days to retain old log files (default: 7)
	LogMaxAge int `yaml:"logMaxAge" mapstructure:"logMaxAge"`

	// Maximum number of old log files to keep (default: 20)
	LogMaxBackups int `yaml:"logMaxBackups" mapstructure:"logMaxBackups"`

	// Server storage data directory, artifacts and reports are written here.
	DataDir string `yaml:"dataDir" mapstructure:"dataDir"`
}

type DatasetConfig struct {
	// Rows is the number of synthetic observations.
	Rows int `yaml:"rows" mapstructure:"rows"`

	// Seed makes generation reproducible, the clock is used when it is nil.
	Seed *uint64 `yaml:"seed" mapstructure:"seed"`

	// Export writes the generated observations as csv into the data directory.
	Export bool `yaml:"export" mapstructure:"export"`
}

type SplitConfig struct {
	// TestSize is the fraction of rows held out for testing.
	TestSize float64 `yaml:"testSize" mapstructure:"testSize"`

	// Seed of the shuffle before partitioning.
	Seed uint64 `yaml:"seed" mapstructure:"seed"`
}

type ForestConfig struct {
	// Trees is the number of trees.
	Trees int `yaml:"trees" mapstructure:"trees"`

	// Features is the number of features considered at each split.
	Features int `yaml:"features" mapstructure:"features"`

	// Seed of the forest.
	Seed int64 `yaml:"seed" mapstructure:"seed"`
}

type EvaluationConfig struct {
	// Folds is the number of cross-validation folds.
	Folds int `yaml:"folds" mapstructure:"folds"`

	// Progress renders a progress bar of folds on stderr.
	Progress bool `yaml:"progress" mapstructure:"progress"`
}

type MetricsConfig struct {
	// Enable writes a metrics snapshot after every run.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// TextFile is the path of the metrics snapshot, relative paths are under the data directory.
	TextFile string `yaml:"textFile" mapstructure:"textFile"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			LogMaxSize:    DefaultLogRotateMaxSize,
			LogMaxAge:     DefaultLogRotateMaxAge,
			LogMaxBackups: DefaultLogRotateMaxBackups,
		},
		Dataset: DatasetConfig{
			Rows: DefaultDatasetRows,
		},
		Split: SplitConfig{
			TestSize: DefaultSplitTestSize,
			Seed:     DefaultSplitSeed,
		},
		Forest: ForestConfig{
			Trees:    DefaultForestTrees,
			Features: DefaultForestFeatures,
			Seed:     DefaultForestSeed,
		},
		Evaluation: EvaluationConfig{
			Folds: DefaultEvaluationFolds,
		},
		Metrics: MetricsConfig{
			Enable:   false,
			TextFile: DefaultMetricsTextFile,
		},
	}
}

// Validate config values.
func (cfg *Config) Validate() error {
	if cfg.Server.DataDir == "" {
		return errors.New("server requires parameter dataDir")
	}

	if cfg.Dataset.Rows < 0 {
		return errors.New("dataset requires parameter rows to be non-negative")
	}

	if cfg.Split.TestSize <= 0 || cfg.Split.TestSize >= 1 {
		return errors.New("split requires parameter testSize in (0, 1)")
	}

	if cfg.Forest.Trees <= 0 {
		return errors.New("forest requires parameter trees")
	}

	if cfg.Forest.Features <= 0 {
		return errors.New("forest requires parameter features")
	}

	if cfg.Evaluation.Folds < 2 {
		return errors.New("evaluation requires parameter folds to be at least 2")
	}

	if cfg.Metrics.Enable {
		if cfg.Metrics.TextFile == "" {
			return errors.New("metrics requires parameter textFile")
		}
	}

	return nil
}

// Convert fills the directories left empty from the work home layout.
func (cfg *Config) Convert(d dfpath.Dfpath) error {
	if cfg.Server.LogDir == "" {
		cfg.Server.LogDir = d.LogDir()
	}

	if cfg.Server.DataDir == "" {
		cfg.Server.DataDir = d.DataDir()
	}

	return nil
}
