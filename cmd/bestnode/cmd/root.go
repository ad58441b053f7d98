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

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"d7y.io/bestnode/cmd/dependency"
	logger "d7y.io/bestnode/internal/dflog"
	"d7y.io/bestnode/pkg/dfpath"
	"d7y.io/bestnode/pkg/types"
	"d7y.io/bestnode/trainer"
	"d7y.io/bestnode/trainer/config"
	"d7y.io/bestnode/version"
)

var (
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   types.TrainerName,
	Short: "the best node classifier trainer",
	Long: `bestnode generates synthetic observations of two candidate nodes, trains a random forest
choosing the node with the lower latency, evaluates it and persists the classifier with its feature scaler.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := initServer()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		return runTrainer(ctx, d)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default trainer config.
	cfg = config.New()
	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd, true, cfg)

	flags := rootCmd.PersistentFlags()
	flags.Int("rows", config.DefaultDatasetRows, "the number of synthetic observations")
	flags.String("data-dir", "", "the directory of artifacts and reports, default is "+dfpath.DefaultDataDir)
	flags.String("log-dir", "", "the directory of log files, default is "+dfpath.DefaultLogDir)
	for key, name := range map[string]string{
		"dataset.rows":   "rows",
		"server.dataDir": "data-dir",
		"server.logDir":  "log-dir",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Errorf("bind flag %s to viper: %w", name, err))
		}
	}

	rootCmd.AddCommand(predictCmd)
}

// initServer prepares directories and the logger, then checks config.
func initServer() (dfpath.Dfpath, error) {
	d, err := initDfpath(&cfg.Server)
	if err != nil {
		return nil, err
	}

	// Convert config.
	if err := cfg.Convert(d); err != nil {
		return nil, err
	}

	// Validate config.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rotateConfig := logger.LogRotateConfig{
		MaxSize:    cfg.Server.LogMaxSize,
		MaxAge:     cfg.Server.LogMaxAge,
		MaxBackups: cfg.Server.LogMaxBackups}

	// Initialize logger.
	if err := logger.InitTrainer(cfg.Verbose, cfg.Console, d.LogDir(), rotateConfig); err != nil {
		return nil, fmt.Errorf("init trainer logger: %w", err)
	}

	return d, nil
}

func initDfpath(cfg *config.ServerConfig) (dfpath.Dfpath, error) {
	var options []dfpath.Option
	if cfg.WorkHome != "" {
		options = append(options, dfpath.WithWorkHome(cfg.WorkHome))
	}

	if cfg.LogDir != "" {
		options = append(options, dfpath.WithLogDir(cfg.LogDir))
	}

	if cfg.DataDir != "" {
		options = append(options, dfpath.WithDataDir(cfg.DataDir))
	}

	return dfpath.New(options...)
}

func runTrainer(ctx context.Context, d dfpath.Dfpath) error {
	logger.Infof("version:\n%s", version.Version())
	logger.Infof("data directory %s", d.DataDir())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	dependency.SetupQuitSignalHandler(cancel)

	svr, err := trainer.New(cfg)
	if err != nil {
		return err
	}

	result, err := svr.Train(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Cross-validation scores: %v\n", result.Eval.Scores)
	fmt.Printf("Mean cross-validation score: %v\n", result.Eval.Mean)
	fmt.Printf("Accuracy: %v\n", result.Accuracy)
	return nil
}
