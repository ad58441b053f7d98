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

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"d7y.io/bestnode/trainer"
)

var predictInput string

// predictCmd reloads the persisted scaler and classifier and labels observations.
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "predict the best node of observations",
	Long: `predict reads csv observations with a header row of latency_a, latency_b, load_a, load_b,
success_rate_a and success_rate_b, and prints the best node of every row, 0 for node A and 1 for node B.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := initServer(); err != nil {
			return err
		}

		var r io.Reader = os.Stdin
		if predictInput != "" && predictInput != "-" {
			file, err := os.Open(predictInput)
			if err != nil {
				return err
			}
			defer file.Close()
			r = file
		}

		svr, err := trainer.New(cfg)
		if err != nil {
			return err
		}

		pred, err := svr.Predict(r)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "index,best_node")
		for i, label := range pred {
			fmt.Fprintf(out, "%d,%d\n", i, label)
		}

		return nil
	},
}

func init() {
	predictCmd.Flags().StringVarP(&predictInput, "input", "i", "", "the csv file of observations, stdin is read when it is empty or -")
}
