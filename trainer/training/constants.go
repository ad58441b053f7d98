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

package training

const (
	// DefaultTrees is the default number of trees in the forest.
	DefaultTrees = 100

	// DefaultFeatures is the default number of features considered at each split.
	DefaultFeatures = 3

	// DefaultSeed is the default seed of the forest.
	DefaultSeed = 42
)

const (
	// ClassAttributeName is the name of the class attribute of instances.
	ClassAttributeName = "best_node"
)

const (
	// zeroVarianceTolerance scales the threshold under which a column is treated as constant.
	zeroVarianceTolerance = 10 * 2.220446049250313e-16
)
