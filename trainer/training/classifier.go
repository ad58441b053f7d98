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

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/trees"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"d7y.io/bestnode/pkg/slices"
	"d7y.io/bestnode/trainer/dataset"
)

// Classifier is a random forest choosing the best node of an observation.
// Every tree is grown by golearn's ID3 induction on a bootstrap sample of
// the rows, choosing each split among a random subset of the features.
type Classifier struct {
	runID        string
	trees        int
	features     int
	seed         int64
	featureNames []string
	forest       []*trees.DecisionTreeNode
}

// ClassifierOption is a functional option for configuring the classifier.
type ClassifierOption func(c *Classifier)

// WithTrees sets the number of trees.
func WithTrees(trees int) ClassifierOption {
	return func(c *Classifier) {
		c.trees = trees
	}
}

// WithFeatures sets the number of features considered at each split.
func WithFeatures(features int) ClassifierOption {
	return func(c *Classifier) {
		c.features = features
	}
}

// WithSeed sets the seed of the forest.
func WithSeed(seed int64) ClassifierOption {
	return func(c *Classifier) {
		c.seed = seed
	}
}

// WithFeatureNames sets the attribute names of the feature columns.
func WithFeatureNames(names []string) ClassifierOption {
	return func(c *Classifier) {
		c.featureNames = names
	}
}

// WithRunID sets the id of the run fitting the classifier.
func WithRunID(runID string) ClassifierOption {
	return func(c *Classifier) {
		c.runID = runID
	}
}

// NewClassifier returns an unfitted classifier.
func NewClassifier(options ...ClassifierOption) *Classifier {
	c := &Classifier{
		trees:        DefaultTrees,
		features:     DefaultFeatures,
		seed:         DefaultSeed,
		featureNames: dataset.FeatureNames,
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// RunID returns the id of the run that fitted the classifier.
func (c *Classifier) RunID() string {
	return c.runID
}

// Trees returns the number of trees.
func (c *Classifier) Trees() int {
	return c.trees
}

// FeatureNames returns the attribute names of the feature columns.
func (c *Classifier) FeatureNames() []string {
	return c.featureNames
}

// Fitted reports whether the forest has been fitted or loaded.
func (c *Classifier) Fitted() bool {
	return len(c.forest) > 0
}

// Fit trains the forest on x and y. The same seed and rows always grow
// the same trees.
func (c *Classifier) Fit(x *mat.Dense, y []int) error {
	if err := c.validate(); err != nil {
		return err
	}

	if x == nil || x.IsEmpty() || len(y) == 0 {
		return ErrEmptyFeatures
	}

	rows, cols := x.Dims()
	if cols != len(c.featureNames) {
		return errors.Wrapf(ErrFeatureMismatch, "%d columns with %d feature names", cols, len(c.featureNames))
	}

	if len(y) != rows {
		return errors.Wrapf(ErrFeatureMismatch, "%d rows with %d labels", rows, len(y))
	}

	for i, label := range y {
		if label != dataset.NodeA && label != dataset.NodeB {
			return errors.Errorf("unknown label %d of row %d", label, i)
		}
	}

	// Samples and seeds are drawn in tree order before any tree is grown.
	r := rand.New(rand.NewSource(uint64(c.seed)))
	samples := make([][]int, c.trees)
	seeds := make([]uint64, c.trees)
	for i := range samples {
		samples[i] = make([]int, rows)
		for j := range samples[i] {
			samples[i][j] = r.Intn(rows)
		}
		seeds[i] = r.Uint64()
	}

	forest := make([]*trees.DecisionTreeNode, c.trees)
	eg := errgroup.Group{}
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := range forest {
		i := i
		eg.Go(func() error {
			xs, ys := selectRows(x, y, cols, samples[i])
			instances, err := newInstances(c.featureNames, xs, ys)
			if err != nil {
				return err
			}

			root := trees.InferID3Tree(instances, &splitSampler{features: c.features, seed: seeds[i]})
			settleClass(root)
			forest[i] = root
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return errors.Wrap(err, "fit random forest")
	}

	c.forest = forest
	return nil
}

// Predict returns the best node of every row of x by majority vote of the
// trees. A tied vote goes to node A.
func (c *Classifier) Predict(x *mat.Dense) ([]int, error) {
	if !c.Fitted() {
		return nil, ErrClassifierNotFitted
	}

	if x == nil || x.IsEmpty() {
		return nil, ErrEmptyFeatures
	}

	instances, err := newInstances(c.featureNames, x, nil)
	if err != nil {
		return nil, err
	}

	rows, _ := x.Dims()
	votes := make([]int, rows)
	for i, tree := range c.forest {
		grid, err := tree.Predict(instances)
		if err != nil {
			return nil, errors.Wrapf(err, "predict tree %d", i)
		}

		pred, err := labels(grid)
		if err != nil {
			return nil, err
		}

		for j, label := range pred {
			if label == dataset.NodeB {
				votes[j]++
			}
		}
	}

	y := make([]int, rows)
	for j, v := range votes {
		y[j] = dataset.NodeA
		if 2*v > len(c.forest) {
			y[j] = dataset.NodeB
		}
	}

	return y, nil
}

// classifierArchive is the persisted form of a classifier, every tree is
// kept in golearn's serialized classifier format.
type classifierArchive struct {
	RunID        string   `msgpack:"runID"`
	Trees        int      `msgpack:"trees"`
	Features     int      `msgpack:"features"`
	Seed         int64    `msgpack:"seed"`
	FeatureNames []string `msgpack:"featureNames"`
	Forest       [][]byte `msgpack:"forest"`
}

// Save writes the fitted classifier with its hyper parameters.
func (c *Classifier) Save(filePath string) error {
	if !c.Fitted() {
		return ErrClassifierNotFitted
	}

	dir, err := os.MkdirTemp("", "forest-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	forest := make([][]byte, len(c.forest))
	for i, tree := range c.forest {
		treePath := filepath.Join(dir, fmt.Sprintf("tree-%d", i))
		if err := tree.Save(treePath); err != nil {
			return errors.Wrapf(err, "serialize tree %d", i)
		}

		if forest[i], err = os.ReadFile(treePath); err != nil {
			return err
		}
	}

	b, err := msgpack.Marshal(&classifierArchive{
		RunID:        c.runID,
		Trees:        c.trees,
		Features:     c.features,
		Seed:         c.seed,
		FeatureNames: c.featureNames,
		Forest:       forest,
	})
	if err != nil {
		return err
	}

	return os.WriteFile(filePath, b, 0600)
}

// Load reads a classifier written by Save, hyper parameters included.
func (c *Classifier) Load(filePath string) error {
	b, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	var archive classifierArchive
	if err := msgpack.Unmarshal(b, &archive); err != nil {
		return err
	}

	if len(archive.Forest) == 0 {
		return errors.Wrapf(ErrClassifierNotFitted, "load %s", filePath)
	}

	dir, err := os.MkdirTemp("", "forest-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	forest := make([]*trees.DecisionTreeNode, len(archive.Forest))
	for i, data := range archive.Forest {
		treePath := filepath.Join(dir, fmt.Sprintf("tree-%d", i))
		if err := os.WriteFile(treePath, data, 0600); err != nil {
			return err
		}

		tree := &trees.DecisionTreeNode{}
		if err := tree.Load(treePath); err != nil {
			return errors.Wrapf(err, "deserialize tree %d", i)
		}

		forest[i] = tree
	}

	c.runID = archive.RunID
	c.trees = archive.Trees
	c.features = archive.Features
	c.seed = archive.Seed
	c.featureNames = archive.FeatureNames
	c.forest = forest
	return nil
}

func (c *Classifier) validate() error {
	if c.trees <= 0 {
		return errors.Wrapf(ErrInvalidHyperParameter, "trees %d", c.trees)
	}

	if c.features <= 0 || c.features > len(c.featureNames) {
		return errors.Wrapf(ErrInvalidHyperParameter, "features %d of %d", c.features, len(c.featureNames))
	}

	if name, ok := slices.FindDuplicate(c.featureNames); ok {
		return errors.Wrapf(ErrFeatureMismatch, "duplicate feature %s", name)
	}

	return nil
}

// splitSampler picks the split of a node by information gain among a random
// subset of the remaining features. The subset is drawn from a source seeded
// by the tree seed and the node rows, so it does not depend on the order in
// which nodes are grown.
type splitSampler struct {
	features int
	seed     uint64
	rule     trees.InformationGainRuleGenerator
}

// GenerateSplitRule implements trees.RuleGenerator.
func (s *splitSampler) GenerateSplitRule(f base.FixedDataGrid) *trees.DecisionTreeRule {
	candidates := base.AttributeDifferenceReferences(f.AllAttributes(), f.AllClassAttributes())

	// golearn drops a feature once a node splits on it.
	k := s.features
	if k > len(candidates) {
		k = len(candidates)
	}

	r := rand.New(rand.NewSource(s.nodeSeed(f, candidates)))
	selected := make([]base.Attribute, 0, k)
	for _, i := range r.Perm(len(candidates))[:k] {
		selected = append(selected, candidates[i])
	}

	return s.rule.GetSplitRuleFromSelection(selected, f)
}

func (s *splitSampler) nodeSeed(f base.FixedDataGrid, candidates []base.Attribute) uint64 {
	d := xxhash.New()
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, s.seed)
	d.Write(buf)
	for _, attr := range candidates {
		d.Write([]byte(attr.GetName()))
	}

	// A partial hash still gives a fixed seed for the same rows.
	_ = f.MapOverRows(base.ResolveAttributes(f, f.AllAttributes()), func(row [][]byte, _ int) (bool, error) {
		for _, v := range row {
			d.Write(v)
		}

		return true, nil
	})

	return d.Sum64()
}

// settleClass sets the class of every node to its majority class, with ties
// going to the lowest label.
func settleClass(node *trees.DecisionTreeNode) {
	if node == nil {
		return
	}

	if len(node.ClassDist) > 0 {
		best, count := node.Class, -1
		for _, class := range classValues {
			if n, ok := node.ClassDist[class]; ok && n > count {
				best, count = class, n
			}
		}

		node.Class = best
	}

	for _, child := range node.Children {
		settleClass(child)
	}
}
