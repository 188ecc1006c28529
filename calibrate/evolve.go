// Package calibrate - the Calibrator and its evolutionary search loop.
package calibrate

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/phonalign/align"
	"github.com/katalvlaran/phonalign/phonetics"
)

// Calibrator searches for alignment parameters that reproduce a training
// corpus of reference alignments.
//
// A calibrator is built once over a sequence factory, a gap segment and
// the search-space shape (gap parameter count, optional correlated
// feature pairs), then fed training sources and run any number of times
// with different search options.
type Calibrator struct {
	factory *phonetics.SequenceFactory
	gap     phonetics.Segment
	sources []Source

	extraParams int
	pairs       []align.FeaturePair

	fixedWeight float64 // NaN disables fixed-weight injection
	fixedIndex  int

	log *zap.Logger
}

// NewCalibrator creates a calibrator.
//
// extraParams is the size of the gap parameter group; the first two are
// the convex penalty's open and grow. correlated names feature pairs for
// the sparse comparator; names absent from the factory's table resolve to
// inert pairs and are logged. With no correlated pairs the search uses a
// linear comparator.
//
// Errors: ErrNilFactory, ErrBadExtraParams.
func NewCalibrator(
	factory *phonetics.SequenceFactory,
	gap phonetics.Segment,
	extraParams int,
	correlated [][2]string,
	opts ...CalibratorOption,
) (*Calibrator, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	if extraParams < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBadExtraParams, extraParams)
	}

	c := &Calibrator{
		factory:     factory,
		gap:         gap,
		extraParams: extraParams,
		fixedWeight: defaultFixedWeight,
		fixedIndex:  defaultFixedIndex,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if !math.IsNaN(c.fixedWeight) {
		if n := factory.Table().FeatureCount(); c.fixedIndex < 0 || c.fixedIndex >= n {
			return nil, fmt.Errorf("%w: fixed weight index %d outside feature range [0,%d)",
				ErrBadOptions, c.fixedIndex, n)
		}
	}

	c.pairs = c.resolvePairs(correlated)
	return c, nil
}

// Gap returns the gap segment used for penalties and reference stripping.
func (c *Calibrator) Gap() phonetics.Segment { return c.gap }

// resolvePairs maps feature names to table indices. Unknown names become
// index -1, which the sparse comparator treats as inert.
func (c *Calibrator) resolvePairs(correlated [][2]string) []align.FeaturePair {
	var pairs []align.FeaturePair
	for _, pair := range correlated {
		a, okA := c.factory.Table().FeatureIndex(pair[0])
		b, okB := c.factory.Table().FeatureIndex(pair[1])
		if !okA {
			a = -1
			c.log.Warn("unknown correlated feature", zap.String("feature", pair[0]))
		}
		if !okB {
			b = -1
			c.log.Warn("unknown correlated feature", zap.String("feature", pair[1]))
		}
		pairs = append(pairs, align.FeaturePair{A: a, B: b})
	}
	return pairs
}

// Fitness scores a genome against the loaded corpus: the fraction of
// eligible groups whose computed optimal alignments include at least one
// of the group's references. Groups whose references have fewer than two
// rows are not eligible. With zero eligible groups the fitness is 0.
func (c *Calibrator) Fitness(g Genome) (float64, error) {
	cmp, penalty, err := c.Algorithm(g)
	if err != nil {
		return 0, err
	}

	var correct, eligible int
	for _, src := range c.sources {
		for _, group := range src.Groups {
			if len(group) == 0 || group[0].Rows() < 2 {
				continue
			}
			eligible++

			// Every alignment in the group renders the same sequences, so
			// the first one is enough to recover the inputs.
			left := c.stripGaps(group[0].Row(0))
			right := c.stripGaps(group[0].Row(1))

			res, err := align.NeedlemanWunsch(left, right, cmp, penalty, align.Minimize)
			if err != nil {
				return 0, err
			}
			for _, ref := range group {
				if res.Contains(ref) {
					correct++
					break
				}
			}
		}
	}
	if eligible == 0 {
		return 0, nil
	}
	return float64(correct) / float64(eligible), nil
}

// stripGaps removes gap segments from a reference row, recovering the
// unaligned input sequence.
func (c *Calibrator) stripGaps(row phonetics.Sequence) phonetics.Sequence {
	out := make(phonetics.Sequence, 0, row.Len())
	for _, seg := range row {
		if seg.Equal(c.gap) {
			continue
		}
		out = append(out, seg)
	}
	return out
}

// Calibrate runs the evolutionary search and returns the best genome
// found with its fitness.
//
// The search is elitist: each generation keeps the top Elite genomes
// verbatim and fills the rest of the population with Gaussian-mutated
// copies of them. It stops after SteadyGenerations generations without
// improvement, or at MaxGenerations, whichever comes first. The same
// Options.Seed always yields the same trajectory.
func (c *Calibrator) Calibrate(ctx context.Context, opts Options) (Genome, float64, error) {
	if err := opts.validate(); err != nil {
		return Genome{}, 0, err
	}

	var (
		rng  = rngFromSeed(opts.Seed)
		spec = c.spec()
		pop  = make([]Genome, opts.PopulationSize)
	)
	for i := range pop {
		pop[i] = spec.random(rng)
	}

	var (
		best      Genome
		bestScore = math.Inf(-1)
		stall     int
	)
	for gen := 1; gen <= opts.MaxGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			return best, bestScore, err
		}

		scores, err := c.evaluatePopulation(ctx, pop, opts.Workers)
		if err != nil {
			return Genome{}, 0, err
		}

		order := rankByScore(scores)
		top, worst := scores[order[0]], scores[order[len(order)-1]]

		if top > bestScore {
			best, bestScore = pop[order[0]].Clone(), top
			stall = 0
		} else {
			stall++
		}

		c.log.Info("generation",
			zap.Int("generation", gen),
			zap.Int("population", len(pop)),
			zap.Float64("worst", worst),
			zap.Float64("best", top),
			zap.Stringer("parameters", pop[order[0]]),
		)

		if stall >= opts.SteadyGenerations {
			break
		}

		pop = c.nextGeneration(pop, order, spec, rng, opts)
	}
	return best, bestScore, nil
}

// nextGeneration builds the next population: elite clones first, then
// mutated copies of uniformly chosen elites.
func (c *Calibrator) nextGeneration(
	pop []Genome,
	order []int,
	spec genomeSpec,
	rng *rand.Rand,
	opts Options,
) []Genome {
	next := make([]Genome, 0, len(pop))
	for i := 0; i < opts.Elite; i++ {
		next = append(next, pop[order[i]].Clone())
	}
	for len(next) < len(pop) {
		parent := pop[order[rng.Intn(opts.Elite)]]
		next = append(next, spec.mutate(parent, rng, opts.MutationProb, opts.MutationScale))
	}
	return next
}

// evaluatePopulation scores every genome, fanning out across workers.
// Fitness only reads calibrator state, so concurrent evaluation is safe.
func (c *Calibrator) evaluatePopulation(ctx context.Context, pop []Genome, workers int) ([]float64, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	scores := make([]float64, len(pop))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range pop {
		i := i
		g.Go(func() error {
			s, err := c.Fitness(pop[i])
			if err != nil {
				return err
			}
			scores[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// rankByScore returns population indices sorted by descending score,
// ascending index on ties so runs are reproducible.
func rankByScore(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}
