package resolver

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/opentrep/opentrep-go/internal/matcher"
	"github.com/opentrep/opentrep-go/internal/partition"
	"github.com/opentrep/opentrep-go/internal/score"
	"github.com/opentrep/opentrep-go/internal/translit"
)

const defaultDeadline = 2 * time.Second

// Resolver is the selector: it owns everything needed to turn a
// free-form phrase into a Bundle of resolved locations.
type Resolver struct {
	Matcher  *matcher.Matcher
	Translit translit.Transliterator
	Score    score.Config
	Workers  int
	Deadline time.Duration
	Logger   *zap.Logger
}

// New builds a Resolver with sensible defaults; a zero-value cfg is
// replaced by score.DefaultConfig() (a cfg with only some fields set is
// used as given).
func New(m *matcher.Matcher, tr translit.Transliterator, cfg score.Config, workers int, logger *zap.Logger) *Resolver {
	if cfg == (score.Config{}) {
		cfg = score.DefaultConfig()
	}
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{Matcher: m, Translit: tr, Score: cfg, Workers: workers, Deadline: defaultDeadline, Logger: logger}
}

// groupResult is one group's best candidate and that candidate's
// MatchScore, kept around so the partition-level geometric mean can be
// computed without re-matching.
type groupResult struct {
	group     partition.Group
	words     []string
	best      *matcher.Candidate
	bestScore float64
}

// Interpret resolves phrase into a Bundle: the best-scoring partition
// of its words into matched location groups. A phrase that tokenizes
// to nothing after transliteration (punctuation only, say) is not an
// error: the caller gets an empty bundle back.
func (r *Resolver) Interpret(ctx context.Context, phrase string) (Bundle, error) {
	words := r.Translit.Tokenize(phrase)
	if len(words) == 0 {
		return Bundle{}, nil
	}

	deadline := r.Deadline
	if deadline <= 0 {
		deadline = defaultDeadline
	}
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	// The same group recurs across many partitions (n(n+1)/2 distinct
	// groups vs 2^(n-1) partitions), so group results are memoized for
	// the duration of the call. The cache also feeds the pruner: a
	// partition whose optimistic score cannot beat the current best is
	// skipped without a single matcher call.
	cache := make(map[partition.Group]groupResult)

	var best Bundle
	haveBest := false
	partial := false

partitions:
	for groups := range partition.Enumerate(words) {
		select {
		case <-ctx.Done():
			partial = true
			break partitions
		default:
		}

		if haveBest && optimisticScore(r.Score, cache, groups) <= best.Score {
			continue
		}

		results, err := r.matchGroups(ctx, words, groups, cache)
		if err != nil {
			if ctx.Err() != nil {
				partial = true
				break
			}
			return Bundle{}, err
		}

		bundle := r.scoreBundle(words, results)
		// Strict > keeps the earlier partition on ties; partitions
		// arrive coarsest first, so a finer split has to genuinely
		// outscore a coarser one to displace it.
		if !haveBest || bundle.Score > best.Score {
			best = bundle
			haveBest = true
		}
	}

	if ctx.Err() != nil {
		partial = true
	}
	if partial {
		r.Logger.Debug("resolution stopped early, returning best partition so far",
			zap.String("phrase", phrase), zap.Float64("score", best.Score))
	}
	best.Partial = partial
	return best, nil
}

// optimisticScore is a partition's upper bound: groups already matched
// contribute their real best score, unseen groups are assumed to score
// a perfect 1.0, and coverage is taken as full. Never lower than the
// partition's true score, so pruning on it cannot discard a winner.
func optimisticScore(cfg score.Config, cache map[partition.Group]groupResult, groups []partition.Group) float64 {
	scores := make([]float64, len(groups))
	for i, g := range groups {
		res, ok := cache[g]
		switch {
		case !ok:
			scores[i] = 1.0
		case res.best == nil:
			scores[i] = cfg.Epsilon
		default:
			scores[i] = res.bestScore
		}
	}
	return score.PartitionScore(cfg, scores, 1.0)
}

// matchGroups runs Matcher.Match for every group not already in cache
// concurrently, bounded by r.Workers. Cache writes happen only after
// the fan-out has fully drained, so the map is never touched from two
// goroutines.
func (r *Resolver) matchGroups(ctx context.Context, words []string, groups []partition.Group, cache map[partition.Group]groupResult) ([]groupResult, error) {
	results := make([]groupResult, len(groups))
	var misses []int
	for i, g := range groups {
		if res, ok := cache[g]; ok {
			results[i] = res
			continue
		}
		misses = append(misses, i)
	}

	sem := make(chan struct{}, r.Workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, i := range misses {
		g := groups[i]
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, g partition.Group) {
			defer wg.Done()
			defer func() { <-sem }()

			groupWords := g.Words(words)
			phrase := strings.Join(groupWords, " ")
			candidates, err := r.Matcher.Match(ctx, phrase, 0)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			allowance := matcher.DefaultMaxEdit(phrase)
			gr := groupResult{group: g, words: groupWords}
			for i := range candidates {
				c := &candidates[i]
				s := score.MatchScore(r.Score, c.Weight, c.Relevance, c.EditDistance, allowance)
				if gr.best == nil || s > gr.bestScore {
					gr.best = c
					gr.bestScore = s
				}
			}
			results[i] = gr
		}(i, g)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	for _, i := range misses {
		cache[groups[i]] = results[i]
	}
	return results, nil
}

// scoreBundle turns per-group results into a Bundle: one Location per
// matched group, the unmatched groups' words, and the partition's
// overall score (geometric mean of group scores, scaled by coverage).
func (r *Resolver) scoreBundle(words []string, results []groupResult) Bundle {
	var bundle Bundle
	groupScores := make([]float64, 0, len(results))

	matched := func(g partition.Group) bool {
		for _, res := range results {
			if res.group == g && res.best != nil {
				return true
			}
		}
		return false
	}
	var groups []partition.Group
	for _, res := range results {
		groups = append(groups, res.group)
	}

	for _, res := range results {
		if res.best == nil {
			bundle.Unmatched = append(bundle.Unmatched, res.words)
			groupScores = append(groupScores, r.Score.Epsilon)
			continue
		}
		bundle.Locations = append(bundle.Locations, Location{
			POR:   res.best.POR,
			Words: res.words,
			Score: res.bestScore,
		})
		groupScores = append(groupScores, res.bestScore)
	}

	coverage := partition.Coverage(groups, len(words), matched)
	bundle.Score = score.PartitionScore(r.Score, groupScores, coverage)
	return bundle
}
