package partition_test

import (
	"testing"

	"github.com/opentrep/opentrep-go/internal/partition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(words []string) [][]partition.Group {
	var all [][]partition.Group
	for groups := range partition.Enumerate(words) {
		all = append(all, groups)
	}
	return all
}

func TestEnumerate_CountIsPowerOfTwo(t *testing.T) {
	words := []string{"san", "francisco", "rio", "de", "janeiro"}
	all := collect(words)
	assert.Len(t, all, 1<<(len(words)-1))
}

func TestEnumerate_SingleWordYieldsOnePartition(t *testing.T) {
	all := collect([]string{"cdg"})
	require.Len(t, all, 1)
	assert.Equal(t, []partition.Group{{Start: 0, End: 1}}, all[0])
}

func TestEnumerate_EmptyYieldsNothing(t *testing.T) {
	assert.Empty(t, collect(nil))
}

func TestEnumerate_CoarsestPartitionFirst(t *testing.T) {
	all := collect([]string{"rio", "de", "janeiro"})
	require.NotEmpty(t, all)
	assert.Len(t, all[0], 1, "coarsest partition groups every word together")
	assert.Len(t, all[len(all)-1], 3, "finest partition splits every word")
}

func TestEnumerate_EveryGroupCoversEveryWordExactlyOnce(t *testing.T) {
	words := []string{"san", "francisco", "rio"}
	for groups := range partition.Enumerate(words) {
		covered := 0
		for i, g := range groups {
			if i > 0 {
				require.Equal(t, groups[i-1].End, g.Start, "groups must be contiguous")
			}
			covered += g.End - g.Start
		}
		assert.Equal(t, len(words), covered)
	}
}

func TestCoverage_FullWhenAllGroupsMatched(t *testing.T) {
	groups := []partition.Group{{Start: 0, End: 2}, {Start: 2, End: 3}}
	cov := partition.Coverage(groups, 3, func(partition.Group) bool { return true })
	assert.InDelta(t, 1.0, cov, 1e-9)
}

func TestCoverage_PartialWhenSomeGroupsUnmatched(t *testing.T) {
	groups := []partition.Group{{Start: 0, End: 2}, {Start: 2, End: 3}}
	cov := partition.Coverage(groups, 3, func(g partition.Group) bool { return g.Start == 0 })
	assert.InDelta(t, 2.0/3.0, cov, 1e-9)
}
