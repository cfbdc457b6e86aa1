package pagerank_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opentrep/opentrep-go/internal/pagerank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_NormalizesByMax(t *testing.T) {
	table := pagerank.Build(map[string]float64{
		"CDG-A": 80,
		"ORY-A": 40,
	})
	assert.InDelta(t, 1.0, table.Lookup("CDG-A"), 1e-9)
	assert.InDelta(t, 0.5, table.Lookup("ORY-A"), 1e-9)
}

func TestBuild_EmptyFallsBackToFloor(t *testing.T) {
	table := pagerank.Build(nil)
	assert.Equal(t, pagerank.Floor, table.Lookup("CDG-A"))
	assert.Equal(t, 0, table.Len())
}

func TestLookup_CompositeKeyFallsBackToBareIATA(t *testing.T) {
	table := pagerank.Build(map[string]float64{"CDG": 80, "ORY": 40})
	assert.InDelta(t, 1.0, table.Lookup("CDG-A"), 1e-9)
	assert.InDelta(t, 0.5, table.Lookup("ORY-A"), 1e-9)
	assert.Equal(t, pagerank.Floor, table.Lookup("XYZ-A"))
}

func TestLookup_MissingKeyIsFloor(t *testing.T) {
	table := pagerank.Build(map[string]float64{"CDG-A": 10})
	assert.Equal(t, pagerank.Floor, table.Lookup("XYZ-A"))
}

func TestLookup_NilTableIsFloor(t *testing.T) {
	var table *pagerank.Table
	assert.Equal(t, pagerank.Floor, table.Lookup("CDG-A"))
}

func TestKey_BuildsCompositeForm(t *testing.T) {
	assert.Equal(t, "CDG-A", pagerank.Key("CDG", pagerank.KindAirport))
}

func TestFileSource_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pagerank.csv")
	body := "CDG-A,80\n" +
		"malformed-line-no-comma\n" +
		"ORY-A,not-a-number\n" +
		"LHR-A,0\n" +
		"JFK-A,20\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	raw, err := pagerank.FileSource{Path: path}.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"CDG-A": 80, "JFK-A": 20}, raw)
}

func TestFileSource_NotReadable(t *testing.T) {
	_, err := pagerank.FileSource{Path: filepath.Join(t.TempDir(), "missing.csv")}.Load()
	require.Error(t, err)
	var nre *pagerank.NotReadableError
	require.ErrorAs(t, err, &nre)
}

func TestCachedTable_LookupAndSwap(t *testing.T) {
	ct, err := pagerank.NewCachedTable(pagerank.Build(map[string]float64{"CDG-A": 10}), 0)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, ct.Lookup("CDG-A"), 1e-9)
	assert.Equal(t, pagerank.Floor, ct.Lookup("ORY-A"))

	ct.Swap(pagerank.Build(map[string]float64{"ORY-A": 10}))
	assert.Equal(t, pagerank.Floor, ct.Lookup("CDG-A"))
	assert.InDelta(t, 1.0, ct.Lookup("ORY-A"), 1e-9)
}

func TestCachedTable_ConcurrentLookupIsSafe(t *testing.T) {
	ct, err := pagerank.NewCachedTable(pagerank.Build(map[string]float64{"CDG-A": 10}), 16)
	require.NoError(t, err)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				ct.Lookup("CDG-A")
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
