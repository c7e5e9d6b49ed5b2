package poker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	sharedTableOnce sync.Once
	sharedTable     *LookupTable
	sharedTableErr  error
)

// testEvaluator builds the lookup table once per test binary.
func testEvaluator(t testing.TB) *Evaluator {
	t.Helper()
	sharedTableOnce.Do(func() {
		sharedTable, sharedTableErr = BuildLookupTable()
	})
	require.NoError(t, sharedTableErr)
	eval, err := NewEvaluator(sharedTable)
	require.NoError(t, err)
	return eval
}
