package parallel_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hardwood-go/parquet/internal/parallel"
)

func TestRunAllSucceed(t *testing.T) {
	var calls int32
	err := parallel.Run(8, func(i int) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	require.NoError(t, err)
	require.EqualValues(t, 8, calls)
}

func TestRunPropagatesFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := parallel.Run(4, func(i int) error {
		if i == 2 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestRunZero(t *testing.T) {
	require.NoError(t, parallel.Run(0, func(i int) error {
		t.Fatal("should not be called")
		return nil
	}))
}
