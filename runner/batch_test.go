package runner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlint/archlint/rules"
)

func batchFiles(n int) []FileInput {
	files := make([]FileInput, n)
	for i := range files {
		files[i] = FileInput{
			Path:    fmt.Sprintf("src/services/svc%02d.ts", i),
			Content: []byte("export class PaymentService extends BaseService {}\n"),
			ArchID:  "svc.payment",
		}
	}
	return files
}

func TestRunAllKeepsInputOrder(t *testing.T) {
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))
	files := batchFiles(9)
	files[4].ArchID = "" // one untagged file among the good ones

	outcomes := r.RunAll(context.Background(), files, paymentRegistry(), 3)
	require.Len(t, outcomes, len(files))

	for i, out := range outcomes {
		assert.Equal(t, files[i].Path, out.Path, "outcomes must stay in input order")
		if i == 4 {
			require.ErrorIs(t, out.Err, ErrUntagged)
			assert.Nil(t, out.Result)
			continue
		}
		require.NoError(t, out.Err)
		require.NotNil(t, out.Result)
		assert.True(t, out.Result.Passed)
	}
}

func TestRunAllSingleWorkerMatchesSequential(t *testing.T) {
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))
	files := batchFiles(4)
	reg := paymentRegistry()

	batch := r.RunAll(context.Background(), files, reg, 1)
	for i, f := range files {
		want, err := r.Run(context.Background(), f, reg)
		require.NoError(t, err)
		assert.Equal(t, want, batch[i].Result)
	}
}

func TestRunAllClampsWorkerCount(t *testing.T) {
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))

	// More workers than files and a nonsense worker count both work.
	outcomes := r.RunAll(context.Background(), batchFiles(2), paymentRegistry(), 64)
	require.Len(t, outcomes, 2)
	outcomes = r.RunAll(context.Background(), batchFiles(2), paymentRegistry(), 0)
	require.Len(t, outcomes, 2)
	for _, out := range outcomes {
		require.NoError(t, out.Err)
	}
}

func TestRunAllCancelled(t *testing.T) {
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := r.RunAll(ctx, batchFiles(6), paymentRegistry(), 2)
	require.Len(t, outcomes, 6)
	for _, out := range outcomes {
		require.ErrorIs(t, out.Err, context.Canceled)
		assert.Nil(t, out.Result)
	}
}
