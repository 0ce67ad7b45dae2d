package pricing

import (
	"context"
	"sync"
)

// MutationAPI applies one reconciliation operation against stored state.
type MutationAPI interface {
	Apply(ctx context.Context, op Operation) error
}

// DispatchResult pairs an operation with its independent outcome.
type DispatchResult struct {
	Operation Operation
	Err       error
}

// Dispatch submits every mutating operation concurrently and waits for all
// of them. One failing batch never aborts its siblings; every outcome is
// reported. UNCHANGED operations are returned as immediate successes
// without touching the API.
func Dispatch(ctx context.Context, api MutationAPI, ops []Operation) []DispatchResult {
	results := make([]DispatchResult, len(ops))

	var wg sync.WaitGroup
	for i, op := range ops {
		results[i].Operation = op
		if op.State == StateUnchanged || len(op.Entries) == 0 {
			continue
		}
		wg.Add(1)
		go func(i int, op Operation) {
			defer wg.Done()
			results[i].Err = api.Apply(ctx, op)
		}(i, op)
	}
	wg.Wait()

	return results
}
