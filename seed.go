package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// FetchSeed retrieves the bundled sample dataset from addr. Sample endpoints
// either serve the record array bare, or wrap it in an object under a
// "transactions" property; jsonpath extraction tolerates both. The records go
// through the full import contract before being returned.
func FetchSeed(ctx context.Context, addr string) ([]Transaction, error) {
	var jobj any
	if err := jwget(ctx, cachingClient(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch seed data from %q: %w", addr, err)
	}

	records := jobj
	if _, ok := jobj.([]any); !ok {
		jval, err := jsonpath.Get("$.transactions", jobj)
		if err != nil {
			return nil, fmt.Errorf("seed data at %q has no transaction array: %w", addr, err)
		}
		records = jval
	}

	// round-trip through the import path so seed data obeys the same
	// contract as a user-supplied import file.
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("cannot re-encode seed data: %w", err)
	}
	txs, err := ImportTransactions(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("seed data from %q: %w", addr, err)
	}
	return txs, nil
}
