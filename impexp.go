package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// this file handles the import/export format: a JSON array of transactions,
// pretty-printed on export so snapshots stay human-diffable.

// ImportTransactions reads a full collection from 'r'. The import is
// all-or-nothing: the bulk validation contract runs over every element first,
// and the first failure aborts with the element's 1-based position. No
// partial result is ever returned.
func ImportTransactions(r io.Reader) ([]Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read import data: %w", err)
	}

	var loose []any
	if err := json.Unmarshal(data, &loose); err != nil {
		return nil, fmt.Errorf("cannot parse import data: %w", err)
	}
	if res := ValidateImport(loose); !res.Valid {
		return nil, errors.New(res.Message)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("cannot parse import data: %w", err)
	}
	txs := make([]Transaction, 0, len(raws))
	for i, raw := range raws {
		var tx Transaction
		if err := json.Unmarshal(raw, &tx); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// ExportTransactions writes the full collection to 'w' as a pretty-printed
// JSON array.
func ExportTransactions(w io.Writer, txs []Transaction) error {
	if txs == nil {
		txs = []Transaction{}
	}
	data, err := json.MarshalIndent(txs, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode transactions: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write export: %w", err)
	}
	return nil
}
