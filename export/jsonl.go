package export

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nathoo/duelset/types"
)

// WriteJSONL writes one JSON object per record, keys in column order.
func WriteJSONL(w io.Writer, recs []types.MatchupRecord) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i, rec := range recs {
		if err := enc.Encode(FromRecord(rec)); err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// ReadJSONL reads a dataset written by WriteJSONL. Unknown keys are errors.
func ReadJSONL(r io.Reader) ([]types.MatchupRecord, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var out []types.MatchupRecord
	for line := 1; ; line++ {
		var row Row
		err := dec.Decode(&row)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decoding record %d: %w", line, err)
		}
		out = append(out, row.Record())
	}
}
