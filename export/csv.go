package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/nathoo/duelset/types"
)

// WriteCSV writes a header row followed by one row per record.
func WriteCSV(w io.Writer, recs []types.MatchupRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	fields := make([]string, len(Columns))
	for _, rec := range recs {
		for i, v := range FromRecord(rec).values() {
			switch x := v.(type) {
			case string:
				fields[i] = x
			case int:
				fields[i] = strconv.Itoa(x)
			}
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a dataset written by WriteCSV.
func ReadCSV(r io.Reader) ([]types.MatchupRecord, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if !slices.Equal(header, Columns) {
		return nil, fmt.Errorf("unexpected header %v", header)
	}

	var out []types.MatchupRecord
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}
		ints := make([]int, len(fields)-2)
		for i, s := range fields[2:] {
			if ints[i], err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, Columns[i+2], err)
			}
		}
		row := Row{
			NameA: fields[0], NameB: fields[1],
			LevelA: ints[0], LevelB: ints[1], Y: ints[2],
			TMAB: ints[3], TMBA: ints[4],
			DHP: ints[5], DAtk: ints[6], DDef: ints[7], DSpA: ints[8], DSpD: ints[9], DSpe: ints[10],
			DTotal: ints[11], AFaster: ints[12], DLevel: ints[13],
		}
		out = append(out, row.Record())
	}
}
