package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/covid19gng/goodnews/core/series"
	"github.com/covid19gng/goodnews/internal/contract"
	log "github.com/sirupsen/logrus"
)

// ErrNoDateColumns is returned for a CSV whose header has no date keys.
var ErrNoDateColumns = errors.New("header has no date columns")

// ParseTable reads a time-series CSV. Header cells that parse as M/D/YY are
// date columns; every other column is kept as a row attribute.
func ParseTable(name string, r io.Reader) (*series.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	tbl := &series.Table{Name: name}
	attrIdx := map[int]string{}
	var dateIdx []int
	for i, cell := range header {
		cell = strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
		if d, err := time.Parse(contract.SourceDateFormat, cell); err == nil {
			if n := len(tbl.Dates); n > 0 && !d.After(tbl.Dates[n-1]) {
				return nil, fmt.Errorf("date column %q is out of order", cell)
			}
			tbl.Dates = append(tbl.Dates, d.UTC())
			dateIdx = append(dateIdx, i)
			continue
		}
		attrIdx[i] = cell
		tbl.Columns = append(tbl.Columns, cell)
	}
	if len(dateIdx) == 0 {
		return nil, ErrNoDateColumns
	}

	logger := contract.Logger(logPrefix)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		row := series.Row{Attrs: make(map[string]string, len(attrIdx)), Values: make([]int64, len(dateIdx))}
		for i, col := range attrIdx {
			if i < len(record) {
				row.Attrs[col] = strings.TrimSpace(record[i])
			}
		}
		for j, i := range dateIdx {
			if i >= len(record) {
				continue
			}
			v, ok := parseCount(record[i])
			if !ok {
				logger.WithFields(log.Fields{"table": name, "line": line, "value": record[i]}).Debug("unparsable count treated as zero")
			}
			row.Values[j] = v
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, nil
}

// parseCount reads a count that may be written as a float.
func parseCount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}
