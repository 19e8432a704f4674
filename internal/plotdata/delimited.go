package plotdata

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// extractDelimited parses CSV/TSV content into one record per data row.
// When header is true the first row supplies field names; otherwise
// positional names "0", "1", … are synthesized. All values are strings.
func extractDelimited(src Source, comma rune, header bool) ([]*Record, error) {
	reader := csv.NewReader(bytes.NewReader(src.Content))
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var (
		names   []string
		records []*Record
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", NewMetricTypeError(src.Path), err)
		}

		if names == nil {
			if header {
				names = append([]string(nil), row...)
				continue
			}
			names = make([]string, len(row))
			for i := range row {
				names[i] = strconv.Itoa(i)
			}
		}

		rec := NewRecord()
		for i, val := range row {
			if i >= len(names) {
				break
			}
			rec.Set(names[i], val)
		}
		records = append(records, rec)
	}
	return records, nil
}
