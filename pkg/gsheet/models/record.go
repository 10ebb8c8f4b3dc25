package models

// Record maps header field names to the cells of one row.
type Record map[string]string

// Records converts a block of rows to records. Rows whose first cell is empty
// are skipped; the first remaining row is the header. Short rows only carry
// the fields they have cells for.
func Records(rows [][]string) []Record {
	var header []string
	var out []Record
	for _, line := range rows {
		if len(line) == 0 || line[0] == "" {
			continue
		}
		if header == nil {
			header = line
			continue
		}
		out = append(out, zip(header, line))
	}
	return out
}

// RecordsByKey is Records indexed by the value of the key field. Records with
// an empty key are dropped; a repeated key keeps the last record.
func RecordsByKey(rows [][]string, key string) map[string]Record {
	out := make(map[string]Record)
	for _, rec := range Records(rows) {
		if k := rec[key]; k != "" {
			out[k] = rec
		}
	}
	return out
}

func zip(header, line []string) Record {
	rec := make(Record, min(len(header), len(line)))
	for i := 0; i < len(header) && i < len(line); i++ {
		rec[header[i]] = line[i]
	}
	return rec
}
