package export

import (
	"bytes"
	"strings"
)

const bom = "\ufeff"

// CSV writes UTF-8 with a byte order mark, quotes every field, doubles
// embedded quotes and ends each line with CRLF.
func CSV(t Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, ErrNoColumns
	}

	var buf bytes.Buffer
	buf.WriteString(bom)

	fields := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		fields[i] = c.Header
	}
	writeLine(&buf, fields)

	for _, r := range t.Rows {
		for i, c := range t.Columns {
			fields[i] = t.Cell(r, c)
		}
		writeLine(&buf, fields)
	}
	return buf.Bytes(), nil
}

func writeLine(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}
