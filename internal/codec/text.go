package codec

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/specialistvlad/bitlife/internal/field"
)

// EncodeText writes the field as "<rows>x<columns>" followed by one line of
// lowercase hex bytes per row.
func EncodeText(w io.Writer, f *field.Field) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%dx%d\n", f.Rows(), f.Columns())
	for r := 0; r < f.Rows(); r++ {
		bw.WriteString(hex.EncodeToString(f.Row(r)))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// DecodeText reads a field written by EncodeText. Blank lines after the last
// row are ignored.
func DecodeText(r io.Reader) (*field.Field, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("codec: read header: %w", err)
		}
		return nil, &FormatError{Err: ErrShortHeader, Detail: "missing size line"}
	}

	var rows, columns int
	if _, err := fmt.Sscanf(strings.TrimSpace(sc.Text()), "%dx%d", &rows, &columns); err != nil {
		return nil, malformed("size line %q: %v", sc.Text(), err)
	}
	if rows < 1 || columns < 1 || rows > math.MaxUint16 || columns > math.MaxUint16 {
		return nil, malformed("size %dx%d out of range", rows, columns)
	}

	f := field.New(rows, columns)
	row := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if row == rows {
			if line != "" {
				return nil, malformed("unexpected data after row %d", rows)
			}
			continue
		}
		data, err := hex.DecodeString(line)
		if err != nil {
			return nil, malformed("row %d: %v", row, err)
		}
		if len(data) != f.Blocks() {
			return nil, malformed("row %d has %d blocks, want %d", row, len(data), f.Blocks())
		}
		copy(f.Row(row), data)
		row++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("codec: read rows: %w", err)
	}
	if row != rows {
		return nil, malformed("got %d rows, want %d", row, rows)
	}
	return f, nil
}
