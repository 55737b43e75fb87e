package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/specialistvlad/bitlife/internal/field"
)

const headerSize = 3

// Encode writes the field's current generation in the binary format.
func Encode(w io.Writer, f *field.Field) error {
	bw := bufio.NewWriter(w)

	var hdr [headerSize]byte
	binary.BigEndian.PutUint16(hdr[:2], uint16(f.Rows()))
	hdr[2] = byte(f.Columns() % 8)
	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("codec: write header: %w", err)
	}

	for r := 0; r < f.Rows(); r++ {
		if _, err := bw.Write(f.Row(r)); err != nil {
			return fmt.Errorf("codec: write row %d: %w", r, err)
		}
	}
	return bw.Flush()
}

// Decode reads a field written by Encode. The payload must split evenly into
// the declared number of rows; anything else is reported as ErrMalformed.
func Decode(r io.Reader) (*field.Field, error) {
	var hdr [headerSize]byte
	if n, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &FormatError{Err: ErrShortHeader, Detail: fmt.Sprintf("got %d of %d bytes", n, headerSize)}
		}
		return nil, fmt.Errorf("codec: read header: %w", err)
	}
	rows := int(binary.BigEndian.Uint16(hdr[:2]))
	offset := int(hdr[2] & 7)

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("codec: read payload: %w", err)
	}

	columns, err := inferColumns(rows, offset, len(payload))
	if err != nil {
		return nil, err
	}

	f := field.New(rows, columns)
	blocks := f.Blocks()
	for row := 0; row < rows; row++ {
		copy(f.Row(row), payload[row*blocks:(row+1)*blocks])
	}
	return f, nil
}

// inferColumns recovers the column count from the row count, the offset
// stored in the header and the payload size.
func inferColumns(rows, offset, size int) (int, error) {
	switch {
	case rows == 0:
		return 0, malformed("header declares 0 rows")
	case size == 0:
		return 0, malformed("empty payload for %d rows", rows)
	case size%rows != 0:
		return 0, malformed("payload of %d bytes is not a multiple of %d rows", size, rows)
	}

	blocks := size / rows
	columns := blocks * 8
	if offset > 0 {
		columns = (blocks-1)*8 + offset
	}
	if columns > math.MaxUint16 {
		return 0, malformed("%d blocks per row exceed the column limit", blocks)
	}
	return columns, nil
}
