package codec

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/specialistvlad/bitlife/internal/field"
)

const (
	textExt = ".txt"
	zstdExt = ".zst"
)

// format reports how a path is encoded based on its extension.
func format(path string) (text, compressed bool) {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, zstdExt) {
		compressed = true
		name = strings.TrimSuffix(name, zstdExt)
	}
	return strings.HasSuffix(name, textExt), compressed
}

// Save writes the field to path, creating or truncating the file.
func Save(path string, f *field.Field) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("codec: create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("codec: close %s: %w", path, cerr)
		}
	}()

	text, compressed := format(path)
	var w io.Writer = file
	var enc *zstd.Encoder
	if compressed {
		enc, err = zstd.NewWriter(file)
		if err != nil {
			return fmt.Errorf("codec: zstd writer: %w", err)
		}
		w = enc
	}

	if text {
		err = EncodeText(w, f)
	} else {
		err = Encode(w, f)
	}
	if err != nil {
		if enc != nil {
			enc.Close()
		}
		return fmt.Errorf("codec: save %s: %w", path, err)
	}

	if enc != nil {
		if err := enc.Close(); err != nil {
			return fmt.Errorf("codec: zstd flush %s: %w", path, err)
		}
	}
	return nil
}

// Load reads a field from path.
func Load(path string) (*field.Field, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("codec: open %s: %w", path, err)
	}
	defer file.Close()

	text, compressed := format(path)
	var r io.Reader = file
	if compressed {
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("codec: zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	var f *field.Field
	if text {
		f, err = DecodeText(r)
	} else {
		f, err = Decode(r)
	}
	if err != nil {
		return nil, fmt.Errorf("codec: load %s: %w", path, err)
	}
	return f, nil
}
