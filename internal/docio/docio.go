// Package docio reads and writes document files, with optional
// compression for large workspaces.
package docio

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/blueprint/core/errors"
	"github.com/FocuswithJustin/blueprint/core/plan"
)

var (
	// Injectable functions for testing error paths.
	xzNewWriter   = xz.NewWriter
	xzNewReader   = xz.NewReader
	gzipNewReader = gzip.NewReader
	osWriteFile   = os.WriteFile
	osReadFile    = os.ReadFile
)

// CompressionType specifies the compression algorithm for document files.
type CompressionType string

const (
	// CompressionNone writes plain JSON.
	CompressionNone CompressionType = "none"
	// CompressionXZ uses XZ/LZMA2 compression (best ratio).
	CompressionXZ CompressionType = "xz"
	// CompressionGzip uses gzip compression (stdlib, faster).
	CompressionGzip CompressionType = "gzip"
)

// WriteOptions configures document writing.
type WriteOptions struct {
	// Compression specifies the compression algorithm. Defaults to none.
	Compression CompressionType
	// Indent pretty-prints the JSON. Ignored when compression is enabled.
	Indent bool
}

// Encode serializes a document with the given options.
func Encode(doc plan.Document, opts WriteOptions) ([]byte, error) {
	var data []byte
	var err error
	if opts.Indent && opts.Compression == CompressionNone {
		data, err = doc.MarshalIndent()
	} else {
		data, err = doc.Marshal()
	}
	if err != nil {
		return nil, err
	}

	switch opts.Compression {
	case "", CompressionNone:
		return data, nil
	case CompressionXZ:
		var buf bytes.Buffer
		w, err := xzNewWriter(&buf)
		if err != nil {
			return nil, errors.NewEncode("xz compress", "", err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, errors.NewEncode("xz compress", "", err)
		}
		if err := w.Close(); err != nil {
			return nil, errors.NewEncode("xz compress", "", err)
		}
		return buf.Bytes(), nil
	case CompressionGzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, errors.NewEncode("gzip compress", "", err)
		}
		if err := w.Close(); err != nil {
			return nil, errors.NewEncode("gzip compress", "", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.NewUnsupported("compression", string(opts.Compression))
	}
}

// WriteFile serializes a document to a file.
func WriteFile(path string, doc plan.Document, opts WriteOptions) error {
	data, err := Encode(doc, opts)
	if err != nil {
		return err
	}
	if err := osWriteFile(path, data, 0644); err != nil {
		return errors.NewEncode("write file", path, err)
	}
	return nil
}

// DetectCompression inspects the leading magic bytes of data.
func DetectCompression(data []byte) CompressionType {
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		return CompressionGzip
	}
	if len(data) >= 6 && data[0] == 0xfd && data[1] == 0x37 && data[2] == 0x7a &&
		data[3] == 0x58 && data[4] == 0x5a && data[5] == 0x00 {
		return CompressionXZ
	}
	return CompressionNone
}

// Decode deserializes a document, decompressing if the payload carries
// a known compression magic.
func Decode(data []byte) (plan.Document, error) {
	switch DetectCompression(data) {
	case CompressionXZ:
		r, err := xzNewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.NewEncode("xz decompress", "", err)
		}
		data, err = io.ReadAll(r)
		if err != nil {
			return nil, errors.NewEncode("xz decompress", "", err)
		}
	case CompressionGzip:
		r, err := gzipNewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.NewEncode("gzip decompress", "", err)
		}
		data, err = io.ReadAll(r)
		if err != nil {
			return nil, errors.NewEncode("gzip decompress", "", err)
		}
	}
	return plan.Parse(data)
}

// ReadFile deserializes a document from a file.
func ReadFile(path string) (plan.Document, error) {
	data, err := osReadFile(path)
	if err != nil {
		return nil, errors.NewEncode("read file", path, err)
	}
	return Decode(data)
}
