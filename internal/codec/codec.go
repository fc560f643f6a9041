// Package codec reads and writes exchange documents as JSON, YAML or
// MessagePack.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/agenthands/orggraph/internal/core/model"
)

type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	MsgPack Format = "msgpack"
)

// ErrUnknownFormat is returned for formats and extensions with no codec.
var ErrUnknownFormat = errors.New("codec: unknown format")

// ParseFormat accepts a format name or one of its aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "msgpack", "mpk", "mp":
		return MsgPack, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// FormatFor infers the format from a file name's extension.
func FormatFor(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// ContentType is the media type served for f.
func (f Format) ContentType() string {
	switch f {
	case YAML:
		return "application/yaml"
	case MsgPack:
		return "application/msgpack"
	}
	return "application/json"
}

// Encode writes doc to w in format f.
func Encode(w io.Writer, f Format, doc model.Document) error {
	var err error
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
	case MsgPack:
		err = msgpack.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("codec: encode %s: %w", f, err)
	}
	return nil
}

// Decode reads one document in format f from r.
func Decode(r io.Reader, f Format) (model.Document, error) {
	var doc model.Document
	var err error
	switch f {
	case JSON:
		err = json.NewDecoder(r).Decode(&doc)
	case YAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	case MsgPack:
		err = msgpack.NewDecoder(r).Decode(&doc)
	default:
		return doc, fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("codec: decode %s: %w", f, err)
	}
	return doc, nil
}

// WriteFile encodes doc into path, choosing the format by extension.
func WriteFile(path string, doc model.Document) (err error) {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("codec: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("codec: %w", cerr)
		}
	}()
	return Encode(out, f, doc)
}

// ReadFile decodes the document at path, choosing the format by extension.
func ReadFile(path string) (model.Document, error) {
	f, err := FormatFor(path)
	if err != nil {
		return model.Document{}, err
	}
	in, err := os.Open(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("codec: %w", err)
	}
	defer in.Close()
	return Decode(in, f)
}
