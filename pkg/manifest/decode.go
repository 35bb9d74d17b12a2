package manifest

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding selects how raw manifest bytes are decoded.
type Encoding string

const (
	// EncodingAuto honours a byte order mark and falls back to UTF-8.
	EncodingAuto    Encoding = "auto"
	EncodingUTF8    Encoding = "utf-8"
	EncodingUTF16LE Encoding = "utf-16le"
)

// ParseEncoding maps a configuration value to an Encoding. An empty value
// selects EncodingAuto.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return EncodingAuto, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "utf-16le", "utf16le", "utf-16", "utf16":
		return EncodingUTF16LE, nil
	}
	return "", fmt.Errorf("unknown manifest encoding %q", s)
}

// Decode converts raw manifest bytes to UTF-8 text.
func Decode(raw []byte, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingAuto, "":
		out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
		return out, err
	case EncodingUTF8:
		return unicode.UTF8BOM.NewDecoder().Bytes(raw)
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(raw)
	}
	return nil, fmt.Errorf("unknown manifest encoding %q", enc)
}
