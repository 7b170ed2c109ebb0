package io

import (
	"strings"

	"github.com/paveg/csvjoin/internal/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// textDecoder returns a transformer converting input in the named encoding to
// UTF-8. UTF-8 input has a leading byte order mark removed.
func textDecoder(name string) (transform.Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case "utf-16":
		return unicode.BOMOverride(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	default:
		return nil, errors.NewInvalidInputError("Read", "unsupported encoding "+name).
			WithHint("expected one of utf-8, utf-16, latin1, windows-1252")
	}
}

// ValidateEncoding reports whether name is a supported input encoding.
func ValidateEncoding(name string) error {
	_, err := textDecoder(name)
	return err
}
