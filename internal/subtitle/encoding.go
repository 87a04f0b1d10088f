package subtitle

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ErrUndecodable is returned when no supported encoding decodes the input.
var ErrUndecodable = errors.New("no supported encoding decodes the file")

// sourceEncoding remembers how the input bytes were decoded so the output
// file can be written the same way.
type sourceEncoding struct {
	name string
	enc  encoding.Encoding // nil means plain UTF-8
}

// detectAndDecode selects an encoding for raw subtitle bytes: UTF-16 when a
// byte order mark is present, UTF-8 when the bytes are valid UTF-8, and
// Windows-1252 otherwise.
func detectAndDecode(raw []byte) (string, sourceEncoding, error) {
	var src sourceEncoding
	switch {
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		src = sourceEncoding{
			name: "utf-16be",
			enc:  unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
		}
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		src = sourceEncoding{
			name: "utf-16le",
			enc:  unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
		}
	case utf8.Valid(raw):
		text := string(bytes.TrimPrefix(raw, []byte("\ufeff")))
		return text, sourceEncoding{name: "utf-8"}, nil
	default:
		src = sourceEncoding{name: "windows-1252", enc: charmap.Windows1252}
	}

	decoded, err := src.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", sourceEncoding{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return string(decoded), src, nil
}

// encode renders output text in the encoding the input was read with.
func (src sourceEncoding) encode(text string) ([]byte, error) {
	if src.enc == nil {
		return []byte(text), nil
	}
	out, err := src.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode output as %s: %w", src.name, err)
	}
	return out, nil
}
