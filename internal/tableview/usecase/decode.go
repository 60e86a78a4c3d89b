package usecase

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeText returns data as a string, reading it as UTF-8 when it is valid
// UTF-8 and as ISO-8859-1 otherwise. The fallback maps every byte to the code
// point of the same value, so it never fails and never drops bytes.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}

	return string(out)
}
