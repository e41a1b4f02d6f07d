package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/traditionalchinese"
)

// DecodeBig5 decodes a cp950/Big5 byte stream to UTF-8. The decoder
// substitutes U+FFFD for undecodable sequences instead of failing, so a
// density check catches content that was never Big5 (the venues silently
// switch the export to UTF-8 HTML on some error pages).
func DecodeBig5(raw []byte) (string, error) {
	decoded, err := traditionalchinese.Big5.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	text := string(decoded)
	if bad := strings.Count(text, "�"); bad > 0 {
		total := utf8.RuneCountInString(text)
		if total == 0 || bad*20 > total {
			return "", fmt.Errorf("%w: %d undecodable sequences in %d runes", ErrDecode, bad, total)
		}
	}
	return text, nil
}
