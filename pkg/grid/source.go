package grid

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// LoadHTML reads a saved timetable page from disk and returns it as UTF-8.
// Pages that declare a legacy encoding (GBK, Big5, ...) through a BOM or a
// meta tag are transcoded; everything else is read as UTF-8 with invalid
// byte sequences dropped.
func LoadHTML(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read %s: %w", path, err)
	}
	return DecodeHTML(data), nil
}

// DecodeHTML converts raw page bytes to UTF-8 text.
func DecodeHTML(data []byte) string {
	enc, name, _ := charset.DetermineEncoding(data, "")
	// windows-1252 is the sniffer's fallback when it finds no declaration.
	if name != "utf-8" && name != "windows-1252" {
		if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
			return string(decoded)
		}
	}
	return strings.TrimPrefix(strings.ToValidUTF8(string(data), ""), "\uFEFF")
}
