package utils

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	kib = 1 << 10
	mib = 1 << 20
	gib = 1 << 30
)

// sizePrinter groups thousands with "," and uses "." for decimals.
var sizePrinter = message.NewPrinter(language.English)

// FormatFileSize renders a byte count for display: values below 1024 as
// "N bytes", larger ones in KB, MB or GB with two decimals.
//
//	FormatFileSize(512)     // "512 bytes"
//	FormatFileSize(1536)    // "1.50 KB"
//	FormatFileSize(1 << 40) // "1,024.00 GB"
func FormatFileSize(bytes int64) string {
	switch {
	case bytes >= gib:
		return sizePrinter.Sprintf("%.2f GB", float64(bytes)/gib)
	case bytes >= mib:
		return sizePrinter.Sprintf("%.2f MB", float64(bytes)/mib)
	case bytes >= kib:
		return sizePrinter.Sprintf("%.2f KB", float64(bytes)/kib)
	}
	return strconv.FormatInt(bytes, 10) + " bytes"
}
