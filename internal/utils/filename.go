package utils

import (
	"regexp"
	"strings"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Control characters and runs of whitespace collapse to one space
	whitespaceRuns = regexp.MustCompile(`[\s\p{Cc}]+`)
)

const maxFilenameLength = 200

// SanitizeFilename strips characters that are invalid in filenames or that
// markdown vaults treat specially (hashtags, brackets). Returns "" when
// nothing usable is left.
func SanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	name = strings.ReplaceAll(name, "#", "")
	name = strings.ReplaceAll(name, "[", "(")
	name = strings.ReplaceAll(name, "]", ")")
	name = strings.TrimSpace(name)

	if len(name) > maxFilenameLength {
		// Cut on a rune boundary
		cut := maxFilenameLength
		for cut > 0 && !utf8RuneStart(name[cut]) {
			cut--
		}
		name = strings.TrimSpace(name[:cut])
	}
	return name
}

// NotesExportFilename names the markdown export of a book's notes. The title
// is preferred; the catalog id is the fallback.
func NotesExportFilename(title, bookID string) string {
	base := SanitizeFilename(title)
	if base == "" {
		base = SanitizeFilename(bookID)
	}
	if base == "" {
		base = "Untitled"
	}
	return base + " - notes.md"
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
