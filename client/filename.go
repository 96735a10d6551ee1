package client

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultFilename names the artifact when the response carries no
// usable Content-Disposition filename.
const DefaultFilename = "generated-project.zip"

// maxFilenameLen caps sanitized names at a common filesystem limit.
const maxFilenameLen = 255

// filenamePattern matches filename="name" or filename=name tokens,
// case-insensitively.
var filenamePattern = regexp.MustCompile(`(?i)filename=(?:"([^"]*)"|([^";\s]+))`)

// ResolveFilename extracts the artifact filename from a
// Content-Disposition header value. Absent, unparsable, or unsafe
// values resolve to DefaultFilename.
func ResolveFilename(disposition string) string {
	m := filenamePattern.FindStringSubmatch(disposition)
	if m == nil {
		return DefaultFilename
	}

	name := m[1]
	if name == "" {
		name = m[2]
	}
	if name = SanitizeFilename(name); name != "" {
		return name
	}
	return DefaultFilename
}

// SanitizeFilename reduces a server-supplied filename to a bare name
// safe to store under and to echo into a download header. It returns
// "" when nothing safe remains.
func SanitizeFilename(name string) string {
	name = norm.NFC.String(name)

	// Keep only the final path element, whichever separator the
	// server used.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)

	name = strings.Trim(name, ". ")

	for len(name) > maxFilenameLen {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}

	return name
}
