package dataprocessing

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"fundingpulse/pkg/contracts/domain"
)

// investorArtifacts are escape sequences left in the investor column by a
// broken export, both as literal text and as the runes they stand for.
var investorArtifacts = strings.NewReplacer(
	`\\xe2\\x80\\x99s`, "",
	`\xe2\x80\x99s`, "",
	"\u2019s", "",
	`\\xc2\\xa0`, " ",
	`\xc2\xa0`, " ",
	"\u00a0", " ",
	`\\n`, " ",
	`\n`, " ",
)

var urlPrefix = regexp.MustCompile(`^https?://\S+`)

// NormalizeInvestorText fills missing investor text with the sentinel and
// strips known encoding artifacts.
func NormalizeInvestorText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return domain.UndisclosedInvestor
	}
	text := investorArtifacts.Replace(raw)
	if strings.TrimSpace(text) == "" {
		return domain.UndisclosedInvestor
	}
	return text
}

// SplitInvestors splits investor text on commas. Entries are trimmed and
// blank entries are dropped; order and duplicates are preserved.
func SplitInvestors(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CleanName normalizes an investor or startup display name.
// It is pure and idempotent: CleanName(CleanName(s)) == CleanName(s).
// The result only contains ASCII letters, digits, single spaces, '&', '-' and '\''.
func CleanName(name string) string {
	return cleanName(name, false)
}

// CleanStartupName is CleanName with a leading http(s) URL removed.
func CleanStartupName(name string) string {
	return cleanName(name, true)
}

// StartupKey returns the cleaned startup name used to group records. A name
// that cleans to nothing groups under domain.NotAvailable, so every record
// belongs to exactly one startup.
func StartupKey(raw string) string {
	if name := CleanStartupName(raw); name != "" {
		return name
	}
	return domain.NotAvailable
}

// CleanNames cleans each name and drops the ones that clean to nothing.
func CleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if c := CleanName(n); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func cleanName(name string, stripURL bool) string {
	name = strings.Map(spaceToASCII, name)
	name = strings.TrimSpace(repairMojibake(name))
	if stripURL {
		name = urlPrefix.ReplaceAllString(name, "")
	}
	name = norm.NFKC.String(name)
	name = strings.Map(keepNameRune, name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	// Casers keep state between calls, so each call gets its own.
	// The tail of each word is lower-cased: "OLA cabs" and "ola Cabs" both become "Ola Cabs".
	return cases.Title(language.Und).String(name)
}

// repairMojibake reverses UTF-8 text that was decoded as Latin-1. Text that
// cannot be represented in Latin-1 is returned unchanged; byte sequences that
// are not valid UTF-8 afterwards are dropped.
func repairMojibake(s string) string {
	b, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return s
	}
	return strings.ToValidUTF8(b, "")
}

func spaceToASCII(r rune) rune {
	if r != ' ' && unicode.IsSpace(r) {
		return ' '
	}
	return r
}

func keepNameRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r
	case r == '&', r == '-', r == '\'', r == ' ':
		return r
	}
	return -1
}
