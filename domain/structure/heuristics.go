package structure

import "regexp"

// Heuristics bundles the keyword lists and patterns the detector and
// classifier consult. It is plain immutable configuration passed in by
// the caller, not a hidden singleton, so locale-specific sets can be
// substituted in tests.
type Heuristics struct {
	// KeyFieldTokens mark a column name as a candidate key field
	KeyFieldTokens []string

	// DatePatterns match date-like strings without parsing
	DatePatterns []*regexp.Regexp

	// DateLayouts are tried with time.Parse when no pattern matches
	DateLayouts []string

	// BooleanTokens are accepted boolean-like strings (lower-cased)
	BooleanTokens []string

	// IdentifierPatterns, in priority order. PureDigits additionally
	// requires MinDigitIDLength so short numbers stay numeric.
	IdentifierPatterns []IdentifierPattern
	MinDigitIDLength   int

	// SentencePunctuation disqualifies header-looking cells
	SentencePunctuation []rune

	// SeparatorChars are data-content markers (dates, paths, codes)
	SeparatorChars []rune
}

// IdentifierPattern is one named identifier shape
type IdentifierPattern struct {
	Name    string
	Pattern *regexp.Regexp
	// PureDigits patterns defer to the numeric check below the
	// configured minimum length
	PureDigits bool
}

// DefaultHeuristics returns the built-in table set covering English
// and Chinese business spreadsheets.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		KeyFieldTokens: []string{
			"id", "key", "code", "uuid", "guid",
			"编号", "代码", "序号",
		},
		DatePatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\d{8}$`),                   // 20250527
			regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),       // 2025-05-27
			regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`),       // 2025/05/27
			regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`),     // 2025.05.27
			regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}`), // with time
		},
		DateLayouts: []string{
			"2006-01-02",
			"2006/01/02",
			"2006-01-02 15:04:05",
			"2006-01-02T15:04:05",
			"01/02/2006",
			"02-Jan-2006",
		},
		BooleanTokens: []string{
			"true", "false", "yes", "no", "0", "1",
			"是", "否", "✓", "×",
		},
		IdentifierPatterns: []IdentifierPattern{
			{Name: "digits", Pattern: regexp.MustCompile(`^\d+$`), PureDigits: true},
			{Name: "letter-digits", Pattern: regexp.MustCompile(`^[A-Za-z]\d+$`)},
			{Name: "prefix-digits", Pattern: regexp.MustCompile(`^[A-Za-z]{2,}\d+$`)},
			{Name: "digits-dash-digits", Pattern: regexp.MustCompile(`^\d+-\d+$`)},
			{Name: "alphanumeric", Pattern: regexp.MustCompile(`^[A-Za-z0-9]{8,}$`)},
		},
		MinDigitIDLength: 6,
		SentencePunctuation: []rune{
			'。', '，', '；', '：', '？', '！',
			'.', ',', ';', ':', '?', '!',
		},
		SeparatorChars: []rune{
			'-', '/', '\\', '|', '\n', '\r', '\t',
		},
	}
}

// IsDateLike reports whether the string matches any date pattern
func (h Heuristics) IsDateLike(s string) bool {
	for _, p := range h.DatePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// IsBooleanToken reports whether the lower-cased string is boolean-like
func (h Heuristics) IsBooleanToken(s string) bool {
	for _, tok := range h.BooleanTokens {
		if s == tok {
			return true
		}
	}
	return false
}

// MatchIdentifier returns the first identifier pattern matching the
// string, honoring the pure-digit length floor.
func (h Heuristics) MatchIdentifier(s string) (string, bool) {
	for _, p := range h.IdentifierPatterns {
		if !p.Pattern.MatchString(s) {
			continue
		}
		if p.PureDigits && len(s) < h.MinDigitIDLength {
			continue
		}
		return p.Name, true
	}
	return "", false
}

// HasSentencePunctuation reports whether the string contains sentence
// punctuation, a strong signal of data content over header labels.
func (h Heuristics) HasSentencePunctuation(s string) bool {
	return containsAnyRune(s, h.SentencePunctuation)
}

// HasSeparator reports whether the string contains separator characters
func (h Heuristics) HasSeparator(s string) bool {
	return containsAnyRune(s, h.SeparatorChars)
}

func containsAnyRune(s string, set []rune) bool {
	for _, r := range s {
		for _, c := range set {
			if r == c {
				return true
			}
		}
	}
	return false
}
