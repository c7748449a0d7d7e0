package analysis

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"gridsense/domain/grid"
	"gridsense/domain/structure"
	"gridsense/internal"
)

const (
	headerProbeCols   = 20 // columns inspected per candidate row
	minHeaderCells    = 3  // non-empty cells required to consider a row
	dataCompareRows   = 5  // data rows sampled beneath a candidate
	columnDiffQualify = 0.5
	singleRowQualify  = 0.6
	mergeBandBonus    = 0.5 // up-weight for rows touching multi-row merges
)

// columnDiffRule scores how different a header cell looks from the
// data beneath it. Rules are independent so each can be tested alone;
// a rule that does not apply contributes 0.
type columnDiffRule struct {
	name  string
	score func(header string, data []string, h structure.Heuristics) float64
}

var columnDiffRules = []columnDiffRule{
	{
		// Headers are usually no longer than the data they label
		name: "shorter-than-data",
		score: func(header string, data []string, _ structure.Heuristics) float64 {
			total := 0
			for _, v := range data {
				total += runeLen(v)
			}
			avg := float64(total) / float64(len(data))
			if float64(runeLen(header)) <= avg {
				return 0.3
			}
			return 0
		},
	},
	{
		// A header whose inferred type differs from the column's
		// dominant data type is a strong signal
		name: "type-differs",
		score: func(header string, data []string, h structure.Heuristics) float64 {
			counts := make(map[string]int)
			for _, v := range data {
				counts[compareKind(v, h)]++
			}
			dominant, best := "", 0
			for kind, n := range counts {
				if n > best {
					dominant, best = kind, n
				}
			}
			if compareKind(header, h) != dominant {
				return 0.4
			}
			return 0
		},
	},
	{
		// Repetition is typical of data and atypical of headers
		name: "data-repeats",
		score: func(_ string, data []string, _ structure.Heuristics) float64 {
			seen := make(map[string]struct{}, len(data))
			for _, v := range data {
				seen[v] = struct{}{}
			}
			if float64(len(seen))/float64(len(data)) < 0.8 {
				return 0.3
			}
			return 0
		},
	},
}

// singleRowRule scores one cell when the sheet is too short for a
// header-vs-data comparison. Scores may be negative.
type singleRowRule struct {
	name  string
	score func(value string, h structure.Heuristics) float64
}

var singleRowRules = []singleRowRule{
	{
		name: "concise-length",
		score: func(value string, _ structure.Heuristics) float64 {
			switch n := runeLen(value); {
			case n <= 10:
				return 0.3
			case n <= 20:
				return 0.1
			default:
				return 0
			}
		},
	},
	{
		name: "no-sentence-punctuation",
		score: func(value string, h structure.Heuristics) float64 {
			if !h.HasSentencePunctuation(value) {
				return 0.3
			}
			return 0
		},
	},
	{
		name: "long-number-penalty",
		score: func(value string, _ structure.Heuristics) float64 {
			if isNumericString(value) && runeLen(value) > 4 {
				return -0.2
			}
			return 0
		},
	},
	{
		name: "date-penalty",
		score: func(value string, h structure.Heuristics) float64 {
			if h.IsDateLike(value) {
				return -0.3
			}
			return 0
		},
	},
}

// HeaderDetector scores candidate rows against the statistical profile
// of the rows beneath them. It never errors: when no row qualifies it
// falls back to the best weighted guess with confidence 0.
type HeaderDetector struct {
	heur structure.Heuristics
	log  *internal.Logger
}

// NewHeaderDetector creates a detector with the given heuristics tables
func NewHeaderDetector(heur structure.Heuristics, logger *internal.Logger) *HeaderDetector {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &HeaderDetector{heur: heur, log: logger.WithComponent("header")}
}

// Detect returns the most likely header row, the candidate trail, and
// any structural warnings.
func (d *HeaderDetector) Detect(g *grid.Model, cfg structure.AnalysisConfig) (structure.HeaderLocation, []structure.HeaderCandidate, []string) {
	window := min(g.MaxRow, cfg.HeaderSearchWindow)
	candidates := make([]structure.HeaderCandidate, 0, window)

	for row := 1; row <= window; row++ {
		cand := d.scoreCandidate(g, row)
		candidates = append(candidates, cand)
		if cand.Qualified {
			d.log.Debug("row %d qualifies as header (score %.2f)", row, cand.Score)
			return structure.HeaderLocation{Row: row, Confidence: cand.Score}, candidates, nil
		}
	}

	// No qualifying row: take the best weighted guess, confidence 0.
	best := d.bestWeightedRow(g, window)
	d.log.Debug("no qualifying header row, falling back to row %d", best)
	warning := "header detection inconclusive: using best-guess row " +
		strconv.Itoa(best) + " with zero confidence"
	return structure.HeaderLocation{Row: best, Confidence: 0}, candidates, []string{warning}
}

// scoreCandidate applies the header-vs-data comparison, or the
// single-row heuristic when fewer than 2 data rows exist beneath.
func (d *HeaderDetector) scoreCandidate(g *grid.Model, row int) structure.HeaderCandidate {
	rowData := d.probeRow(g, row)

	cand := structure.HeaderCandidate{Row: row}
	nonEmpty := 0
	nonNumeric := 0
	distinct := make(map[string]struct{})
	for _, v := range rowData {
		if v == "" {
			continue
		}
		nonEmpty++
		distinct[v] = struct{}{}
		if !isNumericString(v) {
			nonNumeric++
		}
	}
	cand.UniqueValueCount = len(distinct)
	if nonEmpty > 0 {
		cand.TextRatio = float64(nonNumeric) / float64(nonEmpty)
	}
	if g.Merges().MaxRowSpanAt(row) > 1 {
		cand.FormattingScore = mergeBandBonus
	}

	if nonEmpty < minHeaderCells {
		return cand
	}

	if row+2 > g.MaxRow {
		if g.MaxRow >= 3 {
			// Deep rows have nothing beneath to compare against, but
			// the sheet is tall enough that the header sits higher up
			return cand
		}
		// Sheet too short for a comparison; judge the row on its own
		cand.Score = d.singleRowLikelihood(rowData)
		cand.Qualified = cand.Score >= singleRowQualify
		return cand
	}

	cand.Score = d.headerVsDataScore(g, row, rowData)
	cand.Qualified = cand.Score >= columnDiffQualify
	return cand
}

// probeRow reads the first headerProbeCols cells of a row as strings
func (d *HeaderDetector) probeRow(g *grid.Model, row int) []string {
	cols := min(g.MaxCol, headerProbeCols)
	out := make([]string, cols)
	for col := 1; col <= cols; col++ {
		out[col-1] = g.TextAt(row, col)
	}
	return out
}

// headerVsDataScore averages the per-column difference scores between
// the candidate row and up to dataCompareRows rows beneath it.
func (d *HeaderDetector) headerVsDataScore(g *grid.Model, headerRow int, headerData []string) float64 {
	last := min(headerRow+dataCompareRows, g.MaxRow)
	var dataRows [][]string
	for row := headerRow + 1; row <= last; row++ {
		rowData := make([]string, len(headerData))
		hasContent := false
		for i := range headerData {
			rowData[i] = g.TextAt(row, i+1)
			if rowData[i] != "" {
				hasContent = true
			}
		}
		if hasContent {
			dataRows = append(dataRows, rowData)
		}
	}
	if len(dataRows) == 0 {
		return 0
	}

	var scores []float64
	for col := range headerData {
		header := headerData[col]
		if header == "" {
			continue
		}
		var data []string
		for _, row := range dataRows {
			if row[col] != "" {
				data = append(data, row[col])
			}
		}
		if len(data) == 0 {
			continue
		}
		score := 0.0
		for _, rule := range columnDiffRules {
			score += rule.score(header, data, d.heur)
		}
		scores = append(scores, min(score, 1.0))
	}
	if len(scores) == 0 {
		return 0
	}
	return mean(scores)
}

// singleRowLikelihood is the mean of the per-cell rule scores, each
// clipped to [0, 1].
func (d *HeaderDetector) singleRowLikelihood(rowData []string) float64 {
	var scores []float64
	for _, value := range rowData {
		if value == "" {
			continue
		}
		score := 0.0
		for _, rule := range singleRowRules {
			score += rule.score(value, d.heur)
		}
		scores = append(scores, clamp01(score))
	}
	if len(scores) == 0 {
		return 0
	}
	return mean(scores)
}

// bestWeightedRow implements the last-resort guess: per-cell header
// scores weighted by row fill, with a bonus for rows inside multi-row
// merge bands.
func (d *HeaderDetector) bestWeightedRow(g *grid.Model, window int) int {
	bestRow, bestScore := 1, 0.0
	for row := 1; row <= window; row++ {
		score := 0.0
		nonEmpty := 0
		for col := 1; col <= min(g.MaxCol, headerProbeCols); col++ {
			value := g.TextAt(row, col)
			if value == "" {
				continue
			}
			nonEmpty++
			switch {
			case d.looksLikeHeader(value):
				score += 2.0
			case !isNumericString(value) && runeLen(value) <= 20:
				score += 1.0
			default:
				score += 0.3
			}
		}
		if nonEmpty == 0 {
			continue
		}
		bonus := 0.0
		if g.Merges().MaxRowSpanAt(row) > 1 {
			bonus = mergeBandBonus
		}
		if final := (score + bonus) * float64(nonEmpty); final > bestScore {
			bestScore = final
			bestRow = row
		}
	}
	return bestRow
}

// looksLikeHeader is the strict per-cell test used by the weighted
// fallback: short, free of punctuation and separators, not a date,
// not a long number.
func (d *HeaderDetector) looksLikeHeader(value string) bool {
	n := runeLen(value)
	if n == 0 || n > 100 {
		return false
	}
	if d.heur.IsDateLike(value) {
		return false
	}
	if isNumericString(value) {
		if n > 4 {
			return false
		}
		if n > 2 && !containsLetter(value) {
			return false
		}
	}
	if d.heur.HasSentencePunctuation(value) || d.heur.HasSeparator(value) {
		return false
	}
	return n <= 20
}

// compareKind buckets a string for the header-vs-data type comparison
func compareKind(s string, h structure.Heuristics) string {
	switch {
	case isNumericString(s):
		return "numeric"
	case h.IsDateLike(s):
		return "date"
	case runeLen(s) <= 5:
		return "short_text"
	case runeLen(s) <= 20:
		return "medium_text"
	default:
		return "long_text"
	}
}

func isNumericString(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func mean(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
