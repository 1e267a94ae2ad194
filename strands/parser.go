// Package strands holds the pure scoring core: recognizing a Strands
// result block in message text, turning it into a numeric score, and the
// absentee decision logic. Nothing here touches discord or the database.
package strands

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

const (
	// HintGlyph marks a hint being used
	HintGlyph = "💡"
	// RegularGlyph marks a regular theme word being found
	RegularGlyph = "🔵"
	// SpangramGlyph marks the spangram being found
	SpangramGlyph = "🟡"
)

// resultPattern matches a three line Strands result block: a header line
// containing "Strands" and "#<number>", a clue line, and one or more lines
// made up of only the three result glyphs.
var resultPattern = regexp.MustCompile(`Strands.*#[0-9,]+.*\n.*\n[💡🔵🟡\n]+`)

// glyphPattern extracts the ordered result glyph sequence from a block.
var glyphPattern = regexp.MustCompile(`💡|🔵|🟡`)

// ErrNoResult is returned when text does not contain a Strands result
// block. Callers are expected to pre-filter with Recognize, so hitting
// this during normal message handling indicates a caller bug.
var ErrNoResult = errors.New("no strands result block in message")

// Result is the structured score extracted from a result block.
type Result struct {
	PuzzleNumber int
	Score        int
}

// Recognize reports whether text contains a Strands result block and
// returns the first matching block.
func Recognize(text string) (string, bool) {
	block := resultPattern.FindString(text)
	return block, block != ""
}

// Parse extracts the puzzle number and score from text containing a
// Strands result block.
//
// The puzzle number is the integer following '#' up to the end of the
// header line, thousands separators stripped. The score is the number of
// hint glyphs plus the 1-based position of the first spangram glyph in
// the ordered glyph sequence (0 if the spangram glyph never appears).
// Parsing identical text always yields an identical Result.
func Parse(text string) (Result, error) {
	block, ok := Recognize(text)
	if !ok {
		return Result{}, ErrNoResult
	}

	header := block[strings.Index(block, "#")+1:]
	if nl := strings.IndexAny(header, "\r\n"); nl >= 0 {
		header = header[:nl]
	}
	header = strings.TrimSpace(strings.ReplaceAll(header, ",", ""))
	number, err := strconv.Atoi(header)
	if err != nil {
		return Result{}, ErrNoResult
	}

	hints := strings.Count(block, HintGlyph)
	spangramPosition := 0
	for i, glyph := range glyphPattern.FindAllString(block, -1) {
		if glyph == SpangramGlyph {
			spangramPosition = i + 1
			break
		}
	}

	return Result{
		PuzzleNumber: number,
		Score:        hints + spangramPosition,
	}, nil
}
