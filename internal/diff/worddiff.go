package diff

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/rivo/uniseg"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Word diff bounds.
const (
	// WordDiffMaxLineLength skips pairs where either line is longer.
	WordDiffMaxLineLength = 500
	// WordDiffMaxPairs caps the pairs diffed per file.
	WordDiffMaxPairs = 200
	// WordDiffTimeout caps the time spent per file.
	WordDiffTimeout = 50 * time.Millisecond
)

// SegmentKind marks a word-diff segment.
type SegmentKind int

const (
	SegmentUnchanged SegmentKind = iota
	SegmentAdded
	SegmentDeleted
)

// WordSegment is a run of a changed line with its intra-line status.
type WordSegment struct {
	Kind SegmentKind
	Text string
}

// tokenize splits a line into words, single whitespace clusters and single
// punctuation clusters: "foo.bar()" becomes ["foo" "." "bar" "(" ")"].
// Splitting is by grapheme cluster, so a flag or a ZWJ emoji sequence is
// one token.
func tokenize(line string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}

	g := uniseg.NewGraphemes(line)
	for g.Next() {
		cluster := g.Str()
		r := g.Runes()[0]
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			flush()
			tokens = append(tokens, cluster)
			continue
		}
		word.WriteString(cluster)
	}
	flush()

	return tokens
}

// WordDiff computes the intra-line segments of a deleted line and the added
// line that replaced it.
func WordDiff(oldLine, newLine string) (oldSegs, newSegs []WordSegment) {
	switch {
	case oldLine == "" && newLine == "":
		return nil, nil
	case oldLine == "":
		return nil, []WordSegment{{Kind: SegmentAdded, Text: newLine}}
	case newLine == "":
		return []WordSegment{{Kind: SegmentDeleted, Text: oldLine}}, nil
	}

	dmp := diffmatchpatch.New()

	// Diff at token granularity: map every distinct token to a rune so the
	// character diff works on whole tokens.
	oldRunes, newRunes, tokens := tokenRunes(tokenize(oldLine), tokenize(newLine))
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	for _, d := range diffs {
		var text strings.Builder
		for _, r := range d.Text {
			text.WriteString(tokens[r])
		}
		if text.Len() == 0 {
			continue
		}

		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldSegs = appendSegment(oldSegs, SegmentUnchanged, text.String())
			newSegs = appendSegment(newSegs, SegmentUnchanged, text.String())
		case diffmatchpatch.DiffDelete:
			oldSegs = appendSegment(oldSegs, SegmentDeleted, text.String())
		case diffmatchpatch.DiffInsert:
			newSegs = appendSegment(newSegs, SegmentAdded, text.String())
		}
	}
	return oldSegs, newSegs
}

// tokenRunes encodes both token lists as rune slices over a shared table.
func tokenRunes(oldTokens, newTokens []string) (oldRunes, newRunes []rune, table map[rune]string) {
	ids := make(map[string]rune)
	table = make(map[rune]string)
	encode := func(tokens []string) []rune {
		out := make([]rune, len(tokens))
		for i, tok := range tokens {
			id, ok := ids[tok]
			if !ok {
				// Private use area keeps ids clear of surrogate halves.
				id = rune(0xE000 + len(ids))
				ids[tok] = id
				table[id] = tok
			}
			out[i] = id
		}
		return out
	}
	return encode(oldTokens), encode(newTokens), table
}

func appendSegment(segs []WordSegment, kind SegmentKind, text string) []WordSegment {
	if n := len(segs); n > 0 && segs[n-1].Kind == kind {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, WordSegment{Kind: kind, Text: text})
}

// ApplyWordDiff fills Segments for every deleted line directly followed by
// an added line. Work stops when ctx is done, after WordDiffTimeout or after
// WordDiffMaxPairs pairs; lines left without segments render whole.
func ApplyWordDiff(ctx context.Context, lines []DisplayLine) {
	ctx, cancel := context.WithTimeout(ctx, WordDiffTimeout)
	defer cancel()

	pairs := 0
	for i := 0; i+1 < len(lines); i++ {
		if lines[i].Kind != KindDeleted || lines[i+1].Kind != KindAdded {
			continue
		}
		if pairs >= WordDiffMaxPairs || ctx.Err() != nil {
			return
		}
		pairs++

		del, add := &lines[i], &lines[i+1]
		i++

		if len(del.Text) > WordDiffMaxLineLength || len(add.Text) > WordDiffMaxLineLength {
			continue
		}
		del.Segments, add.Segments = WordDiff(del.Text, add.Text)
	}
}
