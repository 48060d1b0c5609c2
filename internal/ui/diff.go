package ui

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineKind classifies a diff line.
type LineKind int

const (
	LineEqual LineKind = iota
	LineInsert
	LineDelete
)

// DiffLine is one line of a line-level diff.
type DiffLine struct {
	Kind LineKind
	Text string
}

// DiffLines computes a line-level diff between two texts.
func DiffLines(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()

	chars1, chars2, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out []DiffLine
	for _, d := range diffs {
		kind := LineEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = LineInsert
		case diffmatchpatch.DiffDelete:
			kind = LineDelete
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, DiffLine{Kind: kind, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}

// RenderDiff prints changed lines with up to context unchanged lines
// around them. Skipped stretches are shown as a single "..." line.
func RenderDiff(lines []DiffLine, context int, color bool) string {
	keep := make([]bool, len(lines))
	for i, l := range lines {
		if l.Kind == LineEqual {
			continue
		}
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			keep[j] = true
		}
	}

	var b strings.Builder
	skipped := false
	for i, l := range lines {
		if !keep[i] {
			skipped = true
			continue
		}
		if skipped {
			b.WriteString(paint(MutedStyle.Render, "...", color) + "\n")
			skipped = false
		}

		switch l.Kind {
		case LineInsert:
			b.WriteString(paint(InsertStyle.Render, "+ "+l.Text, color))
		case LineDelete:
			b.WriteString(paint(DeleteStyle.Render, "- "+l.Text, color))
		default:
			b.WriteString("  " + l.Text)
		}
		b.WriteByte('\n')
	}
	if skipped && b.Len() > 0 {
		b.WriteString(paint(MutedStyle.Render, "...", color) + "\n")
	}
	return b.String()
}

// DiffStat summarizes a diff as "+N -M".
func DiffStat(lines []DiffLine) string {
	var ins, del int
	for _, l := range lines {
		switch l.Kind {
		case LineInsert:
			ins++
		case LineDelete:
			del++
		}
	}
	return fmt.Sprintf("+%d -%d", ins, del)
}

func paint(render func(...string) string, s string, color bool) string {
	if !color {
		return s
	}
	return render(s)
}
