package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const highlightStyle = "catppuccin-mocha"

// Highlight returns source with terminal colors for the given format
// ("yaml" or "json"). Unknown formats and tokenizer failures return the
// source unchanged.
func Highlight(source, format string) string {
	lexer := lexers.Get(format)
	if lexer == nil {
		return source
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var b strings.Builder
	if err := formatters.TTY256.Format(&b, style, iterator); err != nil {
		return source
	}
	return b.String()
}
