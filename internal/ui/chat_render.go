package ui

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
)

var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	underscoreItalic  = regexp.MustCompile(`(^|[^a-zA-Z0-9_])_([^_]+)_([^a-zA-Z0-9_]|$)`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	numberedPattern   = regexp.MustCompile(`^(\d{1,3})\. (.*)$`)
)

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(CurrentTheme().CodeStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// renderInlineMarkdown applies inline formatting (bold, italic, code, links) to a line
func renderInlineMarkdown(line string) string {
	// Code spans are swapped for placeholders so nothing else formats inside them.
	var codeSpans []string
	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		code := inlineCodePattern.FindStringSubmatch(match)[1]
		codeSpans = append(codeSpans, MarkdownInlineCodeStyle.Render(code))
		return fmt.Sprintf("\x00CODE%d\x00", len(codeSpans)-1)
	})

	line = boldPattern.ReplaceAllStringFunc(line, func(match string) string {
		return MarkdownBoldStyle.Render(boldPattern.FindStringSubmatch(match)[1])
	})

	line = underscoreItalic.ReplaceAllStringFunc(line, func(match string) string {
		sub := underscoreItalic.FindStringSubmatch(match)
		return sub[1] + MarkdownItalicStyle.Render(sub[2]) + sub[3]
	})

	line = linkPattern.ReplaceAllStringFunc(line, func(match string) string {
		parts := linkPattern.FindStringSubmatch(match)
		if parts[1] == parts[2] {
			return MarkdownLinkStyle.Render(parts[2])
		}
		return parts[1] + " (" + MarkdownLinkStyle.Render(parts[2]) + ")"
	})

	for i, rendered := range codeSpans {
		line = strings.Replace(line, fmt.Sprintf("\x00CODE%d\x00", i), rendered, 1)
	}

	return line
}

// wrapText wraps text to the specified width, handling ANSI escape codes.
// Words longer than the width are broken.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}

// indentContinuation indents every line after the first.
func indentContinuation(text, indent string) string {
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}

// renderMarkdownLine renders a single line with markdown formatting
func renderMarkdownLine(line string, width int) string {
	trimmed := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(trimmed, "#### "):
		return MarkdownH4Style.Render(strings.TrimPrefix(trimmed, "#### "))
	case strings.HasPrefix(trimmed, "### "):
		return MarkdownH3Style.Render(strings.TrimPrefix(trimmed, "### "))
	case strings.HasPrefix(trimmed, "## "):
		return MarkdownH2Style.Render(strings.TrimPrefix(trimmed, "## "))
	case strings.HasPrefix(trimmed, "# "):
		return MarkdownH1Style.Render(strings.TrimPrefix(trimmed, "# "))
	case trimmed == "---" || trimmed == "***" || trimmed == "___":
		hr := width
		if hr > 32 {
			hr = 32
		}
		return MarkdownHRStyle.Render(strings.Repeat("─", hr))
	case strings.HasPrefix(trimmed, "> "):
		content := strings.TrimPrefix(trimmed, "> ")
		return MarkdownBlockquoteStyle.Render(wrapText(renderInlineMarkdown(content), width-4))
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		bullet := MarkdownListBulletStyle.Render("•")
		wrapped := wrapText(renderInlineMarkdown(trimmed[2:]), width-6)
		return "  " + bullet + " " + indentContinuation(wrapped, "    ")
	}

	if m := numberedPattern.FindStringSubmatch(trimmed); m != nil {
		number := MarkdownListBulletStyle.Render(m[1] + ".")
		wrapped := wrapText(renderInlineMarkdown(m[2]), width-6)
		return "  " + number + " " + indentContinuation(wrapped, strings.Repeat(" ", len(m[1])+4))
	}

	return wrapText(renderInlineMarkdown(line), width)
}

// renderMarkdown renders markdown content with syntax-highlighted code blocks
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var result strings.Builder
	inCodeBlock := false
	codeBlockLang := ""
	var codeBlock strings.Builder

	flushCode := func() {
		if result.Len() > 0 {
			result.WriteString("\n")
		}
		result.WriteString(highlightCode(codeBlock.String(), codeBlockLang))
		result.WriteString("\n")
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if !inCodeBlock {
				inCodeBlock = true
				codeBlockLang = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "```"))
				codeBlock.Reset()
			} else {
				inCodeBlock = false
				flushCode()
				codeBlockLang = ""
			}
			continue
		}

		if inCodeBlock {
			if codeBlock.Len() > 0 {
				codeBlock.WriteString("\n")
			}
			codeBlock.WriteString(line)
			continue
		}

		result.WriteString(renderMarkdownLine(line, width))
		result.WriteString("\n")
	}

	// An unterminated fence still shows its code.
	if inCodeBlock {
		flushCode()
	}

	return strings.TrimRight(result.String(), "\n")
}
