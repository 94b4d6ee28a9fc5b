package widgets

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/odvcencio/plush-ui/backend"
	"github.com/odvcencio/plush-ui/runtime"
)

// styledRun is a piece of one rendered line with a uniform style.
type styledRun struct {
	text  string
	style backend.Style
}

// styledLine is one rendered line of rich text.
type styledLine []styledRun

// MarkdownView renders a markdown document as styled terminal text.
// Fenced code blocks are syntax-highlighted. The rendered lines are
// cached per source and width; it makes a convenient page cell.
type MarkdownView struct {
	Base

	source     string
	codeTheme  string
	lines      []styledLine
	cacheWidth int
	dirty      bool
}

// NewMarkdownView creates a view with the given markdown source.
func NewMarkdownView(source string) *MarkdownView {
	return &MarkdownView{
		source:    source,
		codeTheme: "monokai",
		dirty:     true,
	}
}

// SetSource replaces the markdown document.
func (m *MarkdownView) SetSource(source string) {
	if m == nil || source == m.source {
		return
	}
	m.source = source
	m.dirty = true
}

// Source returns the markdown document.
func (m *MarkdownView) Source() string {
	if m == nil {
		return ""
	}
	return m.source
}

// SetCodeTheme selects the chroma style used for fenced code blocks.
func (m *MarkdownView) SetCodeTheme(name string) {
	if m == nil || name == m.codeTheme {
		return
	}
	m.codeTheme = name
	m.dirty = true
}

// LineCount returns the number of rendered lines at the given width.
func (m *MarkdownView) LineCount(width int) int {
	if m == nil {
		return 0
	}
	m.ensureLines(width)
	return len(m.lines)
}

// Render draws the cached lines clipped to the view bounds.
func (m *MarkdownView) Render(ctx runtime.RenderContext) {
	if m == nil || m.bounds.Empty() {
		return
	}
	m.ensureLines(m.bounds.Width)
	for row, line := range m.lines {
		if row >= m.bounds.Height {
			break
		}
		x := m.bounds.X
		maxX := m.bounds.X + m.bounds.Width
		for _, run := range line {
			for _, r := range run.text {
				if x >= maxX {
					break
				}
				ctx.Buffer.Set(x, m.bounds.Y+row, r, run.style)
				x += runewidth.RuneWidth(r)
			}
		}
	}
}

func (m *MarkdownView) ensureLines(width int) {
	if width <= 0 {
		m.lines = nil
		m.cacheWidth = 0
		return
	}
	if !m.dirty && width == m.cacheWidth {
		return
	}
	m.lines = renderMarkdown(m.source, width, m.codeTheme)
	m.cacheWidth = width
	m.dirty = false
}

// mdRenderer accumulates styled lines while walking the document tree.
type mdRenderer struct {
	src       []byte
	width     int
	codeTheme string
	lines     []styledLine
}

func renderMarkdown(source string, width int, codeTheme string) []styledLine {
	src := []byte(source)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	r := &mdRenderer{src: src, width: width, codeTheme: codeTheme}
	r.blocks(doc, "")
	for len(r.lines) > 0 && len(r.lines[len(r.lines)-1]) == 0 {
		r.lines = r.lines[:len(r.lines)-1]
	}
	return r.lines
}

func (r *mdRenderer) blocks(parent ast.Node, prefix string) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			style := backend.DefaultStyle().Foreground(AccentColor).Bold(true)
			marker := strings.Repeat("#", node.Level) + " "
			r.wrapped(prefix+marker, r.inline(node, style), style)
			r.blank()
		case *ast.Paragraph:
			r.wrapped(prefix, r.inline(node, backend.DefaultStyle()), backend.DefaultStyle())
			r.blank()
		case *ast.FencedCodeBlock:
			r.codeBlock(node, prefix)
			r.blank()
		case *ast.CodeBlock:
			r.plainCode(node, prefix)
			r.blank()
		case *ast.List:
			r.list(node, prefix)
			r.blank()
		case *ast.Blockquote:
			r.blocks(node, prefix+"│ ")
		case *ast.ThematicBreak:
			rule := strings.Repeat("─", max(r.width-len(prefix), 1))
			r.emit(styledLine{
				{text: prefix, style: backend.DefaultStyle()},
				{text: rule, style: backend.DefaultStyle().Dim(true)},
			})
			r.blank()
		default:
			r.blocks(node, prefix)
		}
	}
}

func (r *mdRenderer) list(node *ast.List, prefix string) {
	for item := node.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if node.IsOrdered() {
			marker = "· "
		}
		for block := item.FirstChild(); block != nil; block = block.NextSibling() {
			switch b := block.(type) {
			case *ast.TextBlock, *ast.Paragraph:
				r.wrapped(prefix+marker, r.inline(b, backend.DefaultStyle()), backend.DefaultStyle())
			case *ast.List:
				r.list(b, prefix+"  ")
			}
			marker = "  "
		}
	}
}

// inline flattens a block's inline children into styled runs.
func (r *mdRenderer) inline(parent ast.Node, style backend.Style) []styledRun {
	var runs []styledRun
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Text:
			runs = append(runs, styledRun{text: string(node.Segment.Value(r.src)), style: style})
			if node.SoftLineBreak() || node.HardLineBreak() {
				runs = append(runs, styledRun{text: " ", style: style})
			}
		case *ast.String:
			runs = append(runs, styledRun{text: string(node.Value), style: style})
		case *ast.Emphasis:
			next := style.Underline(true)
			if node.Level >= 2 {
				next = style.Bold(true)
			}
			runs = append(runs, r.inline(node, next)...)
		case *ast.CodeSpan:
			runs = append(runs, r.inline(node, style.Foreground(AccentColor))...)
		case *ast.Link:
			runs = append(runs, r.inline(node, style.Underline(true))...)
		default:
			runs = append(runs, r.inline(node, style)...)
		}
	}
	return runs
}

// wrapped word-wraps runs into lines of at most width cells, keeping
// per-run styling. Continuation lines are indented under the marker.
func (r *mdRenderer) wrapped(marker string, runs []styledRun, markerStyle backend.Style) {
	indent := strings.Repeat(" ", runewidth.StringWidth(marker))
	avail := r.width - runewidth.StringWidth(marker)
	if avail < 1 {
		avail = 1
	}

	line := styledLine{{text: marker, style: markerStyle}}
	used := 0
	flush := func() {
		r.emit(line)
		line = styledLine{{text: indent, style: backend.DefaultStyle()}}
		used = 0
	}
	for _, run := range runs {
		for _, word := range splitKeepSpace(run.text) {
			w := runewidth.StringWidth(word)
			if used > 0 && used+w > avail {
				flush()
				if word == " " {
					continue
				}
			}
			line = append(line, styledRun{text: word, style: run.style})
			used += w
		}
	}
	if used > 0 || len(runs) == 0 {
		r.emit(line)
	}
}

// splitKeepSpace splits text into words and single-space separators so
// wrapping can break between them without losing spacing.
func splitKeepSpace(s string) []string {
	var parts []string
	start := 0
	for i, c := range s {
		if c == ' ' {
			if i > start {
				parts = append(parts, s[start:i])
			}
			parts = append(parts, " ")
			start = i + 1
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

// codeBlock renders a fenced block with chroma syntax highlighting.
func (r *mdRenderer) codeBlock(node *ast.FencedCodeBlock, prefix string) {
	code := blockText(node, r.src)
	lang := string(node.Language(r.src))

	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	theme := styles.Get(r.codeTheme)
	if theme == nil {
		theme = styles.Fallback
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		r.rawLines(code, prefix, backend.DefaultStyle().Dim(true))
		return
	}

	line := styledLine{{text: prefix + "  ", style: backend.DefaultStyle()}}
	for _, token := range iterator.Tokens() {
		style := tokenStyle(theme, token.Type)
		pieces := strings.Split(token.Value, "\n")
		for i, piece := range pieces {
			if i > 0 {
				r.emit(line)
				line = styledLine{{text: prefix + "  ", style: backend.DefaultStyle()}}
			}
			if piece != "" {
				line = append(line, styledRun{text: piece, style: style})
			}
		}
	}
	if len(line) > 1 {
		r.emit(line)
	}
}

// plainCode renders an indented code block without highlighting.
func (r *mdRenderer) plainCode(node *ast.CodeBlock, prefix string) {
	r.rawLines(blockText(node, r.src), prefix, backend.DefaultStyle().Dim(true))
}

func (r *mdRenderer) rawLines(code, prefix string, style backend.Style) {
	for _, line := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		r.emit(styledLine{
			{text: prefix + "  ", style: backend.DefaultStyle()},
			{text: line, style: style},
		})
	}
}

func (r *mdRenderer) emit(line styledLine) {
	r.lines = append(r.lines, line)
}

func (r *mdRenderer) blank() {
	r.lines = append(r.lines, styledLine{})
}

// tokenStyle maps a chroma token style onto a terminal style.
func tokenStyle(theme *chroma.Style, tokenType chroma.TokenType) backend.Style {
	entry := theme.Get(tokenType)
	style := backend.DefaultStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(backend.RGB(
			entry.Colour.Red(),
			entry.Colour.Green(),
			entry.Colour.Blue(),
		))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}

// blockText joins a block node's raw source lines.
func blockText(node interface{ Lines() *text.Segments }, src []byte) string {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(src))
	}
	return buf.String()
}

var _ runtime.Widget = (*MarkdownView)(nil)
