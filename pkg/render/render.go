// Package render formats a fetched thread into terminal display lines.
// Rendering is pure: the same thread always yields the same lines.
package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"threadsum/pkg/reddit"
)

// Renderer turns a thread into display lines. Width is the total line
// budget, Indent the per-depth indentation unit, and Color toggles ANSI
// styling (leave it off when stdout is not a terminal).
type Renderer struct {
	Width  int
	Indent int
	Color  bool
}

// NewRenderer creates a renderer with sane defaults for zero values.
func NewRenderer(width, indent int, color bool) *Renderer {
	if width <= 0 {
		width = 80
	}
	if indent <= 0 {
		indent = 2
	}
	return &Renderer{Width: width, Indent: indent, Color: color}
}

// ANSI helpers; no-ops when Color is off.

func (r *Renderer) bold(s string) string   { return r.style("1", s) }
func (r *Renderer) dim(s string) string    { return r.style("90", s) }
func (r *Renderer) yellow(s string) string { return r.style("33", s) }
func (r *Renderer) italic(s string) string { return r.style("3", s) }

func (r *Renderer) style(code, s string) string {
	if !r.Color {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// PostLines renders the original post: title, author/score metadata and
// the wrapped selftext, or a placeholder for link posts.
func (r *Renderer) PostLines(post reddit.Post) []string {
	var lines []string
	lines = append(lines, r.bold(strings.Repeat("═", r.Width)))
	for _, l := range splitLines(wrapText(post.Title, r.Width)) {
		lines = append(lines, r.bold(l))
	}
	lines = append(lines, r.dim(fmt.Sprintf("Posted by u/%s | %d points", post.Author, post.Score)))
	lines = append(lines, r.dim(strings.Repeat("─", r.Width)))

	body := bodyText(post.SelfTextHTML, post.SelfText)
	if body != "" {
		lines = append(lines, "")
		lines = append(lines, splitLines(wrapText(body, r.Width))...)
		lines = append(lines, "")
	} else {
		lines = append(lines, "")
		lines = append(lines, r.italic("[Link post - no text content]"))
		lines = append(lines, "")
	}
	lines = append(lines, r.dim(strings.Repeat("─", r.Width)))
	return lines
}

// CommentLines renders the comment tree depth-first, pre-order: each node
// before its children, children in their given order before the next
// sibling. Indentation grows by Indent per depth level and the body wraps
// inside what remains of Width.
func (r *Renderer) CommentLines(comments []*reddit.Comment) []string {
	var lines []string
	var walk func(c *reddit.Comment)
	walk = func(c *reddit.Comment) {
		lines = append(lines, r.commentHeader(c))

		pad := strings.Repeat(" ", c.Depth*r.Indent)
		width := r.Width - c.Depth*r.Indent
		if width < 20 {
			width = 20
		}
		for _, l := range splitLines(wrapText(bodyText(c.BodyHTML, c.Body), width)) {
			if l == "" {
				lines = append(lines, "")
				continue
			}
			lines = append(lines, pad+l)
		}
		lines = append(lines, "")

		for _, child := range c.Children {
			walk(child)
		}
	}
	for _, c := range comments {
		walk(c)
	}
	return lines
}

// commentHeader builds the author/score line with thread guides for
// nested replies.
func (r *Renderer) commentHeader(c *reddit.Comment) string {
	var guide string
	if c.Depth > 0 {
		guide = strings.Repeat("│ ", c.Depth-1) + "├─ "
	}
	return guide + r.yellow(fmt.Sprintf("u/%s (%d points):", c.Author, c.Score))
}

// ThreadLines renders the whole thread: post, COMMENTS banner, tree and a
// closing rule.
func (r *Renderer) ThreadLines(t *reddit.Thread) []string {
	lines := r.PostLines(t.Post)
	lines = append(lines, "", r.bold("COMMENTS:"), "")
	lines = append(lines, r.CommentLines(t.Comments)...)
	lines = append(lines, r.dim(strings.Repeat("═", r.Width)))
	return lines
}

// WriteThread writes the rendered thread to w.
func (r *Renderer) WriteThread(w io.Writer, t *reddit.Thread) error {
	for _, line := range r.ThreadLines(t) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// bodyText prefers the rendered HTML field, falling back to the plain
// markdown body with entities unescaped.
func bodyText(htmlBody, plain string) string {
	if htmlBody != "" {
		return HTMLToText(htmlBody)
	}
	return strings.TrimSpace(html.UnescapeString(plain))
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wrapText word-wraps text to the given width, preserving paragraph breaks
// and leaving indented code blocks alone.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var result strings.Builder
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.HasPrefix(paragraph, "    ") {
			// Code block, keep as-is.
			result.WriteString(paragraph)
			result.WriteString("\n")
			continue
		}
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}
		lineLen := 0
		for i, word := range words {
			wlen := len(word)
			if i > 0 && lineLen+1+wlen > width {
				result.WriteString("\n")
				lineLen = 0
			} else if i > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wlen
		}
		result.WriteString("\n")
	}
	return strings.TrimRight(result.String(), "\n")
}
