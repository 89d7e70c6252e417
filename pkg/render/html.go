package render

import (
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
)

// HTMLToText converts Reddit's rendered comment HTML to plain text.
// Reddit double-escapes body_html, so entities are unescaped before
// tokenizing. Handles <p>, <a>, <i>/<em>, <b>/<strong>, <code>,
// <pre><code>, <blockquote> and <li>; everything else passes through as
// its text content.
func HTMLToText(raw string) string {
	if raw == "" {
		return ""
	}

	raw = html.UnescapeString(raw)

	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	var sb strings.Builder
	var inPre bool
	var blockquote int
	var anchorURL string

	for {
		tt := tokenizer.Next()
		switch tt {
		case xhtml.ErrorToken:
			return strings.TrimSpace(sb.String())

		case xhtml.StartTagToken:
			t := tokenizer.Token()
			switch t.Data {
			case "p":
				if sb.Len() > 0 {
					sb.WriteString("\n\n")
				}
				for i := 0; i < blockquote; i++ {
					sb.WriteString("> ")
				}
			case "i", "em":
				sb.WriteString("*")
			case "b", "strong":
				sb.WriteString("**")
			case "code":
				if !inPre {
					sb.WriteString("`")
				}
			case "pre":
				inPre = true
				sb.WriteString("\n")
			case "blockquote":
				blockquote++
			case "li":
				sb.WriteString("\n- ")
			case "a":
				for _, attr := range t.Attr {
					if attr.Key == "href" {
						anchorURL = attr.Val
					}
				}
			}

		case xhtml.EndTagToken:
			t := tokenizer.Token()
			switch t.Data {
			case "i", "em":
				sb.WriteString("*")
			case "b", "strong":
				sb.WriteString("**")
			case "code":
				if !inPre {
					sb.WriteString("`")
				}
			case "pre":
				inPre = false
				sb.WriteString("\n")
			case "blockquote":
				if blockquote > 0 {
					blockquote--
				}
			case "a":
				if anchorURL != "" {
					text := strings.TrimSpace(sb.String())
					// Skip the URL when the link text already is the URL.
					if !strings.HasSuffix(text, anchorURL) {
						sb.WriteString(" [")
						sb.WriteString(anchorURL)
						sb.WriteString("]")
					}
				}
				anchorURL = ""
			}

		case xhtml.TextToken:
			text := tokenizer.Token().Data
			if inPre {
				// Keep whitespace inside code blocks, indented four spaces.
				for i, line := range strings.Split(text, "\n") {
					if i > 0 {
						sb.WriteString("\n")
					}
					if line != "" {
						sb.WriteString("    ")
						sb.WriteString(line)
					}
				}
			} else {
				sb.WriteString(strings.ReplaceAll(text, "\n", " "))
			}
		}
	}
}
