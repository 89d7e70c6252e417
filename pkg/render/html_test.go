package render

import (
	"strings"
	"testing"
)

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "double escaped paragraph",
			in:   "&lt;div&gt;&lt;p&gt;hello world&lt;/p&gt;&lt;/div&gt;",
			want: "hello world",
		},
		{
			name: "two paragraphs",
			in:   "<p>one</p><p>two</p>",
			want: "one\n\ntwo",
		},
		{
			name: "emphasis",
			in:   "<p>this is <em>important</em></p>",
			want: "this is *important*",
		},
		{
			name: "inline code",
			in:   "<p>use <code>go vet</code></p>",
			want: "use `go vet`",
		},
		{
			name: "entities",
			in:   "<p>a &amp;&amp; b</p>",
			want: "a && b",
		},
		{
			name: "link with distinct text",
			in:   `<p><a href="https://go.dev">the site</a></p>`,
			want: "the site [https://go.dev]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTMLToText(tt.in); got != tt.want {
				t.Errorf("HTMLToText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHTMLToTextCodeBlock(t *testing.T) {
	got := HTMLToText("<pre><code>x := 1\ny := 2</code></pre>")
	// Leading whitespace of the whole result is trimmed, so only the
	// second line keeps its visible indent.
	if !strings.Contains(got, "x := 1") || !strings.Contains(got, "    y := 2") {
		t.Errorf("code block lines should be indented, got %q", got)
	}
}

func TestHTMLToTextBlockquote(t *testing.T) {
	got := HTMLToText("<blockquote><p>quoted text</p></blockquote>")
	if !strings.Contains(got, "> quoted text") {
		t.Errorf("blockquote should be prefixed, got %q", got)
	}
}
