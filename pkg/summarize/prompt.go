// Package summarize builds the analysis prompt for a fetched thread and
// runs it through a local Ollama model, either via the ollama CLI or the
// daemon's OpenAI-compatible HTTP API.
package summarize

import (
	"fmt"
	"strings"
	"text/template"

	"threadsum/pkg/reddit"
)

// DefaultMaxContentLength caps how much thread text goes into the prompt.
const DefaultMaxContentLength = 12000

const promptTemplate = `# Reddit Thread In-Depth Analysis

**1. Original Post Overview:**
- Provide a concise summary of the original post, capturing its central topic, key points, or underlying perspective, along with any necessary background context.

**2. Key Discussion Themes:**
- Identify 3-5 central discussion points from the comments.
- Present both supporting and opposing perspectives to capture the full scope of the conversation.

**3. Controversial/Divisive Opinions:**
- Highlight areas where opinions are notably divided or contentious.
- Explain any underlying reasons for these splits if evident.

**4. Data, Statistics, and Notable Quotations:**
- Extract important statistics, data points, or impactful quotations.
- Ensure attributions are included when available.

**5. Overall Community Sentiment:**
- Summarize the overall tone and sentiment of the discussion (e.g., positive, negative, mixed).

**Formatting Requirements:**
- Use markdown with clear, descriptive section headers.
- Be both concise and comprehensive in your analysis.

Thread content:
{{.Content}}
`

var promptTmpl = template.Must(template.New("analysis").Parse(promptTemplate))

// BuildPrompt renders the analysis instruction template over the thread
// text, truncated to maxLen runes. A maxLen of zero means
// DefaultMaxContentLength.
func BuildPrompt(t *reddit.Thread, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxContentLength
	}

	content := ThreadText(t)
	if runes := []rune(content); len(runes) > maxLen {
		content = string(runes[:maxLen])
	}

	var sb strings.Builder
	if err := promptTmpl.Execute(&sb, struct{ Content string }{content}); err != nil {
		return "", fmt.Errorf("rendering prompt template: %w", err)
	}
	return sb.String(), nil
}

// ThreadText flattens a thread into the plain text handed to the model:
// the post first, then every comment body depth-first in display order.
func ThreadText(t *reddit.Thread) string {
	var sb strings.Builder
	sb.WriteString("Original Post:\n")
	sb.WriteString("Title: " + t.Post.Title + "\n")
	if t.Post.SelfText != "" {
		sb.WriteString(t.Post.SelfText + "\n")
	}
	sb.WriteString("\nComments:\n")

	var walk func(cs []*reddit.Comment)
	walk = func(cs []*reddit.Comment) {
		for _, c := range cs {
			if c.Body != "" && c.Body != reddit.RemovedBody {
				sb.WriteString(c.Body + "\n")
			}
			walk(c.Children)
		}
	}
	walk(t.Comments)

	return sb.String()
}
