package summarize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"threadsum/pkg/reddit"
)

// Report is a finished analysis ready to be written or printed.
type Report struct {
	ID        string
	Model     string
	Thread    *reddit.Thread
	Summary   string
	CreatedAt time.Time
}

// NewReport stamps a summary with a run ID and timestamp.
func NewReport(t *reddit.Thread, model, summary string) *Report {
	return &Report{
		ID:        uuid.NewString()[:8],
		Model:     model,
		Thread:    t,
		Summary:   summary,
		CreatedAt: time.Now().UTC(),
	}
}

// Markdown renders the report: a small metadata header above the model
// output.
func (r *Report) Markdown() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", r.Thread.Post.Title))
	sb.WriteString(fmt.Sprintf("- Thread: https://www.reddit.com%s\n", r.Thread.Post.Permalink))
	sb.WriteString(fmt.Sprintf("- Model: %s\n", r.Model))
	sb.WriteString(fmt.Sprintf("- Generated: %s\n", r.CreatedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("- Run: %s\n\n", r.ID))
	sb.WriteString("---\n\n")
	sb.WriteString(strings.TrimSpace(r.Summary))
	sb.WriteString("\n")
	return sb.String()
}

// WriteFile writes the report into dir and returns the file path.
func (r *Report) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("threadsum-%s.md", r.ID))
	if err := os.WriteFile(path, []byte(r.Markdown()), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
