package summarize

import (
	"strings"
	"testing"

	"threadsum/pkg/reddit"
)

func promptThread() *reddit.Thread {
	return &reddit.Thread{
		Post: reddit.Post{
			Title:    "Generics in Go",
			SelfText: "Are they worth it?",
		},
		Comments: []*reddit.Comment{
			{
				Author: "a",
				Body:   "Yes for containers.",
				Children: []*reddit.Comment{
					{Author: "b", Body: "And for constraints.", Depth: 1},
				},
			},
			{Author: "c", Body: reddit.RemovedBody, Depth: 0},
		},
	}
}

func TestThreadText(t *testing.T) {
	text := ThreadText(promptThread())

	if !strings.Contains(text, "Title: Generics in Go") {
		t.Error("thread text missing post title")
	}
	if !strings.Contains(text, "Are they worth it?") {
		t.Error("thread text missing selftext")
	}
	if !strings.Contains(text, "Yes for containers.") {
		t.Error("thread text missing top-level comment")
	}
	if !strings.Contains(text, "And for constraints.") {
		t.Error("thread text missing nested reply")
	}
	if strings.Contains(text, reddit.RemovedBody) {
		t.Error("removed placeholder should not feed the model")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(promptThread(), 0)
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}

	// The instruction sections must all be present.
	for _, section := range []string{
		"Original Post Overview",
		"Key Discussion Themes",
		"Controversial/Divisive Opinions",
		"Data, Statistics, and Notable Quotations",
		"Overall Community Sentiment",
	} {
		if !strings.Contains(prompt, section) {
			t.Errorf("prompt missing section %q", section)
		}
	}

	if !strings.Contains(prompt, "Generics in Go") {
		t.Error("prompt missing thread content")
	}
}

func TestBuildPromptTruncates(t *testing.T) {
	thread := &reddit.Thread{
		Post: reddit.Post{
			Title:    "Big thread",
			SelfText: strings.Repeat("x", 500),
		},
	}

	prompt, err := BuildPrompt(thread, 100)
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}

	// Content is capped at 100 runes; the instruction template itself is
	// untouched.
	if strings.Count(prompt, "x") > 100 {
		t.Errorf("content not truncated: %d x's", strings.Count(prompt, "x"))
	}
	if !strings.Contains(prompt, "Original Post Overview") {
		t.Error("template lost during truncation")
	}
}

func TestBuildPromptRuneBoundary(t *testing.T) {
	thread := &reddit.Thread{
		Post: reddit.Post{Title: strings.Repeat("é", 50)},
	}

	prompt, err := BuildPrompt(thread, 30)
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}
	if strings.Contains(prompt, "�") {
		t.Error("truncation split a multi-byte rune")
	}
}
