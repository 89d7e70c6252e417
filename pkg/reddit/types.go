package reddit

import "encoding/json"

// Post is the original submission at the top of a thread.
type Post struct {
	Title        string
	Author       string
	SelfText     string
	SelfTextHTML string
	Score        int
	Permalink    string
	Subreddit    string
	NumComments  int
	CreatedUTC   float64
	URL          string
}

// Comment is one node of the nested discussion tree. Children appear in the
// order the API returned them, and each child's Depth is the parent's
// Depth plus one (top-level comments have Depth 0).
type Comment struct {
	Author   string
	Body     string
	BodyHTML string
	Score    int
	Depth    int
	Children []*Comment
}

// Thread bundles a post with its top-level comments.
type Thread struct {
	Post     Post
	Comments []*Comment
	Source   string
}

// Count returns the total number of comments in the thread, nested
// replies included.
func (t *Thread) Count() int {
	var walk func(cs []*Comment) int
	walk = func(cs []*Comment) int {
		n := 0
		for _, c := range cs {
			n += 1 + walk(c.Children)
		}
		return n
	}
	return walk(t.Comments)
}

// Wire types below mirror Reddit's JSON envelope: every object is a
// {kind, data} "thing", and listings hold their entries under children.

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listing struct {
	Children []thing `json:"children"`
}

type postData struct {
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	SelfText     string  `json:"selftext"`
	SelfTextHTML string  `json:"selftext_html"`
	Score        int     `json:"score"`
	Permalink    string  `json:"permalink"`
	Subreddit    string  `json:"subreddit"`
	NumComments  int     `json:"num_comments"`
	CreatedUTC   float64 `json:"created_utc"`
	URL          string  `json:"url"`
}

// commentData keeps Replies raw because Reddit sends a nested listing when
// a comment has replies and the empty string when it does not.
type commentData struct {
	Author   string          `json:"author"`
	Body     string          `json:"body"`
	BodyHTML string          `json:"body_html"`
	Score    int             `json:"score"`
	Replies  json.RawMessage `json:"replies"`
}
