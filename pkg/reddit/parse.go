package reddit

import (
	"encoding/json"
	"fmt"
)

// Placeholder text for comments whose author or body Reddit scrubbed.
const (
	DeletedAuthor = "[deleted]"
	RemovedBody   = "[removed]"
)

// ParseThread decodes a thread's JSON document: a two-element array holding
// the post listing and then the comment listing. Anything that does not
// match that envelope is an error wrapping ErrParse; scrubbed comments are
// tolerated with placeholder text.
func ParseThread(data []byte) (*Thread, error) {
	var envelope []thing
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding thread document: %v", ErrParse, err)
	}
	if len(envelope) < 2 {
		return nil, fmt.Errorf("%w: expected 2 listings, got %d", ErrParse, len(envelope))
	}

	post, err := parsePost(envelope[0])
	if err != nil {
		return nil, err
	}

	comments, err := parseComments(envelope[1], 0)
	if err != nil {
		return nil, err
	}

	return &Thread{Post: post, Comments: comments}, nil
}

func parsePost(t thing) (Post, error) {
	var l listing
	if err := json.Unmarshal(t.Data, &l); err != nil {
		return Post{}, fmt.Errorf("%w: decoding post listing: %v", ErrParse, err)
	}
	if len(l.Children) == 0 {
		return Post{}, fmt.Errorf("%w: post listing has no children", ErrParse)
	}

	var pd postData
	if err := json.Unmarshal(l.Children[0].Data, &pd); err != nil {
		return Post{}, fmt.Errorf("%w: decoding post: %v", ErrParse, err)
	}
	if pd.Title == "" {
		return Post{}, fmt.Errorf("%w: post has no title", ErrParse)
	}
	if pd.Author == "" {
		pd.Author = DeletedAuthor
	}

	return Post{
		Title:        pd.Title,
		Author:       pd.Author,
		SelfText:     pd.SelfText,
		SelfTextHTML: pd.SelfTextHTML,
		Score:        pd.Score,
		Permalink:    pd.Permalink,
		Subreddit:    pd.Subreddit,
		NumComments:  pd.NumComments,
		CreatedUTC:   pd.CreatedUTC,
		URL:          pd.URL,
	}, nil
}

// parseComments walks a comment listing depth-first. Only "t1" things are
// comments; the "more" stub Reddit appends for truncated threads is skipped.
func parseComments(t thing, depth int) ([]*Comment, error) {
	var l listing
	if err := json.Unmarshal(t.Data, &l); err != nil {
		return nil, fmt.Errorf("%w: decoding comment listing: %v", ErrParse, err)
	}

	var comments []*Comment
	for _, child := range l.Children {
		if child.Kind != "t1" {
			continue
		}

		var cd commentData
		if err := json.Unmarshal(child.Data, &cd); err != nil {
			return nil, fmt.Errorf("%w: decoding comment: %v", ErrParse, err)
		}

		c := &Comment{
			Author:   cd.Author,
			Body:     cd.Body,
			BodyHTML: cd.BodyHTML,
			Score:    cd.Score,
			Depth:    depth,
		}
		if c.Author == "" {
			c.Author = DeletedAuthor
		}
		if c.Body == "" {
			c.Body = RemovedBody
		}

		if hasReplies(cd.Replies) {
			var rt thing
			if err := json.Unmarshal(cd.Replies, &rt); err != nil {
				return nil, fmt.Errorf("%w: decoding replies: %v", ErrParse, err)
			}
			children, err := parseComments(rt, depth+1)
			if err != nil {
				return nil, err
			}
			c.Children = children
		}

		comments = append(comments, c)
	}
	return comments, nil
}

// hasReplies reports whether a raw replies field holds a nested listing.
// Reddit sends "" (and occasionally null) for leaf comments.
func hasReplies(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	switch raw[0] {
	case '{':
		return true
	default:
		return false
	}
}
