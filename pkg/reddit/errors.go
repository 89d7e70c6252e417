package reddit

import "errors"

// ErrNetwork marks failures reaching the Reddit endpoint: transport errors,
// timeouts, and non-2xx responses. One attempt, no retries.
var ErrNetwork = errors.New("network error")

// ErrParse marks responses that are not the expected two-listing thread
// shape. Deleted or removed comments are not parse errors; they get
// placeholder text instead.
var ErrParse = errors.New("parse error")
