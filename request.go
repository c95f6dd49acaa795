package wafengine

import (
	"io"
	"mime"
	"net/http"
	"net/url"
)

// Pair is a (name, value) candidate drawn from query arguments, headers,
// or decoded body form fields.
type Pair struct {
	Name  string
	Value string
}

// Request is the host-supplied view of an HTTP request the scanner
// inspects: URL, already-parsed query arguments, headers, and raw body
// bytes plus content type. Acquiring these from a live connection — body
// reading, timeouts, TLS — is the host's job; spec.md §1 puts it out of
// scope for this engine.
type Request struct {
	Method      string
	URI         string // path + query, as logged and whitelisted against
	Args        []Pair
	Headers     []Pair
	Body        []byte
	ContentType string
	RemoteAddr  string
}

// RequestFromHTTP builds a Request from a standard *http.Request. It reads
// and restores r.Body so the caller can still read it afterwards; this is
// a convenience constructor, not a host server embedding — it performs no
// network I/O of its own.
func RequestFromHTTP(r *http.Request) (*Request, error) {
	var body []byte
	if r.Body != nil {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		r.Body.Close()
		r.Body = io.NopCloser(bytesReader(body))
	}

	args := make([]Pair, 0, len(r.URL.Query()))
	for name, values := range r.URL.Query() {
		for _, v := range values {
			args = append(args, Pair{Name: name, Value: v})
		}
	}

	headers := make([]Pair, 0, len(r.Header))
	for name, values := range r.Header {
		for _, v := range values {
			headers = append(headers, Pair{Name: name, Value: v})
		}
	}

	return &Request{
		Method:      r.Method,
		URI:         r.URL.RequestURI(),
		Args:        args,
		Headers:     headers,
		Body:        body,
		ContentType: r.Header.Get("Content-Type"),
		RemoteAddr:  r.RemoteAddr,
	}, nil
}

// bodyPairs decodes the request body into (name, value) pairs when the
// content type is form-encoded or multipart, or returns a single
// unnamed pair for any other content type. Grounded on spec.md §4.3 step 4.
func (req *Request) bodyPairs() []Pair {
	if len(req.Body) == 0 {
		return nil
	}

	mediaType, params, err := mime.ParseMediaType(req.ContentType)
	if err != nil {
		return []Pair{{Name: "", Value: string(req.Body)}}
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(req.Body))
		if err != nil {
			return []Pair{{Name: "", Value: string(req.Body)}}
		}
		pairs := make([]Pair, 0, len(values))
		for name, vs := range values {
			for _, v := range vs {
				pairs = append(pairs, Pair{Name: name, Value: v})
			}
		}
		return pairs
	case "multipart/form-data":
		return parseMultipartPairs(req.Body, params["boundary"])
	default:
		return []Pair{{Name: "", Value: string(req.Body)}}
	}
}

// isBodyScannable reports whether the body is eligible for scanning: the
// method is POST or PUT and the body is non-empty. The content type is not
// consulted; bodyPairs decodes any content type.
func (req *Request) isBodyScannable() bool {
	if req.Method != http.MethodPost && req.Method != http.MethodPut {
		return false
	}
	return len(req.Body) > 0
}
