package httpclient

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

type (
	// Parser turns a raw upstream response into usable data.
	Parser interface {
		Parse(resp *http.Response) (any, error)
	}

	// JSONParser decodes the body as arbitrary JSON.
	JSONParser struct{}

	// HTMLParser extracts the visible text content of an HTML body.
	HTMLParser struct{}

	// NullParser discards the body, for callers that only need the status.
	NullParser struct{}
)

func (JSONParser) Parse(resp *http.Response) (any, error) {
	if resp == nil || resp.Body == nil {
		return nil, nil
	}

	var data any
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&data); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (HTMLParser) Parse(resp *http.Response) (any, error) {
	if resp == nil || resp.Body == nil {
		return "", nil
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	collectText(doc, &sb)
	return strings.Join(strings.Fields(sb.String()), " "), nil
}

func (NullParser) Parse(resp *http.Response) (any, error) {
	if resp != nil && resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return nil, nil
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteString(" ")
	}
	// script and style text is markup plumbing, not content
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}
