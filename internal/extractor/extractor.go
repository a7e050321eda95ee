package extractor

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Result contains everything extracted from one HTML document.
type Result struct {
	// Title is the page title from the <title> tag.
	Title string

	// Text is the cleaned plain text of the page: all text nodes outside
	// script/style/noscript/iframe subtrees, whitespace-collapsed and
	// joined with single spaces.
	Text string

	// Links contains the discovered href targets, resolved against the
	// base URL, in document order. Duplicates are removed.
	Links []string
}

// Extractor parses HTML and extracts cleaned text plus outbound links.
// The base URL of the page being parsed is used to resolve relative links.
type Extractor struct {
	baseURL *url.URL
}

// skippedElements are subtrees that contribute no natural-language text.
var skippedElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"iframe":   {},
	"template": {},
}

// New creates an Extractor for a page at the given base URL.
func New(baseURL string) (*Extractor, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Extractor{baseURL: u}, nil
}

// Extract parses the HTML content and returns cleaned text and links.
// Malformed markup is tolerated as far as the parser allows; an error is
// returned only when the document cannot be parsed at all.
func (e *Extractor) Extract(content io.Reader) (*Result, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Links: make([]string, 0),
	}

	var (
		text strings.Builder
		seen = make(map[string]struct{})
	)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if _, skip := skippedElements[n.Data]; skip {
				return
			}

			switch n.Data {
			case "title":
				if result.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					result.Title = strings.TrimSpace(n.FirstChild.Data)
				}
				// Title text is metadata, not body text.
				return
			case "a":
				if href := getAttr(n, "href"); href != "" {
					resolved := e.resolveURL(href)
					if resolved != "" {
						if _, dup := seen[resolved]; !dup {
							seen[resolved] = struct{}{}
							result.Links = append(result.Links, resolved)
						}
					}
				}
			}

		case html.TextNode:
			if trimmed := collapseWhitespace(n.Data); trimmed != "" {
				if text.Len() > 0 {
					text.WriteByte(' ')
				}
				text.WriteString(trimmed)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	result.Text = text.String()
	return result, nil
}

// resolveURL resolves a relative URL against the page's base URL.
// Non-navigational schemes and bare fragments are dropped.
func (e *Extractor) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "#") {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	return e.baseURL.ResolveReference(u).String()
}

// collapseWhitespace squeezes any whitespace run into a single space and
// trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
