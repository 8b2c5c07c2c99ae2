// Package linkcheck verifies fragment links in rendered notification
// documents: every href of the form "#anchor" must resolve to an element id
// in the same document.
package linkcheck

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Problem describes a fragment link with no matching element id.
type Problem struct {
	Href string // the unresolved href, including the leading #
	Text string // the link's visible text
}

// VerifyFile checks anchors in an HTML file on disk.
func VerifyFile(path string) ([]Problem, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer func() {
		_ = f.Close() // read-only
	}()
	return VerifyAnchors(f)
}

// VerifyAnchors parses a rendered document and returns one Problem per
// fragment href that does not resolve. A nil slice means every anchor
// resolves.
func VerifyAnchors(r io.Reader) ([]Problem, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	ids := make(map[string]bool)
	type fragment struct{ href, text string }
	var frags []fragment

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				switch a.Key {
				case "id":
					ids[a.Val] = true
				case "href":
					if strings.HasPrefix(a.Val, "#") {
						frags = append(frags, fragment{a.Val, nodeText(n)})
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var problems []Problem
	for _, f := range frags {
		if !ids[strings.TrimPrefix(f.href, "#")] {
			problems = append(problems, Problem{Href: f.href, Text: f.text})
		}
	}
	return problems, nil
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
