// Package crawl extracts the links between the HTML pages of a directory.
package crawl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Directory parses every .html file in dir and returns, for each file name,
// the href of its anchors without the page itself.
// Links are returned as written: keeping only the pages of the corpus is
// left to graph.New.
func Directory(dir string) (map[string][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	pages := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		links, err := file(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", entry.Name(), err)
		}
		pages[entry.Name()] = withoutPage(links, entry.Name())
	}
	return pages, nil
}

func file(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Page(f)
}

// Page returns the href of every anchor of an HTML document
func Page(r io.Reader) ([]string, error) {
	z := html.NewTokenizer(r)
	var links []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return links, nil
			}
			return nil, z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			token := z.Token()
			if token.DataAtom != atom.A {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key == "href" {
					links = append(links, attr.Val)
				}
			}
		}
	}
}

// Removes duplicates and self links
func withoutPage(links []string, page string) []string {
	seen := make(map[string]bool, len(links))
	result := make([]string, 0, len(links))
	for _, link := range links {
		if link == page || seen[link] {
			continue
		}
		seen[link] = true
		result = append(result, link)
	}
	return result
}
