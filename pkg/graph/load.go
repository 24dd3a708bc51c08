package graph

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/lioia/pagerank/pkg/utils"
)

// Write saves the ranks into output, one page per line
func Write(output, title string, ranks Ranks) error {
	file, err := os.Create(output)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = file.WriteString(Format(title, ranks))
	return err
}

// Format lists the ranks in page order under title
func Format(title string, ranks Ranks) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	for _, page := range ranks.Sorted() {
		fmt.Fprintf(&b, "  %s: %.4f\n", page, ranks[page])
	}
	return b.String()
}

// LoadGraphResource reads an edge list from a local file or from an http(s)
// URL and returns the links of every page
func LoadGraphResource(resource string) (map[string][]string, error) {
	var bytes []byte
	var err error
	// Check if it's a network resource or a local one
	if strings.HasPrefix(resource, "http://") || strings.HasPrefix(resource, "https://") {
		var resp *http.Response
		resp, err = http.Get(resource)
		if err != nil {
			utils.WarnLog("loader", "Could not load network file at %s: %v", resource, err)
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("could not load %s: %s", resource, resp.Status)
		}
		bytes, err = io.ReadAll(resp.Body)
		if err != nil {
			utils.WarnLog("loader", "Could not load body from request: %v", err)
			return nil, err
		}
	} else {
		bytes, err = os.ReadFile(resource)
		if err != nil {
			utils.WarnLog("loader", "Could not read graph at %s: %v", resource, err)
			return nil, err
		}
	}
	links, err := ParseEdgeList(bytes)
	if err != nil {
		return nil, fmt.Errorf("could not load graph from %s: %w", resource, err)
	}
	return links, nil
}

// ParseEdgeList reads one link per line, as `from to` or `from,to`.
// Blank lines and lines starting with # or // are skipped. Pages appearing
// only as targets are part of the corpus.
func ParseEdgeList(contents []byte) (map[string][]string, error) {
	links := make(map[string][]string)
	lines := strings.Split(strings.ReplaceAll(string(contents), "\r\n", "\n"), "\n")
	for i, line := range lines {
		from, to, skip, err := convertLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if skip {
			continue
		}
		if _, ok := links[to]; !ok {
			links[to] = nil
		}
		links[from] = append(links[from], to)
	}
	return links, nil
}

func convertLine(line string) (string, string, bool, error) {
	line = strings.TrimSpace(line)
	// Skip comment lines
	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") || line == "" {
		return "", "", true, nil
	}
	// Split line in FromNode and ToNode
	tokens := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(tokens) != 2 {
		return "", "", false, fmt.Errorf("could not convert %q into an edge", line)
	}
	return tokens[0], tokens[1], false, nil
}
