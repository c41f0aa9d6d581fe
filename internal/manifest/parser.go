package manifest

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"memorg/internal/domain"

	"golang.org/x/net/html"
)

var dateRe = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

// Scanner reads a memories manifest and yields the media entries it
// references. A fresh scan starts from the top of the document, so the
// sequence is restartable by scanning again.
type Scanner struct{}

// ScanFile scans the manifest at path. Source paths in the result are
// resolved relative to the manifest's own directory.
func (s Scanner) ScanFile(path string) ([]domain.MediaEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return s.Scan(file, filepath.Dir(path))
}

// Scan parses the manifest markup from r. Entries appear in document
// order. Unrecognized or malformed fragments are skipped; the html
// parser itself is error-tolerant, so a single bad block never aborts
// the scan.
func (s Scanner) Scan(r io.Reader, baseDir string) ([]domain.MediaEntry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var entries []domain.MediaEntry

	// The exports place the date line before the media it describes.
	// currentDate carries the most recent date text forward; lastKind
	// tracks the previous media element so a video directly following
	// an image is recognized as its paired clip.
	currentDate := ""
	lastKind := ""
	sawDateSinceMedia := true

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "img", "video":
				src := normalizeRef(attr(n, "src"))
				if src != "" && !isRemoteRef(src) && domain.IsMediaExtension(filepath.Ext(src)) {
					kind := strings.ToLower(n.Data)
					role := domain.RolePrimary
					if kind == "video" && lastKind == "img" && !sawDateSinceMedia {
						role = domain.RoleClip
					}
					entries = append(entries, domain.MediaEntry{
						SourcePath:       filepath.Join(baseDir, filepath.FromSlash(src)),
						RawRef:           attr(n, "src"),
						EmbeddedDateText: currentDate,
						Role:             role,
					})
					lastKind = kind
					sawDateSinceMedia = false
				}
			case "div":
				if strings.Contains(attr(n, "class"), "text-line") {
					if match := dateRe.FindString(textContent(n)); match != "" {
						currentDate = match
						sawDateSinceMedia = true
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return entries, nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var builder strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			val := strings.TrimSpace(n.Data)
			if val != "" {
				if builder.Len() > 0 {
					builder.WriteString(" ")
				}
				builder.WriteString(val)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return builder.String()
}

// normalizeRef cleans a src reference the way the exports write them:
// leading ./ or .// prefixes and query strings are stripped.
func normalizeRef(ref string) string {
	s := strings.TrimSpace(ref)
	if strings.HasPrefix(s, ".//") {
		s = s[3:]
	} else if strings.HasPrefix(s, "./") {
		s = s[2:]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	return s
}

func isRemoteRef(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "file://")
}
