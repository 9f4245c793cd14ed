// Package frontmatter parses transcript files that start with a YAML
// front-matter block delimited by "---" lines.
package frontmatter

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Aiven-Labs/preparing-data-for-pgvector-and-langchain/internal/domain"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Post is a parsed document: its front-matter fields and body text.
type Post struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	PubDate     string `yaml:"pub_date"`

	// Extra holds every front-matter key, including the ones above.
	Extra   map[string]any `yaml:"-"`
	Content string         `yaml:"-"`
}

// Parse splits raw into front-matter and body. A document without a
// leading "---" line has no front-matter and is rejected.
func Parse(raw []byte) (*Post, error) {
	text := strings.TrimPrefix(string(raw), "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	header, body, ok := split(text)
	if !ok {
		return nil, domain.ErrNoFrontMatter
	}

	var post Post
	if err := yaml.Unmarshal([]byte(header), &post); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrInvalidFrontMatter.Code, domain.ErrInvalidFrontMatter.Message, err)
	}
	if err := yaml.Unmarshal([]byte(header), &post.Extra); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrInvalidFrontMatter.Code, domain.ErrInvalidFrontMatter.Message, err)
	}
	post.Content = strings.TrimSpace(body)

	return &post, nil
}

// Validate checks that every field the ingestion pipeline needs is present.
func (p *Post) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"title", p.Title},
		{"description", p.Description},
		{"url", p.URL},
		{"pub_date", p.PubDate},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return domain.MissingField(f.name)
		}
	}
	return nil
}

func split(text string) (header, body string, ok bool) {
	lines := strings.SplitAfter(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return "", "", false
	}

	var buf bytes.Buffer
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			return buf.String(), strings.Join(lines[i+1:], ""), true
		}
		buf.WriteString(lines[i])
	}
	return "", "", false
}

// "January 5, 2023", "January 5th 2023", "Jan 5, 2023"
var textualDate = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})$`)

// ParsePubDate parses a publication date written as month name, day and
// year, and returns it as an ISO date (YYYY-MM-DD). ISO input is accepted as is.
func ParsePubDate(value string) (string, error) {
	value = strings.Join(strings.Fields(value), " ")

	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t.Format(time.DateOnly), nil
	}

	m := textualDate.FindStringSubmatch(value)
	if m == nil {
		return "", invalidDate(value)
	}

	normalized := fmt.Sprintf("%s %s %s", m[1], m[2], m[3])
	for _, layout := range []string{"January 2 2006", "Jan 2 2006"} {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.Format(time.DateOnly), nil
		}
	}
	return "", invalidDate(value)
}

func invalidDate(value string) error {
	return domain.NewDomainErrorWithCause(domain.ErrInvalidPubDate.Code, domain.ErrInvalidPubDate.Message, fmt.Errorf("%q", value))
}
