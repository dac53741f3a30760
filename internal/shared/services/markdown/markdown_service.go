// Package markdown renders ticket text for email.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

type MarkdownService interface {
	// ToHTMLSanitized renders markdown and passes it through a UGC policy.
	ToHTMLSanitized(markdown string) (string, error)
}

type markdownServiceImpl struct {
	md  goldmark.Markdown
	ugc *bluemonday.Policy
}

func NewMarkdownService() MarkdownService {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)
	return &markdownServiceImpl{
		md:  md,
		ugc: bluemonday.UGCPolicy(),
	}
}

func (s *markdownServiceImpl) ToHTMLSanitized(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return s.ugc.Sanitize(buf.String()), nil
}
