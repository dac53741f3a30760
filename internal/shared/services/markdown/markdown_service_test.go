package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTMLSanitized(t *testing.T) {
	svc := NewMarkdownService()

	out, err := svc.ToHTMLSanitized("**Site down** <script>alert(1)</script>")
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>Site down</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestToHTMLSanitized_KeepsTextAroundAngleBrackets(t *testing.T) {
	svc := NewMarkdownService()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "escaped markup", input: "&lt;script&gt;alert(1)&lt;/script&gt;", want: "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{name: "bare less-than", input: "Your plan costs <$50 and x<y", want: "costs &lt;$50 and x&lt;y"},
		{name: "autolinked address", input: "Email us at <support@example.com> today", want: "support@example.com</a> today"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.ToHTMLSanitized(tt.input)
			require.NoError(t, err)

			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, "<script>")
		})
	}
}
