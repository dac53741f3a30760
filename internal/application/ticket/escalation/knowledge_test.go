package escalation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKnowledgeBase_Default(t *testing.T) {
	kb, err := LoadKnowledgeBase("")

	require.NoError(t, err)
	assert.Equal(t, "Second Mate", kb.Assistant)
	assert.NotEmpty(t, kb.Topics)
}

func TestLoadKnowledgeBase_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("company: Acme\ntopics:\n  - title: Hours\n    content: We answer 9 to 5.\n"), 0o600))

	kb, err := LoadKnowledgeBase(path)

	require.NoError(t, err)
	assert.Equal(t, "Acme", kb.Company)
	assert.Equal(t, "Second Mate", kb.Assistant)
	assert.Equal(t, "## Hours\nWe answer 9 to 5.", kb.Snippet("anything"))
}

func TestLoadKnowledgeBase_Errors(t *testing.T) {
	_, err := LoadKnowledgeBase(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseKnowledgeBase([]byte("topics: [unclosed"))
	assert.Error(t, err)
}

func TestKnowledgeBase_SnippetRanksMatchingTopicsFirst(t *testing.T) {
	kb, err := LoadKnowledgeBase("")
	require.NoError(t, err)

	snippet := kb.Snippet("My site is DOWN with a 500 error")

	assert.True(t, strings.HasPrefix(snippet, "## Hosting and outages"), snippet)
	assert.Contains(t, snippet, "## Billing and invoices")
}

func TestKnowledgeBase_SnippetEmpty(t *testing.T) {
	var kb *KnowledgeBase
	assert.Equal(t, "No knowledge base entries.", kb.Snippet("x"))
}
