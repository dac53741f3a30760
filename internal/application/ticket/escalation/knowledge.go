package escalation

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var defaultKnowledge []byte

type KnowledgeTopic struct {
	Title    string   `yaml:"title"`
	Keywords []string `yaml:"keywords"`
	Content  string   `yaml:"content"`
}

// KnowledgeBase is the static reference text handed to the model with every prompt.
type KnowledgeBase struct {
	Company   string           `yaml:"company"`
	Assistant string           `yaml:"assistant"`
	Topics    []KnowledgeTopic `yaml:"topics"`
}

// LoadKnowledgeBase reads path, or the built-in knowledge base when path is empty.
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
	data := defaultKnowledge
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read knowledge base: %w", err)
		}
		data = b
	}
	return ParseKnowledgeBase(data)
}

func ParseKnowledgeBase(data []byte) (*KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}
	if kb.Assistant == "" {
		kb.Assistant = "Second Mate"
	}
	return &kb, nil
}

// Snippet renders every topic, the ones whose keywords appear in query first.
func (kb *KnowledgeBase) Snippet(query string) string {
	if kb == nil || len(kb.Topics) == 0 {
		return "No knowledge base entries."
	}

	lowered := cases.Lower(language.Und).String(query)
	type ranked struct {
		topic KnowledgeTopic
		hits  int
	}
	topics := make([]ranked, 0, len(kb.Topics))
	for _, topic := range kb.Topics {
		hits := 0
		for _, kw := range topic.Keywords {
			if kw != "" && strings.Contains(lowered, strings.ToLower(kw)) {
				hits++
			}
		}
		topics = append(topics, ranked{topic: topic, hits: hits})
	}
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].hits > topics[j].hits
	})

	var b strings.Builder
	for _, r := range topics {
		fmt.Fprintf(&b, "## %s\n%s\n\n", r.topic.Title, strings.TrimSpace(r.topic.Content))
	}
	return strings.TrimSpace(b.String())
}
