package escalation

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Kind is the discriminant of a model response.
type Kind string

const (
	KindReply      Kind = "reply"
	KindEscalate   Kind = "escalate"
	KindMediaIssue Kind = "media_issue"
)

// MediaSentinel is the legacy marker a model emits when it cannot read an attachment.
const MediaSentinel = "[[MEDIA_UNREADABLE]]"

var (
	codeFencePattern = regexp.MustCompile("(?m)^[ \t]*```[A-Za-z0-9_-]*[ \t]*$")
	jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)
)

// Script is a parsed model response. Messages is empty for KindMediaIssue.
type Script struct {
	Kind     Kind
	Messages []string
}

// Escalates reports whether the script hands the ticket to a human.
func (s Script) Escalates() bool {
	return s.Kind == KindEscalate || s.Kind == KindMediaIssue
}

type envelope struct {
	Kind     Kind     `json:"kind"`
	Messages []string `json:"messages"`
}

// ParseResponse never fails: text that matches no structured form becomes a single reply.
// Order: code fences are stripped, then the JSON envelope, the media sentinel and a bare
// JSON array of strings are tried in turn.
func ParseResponse(raw string) Script {
	cleaned := stripCodeFences(raw)

	if s, ok := parseEnvelope(cleaned); ok {
		return s
	}
	if strings.Contains(cleaned, MediaSentinel) {
		return Script{Kind: KindMediaIssue}
	}
	if msgs, ok := parseArray(cleaned); ok {
		return Script{Kind: KindEscalate, Messages: msgs}
	}
	if cleaned == "" {
		return Script{Kind: KindReply}
	}
	return Script{Kind: KindReply, Messages: []string{cleaned}}
}

func stripCodeFences(raw string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(raw, ""))
}

func parseEnvelope(text string) (Script, bool) {
	if !strings.HasPrefix(text, "{") {
		return Script{}, false
	}
	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return Script{}, false
	}
	msgs := nonEmpty(env.Messages)

	switch env.Kind {
	case KindMediaIssue:
		return Script{Kind: KindMediaIssue}, true
	case KindEscalate:
		if len(msgs) == 0 {
			return Script{}, false
		}
		return Script{Kind: KindEscalate, Messages: msgs}, true
	default:
		if len(msgs) == 0 {
			return Script{}, false
		}
		return Script{Kind: KindReply, Messages: msgs}, true
	}
}

func parseArray(text string) ([]string, bool) {
	match := jsonArrayPattern.FindString(text)
	if match == "" {
		return nil, false
	}
	var msgs []string
	if err := json.Unmarshal([]byte(match), &msgs); err != nil {
		return nil, false
	}
	msgs = nonEmpty(msgs)
	return msgs, len(msgs) > 0
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var humanMentionPattern = regexp.MustCompile(`(?i)\b(human|real person|team member|specialist|technician|engineer|agent|support team|staff)\b`)

// MentionsHuman reports whether any message tells the client a person will step in.
func MentionsHuman(messages []string) bool {
	return humanMentionPattern.MatchString(strings.Join(messages, "\n"))
}
