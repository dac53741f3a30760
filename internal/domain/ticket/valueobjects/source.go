package valueobjects

import "fmt"

// Source records how a ticket came into existence.
type Source string

const (
	SourceClient  Source = "client"
	SourceStaff   Source = "staff"
	SourceInsight Source = "insight"
)

func (s Source) String() string {
	return string(s)
}

func (s Source) IsValid() bool {
	return s == SourceClient || s == SourceStaff || s == SourceInsight
}

func NewSource(s string) (Source, error) {
	src := Source(s)
	if !src.IsValid() {
		return "", fmt.Errorf("invalid ticket source: %s", s)
	}
	return src, nil
}
