package feature

import (
	"fmt"
	"strings"
)

// Document is the parsed form of a single feature file.
type Document struct {
	Name      string
	Scenarios []Scenario
}

// Scenario is one independent test case within a feature.
type Scenario struct {
	Title    string
	Tags     []string // tag names without the leading @
	Steps    []Step
	Comments []Comment // comments attached to this scenario; metadata only
	Line     int       // 1-based line number of the Scenario: line
}

// StepKind is the primary step type after And/But inheritance.
type StepKind int

const (
	KindGiven StepKind = iota
	KindWhen
	KindThen
)

func (k StepKind) String() string {
	switch k {
	case KindGiven:
		return "given"
	case KindWhen:
		return "when"
	case KindThen:
		return "then"
	default:
		return "unknown"
	}
}

// Step is one given/when/then/and/but clause.
type Step struct {
	Keyword string   // verbatim keyword as written: Given, When, Then, And, But
	Kind    StepKind // And/But resolve to the nearest preceding primary keyword
	Text    string
	Ordinal int // 1-based position within the scenario
	Line    int
}

// Comment is a # line attached to the nearest following scenario.
// Comments never affect execution.
type Comment struct {
	Text string
	Line int
}

// Serialize renders the document's structural content (name, tags, titles,
// steps) back to feature-file text. Comments and original formatting are
// not preserved; parsing the output yields a structurally equal Document.
func (d *Document) Serialize() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Feature: %s\n", d.Name)
	for _, sc := range d.Scenarios {
		b.WriteString("\n")
		if len(sc.Tags) > 0 {
			b.WriteString(" ")
			for _, tag := range sc.Tags {
				b.WriteString(" @" + tag)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  Scenario: %s\n", sc.Title)
		for _, st := range sc.Steps {
			fmt.Fprintf(&b, "    %s %s\n", st.Keyword, st.Text)
		}
	}
	return b.String()
}
