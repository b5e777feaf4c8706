package feature

import "fmt"

// ParseErrorKind classifies structural parse failures.
type ParseErrorKind int

const (
	// KindMalformedHeader means the file does not start with a Feature: line.
	KindMalformedHeader ParseErrorKind = iota
	// KindOrphanedStep means a step line appeared outside a scenario, or an
	// And/But step had no preceding primary step to inherit from.
	KindOrphanedStep
	// KindDuplicateScenario means two scenarios share a title.
	KindDuplicateScenario
	// KindUnterminatedScenario means tag lines were not followed by a
	// Scenario: header.
	KindUnterminatedScenario
)

func (k ParseErrorKind) String() string {
	switch k {
	case KindMalformedHeader:
		return "malformed header"
	case KindOrphanedStep:
		return "orphaned step"
	case KindDuplicateScenario:
		return "duplicate scenario"
	case KindUnterminatedScenario:
		return "unterminated scenario"
	default:
		return "parse error"
	}
}

// ParseError is a fatal structural error. A document that fails to parse
// is never partially usable; the run aborts before execution.
type ParseError struct {
	Kind    ParseErrorKind
	Line    int // 1-based
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Message)
}
