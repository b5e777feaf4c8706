package feature

import (
	"regexp"
	"strconv"
	"strings"
)

var tagPattern = regexp.MustCompile(`@[^@\s]+`)

var primaryKinds = map[string]StepKind{
	"Given": KindGiven,
	"When":  KindWhen,
	"Then":  KindThen,
}

// Parse converts raw feature text into a Document. The first structural
// error aborts the parse; a Document is never returned alongside an error.
func Parse(filename string, content []byte) (*Document, *ParseError) {
	lines := strings.Split(string(content), "\n")
	doc := &Document{}

	i := 0

	// Header: the first significant line must be Feature:. Comments before
	// the header are allowed and attach to the first scenario.
	var pendingComments []Comment
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			i++
			continue
		}
		if isCommentLine(trimmed) {
			pendingComments = append(pendingComments, Comment{Text: commentText(trimmed), Line: i + 1})
			i++
			continue
		}
		break
	}
	if i >= len(lines) || !strings.HasPrefix(strings.TrimSpace(lines[i]), "Feature:") {
		line := i + 1
		if i >= len(lines) {
			line = len(lines)
		}
		return nil, &ParseError{Kind: KindMalformedHeader, Line: line, Message: "expected Feature: header"}
	}
	doc.Name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[i]), "Feature:"))
	i++

	// Body loop
	var pendingTags []string
	var current *Scenario
	var lastKind StepKind
	var sawPrimary bool
	seenTitles := map[string]int{}

	for i < len(lines) {
		raw := lines[i]
		trimmed := strings.TrimSpace(raw)

		if trimmed == "" {
			i++
			continue
		}

		if isCommentLine(trimmed) {
			// A commented-out Scenario: header makes the whole block inert.
			// The block is dropped from the Document entirely, along with
			// any tags that were pending for it.
			if isDisabledScenarioHeader(trimmed) {
				pendingTags = nil
				i = skipInertBlock(lines, i)
				continue
			}
			pendingComments = append(pendingComments, Comment{Text: commentText(trimmed), Line: i + 1})
			i++
			continue
		}

		if strings.HasPrefix(trimmed, "@") {
			// Tags close the current scenario; they apply only to the next
			// Scenario: header, never cumulatively.
			current = nil
			pendingTags = append(pendingTags, parseTags(trimmed)...)
			i++
			continue
		}

		if strings.HasPrefix(trimmed, "Scenario:") {
			title := strings.TrimSpace(strings.TrimPrefix(trimmed, "Scenario:"))
			if prev, ok := seenTitles[title]; ok {
				return nil, &ParseError{
					Kind:    KindDuplicateScenario,
					Line:    i + 1,
					Message: "scenario " + strconv.Quote(title) + " already declared on line " + strconv.Itoa(prev),
				}
			}
			seenTitles[title] = i + 1
			doc.Scenarios = append(doc.Scenarios, Scenario{
				Title:    title,
				Tags:     pendingTags,
				Comments: pendingComments,
				Line:     i + 1,
			})
			current = &doc.Scenarios[len(doc.Scenarios)-1]
			pendingTags = nil
			pendingComments = nil
			sawPrimary = false
			i++
			continue
		}

		if keyword, text, ok := splitStep(trimmed); ok {
			if current == nil {
				return nil, &ParseError{Kind: KindOrphanedStep, Line: i + 1, Message: "step outside a scenario"}
			}
			kind, primary := primaryKinds[keyword]
			if primary {
				lastKind = kind
				sawPrimary = true
			} else if !sawPrimary {
				return nil, &ParseError{
					Kind:    KindOrphanedStep,
					Line:    i + 1,
					Message: keyword + " step has no preceding Given/When/Then",
				}
			} else {
				kind = lastKind
			}
			current.Steps = append(current.Steps, Step{
				Keyword: keyword,
				Kind:    kind,
				Text:    text,
				Ordinal: len(current.Steps) + 1,
				Line:    i + 1,
			})
			i++
			continue
		}

		// Free text (e.g. a description line) is ignored.
		i++
	}

	if len(pendingTags) > 0 {
		return nil, &ParseError{
			Kind:    KindUnterminatedScenario,
			Line:    len(lines),
			Message: "tags @" + strings.Join(pendingTags, " @") + " are not followed by a scenario",
		}
	}

	return doc, nil
}

func parseTags(line string) []string {
	matches := tagPattern.FindAllString(line, -1)
	var tags []string
	for _, m := range matches {
		tags = append(tags, strings.TrimPrefix(m, "@"))
	}
	return tags
}

func isCommentLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "#")
}

func commentText(trimmed string) string {
	return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
}

// isDisabledScenarioHeader reports whether a comment line hides a
// Scenario: header, e.g. "# Scenario: Delete the problem".
func isDisabledScenarioHeader(trimmed string) bool {
	rest := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
	return strings.HasPrefix(rest, "Scenario:")
}

// skipInertBlock advances past a commented-out scenario block. i points at
// the commented Scenario: line. The block ends at the next blank line, tag
// line, or live Scenario: header.
func skipInertBlock(lines []string, i int) int {
	i++
	for i < len(lines) {
		t := strings.TrimSpace(lines[i])
		if t == "" || strings.HasPrefix(t, "@") || strings.HasPrefix(t, "Scenario:") {
			return i
		}
		if isCommentLine(t) && isDisabledScenarioHeader(t) {
			return i
		}
		i++
	}
	return i
}

func splitStep(trimmed string) (keyword, text string, ok bool) {
	for _, kw := range []string{"Given", "When", "Then", "And", "But"} {
		if trimmed == kw {
			return kw, "", true
		}
		if strings.HasPrefix(trimmed, kw+" ") {
			return kw, strings.TrimSpace(trimmed[len(kw):]), true
		}
	}
	return "", "", false
}
