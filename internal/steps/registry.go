// Package steps maps step-text patterns to executable handlers. Handlers
// are supplied by the automation layer; this package never performs UI
// actions itself.
package steps

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Handler executes one step. Captured pattern groups arrive as args in
// order of appearance.
type Handler func(ctx context.Context, args ...string) error

// UnboundStepError means no registered pattern matches a step. An unbound
// step indicates drift between the feature file and the automation layer,
// so it fails the owning scenario rather than being skipped.
type UnboundStepError struct {
	Text string
}

func (e *UnboundStepError) Error() string {
	return fmt.Sprintf("no handler registered for step %q", e.Text)
}

// Match is a resolved step: the handler plus its bound arguments.
type Match struct {
	Handler Handler
	Args    []string
	Pattern string // the pattern as registered
}

type binding struct {
	re      *regexp.Regexp
	source  string
	handler Handler
}

// Registry is a thread-safe, ordered pattern table. Resolution is
// first-match-wins over registration order.
type Registry struct {
	mu       sync.RWMutex
	bindings []binding
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register compiles pattern and appends it to the table. Patterns are
// regular expressions, anchored if not already, with two shorthands:
// {string} captures a double-quoted literal, {number} captures an integer
// or decimal.
func (r *Registry) Register(pattern string, h Handler) error {
	re, err := compilePattern(pattern)
	if err != nil {
		return fmt.Errorf("registering step pattern %q: %w", pattern, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = append(r.bindings, binding{re: re, source: pattern, handler: h})
	return nil
}

// MustRegister is Register, panicking on a bad pattern. Intended for
// automation-layer init code where a bad pattern is a programming error.
func (r *Registry) MustRegister(pattern string, h Handler) {
	if err := r.Register(pattern, h); err != nil {
		panic(err)
	}
}

// Resolve finds the first registered pattern matching text and binds its
// capture groups. Returns *UnboundStepError when nothing matches.
func (r *Registry) Resolve(text string) (*Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bindings {
		groups := b.re.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		return &Match{Handler: b.handler, Args: groups[1:], Pattern: b.source}, nil
	}
	return nil, &UnboundStepError{Text: text}
}

// Len returns the number of registered patterns.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

var placeholders = strings.NewReplacer(
	"{string}", `"([^"]*)"`,
	"{number}", `(\d+(?:\.\d+)?)`,
)

func compilePattern(pattern string) (*regexp.Regexp, error) {
	expanded := placeholders.Replace(pattern)
	if !strings.HasPrefix(expanded, "^") {
		expanded = "^" + expanded
	}
	if !strings.HasSuffix(expanded, "$") {
		expanded += "$"
	}
	return regexp.Compile(expanded)
}
