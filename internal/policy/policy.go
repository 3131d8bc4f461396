// Package policy centralizes the two independent knobs (§6) that decide how
// a transform call reacts to conditions that aren't unconditionally fatal:
// an unresolved free reference, and a parse failure.
package policy

import (
	"fmt"
	"sort"
	"strings"
)

// UnresolvedPolicy selects how an unresolved reference is reported.
// UnresolvedUnset defers to the strict/non-strict default.
type UnresolvedPolicy uint8

const (
	UnresolvedUnset UnresolvedPolicy = iota
	UnresolvedError
	UnresolvedWarn
	UnresolvedIgnore
)

// Engine is the resolved set of policy knobs for one transform call.
type Engine struct {
	Unresolved UnresolvedPolicy
	Strict     bool
}

func (e Engine) resolvedUnresolved() UnresolvedPolicy {
	if e.Unresolved != UnresolvedUnset {
		return e.Unresolved
	}
	if e.Strict {
		return UnresolvedError
	}
	return UnresolvedWarn
}

// Action is what a caller should do in response to a policy-gated
// condition.
type Action uint8

const (
	ActionIgnore Action = iota
	ActionWarn
	ActionFatal
)

// UnresolvedAction classifies how a non-empty set of unresolved names
// should be handled under this engine's configuration.
func (e Engine) UnresolvedAction() Action {
	switch e.resolvedUnresolved() {
	case UnresolvedIgnore:
		return ActionIgnore
	case UnresolvedError:
		return ActionFatal
	default:
		return ActionWarn
	}
}

// ParseFailureIsFatal reports whether a parse failure should abort the
// transform (strict mode) or be silently skipped with a warning.
func (e Engine) ParseFailureIsFatal() bool {
	return e.Strict
}

// UnresolvedReferenceError is the fatal form of an unresolved-reference
// report (§7's UnresolvedReferenceError); UnresolvedReferenceWarning is
// the non-fatal form used for a warn action. Both carry the same data, so
// a caller that unconditionally constructs one and only routes it
// differently based on UnresolvedAction doesn't need two code paths.
type UnresolvedReferenceError struct {
	HandlerName string
	Names       []string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference%s in %s: %s", plural(len(e.Names)), handlerLabel(e.HandlerName), joinSorted(e.Names))
}

type UnresolvedReferenceWarning struct {
	HandlerName string
	Names       []string
}

func (w *UnresolvedReferenceWarning) Error() string {
	return fmt.Sprintf("unresolved reference%s in %s: %s (client chunk will lack them)", plural(len(w.Names)), handlerLabel(w.HandlerName), joinSorted(w.Names))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func handlerLabel(name string) string {
	if name == "" {
		return "an anonymous handler"
	}
	return fmt.Sprintf("handler %q", name)
}

func joinSorted(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
