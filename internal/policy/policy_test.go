package policy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullstack-dev/useclient-transform/internal/policy"
)

func TestUnresolvedActionDefaultsToWarnWhenNotStrict(t *testing.T) {
	e := policy.Engine{}
	require.Equal(t, policy.ActionWarn, e.UnresolvedAction())
}

func TestUnresolvedActionDefaultsToErrorWhenStrict(t *testing.T) {
	e := policy.Engine{Strict: true}
	require.Equal(t, policy.ActionFatal, e.UnresolvedAction())
}

func TestUnresolvedActionExplicitOverridesStrict(t *testing.T) {
	e := policy.Engine{Strict: true, Unresolved: policy.UnresolvedIgnore}
	require.Equal(t, policy.ActionIgnore, e.UnresolvedAction())

	e = policy.Engine{Strict: false, Unresolved: policy.UnresolvedError}
	require.Equal(t, policy.ActionFatal, e.UnresolvedAction())
}

func TestUnresolvedActionAllExplicitValues(t *testing.T) {
	require.Equal(t, policy.ActionIgnore, policy.Engine{Unresolved: policy.UnresolvedIgnore}.UnresolvedAction())
	require.Equal(t, policy.ActionWarn, policy.Engine{Unresolved: policy.UnresolvedWarn}.UnresolvedAction())
	require.Equal(t, policy.ActionFatal, policy.Engine{Unresolved: policy.UnresolvedError}.UnresolvedAction())
}

func TestParseFailureIsFatalMatchesStrict(t *testing.T) {
	require.False(t, policy.Engine{Strict: false}.ParseFailureIsFatal())
	require.True(t, policy.Engine{Strict: true}.ParseFailureIsFatal())
}

func TestUnresolvedReferenceErrorMessage(t *testing.T) {
	err := &policy.UnresolvedReferenceError{HandlerName: "onClick", Names: []string{"b", "a"}}
	require.Contains(t, err.Error(), `handler "onClick"`)
	require.Contains(t, err.Error(), "a, b")
}

func TestUnresolvedReferenceErrorAnonymousHandler(t *testing.T) {
	err := &policy.UnresolvedReferenceError{Names: []string{"x"}}
	require.Contains(t, err.Error(), "an anonymous handler")
}

func TestUnresolvedReferenceWarningMessage(t *testing.T) {
	warn := &policy.UnresolvedReferenceWarning{HandlerName: "onSubmit", Names: []string{"helper"}}
	require.Contains(t, warn.Error(), `handler "onSubmit"`)
	require.Contains(t, warn.Error(), "helper")
	require.Contains(t, warn.Error(), "lack them")
}

func TestUnresolvedReferencePluralization(t *testing.T) {
	single := &policy.UnresolvedReferenceError{HandlerName: "h", Names: []string{"a"}}
	require.NotContains(t, single.Error(), "references")

	multi := &policy.UnresolvedReferenceError{HandlerName: "h", Names: []string{"a", "b"}}
	require.Contains(t, multi.Error(), "references")
}
