package useclient

import (
	"regexp"

	"github.com/nullstack-dev/useclient-transform/internal/helpers"
)

// defaultInclude matches the JS/TS module extensions the transform applies
// to when no extra filter is configured.
var defaultInclude = regexp.MustCompile(`\.[cm]?[jt]sx?$`)

// Filter narrows which module ids TransformHook applies the transform to.
// Its expressions are combined with the built-in defaults rather than
// replacing them: an id must always look like a JS/TS module and must never
// live under node_modules.
type Filter struct {
	Include []*regexp.Regexp
	Exclude []*regexp.Regexp
}

// Match reports whether the module at absPath should be transformed. A nil
// receiver applies only the defaults.
func (f *Filter) Match(absPath string) bool {
	if !defaultInclude.MatchString(absPath) || helpers.IsInsideNodeModules(absPath) {
		return false
	}
	if f == nil {
		return true
	}
	for _, re := range f.Exclude {
		if re.MatchString(absPath) {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, re := range f.Include {
		if re.MatchString(absPath) {
			return true
		}
	}
	return false
}
