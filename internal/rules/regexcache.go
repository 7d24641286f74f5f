package rules

import (
	"regexp"
	"sync"

	"github.com/sirupsen/logrus"
)

// compiledPattern caches one compilation outcome. Failures are cached too so
// a bad pattern logs a single diagnostic instead of one per image.
type compiledPattern struct {
	re  *regexp.Regexp
	err error
}

// patternCache memoizes compiled patterns process-wide, keyed by the pattern
// string. Resolution runs on hot paths (prefetch scanning, list
// virtualization); recompiling per call would dominate matching cost.
var patternCache sync.Map

// compilePattern returns the memoized compilation of pattern.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if e, ok := patternCache.Load(pattern); ok {
		entry := e.(*compiledPattern)
		return entry.re, entry.err
	}

	re, err := regexp.Compile(pattern)
	entry := &compiledPattern{re: re, err: err}
	if existing, loaded := patternCache.LoadOrStore(pattern, entry); loaded {
		entry = existing.(*compiledPattern)
	} else if err != nil {
		logrus.WithField("pattern", pattern).WithError(err).
			Warn("invalid regex pattern in condition, treated as non-match")
	}
	return entry.re, entry.err
}
