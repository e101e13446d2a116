package rules

import (
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// patternCacheSize bounds the compiled-pattern cache. Registries
// rarely carry more than a few hundred distinct patterns.
const patternCacheSize = 512

type compiledPattern struct {
	re  *regexp.Regexp
	err error
}

// patternCache memoizes pattern compilation across evaluations. This
// is the only state validators keep, and it is derived purely from
// constraint text, so cached entries never go stale.
var patternCache *lru.Cache[string, compiledPattern]

func init() {
	// Size is a positive constant; New only fails on size <= 0.
	patternCache, _ = lru.New[string, compiledPattern](patternCacheSize)
}

// compileContentPattern compiles pattern with multiline and dot-all
// flags: line anchors match per line and `.` crosses newlines. Both
// successful compiles and failures are memoized.
func compileContentPattern(pattern string) (*regexp.Regexp, error) {
	return compileCached("(?ms)" + pattern)
}

// compileCached compiles src verbatim through the cache.
func compileCached(src string) (*regexp.Regexp, error) {
	if hit, ok := patternCache.Get(src); ok {
		return hit.re, hit.err
	}
	re, err := regexp.Compile(src)
	patternCache.Add(src, compiledPattern{re: re, err: err})
	return re, err
}
