package export

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// LinkRule turns task names matching a pattern into hyperlinks in
// rendered reports. The target may contain "§", which is substituted
// with the literal task name.
type LinkRule struct {
	pattern *regexp.Regexp
	target  string
}

// ParseLinkRules compiles an alternating list of pattern and URL
// lines into rules. An odd-length list disables matching entirely;
// individual rules with a blank or invalid pattern or a non-absolute
// URL are skipped. All failures are warnings, never errors.
func ParseLinkRules(lines []string) []LinkRule {
	if len(lines)%2 != 0 {
		log.Warn("task link configuration has an odd number of lines, matching disabled", "lines", len(lines))
		return nil
	}

	var rules []LinkRule
	for i := 0; i < len(lines); i += 2 {
		pattern, target := strings.TrimSpace(lines[i]), strings.TrimSpace(lines[i+1])

		if u, err := url.Parse(target); err != nil || !u.IsAbs() {
			log.Warn("task link URL is not absolute, rule skipped", "url", target)
			continue
		}
		if pattern == "" {
			log.Warn("task link pattern is empty, rule skipped")
			continue
		}

		// Patterns match whole names.
		if !strings.HasPrefix(pattern, "^") {
			pattern = "^" + pattern
		}
		if !strings.HasSuffix(pattern, "$") {
			pattern = pattern + "$"
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			log.Warn("task link pattern does not compile, rule skipped", "pattern", pattern, "err", err)
			continue
		}
		rules = append(rules, LinkRule{pattern: re, target: target})
	}
	return rules
}

// ResolveLink returns the link for a task name under the first
// matching rule, or false when no rule matches.
func ResolveLink(rules []LinkRule, name string) (string, bool) {
	for _, rule := range rules {
		if rule.pattern.MatchString(name) {
			return strings.ReplaceAll(rule.target, "§", name), true
		}
	}
	return "", false
}
