package shared

import (
	"regexp"
	"strings"
)

var (
	sqlInjectionPattern  = regexp.MustCompile(`(?i)(\bunion\b.*\bselect\b|\bselect\b.*\bfrom\b|\binsert\b\s+\binto\b|\bdrop\b\s+\btable\b|\bdelete\b\s+\bfrom\b|--|;\s*\bdrop\b)`)
	scriptTagPattern     = regexp.MustCompile(`(?i)<\s*script`)
	eventHandlerPattern  = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	jsProtocolPattern    = regexp.MustCompile(`(?i)javascript\s*:`)
	pathTraversalPattern = regexp.MustCompile(`\.\./|\.\.\\`)
)

// DetectMaliciousInput runs cheap abuse heuristics over a free-text field.
// It reports every matched pattern so the security log can name them.
func DetectMaliciousInput(input string) (bool, []string) {
	var reasons []string

	if sqlInjectionPattern.MatchString(input) {
		reasons = append(reasons, "possible SQL injection")
	}
	if scriptTagPattern.MatchString(input) {
		reasons = append(reasons, "script tag")
	}
	if eventHandlerPattern.MatchString(input) {
		reasons = append(reasons, "inline event handler")
	}
	if jsProtocolPattern.MatchString(input) {
		reasons = append(reasons, "javascript protocol")
	}
	if pathTraversalPattern.MatchString(input) {
		reasons = append(reasons, "path traversal")
	}

	return len(reasons) > 0, reasons
}

// SanitizeString strips the characters the heuristics key on before a value
// is echoed back in a response or template.
func SanitizeString(input string) string {
	s := strings.NewReplacer("<", "", ">", "").Replace(input)
	s = jsProtocolPattern.ReplaceAllString(s, "")
	s = eventHandlerPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
