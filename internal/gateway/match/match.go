// Package match implements the path globs used by the gateway's route and
// policy tables. Supported forms, per pattern segment:
//
//	literal   exact segment
//	*         exactly one segment
//	**        the rest of the path, including nothing (must be last)
//	{a,b}     one of the listed literals
package match

import "strings"

func Path(pattern, path string) bool {
	pat := split(pattern)
	seg := split(path)

	for i, p := range pat {
		if p == "**" {
			return true
		}
		if i >= len(seg) {
			return false
		}
		if !segment(p, seg[i]) {
			return false
		}
	}
	return len(pat) == len(seg)
}

// Any reports whether any of the patterns matches the path.
func Any(patterns []string, path string) bool {
	for _, p := range patterns {
		if Path(p, path) {
			return true
		}
	}
	return false
}

func segment(pattern, seg string) bool {
	if pattern == "*" {
		return seg != ""
	}
	if strings.HasPrefix(pattern, "{") && strings.HasSuffix(pattern, "}") {
		for _, alt := range strings.Split(pattern[1:len(pattern)-1], ",") {
			if strings.TrimSpace(alt) == seg {
				return true
			}
		}
		return false
	}
	return pattern == seg
}

func split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
