// Package policy evaluates the gateway's ordered access-control table.
package policy

import (
	"slices"

	"github.com/TBanda27/Ecommerce-bookstore/internal/gateway/match"
	"github.com/TBanda27/Ecommerce-bookstore/pkg/tokens"
)

type Requirement int

const (
	Public Requirement = iota
	Authenticated
	HasRole
	HasAnyRole
)

// Rule ties a method set and path patterns to a requirement. A nil Methods
// slice matches every method. Rules are evaluated in declaration order and
// the first match wins; an unmatched request falls through to Authenticated.
type Rule struct {
	Methods     []string
	Patterns    []string
	Requirement Requirement
	Roles       []string
}

type Decision int

const (
	Allow Decision = iota
	NeedAuth
	Forbidden
)

func (r Rule) matches(method, path string) bool {
	if r.Methods != nil && !slices.Contains(r.Methods, method) {
		return false
	}
	return match.Any(r.Patterns, path)
}

func Evaluate(rules []Rule, method, path string, p *Principal) Decision {
	for _, r := range rules {
		if r.matches(method, path) {
			return apply(r, p)
		}
	}
	return apply(Rule{Requirement: Authenticated}, p)
}

func apply(r Rule, p *Principal) Decision {
	switch r.Requirement {
	case Public:
		return Allow
	case Authenticated:
		if p == nil {
			return NeedAuth
		}
		return Allow
	default:
		if p == nil {
			return NeedAuth
		}
		for _, want := range tokens.NormalizeRoles(r.Roles) {
			if slices.Contains(p.Roles, want) {
				return Allow
			}
		}
		return Forbidden
	}
}
