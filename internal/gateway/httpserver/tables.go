package httpserver

import (
	"net/http"

	"github.com/TBanda27/Ecommerce-bookstore/internal/gateway/policy"
)

// Route forwards matching paths to an upstream pool. Routes are evaluated in
// declaration order; the first match wins. A Deny route answers 404 without
// touching discovery, which is how internal-only endpoints are kept off the
// edge.
type Route struct {
	Patterns     []string
	Pool         string
	Strip        int
	PreserveHost bool
	Deny         bool
}

const (
	PoolAuth      = "AUTH-SERVICE"
	PoolBooks     = "BOOK-SERVICE"
	PoolCategory  = "CATEGORY-SERVICE"
	PoolPrice     = "PRICE-SERVICE"
	PoolInventory = "INVENTORY-SERVICE"
	PoolReview    = "REVIEW-SERVICE"
)

func DefaultRoutes() []Route {
	return []Route{
		// Internal user lookups are reachable only on the service mesh.
		{Patterns: []string{"/api/v1/user/internal/**"}, Deny: true},

		// OAuth2 flows keep the original Host so provider redirects resolve.
		{Patterns: []string{"/api/v1/oauth2/**", "/oauth2/**", "/login/**"}, Pool: PoolAuth, PreserveHost: true},

		{Patterns: []string{"/api/v1/auth/**", "/api/v1/user/**"}, Pool: PoolAuth},
		{Patterns: []string{"/api/v1/books/**"}, Pool: PoolBooks},
		{Patterns: []string{"/api/v1/category/**"}, Pool: PoolCategory},
		{Patterns: []string{"/api/v1/price/**"}, Pool: PoolPrice},
		{Patterns: []string{"/api/v1/inventory/**"}, Pool: PoolInventory},
		{Patterns: []string{"/api/v1/review/**"}, Pool: PoolReview},

		// Interactive docs are served by the auth service.
		{Patterns: []string{"/swagger-ui/**", "/v3/api-docs/**", "/webjars/**", "/actuator/health"}, Pool: PoolAuth},

		// Bare-prefix convenience routes; the prefix is stripped before
		// forwarding.
		{Patterns: []string{"/books/**"}, Pool: PoolBooks, Strip: 1},
		{Patterns: []string{"/category/**"}, Pool: PoolCategory, Strip: 1},
		{Patterns: []string{"/price/**"}, Pool: PoolPrice, Strip: 1},
		{Patterns: []string{"/inventory/**"}, Pool: PoolInventory, Strip: 1},
		{Patterns: []string{"/review/**"}, Pool: PoolReview, Strip: 1},
		{Patterns: []string{"/auth/**", "/user/**"}, Pool: PoolAuth, Strip: 1},
	}
}

// DefaultPolicy is the canonical ordered rule table. First match wins; an
// unmatched request requires authentication.
func DefaultPolicy() []policy.Rule {
	anyRole := []string{"USER", "ADMIN"}
	writes := []string{http.MethodPost, http.MethodPut, http.MethodDelete}

	return []policy.Rule{
		{Patterns: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/verify",
			"/api/v1/auth/resend-verification",
		}, Requirement: policy.Public},

		{Patterns: []string{"/oauth2/**", "/login/**", "/api/v1/oauth2/**"}, Requirement: policy.Public},

		{Patterns: []string{"/swagger-ui/**", "/v3/api-docs/**", "/webjars/**", "/actuator/health"}, Requirement: policy.Public},

		{Methods: []string{http.MethodPost}, Patterns: []string{"/api/v1/user"}, Requirement: policy.Public},

		{Methods: []string{http.MethodGet}, Patterns: []string{
			"/api/v1/books/**",
			"/api/v1/category/**",
			"/api/v1/price/**",
			"/api/v1/inventory/**",
			"/api/v1/review/**",
		}, Requirement: policy.Public},

		{Methods: writes, Patterns: []string{"/api/v1/{books,category,price,inventory}/**"},
			Requirement: policy.HasRole, Roles: []string{"ADMIN"}},

		{Methods: []string{http.MethodGet, http.MethodPut, http.MethodDelete},
			Patterns: []string{"/api/v1/user/me"}, Requirement: policy.HasAnyRole, Roles: anyRole},

		{Methods: []string{http.MethodGet, http.MethodDelete},
			Patterns: []string{"/api/v1/user/**"}, Requirement: policy.HasRole, Roles: []string{"ADMIN"}},

		{Methods: writes, Patterns: []string{"/api/v1/review/**"},
			Requirement: policy.HasAnyRole, Roles: anyRole},
		{Methods: []string{http.MethodGet}, Patterns: []string{"/api/v1/review/me"},
			Requirement: policy.HasAnyRole, Roles: anyRole},
	}
}
