package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/api/v1/auth/login", "/api/v1/auth/login", true},
		{"/api/v1/auth/login", "/api/v1/auth/login/extra", false},
		{"/api/v1/books/**", "/api/v1/books/42", true},
		{"/api/v1/books/**", "/api/v1/books/42/reviews", true},
		{"/api/v1/books/**", "/api/v1/books", true},
		{"/api/v1/books/**", "/api/v1/booksmith", false},
		{"/oauth2/**", "/oauth2/authorization/google", true},
		{"/oauth2/**", "/api/v1/oauth2/callback", false},
		{"/api/v1/*/internal", "/api/v1/user/internal", true},
		{"/api/v1/{books,category}/**", "/api/v1/books/1", true},
		{"/api/v1/{books,category}/**", "/api/v1/category", true},
		{"/api/v1/{books,category}/**", "/api/v1/price/1", false},
		{"/actuator/health", "/actuator/health", true},
		{"/", "/", true},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, Path(tt.pattern, tt.path), "pattern %q path %q", tt.pattern, tt.path)
	}
}

func TestAny(t *testing.T) {
	t.Parallel()

	patterns := []string{"/swagger-ui/**", "/v3/api-docs/**", "/webjars/**"}
	assert.True(t, Any(patterns, "/swagger-ui/index.html"))
	assert.False(t, Any(patterns, "/api/v1/books"))
}
