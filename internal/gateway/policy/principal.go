package policy

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/TBanda27/Ecommerce-bookstore/pkg/tokens"
)

// ErrInvalidToken marks a bearer token that fails signature or structural
// validation. Expired tokens are NOT invalid in this sense: they downgrade
// the request to anonymous and the policy table decides its fate.
var ErrInvalidToken = errors.New("invalid bearer token")

// Principal is the identity carried by a validated JWT. Roles are held in
// normalized ROLE_ form.
type Principal struct {
	UserID   uint
	Username string
	Roles    []string
}

func (p *Principal) RolesJoined() string {
	return strings.Join(p.Roles, ",")
}

func (p *Principal) UserIDString() string {
	return strconv.FormatUint(uint64(p.UserID), 10)
}

// PrincipalFromRequest extracts the principal from the Authorization header.
// No header or an expired token yields (nil, nil).
func PrincipalFromRequest(r *http.Request, secret []byte) (*Principal, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
		return nil, nil
	}

	claims, err := tokens.Parse(strings.TrimPrefix(auth, "Bearer "), secret)
	if err != nil {
		if errors.Is(err, tokens.ErrExpired) {
			return nil, nil
		}
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Principal{
		UserID:   claims.UserID,
		Username: claims.Subject,
		Roles:    tokens.NormalizeRoles(claims.Roles),
	}, nil
}
