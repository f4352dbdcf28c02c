package http

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang-jwt/jwt/v5/request"
	"github.com/google/uuid"

	"github.com/sacensibas/backend/contest"
)

// Claims is the JWT payload issued by the auth service.
type Claims struct {
	UserUuid    string   `json:"user_uuid"`
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

type ctxKey string

const claimsCtxKey ctxKey = "jwt_claims"

func getJwtAuthMiddleware(jwtKey []byte) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, err := request.BearerExtractor{}.ExtractToken(r)
			if err != nil {
				if errors.Is(err, request.ErrNoTokenInRequest) {
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			claims := &Claims{}
			parsed, err := jwt.ParseWithClaims(token, claims,
				func(t *jwt.Token) (interface{}, error) {
					return jwtKey, nil
				})
			if err != nil || !parsed.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsCtxKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

func claimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsCtxKey).(*Claims)
	return claims
}

// tokenCapability implements contest.Capability from the caller's JWT
// claims. Anonymous callers get the zero capability.
type tokenCapability struct {
	claims *Claims
}

func capabilityFromContext(ctx context.Context) contest.Capability {
	claims := claimsFromContext(ctx)
	if claims == nil {
		return contest.AnonymousCapability{}
	}
	return tokenCapability{claims: claims}
}

func (tc tokenCapability) HasPermission(perm string) bool {
	return slices.Contains(tc.claims.Permissions, perm)
}

func (tc tokenCapability) OwnsContest(c *contest.Contest) bool {
	id, err := uuid.Parse(tc.claims.UserUuid)
	if err != nil {
		return false
	}
	if c.Owner == id {
		return true
	}
	return slices.Contains(c.Maintainers, id)
}
