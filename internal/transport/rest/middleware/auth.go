package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const CompanyIDKey contextKey = "companyId"

// mockTokenPrefix is the development stand-in for a real identity provider.
// A bearer of the form "mock-jwt-token-{companyId}" authenticates as that
// company.
const mockTokenPrefix = "mock-jwt-token-"

// RequireCompany resolves the calling company from the Authorization header
// and stores its id on the request context.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		companyID, ok := strings.CutPrefix(token, mockTokenPrefix)
		if !ok || companyID == "" {
			http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), CompanyIDKey, companyID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCompanyID extracts the company id from context
func GetCompanyID(ctx context.Context) string {
	if v := ctx.Value(CompanyIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
