package api

import (
	"crypto/subtle"
	"net/http"
)

// requireToken rejects requests whose ?token= does not match the configured
// secret. With no secret configured every request passes.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.secretToken != "" && !secureCompare(s.secretToken, r.URL.Query().Get("token")) {
			respondError(w, http.StatusUnauthorized, "Unauthorized: Token is invalid")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares a and b in time that depends only on the longer of
// the two.
func secureCompare(a, b string) bool {
	n := max(len(a), len(b))
	bufA := make([]byte, n)
	bufB := make([]byte, n)
	copy(bufA, a)
	copy(bufB, b)
	return subtle.ConstantTimeCompare(bufA, bufB) == 1 && len(a) == len(b)
}
