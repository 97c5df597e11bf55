package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
)

func signed(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: subject})
	raw, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return raw
}

var echoSubject = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(Subject(r.Context())))
})

func TestAuth(t *testing.T) {
	const secret = "s3cret"
	good := signed(t, secret, "alice")
	forged := signed(t, "other", "mallory")

	cases := []struct {
		name     string
		method   string
		target   string
		header   string
		wantCode int
		wantBody string
	}{
		{"missing_token", http.MethodGet, "/api/v1/scenes", "", http.StatusUnauthorized, ""},
		{"wrong_secret", http.MethodGet, "/api/v1/scenes", "Bearer " + forged, http.StatusUnauthorized, ""},
		{"garbage", http.MethodGet, "/api/v1/scenes", "Bearer not.a.token", http.StatusUnauthorized, ""},
		{"header", http.MethodGet, "/api/v1/scenes", "Bearer " + good, http.StatusOK, "alice"},
		{"query", http.MethodGet, "/ws/scenes/x?token=" + good, "", http.StatusOK, "alice"},
		{"preflight", http.MethodOptions, "/api/v1/scenes", "", http.StatusOK, ""},
	}
	h := Auth(secret)(echoSubject)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.wantCode {
				t.Fatalf("code=%d, want %d", rec.Code, tc.wantCode)
			}
			if tc.wantCode == http.StatusOK && rec.Body.String() != tc.wantBody {
				t.Fatalf("subject=%q, want %q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestAuthDisabledWithoutSecret(t *testing.T) {
	rec := httptest.NewRecorder()
	Auth("")(echoSubject).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scenes", nil))
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("code=%d body=%q", rec.Code, rec.Body.String())
	}
}

func TestCORS(t *testing.T) {
	called := false
	h := CORS("http://localhost:5173")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/scenes/x/lights/toggle", nil))
	if rec.Code != http.StatusOK || called {
		t.Fatalf("preflight: code=%d called=%v", rec.Code, called)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow origin=%q", got)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scenes", nil))
	if !called {
		t.Fatal("non-preflight request was not passed on")
	}
}
