package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setHeader  bool
		wantStatus int
		wantUserID int64
	}{
		{
			name:       "missing header",
			setHeader:  false,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty header",
			setHeader:  true,
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non numeric header",
			setHeader:  true,
			header:     "abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "zero user id",
			setHeader:  true,
			header:     "0",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "negative user id",
			setHeader:  true,
			header:     "-5",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid user id",
			setHeader:  true,
			header:     "42",
			wantStatus: http.StatusOK,
			wantUserID: 42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			var gotOK bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, gotOK = GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/meetings/1", nil)
			if tt.setHeader {
				req.Header.Set(HeaderUserID, tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.True(t, gotOK)
				assert.Equal(t, tt.wantUserID, gotUserID)
			} else {
				assert.False(t, gotOK)
				assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			}
		})
	}
}

func TestGetUserID_MissingValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	userID, ok := GetUserID(req.Context())
	assert.False(t, ok)
	assert.Zero(t, userID)
}
