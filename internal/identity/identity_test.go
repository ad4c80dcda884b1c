package identity

import (
	"context"
	"testing"
	"time"

	"bought-tab/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-viewer-secret"

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestResolver_IssueAndParse(t *testing.T) {
	r := NewResolver(testSecret)

	token, err := r.Issue("V", time.Hour)
	require.NoError(t, err)

	viewer, err := r.FromHeader("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, model.Viewer{CustomerID: "V"}, viewer)
}

func TestResolver_FromHeader(t *testing.T) {
	r := NewResolver(testSecret)
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name           string
		header         string
		expectedViewer model.Viewer
		expectError    bool
	}{
		{
			name:           "No header is anonymous",
			header:         "",
			expectedViewer: model.AnonymousViewer,
		},
		{
			name: "Subject claim",
			header: "Bearer " + signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
				Subject: "cust-7", ExpiresAt: future,
			}),
			expectedViewer: model.Viewer{CustomerID: "cust-7"},
		},
		{
			name: "Customer id claim wins over subject",
			header: "bearer " + signed(t, jwt.SigningMethodHS256, []byte(testSecret), Claims{
				CustomerID:       "cust-8",
				RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: future},
			}),
			expectedViewer: model.Viewer{CustomerID: "cust-8"},
		},
		{
			name: "Expired token",
			header: "Bearer " + signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
				Subject: "cust-7", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			}),
			expectedViewer: model.AnonymousViewer,
			expectError:    true,
		},
		{
			name: "Wrong secret",
			header: "Bearer " + signed(t, jwt.SigningMethodHS256, []byte("other"), jwt.RegisteredClaims{
				Subject: "cust-7", ExpiresAt: future,
			}),
			expectedViewer: model.AnonymousViewer,
			expectError:    true,
		},
		{
			name: "Unexpected algorithm",
			header: "Bearer " + signed(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.RegisteredClaims{
				Subject: "cust-7", ExpiresAt: future,
			}),
			expectedViewer: model.AnonymousViewer,
			expectError:    true,
		},
		{
			name: "Token without customer",
			header: "Bearer " + signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
				ExpiresAt: future,
			}),
			expectedViewer: model.AnonymousViewer,
			expectError:    true,
		},
		{
			name:           "Wrong scheme",
			header:         "Basic dXNlcjpwYXNz",
			expectedViewer: model.AnonymousViewer,
			expectError:    true,
		},
		{
			name:           "Garbage token",
			header:         "Bearer not-a-jwt",
			expectedViewer: model.AnonymousViewer,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viewer, err := r.FromHeader(tt.header)

			assert.Equal(t, tt.expectedViewer, viewer)
			if tt.expectError {
				assert.ErrorIs(t, err, model.ErrInvalidViewerToken)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolver_Disabled(t *testing.T) {
	r := NewResolver("")
	assert.False(t, r.Enabled())

	_, err := r.Issue("V", time.Hour)
	assert.Error(t, err)

	viewer, err := r.FromHeader("")
	assert.NoError(t, err)
	assert.True(t, viewer.IsAnonymous())

	viewer, err = r.FromHeader("Bearer abc")
	assert.ErrorIs(t, err, model.ErrInvalidViewerToken)
	assert.True(t, viewer.IsAnonymous())
}

func TestViewerContext(t *testing.T) {
	ctx := context.Background()
	assert.True(t, ViewerFromContext(ctx).IsAnonymous())

	ctx = WithViewer(ctx, model.Viewer{CustomerID: "V"})
	assert.Equal(t, "V", ViewerFromContext(ctx).CustomerID)
}
