package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/internal/service"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

func newAuthService() *service.AuthService {
	return service.NewAuthService(service.AuthOpts{
		Now: func() time.Time { return fixedNow },
	})
}

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		req    service.SignUpRequest
		fields []string
	}{
		{
			name: "success",
			req:  service.SignUpRequest{Name: "Jane", Email: "jane@example.com", Password: "secret"},
		},
		{
			name:   "missing name",
			req:    service.SignUpRequest{Name: "  ", Email: "jane@example.com", Password: "secret"},
			fields: []string{"name"},
		},
		{
			name:   "bad email and short password",
			req:    service.SignUpRequest{Name: "Jane", Email: "jane.example.com", Password: "12345"},
			fields: []string{"email", "password"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := newAuthService().SignUp(ctx, &tt.req)
			if len(tt.fields) > 0 {
				var verr *errorvalues.ValidationError
				require.True(t, errors.As(err, &verr))
				for _, f := range tt.fields {
					assert.Contains(t, verr.Fields, f)
				}
				assert.Len(t, verr.Fields, len(tt.fields))
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(user.ID, "user_"))
			assert.Len(t, user.ID, len("user_")+9)
			assert.Equal(t, "Jane", user.Name)
			assert.Equal(t, fixedNow, user.CreatedAt)
			assert.False(t, user.OnboardingCompleted)
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	user, err := newAuthService().Login(ctx, &service.LoginRequest{Email: "sam.lee@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "sam.lee", user.Name)
	assert.Equal(t, "sam.lee@example.com", user.Email)

	_, err = newAuthService().Login(ctx, &service.LoginRequest{Email: "sam", Password: ""})
	var verr *errorvalues.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "is required", verr.Fields["password"])
}

func TestGoogle(t *testing.T) {
	user, err := newAuthService().Google(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(user.ID, "google_"))
	assert.Equal(t, "John Doe", user.Name)
	assert.Equal(t, "john.doe@gmail.com", user.Email)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = service.NewAuthService(service.AuthOpts{LatencyScale: 1}).Google(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
