package service

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/limbo/dayslide/pkg/entity"
)

const (
	googleMockName  = "John Doe"
	googleMockEmail = "john.doe@gmail.com"

	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 9
)

var (
	formLatency    = latencyRange{time.Second, time.Second}
	consentLatency = latencyRange{1500 * time.Millisecond, 1500 * time.Millisecond}
)

type AuthOpts struct {
	// Multiplies the simulated round trip. 0 turns latency off
	LatencyScale float64
	Now          func() time.Time
	Logger       *slog.Logger
}

// AuthService signs users in without a backend: any well-formed form is
// accepted and no password is stored.
type AuthService struct {
	opts AuthOpts
}

func NewAuthService(opts AuthOpts) *AuthService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &AuthService{opts: opts}
}

func (as *AuthService) SignUp(ctx context.Context, req *SignUpRequest) (*entity.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := as.wait(ctx, formLatency); err != nil {
		return nil, err
	}
	as.opts.Logger.Debug("mock sign up accepted")
	return as.newUser("user_", req.Name, req.Email), nil
}

// Login accepts any well-formed credentials. The display name is taken
// from the local part of the email.
func (as *AuthService) Login(ctx context.Context, req *LoginRequest) (*entity.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := as.wait(ctx, formLatency); err != nil {
		return nil, err
	}
	name, _, _ := strings.Cut(req.Email, "@")
	return as.newUser("user_", name, req.Email), nil
}

func (as *AuthService) Google(ctx context.Context) (*entity.User, error) {
	if err := as.wait(ctx, consentLatency); err != nil {
		return nil, err
	}
	return as.newUser("google_", googleMockName, googleMockEmail), nil
}

func (as *AuthService) newUser(prefix, name, email string) *entity.User {
	now := as.opts.Now()
	return &entity.User{
		ID:         prefix + randomID(),
		Name:       name,
		Email:      email,
		CreatedAt:  now,
		LastActive: now,
	}
}

func (as *AuthService) wait(ctx context.Context, r latencyRange) error {
	d := time.Duration(float64(r.min) * as.opts.LatencyScale)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func randomID() string {
	b := make([]byte, idLength)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(b)
}
