package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/limbo/dayslide/internal/service"
	"github.com/limbo/dayslide/pkg/entity"
	"github.com/limbo/dayslide/pkg/httputil"
)

type DeviceResponse struct {
	DeviceID string      `json:"deviceId"`
	Token    string      `json:"token"`
	Mode     entity.Mode `json:"mode"`
}

type ModeResponse struct {
	Mode entity.Mode `json:"mode"`
}

type AuthResponse struct {
	User *entity.User `json:"user"`
	Mode entity.Mode  `json:"mode"`
}

type StepResponse struct {
	Step int          `json:"step"`
	Kind string       `json:"kind"`
	Data service.Step `json:"data"`
}

type VisionRequest struct {
	Prompt string `json:"prompt"`
}

type RefineRequest struct {
	Feedback    string   `json:"feedback"`
	Adjustments []string `json:"adjustments"`
}

type CompleteActionRequest struct {
	Feedback string `json:"feedback"`
}

type CompleteActionResponse struct {
	Action   *entity.DailyAction `json:"action"`
	Progress entity.UserProgress `json:"progress"`
}

type TimerRequest struct {
	// 0 means the estimate of the current action
	Minutes int `json:"minutes"`
}

type DeleteAccountRequest struct {
	Confirmation string `json:"confirmation"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
	})
}

func (s *Server) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), s.opTimeout)
	defer cancel()
	deviceID, sess, err := s.registry.Create(ctx)
	if err != nil {
		writeServiceError(w, logger, "registering device", err)
		return
	}
	token, err := s.jwtService.GenerateToken(deviceID)
	if err != nil {
		logger.Error("registering device error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, DeviceResponse{
		DeviceID: deviceID,
		Token:    token,
		Mode:     sess.Mode(),
	})
	logger.Info("device registered", slog.String("device_id", deviceID))
}

func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionOrAbort(w, r)
	if !ok {
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) SignUp(w http.ResponseWriter, r *http.Request) {
	var req service.SignUpRequest
	if !decodeBody(w, r, "sign up", &req) {
		return
	}
	s.authenticate(w, r, "sign up", func(ctx context.Context) (*entity.User, error) {
		return s.authService.SignUp(ctx, &req)
	})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decodeBody(w, r, "login", &req) {
		return
	}
	s.authenticate(w, r, "login", func(ctx context.Context) (*entity.User, error) {
		return s.authService.Login(ctx, &req)
	})
}

func (s *Server) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	s.authenticate(w, r, "google auth", s.authService.Google)
}

func (s *Server) authenticate(w http.ResponseWriter, r *http.Request, op string, auth func(context.Context) (*entity.User, error)) {
	logger := GetLoggerFromCtx(r.Context())
	sess, ok := s.sessionOrAbort(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.opTimeout)
	defer cancel()
	user, err := auth(ctx)
	if err != nil {
		writeServiceError(w, logger, op, err)
		return
	}
	mode, err := sess.SignIn(ctx, user)
	if err != nil {
		writeServiceError(w, logger, op, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, AuthResponse{
		User: user,
		Mode: mode,
	})
	logger.Info("successful "+op, slog.String("user_id", user.ID))
}

func (s *Server) StartJourney(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	sess, ok := s.sessionOrAbort(w, r)
	if !ok {
		return
	}
	mode, err := sess.StartJourney()
	if err != nil {
		writeServiceError(w, logger, "starting journey", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, ModeResponse{Mode: mode})
}

func (s *Server) BackToLanding(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionOrAbort(w, r)
	if !ok {
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, ModeResponse{Mode: sess.BackToLanding()})
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	sess, ok := s.sessionOrAbort(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.opTimeout)
	defer cancel()
	if err := sess.Logout(ctx); err != nil {
		writeServiceError(w, logger, "logout", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, ModeResponse{Mode: sess.Mode()})
	logger.Info("successful logout")
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	sess, ok := s.sessionOrAbort(w, r)
	if !ok {
		return
	}
	var req service.ProfileUpdate
	if !decodeBody(w, r, "updating profile", &req) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.opTimeout)
	defer cancel()
	user, err := sess.UpdateProfile(ctx, &req)
	if err != nil {
		writeServiceError(w, logger, "updating profile", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, user)
}

func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	sess, ok := s.sessionOrAbort(w, r)
	if !ok {
		return
	}
	var req DeleteAccountRequest
	if !decodeBody(w, r, "deleting account", &req) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.opTimeout)
	defer cancel()
	if err := sess.DeleteAccount(ctx, req.Confirmation); err != nil {
		writeServiceError(w, logger, "deleting account", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("account deleted")
}

func (s *Server) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	s.withWizard(w, r, "getting onboarding", func(ctx context.Context, wz *service.Wizard) error {
		return nil
	})
}

func (s *Server) SetVision(w http.ResponseWriter, r *http.Request) {
	var req VisionRequest
	if !decodeBody(w, r, "setting vision", &req) {
		return
	}
	s.withWizard(w, r, "setting vision", func(ctx context.Context, wz *service.Wizard) error {
		return wz.SetVision(req.Prompt)
	})
}

func (s *Server) SetContext(w http.ResponseWriter, r *http.Request) {
	var req entity.ContextSelectors
	if !decodeBody(w, r, "setting context", &req) {
		return
	}
	s.withWizard(w, r, "setting context", func(ctx context.Context, wz *service.Wizard) error {
		return wz.SetContext(req)
	})
}

func (s *Server) NextStep(w http.ResponseWriter, r *http.Request) {
	s.withWizard(w, r, "advancing", func(ctx context.Context, wz *service.Wizard) error {
		return wz.Advance()
	})
}

func (s *Server) PrevStep(w http.ResponseWriter, r *http.Request) {
	s.withWizard(w, r, "retreating", func(ctx context.Context, wz *service.Wizard) error {
		return wz.Retreat()
	})
}

func (s *Server) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	s.withWizard(w, r, "generating plan", func(ctx context.Context, wz *service.Wizard) error {
		_, err := wz.Generate(ctx)
		return err
	})
}

func (s *Server) RefinePlan(w http.ResponseWriter, r *http.Request) {
	var req RefineRequest
	if !decodeBody(w, r, "refining plan", &req) {
		return
	}
	s.withWizard(w, r, "refining plan", func(ctx context.Context, wz *service.Wizard) error {
		_, err := wz.Refine(ctx, req.Feedback, req.Adjustments)
		return err
	})
}

func (s *Server) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	sess, ok := s.sessionOrAbort(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.opTimeout)
	defer cancel()
	mode, err := sess.CompleteOnboarding(ctx)
	if err != nil {
		writeServiceError(w, logger, "completing onboarding", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, ModeResponse{Mode: mode})
	logger.Info("onboarding completed")
}

// withWizard runs op against the session wizard and answers with the resulting step.
func (s *Server) withWizard(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, *service.Wizard) error) {
	logger := GetLoggerFromCtx(r.Context())
	sess, ok := s.sessionOrAbort(w, r)
	if !ok {
		return
	}
	wz, err := sess.Wizard()
	if err != nil {
		writeServiceError(w, logger, op, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.opTimeout)
	defer cancel()
	if err := fn(ctx, wz); err != nil {
		writeServiceError(w, logger, op, err)
		return
	}
	step := wz.Current()
	httputil.WriteJSONResponse(w, http.StatusOK, StepResponse{
		Step: step.Number(),
		Kind: step.Kind(),
		Data: step,
	})
}

func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	s.withDashboard(w, r, "getting dashboard", func(ctx context.Context, d *service.Dashboard) (any, error) {
		return d.View(), nil
	})
}

func (s *Server) RefreshDashboard(w http.ResponseWriter, r *http.Request) {
	s.withDashboard(w, r, "refreshing dashboard", func(ctx context.Context, d *service.Dashboard) (any, error) {
		if err := d.Refresh(ctx); err != nil {
			return nil, err
		}
		return d.View(), nil
	})
}

func (s *Server) LoadDailyAction(w http.ResponseWriter, r *http.Request) {
	actx := service.DefaultActionContext()
	if r.ContentLength > 0 {
		if !decodeBody(w, r, "loading daily action", &actx) {
			return
		}
	}
	s.withDashboard(w, r, "loading daily action", func(ctx context.Context, d *service.Dashboard) (any, error) {
		return d.LoadDailyAction(ctx, actx)
	})
}

func (s *Server) CompleteAction(w http.ResponseWriter, r *http.Request) {
	var req CompleteActionRequest
	if r.ContentLength > 0 {
		if !decodeBody(w, r, "completing action", &req) {
			return
		}
	}
	s.withDashboard(w, r, "completing action", func(ctx context.Context, d *service.Dashboard) (any, error) {
		action, progress, err := d.CompleteAction(req.Feedback)
		if err != nil {
			return nil, err
		}
		return CompleteActionResponse{Action: action, Progress: progress}, nil
	})
}

func (s *Server) GetMotivation(w http.ResponseWriter, r *http.Request) {
	s.withDashboard(w, r, "getting motivation", func(ctx context.Context, d *service.Dashboard) (any, error) {
		return d.Motivation(ctx)
	})
}

func (s *Server) GetTimer(w http.ResponseWriter, r *http.Request) {
	s.withDashboard(w, r, "getting timer", func(ctx context.Context, d *service.Dashboard) (any, error) {
		return d.Timer(), nil
	})
}

func (s *Server) StartTimer(w http.ResponseWriter, r *http.Request) {
	var req TimerRequest
	if r.ContentLength > 0 {
		if !decodeBody(w, r, "starting timer", &req) {
			return
		}
	}
	s.withDashboard(w, r, "starting timer", func(ctx context.Context, d *service.Dashboard) (any, error) {
		return d.StartTimer(req.Minutes)
	})
}

func (s *Server) StopTimer(w http.ResponseWriter, r *http.Request) {
	s.withDashboard(w, r, "stopping timer", func(ctx context.Context, d *service.Dashboard) (any, error) {
		return d.StopTimer()
	})
}

func (s *Server) withDashboard(w http.ResponseWriter, r *http.Request, op string, fn func(context.Context, *service.Dashboard) (any, error)) {
	logger := GetLoggerFromCtx(r.Context())
	sess, ok := s.sessionOrAbort(w, r)
	if !ok {
		return
	}
	d, err := sess.Dashboard()
	if err != nil {
		writeServiceError(w, logger, op, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.opTimeout)
	defer cancel()
	body, err := fn(ctx, d)
	if err != nil {
		writeServiceError(w, logger, op, err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, body)
}

func (s *Server) sessionOrAbort(w http.ResponseWriter, r *http.Request) (*service.SessionController, bool) {
	sess, err := GetSessionFromContext(r)
	if err != nil {
		GetLoggerFromCtx(r.Context()).Error("unauthorized request")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return nil, false
	}
	return sess, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, op string, dst any) bool {
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(dst); err != nil {
		GetLoggerFromCtx(r.Context()).Error(op + " error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	return true
}
