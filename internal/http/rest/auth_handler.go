package rest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tgarmenliev/sofaccess-api/internal/model"
	"github.com/tgarmenliev/sofaccess-api/util"
	"github.com/tgarmenliev/sofaccess-api/util/tracing"
	"github.com/tgarmenliev/sofaccess-api/util/values"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

func (api *API) AuthRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodPost, "/login", Handler(api.Login))
	mux.Method(http.MethodPost, "/google/login", Handler(api.LoginWithGoogle))
	mux.Method(http.MethodGet, "/session", Handler(api.Session))
	return mux
}

// Login checks the console credentials against the configured
// administrator account and returns a bearer token.
func (api *API) Login(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.LoginRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "email and password are required", values.BadRequestBody, &tc)
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email != strings.ToLower(api.Config.AdminEmail) {
		return respondWithError(nil, "invalid credentials", values.NotAuthorised, &tc)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(api.Config.AdminPasswordHash), []byte(req.Password)); err != nil {
		return respondWithError(err, "invalid credentials", values.NotAuthorised, &tc)
	}

	tokenString, expiresAt, err := api.createToken(req.Email)
	if err != nil {
		return respondWithError(err, "failed to create token", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Logged in successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: model.LoginResponse{
			Token:     tokenString,
			ExpiresAt: expiresAt.Unix(),
			Email:     req.Email,
		},
	}
}

// LoginWithGoogle accepts a Google OAuth access token, resolves the
// account behind it, and signs the administrator in when the address
// matches the configured one.
func (api *API) LoginWithGoogle(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.GoogleLoginRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}
	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "access token is required", values.BadRequestBody, &tc)
	}

	token := &oauth2.Token{AccessToken: req.AccessToken}
	client := oauth2.NewClient(r.Context(), oauth2.StaticTokenSource(token))
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return respondWithError(err, "failed to get user info", values.Error, &tc)
	}
	defer resp.Body.Close()

	var userInfo struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return respondWithError(err, "failed to decode user info", values.Error, &tc)
	}

	if !userInfo.VerifiedEmail || !strings.EqualFold(userInfo.Email, api.Config.AdminEmail) {
		return respondWithError(nil, "account is not an administrator", values.NotAllowed, &tc)
	}

	tokenString, expiresAt, err := api.createToken(strings.ToLower(userInfo.Email))
	if err != nil {
		return respondWithError(err, "failed to create token", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Logged in successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: model.LoginResponse{
			Token:     tokenString,
			ExpiresAt: expiresAt.Unix(),
			Email:     strings.ToLower(userInfo.Email),
		},
	}
}

// Session lets the console check whether its stored token is still
// good.
func (api *API) Session(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	claims, err := api.adminClaimsFromRequest(r)
	if err != nil {
		return respondWithError(err, "not signed in", values.NotAuthorised, &tc)
	}

	return &ServerResponse{
		Message:    "Session is valid",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: map[string]interface{}{
			"email":      claims.Email,
			"expires_at": claims.Exp,
		},
	}
}
