// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ebelkina/gatehouse/internal/platform/constants"
	"github.com/ebelkina/gatehouse/internal/platform/middleware"
	requestutil "github.com/ebelkina/gatehouse/internal/platform/request"
	"github.com/ebelkina/gatehouse/internal/platform/respond"
	"github.com/ebelkina/gatehouse/internal/platform/validate"
	"github.com/ebelkina/gatehouse/pkg/uuid"
)

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This layer is strictly responsible for transport concerns: form/JSON
// parsing, cookie management, status codes. The session state machine
// itself lives in [Service].
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login           : Form-encoded credential check, establishes the session.
//   - POST /logout          : Clears auth keys from the session. Always succeeds.
//   - POST /register        : Creates a new credential record.
//   - POST /change-password : Rotates salt+digest (session required).
//   - GET  /me              : Returns the session identity (session required).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Post("/register", handler.register)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)
		r.Post("/change-password", handler.changePassword)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request / Response Payloads

// statusResponse is the flat wire shape the login and logout endpoints have
// always produced; it intentionally bypasses the data envelope.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type registerRequest struct {
	Login     string `json:"login"`
	Password  string `json:"password"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
login authenticates a user and establishes a session.

POST /api/v1/auth/login

Request:
  - Body: form-encoded `login`, `password`

Response:
  - 200: {status:"ok", message} + session cookie
  - 400: VALIDATION_ERROR when login is blank or the password field is absent
    (an empty password is present and goes through verification)
  - 401: INVALID_CREDENTIALS — identical for unknown login and wrong password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	login, _ := requestutil.FormField(request, FieldLogin)
	password, passwordPresent := requestutil.FormField(request, FieldPassword)

	validator := &validate.Validator{}
	validator.Required(FieldLogin, login).
		Present(FieldPassword, passwordPresent)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Reuse the browser's existing token so its session slot is replaced
	// in place; mint a fresh one for first-time visitors.
	token := requestutil.SessionToken(request, constants.SessionCookieName)
	if token == "" {
		token = uuid.New()
	}

	_, err := handler.authService.Login(request.Context(), token, LoginInput{
		Login:    login,
		Password: password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(constants.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respond.JSON(writer, http.StatusOK, statusResponse{
		Status:  "ok",
		Message: "Authorization successful",
	})
}

/*
logout clears the authentication keys from the session.

POST /api/v1/auth/logout

Always returns 200, whether or not a session existed — logout is idempotent.
The cookie and any cart state survive; only the identity is dropped.
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	token := requestutil.SessionToken(request, constants.SessionCookieName)

	if token != "" {
		if err := handler.authService.Logout(request.Context(), token); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	respond.JSON(writer, http.StatusOK, statusResponse{
		Status:  "ok",
		Message: "You have been logged out",
	})
}

/*
register creates a new credential record.

POST /api/v1/auth/register

Request:
  - Body: registerRequest (login, password, last_name, first_name)

Response:
  - 201: Created credential (salt/digest omitted)
  - 400: VALIDATION_ERROR on missing fields
  - 409: CONFLICT when the login is taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login).
		MinLen(FieldLogin, input.Login, 3).
		Required(FieldPassword, input.Password).
		Required(FieldLastName, input.LastName).
		Required(FieldFirstName, input.FirstName)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	credential, err := handler.authService.Register(request.Context(), RegisterInput{
		Login:     input.Login,
		Password:  input.Password,
		LastName:  input.LastName,
		FirstName: input.FirstName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, credential)
}

/*
changePassword rotates the caller's credential.

POST /api/v1/auth/change-password

Response:
  - 200: confirmation message
  - 401: wrong current password (or no session)
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.authService.ChangePassword(request.Context(), identity.UserID, input.CurrentPassword, input.NewPassword)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		constants.FieldMessage: "Password updated",
	})
}

/*
me returns the identity resolved from the session cookie.

GET /api/v1/auth/me
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identity)
}
