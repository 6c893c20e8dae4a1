package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/innocentteam/restaurant/internal/models"
	"github.com/innocentteam/restaurant/internal/service"
)

// RegistrationService is the part of the sign-up workflow used by admin endpoints
type RegistrationService interface {
	// SignUp begins admin sign-up and sends a one-time code
	SignUp(ctx context.Context, handle, email, password string) error
	// Verify confirms a pending sign-up and activates the account
	Verify(ctx context.Context, handle, otp string) (*service.VerifyResult, error)
	// SignIn authenticates an admin by handle and password
	SignIn(ctx context.Context, handle, password string) (*models.Admin, time.Time, error)
}

// AdminHandler represents HTTP handler for admin account requests
type AdminHandler struct {
	svc   RegistrationService
	token service.TokenService
}

// NewAdminHandler creates new AdminHandler instance
func NewAdminHandler(svc RegistrationService, token service.TokenService) *AdminHandler {
	return &AdminHandler{
		svc:   svc,
		token: token,
	}
}

type signUpRequest struct {
	AdminName     string `json:"admin_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

// SignUp begins admin sign-up
// 201 — a one-time code has been sent;
// 400 — bad request body;
// 409 — account already exists;
// 500 — the code could not be delivered.
func (ah *AdminHandler) SignUp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "bad request", nil)
			return
		}
		defer r.Body.Close()

		if req.AdminName == "" || req.AdminEmail == "" || req.AdminPassword == "" {
			writeJSON(w, http.StatusBadRequest, "All fields required!", nil)
			return
		}

		if err := ah.svc.SignUp(r.Context(), req.AdminName, req.AdminEmail, req.AdminPassword); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated,
			"Please enter the OTP to complete the signup process",
			fmt.Sprintf("OTP is sent to %s", req.AdminEmail))
	}
}

type verificationRequest struct {
	AdminName string `json:"admin_name"`
	OTP       string `json:"otp"`
}

type verificationResponse struct {
	AdminName    string `json:"admin_name"`
	AdminEmail   string `json:"admin_email"`
	Verification string `json:"verification"`
	Warning      string `json:"warning,omitempty"`
}

// Verification confirms a pending sign-up with a one-time code
// 200 — account created;
// 400 — bad request body;
// 404 — no live pending sign-up for this handle;
// 409 — wrong code;
// 500 — internal error.
func (ah *AdminHandler) Verification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verificationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "bad request", nil)
			return
		}
		defer r.Body.Close()

		if req.AdminName == "" || req.OTP == "" {
			writeJSON(w, http.StatusBadRequest, "All fields required!", nil)
			return
		}

		result, err := ah.svc.Verify(r.Context(), req.AdminName, req.OTP)
		if err != nil {
			writeError(w, err)
			return
		}

		resp := verificationResponse{
			AdminName:    result.Admin.Handle,
			AdminEmail:   result.Admin.Email,
			Verification: fmt.Sprintf("Verified on %s", result.VerifiedAt.Format(time.RFC3339)),
		}
		if result.NotifyFailed {
			resp.Warning = "welcome message could not be sent"
		}

		writeJSON(w, http.StatusOK, "Account sign up successfull!", resp)
	}
}

type signInRequest struct {
	AdminName     string `json:"admin_name"`
	AdminPassword string `json:"admin_password"`
}

type signInResponse struct {
	Message  string `json:"message"`
	SignInAt string `json:"sign_in_at"`
}

// SignIn authenticates an admin and sets the auth cookie
// 200 — signed in;
// 400 — bad request body;
// 404 — account does not exist;
// 409 — incorrect password;
// 500 — internal error.
func (ah *AdminHandler) SignIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "bad request", nil)
			return
		}
		defer r.Body.Close()

		if req.AdminName == "" || req.AdminPassword == "" {
			writeJSON(w, http.StatusBadRequest, "All fields required!", nil)
			return
		}

		admin, signInAt, err := ah.svc.SignIn(r.Context(), req.AdminName, req.AdminPassword)
		if err != nil {
			writeError(w, err)
			return
		}

		tokenString, err := ah.token.CreateToken(admin)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, "internal error", nil)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "auth_token",
			Value:    tokenString,
			Path:     "/",
			HttpOnly: true,
		})

		writeJSON(w, http.StatusOK, "Sign in successfully!", signInResponse{
			Message:  fmt.Sprintf("Signed in successfull, %s.", admin.Handle),
			SignInAt: signInAt.Format(time.RFC3339),
		})
	}
}
