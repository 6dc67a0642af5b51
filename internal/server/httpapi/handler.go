package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/pickgate/internal/common"
)

const (
	msgSignedUp           = "You are signed up!"
	msgUserExists         = "User already exists!"
	msgSignedIn           = "You are signed in!"
	msgInvalidCredentials = "Invalid Credentials!"
	msgSigninFailed       = "An error occurred during signin."
	msgInvalidToken       = "Invalid Token!"
	msgInvalidBody        = "Invalid request body!"
	msgUserNotFound       = "User not found!"
	msgInternal           = "Internal server error!"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type signinResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type profileResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	u, err := s.users.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		// every failure is reported to the client as a duplicate
		s.logger.Error(r.Context(), "signup failed", "email", req.Email, "error", err)
		writeMessage(w, http.StatusBadRequest, msgUserExists)
		return
	}

	s.logger.Info(r.Context(), "Signed up", "id", u.ID)
	writeMessage(w, http.StatusOK, msgSignedUp)
}

func (s *HTTPServer) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	token, err := s.users.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			writeMessage(w, http.StatusForbidden, msgInvalidCredentials)
			return
		}
		s.logger.Error(r.Context(), "signin failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgSigninFailed)
		return
	}

	writeJSON(w, http.StatusOK, signinResponse{Token: token, Message: msgSignedIn})
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusForbidden, msgInvalidToken)
		return
	}

	u, err := s.users.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		s.logger.Error(r.Context(), "profile lookup failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{ID: u.ID, Email: u.Email, Name: u.Name})
}

func (s *HTTPServer) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
