package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"

	"devfinance/internal/domain/user"
	"devfinance/internal/shared/auth"
	"devfinance/internal/shared/middleware"
)

// msgInvalidCredentials is shared between the "no such user" and "wrong
// password" paths so the two are byte-identical and neither leaks which
// emails exist.
const msgInvalidCredentials = "Incorrect email or password"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthHandler struct {
	userRepo user.Repository
	jwt      *auth.JWT
}

func NewAuthHandler(userRepo user.Repository, jwt *auth.JWT) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, jwt: jwt}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthData struct {
	User  user.PublicUser `json:"user"`
	Token string          `json:"token"`
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Please fill in all required fields")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		respondError(w, http.StatusBadRequest, "Invalid email")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	ctx := r.Context()

	inUse, err := h.userRepo.EmailInUse(ctx, req.Email, 0)
	if err != nil {
		respondInternalError(w, "Failed to register user", err)
		return
	}
	if inUse {
		respondError(w, http.StatusBadRequest, "Email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondInternalError(w, "Failed to register user", err)
		return
	}

	created, err := h.userRepo.Create(ctx, user.CreateUserParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		respondInternalError(w, "Failed to register user", err)
		return
	}

	token, err := h.jwt.Generate(created.ID, created.Email)
	if err != nil {
		respondInternalError(w, "Failed to register user", err)
		return
	}

	respondMessage(w, http.StatusCreated, "User registered successfully", AuthData{
		User:  created.Public(),
		Token: token,
	})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	ctx := r.Context()

	u, err := h.userRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, user.ErrNotFound) {
		respondError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}
	if err != nil {
		respondInternalError(w, "Failed to log in", err)
		return
	}

	if !u.Active {
		respondError(w, http.StatusUnauthorized, "Account disabled")
		return
	}

	if err := auth.VerifyPassword(u.PasswordHash, req.Password); err != nil {
		respondError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	// Best-effort: a failed timestamp update must not fail the login.
	if err := h.userRepo.TouchLastLogin(ctx, u.ID); err != nil {
		log.Printf("Error updating last login for user %d: %v", u.ID, err)
	}

	token, err := h.jwt.Generate(u.ID, u.Email)
	if err != nil {
		respondInternalError(w, "Failed to log in", err)
		return
	}

	respondMessage(w, http.StatusOK, "Login successful", AuthData{
		User:  u.Public(),
		Token: token,
	})
}

// HandleProfile serves GET and PUT on the authenticated user's own profile.
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGetProfile(w, r, userID)
	case http.MethodPut:
		h.handleUpdateProfile(w, r, userID)
	default:
		methodNotAllowed(w)
	}
}

func (h *AuthHandler) handleGetProfile(w http.ResponseWriter, r *http.Request, userID int64) {
	u, err := h.userRepo.GetByID(r.Context(), userID)
	if errors.Is(err, user.ErrNotFound) {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondInternalError(w, "Failed to fetch profile", err)
		return
	}

	respondData(w, http.StatusOK, u)
}

type UpdateProfileRequest struct {
	Name   *string             `json:"name"`
	Email  *string             `json:"email"`
	Avatar user.OptionalString `json:"avatar"`
}

func (h *AuthHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request, userID int64) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	params := user.UpdateUserParams{Avatar: req.Avatar}

	// Blank strings count as "not provided", like the original form fields.
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		params.Name = req.Name
	}
	if req.Email != nil && *req.Email != "" {
		// Uniqueness re-check excludes the caller's own row, so re-submitting
		// an unchanged email is not a conflict.
		inUse, err := h.userRepo.EmailInUse(ctx, *req.Email, userID)
		if err != nil {
			respondInternalError(w, "Failed to update profile", err)
			return
		}
		if inUse {
			respondError(w, http.StatusBadRequest, "Email already in use")
			return
		}
		params.Email = req.Email
	}

	if params.IsEmpty() {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := h.userRepo.Update(ctx, userID, params)
	if errors.Is(err, user.ErrNoFieldsToUpdate) {
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}
	if errors.Is(err, user.ErrNotFound) {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondInternalError(w, "Failed to update profile", err)
		return
	}

	respondMessage(w, http.StatusOK, "Profile updated successfully", updated)
}
