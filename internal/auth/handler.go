package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fleetbook/fleetbook/internal/rest"
	"github.com/fleetbook/fleetbook/pkg/user"
	log "github.com/sirupsen/logrus"
)

type LoginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponseDTO struct {
	Token    string `json:"token"`
	UID      string `json:"uid"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type Handler struct {
	userService user.Service
	issuer      *TokenIssuer
}

func NewHandler(userService user.Service, issuer *TokenIssuer) *Handler {
	return &Handler{
		userService: userService,
		issuer:      issuer,
	}
}

// Login godoc
// @Summary Log in
// @Description Exchange username and password for a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequestDTO true "Credentials"
// @Success 200 {object} LoginResponseDTO
// @Failure 401 {object} rest.ErrorResponse "Invalid username or password"
// @Router /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	authenticated, err := h.userService.Authenticate(r.Context(), dto.Username, dto.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Invalid username or password",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	token, err := h.issuer.Issue(authenticated)
	if err != nil {
		log.Errorf("failed to issue token for user %s: %v", authenticated.Username, err)
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(LoginResponseDTO{
		Token:    token,
		UID:      authenticated.UID,
		Username: authenticated.Username,
		IsAdmin:  authenticated.IsAdmin,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
