package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin = "admin"
	TokenTTL  = 12 * time.Hour
)

// Handler authenticates the single admin account.
type Handler struct {
	passwordHash []byte
	jwtSecret    []byte
	logger       zerolog.Logger
	now          func() time.Time
}

func NewHandler(passwordHash, jwtSecret string, logger zerolog.Logger) *Handler {
	return &Handler{
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		logger:       logger.With().Str("component", "auth").Logger(),
		now:          time.Now,
	}
}

// HashPassword bcrypt-hashes a plain text password.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("empty password")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// POST /api/admin/login
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(input.Password)); err != nil {
		h.logger.Warn().Str("ip", c.ClientIP()).Msg("admin login rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, expires, err := h.IssueToken(RoleAdmin)
	if err != nil {
		h.logger.Error().Err(err).Msg("sign admin token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	h.logger.Info().Str("ip", c.ClientIP()).Msg("admin logged in")
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresAt": expires})
}

// IssueToken signs an HS256 token for subject with the admin role.
func (h *Handler) IssueToken(subject string) (string, time.Time, error) {
	now := h.now()
	expires := now.Add(TokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": RoleAdmin,
		"iat":  now.Unix(),
		"exp":  expires.Unix(),
	})
	signed, err := token.SignedString(h.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}
