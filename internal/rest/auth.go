package rest

import (
	"net/http"
	"time"

	"priceWise/pkg/logger"
	"priceWise/pkg/utils"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = time.Hour

type (
	AuthHandler struct {
		validate         *validator.Validate
		clientID         string
		clientSecretHash string
	}

	TokenRequest struct {
		ClientID     string `json:"client_id" validate:"required"`
		ClientSecret string `json:"client_secret" validate:"required"`
	}

	TokenResponse struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
)

func NewAuthHandler(clientID, clientSecretHash string) *AuthHandler {
	return &AuthHandler{
		validate:         validator.New(),
		clientID:         clientID,
		clientSecretHash: clientSecretHash,
	}
}

// POST /api/v1/auth/token
func (h *AuthHandler) Token(c echo.Context) error {
	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if req.ClientID != h.clientID {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid client credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.clientSecretHash), []byte(req.ClientSecret)); err != nil {
		logger.Warn("auth_token_rejected", "client_id", req.ClientID)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid client credentials"})
	}

	token, err := utils.GenerateJWT(req.ClientID, "ADMIN", tokenTTL)
	if err != nil {
		logger.Error("auth_token_generate_failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to issue token"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(tokenTTL),
	}))
}
