package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	db "github.com/quantfold/optionwheel/db/sqlc"
	"github.com/quantfold/optionwheel/util"
)

type registerRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// register issues a new API key. Keys are valid for six months and only the
// bcrypt hash of the full key is stored.
func (server *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "msg": "Please enter a valid email"})
		return
	}

	prefix, secret, err := util.GenerateToken()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "msg": fmt.Sprintf("Failed generate api key: %s", err)})
		return
	}
	apiKey := fmt.Sprintf("%s.%s", prefix, secret)
	hashedKey, err := bcrypt.GenerateFromPassword([]byte(apiKey), 14)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	now := time.Now()
	exp := now.AddDate(0, 6, 0)

	user, err := server.store.CreateUser(c, db.CreateUserParams{
		EmailAddress: req.Email,
		Prefix:       prefix,
		Token:        string(hashedKey),
		GeneratedAt:  now.Format(Layout2),
		ExpiredAt:    exp.Format(Layout2),
		Admin:        false,
	})
	if err != nil {
		if err == db.ErrDuplicateEmail {
			c.AbortWithStatusJSON(http.StatusConflict, errorResponse(err))
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(err))
		return
	}

	server.logger.Info().Str("prefix", prefix).Msg("registered api key")

	c.JSON(http.StatusOK, gin.H{
		"status":     http.StatusOK,
		"email":      user.EmailAddress,
		"api_key":    apiKey,
		"expired_at": user.ExpiredAt,
	})
}
