package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/tranquoccuong0179/userstore/federation"
)

type UserResponse struct {
	ID            string              `json:"id"`
	Username      string              `json:"username"`
	Email         string              `json:"email"`
	FirstName     string              `json:"firstName"`
	LastName      string              `json:"lastName"`
	Enabled       bool                `json:"enabled"`
	EmailVerified bool                `json:"emailVerified"`
	Attributes    map[string][]string `json:"attributes"`
}

func toUserResponse(user federation.User) UserResponse {
	return UserResponse{
		ID:            user.ID(),
		Username:      user.Username(),
		Email:         user.Email(),
		FirstName:     user.FirstName(),
		LastName:      user.LastName(),
		Enabled:       user.Enabled(),
		EmailVerified: user.EmailVerified(),
		Attributes:    user.Attributes(),
	}
}

// GetUser resolves one composite storage id.
func (impl *ServerImpl) GetUser(c *gin.Context) {
	user, err := impl.provider.UserByID(c.Request.Context(), impl.realm(), c.Param("id"))
	if err != nil {
		if errors.Is(err, federation.ErrMalformedStorageID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed user id"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user store unavailable"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// SearchUsers lists users matching an optional search term, with optional
// first/max paging bounds. Absent bounds mean unbounded, not zero.
func (impl *ServerImpl) SearchUsers(c *gin.Context) {
	first, ok := optionalIntQuery(c, "first")
	if !ok {
		return
	}
	max, ok := optionalIntQuery(c, "max")
	if !ok {
		return
	}

	users, err := impl.provider.SearchForUsers(c.Request.Context(), impl.realm(), c.Query("search"), first, max)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user store unavailable"})
		return
	}
	c.JSON(http.StatusOK, lo.Map(users, func(user federation.User, _ int) UserResponse {
		return toUserResponse(user)
	}))
}

func (impl *ServerImpl) CountUsers(c *gin.Context) {
	count, err := impl.provider.UsersCount(c.Request.Context(), impl.realm())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

type VerifyCredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

// VerifyCredentials answers whether a username/password pair is valid. The
// response does not distinguish an unknown user from a wrong password.
func (impl *ServerImpl) VerifyCredentials(c *gin.Context) {
	var request VerifyCredentialsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	// resolve the principal first the way the host would; a lookup failure on
	// this path folds into "not valid" rather than surfacing
	principal, err := impl.provider.UserByUsername(c.Request.Context(), impl.realm(), request.Username)
	if err != nil || principal == nil {
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}

	valid := impl.provider.IsValid(c.Request.Context(), impl.realm(), principal, federation.CredentialInput{
		Type:              federation.CredentialTypePassword,
		ChallengeResponse: request.Password,
	})
	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

func optionalIntQuery(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a non-negative integer"})
		return nil, false
	}
	return &value, true
}
