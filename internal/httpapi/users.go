package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mjade/warehouse-inventory/internal/domain/users"
)

func (a *API) login(c *gin.Context) {
	var req struct {
		UsernameOrEmail string `json:"usernameOrEmail"`
		Password        string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	u, err := a.users.Authenticate(c.Request.Context(), req.UsernameOrEmail, req.Password)
	switch {
	case errors.Is(err, users.ErrPendingApproval):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account pending approval"})
	case errors.Is(err, users.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case err != nil:
		a.fail(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
			"name":     u.Name,
			"role":     u.Role,
		})
	}
}

func (a *API) signup(c *gin.Context) {
	var in users.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := a.users.Signup(c.Request.Context(), in)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"message": "Account created successfully. Waiting for admin approval.",
	})
}

func (a *API) listPendingUsers(c *gin.Context) {
	out, err := a.users.ListPending(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) listApprovedUsers(c *gin.Context) {
	out, err := a.users.ListApprovedStaff(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) approveUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := a.users.Approve(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User approved successfully"})
}

func (a *API) rejectUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := a.users.Reject(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User rejected and removed"})
}

func (a *API) deleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := a.users.Delete(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "User account deleted successfully",
		"deletedUser": gin.H{"id": u.ID, "username": u.Username},
	})
}
