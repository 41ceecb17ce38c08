// Package api exposes the directory over HTTP. Handlers are thin: they
// bind input, delegate to the directory/auth services and translate the
// error taxonomy into status codes.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peopleops-tools/staffdir/internal/auth"
	"github.com/peopleops-tools/staffdir/internal/directory"
	"github.com/peopleops-tools/staffdir/internal/records"
	"github.com/peopleops-tools/staffdir/pkg/common/structs"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	Directory *directory.Service
	Auth      *auth.Service
}

type loginForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Login exchanges credentials for a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	rec, err := h.Auth.VerifyCredentials(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Auth.IssueToken(rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, token)
}

// TableData lists all records, cache-aside.
func (h *Handler) TableData(c *gin.Context) {
	users, err := h.Directory.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// AuditTableData lists the change history, read-through.
func (h *Handler) AuditTableData(c *gin.Context) {
	history, err := h.Directory.ListAudit(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}

// Unique enumerates distinct values for a whitelisted column.
func (h *Handler) Unique(c *gin.Context) {
	values, err := h.Directory.UniqueValues(c.Request.Context(), c.Param("column"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, values)
}

// Filter returns records matching a column/value predicate.
func (h *Handler) Filter(c *gin.Context) {
	users, err := h.Directory.FilterUsers(c.Request.Context(), c.Param("column"), c.Param("value"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Sort returns the cached records sorted by ?column=&desc=.
func (h *Handler) Sort(c *gin.Context) {
	descending, _ := strconv.ParseBool(c.DefaultQuery("desc", "false"))

	users, err := h.Directory.SortUsers(c.Request.Context(), c.Query("column"), descending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// Add creates a new record.
func (h *Handler) Add(c *gin.Context) {
	var rec structs.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Directory.CreateUser(c.Request.Context(), rec, actorIdentity(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"username": created.Username, "role": created.Role})
}

// Update applies a partial update to one record.
func (h *Handler) Update(c *gin.Context) {
	var patch structs.RecordPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Directory.UpdateUser(c.Request.Context(), c.Param("username"), patch, actorIdentity(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete removes one record.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.Directory.DeleteUser(c.Request.Context(), c.Param("username"), actorIdentity(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Row deleted successfully"})
}

// writeError maps the error taxonomy onto status codes. Cache failures
// never reach this point - they are swallowed inside the directory service.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, records.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Row not found"})
	case errors.Is(err, records.ErrDuplicateUsername):
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
	case errors.Is(err, records.ErrUnknownColumn):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported column"})
	case errors.Is(err, directory.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
