package handler

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gotmail/internal/apperr"
	"gotmail/internal/repository"
)

type ProfileHandler struct {
	profiles  *repository.ProfileRepository
	users     *repository.UserRepository
	uploadDir string
	logger    *zap.Logger
}

func NewProfileHandler(profiles *repository.ProfileRepository, users *repository.UserRepository, uploadDir string, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles:  profiles,
		users:     users,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Get handles GET /profile
func (h *ProfileHandler) Get(c *gin.Context) {
	user := currentUser(c)

	profile, err := h.profiles.FindByUserID(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, h.logger, apperr.Internal(err))
		return
	}
	if profile == nil {
		writeError(c, h.logger, apperr.NotFound("Profile not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"profile": profile,
	})
}

// Update handles PUT /profile. Multipart form; absent fields keep their
// current value, a profile_picture file replaces the stored reference.
func (h *ProfileHandler) Update(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()

	firstName := formField(c, "first_name")
	lastName := formField(c, "last_name")
	email := formField(c, "email")
	bio := formField(c, "bio")

	birthdate := formField(c, "birthdate")
	if birthdate != nil {
		if _, err := time.Parse("2006-01-02", *birthdate); err != nil {
			writeError(c, h.logger, apperr.Validation("Invalid birthdate, expected YYYY-MM-DD"))
			return
		}
	}

	var picture *string
	if file, err := c.FormFile("profile_picture"); err == nil {
		ref := uuid.NewString() + filepath.Ext(file.Filename)
		dest := filepath.Join(h.uploadDir, ref)
		if err := c.SaveUploadedFile(file, dest); err != nil {
			writeError(c, h.logger, apperr.Internal(err))
			return
		}
		picture = &ref
	}

	if firstName != nil || lastName != nil || email != nil {
		if err := h.users.UpdateNames(ctx, user.ID, firstName, lastName, email); err != nil {
			writeError(c, h.logger, apperr.Internal(err))
			return
		}
	}

	if err := h.profiles.Update(ctx, user.ID, bio, birthdate, picture); err != nil {
		writeError(c, h.logger, apperr.Internal(err))
		return
	}

	updatedUser, err := h.users.FindByID(ctx, user.ID)
	if err != nil {
		writeError(c, h.logger, apperr.Internal(err))
		return
	}
	profile, err := h.profiles.FindByUserID(ctx, user.ID)
	if err != nil {
		writeError(c, h.logger, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    updatedUser,
		"profile": profile,
	})
}

// Delete handles DELETE /profile
func (h *ProfileHandler) Delete(c *gin.Context) {
	user := currentUser(c)

	if err := h.profiles.Delete(c.Request.Context(), user.ID); err != nil {
		writeError(c, h.logger, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted"})
}

// formField returns the posted value, or nil when the field is absent.
func formField(c *gin.Context, name string) *string {
	if v, ok := c.GetPostForm(name); ok {
		return &v
	}
	return nil
}
