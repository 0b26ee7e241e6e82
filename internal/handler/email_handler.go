package handler

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gotmail/internal/apperr"
	"gotmail/internal/model"
	"gotmail/internal/service/mailbox"
)

type EmailHandler struct {
	mailboxService *mailbox.Service
	uploadDir      string
	logger         *zap.Logger
}

func NewEmailHandler(mailboxService *mailbox.Service, uploadDir string, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{
		mailboxService: mailboxService,
		uploadDir:      uploadDir,
		logger:         logger,
	}
}

// Send handles POST /emails/send. Accepts JSON, or multipart when the
// email carries attachments.
func (h *EmailHandler) Send(c *gin.Context) {
	user := currentUser(c)

	in, err := h.parseSendInput(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	email, err := h.mailboxService.Send(c.Request.Context(), user.ID, *in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, email)
}

func (h *EmailHandler) parseSendInput(c *gin.Context) (*mailbox.SendInput, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		var req struct {
			To       []string `json:"to"`
			Subject  string   `json:"subject"`
			Body     string   `json:"body"`
			LabelIDs []int64  `json:"label_ids"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, apperr.Validation(err.Error())
		}
		return &mailbox.SendInput{
			To:       req.To,
			Subject:  req.Subject,
			Body:     req.Body,
			LabelIDs: req.LabelIDs,
		}, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperr.Validation("Invalid multipart form")
	}

	in := &mailbox.SendInput{
		To:      form.Value["to"],
		Subject: c.PostForm("subject"),
		Body:    c.PostForm("body"),
	}

	for _, raw := range form.Value["label_ids"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, apperr.Validation("Invalid label id")
		}
		in.LabelIDs = append(in.LabelIDs, id)
	}

	for _, file := range form.File["attachments"] {
		ref := uuid.NewString() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, ref)); err != nil {
			return nil, apperr.Internal(err)
		}
		in.Attachments = append(in.Attachments, model.Attachment{
			FileRef:  ref,
			Filename: file.Filename,
			Size:     file.Size,
		})
	}

	return in, nil
}

// ListLabels handles GET /labels
func (h *EmailHandler) ListLabels(c *gin.Context) {
	user := currentUser(c)

	labels, err := h.mailboxService.Labels(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"labels": labels})
}

// Search handles GET /emails/search
func (h *EmailHandler) Search(c *gin.Context) {
	user := currentUser(c)

	filter := mailbox.ParseFilter(c.Request.URL.Query())

	emails, err := h.mailboxService.Search(c.Request.Context(), user.ID, filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"emails": emails})
}

// UpdateFlags handles PUT /emails/:id/flags
func (h *EmailHandler) UpdateFlags(c *gin.Context) {
	user := currentUser(c)

	emailID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, h.logger, apperr.Validation("Invalid email id"))
		return
	}

	var req model.FlagUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, apperr.Validation(err.Error()))
		return
	}

	email, err := h.mailboxService.UpdateFlags(c.Request.Context(), user.ID, emailID, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, email)
}
