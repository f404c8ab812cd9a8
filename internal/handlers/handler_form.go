package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bills_app/internal/core/forms"
	portssvc "github.com/SscSPs/bills_app/internal/core/ports/services"
	"github.com/SscSPs/bills_app/internal/dto"
	"github.com/SscSPs/bills_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// formHandler exposes interactive form sessions.
type formHandler struct {
	formService portssvc.FormSessionSvcFacade
}

// registerFormRoutes registers routes related to form sessions.
func registerFormRoutes(rg *gin.RouterGroup, fs portssvc.FormSessionSvcFacade) {
	h := &formHandler{formService: fs}

	f := rg.Group("/forms")
	{
		f.POST("", h.openForm)
		f.GET("/:sessionID", h.getForm)
		f.DELETE("/:sessionID", h.closeForm)
		f.PATCH("/:sessionID/fields", h.editField)
		f.POST("/:sessionID/load", h.reloadForm)
		f.POST("/:sessionID/save", h.saveForm)
		f.POST("/:sessionID/delete-dialog", h.showDeleteDialog)
		f.DELETE("/:sessionID/delete-dialog", h.hideDeleteDialog)
		f.POST("/:sessionID/delete", h.deleteAccount)
		f.POST("/:sessionID/message-shown", h.messageShown)
	}
}

// respond writes the snapshot, or the error with the snapshot attached.
func (h *formHandler) respond(c *gin.Context, logger *slog.Logger, sess portssvc.FormSession, err error, action string, okStatus int) {
	if sess.ID != "" {
		middleware.SetEventProperty(c, "form_phase", string(sess.View.Phase))
		middleware.SetEventProperty(c, "form_new", sess.View.IsNew)
		if sess.View.Outcome != "" {
			middleware.SetEventProperty(c, "form_outcome", string(sess.View.Outcome))
		}
	}
	if err != nil {
		var form *dto.FormResponse
		if sess.ID != "" {
			res := dto.ToFormResponse(sess.ID, sess.View)
			form = &res
		}
		respondError(c, logger, err, action, form)
		return
	}
	c.JSON(okStatus, dto.ToFormResponse(sess.ID, sess.View))
}

// sessionAction runs op on the :sessionID session and writes the result.
func (h *formHandler) sessionAction(c *gin.Context, action string, op func(c *gin.Context, sessionID string) (portssvc.FormSession, error)) {
	sessionID := c.Param("sessionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("session_id", sessionID))
	sess, err := op(c, sessionID)
	h.respond(c, logger, sess, err, action, http.StatusOK)
}

// openForm godoc
// @Summary Open a form session
// @Description Starts editing a new account (accountID 0) or loads an existing one
// @Tags forms
// @Accept json
// @Produce json
// @Param form body dto.CreateFormRequest true "Account to edit"
// @Success 201 {object} dto.FormResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ValidationErrorResponse "Account not found, the session can be reloaded"
// @Failure 500 {object} dto.ValidationErrorResponse "Failed to load account"
// @Security BearerAuth
// @Router /forms [post]
func (h *formHandler) openForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	sess, err := h.formService.OpenForm(c.Request.Context(), req.AccountID, userID)
	h.respond(c, logger, sess, err, "open form", http.StatusCreated)
}

// getForm godoc
// @Summary Get a form session
// @Tags forms
// @Produce json
// @Param sessionID path string true "Form session ID"
// @Success 200 {object} dto.FormResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown or expired session"
// @Security BearerAuth
// @Router /forms/{sessionID} [get]
func (h *formHandler) getForm(c *gin.Context) {
	h.sessionAction(c, "get form", func(c *gin.Context, id string) (portssvc.FormSession, error) {
		return h.formService.GetForm(c.Request.Context(), id)
	})
}

// closeForm godoc
// @Summary Close a form session
// @Description Discards the session and any unsaved edits
// @Tags forms
// @Param sessionID path string true "Form session ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Unknown or expired session"
// @Security BearerAuth
// @Router /forms/{sessionID} [delete]
func (h *formHandler) closeForm(c *gin.Context) {
	sessionID := c.Param("sessionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("session_id", sessionID))
	if err := h.formService.CloseForm(c.Request.Context(), sessionID); err != nil {
		respondError(c, logger, err, "close form", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// editField godoc
// @Summary Edit a form field
// @Description Sets one field from text. The description is revalidated immediately; date and amount on save.
// @Tags forms
// @Accept json
// @Produce json
// @Param sessionID path string true "Form session ID"
// @Param field body dto.EditFieldRequest true "Field and value"
// @Success 200 {object} dto.FormResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 404 {object} dto.ErrorResponse "Unknown or expired session"
// @Failure 409 {object} dto.ValidationErrorResponse "Form is not editable"
// @Failure 422 {object} dto.ValidationErrorResponse "Invalid paid or type value"
// @Security BearerAuth
// @Router /forms/{sessionID}/fields [patch]
func (h *formHandler) editField(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.EditFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	h.sessionAction(c, "edit form", func(c *gin.Context, id string) (portssvc.FormSession, error) {
		return h.formService.EditField(c.Request.Context(), id, forms.FieldName(req.Field), req.Value)
	})
}

// reloadForm godoc
// @Summary Reload a form session
// @Description Retries loading the account after a failure
// @Tags forms
// @Produce json
// @Param sessionID path string true "Form session ID"
// @Success 200 {object} dto.FormResponse
// @Failure 404 {object} dto.ValidationErrorResponse "Unknown session or account"
// @Failure 409 {object} dto.ValidationErrorResponse "Form is busy or finished"
// @Security BearerAuth
// @Router /forms/{sessionID}/load [post]
func (h *formHandler) reloadForm(c *gin.Context) {
	h.sessionAction(c, "load account", func(c *gin.Context, id string) (portssvc.FormSession, error) {
		return h.formService.ReloadForm(c.Request.Context(), id)
	})
}

// saveForm godoc
// @Summary Save a form session
// @Description Validates every field and persists the account
// @Tags forms
// @Produce json
// @Param sessionID path string true "Form session ID"
// @Success 200 {object} dto.FormResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown or expired session"
// @Failure 409 {object} dto.ValidationErrorResponse "Form is not editable"
// @Failure 422 {object} dto.ValidationErrorResponse "Field validation failed"
// @Failure 500 {object} dto.ValidationErrorResponse "Failed to save account"
// @Security BearerAuth
// @Router /forms/{sessionID}/save [post]
func (h *formHandler) saveForm(c *gin.Context) {
	h.sessionAction(c, "save account", func(c *gin.Context, id string) (portssvc.FormSession, error) {
		return h.formService.SaveForm(c.Request.Context(), id)
	})
}

// showDeleteDialog godoc
// @Summary Ask for delete confirmation
// @Tags forms
// @Produce json
// @Param sessionID path string true "Form session ID"
// @Success 200 {object} dto.FormResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown or expired session"
// @Failure 409 {object} dto.ValidationErrorResponse "Account is not persisted"
// @Security BearerAuth
// @Router /forms/{sessionID}/delete-dialog [post]
func (h *formHandler) showDeleteDialog(c *gin.Context) {
	h.sessionAction(c, "show delete dialog", func(c *gin.Context, id string) (portssvc.FormSession, error) {
		return h.formService.ShowDeleteDialog(c.Request.Context(), id)
	})
}

// hideDeleteDialog godoc
// @Summary Dismiss the delete confirmation
// @Tags forms
// @Produce json
// @Param sessionID path string true "Form session ID"
// @Success 200 {object} dto.FormResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown or expired session"
// @Security BearerAuth
// @Router /forms/{sessionID}/delete-dialog [delete]
func (h *formHandler) hideDeleteDialog(c *gin.Context) {
	h.sessionAction(c, "hide delete dialog", func(c *gin.Context, id string) (portssvc.FormSession, error) {
		return h.formService.HideDeleteDialog(c.Request.Context(), id)
	})
}

// deleteAccount godoc
// @Summary Delete the edited account
// @Description Only allowed after the delete dialog was shown
// @Tags forms
// @Produce json
// @Param sessionID path string true "Form session ID"
// @Success 200 {object} dto.FormResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown or expired session"
// @Failure 409 {object} dto.ValidationErrorResponse "Delete not confirmed"
// @Failure 500 {object} dto.ValidationErrorResponse "Failed to delete account"
// @Security BearerAuth
// @Router /forms/{sessionID}/delete [post]
func (h *formHandler) deleteAccount(c *gin.Context) {
	h.sessionAction(c, "delete account", func(c *gin.Context, id string) (portssvc.FormSession, error) {
		return h.formService.DeleteAccount(c.Request.Context(), id)
	})
}

// messageShown godoc
// @Summary Acknowledge the form message
// @Tags forms
// @Produce json
// @Param sessionID path string true "Form session ID"
// @Success 200 {object} dto.FormResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown or expired session"
// @Security BearerAuth
// @Router /forms/{sessionID}/message-shown [post]
func (h *formHandler) messageShown(c *gin.Context) {
	h.sessionAction(c, "acknowledge message", func(c *gin.Context, id string) (portssvc.FormSession, error) {
		return h.formService.MessageShown(c.Request.Context(), id)
	})
}
