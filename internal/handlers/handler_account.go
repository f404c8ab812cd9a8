package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/SscSPs/bills_app/internal/core/ports/services"
	"github.com/SscSPs/bills_app/internal/dto"
	"github.com/SscSPs/bills_app/internal/middleware"
	"github.com/SscSPs/bills_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService  portssvc.AccountSvcFacade
	overviewService portssvc.OverviewSvc
	exportService   portssvc.ExportSvc
	posthogClient   *utils.PosthogClientWrapper
}

func newAccountHandler(as portssvc.AccountSvcFacade, ovs portssvc.OverviewSvc, es portssvc.ExportSvc, ph *utils.PosthogClientWrapper) *accountHandler {
	return &accountHandler{
		accountService:  as,
		overviewService: ovs,
		exportService:   es,
		posthogClient:   ph,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountSvcFacade, ovs portssvc.OverviewSvc, es portssvc.ExportSvc, ph *utils.PosthogClientWrapper) {
	h := newAccountHandler(as, ovs, es, ph)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", h.createAccount)
		accounts.GET("/overview", h.getOverview)
		accounts.GET("/export", h.exportAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

// accountIDParam parses the :id path parameter. It writes a 400 and returns false when malformed.
func accountIDParam(c *gin.Context, logger *slog.Logger) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		logger.Warn("Invalid account id", slog.String("account_id", raw))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid account id"})
		return 0, false
	}
	return id, true
}

// createAccount godoc
// @Summary Create a new account
// @Description Validates and stores a new income or expense
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ValidationErrorResponse "Field validation failed"
// @Failure 500 {object} dto.ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
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

	logger.Info("Received request to create account", slog.String("description", req.Description), slog.String("type", string(req.Type)))

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "create account", nil)
		return
	}

	logger.Info("Account created successfully", slog.Int64("account_id", account.ID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path int true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid account id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := accountIDParam(c, logger)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "retrieve account", nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Returns accounts ordered by date then id, one page at a time
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token returned by the previous page"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ValidationErrorResponse "Invalid page token"
// @Failure 500 {object} dto.ErrorResponse "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	accounts, nextToken, err := h.accountService.ListAccounts(c.Request.Context(), params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err, "list accounts", nil)
		return
	}

	logger.Debug("Accounts listed", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{
		Accounts:  dto.ToListAccountResponse(accounts),
		NextToken: nextToken,
	})
}

// updateAccount godoc
// @Summary Update an account
// @Description Applies the provided fields and revalidates the whole record
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path int true "Account ID to update"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 422 {object} dto.ValidationErrorResponse "Field validation failed"
// @Failure 500 {object} dto.ErrorResponse "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := accountIDParam(c, logger)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
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

	logger = logger.With(slog.Int64("account_id", accountID))
	logger.Info("Received request to update account")

	account, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req, userID)
	if err != nil {
		respondError(c, logger, err, "update account", nil)
		return
	}

	logger.Info("Account updated successfully")
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Tags accounts
// @Produce  json
// @Param   id path int true "Account ID to delete"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid account id"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete account"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := accountIDParam(c, logger)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.Int64("account_id", accountID))
	logger.Info("Received request to delete account")

	if err := h.accountService.DeleteAccount(c.Request.Context(), accountID, userID); err != nil {
		respondError(c, logger, err, "delete account", nil)
		return
	}

	logger.Info("Account deleted successfully")
	c.Status(http.StatusNoContent)
}

// getOverview godoc
// @Summary Account list with totals
// @Description Returns every account together with balance, projection and expected balance
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.OverviewResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to load accounts"
// @Security BearerAuth
// @Router /accounts/overview [get]
func (h *accountHandler) getOverview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	overview, err := h.overviewService.GetOverview(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "load accounts", nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToOverviewResponse(overview))
}

// exportAccounts godoc
// @Summary Export accounts
// @Description Downloads every account and the totals as CSV or XLSX
// @Tags accounts
// @Produce  text/csv
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   format query string false "File format" Enums(csv, xlsx) default(csv)
// @Success 200 {file} file
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ValidationErrorResponse "Unsupported format"
// @Failure 500 {object} dto.ErrorResponse "Failed to export accounts"
// @Security BearerAuth
// @Router /accounts/export [get]
func (h *accountHandler) exportAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	format := portssvc.ExportFormat(c.DefaultQuery("format", string(portssvc.ExportCSV)))

	// Buffered so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.exportService.ExportAccounts(c.Request.Context(), format, &buf); err != nil {
		respondError(c, logger, err, "export accounts", nil)
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "accounts_exported", map[string]any{"format": string(format), "bytes": buf.Len()})

	filename := fmt.Sprintf("accounts-%s.%s", time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, h.exportService.ContentType(format), buf.Bytes())
}
