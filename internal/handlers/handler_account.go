package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/digibank/backend/internal/core/ports/services"
	"github.com/digibank/backend/internal/dto"
	"github.com/digibank/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts, including the
// per-account credit, debit and history endpoints.
type accountHandler struct {
	accountService     portssvc.AccountSvcFacade
	transactionService portssvc.TransactionSvcFacade
	historyService     portssvc.HistorySvcFacade
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, transactionService portssvc.TransactionSvcFacade, historyService portssvc.HistorySvcFacade) {
	h := &accountHandler{
		accountService:     accountService,
		transactionService: transactionService,
		historyService:     historyService,
	}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PATCH("/:id/status", h.updateAccountStatus)
		accounts.POST("/:id/credit", h.credit)
		accounts.POST("/:id/debit", h.debit)
		accounts.GET("/:id/history", h.getHistory)
	}
}

// createAccount godoc
// @Summary Open a new account
// @Description Opens an account for an existing customer; the account ID may be supplied or generated
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 409 {object} map[string]string "Account ID already taken"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	callerID, ok := middleware.GetCallerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, callerID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToAccountResponses(accounts)})
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccountStatus godoc
// @Summary Change an account's lifecycle status
// @Description Moves the account to ACTIVE or SUSPENDED; only valid transitions are accepted
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param status body dto.UpdateAccountStatusRequest true "Target status"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid transition"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/status [patch]
func (h *accountHandler) updateAccountStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateAccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccountStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	callerID, ok := middleware.GetCallerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.UpdateAccountStatus(c.Request.Context(), c.Param("id"), req, callerID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update account status")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// credit godoc
// @Summary Credit an account
// @Description Deposits the amount onto the account and appends one CREDIT operation
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param credit body dto.CreditRequest true "Amount and description"
// @Success 201 {object} dto.OperationResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/credit [post]
func (h *accountHandler) credit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Credit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	callerID, ok := middleware.GetCallerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	op, err := h.transactionService.Credit(c.Request.Context(), c.Param("id"), req, callerID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to credit account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOperationResponse(op))
}

// debit godoc
// @Summary Debit an account
// @Description Withdraws the amount from the account and appends one DEBIT operation
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param debit body dto.DebitRequest true "Amount and description"
// @Success 201 {object} dto.OperationResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /accounts/{id}/debit [post]
func (h *accountHandler) debit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DebitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Debit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	callerID, ok := middleware.GetCallerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	op, err := h.transactionService.Debit(c.Request.Context(), c.Param("id"), req, callerID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to debit account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOperationResponse(op))
}

// getHistory godoc
// @Summary Get an account's operation history
// @Description Returns one page of operations, newest first, with the current balance and total page count
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param page query int false "Zero-indexed page" default(0)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.AccountHistoryResponse
// @Failure 400 {object} map[string]string "Invalid paging parameters"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/history [get]
func (h *accountHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.HistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	history, err := h.historyService.GetAccountHistory(c.Request.Context(), c.Param("id"), params.Page, params.PageSize)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve account history")
		return
	}

	c.JSON(http.StatusOK, history)
}
