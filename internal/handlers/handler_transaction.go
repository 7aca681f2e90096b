package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/digibank/backend/internal/core/ports/services"
	"github.com/digibank/backend/internal/dto"
	"github.com/digibank/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transferHandler handles HTTP requests for transfers between accounts.
type transferHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// registerTransferRoutes registers the transfer routes.
func registerTransferRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := &transferHandler{transactionService: transactionService}

	rg.POST("/transfers", h.transfer)
}

// transfer godoc
// @Summary Transfer between two accounts
// @Description Debits the source and credits the destination atomically, recording two correlated operations
// @Tags transactions
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	callerID, ok := middleware.GetCallerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	legs, err := h.transactionService.Transfer(c.Request.Context(), req, callerID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to execute transfer")
		return
	}

	resp := dto.TransferResponse{
		TransferID: legs[0].TransferID,
		Debit:      dto.ToOperationResponse(&legs[0]),
		Credit:     dto.ToOperationResponse(&legs[1]),
	}
	c.JSON(http.StatusCreated, resp)
}
