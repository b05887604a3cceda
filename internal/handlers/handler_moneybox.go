package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/services"
	"github.com/SscSPs/pharmacy_moneybox/internal/dto"
	"github.com/SscSPs/pharmacy_moneybox/internal/middleware"
	"github.com/gin-gonic/gin"
)

// moneyBoxHandler handles HTTP requests for the pharmacy cash ledger.
// Every operation acts on the pharmacy carried by the caller's token.
type moneyBoxHandler struct {
	moneyBoxService    portssvc.MoneyBoxSvcFacade
	integrationService portssvc.IntegrationSvc
}

func newMoneyBoxHandler(mbs portssvc.MoneyBoxSvcFacade, is portssvc.IntegrationSvc) *moneyBoxHandler {
	return &moneyBoxHandler{
		moneyBoxService:    mbs,
		integrationService: is,
	}
}

// registerMoneyBoxRoutes registers the money box routes. Reads are open to every role,
// postings need CASHIER and reconcile/close need MANAGER.
func registerMoneyBoxRoutes(rg *gin.RouterGroup, moneyBoxService portssvc.MoneyBoxSvcFacade, integrationService portssvc.IntegrationSvc) {
	h := newMoneyBoxHandler(moneyBoxService, integrationService)

	moneyBox := rg.Group("/moneybox")
	{
		moneyBox.GET("", h.getCurrentMoneyBox)
		moneyBox.GET("/summary", h.getPeriodSummary)
		moneyBox.GET("/transactions", h.listTransactions)
		moneyBox.GET("/verify", h.verifyMoneyBox)

		cashier := moneyBox.Group("", middleware.RequireRole(middleware.RoleCashier))
		cashier.POST("", h.createMoneyBox)
		cashier.POST("/transaction", h.addTransaction)
		cashier.POST("/sale-payments", h.recordSalePayment)
		cashier.POST("/purchase-payments", h.recordPurchasePayment)
		cashier.POST("/sale-refunds", h.recordSaleRefund)

		manager := moneyBox.Group("", middleware.RequireRole(middleware.RoleManager))
		manager.POST("/reconcile", h.reconcileCash)
		manager.POST("/close", h.closeMoneyBox)
	}
}

// createMoneyBox godoc
// @Summary Open a money box
// @Description Opens a new money box for the caller's pharmacy. Only one box may be open at a time.
// @Tags money box
// @Accept  json
// @Produce  json
// @Param   box body dto.CreateMoneyBoxRequest true "Opening balance and period"
// @Success 201 {object} dto.MoneyBoxResponse
// @Failure 400 {object} map[string]string "Invalid input or no exchange rate for the opening currency"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 409 {object} map[string]string "An open money box already exists"
// @Failure 500 {object} map[string]string "Failed to create money box"
// @Security BearerAuth
// @Router /moneybox [post]
func (h *moneyBoxHandler) createMoneyBox(c *gin.Context) {
	var req dto.CreateMoneyBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "CreateMoneyBox")
		return
	}
	userID, pharmacyID, ok := callerFromContext(c)
	if !ok {
		return
	}

	box, err := h.moneyBoxService.CreateMoneyBox(c.Request.Context(), pharmacyID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create money box")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Money box opened", slog.String("money_box_id", box.MoneyBoxID))
	c.JSON(http.StatusCreated, dto.ToMoneyBoxResponse(box))
}

// getCurrentMoneyBox godoc
// @Summary Get the current money box
// @Description Returns the most recently opened box with its balance in the display currencies
// @Tags money box
// @Produce  json
// @Success 200 {object} dto.MoneyBoxResponse
// @Failure 404 {object} map[string]string "No money box"
// @Failure 500 {object} map[string]string "Failed to retrieve money box"
// @Security BearerAuth
// @Router /moneybox [get]
func (h *moneyBoxHandler) getCurrentMoneyBox(c *gin.Context) {
	_, pharmacyID, ok := callerFromContext(c)
	if !ok {
		return
	}

	view, err := h.moneyBoxService.GetCurrentMoneyBox(c.Request.Context(), pharmacyID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve money box")
		return
	}
	c.JSON(http.StatusOK, dto.ToMoneyBoxViewResponse(view))
}

// addTransaction godoc
// @Summary Post a transaction to the open money box
// @Description Without a type, a positive amount is a CASH_DEPOSIT and a negative one a CASH_WITHDRAWAL.
// @Description Amounts in another currency are converted with the active rate.
// @Tags money box
// @Produce  json
// @Param   amount          query string true  "Amount"
// @Param   description     query string false "Description"
// @Param   transactionType query string false "Transaction type"
// @Param   currency        query string false "Currency of amount"
// @Param   referenceId     query string false "Reference ID"
// @Param   referenceType   query string false "Reference type"
// @Success 200 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input or no exchange rate"
// @Failure 404 {object} map[string]string "No money box"
// @Failure 409 {object} map[string]string "Money box is not open"
// @Failure 500 {object} map[string]string "Failed to add transaction"
// @Security BearerAuth
// @Router /moneybox/transaction [post]
func (h *moneyBoxHandler) addTransaction(c *gin.Context) {
	var req dto.AddTransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err, "AddTransaction")
		return
	}
	userID, pharmacyID, ok := callerFromContext(c)
	if !ok {
		return
	}

	result, err := h.moneyBoxService.AddTransaction(c.Request.Context(), pharmacyID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to add transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostingResponse(result))
}

// reconcileCash godoc
// @Summary Reconcile the money box against a cash count
// @Description A mismatch posts an ADJUSTMENT for the difference before the box is marked reconciled.
// @Tags money box
// @Produce  json
// @Param   actualCashCount query string true "Physically counted cash"
// @Param   notes           query string true "Reconciliation notes"
// @Success 200 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 409 {object} map[string]string "Money box already reconciled"
// @Failure 500 {object} map[string]string "Failed to reconcile money box"
// @Security BearerAuth
// @Router /moneybox/reconcile [post]
func (h *moneyBoxHandler) reconcileCash(c *gin.Context) {
	var req dto.ReconcileCashRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err, "ReconcileCash")
		return
	}
	userID, pharmacyID, ok := callerFromContext(c)
	if !ok {
		return
	}

	result, err := h.moneyBoxService.ReconcileCash(c.Request.Context(), pharmacyID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to reconcile money box")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostingResponse(result))
}

// closeMoneyBox godoc
// @Summary Close the open money box
// @Tags money box
// @Produce  json
// @Param   notes query string false "Closing notes"
// @Success 200 {object} dto.MoneyBoxResponse
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 409 {object} map[string]string "Money box is not open"
// @Failure 500 {object} map[string]string "Failed to close money box"
// @Security BearerAuth
// @Router /moneybox/close [post]
func (h *moneyBoxHandler) closeMoneyBox(c *gin.Context) {
	var req dto.CloseMoneyBoxRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err, "CloseMoneyBox")
		return
	}
	userID, pharmacyID, ok := callerFromContext(c)
	if !ok {
		return
	}

	box, err := h.moneyBoxService.CloseMoneyBox(c.Request.Context(), pharmacyID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to close money box")
		return
	}
	c.JSON(http.StatusOK, dto.ToMoneyBoxResponse(box))
}

// getPeriodSummary godoc
// @Summary Summarize cash movement over a period
// @Description Defaults to the current box's opening time and now
// @Tags money box
// @Produce  json
// @Param   startDate query string false "RFC3339 or YYYY-MM-DD"
// @Param   endDate   query string false "RFC3339 or YYYY-MM-DD (inclusive)"
// @Success 200 {object} dto.MoneyBoxSummaryResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 404 {object} map[string]string "No money box"
// @Failure 500 {object} map[string]string "Failed to summarize money box"
// @Security BearerAuth
// @Router /moneybox/summary [get]
func (h *moneyBoxHandler) getPeriodSummary(c *gin.Context) {
	_, pharmacyID, ok := callerFromContext(c)
	if !ok {
		return
	}
	start, err := dto.ParseOptionalDate(c.Query("startDate"), false)
	if err != nil {
		respondWithError(c, err, "Invalid startDate")
		return
	}
	end, err := dto.ParseOptionalDate(c.Query("endDate"), true)
	if err != nil {
		respondWithError(c, err, "Invalid endDate")
		return
	}

	summary, err := h.moneyBoxService.GetPeriodSummary(c.Request.Context(), pharmacyID, start, end)
	if err != nil {
		respondWithError(c, err, "Failed to summarize money box")
		return
	}
	c.JSON(http.StatusOK, dto.ToMoneyBoxSummaryResponse(summary))
}

// listTransactions godoc
// @Summary List the current money box's transactions
// @Description Newest first. Pass nextToken from the previous page to continue.
// @Tags money box
// @Produce  json
// @Param   startDate       query string false "RFC3339 or YYYY-MM-DD"
// @Param   endDate         query string false "RFC3339 or YYYY-MM-DD (inclusive)"
// @Param   transactionType query string false "Transaction type"
// @Param   limit           query int    false "Page size (default 20, max 100)"
// @Param   nextToken       query string false "Pagination token"
// @Success 200 {object} dto.ListMoneyBoxTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid filter or token"
// @Failure 404 {object} map[string]string "No money box"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /moneybox/transactions [get]
func (h *moneyBoxHandler) listTransactions(c *gin.Context) {
	_, pharmacyID, ok := callerFromContext(c)
	if !ok {
		return
	}

	var req dto.ListMoneyBoxTransactionsRequest
	var err error
	if req.StartDate, err = dto.ParseOptionalDate(c.Query("startDate"), false); err != nil {
		respondWithError(c, err, "Invalid startDate")
		return
	}
	if req.EndDate, err = dto.ParseOptionalDate(c.Query("endDate"), true); err != nil {
		respondWithError(c, err, "Invalid endDate")
		return
	}
	if raw := c.Query("limit"); raw != "" {
		if req.Limit, err = strconv.Atoi(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
	}
	req.TransactionType = c.Query("transactionType")
	if token := c.Query("nextToken"); token != "" {
		req.NextToken = &token
	}

	rows, next, err := h.moneyBoxService.ListTransactions(c.Request.Context(), pharmacyID, req)
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListMoneyBoxTransactionsResponse{
		Transactions: dto.ToMoneyBoxTransactionResponses(rows),
		NextToken:    next,
	})
}

// verifyMoneyBox godoc
// @Summary Verify the current money box against its log
// @Description Replays every transaction and reports chain or total mismatches
// @Tags money box
// @Produce  json
// @Success 200 {object} dto.ChainReportResponse
// @Failure 404 {object} map[string]string "No money box"
// @Failure 500 {object} map[string]string "Failed to verify money box"
// @Security BearerAuth
// @Router /moneybox/verify [get]
func (h *moneyBoxHandler) verifyMoneyBox(c *gin.Context) {
	_, pharmacyID, ok := callerFromContext(c)
	if !ok {
		return
	}

	report, err := h.moneyBoxService.VerifyMoneyBox(c.Request.Context(), pharmacyID)
	if err != nil {
		respondWithError(c, err, "Failed to verify money box")
		return
	}
	c.JSON(http.StatusOK, dto.ToChainReportResponse(report))
}

// recordSalePayment godoc
// @Summary Record the cash payment of a sale
// @Description Posts a SALE_PAYMENT. An optional unpaid remainder is recorded as customer debt on a best-effort basis.
// @Tags integrations
// @Accept  json
// @Produce  json
// @Param   payment body dto.SalePaymentRequest true "Sale payment"
// @Success 200 {object} dto.SalePaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Money box is not open"
// @Failure 500 {object} map[string]string "Failed to record sale payment"
// @Security BearerAuth
// @Router /moneybox/sale-payments [post]
func (h *moneyBoxHandler) recordSalePayment(c *gin.Context) {
	var req dto.SalePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "RecordSalePayment")
		return
	}
	userID, pharmacyID, ok := callerFromContext(c)
	if !ok {
		return
	}

	result, err := h.integrationService.RecordSalePayment(c.Request.Context(), pharmacyID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record sale payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToSalePaymentResponse(result))
}

// recordPurchasePayment godoc
// @Summary Record the cash payment of a purchase
// @Tags integrations
// @Accept  json
// @Produce  json
// @Param   payment body dto.PurchasePaymentRequest true "Purchase payment"
// @Success 200 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Money box is not open"
// @Failure 500 {object} map[string]string "Failed to record purchase payment"
// @Security BearerAuth
// @Router /moneybox/purchase-payments [post]
func (h *moneyBoxHandler) recordPurchasePayment(c *gin.Context) {
	var req dto.PurchasePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "RecordPurchasePayment")
		return
	}
	userID, pharmacyID, ok := callerFromContext(c)
	if !ok {
		return
	}

	result, err := h.integrationService.RecordPurchasePayment(c.Request.Context(), pharmacyID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record purchase payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostingResponse(result))
}

// recordSaleRefund godoc
// @Summary Record a cash refund for a customer return
// @Tags integrations
// @Accept  json
// @Produce  json
// @Param   refund body dto.SaleRefundRequest true "Sale refund"
// @Success 200 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Money box is not open"
// @Failure 500 {object} map[string]string "Failed to record sale refund"
// @Security BearerAuth
// @Router /moneybox/sale-refunds [post]
func (h *moneyBoxHandler) recordSaleRefund(c *gin.Context) {
	var req dto.SaleRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "RecordSaleRefund")
		return
	}
	userID, pharmacyID, ok := callerFromContext(c)
	if !ok {
		return
	}

	result, err := h.integrationService.RecordSaleRefund(c.Request.Context(), pharmacyID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record sale refund")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostingResponse(result))
}
