package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "mughal/internal/errors"
	"mughal/internal/models"
	"mughal/internal/pagination"
	"mughal/internal/services"
)

// TransactionHandler handles checkout, purchasing, returns and the
// transaction history.
type TransactionHandler struct {
	salesService       services.SalesServicer
	purchaseService    services.PurchaseServicer
	returnService      services.ReturnServicer
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(
	salesService services.SalesServicer,
	purchaseService services.PurchaseServicer,
	returnService services.ReturnServicer,
	transactionService services.TransactionServicer,
) *TransactionHandler {
	return &TransactionHandler{
		salesService:       salesService,
		purchaseService:    purchaseService,
		returnService:      returnService,
		transactionService: transactionService,
	}
}

// LineRequest is one cart line. Price overrides the list price when set.
type LineRequest struct {
	ProductID string           `json:"productId" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,gt=0"`
	Price     *decimal.Decimal `json:"price" binding:"omitempty,gte=0"`
}

// CreateSaleRequest represents the request payload for a checkout
type CreateSaleRequest struct {
	Type       models.TransactionType `json:"type" binding:"required,sale_type"`
	Items      []LineRequest          `json:"items" binding:"required,min=1,dive"`
	Discount   decimal.Decimal        `json:"discount" binding:"gte=0"`
	PaidAmount *decimal.Decimal       `json:"paidAmount" binding:"omitempty,gte=0"`
	PartyID    string                 `json:"partyId"`
}

// CreatePurchaseRequest represents the request payload for a stock purchase
type CreatePurchaseRequest struct {
	Items      []LineRequest    `json:"items" binding:"required,min=1,dive"`
	PaidAmount *decimal.Decimal `json:"paidAmount" binding:"omitempty,gte=0"`
	PartyID    string           `json:"partyId" binding:"required"`
}

// ReturnLineRequest is one product taken back.
type ReturnLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CreateReturnRequest represents the request payload for a customer return.
// Leaving items empty returns everything still open on the invoice.
type CreateReturnRequest struct {
	InvoiceID string              `json:"invoiceId" binding:"required"`
	Items     []ReturnLineRequest `json:"items" binding:"omitempty,dive"`
}

func lineInputs(lines []LineRequest) []services.LineInput {
	out := make([]services.LineInput, len(lines))
	for i, l := range lines {
		out[i] = services.LineInput{ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price}
	}
	return out
}

// CreateSale handles a point-of-sale checkout
// @Summary     Create a sale
// @Description Record a retail or wholesale sale. Stock is deducted and any unpaid balance is added to the customer's account.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSaleRequest true "Sale details"
// @Success     201 {object} models.Transaction "Sale recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Product or party not found"
// @Failure     409 {object} ErrorResponse "Insufficient stock"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sales [post]
func (h *TransactionHandler) CreateSale(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	tx, err := h.salesService.CreateSale(c.Request.Context(), services.SaleInput{
		Type:       req.Type,
		Items:      lineInputs(req.Items),
		Discount:   req.Discount,
		PaidAmount: req.PaidAmount,
		PartyID:    req.PartyID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// CreatePurchase handles a stock purchase
// @Summary     Create a purchase
// @Description Record a purchase from a supplier. Stock is added and the unpaid amount is owed to the supplier.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePurchaseRequest true "Purchase details"
// @Success     201 {object} models.Transaction "Purchase recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Product or party not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /purchases [post]
func (h *TransactionHandler) CreatePurchase(c *gin.Context) {
	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	tx, err := h.purchaseService.CreatePurchase(c.Request.Context(), services.PurchaseInput{
		Items:      lineInputs(req.Items),
		PaidAmount: req.PaidAmount,
		PartyID:    req.PartyID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// GetReturnableInvoice handles the invoice lookup for a return
// @Summary     Find invoice for return
// @Description Look up a sale invoice with the quantity still open for return on each product
// @Tags        returns
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Invoice ID"
// @Success     200 {object} services.ReturnableInvoice "Invoice with returnable lines"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Invoice not found"
// @Router      /returns/invoice/{id} [get]
func (h *TransactionHandler) GetReturnableInvoice(c *gin.Context) {
	invoice, err := h.returnService.FindReturnableInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// CreateReturn handles a customer return
// @Summary     Create a return
// @Description Take goods back against a sale invoice. Stock is restored and the refund is credited to the customer.
// @Tags        returns
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateReturnRequest true "Return details"
// @Success     201 {object} models.Transaction "Return recorded"
// @Failure     400 {object} ErrorResponse "Invalid input or quantity exceeds the sale"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Invoice not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /returns [post]
func (h *TransactionHandler) CreateReturn(c *gin.Context) {
	var req CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	items := make([]services.ReturnLineInput, len(req.Items))
	for i, l := range req.Items {
		items[i] = services.ReturnLineInput{ProductID: l.ProductID, Quantity: l.Quantity}
	}

	tx, err := h.returnService.CreateReturn(c.Request.Context(), services.ReturnInput{
		InvoiceID: req.InvoiceID,
		Items:     items,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// ListTransactions handles the transaction history
// @Summary     List transactions
// @Description Get a paginated list of transactions, most recent first, with optional filters
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       from_date query string false "Filter by start date (RFC3339 e.g. 2024-01-01T00:00:00Z, or YYYY-MM-DD)"
// @Param       to_date   query string false "Filter by end date (RFC3339 or YYYY-MM-DD, inclusive)"
// @Param       type      query string false "Filter by transaction type (SALE_RETAIL, SALE_WHOLESALE, PURCHASE, RETURN)"
// @Param       party_id  query string false "Filter by party ID"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.List(c.Request.Context(), filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("from_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.FromDate = &t
	}

	if v := c.Query("to_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to_date format, use RFC3339 or YYYY-MM-DD")
		}
		// A bare date covers the whole day.
		if len(v) == len("2006-01-02") {
			t = t.AddDate(0, 0, 1).Add(-1)
		}
		filter.ToDate = &t
	}

	if v := c.Query("type"); v != "" {
		txType := models.TransactionType(v)
		if !txType.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be SALE_RETAIL, SALE_WHOLESALE, PURCHASE, or RETURN")
		}
		filter.Type = &txType
	}

	filter.PartyID = c.Query("party_id")
	return filter, nil
}

// GetTransaction handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Description Get a specific transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	tx, err := h.transactionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// GetInvoice handles the printable invoice of a transaction
// @Summary     Get invoice
// @Description Get the printable invoice, voucher or return receipt of a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} reports.Invoice "Invoice"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id}/invoice [get]
func (h *TransactionHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.transactionService.Invoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}
