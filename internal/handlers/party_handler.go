package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "mughal/internal/errors"
	"mughal/internal/models"
	"mughal/internal/services"
)

// PartyHandler handles customer and supplier requests.
type PartyHandler struct {
	partyService services.PartyServicer
}

// NewPartyHandler creates a new PartyHandler.
func NewPartyHandler(partyService services.PartyServicer) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

// ListParties handles the party directory
// @Summary     List parties
// @Description Get customers and suppliers with their running balances
// @Tags        parties
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "Filter by party type (CUSTOMER, SUPPLIER)"
// @Success     200 {array}  models.Party "Parties"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /parties [get]
func (h *PartyHandler) ListParties(c *gin.Context) {
	var partyType *models.PartyType
	if v := c.Query("type"); v != "" {
		t := models.PartyType(v)
		if t != models.PartyTypeCustomer && t != models.PartyTypeSupplier {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type, must be CUSTOMER or SUPPLIER"))
			return
		}
		partyType = &t
	}

	parties, err := h.partyService.List(c.Request.Context(), partyType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"parties": parties})
}

// GetParty handles the retrieval of a single party
// @Summary     Get party
// @Description Get a customer or supplier by ID
// @Tags        parties
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Party ID"
// @Success     200 {object} models.Party "Party details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Party not found"
// @Router      /parties/{id} [get]
func (h *PartyHandler) GetParty(c *gin.Context) {
	party, err := h.partyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"party": party})
}

// GetStatement handles the party ledger statement
// @Summary     Party statement
// @Description Get a party with every transaction booked against it, most recent first
// @Tags        parties
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Party ID"
// @Success     200 {object} services.PartyStatement "Statement"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Party not found"
// @Router      /parties/{id}/statement [get]
func (h *PartyHandler) GetStatement(c *gin.Context) {
	statement, err := h.partyService.Statement(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, statement)
}
