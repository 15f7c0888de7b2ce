package ticket

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pinkslip/internal/application/ticket/usecases"
	"pinkslip/internal/infrastructure/spreadsheet"
	"pinkslip/internal/interfaces/dto"
	"pinkslip/internal/shared/constants"
	"pinkslip/internal/shared/errors"
	"pinkslip/internal/shared/logger"
	"pinkslip/internal/shared/utils"
)

type TicketHandler struct {
	createEntryUC  usecases.CreateEntryExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	getTicketUC    usecases.GetTicketExecutor
	deleteTicketUC usecases.DeleteTicketExecutor
	exportUC       usecases.ExportTicketsExecutor
	logger         logger.Interface
}

func NewTicketHandler(
	createEntryUC usecases.CreateEntryExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getTicketUC usecases.GetTicketExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	exportUC usecases.ExportTicketsExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createEntryUC:  createEntryUC,
		listTicketsUC:  listTicketsUC,
		getTicketUC:    getTicketUC,
		deleteTicketUC: deleteTicketUC,
		exportUC:       exportUC,
		logger:         logger,
	}
}

// CreateEntry handles POST /api/tickets
func (h *TicketHandler) CreateEntry(c *gin.Context) {
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create entry", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createEntryUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := dto.CreateEntryResponse{TicketCreated: result.TicketCreated, Ticket: result.Ticket}
	if result.TicketCreated {
		utils.CreatedResponse(c, resp, "Ticket created successfully")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Item added to existing ticket", resp)
}

// ListTickets handles GET /api/tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listTicketsUC.Execute(c.Request.Context(), usecases.ListTicketsQuery{
		Search:   c.Query("q"),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// GetTicket handles GET /api/tickets/:number
func (h *TicketHandler) GetTicket(c *gin.Context) {
	number := c.Param("number")
	if err := utils.ValidateTicketNumber(number); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{Number: number})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteTicket handles DELETE /api/tickets/:number
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	number := c.Param("number")
	if err := utils.ValidateTicketNumber(number); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{Number: number})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket deleted successfully", result)
}

// ExportTickets handles GET /api/tickets/export
func (h *TicketHandler) ExportTickets(c *gin.Context) {
	records, err := h.exportUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := spreadsheet.WriteCSV(&buf, dto.ExportHeader, dto.ExportRows(records)); err != nil {
		h.logger.Errorw("failed to render export", "error", err)
		utils.ErrorResponseWithError(c, errors.NewInternalError("failed to render export"))
		return
	}

	filename := fmt.Sprintf("tickets-%s.csv", time.Now().Format("20060102-150405"))
	utils.AttachmentResponse(c, filename, constants.ContentTypeCSV, buf.Bytes())
}
