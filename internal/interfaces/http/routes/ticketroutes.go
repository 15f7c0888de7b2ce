package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "pinkslip/internal/interfaces/http/handlers/ticket"
)

type TicketRouteConfig struct {
	TicketHandler *tickethandlers.TicketHandler
	ImportHandler *tickethandlers.ImportHandler
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	api := engine.Group("/api")

	api.POST("/imports", config.ImportHandler.ImportTickets)

	tickets := api.Group("/tickets")
	{
		// Collection operations (no number parameter)
		tickets.POST("", config.TicketHandler.CreateEntry)
		tickets.GET("", config.TicketHandler.ListTickets)

		// Static path, registered before /:number
		tickets.GET("/export", config.TicketHandler.ExportTickets)

		tickets.GET("/:number", config.TicketHandler.GetTicket)
		tickets.DELETE("/:number", config.TicketHandler.DeleteTicket)
	}
}
