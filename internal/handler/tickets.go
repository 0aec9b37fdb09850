package handler

import (
	"net/http"

	"serviciotecnico/internal/apierror"
	"serviciotecnico/internal/dto"
	"serviciotecnico/internal/service"

	"github.com/gin-gonic/gin"
)

type TicketsHandler struct{ svc service.TicketService }

func NewTicketsHandler(svc service.TicketService) *TicketsHandler {
	return &TicketsHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar tickets
// @Description  Todos los tickets, el más reciente primero
// @Tags         tickets
// @Produce      json
// @Success      200  {object}  dto.Respuesta[[]dto.TicketResponse]
// @Failure      500  {object}  apierror.APIError
// @Router       /tickets [get]
func (h *TicketsHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		escribirErrorTicket(c, err, apierror.MsgErrorListar)
		return
	}
	c.JSON(http.StatusOK, dto.Respuesta[[]dto.TicketResponse]{Data: resp})
}

// Crear godoc
// @Summary      Crear ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CrearTicketRequest  true  "Ticket"
// @Success      201   {object}  dto.Respuesta[dto.TicketResponse]
// @Failure      400   {object}  apierror.APIError
// @Failure      500   {object}  apierror.APIError
// @Router       /tickets [post]
func (h *TicketsHandler) Crear(c *gin.Context) {
	var req dto.CrearTicketRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		escribirErrorTicket(c, err, apierror.MsgErrorCrear)
		return
	}
	c.JSON(http.StatusCreated, dto.Respuesta[dto.TicketResponse]{Data: resp})
}

// Actualizar godoc
// @Summary      Actualizar ticket
// @Description  Actualización parcial: sólo se modifican los campos enviados
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id    path      int                          true  "ID del ticket"
// @Param        body  body      dto.ActualizarTicketRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Respuesta[dto.TicketResponse]
// @Failure      400   {object}  apierror.APIError
// @Failure      404   {object}  apierror.APIError
// @Router       /tickets/{id} [put]
func (h *TicketsHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarTicketRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		escribirErrorTicket(c, err, apierror.MsgErrorActualizar)
		return
	}
	c.JSON(http.StatusOK, dto.Respuesta[dto.TicketResponse]{Data: resp})
}

// Eliminar godoc
// @Summary      Eliminar ticket
// @Tags         tickets
// @Produce      json
// @Param        id   path      int  true  "ID del ticket"
// @Success      200  {object}  dto.Respuesta[string]
// @Failure      400  {object}  apierror.APIError
// @Failure      404  {object}  apierror.APIError
// @Router       /tickets/{id} [delete]
func (h *TicketsHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		escribirErrorTicket(c, err, apierror.MsgErrorEliminar)
		return
	}
	c.JSON(http.StatusOK, dto.Respuesta[string]{Data: "Ticket eliminado exitosamente"})
}
