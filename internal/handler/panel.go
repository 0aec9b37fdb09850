package handler

import (
	"fmt"
	"net/http"
	"time"

	"serviciotecnico/internal/apierror"
	"serviciotecnico/internal/dto"
	"serviciotecnico/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

type PanelHandler struct{ svc service.PanelService }

func NewPanelHandler(svc service.PanelService) *PanelHandler {
	return &PanelHandler{svc: svc}
}

// Panel godoc
// @Summary      Datos del panel
// @Description  Resumen, tickets por mes, desglose de costos y duraciones de servicio
// @Tags         panel
// @Produce      json
// @Success      200  {object}  dto.Respuesta[dto.PanelResponse]
// @Failure      500  {object}  apierror.APIError
// @Router       /dashboard [get]
func (h *PanelHandler) Panel(c *gin.Context) {
	resp, err := h.svc.Panel(c.Request.Context())
	if err != nil {
		fallar(c, err, apierror.MsgErrorPanel)
		return
	}
	c.JSON(http.StatusOK, dto.Respuesta[dto.PanelResponse]{Data: resp})
}

// Revision GET /dashboard/revision
func (h *PanelHandler) Revision(c *gin.Context) {
	rev, err := h.svc.Revision(c.Request.Context())
	if err != nil {
		fallar(c, err, apierror.MsgErrorPanel)
		return
	}
	c.JSON(http.StatusOK, dto.Respuesta[dto.RevisionResponse]{Data: dto.RevisionResponse{Revision: rev}})
}

// ExportarXLSX GET /tickets/export
func (h *PanelHandler) ExportarXLSX(c *gin.Context) {
	b, err := h.svc.ExportarXLSX(c.Request.Context())
	if err != nil {
		fallar(c, err, apierror.MsgErrorExportar)
		return
	}
	nombre := fmt.Sprintf("tickets-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, mimeXLSX, b)
}

// OrdenServicioPDF GET /tickets/:id/pdf
func (h *PanelHandler) OrdenServicioPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.svc.OrdenServicioPDF(c.Request.Context(), id)
	if err != nil {
		escribirErrorTicket(c, err, apierror.MsgErrorInterno)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="orden-%d.pdf"`, id))
	c.Data(http.StatusOK, mimePDF, b)
}
