package handler

import (
	"net/http"

	"serviciotecnico/internal/apierror"
	"serviciotecnico/internal/dto"
	"serviciotecnico/internal/service"

	"github.com/gin-gonic/gin"
)

type EquiposHandler struct{ svc service.EquipoService }

func NewEquiposHandler(svc service.EquipoService) *EquiposHandler {
	return &EquiposHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar equipos
// @Description  Nombres de equipo distintos usados en tickets
// @Tags         equipos
// @Produce      json
// @Success      200  {object}  dto.Respuesta[[]string]
// @Failure      500  {object}  apierror.APIError
// @Router       /equipment [get]
func (h *EquiposHandler) Listar(c *gin.Context) {
	equipos, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		fallar(c, err, apierror.MsgErrorEquipos)
		return
	}
	c.JSON(http.StatusOK, dto.Respuesta[[]string]{Data: equipos})
}
