package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"serviciotecnico/internal/apierror"
	"serviciotecnico/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindAndValidate binds the JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if binding or validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		c.JSON(http.StatusBadRequest, apierror.New(apierror.MsgJSONInvalido))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			c.JSON(http.StatusBadRequest, apierror.New("Campo demasiado largo: "+jsonName(verrs[0])))
			return false
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	return true
}

// jsonName turns a validator field name (NumeroTicket) into its JSON key.
func jsonName(fe validator.FieldError) string {
	var b strings.Builder
	for i, r := range fe.Field() {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseID reads the :id path parameter. It writes 400 and returns false when
// the value is not a positive integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.MsgIDInvalido))
		return 0, false
	}
	return id, true
}

// escribirErrorTicket maps a service error onto a status and message.
// Unclassified errors are answered with fallback and left on c.Errors for
// middleware.ErrorHandler to log.
func escribirErrorTicket(c *gin.Context, err error, fallback string) {
	var verr *service.ErrValidacion
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, apierror.New(verr.Mensaje))
	case errors.Is(err, service.ErrNumeroDuplicado):
		c.JSON(http.StatusBadRequest, apierror.New(apierror.MsgNumeroDuplicado))
	case errors.Is(err, service.ErrTicketNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(apierror.MsgNoEncontrado))
	default:
		fallar(c, err, fallback)
	}
}

// fallar answers 500 with msg and records err for the error middleware.
func fallar(c *gin.Context, err error, msg string) {
	_ = c.Error(err).SetMeta(msg)
	c.JSON(http.StatusInternalServerError, apierror.New(msg))
}
