// Package apierror provides the error envelope returned by every endpoint.
// Store and driver errors never reach a client: handlers map them to one of
// the fixed Spanish messages below.
package apierror

// APIError is the canonical body of every 4xx/5xx response: {"error": "..."}.
type APIError struct {
	Mensaje string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Mensaje: msg}
}

const (
	MsgJSONInvalido      = "JSON inválido"
	MsgIDInvalido        = "ID de ticket inválido"
	MsgNoEncontrado      = "Ticket no encontrado"
	MsgNumeroDuplicado   = "El número de ticket ya existe"
	MsgErrorListar       = "Error al obtener tickets"
	MsgErrorCrear        = "Error al crear ticket"
	MsgErrorActualizar   = "Error al actualizar el ticket"
	MsgErrorEliminar     = "Error al eliminar el ticket"
	MsgErrorEquipos      = "Error al obtener equipos"
	MsgErrorPanel        = "Error al cargar los datos"
	MsgErrorExportar     = "Error al exportar tickets"
	MsgErrorInterno      = "Error interno del servidor"
	MsgDemasiadasSolicit = "Demasiadas solicitudes. Intente nuevamente en un momento."
)
