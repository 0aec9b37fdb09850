package dto

type ResumenResponse struct {
	TotalTickets int     `json:"total_tickets"`
	Completados  int     `json:"completados"`
	Pendientes   int     `json:"pendientes"`
	CostoTotal   float64 `json:"costo_total"`
}

type PuntoMensualResponse struct {
	Mes     string `json:"mes"`
	Tickets int    `json:"tickets"`
}

type CategoriaCostoResponse struct {
	Nombre string  `json:"nombre"`
	Valor  float64 `json:"valor"`
	Color  string  `json:"color"`
}

type DuracionServicioResponse struct {
	Ticket   string `json:"ticket"`
	Duracion int    `json:"duracion"`
}

// PanelResponse is returned by GET /dashboard.
type PanelResponse struct {
	Revision           int64                      `json:"revision"`
	Resumen            ResumenResponse            `json:"resumen"`
	TicketsPorMes      []PuntoMensualResponse     `json:"tickets_por_mes"`
	DesgloseCostos     []CategoriaCostoResponse   `json:"desglose_costos"`
	DuracionesServicio []DuracionServicioResponse `json:"duraciones_servicio"`
}

type RevisionResponse struct {
	Revision int64 `json:"revision"`
}
