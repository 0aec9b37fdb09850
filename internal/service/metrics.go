package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ticketMutaciones = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "serviciotecnico",
	Subsystem: "tickets",
	Name:      "mutaciones_total",
	Help:      "Ticket mutations, labeled by operation and result",
}, []string{"operacion", "resultado"})

func registrarMutacion(operacion string, err error) {
	resultado := "ok"
	if err != nil {
		resultado = "error"
	}
	ticketMutaciones.WithLabelValues(operacion, resultado).Inc()
}
