package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"serviciotecnico/internal/cliente"
	"serviciotecnico/internal/dto"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const claveAPIURL = "TICKETS_API_URL"

func nuevoRoot() *cobra.Command {
	v := viper.New()
	v.SetDefault(claveAPIURL, "http://localhost:8000")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "ticketctl",
		Short:         "Gestión de tickets de servicio técnico",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("api-url", "", "URL base de la API (env "+claveAPIURL+")")
	_ = v.BindPFlag(claveAPIURL, root.PersistentFlags().Lookup("api-url"))

	nuevoCliente := func() *cliente.Cliente { return cliente.New(v.GetString(claveAPIURL)) }

	root.AddCommand(
		cmdListar(nuevoCliente),
		cmdCrear(nuevoCliente),
		cmdActualizar(nuevoCliente),
		cmdEliminar(nuevoCliente),
		cmdEquipos(nuevoCliente),
		cmdPanel(nuevoCliente),
		cmdExportar(nuevoCliente),
	)
	return root
}

func cmdListar(nuevo func() *cliente.Cliente) *cobra.Command {
	return &cobra.Command{
		Use:   "listar",
		Short: "Lista todos los tickets, el más reciente primero",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tickets, err := nuevo().ListarTickets(cmd.Context())
			if err != nil {
				return err
			}
			imprimirTickets(cmd.OutOrStdout(), tickets)
			return nil
		},
	}
}

func cmdCrear(nuevo func() *cliente.Cliente) *cobra.Command {
	var (
		req                         dto.CrearTicketRequest
		fin                         string
		repuestos, manoObra, extern float64
	)
	cmd := &cobra.Command{
		Use:   "crear",
		Short: "Crea un ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fin != "" {
				req.FechaFinServicio = &fin
			}
			req.CostoRepuestos = dto.NuevoMonto(repuestos)
			req.CostoManoObra = dto.NuevoMonto(manoObra)
			req.CostosExternosEstimados = dto.NuevoMonto(extern)

			c := nuevo()
			p := cliente.NuevoPanel(c)
			var creado dto.TicketResponse
			err := p.Mutar(cmd.Context(), func(ctx context.Context) error {
				var err error
				creado, err = c.CrearTicket(ctx, req)
				return err
			})
			if creado.ID == 0 {
				return err
			}
			if err != nil {
				log.Warn().Err(err).Msg("ticket creado pero no se pudo refrescar la lista")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ticket %s creado (id %d). Total de tickets: %d\n",
				creado.NumeroTicket, creado.ID, len(p.Tickets()))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.NumeroTicket, "numero", "", "número de ticket")
	f.StringVar(&req.Equipo, "equipo", "", "equipo")
	f.StringVar(&req.FechaEntrada, "entrada", time.Now().Format("2006-01-02"), "fecha de entrada")
	f.StringVar(&req.FechaInicioServicio, "inicio", time.Now().Format("2006-01-02"), "fecha de inicio del servicio")
	f.StringVar(&fin, "fin", "", "fecha de fin del servicio")
	f.StringVar(&req.Descripcion, "descripcion", "", "descripción del trabajo")
	f.Float64Var(&repuestos, "repuestos", 0, "costo de repuestos")
	f.Float64Var(&manoObra, "mano-obra", 0, "costo de mano de obra")
	f.Float64Var(&extern, "externos", 0, "costos externos estimados")
	return cmd
}

func cmdActualizar(nuevo func() *cliente.Cliente) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actualizar ID",
		Short: "Actualiza sólo los campos indicados de un ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("ID de ticket inválido: %q", args[0])
			}
			req, err := patchDesdeFlags(cmd)
			if err != nil {
				return err
			}
			t, err := nuevo().ActualizarTicket(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			imprimirTickets(cmd.OutOrStdout(), []dto.TicketResponse{t})
			return nil
		},
	}
	f := cmd.Flags()
	f.String("numero", "", "número de ticket")
	f.String("equipo", "", "equipo")
	f.String("entrada", "", "fecha de entrada")
	f.String("inicio", "", "fecha de inicio del servicio")
	f.String("fin", "", "fecha de fin del servicio; vacío la borra")
	f.String("descripcion", "", "descripción del trabajo")
	f.Float64("repuestos", 0, "costo de repuestos")
	f.Float64("mano-obra", 0, "costo de mano de obra")
	f.Float64("externos", 0, "costos externos estimados")
	return cmd
}

// patchDesdeFlags builds a patch holding only the flags the user set.
func patchDesdeFlags(cmd *cobra.Command) (dto.ActualizarTicketRequest, error) {
	var req dto.ActualizarTicketRequest
	f := cmd.Flags()

	textos := map[string]**string{
		"numero":      &req.NumeroTicket,
		"equipo":      &req.Equipo,
		"entrada":     &req.FechaEntrada,
		"inicio":      &req.FechaInicioServicio,
		"descripcion": &req.Descripcion,
	}
	for flag, dst := range textos {
		if !f.Changed(flag) {
			continue
		}
		s, err := f.GetString(flag)
		if err != nil {
			return req, err
		}
		*dst = &s
	}
	if f.Changed("fin") {
		s, _ := f.GetString("fin")
		req.FechaFinServicio = dto.ConFecha(s)
	}

	costos := map[string]**dto.Monto{
		"repuestos": &req.CostoRepuestos,
		"mano-obra": &req.CostoManoObra,
		"externos":  &req.CostosExternosEstimados,
	}
	for flag, dst := range costos {
		if !f.Changed(flag) {
			continue
		}
		v, err := f.GetFloat64(flag)
		if err != nil {
			return req, err
		}
		*dst = dto.NuevoMonto(v)
	}
	return req, nil
}

func cmdEliminar(nuevo func() *cliente.Cliente) *cobra.Command {
	return &cobra.Command{
		Use:   "eliminar ID",
		Short: "Elimina un ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("ID de ticket inválido: %q", args[0])
			}
			msg, err := nuevo().EliminarTicket(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func cmdEquipos(nuevo func() *cliente.Cliente) *cobra.Command {
	return &cobra.Command{
		Use:   "equipos",
		Short: "Lista los equipos ya registrados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, e := range cliente.NuevoPanel(nuevo()).Equipos(cmd.Context()) {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
}

func cmdPanel(nuevo func() *cliente.Cliente) *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Muestra los datos del panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if !local {
				panel, err := nuevo().Panel(cmd.Context())
				if err != nil {
					return err
				}
				return enc.Encode(panel)
			}

			p := cliente.NuevoPanel(nuevo())
			if err := p.Refrescar(cmd.Context()); err != nil {
				return err
			}
			est, ok := p.Estadisticas()
			if !ok {
				return cliente.ErrConexion
			}
			return enc.Encode(est)
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "calcular los agregados en el cliente")
	return cmd
}

func cmdExportar(nuevo func() *cliente.Cliente) *cobra.Command {
	var salida string
	cmd := &cobra.Command{
		Use:   "exportar",
		Short: "Descarga los tickets como XLSX, o la orden de servicio con --pdf ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := nuevo()
			var (
				b   []byte
				err error
			)
			if id, _ := cmd.Flags().GetInt64("pdf"); id > 0 {
				b, err = c.OrdenServicioPDF(cmd.Context(), id)
			} else {
				b, err = c.ExportarXLSX(cmd.Context())
			}
			if err != nil {
				return err
			}
			return os.WriteFile(salida, b, 0o644)
		},
	}
	cmd.Flags().StringVarP(&salida, "salida", "o", "tickets.xlsx", "archivo de salida")
	cmd.Flags().Int64("pdf", 0, "ID del ticket cuya orden de servicio se descarga")
	return cmd
}

func imprimirTickets(out io.Writer, tickets []dto.TicketResponse) {
	w := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNÚMERO\tEQUIPO\tENTRADA\tESTADO\tTOTAL")
	for _, t := range tickets {
		estado := "Pendiente"
		if t.FechaFinServicio != nil {
			estado = "Completado"
		}
		total := t.CostoRepuestos + t.CostoManoObra + t.CostosExternosEstimados
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.2f\n",
			t.ID, t.NumeroTicket, t.Equipo, t.FechaEntrada.Format("2006-01-02"), estado, total)
	}
	_ = w.Flush()
}
