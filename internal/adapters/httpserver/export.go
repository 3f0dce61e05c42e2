package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// handleOrdersExport streams every order as an XLSX workbook for back-office use.
func (s *Server) handleOrdersExport(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.require(w, r, levelAdmin); !ok {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	orders, err := s.orders.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Pedidos"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Número", "Email", "Nombre", "Ciudad", "Estado", "Subtotal", "Envío", "Total", "Fecha"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, o := range orders {
		values := []any{
			o.Number,
			o.Email,
			o.Name + " " + o.LastName,
			o.City,
			string(o.Status),
			o.Subtotal,
			o.ShippingCost,
			o.Total,
			o.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=pedidos-%s.xlsx", time.Now().Format("20060102")))
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("exportar pedidos")
	}
}
