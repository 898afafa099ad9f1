package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promoprecio/backend/internal/domain"
	"github.com/promoprecio/backend/internal/export"
	"github.com/promoprecio/backend/internal/usecase"
)

// Content types for the non-JSON sinks.
const (
	contentTypeCSV   = "text/csv; charset=utf-8"
	contentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF   = "application/pdf"
)

// renderTable writes a table in the format requested via the formato query
// parameter. JSON is handled by the callers; this covers the file sinks.
func renderTable(c *gin.Context, format, filename string, table export.Table) {
	var buf bytes.Buffer
	var contentType string
	var err error

	switch format {
	case "csv":
		contentType = contentTypeCSV
		err = export.WriteCSV(&buf, table)
		filename += ".csv"
	case "excel":
		contentType = contentTypeExcel
		err = export.WriteExcel(&buf, table)
		filename += ".xlsx"
	case "pdf":
		contentType = contentTypePDF
		err = export.WritePDF(&buf, table)
		filename += ".pdf"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported formato: " + format})
		return
	}

	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func priceRows(prices []domain.EstablishmentPrice) [][]any {
	rows := make([][]any, 0, len(prices))
	for _, p := range prices {
		rows = append(rows, []any{
			p.Establishment.Name,
			p.Establishment.Neighborhood,
			p.Establishment.City,
			p.Observation.Value,
			p.Observation.CollectedAt,
		})
	}
	return rows
}

var priceColumns = []string{"Estabelecimento", "Bairro", "Cidade", "Valor", "Data da Coleta"}

func renderReport(c *gin.Context, report *usecase.ComparativeReport) {
	format := c.DefaultQuery("formato", "json")
	if format == "json" {
		c.JSON(http.StatusOK, report)
		return
	}

	table := export.Table{
		Title:   "Comparativo de Preços: " + report.Product.Description,
		Columns: priceColumns,
		Rows:    priceRows(report.Prices),
	}
	renderTable(c, format, fmt.Sprintf("comparativo-produto-%d", report.Product.ID), table)
}

func renderHistory(c *gin.Context, productID int64, history []domain.EstablishmentPrice) {
	format := c.DefaultQuery("formato", "json")
	if format == "json" {
		c.JSON(http.StatusOK, history)
		return
	}

	table := export.Table{
		Title:   "Histórico de Preços",
		Columns: priceColumns,
		Rows:    priceRows(history),
	}
	renderTable(c, format, fmt.Sprintf("historico-produto-%d", productID), table)
}

func renderBasket(c *gin.Context, comparison *usecase.BasketComparison) {
	format := c.DefaultQuery("formato", "json")
	if format == "json" {
		c.JSON(http.StatusOK, comparison)
		return
	}

	rows := make([][]any, 0, len(comparison.Establishments))
	for _, total := range comparison.Establishments {
		rows = append(rows, []any{
			total.Establishment.Name,
			total.Establishment.Neighborhood,
			total.Establishment.City,
			total.Total,
			fmt.Sprintf("%d/%d", total.ItemsFound, total.TotalItems),
		})
	}

	table := export.Table{
		Title:   "Comparativo da Lista: " + comparison.List.Name,
		Columns: []string{"Estabelecimento", "Bairro", "Cidade", "Total", "Itens Encontrados"},
		Rows:    rows,
	}
	renderTable(c, format, fmt.Sprintf("comparativo-lista-%d", comparison.List.ID), table)
}
