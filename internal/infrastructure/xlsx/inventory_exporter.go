// Package xlsx exporta el informe de existencias a una hoja de cálculo.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
)

// Nombre de la hoja, del archivo descargado y tipo MIME.
const (
	SheetName   = "TonKho"
	FileName    = "ton_kho.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headers = []interface{}{"Código", "Producto", "Marca", "Categoría", "Unidad", "Precio de importación", "Existencias", "Valor"}

// InventoryExporter implementa ports.InventoryExporter con excelize.
type InventoryExporter struct{}

// NewInventoryExporter construye el exportador.
func NewInventoryExporter() *InventoryExporter { return &InventoryExporter{} }

// ExportInventory una fila por producto, en el orden recibido. Etiquetas vacías se muestran como "---".
func (e *InventoryExporter) ExportInventory(ctx context.Context, rows []dto.InventoryRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "H1", bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, r := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		price, _ := r.ImportPrice.Float64()
		value, _ := r.Value.Float64()
		cells := []interface{}{
			r.Code, r.Name, dash(r.Brand), dash(r.Category), dash(r.Unit), price, r.Stock, value,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+1, err)
		}
	}
	if len(rows) > 0 {
		last := len(rows) + 1
		if err := f.SetCellStyle(SheetName, "F2", fmt.Sprintf("H%d", last), money); err != nil {
			return nil, fmt.Errorf("xlsx: estilo: %w", err)
		}
	}
	_ = f.SetColWidth(SheetName, "A", "A", 14)
	_ = f.SetColWidth(SheetName, "B", "B", 32)
	_ = f.SetColWidth(SheetName, "C", "H", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func dash(s string) string {
	if s == "" {
		return "---"
	}
	return s
}
