package ports

import (
	"context"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
)

// ReceiptPrinter define el puerto de salida para la versión imprimible de un comprobante.
// Cualquier adaptador (Maroto, HTML, mock) debe implementar esta interfaz.
type ReceiptPrinter interface {
	// RenderReceipt devuelve el documento listo para descargar (PDF en la implementación por defecto).
	RenderReceipt(ctx context.Context, receipt dto.ReceiptDetail) ([]byte, error)
}

// InventoryExporter exporta las filas visibles del informe de existencias a una hoja de cálculo.
type InventoryExporter interface {
	ExportInventory(ctx context.Context, rows []dto.InventoryRow) ([]byte, error)
}
