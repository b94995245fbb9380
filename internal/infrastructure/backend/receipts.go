package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptAPI)(nil)

// ReceiptAPI implementa ReceiptRepository sobre /import-receipts o /export-receipts.
type ReceiptAPI struct {
	c        *Client
	kind     entity.ReceiptKind
	resource string
}

// NewImportReceiptAPI comprobantes de entrada.
func NewImportReceiptAPI(c *Client) *ReceiptAPI {
	return &ReceiptAPI{c: c, kind: entity.ReceiptImport, resource: "/import-receipts"}
}

// NewExportReceiptAPI comprobantes de salida.
func NewExportReceiptAPI(c *Client) *ReceiptAPI {
	return &ReceiptAPI{c: c, kind: entity.ReceiptExport, resource: "/export-receipts"}
}

func (a *ReceiptAPI) Kind() entity.ReceiptKind { return a.kind }

func (a *ReceiptAPI) decode(o object) (*entity.Receipt, error) { return toReceipt(o, a.kind) }

func (a *ReceiptAPI) List(ctx context.Context) ([]*entity.Receipt, error) {
	objs, err := a.c.list(ctx, a.resource)
	if err != nil {
		return nil, err
	}
	out, err := mapList(objs, a.decode)
	if err != nil {
		return nil, wrapDecode(http.MethodGet, a.resource, err)
	}
	return out, nil
}

func (a *ReceiptAPI) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	path := a.resource + "/" + url.PathEscape(id)
	o, err := a.c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	r, err := mapOne(o, a.decode)
	if err != nil {
		return nil, wrapDecode(http.MethodGet, path, err)
	}
	return r, nil
}

// payload usa los nombres snake_case del backend: import_code/export_code, import_price/export_price.
func (a *ReceiptAPI) payload(in repository.ReceiptWrite) map[string]any {
	prefix := string(a.kind)
	details := make([]map[string]any, 0, len(in.Items))
	for _, it := range in.Items {
		details = append(details, map[string]any{
			"product_id":      it.ProductID,
			"quantity":        it.Quantity,
			prefix + "_price": json.Number(it.UnitPrice.String()),
		})
	}
	return map[string]any{
		prefix + "_code": in.Code,
		"created_by":     in.CreatedBy,
		"created_at":     in.CreatedAt.Format("2006-01-02"),
		"note":           in.Note,
		"details":        details,
	}
}

func (a *ReceiptAPI) Create(ctx context.Context, in repository.ReceiptWrite) (*entity.Receipt, error) {
	return a.save(ctx, http.MethodPost, a.resource, in)
}

func (a *ReceiptAPI) Update(ctx context.Context, id string, in repository.ReceiptWrite) (*entity.Receipt, error) {
	return a.save(ctx, http.MethodPut, a.resource+"/"+url.PathEscape(id), in)
}

func (a *ReceiptAPI) save(ctx context.Context, method, path string, in repository.ReceiptWrite) (*entity.Receipt, error) {
	o, err := a.c.write(ctx, method, path, a.payload(in))
	if err != nil {
		return nil, err
	}
	r, err := mapOne(o, a.decode)
	if err != nil {
		return nil, wrapDecode(method, path, err)
	}
	return r, nil
}

func (a *ReceiptAPI) Delete(ctx context.Context, id string) error {
	return a.c.delete(ctx, a.resource+"/"+url.PathEscape(id))
}
