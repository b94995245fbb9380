package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductAPI)(nil)

// ProductAPI implementa ProductRepository sobre /products.
type ProductAPI struct {
	c *Client
}

// NewProductAPI crea el adaptador.
func NewProductAPI(c *Client) *ProductAPI { return &ProductAPI{c: c} }

func (a *ProductAPI) decode(o object) (*entity.Product, error) {
	return toProduct(o, a.c.baseURL)
}

func (a *ProductAPI) List(ctx context.Context) ([]*entity.Product, error) {
	return a.listAt(ctx, "/products")
}

func (a *ProductAPI) ListByLocation(ctx context.Context, locationID string) ([]*entity.Product, error) {
	return a.listAt(ctx, "/products/location/"+url.PathEscape(locationID))
}

func (a *ProductAPI) listAt(ctx context.Context, path string) ([]*entity.Product, error) {
	objs, err := a.c.list(ctx, path)
	if err != nil {
		return nil, err
	}
	out, err := mapList(objs, a.decode)
	if err != nil {
		return nil, wrapDecode(http.MethodGet, path, err)
	}
	return out, nil
}

func (a *ProductAPI) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	path := "/products/" + url.PathEscape(id)
	o, err := a.c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	p, err := mapOne(o, a.decode)
	if err != nil {
		return nil, wrapDecode(http.MethodGet, path, err)
	}
	return p, nil
}

func (a *ProductAPI) Create(ctx context.Context, in repository.ProductWrite) (*entity.Product, error) {
	return a.save(ctx, http.MethodPost, "/products", in)
}

func (a *ProductAPI) Update(ctx context.Context, id string, in repository.ProductWrite) (*entity.Product, error) {
	return a.save(ctx, http.MethodPut, "/products/"+url.PathEscape(id), in)
}

func (a *ProductAPI) Delete(ctx context.Context, id string) error {
	return a.c.delete(ctx, "/products/"+url.PathEscape(id))
}

// productPayload parte "product" del multipart. Precio y stock viajan como números.
type productPayload struct {
	ProductCode string      `json:"productCode"`
	Name        string      `json:"name"`
	CategoryID  string      `json:"categoryId,omitempty"`
	BrandID     string      `json:"brandId,omitempty"`
	UnitID      string      `json:"unitId,omitempty"`
	LocationID  string      `json:"locationId,omitempty"`
	ImportPrice json.Number `json:"importPrice"`
	Stock       int         `json:"stock"`
}

func (a *ProductAPI) save(ctx context.Context, method, path string, in repository.ProductWrite) (*entity.Product, error) {
	body, contentType, err := productMultipart(in)
	if err != nil {
		return nil, fmt.Errorf("backend: armar multipart %s %s: %w", method, path, err)
	}
	o, err := a.c.one(ctx, request{method: method, path: path, body: body, contentType: contentType})
	if err != nil {
		return nil, err
	}
	p, err := mapOne(o, a.decode)
	if err != nil {
		return nil, wrapDecode(method, path, err)
	}
	return p, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func productMultipart(in repository.ProductWrite) (*bytes.Buffer, string, error) {
	price := strings.TrimSpace(in.ImportPrice)
	if price == "" {
		price = "0"
	}
	payload, err := json.Marshal(productPayload{
		ProductCode: in.Code,
		Name:        in.Name,
		CategoryID:  in.CategoryID,
		BrandID:     in.BrandID,
		UnitID:      in.UnitID,
		LocationID:  in.LocationID,
		ImportPrice: json.Number(price),
		Stock:       in.Stock,
	})
	if err != nil {
		return nil, "", err
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="product"; filename="blob"`)
	h.Set("Content-Type", "application/json")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(payload); err != nil {
		return nil, "", err
	}

	if img := in.Image; img != nil && len(img.Data) > 0 {
		ct := img.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="imageFile"; filename="%s"`, quoteEscaper.Replace(img.Filename)))
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
