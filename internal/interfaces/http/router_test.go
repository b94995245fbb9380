package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Inventario-console/internal/application/analytics"
	"github.com/jhoicas/Inventario-console/internal/application/auth"
	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/notification"
	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/internal/application/usecase"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/backend"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/Inventario-console/internal/interfaces/http"
	"github.com/jhoicas/Inventario-console/pkg/config"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Backend de almacén falso
// ──────────────────────────────────────────────────────────────────────────────

type warehouse struct {
	mu       sync.Mutex
	products []map[string]any
	imports  []map[string]any
	deleted  []string
	reads    []string
	// expired hace que todas las rutas protegidas respondan 401.
	expired bool
	// createStatus/createReply fuerzan la respuesta de POST /products cuando createStatus != 0.
	createStatus int
	createReply  any
}

func newWarehouse() *warehouse {
	names := []string{"Bút bi", "Cuaderno", "Tijeras", "Regla", "Lápiz", "Goma", "Carpeta"}
	w := &warehouse{}
	for i, n := range names {
		w.products = append(w.products, map[string]any{
			"id":           string(rune('a' + i)),
			"productCode":  "SP0" + string(rune('1'+i)),
			"name":         n,
			"categoryName": "Papelería",
			"brandName":    "Thiên Long",
			"unitName":     "Cái",
			"importPrice":  1000 * (i + 1),
			"stock":        i,
			"updatedAt":    "2026-10-01T08:00:00Z",
		})
	}
	now := time.Now().UTC()
	w.imports = []map[string]any{
		{"id": "r1", "importCode": "PNK-1", "createdBy": "ana", "createdAt": now.Add(-72 * time.Hour).Format(time.RFC3339),
			"details": []map[string]any{{"productId": "a", "productName": "Bút bi", "quantity": 2, "importPrice": 1000}}},
		{"id": "r2", "importCode": "PNK-2", "createdBy": "ana", "createdAt": now.Add(-2 * time.Hour).Format(time.RFC3339),
			"details": []map[string]any{{"productId": "b", "productName": "Cuaderno", "quantity": 1, "importPrice": 2000}}},
	}
	return w
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(v)
}

func (w *warehouse) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(rw http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["username"] != "ana" || in["password"] != "secret" {
			writeJSON(rw, http.StatusUnauthorized, map[string]string{"message": "Sai tên đăng nhập hoặc mật khẩu"})
			return
		}
		writeJSON(rw, http.StatusOK, map[string]string{"token": "tok-admin", "role": "ADMIN", "username": "ana", "email": "ana@kho.vn"})
	})
	mux.HandleFunc("GET /api/products", func(rw http.ResponseWriter, r *http.Request) {
		w.mu.Lock()
		defer w.mu.Unlock()
		writeJSON(rw, http.StatusOK, w.products)
	})
	mux.HandleFunc("POST /api/products", func(rw http.ResponseWriter, r *http.Request) {
		w.mu.Lock()
		status, reply := w.createStatus, w.createReply
		w.mu.Unlock()
		if status != 0 {
			writeJSON(rw, status, reply)
			return
		}
		writeJSON(rw, http.StatusCreated, map[string]any{"id": "z", "productCode": "SP99", "name": "Bút"})
	})
	mux.HandleFunc("DELETE /api/products/{id}", func(rw http.ResponseWriter, r *http.Request) {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.deleted = append(w.deleted, r.PathValue("id"))
		rw.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/import-receipts", func(rw http.ResponseWriter, r *http.Request) {
		writeJSON(rw, http.StatusOK, w.imports)
	})
	mux.HandleFunc("GET /api/import-receipts/{id}", func(rw http.ResponseWriter, r *http.Request) {
		for _, rc := range w.imports {
			if rc["id"] == r.PathValue("id") {
				writeJSON(rw, http.StatusOK, rc)
				return
			}
		}
		writeJSON(rw, http.StatusNotFound, map[string]string{"message": "Không tìm thấy phiếu nhập"})
	})
	mux.HandleFunc("DELETE /api/import-receipts/{id}", func(rw http.ResponseWriter, r *http.Request) {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.deleted = append(w.deleted, r.PathValue("id"))
		rw.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/history-logs/{id}", func(rw http.ResponseWriter, r *http.Request) {
		writeJSON(rw, http.StatusOK, map[string]any{"id": r.PathValue("id"), "username": "ana", "action": "Tạo phiếu nhập", "performedAt": "2026-10-18T09:00:00Z", "isRead": false})
	})
	mux.HandleFunc("PATCH /api/history-logs/{id}/read", func(rw http.ResponseWriter, r *http.Request) {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.reads = append(w.reads, r.PathValue("id"))
		rw.WriteHeader(http.StatusNoContent)
	})
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		w.mu.Lock()
		expired := w.expired
		w.mu.Unlock()
		if expired && r.URL.Path != "/api/login" {
			writeJSON(rw, http.StatusUnauthorized, map[string]string{"message": "token expired"})
			return
		}
		mux.ServeHTTP(rw, r)
	})
}

func (w *warehouse) expire() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.expired = true
}

func (w *warehouse) failCreate(status int, reply any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.createStatus, w.createReply = status, reply
}

func (w *warehouse) readIDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.reads...)
}

func (w *warehouse) deletedIDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.deleted...)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consola completa sobre el backend falso
// ──────────────────────────────────────────────────────────────────────────────

type console struct {
	app  *fiber.App
	sess *session.Session
	wh   *warehouse
}

func newConsole(t *testing.T) *console {
	t.Helper()
	wh := newWarehouse()
	srv := httptest.NewServer(wh.handler())
	t.Cleanup(srv.Close)

	log := logger.Nop()
	tr := i18n.New("es")
	loc := time.UTC
	sess := session.New(session.NewMemoryStore(), session.NewMemoryStore())
	require.NoError(t, sess.Init())

	client := backend.NewClient(config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, sess, log)
	products := backend.NewProductAPI(client)
	refs := backend.NewReferenceAPI(client)
	users := backend.NewUserAPI(client)
	imports := backend.NewImportReceiptAPI(client)
	exports := backend.NewExportReceiptAPI(client)
	logs := backend.NewHistoryLogAPI(client)
	printer := pdf.NewMarotoReceiptPrinter("Kho test", tr)

	productUC := usecase.NewProductUseCase(products, refs, xlsx.NewInventoryExporter(), tr, loc)
	staffUC := usecase.NewStaffUseCase(users, tr, loc)
	importUC := usecase.NewReceiptUseCase(imports, sess, printer, tr, loc)
	exportUC := usecase.NewReceiptUseCase(exports, sess, printer, tr, loc)
	logUC := usecase.NewHistoryLogUseCase(logs, sess, tr, loc)
	ws := usecase.NewWorkspace(productUC.ListView(), productUC.InventoryView(), staffUC.ListView(),
		importUC.ListView(), exportUC.ListView(), logUC.ListView())
	sess.OnChange(ws.OnSessionChange)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Session:      sess,
		Translator:   tr,
		Logger:       log,
		AuthUC:       auth.NewAuthUseCase(backend.NewAuthAPI(client), sess, log),
		Workspace:    ws,
		ProductUC:    productUC,
		StaffUC:      staffUC,
		ImportUC:     importUC,
		ExportUC:     exportUC,
		HistoryLogUC: logUC,
		ReferenceUC:  usecase.NewReferenceUseCase(refs, tr, productUC.ListView(), productUC.InventoryView()),
		DashboardUC:  appanalytics.NewDashboardUseCase(products, users, imports, exports, sess, loc),
		Poller:       notification.NewPoller(logUC, time.Hour, tr, log),
	})
	return &console{app: app, sess: sess, wh: wh}
}

// loginAs inicia sesión local directamente con el rol dado (sin pasar por el backend).
func (c *console) loginAs(t *testing.T, role string) {
	t.Helper()
	require.NoError(t, c.sess.Login(session.Profile{Token: "tok-" + role, Role: role, Username: "ana"}, false))
}

func (c *console) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

type productPage struct {
	FilteredTotal int `json:"filtered_total"`
	Pagination    struct {
		Page       int `json:"page"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
	Items []dto.ProductView `json:"items"`
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_LoginCorrectoGuardaRolEnMinusculas(t *testing.T) {
	c := newConsole(t)

	resp, raw := c.do(t, http.MethodPost, "/api/session/login", dto.LoginRequest{Username: "ana", Password: "secret", Remember: true})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	out := decode[dto.SessionResponse](t, raw)
	assert.True(t, out.Authenticated)
	assert.Equal(t, "admin", out.Role)
	assert.True(t, out.Remembered)
	assert.Equal(t, "tok-admin", c.sess.Token())
}

func TestSession_LoginRechazadoRetornaLoginFailed(t *testing.T) {
	c := newConsole(t)

	resp, raw := c.do(t, http.MethodPost, "/api/session/login", dto.LoginRequest{Username: "ana", Password: "mal"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "LOGIN_FAILED", decode[dto.ErrorResponse](t, raw).Code)
	assert.False(t, c.sess.Authenticated())
}

func TestSession_LoginRechazadoMuestraMensajeDelServidor(t *testing.T) {
	c := newConsole(t)

	_, raw := c.do(t, http.MethodPost, "/api/session/login", dto.LoginRequest{Username: "ana", Password: "mal"})
	assert.Equal(t, "Sai tên đăng nhập hoặc mật khẩu", decode[dto.ErrorResponse](t, raw).Message)
}

func TestSession_RutasProtegidasSinSesion(t *testing.T) {
	c := newConsole(t)

	resp, raw := c.do(t, http.MethodGet, "/api/views/products", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "/login", decode[dto.ErrorResponse](t, raw).Redirect)
}

func TestSession_401DelBackendCierraLaSesion(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "admin")
	c.wh.expire()

	resp, raw := c.do(t, http.MethodGet, "/api/views/products", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "LOGIN_REQUIRED", decode[dto.ErrorResponse](t, raw).Code)
	assert.False(t, c.sess.Authenticated(), "un 401 del backend limpia ambos ámbitos")

	_, raw = c.do(t, http.MethodGet, "/api/session", nil)
	assert.False(t, decode[dto.SessionResponse](t, raw).Authenticated)
}

// ──────────────────────────────────────────────────────────────────────────────
// Vistas
// ──────────────────────────────────────────────────────────────────────────────

func TestViews_ProductosPaginadosYOrdenadosPorNombre(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "staff")

	resp, raw := c.do(t, http.MethodGet, "/api/views/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	page := decode[productPage](t, raw)
	assert.Equal(t, 7, page.FilteredTotal)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "Bút bi", page.Items[0].Name)
}

func TestViews_BusquedaVuelveAPaginaUno(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "staff")

	resp, _ := c.do(t, http.MethodPut, "/api/views/products/pagination", dto.PaginationRequest{Page: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := c.do(t, http.MethodPut, "/api/views/products/query", dto.ViewQueryRequest{Search: "sp03"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	page := decode[productPage](t, raw)
	assert.Equal(t, 1, page.Pagination.Page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Tijeras", page.Items[0].Name)
}

func TestViews_FechaInvalidaRetorna400(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "admin")

	resp, raw := c.do(t, http.MethodPut, "/api/views/import-receipts/query", dto.ViewQueryRequest{From: "18/10/2026"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)
}

func TestViews_VistaDesconocida(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "admin")

	resp, _ := c.do(t, http.MethodGet, "/api/views/invoices", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestViews_PersonalRestringidoAStaff(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "staff")

	resp, _ := c.do(t, http.MethodGet, "/api/views/staff", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = c.do(t, http.MethodGet, "/api/staff/next-code", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestViews_BorrarSinConfirmarRetorna428(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "admin")

	resp, raw := c.do(t, http.MethodDelete, "/api/views/products/rows/c", nil)
	assert.Equal(t, http.StatusPreconditionRequired, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "CONFIRMATION_REQUIRED", out.Code)
	assert.Contains(t, out.Message, "Tijeras")
	assert.Empty(t, c.wh.deletedIDs(), "sin confirmación no se llama al backend")
}

func TestViews_BorrarConfirmadoQuitaLaFila(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "admin")

	resp, raw := c.do(t, http.MethodDelete, "/api/views/products/rows/c?confirm=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "/products", decode[dto.DeleteResult](t, raw).Redirect)
	assert.Equal(t, []string{"c"}, c.wh.deletedIDs())

	_, raw = c.do(t, http.MethodGet, "/api/views/products", nil)
	page := decode[productPage](t, raw)
	assert.Equal(t, 6, page.FilteredTotal)
	for _, p := range page.Items {
		assert.NotEqual(t, "c", p.ID)
	}
}

func TestViews_BorradoDeComprobanteNegadoPorPolitica(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "staff")

	resp, raw := c.do(t, http.MethodDelete, "/api/views/import-receipts/rows/r1?confirm=true", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "POLICY_DENIED", decode[dto.ErrorResponse](t, raw).Code)
	assert.Empty(t, c.wh.deletedIDs())

	resp, _ = c.do(t, http.MethodDelete, "/api/views/import-receipts/rows/r2?confirm=true", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "staff puede borrar dentro de las 24 horas")
	assert.Equal(t, []string{"r2"}, c.wh.deletedIDs())
}

// ──────────────────────────────────────────────────────────────────────────────
// Detalles y descargas
// ──────────────────────────────────────────────────────────────────────────────

func TestInventory_ExportaHojaDeCalculo(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "admin")

	resp, raw := c.do(t, http.MethodGet, "/api/inventory/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, xlsx.ContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), xlsx.FileName)
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")), "xlsx es un zip")
}

func TestReceipts_ImprimePDF(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "admin")

	resp, raw := c.do(t, http.MethodGet, "/api/import-receipts/r1/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

func TestHistoryLogs_MarcarLeidaSoloAdmin(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "manager")

	resp, _ := c.do(t, http.MethodPut, "/api/history-logs/h1/read", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	c.loginAs(t, "admin")
	resp, raw := c.do(t, http.MethodPut, "/api/history-logs/h1/read", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.True(t, decode[dto.HistoryLogView](t, raw).IsRead)
	assert.Equal(t, []string{"h1"}, c.wh.readIDs())
}

func TestReferences_TipoDesconocido(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "admin")

	resp, _ := c.do(t, http.MethodGet, "/api/references/suppliers", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDashboard_NoAdminRecibeTarjetasVacias(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "staff")

	resp, raw := c.do(t, http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	out := decode[dto.DashboardStats](t, raw)
	assert.False(t, out.Visible)
	assert.Zero(t, out.Products)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mensajes del servidor
// ──────────────────────────────────────────────────────────────────────────────

var newProduct = dto.ProductForm{Code: "SP99", Name: "Bút", ImportPrice: "1500", Stock: 3}

func TestProducts_CrearFallidoMuestraMensajeDelServidorTalCual(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "admin")
	c.wh.failCreate(http.StatusBadRequest, map[string]string{"message": "Mã sản phẩm đã tồn tại"})

	resp, raw := c.do(t, http.MethodPost, "/api/products", newProduct)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, "Mã sản phẩm đã tồn tại", out.Message)
}

func TestProducts_Error500DelBackendConservaSuMensaje(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "admin")
	c.wh.failCreate(http.StatusInternalServerError, map[string]string{"error": "Lỗi cơ sở dữ liệu"})

	resp, raw := c.do(t, http.MethodPost, "/api/products", newProduct)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "BACKEND_ERROR", out.Code)
	assert.Equal(t, "Lỗi cơ sở dữ liệu", out.Message)
}

func TestProducts_SinMensajeDelServidorUsaElLocalizado(t *testing.T) {
	c := newConsole(t)
	c.loginAs(t, "admin")
	c.wh.failCreate(http.StatusMethodNotAllowed, nil)

	resp, raw := c.do(t, http.MethodPost, "/api/products", newProduct)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "BACKEND_ERROR", out.Code)
	assert.Equal(t, "No se pudo crear Bút", out.Message)
	assert.NotContains(t, out.Message, "backend:")
}
