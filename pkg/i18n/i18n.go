// Package i18n catálogo de mensajes de la consola y formato localizado de números y montos.
package i18n

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

// Claves de mensajes mostrados al operador.
const (
	MsgLoginRequired      = "login_required"
	MsgLoginFailed        = "login_failed"
	MsgBackendUnavailable = "backend_unavailable"
	MsgInternal           = "internal_error"
	MsgCreateFailed       = "create_failed"
	MsgUpdateFailed       = "update_failed"
	MsgDeleteFailed       = "delete_failed"
	MsgConfirmDelete      = "confirm_delete"
	MsgNotFound           = "not_found"
	MsgForbidden          = "forbidden"
	MsgInvalidInput       = "invalid_input"
	MsgUnreadCount        = "unread_count"
)

var supported = []language.Tag{language.Spanish, language.English, language.Vietnamese}

var messages = map[language.Tag]map[string]string{
	language.Spanish: {
		MsgLoginRequired:      "Debe iniciar sesión",
		MsgLoginFailed:        "Usuario o contraseña incorrectos",
		MsgBackendUnavailable: "No se pudo contactar al servidor",
		MsgInternal:           "Ocurrió un error inesperado",
		MsgCreateFailed:       "No se pudo crear %s",
		MsgUpdateFailed:       "No se pudo actualizar %s",
		MsgDeleteFailed:       "No se pudo eliminar %s",
		MsgConfirmDelete:      "¿Confirma que desea eliminar %s?",
		MsgNotFound:           "No encontrado",
		MsgForbidden:          "No tiene permiso para esta acción",
		MsgInvalidInput:       "Datos inválidos",
		MsgUnreadCount:        "%d notificaciones sin leer",
	},
	language.English: {
		MsgLoginRequired:      "Please sign in",
		MsgLoginFailed:        "Wrong username or password",
		MsgBackendUnavailable: "Could not reach the server",
		MsgInternal:           "An unexpected error occurred",
		MsgCreateFailed:       "Could not create %s",
		MsgUpdateFailed:       "Could not update %s",
		MsgDeleteFailed:       "Could not delete %s",
		MsgConfirmDelete:      "Delete %s?",
		MsgNotFound:           "Not found",
		MsgForbidden:          "You are not allowed to do this",
		MsgInvalidInput:       "Invalid data",
		MsgUnreadCount:        "%d unread notifications",
	},
	language.Vietnamese: {
		MsgLoginRequired:      "Vui lòng đăng nhập",
		MsgLoginFailed:        "Sai tên đăng nhập hoặc mật khẩu",
		MsgBackendUnavailable: "Không thể kết nối máy chủ",
		MsgInternal:           "Đã xảy ra lỗi không mong muốn",
		MsgCreateFailed:       "Không thể tạo %s",
		MsgUpdateFailed:       "Không thể cập nhật %s",
		MsgDeleteFailed:       "Không thể xóa %s",
		MsgConfirmDelete:      "Bạn có chắc muốn xóa %s?",
		MsgNotFound:           "Không tìm thấy",
		MsgForbidden:          "Bạn không có quyền thực hiện thao tác này",
		MsgInvalidInput:       "Dữ liệu không hợp lệ",
		MsgUnreadCount:        "%d thông báo chưa đọc",
	},
}

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Spanish))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic("i18n: " + err.Error())
			}
		}
	}
	return b
}

// Translator traduce claves y formatea cifras para un idioma. Seguro entre goroutines.
type Translator struct {
	tag language.Tag
	p   *message.Printer
}

// New crea un traductor para lang ("es", "en", "vi"...). Idiomas no soportados caen a español.
func New(lang string) *Translator {
	tag := language.Spanish
	if parsed, err := language.Parse(lang); err == nil {
		matcher := language.NewMatcher(supported)
		_, idx, conf := matcher.Match(parsed)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Translator{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// Lang etiqueta BCP 47 en uso.
func (t *Translator) Lang() string { return t.tag.String() }

// T traduce key con argumentos al estilo fmt.
func (t *Translator) T(key string, args ...any) string {
	return t.p.Sprintf(key, args...)
}

// Int entero con separador de miles del idioma.
func (t *Translator) Int(n int) string {
	return t.p.Sprint(number.Decimal(n))
}

// Money monto sin decimales con separador de miles (los precios del almacén son enteros).
func (t *Translator) Money(d decimal.Decimal) string {
	f, _ := d.Round(0).Float64()
	return t.p.Sprint(number.Decimal(f, number.MaxFractionDigits(0)))
}
