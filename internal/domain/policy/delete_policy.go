// Package policy contiene las reglas de permisos por rol que no dependen de infraestructura.
package policy

import (
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// Ventanas de borrado de comprobantes por rol.
const (
	ManagerDeleteWindow = 7 * 24 * time.Hour
	StaffDeleteWindow   = 24 * time.Hour
)

// Nombres de política expuestos al cliente.
const (
	PolicyAdminUnrestricted = "admin-unrestricted"
	PolicyManagerWindow     = "manager-7-days"
	PolicyStaffWindow       = "staff-24-hours"
	PolicyNoPermission      = "no-permission"
)

// Decision resultado de evaluar la política de borrado.
// Cuando Allowed es false, Reason explica por qué el control queda deshabilitado.
type Decision struct {
	Allowed   bool
	Policy    string
	Reason    string
	Remaining time.Duration // tiempo restante de la ventana (0 si no aplica o ya venció)
}

// CanDeleteReceipt decide si role puede borrar un comprobante creado en createdAt.
// admin siempre; manager mientras now <= createdAt+7d; staff mientras now <= createdAt+1d; resto nunca.
func CanDeleteReceipt(role string, createdAt, now time.Time) Decision {
	switch role {
	case entity.RoleAdmin:
		return Decision{Allowed: true, Policy: PolicyAdminUnrestricted}
	case entity.RoleManager:
		return windowDecision(PolicyManagerWindow, "el gerente solo puede borrar dentro de los 7 días", createdAt, now, ManagerDeleteWindow)
	case entity.RoleStaff:
		return windowDecision(PolicyStaffWindow, "el personal solo puede borrar dentro de las 24 horas", createdAt, now, StaffDeleteWindow)
	default:
		return Decision{Policy: PolicyNoPermission, Reason: "no tiene permiso para borrar"}
	}
}

func windowDecision(name, rule string, createdAt, now time.Time, window time.Duration) Decision {
	deadline := createdAt.Add(window)
	if now.After(deadline) {
		return Decision{
			Policy: name,
			Reason: fmt.Sprintf("%s (ventana vencida hace %s)", rule, humanDuration(now.Sub(deadline))),
		}
	}
	return Decision{Allowed: true, Policy: name, Remaining: deadline.Sub(now)}
}

// humanDuration formatea una duración en días/horas/minutos.
func humanDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
