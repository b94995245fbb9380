package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User representa un miembro del personal administrado desde la consola.
type User struct {
	ID        string
	StaffCode string // código único (STF001, STF002, ...)
	Username  string
	Email     string
	Phone     string
	Birthday  *time.Time
	Role      string // admin, manager, staff
	CreatedAt time.Time
}

// ValidRole indica si el rol pertenece al conjunto conocido.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// NormalizeRole pasa el rol a minúsculas y resuelve alias del backend ("management" → manager).
func NormalizeRole(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	if r == "management" {
		return RoleManager
	}
	return r
}
