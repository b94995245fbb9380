package dto

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

// StaffRow miembro del personal para listado y detalle.
type StaffRow struct {
	ID        string    `json:"id"`
	StaffCode string    `json:"staff_code"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Birthday  string    `json:"birthday,omitempty"` // AAAA-MM-DD
	CreatedAt time.Time `json:"created_at"`
}

// ToStaffRow entity → display.
func ToStaffRow(u entity.User) StaffRow {
	row := StaffRow{
		ID:        u.ID,
		StaffCode: u.StaffCode,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	if u.Birthday != nil {
		row.Birthday = u.Birthday.Format("2006-01-02")
	}
	return row
}

// CreateStaffRequest alta de personal. StaffCode vacío se asigna automáticamente.
type CreateStaffRequest struct {
	StaffCode       string `json:"staff_code"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
	Birthday        string `json:"birthday"`   // AAAA-MM-DD
	CreatedAt       string `json:"created_at"` // AAAA-MM-DD, vacío = hoy
}

// UpdateStaffRequest edición de personal (sin contraseña).
type UpdateStaffRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Birthday  string `json:"birthday"`
	CreatedAt string `json:"created_at"`
}

// ToWrite valida y convierte el alta. El código ya debe estar asignado.
func (r CreateStaffRequest) ToWrite() (repository.UserWrite, error) {
	if r.Password == "" {
		return repository.UserWrite{}, fmt.Errorf("%w: la contraseña es obligatoria", domain.ErrInvalidInput)
	}
	if r.Password != r.ConfirmPassword {
		return repository.UserWrite{}, fmt.Errorf("%w: las contraseñas no coinciden", domain.ErrInvalidInput)
	}
	w, err := staffWrite(r.Username, r.Email, r.Phone, r.Role, r.Birthday, r.CreatedAt)
	if err != nil {
		return w, err
	}
	w.StaffCode = strings.TrimSpace(r.StaffCode)
	w.Password = r.Password
	return w, nil
}

// ToWrite valida y convierte la edición.
func (r UpdateStaffRequest) ToWrite() (repository.UserWrite, error) {
	return staffWrite(r.Username, r.Email, r.Phone, r.Role, r.Birthday, r.CreatedAt)
}

func staffWrite(username, email, phone, role, birthday, createdAt string) (repository.UserWrite, error) {
	w := repository.UserWrite{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Phone:    strings.TrimSpace(phone),
		Role:     strings.ToLower(strings.TrimSpace(role)),
	}
	if w.Username == "" {
		return w, fmt.Errorf("%w: el usuario es obligatorio", domain.ErrInvalidInput)
	}
	if w.Email != "" {
		if _, err := mail.ParseAddress(w.Email); err != nil {
			return w, fmt.Errorf("%w: correo %q", domain.ErrInvalidInput, w.Email)
		}
	}
	if w.Role == "" {
		w.Role = entity.RoleStaff
	}
	if !entity.ValidRole(w.Role) {
		return w, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	var err error
	if w.Birthday, err = parseDay(birthday, time.UTC); err != nil {
		return w, err
	}
	if w.CreatedAt, err = parseDay(createdAt, time.UTC); err != nil {
		return w, err
	}
	return w, nil
}

// LoginRequest credenciales del formulario de acceso.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// SessionResponse estado de la sesión local.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	Username      string `json:"username,omitempty"`
	Email         string `json:"email,omitempty"`
	Remembered    bool   `json:"remembered"`
}
