// Package session mantiene la identidad del operador (token, rol, usuario, correo)
// en dos ámbitos: durable ("recordarme") y efímero (proceso).
package session

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Inventario-console/pkg/jwt"
)

// Claves persistidas en cada ámbito.
const (
	KeyToken    = "token"
	KeyRole     = "role"
	KeyUsername = "username"
	KeyEmail    = "email"
)

var keys = []string{KeyToken, KeyRole, KeyUsername, KeyEmail}

// Motivos de cambio de sesión.
const (
	ReasonRestored     = "restored"
	ReasonLogin        = "login"
	ReasonLogout       = "logout"
	ReasonUnauthorized = "unauthorized"
	ReasonExpired      = "expired"
)

// Profile identidad del operador autenticado.
type Profile struct {
	Token    string `json:"-"`
	Role     string `json:"role"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Event notificación de cambio de estado.
type Event struct {
	Authenticated bool
	Reason        string
	Profile       Profile
}

// Session estado explícito de autenticación. Seguro para uso concurrente.
type Session struct {
	durable   Store
	ephemeral Store
	now       func() time.Time

	mu        sync.RWMutex
	profile   Profile
	remember  bool
	listeners []func(Event)
}

// Option configura la sesión.
type Option func(*Session)

// WithClock reloj alternativo (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New crea una sesión vacía sobre los dos ámbitos. Llamar Init para restaurar.
func New(durable, ephemeral Store, opts ...Option) *Session {
	s := &Session{durable: durable, ephemeral: ephemeral, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init restaura el perfil: primero el ámbito durable, luego el efímero.
// Un token JWT vencido se descarta y se limpian ambos ámbitos.
func (s *Session) Init() error {
	p, remember, err := s.restore()
	if err != nil {
		return err
	}
	if p.Token == "" {
		return nil
	}
	if info, err := pkgjwt.Inspect(p.Token); err == nil {
		if info.Expired(s.now()) {
			return s.clear(ReasonExpired)
		}
		if p.Role == "" {
			p.Role = info.Role
		}
	}
	s.mu.Lock()
	s.profile = p
	s.remember = remember
	s.mu.Unlock()
	s.notify(Event{Authenticated: true, Reason: ReasonRestored, Profile: p})
	return nil
}

func (s *Session) restore() (Profile, bool, error) {
	for i, st := range []Store{s.durable, s.ephemeral} {
		p, err := read(st)
		if err != nil {
			return Profile{}, false, err
		}
		if p.Token != "" {
			return p, i == 0, nil
		}
	}
	return Profile{}, false, nil
}

func read(st Store) (Profile, error) {
	vals := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok, err := st.Get(k)
		if err != nil {
			return Profile{}, fmt.Errorf("session: leer %s: %w", k, err)
		}
		if ok {
			vals[k] = v
		}
	}
	return Profile{Token: vals[KeyToken], Role: vals[KeyRole], Username: vals[KeyUsername], Email: vals[KeyEmail]}, nil
}

func write(st Store, p Profile) error {
	for k, v := range map[string]string{KeyToken: p.Token, KeyRole: p.Role, KeyUsername: p.Username, KeyEmail: p.Email} {
		if err := st.Set(k, v); err != nil {
			return fmt.Errorf("session: guardar %s: %w", k, err)
		}
	}
	return nil
}

func wipe(st Store) error {
	var errs []error
	for _, k := range keys {
		if err := st.Delete(k); err != nil {
			errs = append(errs, fmt.Errorf("session: borrar %s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

// Login guarda el perfil en el ámbito durable (remember) o en el efímero, y limpia el otro.
func (s *Session) Login(p Profile, remember bool) error {
	if p.Token == "" {
		return fmt.Errorf("session: token vacío")
	}
	target, other := s.ephemeral, s.durable
	if remember {
		target, other = s.durable, s.ephemeral
	}
	if err := wipe(other); err != nil {
		return err
	}
	if err := write(target, p); err != nil {
		return err
	}
	s.mu.Lock()
	s.profile = p
	s.remember = remember
	s.mu.Unlock()
	s.notify(Event{Authenticated: true, Reason: ReasonLogin, Profile: p})
	return nil
}

// Logout limpia ambos ámbitos.
func (s *Session) Logout() error { return s.clear(ReasonLogout) }

// Invalidate limpia ambos ámbitos tras un 401 del backend.
// Es idempotente: varias respuestas 401 concurrentes notifican una sola vez.
func (s *Session) Invalidate() error {
	if !s.Authenticated() {
		return nil
	}
	return s.clear(ReasonUnauthorized)
}

func (s *Session) clear(reason string) error {
	err := errors.Join(wipe(s.durable), wipe(s.ephemeral))
	s.mu.Lock()
	was := s.profile.Token != ""
	s.profile = Profile{}
	s.remember = false
	s.mu.Unlock()
	if was || reason == ReasonExpired {
		s.notify(Event{Authenticated: false, Reason: reason})
	}
	return err
}

// Profile perfil actual y si hay sesión.
func (s *Session) Profile() (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile, s.profile.Token != ""
}

// Token bearer actual ("" sin sesión).
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Token
}

// Role rol actual normalizado ("" sin sesión).
func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.NormalizeRole(s.profile.Role)
}

// Authenticated hay un token en alguno de los ámbitos.
func (s *Session) Authenticated() bool { return s.Token() != "" }

// Remembered la sesión vive en el ámbito durable.
func (s *Session) Remembered() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remember
}

// OnChange registra un listener. Se invoca fuera del lock, en la goroutine que causó el cambio.
func (s *Session) OnChange(fn func(Event)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Session) notify(ev Event) {
	s.mu.RLock()
	ls := slices.Clone(s.listeners)
	s.mu.RUnlock()
	for _, fn := range ls {
		fn(ev)
	}
}
