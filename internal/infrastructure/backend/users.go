package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

var _ repository.UserRepository = (*UserAPI)(nil)

// UserAPI implementa UserRepository sobre /users.
type UserAPI struct {
	c   *Client
	now func() time.Time
}

// NewUserAPI crea el adaptador.
func NewUserAPI(c *Client) *UserAPI { return &UserAPI{c: c, now: time.Now} }

type userPayload struct {
	StaffCode string  `json:"staff_code,omitempty"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone,omitempty"`
	Password  string  `json:"password,omitempty"`
	Role      string  `json:"role"`
	Birthday  *string `json:"birthday"`
	CreatedAt *string `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at"`
}

// midnightUTC fechas de calendario: el backend las espera como YYYY-MM-DDT00:00:00Z.
func midnightUTC(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02") + "T00:00:00Z"
	return &s
}

func (a *UserAPI) payload(in repository.UserWrite) userPayload {
	return userPayload{
		StaffCode: in.StaffCode,
		Username:  in.Username,
		Email:     in.Email,
		Phone:     in.Phone,
		Password:  in.Password,
		Role:      in.Role,
		Birthday:  midnightUTC(in.Birthday),
		CreatedAt: midnightUTC(in.CreatedAt),
		UpdatedAt: a.now().UTC().Format(time.RFC3339),
	}
}

func (a *UserAPI) List(ctx context.Context) ([]*entity.User, error) {
	objs, err := a.c.list(ctx, "/users")
	if err != nil {
		return nil, err
	}
	out, err := mapList(objs, toUser)
	if err != nil {
		return nil, wrapDecode(http.MethodGet, "/users", err)
	}
	return out, nil
}

func (a *UserAPI) GetByID(ctx context.Context, id string) (*entity.User, error) {
	path := "/users/" + url.PathEscape(id)
	o, err := a.c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	u, err := mapOne(o, toUser)
	if err != nil {
		return nil, wrapDecode(http.MethodGet, path, err)
	}
	return u, nil
}

func (a *UserAPI) Create(ctx context.Context, in repository.UserWrite) (*entity.User, error) {
	return a.save(ctx, http.MethodPost, "/users", in)
}

func (a *UserAPI) Update(ctx context.Context, id string, in repository.UserWrite) (*entity.User, error) {
	return a.save(ctx, http.MethodPut, "/users/"+url.PathEscape(id), in)
}

func (a *UserAPI) save(ctx context.Context, method, path string, in repository.UserWrite) (*entity.User, error) {
	o, err := a.c.write(ctx, method, path, a.payload(in))
	if err != nil {
		return nil, err
	}
	u, err := mapOne(o, toUser)
	if err != nil {
		return nil, wrapDecode(method, path, err)
	}
	return u, nil
}

func (a *UserAPI) Delete(ctx context.Context, id string) error {
	return a.c.delete(ctx, "/users/"+url.PathEscape(id))
}
