package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
)

type fakeIdentity struct {
	role     string
	username string
}

func (f fakeIdentity) Role() string { return f.role }

func (f fakeIdentity) Profile() (session.Profile, bool) {
	return session.Profile{Token: "tok", Role: f.role, Username: f.username}, f.username != ""
}

type fakeProducts struct {
	mu        sync.Mutex
	rows      []*entity.Product
	lists     int
	deleted   []string
	deleteErr error
	created   repository.ProductWrite
	updateOut *entity.Product
}

func (f *fakeProducts) List(context.Context) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return f.rows, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range f.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
}

func (f *fakeProducts) ListByLocation(_ context.Context, locationID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.rows {
		if p.LocationID == locationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) Create(_ context.Context, in repository.ProductWrite) (*entity.Product, error) {
	f.created = in
	p := &entity.Product{ID: "nuevo", Code: in.Code, Name: in.Name}
	f.rows = append(f.rows, p)
	return p, nil
}

func (f *fakeProducts) Update(_ context.Context, id string, in repository.ProductWrite) (*entity.Product, error) {
	return f.updateOut, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRefs struct {
	err error
}

func (f *fakeRefs) List(_ context.Context, kind entity.ReferenceKind) ([]*entity.Reference, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*entity.Reference{{Kind: kind, ID: string(kind) + "-1", Name: "Ref " + string(kind)}}, nil
}

func (f *fakeRefs) Create(_ context.Context, kind entity.ReferenceKind, in repository.ReferenceWrite) (*entity.Reference, error) {
	return &entity.Reference{Kind: kind, ID: "r1", Name: in.Name}, nil
}

func (f *fakeRefs) Update(_ context.Context, kind entity.ReferenceKind, id string, in repository.ReferenceWrite) (*entity.Reference, error) {
	return &entity.Reference{Kind: kind, ID: id, Name: in.Name}, nil
}

func (f *fakeRefs) Delete(context.Context, entity.ReferenceKind, string) error { return f.err }

type fakeUsers struct {
	rows    []*entity.User
	created repository.UserWrite
	updated repository.UserWrite
}

func (f *fakeUsers) List(context.Context) ([]*entity.User, error) { return f.rows, nil }

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.rows {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
}

func (f *fakeUsers) Create(_ context.Context, in repository.UserWrite) (*entity.User, error) {
	f.created = in
	return &entity.User{ID: "u-new", StaffCode: in.StaffCode, Username: in.Username}, nil
}

func (f *fakeUsers) Update(_ context.Context, id string, in repository.UserWrite) (*entity.User, error) {
	f.updated = in
	return &entity.User{ID: id, StaffCode: in.StaffCode, Username: in.Username, Role: in.Role}, nil
}

func (f *fakeUsers) Delete(context.Context, string) error { return nil }

type fakeReceipts struct {
	kind    entity.ReceiptKind
	rows    []*entity.Receipt
	created repository.ReceiptWrite
	deleted []string
}

func (f *fakeReceipts) Kind() entity.ReceiptKind { return f.kind }

func (f *fakeReceipts) List(context.Context) ([]*entity.Receipt, error) { return f.rows, nil }

func (f *fakeReceipts) GetByID(_ context.Context, id string) (*entity.Receipt, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: comprobante %s", domain.ErrNotFound, id)
}

func (f *fakeReceipts) Create(_ context.Context, in repository.ReceiptWrite) (*entity.Receipt, error) {
	f.created = in
	return &entity.Receipt{ID: "rc-new", Kind: f.kind, Code: in.Code}, nil
}

func (f *fakeReceipts) Update(_ context.Context, id string, in repository.ReceiptWrite) (*entity.Receipt, error) {
	return &entity.Receipt{ID: id, Kind: f.kind, Code: in.Code}, nil
}

func (f *fakeReceipts) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeLogs struct {
	rows   []*entity.HistoryLog
	reads  []string
	unread []string
}

func (f *fakeLogs) List(context.Context) ([]*entity.HistoryLog, error) { return f.rows, nil }

func (f *fakeLogs) ListUnread(context.Context) ([]*entity.HistoryLog, error) {
	var out []*entity.HistoryLog
	for _, l := range f.rows {
		if !l.IsRead {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLogs) GetByID(_ context.Context, id string) (*entity.HistoryLog, error) {
	for _, l := range f.rows {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeLogs) Create(_ context.Context, in repository.HistoryLogWrite) (*entity.HistoryLog, error) {
	return &entity.HistoryLog{ID: "l-new", Username: in.Username, Action: in.Action}, nil
}

func (f *fakeLogs) MarkRead(_ context.Context, id string) error {
	f.reads = append(f.reads, id)
	return nil
}

func (f *fakeLogs) MarkUnread(_ context.Context, id string) error {
	f.unread = append(f.unread, id)
	return nil
}

func (f *fakeLogs) Delete(context.Context, string) error { return nil }

func (f *fakeLogs) Subscribe(ctx context.Context, _ func(repository.HistoryLogEvent)) error {
	<-ctx.Done()
	return nil
}
