package listview_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/application/listview"
	"github.com/jhoicas/Inventario-console/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type item struct {
	ID       string
	Name     string
	Code     string
	Category string
	Price    decimal.Decimal
	Stock    int
	At       time.Time
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleItems() []item {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	return []item{
		{ID: "1", Name: "Arroz", Code: "P001", Category: "Granos", Price: d("20000"), Stock: 5, At: base},
		{ID: "2", Name: "Azúcar", Code: "P002", Category: "Granos", Price: d("18000"), Stock: 0, At: base.AddDate(0, 0, -1)},
		{ID: "3", Name: "Leche", Code: "P003", Category: "Lácteos", Price: d("30000"), Stock: 10, At: base.AddDate(0, -1, 0)},
		{ID: "4", Name: "Queso", Code: "P004", Category: "Lácteos", Price: d("55000"), Stock: 2, At: base.AddDate(0, -1, -3)},
		{ID: "5", Name: "arroz integral", Code: "P005", Category: "Granos", Price: d("25000"), Stock: 0, At: base.AddDate(0, -2, 0)},
		{ID: "6", Name: "Café", Code: "P006", Category: "Bebidas", Price: d("60000"), Stock: 7, At: base.AddDate(0, 0, -2)},
		{ID: "7", Name: "Té", Code: "P007", Category: "Bebidas", Price: d("15000"), Stock: 1, At: base.AddDate(0, 0, -5)},
	}
}

func itemSpec(g listview.Grouping, pageSize int) listview.Spec[item] {
	return listview.Spec[item]{
		Name:         "items",
		ID:           func(i item) string { return i.ID },
		SearchFields: []func(item) string{func(i item) string { return i.Name }, func(i item) string { return i.Code }},
		Filters: map[string]listview.FilterFunc[item]{
			"category": listview.Equals(func(i item) string { return i.Category }),
			"stock": listview.Status(map[string]listview.Predicate[item]{
				"in":  func(i item) bool { return i.Stock > 0 },
				"out": func(i item) bool { return i.Stock == 0 },
			}),
		},
		SortKeys: map[string]listview.SortKey[item]{
			"name":  listview.StringKey(func(i item) string { return i.Name }),
			"price": listview.NumberKey(func(i item) decimal.Decimal { return i.Price }),
			"stock": listview.IntKey(func(i item) int { return i.Stock }),
			"date":  listview.TimeKey(func(i item) time.Time { return i.At }),
		},
		DefaultSort:     listview.SortState{Field: "name", Dir: listview.Asc},
		Timestamp:       func(i item) time.Time { return i.At },
		Grouping:        g,
		DefaultPageSize: pageSize,
		Location:        time.UTC,
	}
}

func loadedState(t *testing.T, g listview.Grouping, pageSize int, rows []item) *listview.State[item] {
	t.Helper()
	st := listview.NewState(itemSpec(g, pageSize), func(context.Context) ([]item, error) { return rows, nil })
	require.NoError(t, st.Ensure(context.Background()))
	return st
}

func ids(rows []item) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Funciones puras
// ──────────────────────────────────────────────────────────────────────────────

func TestFilter_EsInterseccionDePredicados(t *testing.T) {
	rows := sampleItems()
	granos := func(i item) bool { return i.Category == "Granos" }
	conStock := func(i item) bool { return i.Stock > 0 }

	both := listview.Filter(rows, granos, conStock)
	onlyA := listview.Filter(rows, granos)
	onlyB := listview.Filter(rows, conStock)

	for _, r := range both {
		assert.Contains(t, ids(onlyA), r.ID)
		assert.Contains(t, ids(onlyB), r.ID)
	}
	assert.Equal(t, []string{"1"}, ids(both))
	assert.Len(t, listview.Filter(rows, nil), len(rows), "un predicado nil no restringe")
}

func TestSearch_SinDistinguirMayusculasEnVariosCampos(t *testing.T) {
	rows := sampleItems()
	byName := func(i item) string { return i.Name }
	byCode := func(i item) string { return i.Code }

	got := listview.Filter(rows, listview.Search("ARROZ", byName, byCode))
	assert.Equal(t, []string{"1", "5"}, ids(got))

	got = listview.Filter(rows, listview.Search("p007", byName, byCode))
	assert.Equal(t, []string{"7"}, ids(got))

	assert.Nil(t, listview.Search("   ", byName))
}

func TestEquals_AllNoRestringe(t *testing.T) {
	f := listview.Equals(func(i item) string { return i.Category })
	assert.Nil(t, f("all"))
	assert.Nil(t, f(""))
	require.NotNil(t, f("Bebidas"))
	assert.Len(t, listview.Filter(sampleItems(), f("Bebidas")), 2)
}

func TestDateRange_IncluyeDiaCompleto(t *testing.T) {
	rows := sampleItems()
	from := time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	p := listview.DateRange(&from, &to, time.UTC, func(i item) time.Time { return i.At })

	got := listview.Filter(rows, p)
	assert.ElementsMatch(t, []string{"1", "2", "6", "7"}, ids(got),
		"el 10/03 a las 12:00 entra aunque 'hasta' sea el 10/03 a medianoche")
}

func TestSort_EsIdempotenteYEstable(t *testing.T) {
	rows := sampleItems()
	key := listview.StringKey(func(i item) string { return i.Category })

	once := listview.Sort(rows, key, listview.Asc)
	twice := listview.Sort(once, key, listview.Asc)
	assert.Equal(t, ids(once), ids(twice))
	// Empates conservan el orden de entrada.
	assert.Equal(t, []string{"6", "7", "1", "2", "5", "3", "4"}, ids(once))

	desc := listview.Sort(rows, key, listview.Desc)
	assert.Equal(t, []string{"3", "4", "1", "2", "5", "6", "7"}, ids(desc))
	assert.Equal(t, "1", rows[0].ID, "la entrada no se modifica")
}

func TestSort_PrecioDescEsInversoDeAsc(t *testing.T) {
	key := listview.NumberKey(func(i item) decimal.Decimal { return i.Price })
	asc := ids(listview.Sort(sampleItems(), key, listview.Asc))
	desc := ids(listview.Sort(sampleItems(), key, listview.Desc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
	assert.Equal(t, "7", asc[0])
	assert.Equal(t, "6", desc[0])
}

func TestParseDirection(t *testing.T) {
	dir, err := listview.ParseDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, listview.Desc, dir)

	dir, err = listview.ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, listview.Asc, dir)

	_, err = listview.ParseDirection("up")
	assert.Error(t, err)
}

func TestPaginate_CubreLaSecuenciaExactamente(t *testing.T) {
	for n := 0; n <= 23; n++ {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		for _, size := range []int{1, 5, 10, 25} {
			var joined []int
			total := listview.TotalPages(n, size)
			for p := 1; p <= total; p++ {
				page := listview.Paginate(rows, p, size)
				assert.LessOrEqual(t, len(page.Items), size)
				joined = append(joined, page.Items...)
			}
			if n == 0 {
				assert.Equal(t, 0, total)
				continue
			}
			assert.Equal(t, rows, joined, fmt.Sprintf("n=%d size=%d", n, size))
		}
	}
}

func TestPaginate_PaginaFueraDeRangoSeAjusta(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5, 6}
	p := listview.Paginate(rows, 9, 5)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, []int{6}, p.Items)
	assert.Equal(t, 2, p.TotalPages)

	empty := listview.Paginate([]int{}, 3, 5)
	assert.Equal(t, 1, empty.Page)
	assert.Empty(t, empty.Items)
}

func TestGroupByMonth_MasRecientePrimero(t *testing.T) {
	secs := listview.GroupByMonth(sampleItems(), func(i item) time.Time { return i.At }, time.UTC)
	require.Len(t, secs, 3)
	assert.Equal(t, "2024-03", secs[0].Key)
	assert.Equal(t, "03/2024", secs[0].Label)
	assert.Equal(t, []string{"1", "2", "6", "7"}, ids(secs[0].Items))
	assert.Equal(t, "01/2024", secs[2].Label)
}

// ──────────────────────────────────────────────────────────────────────────────
// State
// ──────────────────────────────────────────────────────────────────────────────

// Siete productos, búsqueda con dos coincidencias, cinco por página → una sola página de 2 filas.
func TestState_BusquedaReduceAUnaPagina(t *testing.T) {
	st := loadedState(t, listview.GroupNone, 5, sampleItems())

	snap := st.Snapshot()
	assert.Equal(t, 2, snap.Page.TotalPages)
	assert.Len(t, snap.Page.Items, 5)

	require.NoError(t, st.SetQuery(listview.Query{Search: "arroz"}))
	snap = st.Snapshot()
	assert.Equal(t, 1, snap.Page.TotalPages)
	assert.Equal(t, 2, snap.FilteredTotal)
	assert.Len(t, snap.Page.Items, 2)
}

func TestState_CambiosDeConsultaVuelvenAPagina1(t *testing.T) {
	st := loadedState(t, listview.GroupNone, 2, sampleItems())

	st.SetPage(3)
	assert.Equal(t, 3, st.Snapshot().Page.Page)
	require.NoError(t, st.SetQuery(listview.Query{Filters: map[string]string{"category": "all"}}))
	assert.Equal(t, 1, st.Snapshot().Page.Page)

	st.SetPage(2)
	require.NoError(t, st.SetSort("price", listview.Desc))
	assert.Equal(t, 1, st.Snapshot().Page.Page)

	st.SetPage(2)
	require.NoError(t, st.SetPageSize(3))
	assert.Equal(t, 1, st.Snapshot().Page.Page)
}

func TestState_FiltrosCombinados(t *testing.T) {
	st := loadedState(t, listview.GroupNone, 10, sampleItems())
	require.NoError(t, st.SetQuery(listview.Query{Filters: map[string]string{"category": "Granos", "stock": "out"}}))
	assert.Equal(t, []string{"5", "2"}, ids(st.Visible()), "orden por nombre: arroz integral < azúcar")
}

func TestState_FiltroDesconocidoEsEntradaInvalida(t *testing.T) {
	st := loadedState(t, listview.GroupNone, 10, sampleItems())
	err := st.SetQuery(listview.Query{Filters: map[string]string{"color": "rojo"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = st.SetSort("peso", listview.Asc)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestState_ToggleSortAlternaDireccion(t *testing.T) {
	st := loadedState(t, listview.GroupNone, 10, sampleItems())
	require.NoError(t, st.ToggleSort("price"))
	assert.Equal(t, listview.Asc, st.Snapshot().Sort.Dir)
	require.NoError(t, st.ToggleSort("price"))
	assert.Equal(t, listview.Desc, st.Snapshot().Sort.Dir)
	require.NoError(t, st.ToggleSort("stock"))
	assert.Equal(t, listview.SortState{Field: "stock", Dir: listview.Asc}, st.Snapshot().Sort)
}

func TestState_BorrarUltimoElementoDeUltimaPaginaRetrocede(t *testing.T) {
	st := loadedState(t, listview.GroupNone, 3, sampleItems())
	st.SetPage(3)
	snap := st.Snapshot()
	require.Equal(t, 3, snap.Page.Page)
	require.Len(t, snap.Page.Items, 1)

	assert.True(t, st.Remove(snap.Page.Items[0].ID))
	snap = st.Snapshot()
	assert.Equal(t, 2, snap.Page.Page)
	assert.Equal(t, 2, snap.Page.TotalPages)
	assert.Len(t, st.Rows(), 6)

	assert.False(t, st.Remove("no-existe"))
}

func TestState_ReplaceUsaRepresentacionDelServidor(t *testing.T) {
	st := loadedState(t, listview.GroupNone, 10, sampleItems())
	updated := sampleItems()[0]
	updated.Name = "Arroz Premium"
	require.True(t, st.Replace(updated))

	got, ok := st.Find("1")
	require.True(t, ok)
	assert.Equal(t, "Arroz Premium", got.Name)
}

func TestState_EnsureCargaUnaVezYMarkStaleRecarga(t *testing.T) {
	var calls atomic.Int32
	st := listview.NewState(itemSpec(listview.GroupNone, 5), func(context.Context) ([]item, error) {
		calls.Add(1)
		return sampleItems(), nil
	})
	ctx := context.Background()

	require.NoError(t, st.Ensure(ctx))
	require.NoError(t, st.Ensure(ctx))
	assert.Equal(t, int32(1), calls.Load())

	st.MarkStale()
	require.NoError(t, st.Ensure(ctx))
	assert.Equal(t, int32(2), calls.Load())

	require.NoError(t, st.Refresh(ctx))
	assert.Equal(t, int32(3), calls.Load())
}

func TestState_ErrorDeCargaNoMarcaCargado(t *testing.T) {
	boom := errors.New("backend caído")
	st := listview.NewState(itemSpec(listview.GroupNone, 5), func(context.Context) ([]item, error) {
		return nil, boom
	})
	err := st.Ensure(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, st.Snapshot().Loaded)
}

func TestState_CargasConcurrentesCompartenPeticion(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	st := listview.NewState(itemSpec(listview.GroupNone, 5), func(context.Context) ([]item, error) {
		calls.Add(1)
		<-release
		return sampleItems(), nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, st.Ensure(context.Background()))
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
	assert.Len(t, st.Rows(), 7)
}

func TestState_MarkStaleDuranteCargaNoSeUneALaAnterior(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	st := listview.NewState(itemSpec(listview.GroupNone, 10), func(context.Context) ([]item, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return sampleItems()[:6], nil
		}
		return sampleItems(), nil
	})

	first := make(chan error, 1)
	go func() { first <- st.Ensure(context.Background()) }()
	<-started

	// Alta confirmada mientras la primera carga sigue en vuelo.
	st.MarkStale()
	require.NoError(t, st.Ensure(context.Background()))
	assert.Equal(t, int32(2), calls.Load())
	assert.Len(t, st.Rows(), 7)

	close(release)
	require.NoError(t, <-first)
	assert.Len(t, st.Rows(), 7, "la carga anterior no pisa filas más recientes")

	require.NoError(t, st.Ensure(context.Background()))
	assert.Equal(t, int32(2), calls.Load(), "no queda nada pendiente")
}

func TestState_RefreshNoReutilizaCargaEnVuelo(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	st := listview.NewState(itemSpec(listview.GroupNone, 10), func(context.Context) ([]item, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return nil, nil
		}
		return sampleItems(), nil
	})

	first := make(chan error, 1)
	go func() { first <- st.Ensure(context.Background()) }()
	<-started

	require.NoError(t, st.Refresh(context.Background()))
	assert.Equal(t, int32(2), calls.Load())
	close(release)
	require.NoError(t, <-first)
	assert.Len(t, st.Rows(), 7)
}

func TestState_ResetDescartaCargaEnVuelo(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	st := listview.NewState(itemSpec(listview.GroupNone, 5), func(context.Context) ([]item, error) {
		close(started)
		<-release
		return sampleItems(), nil
	})

	done := make(chan error, 1)
	go func() { done <- st.Ensure(context.Background()) }()
	<-started
	st.Reset()
	close(release)
	require.NoError(t, <-done)

	snap := st.Snapshot()
	assert.False(t, snap.Loaded)
	assert.Empty(t, st.Rows())
}

func TestState_AgrupaPorMesYPaginaCadaMes(t *testing.T) {
	st := loadedState(t, listview.GroupMonthThenPaginate, 2, sampleItems())
	require.NoError(t, st.SetSort("date", listview.Desc))

	snap := st.Snapshot()
	require.Len(t, snap.Sections, 3)
	march := snap.Sections[0]
	assert.Equal(t, "03/2024", march.Label)
	require.NotNil(t, march.Pagination)
	assert.Equal(t, 2, march.Pagination.TotalPages)
	assert.Equal(t, []string{"1", "2"}, ids(march.Items))

	require.NoError(t, st.SetGroupPage("2024-03", 2))
	snap = st.Snapshot()
	assert.Equal(t, []string{"6", "7"}, ids(snap.Sections[0].Items))
	assert.Equal(t, 1, snap.Sections[1].Pagination.Page, "los demás meses no se mueven")

	// Borrar en la última página de un mes retrocede solo ese mes.
	require.True(t, st.Remove("7"))
	require.True(t, st.Remove("6"))
	snap = st.Snapshot()
	assert.Equal(t, 1, snap.Sections[0].Pagination.Page)

	assert.ErrorIs(t, st.SetGroupPage("1999-01", 1), domain.ErrNotFound)
}

func TestState_PaginaYLuegoAgrupaPorMesYDia(t *testing.T) {
	st := loadedState(t, listview.PaginateThenGroupMonthDay, 3, sampleItems())
	require.NoError(t, st.SetSort("date", listview.Desc))

	snap := st.Snapshot()
	assert.Equal(t, 3, snap.Page.TotalPages)
	require.Len(t, snap.Sections, 1)
	assert.Equal(t, "03/2024", snap.Sections[0].Label)
	require.Len(t, snap.Sections[0].Days, 3)
	assert.Equal(t, "10/03/2024", snap.Sections[0].Days[0].Label)
}

func TestState_RangoDeFechasInvertidoEsInvalido(t *testing.T) {
	st := loadedState(t, listview.GroupNone, 10, sampleItems())
	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	assert.ErrorIs(t, st.SetQuery(listview.Query{From: &from, To: &to}), domain.ErrInvalidInput)
}

func TestState_Distinct(t *testing.T) {
	st := loadedState(t, listview.GroupNone, 10, sampleItems())
	assert.Equal(t, []string{"Granos", "Lácteos", "Bebidas"}, st.Distinct(func(i item) string { return i.Category }))
}

func TestState_PageSizesAdmitidos(t *testing.T) {
	spec := itemSpec(listview.GroupNone, 25)
	spec.PageSizes = []int{25, 30, 50}
	st := listview.NewState(spec, func(context.Context) ([]item, error) { return nil, nil })
	assert.NoError(t, st.SetPageSize(30))
	assert.ErrorIs(t, st.SetPageSize(7), domain.ErrInvalidInput)
}
