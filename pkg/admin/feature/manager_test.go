package feature

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"licensewatch-admin/internal/dto"
	"licensewatch-admin/internal/model"
	"licensewatch-admin/internal/pkg/logger"
	"licensewatch-admin/internal/repository/unitofwork"
	"licensewatch-admin/internal/testutil"
	"licensewatch-admin/pkg/admin/events"
	"licensewatch-admin/pkg/admin/validation"
	pkgEvents "licensewatch-admin/pkg/events"
	"licensewatch-admin/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	okPrefix  = "<p class='green-text'>&#10004; "
	errPrefix = "<p class='red-text'>&#10006; "
)

type recordingSink struct {
	mu     sync.Mutex
	events []pkgEvents.Event
}

func (s *recordingSink) Publish(ctx context.Context, event pkgEvents.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, e := range s.events {
		out = append(out, e.EventType())
	}
	return out
}

type fixture struct {
	db      *gorm.DB
	manager *Manager
	sink    *recordingSink
	ctx     context.Context
}

func newFixture(t *testing.T, rowsPerPage int) *fixture {
	t.Helper()
	sink := &recordingSink{}
	log := logger.NewNopLogger()
	return &fixture{
		db: testutil.NewSQLiteDB(t),
		manager: NewManager(
			rowsPerPage,
			validation.New(),
			events.NewAuditPublisher(sink, log),
			metrics.NewCollector(prometheus.NewRegistry()),
			log,
		),
		sink: sink,
		ctx:  context.Background(),
	}
}

func (f *fixture) uow() unitofwork.UnitOfWork {
	return unitofwork.NewRepositoryFactory(f.db).NewUnitOfWork(f.ctx)
}

func (f *fixture) add(t *testing.T, name, label string, showInLists, isTracked bool) uint {
	t.Helper()
	res := f.manager.AddOrEdit(f.ctx, f.uow(), dto.SaveFeatureRequest{
		Id:          "new",
		Name:        name,
		Label:       label,
		ShowInLists: dto.Checkbox(showInLists),
		IsTracked:   dto.Checkbox(isTracked),
		Page:        "1",
	})
	require.True(t, strings.HasPrefix(res.Message, okPrefix), res.Message)

	var m model.Feature
	require.NoError(t, f.db.Where("name = ?", name).Order("id DESC").First(&m).Error)
	return m.Id
}

func (f *fixture) count(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Feature{}).Count(&n).Error)
	return n
}

func (f *fixture) flags(t *testing.T) map[uint]model.Feature {
	t.Helper()
	var rows []model.Feature
	require.NoError(t, f.db.Order("id ASC").Find(&rows).Error)
	out := make(map[uint]model.Feature, len(rows))
	for _, r := range rows {
		out[r.Id] = r
	}
	return out
}

func strPtr(s string) *string { return &s }

func TestAddThenGetRoundTrip(t *testing.T) {
	f := newFixture(t, 10)

	id := f.add(t, "F1", "", true, false)

	res := f.manager.GetByID(f.ctx, f.uow(), fmt.Sprint(id))
	require.NotNil(t, res.Feature, res.Message)
	assert.Equal(t, "F1", res.Feature.Name)
	assert.Equal(t, "", res.Feature.Label)
	assert.True(t, res.Feature.ShowInLists)
	assert.False(t, res.Feature.IsTracked)

	var stored model.Feature
	require.NoError(t, f.db.First(&stored, id).Error)
	assert.Nil(t, stored.Label)
	assert.Equal(t, int16(1), stored.ShowInLists)
	assert.Equal(t, int16(0), stored.IsTracked)
}

func TestAddOrEditMessages(t *testing.T) {
	f := newFixture(t, 10)

	res := f.manager.AddOrEdit(f.ctx, f.uow(), dto.SaveFeatureRequest{Id: "new", Name: "  MATLAB  ", Label: "Mathworks", Page: "4"})
	assert.Equal(t, okPrefix+"MATLAB (Mathworks) successfully added.", res.Message)
	assert.Equal(t, 4, res.Page)

	var m model.Feature
	require.NoError(t, f.db.First(&m).Error)

	res = f.manager.AddOrEdit(f.ctx, f.uow(), dto.SaveFeatureRequest{
		Id:        fmt.Sprint(m.Id),
		Name:      "Simulink",
		IsTracked: true,
		Page:      "x",
	})
	assert.Equal(t, okPrefix+"Simulink successfully updated.", res.Message)
	assert.Equal(t, 1, res.Page)

	got := f.manager.GetByID(f.ctx, f.uow(), fmt.Sprint(m.Id))
	require.NotNil(t, got.Feature)
	assert.Equal(t, "Simulink", got.Feature.Name)
	assert.Equal(t, "", got.Feature.Label)
	assert.False(t, got.Feature.ShowInLists)
	assert.True(t, got.Feature.IsTracked)

	assert.Equal(t, []string{events.FeatureSaved, events.FeatureSaved}, f.sink.types())
}

func TestAddOrEditEscapesMessage(t *testing.T) {
	f := newFixture(t, 10)

	res := f.manager.AddOrEdit(f.ctx, f.uow(), dto.SaveFeatureRequest{Id: "new", Name: "<script>", Page: "1"})
	assert.Equal(t, okPrefix+"&lt;script&gt; successfully added.", res.Message)

	var m model.Feature
	require.NoError(t, f.db.First(&m).Error)
	assert.Equal(t, "<script>", m.Name)
}

func TestAddOrEditRejectionLeavesStoreUnchanged(t *testing.T) {
	f := newFixture(t, 10)
	f.add(t, "existing", "", true, true)
	before := f.count(t)

	tests := []struct {
		name string
		req  dto.SaveFeatureRequest
		want string
	}{
		{"non numeric id", dto.SaveFeatureRequest{Id: "abc", Name: "X", Page: "3"}, errPrefix + "Invalid feature ID \"abc\""},
		{"empty id", dto.SaveFeatureRequest{Id: "", Name: "X", Page: "3"}, errPrefix + "Invalid feature ID \"\""},
		{"escaped id", dto.SaveFeatureRequest{Id: "<1>", Name: "X", Page: "3"}, errPrefix + "Invalid feature ID \"&lt;1&gt;\""},
		{"blank name", dto.SaveFeatureRequest{Id: "new", Name: "   ", Page: "3"}, errPrefix + "Feature name cannot be blank"},
		{"id overflow", dto.SaveFeatureRequest{Id: "99999999999999999999999", Name: "X", Page: "3"}, errPrefix + "Invalid feature ID \"99999999999999999999999\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.manager.AddOrEdit(f.ctx, f.uow(), tt.req)
			assert.Equal(t, tt.want, res.Message)
			assert.Equal(t, 3, res.Page)
			assert.Equal(t, before, f.count(t))
		})
	}

	assert.Equal(t, []string{events.FeatureSaved}, f.sink.types())
}

func TestGetByIDNotFound(t *testing.T) {
	f := newFixture(t, 10)

	res := f.manager.GetByID(f.ctx, f.uow(), "12345")
	assert.Nil(t, res.Feature)
	assert.Equal(t, errPrefix+"DB returned empty set during feature lookup.", res.Message)

	for _, raw := range []string{"", "7a", "-7", " 7"} {
		res = f.manager.GetByID(f.ctx, f.uow(), raw)
		assert.Nil(t, res.Feature)
		assert.True(t, strings.HasPrefix(res.Message, errPrefix+"Invalid feature ID"), raw)
	}
}

func TestGetByIDBlankRowIsAbsent(t *testing.T) {
	f := newFixture(t, 10)
	require.NoError(t, f.db.Create(&model.Feature{Name: ""}).Error)

	var m model.Feature
	require.NoError(t, f.db.First(&m).Error)

	res := f.manager.GetByID(f.ctx, f.uow(), fmt.Sprint(m.Id))
	assert.Nil(t, res.Feature)
	assert.Equal(t, errPrefix+"DB returned empty set during feature lookup.", res.Message)
}

func TestToggleSingleIdempotent(t *testing.T) {
	f := newFixture(t, 10)
	id := f.add(t, "F1", "", false, false)
	req := dto.ToggleFeatureRequest{Id: fmt.Sprint(id), Col: "is_tracked", State: "1"}

	for i := 0; i < 2; i++ {
		res := f.manager.ToggleSingle(f.ctx, f.uow(), req)
		assert.Equal(t, "OK", res.Message)
		assert.Equal(t, int16(1), f.flags(t)[id].IsTracked)
		assert.Equal(t, int16(0), f.flags(t)[id].ShowInLists)
	}
}

func TestToggleSingleRejectsUnknownColumn(t *testing.T) {
	f := newFixture(t, 10)
	id := f.add(t, "F1", "", true, true)

	for _, col := range []string{"name", "id", "label", "is_tracked; DROP TABLE features", ""} {
		res := f.manager.ToggleSingle(f.ctx, f.uow(), dto.ToggleFeatureRequest{Id: fmt.Sprint(id), Col: col, State: "0"})
		assert.Equal(t, "Validation failed for checkbox toggle.", res.Message)
	}

	res := f.manager.ToggleSingle(f.ctx, f.uow(), dto.ToggleFeatureRequest{Id: fmt.Sprint(id), Col: "is_tracked", State: "2"})
	assert.Equal(t, "Validation failed for checkbox toggle.", res.Message)

	row := f.flags(t)[id]
	assert.Equal(t, "F1", row.Name)
	assert.Equal(t, int16(1), row.ShowInLists)
	assert.Equal(t, int16(1), row.IsTracked)
}

func TestToggleBulkOnlyTouchesPage(t *testing.T) {
	f := newFixture(t, 10)

	var ids []uint
	for i := 1; i <= 25; i++ {
		ids = append(ids, f.add(t, fmt.Sprintf("feature-%02d", i), "", true, true))
	}

	res := f.manager.ToggleBulk(f.ctx, f.uow(), dto.TogglePageRequest{Col: "show_in_lists", Val: "0", Page: "2", Search: strPtr("")})
	require.Equal(t, "OK", res.Message)

	rows := f.flags(t)
	for i, id := range ids {
		ordinal := i + 1
		want := int16(1)
		if ordinal >= 11 && ordinal <= 20 {
			want = 0
		}
		assert.Equal(t, want, rows[id].ShowInLists, "ordinal %d", ordinal)
		assert.Equal(t, int16(1), rows[id].IsTracked, "ordinal %d", ordinal)
	}

	assert.Contains(t, f.sink.types(), events.FeaturePageToggled)
}

func TestToggleBulkFollowsSearch(t *testing.T) {
	f := newFixture(t, 2)

	alpha1 := f.add(t, "alpha-1", "", false, false)
	beta1 := f.add(t, "beta-1", "", false, false)
	alpha2 := f.add(t, "ALPHA-2", "", false, false)
	beta2 := f.add(t, "beta-2", "", false, false)
	alpha3 := f.add(t, "alpha-3", "", false, false)

	// page 1 of "^alpha" is alpha-1 and ALPHA-2
	res := f.manager.ToggleBulk(f.ctx, f.uow(), dto.TogglePageRequest{Col: "is_tracked", Val: "1", Page: "1", Search: strPtr("^alpha")})
	require.Equal(t, "OK", res.Message)

	rows := f.flags(t)
	assert.Equal(t, int16(1), rows[alpha1].IsTracked)
	assert.Equal(t, int16(1), rows[alpha2].IsTracked)
	assert.Equal(t, int16(0), rows[alpha3].IsTracked)
	assert.Equal(t, int16(0), rows[beta1].IsTracked)
	assert.Equal(t, int16(0), rows[beta2].IsTracked)
}

func TestToggleBulkRejections(t *testing.T) {
	f := newFixture(t, 10)
	f.add(t, "F1", "", true, true)

	reqs := []dto.TogglePageRequest{
		{Col: "name", Val: "0", Page: "1", Search: strPtr("")},
		{Col: "show_in_lists", Val: "true", Page: "1", Search: strPtr("")},
		{Col: "show_in_lists", Val: "0", Page: "one", Search: strPtr("")},
		{Col: "show_in_lists", Val: "0", Page: "1"},
		{Col: "show_in_lists", Val: "0", Page: "99999999999999999999", Search: strPtr("")},
		{Col: "show_in_lists", Val: "0", Page: "0", Search: strPtr("")},
		{Col: "show_in_lists", Val: "0", Page: "000", Search: strPtr("")},
	}
	for _, req := range reqs {
		res := f.manager.ToggleBulk(f.ctx, f.uow(), req)
		assert.Equal(t, "Validation failed for check/uncheck column", res.Message)
	}

	for _, row := range f.flags(t) {
		assert.Equal(t, int16(1), row.ShowInLists)
	}
}

func TestDeleteThenNotFound(t *testing.T) {
	f := newFixture(t, 10)
	var ids []uint
	for i := 1; i <= 8; i++ {
		ids = append(ids, f.add(t, fmt.Sprintf("F%d", i), "", true, true))
	}
	target := ids[6]

	res := f.manager.Delete(f.ctx, f.uow(), dto.DeleteFeatureRequest{Id: fmt.Sprint(target), Name: strPtr("anything"), Page: "1"})
	assert.Equal(t, fmt.Sprintf("%sSuccessfully deleted ID %d: anything", okPrefix, target), res.Message)
	assert.Equal(t, 1, res.Page)

	lookup := f.manager.GetByID(f.ctx, f.uow(), fmt.Sprint(target))
	assert.Nil(t, lookup.Feature)
	assert.Equal(t, errPrefix+"DB returned empty set during feature lookup.", lookup.Message)
	assert.Equal(t, int64(7), f.count(t))
}

func TestDeleteRejection(t *testing.T) {
	f := newFixture(t, 10)
	f.add(t, "F1", "", true, true)

	reqs := []dto.DeleteFeatureRequest{
		{Id: "1", Page: "4"},
		{Id: "x", Name: strPtr("F1"), Page: "4"},
		{Id: "1", Name: strPtr("F1"), Page: ""},
	}
	for _, req := range reqs {
		res := f.manager.Delete(f.ctx, f.uow(), req)
		assert.Equal(t, errPrefix+"Request to delete a feature has failed validation.", res.Message)
		assert.Equal(t, 1, res.Page)
	}
	assert.Equal(t, int64(1), f.count(t))
}

func TestDeleteCascadesUsage(t *testing.T) {
	f := newFixture(t, 10)
	id := f.add(t, "F1", "", true, true)

	server := model.Server{Name: "27000@lic.example.com", Label: "main", IsActive: 1}
	require.NoError(t, f.db.Create(&server).Error)
	for i := 0; i < 3; i++ {
		usage := model.Usage{FeatureId: id, ServerId: server.Id, NumUsers: i, Time: time.Now()}
		require.NoError(t, f.db.Omit(clause.Associations).Create(&usage).Error)
	}

	res := f.manager.Delete(f.ctx, f.uow(), dto.DeleteFeatureRequest{Id: fmt.Sprint(id), Name: strPtr("F1"), Page: "2"})
	require.True(t, strings.HasPrefix(res.Message, okPrefix), res.Message)
	assert.Equal(t, 2, res.Page)

	var remaining int64
	require.NoError(t, f.db.Model(&model.Usage{}).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestListCountConsistency(t *testing.T) {
	f := newFixture(t, 4)
	for i := 1; i <= 11; i++ {
		f.add(t, fmt.Sprintf("app-%02d", i), "", true, true)
	}
	for i := 1; i <= 6; i++ {
		f.add(t, fmt.Sprintf("tool-%02d", i), "", true, true)
	}

	for _, search := range []string{"", "^app", "TOOL", "-0[1-3]$", "nomatch"} {
		t.Run("search "+search, func(t *testing.T) {
			first := f.manager.List(f.ctx, f.uow(), dto.FeatureListRequest{Page: "1", Search: search})
			require.Empty(t, first.Message)

			seen := 0
			var lastId uint
			for page := 1; page <= first.LastPage; page++ {
				res := f.manager.List(f.ctx, f.uow(), dto.FeatureListRequest{Page: fmt.Sprint(page), Search: search})
				require.Empty(t, res.Message)
				assert.Equal(t, first.LastPage, res.LastPage)
				assert.LessOrEqual(t, len(res.Features), 4)
				for _, feat := range res.Features {
					assert.Greater(t, feat.Id, lastId)
					lastId = feat.Id
				}
				seen += len(res.Features)
			}

			assert.Equal(t, LastPage(int64(seen), 4), first.LastPage)

			beyond := f.manager.List(f.ctx, f.uow(), dto.FeatureListRequest{Page: fmt.Sprint(first.LastPage + 1), Search: search})
			assert.Empty(t, beyond.Features)
			assert.Equal(t, first.LastPage, beyond.LastPage)
		})
	}
}

func TestListEmptySearch(t *testing.T) {
	f := newFixture(t, 10)
	f.add(t, "F1", "", true, true)

	res := f.manager.List(f.ctx, f.uow(), dto.FeatureListRequest{Page: "1", Search: "zzz"})
	assert.Empty(t, res.Message)
	assert.NotNil(t, res.Features)
	assert.Empty(t, res.Features)
	assert.Equal(t, 1, res.LastPage)
}

func TestListInvalidPatternReportsStoreError(t *testing.T) {
	f := newFixture(t, 10)
	f.add(t, "F1", "", true, true)

	res := f.manager.List(f.ctx, f.uow(), dto.FeatureListRequest{Page: "1", Search: "("})
	assert.True(t, strings.HasPrefix(res.Message, errPrefix+"DB Error: "), res.Message)
	assert.Empty(t, res.Features)
	assert.Equal(t, 1, res.LastPage)
}

func TestListPageDefaults(t *testing.T) {
	f := newFixture(t, 2)
	for i := 1; i <= 3; i++ {
		f.add(t, fmt.Sprintf("F%d", i), "", true, true)
	}

	for _, raw := range []string{"", "0", "-1", "abc"} {
		res := f.manager.List(f.ctx, f.uow(), dto.FeatureListRequest{Page: raw})
		require.Len(t, res.Features, 2, "page %q", raw)
		assert.Equal(t, "F1", res.Features[0].Name)
		assert.Equal(t, 2, res.LastPage)
	}
}

func TestListOversizedPageIsEmpty(t *testing.T) {
	f := newFixture(t, 10)
	for i := 1; i <= 3; i++ {
		f.add(t, fmt.Sprintf("F%d", i), "", true, true)
	}

	res := f.manager.List(f.ctx, f.uow(), dto.FeatureListRequest{Page: "99999999999999999999"})
	assert.Empty(t, res.Message)
	assert.NotNil(t, res.Features)
	assert.Empty(t, res.Features)
	assert.Equal(t, 1, res.LastPage)
}

func TestDeletePageZeroFallsBackToFirstPage(t *testing.T) {
	f := newFixture(t, 10)
	id := f.add(t, "F1", "", true, true)

	res := f.manager.Delete(f.ctx, f.uow(), dto.DeleteFeatureRequest{Id: fmt.Sprint(id), Name: strPtr("F1"), Page: "0"})
	require.True(t, strings.HasPrefix(res.Message, okPrefix), res.Message)
	assert.Equal(t, 1, res.Page)
}
