package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/store"
	"maintenance-system/pkg/types"
	"maintenance-system/pkg/utils"

	"go.uber.org/zap"
)

const dashboardCacheKey = "reports:dashboard"

// Метрики всегда считаются заново от текущего снимка, производные значения
// нигде не хранятся.

type ReportingServiceInterface interface {
	Dashboard(ctx context.Context) (*dto.DashboardDTO, error)
	InvalidateDashboard(ctx context.Context)
	KanbanBoard(search, team string) dto.KanbanBoardDTO
	ListRequests(filter types.Filter) ([]entities.MaintenanceRequest, uint64)
	FindRequest(id uint64) (entities.MaintenanceRequest, bool)
	ExportRequests(filter types.Filter) ([]byte, error)
}

type ReportingService struct {
	store    *store.MaintenanceStore
	cache    repositories.CacheRepositoryInterface
	logger   *zap.Logger
	now      func() time.Time
	cacheTTL time.Duration
}

func NewReportingService(
	st *store.MaintenanceStore,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	now func() time.Time,
	cacheTTL time.Duration,
) *ReportingService {
	if now == nil {
		now = time.Now
	}
	return &ReportingService{
		store:    st,
		cache:    cache,
		logger:   logger,
		now:      now,
		cacheTTL: cacheTTL,
	}
}

// Dashboard собирает все метрики страницы отчётов. Результат кешируется
// в Redis на короткий TTL, отказ кеша не роняет ответ.
func (s *ReportingService) Dashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	if cached, err := s.cache.Get(ctx, dashboardCacheKey); err == nil {
		var out dto.DashboardDTO
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return &out, nil
		}
		s.logger.Warn("повреждённый кеш дашборда, пересчитываем")
	}

	requests := s.store.Requests()
	now := s.now()
	out := &dto.DashboardDTO{
		KPIs:               ComputeKPIs(requests, now),
		StatusBreakdown:    StatusBreakdown(requests),
		PriorityBreakdown:  PriorityBreakdown(requests),
		TechnicianWorkload: TechnicianWorkload(requests),
		TrendSeries:        TrendSeries(requests),
		Tracker:            TrackerRows(requests, now),
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.cacheTTL); err != nil {
			s.logger.Warn("не удалось записать кеш дашборда", zap.Error(err))
		}
	}
	return out, nil
}

// InvalidateDashboard сбрасывает кеш после любой записи заявок.
func (s *ReportingService) InvalidateDashboard(ctx context.Context) {
	if err := s.cache.Del(ctx, dashboardCacheKey); err != nil {
		s.logger.Warn("не удалось сбросить кеш дашборда", zap.Error(err))
	}
}

// KanbanBoard — отфильтрованные заявки, разложенные по четырём колонкам.
func (s *ReportingService) KanbanBoard(search, team string) dto.KanbanBoardDTO {
	filtered := FilterRequests(s.store.Requests(), search, team)
	return dto.KanbanBoardDTO{Columns: GroupByStage(filtered)}
}

// ListRequests — плоский список с фильтром, сортировкой и пагинацией.
// Возвращает страницу и общее число подходящих заявок.
func (s *ReportingService) ListRequests(filter types.Filter) ([]entities.MaintenanceRequest, uint64) {
	out := FilterRequests(s.store.Requests(), filter.Search, filter.Team)
	// Ключи применяются с конца: сортировка стабильная, поэтому
	// первый ключ запроса оказывается основным.
	for i := len(filter.Sort) - 1; i >= 0; i-- {
		out = SortRequests(out, filter.Sort[i].Field, filter.Sort[i].Direction)
	}
	total := uint64(len(out))
	if filter.WithPagination {
		if filter.Offset >= len(out) {
			return []entities.MaintenanceRequest{}, total
		}
		out = out[filter.Offset:]
		if filter.Limit > 0 && filter.Limit < len(out) {
			out = out[:filter.Limit]
		}
	}
	return out, total
}

// FindRequest достаёт заявку из снимка по id.
func (s *ReportingService) FindRequest(id uint64) (entities.MaintenanceRequest, bool) {
	return s.store.FindRequest(id)
}

// ExportRequests — книга Excel по отфильтрованному списку.
func (s *ReportingService) ExportRequests(filter types.Filter) ([]byte, error) {
	requests := FilterRequests(s.store.Requests(), filter.Search, filter.Team)
	buf, err := BuildRequestsXLSX(requests)
	if err != nil {
		s.logger.Error("не удалось сформировать выгрузку заявок", zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

// FilterRequests: подстрока без учёта регистра по subject ИЛИ equipment,
// плюс точное совпадение команды ("All" пропускает всех). Относительный
// порядок сохраняется.
func FilterRequests(requests []entities.MaintenanceRequest, search, team string) []entities.MaintenanceRequest {
	needle := strings.ToLower(search)
	out := make([]entities.MaintenanceRequest, 0, len(requests))
	for _, req := range requests {
		if needle != "" &&
			!strings.Contains(strings.ToLower(req.Subject), needle) &&
			!strings.Contains(strings.ToLower(req.Equipment), needle) {
			continue
		}
		if team != "" && team != "All" && req.Team != team {
			continue
		}
		out = append(out, req)
	}
	return out
}

// GroupByStage раскладывает заявки по фиксированным стадиям. Пустые стадии
// дают пустую колонку, а не пропуск.
func GroupByStage(requests []entities.MaintenanceRequest) []dto.StageColumnDTO {
	columns := make([]dto.StageColumnDTO, len(entities.Stages))
	for i, stage := range entities.Stages {
		columns[i] = dto.StageColumnDTO{
			Stage:      stage,
			StageIndex: i,
			Requests:   []entities.MaintenanceRequest{},
		}
	}
	for _, req := range requests {
		idx := entities.StageIndex(req.Stage)
		if idx < 0 {
			continue
		}
		columns[idx].Requests = append(columns[idx].Requests, req)
	}
	return columns
}

// SortRequests — устойчивая сортировка по ключу. Равные элементы сохраняют
// исходный порядок, повторная сортировка по тому же ключу ничего не меняет.
func SortRequests(requests []entities.MaintenanceRequest, key, direction string) []entities.MaintenanceRequest {
	out := make([]entities.MaintenanceRequest, len(requests))
	copy(out, requests)

	less := requestLessFunc(key)
	if less == nil {
		return out
	}
	desc := strings.EqualFold(direction, "desc")
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func requestLessFunc(key string) func(a, b entities.MaintenanceRequest) bool {
	switch key {
	case "subject":
		return func(a, b entities.MaintenanceRequest) bool { return a.Subject < b.Subject }
	case "equipment":
		return func(a, b entities.MaintenanceRequest) bool { return a.Equipment < b.Equipment }
	case "team":
		return func(a, b entities.MaintenanceRequest) bool { return a.Team < b.Team }
	case "technician":
		return func(a, b entities.MaintenanceRequest) bool { return a.Technician < b.Technician }
	case "priority":
		return func(a, b entities.MaintenanceRequest) bool { return a.Priority < b.Priority }
	case "stage":
		return func(a, b entities.MaintenanceRequest) bool {
			return entities.StageIndex(a.Stage) < entities.StageIndex(b.Stage)
		}
	case "request_date":
		return func(a, b entities.MaintenanceRequest) bool { return a.RequestDate < b.RequestDate }
	case "scheduled_date":
		return func(a, b entities.MaintenanceRequest) bool { return a.ScheduledDate < b.ScheduledDate }
	case "worksheet":
		// Ключи-списки сравниваются по длине.
		return func(a, b entities.MaintenanceRequest) bool { return len(a.Worksheet) < len(b.Worksheet) }
	case "id":
		return func(a, b entities.MaintenanceRequest) bool { return a.ID < b.ID }
	default:
		return nil
	}
}

// TechnicianWorkload — число заявок на техника в порядке первого появления.
// Заявки без техника не учитываются.
func TechnicianWorkload(requests []entities.MaintenanceRequest) []types.CountByGroup {
	index := make(map[string]int)
	out := make([]types.CountByGroup, 0)
	for _, req := range requests {
		if req.Technician == "" {
			continue
		}
		if i, ok := index[req.Technician]; ok {
			out[i].Count++
			continue
		}
		index[req.Technician] = len(out)
		out = append(out, types.CountByGroup{GroupName: req.Technician, Count: 1})
	}
	return out
}

var priorityLabels = map[int]string{
	entities.PriorityLow:    "Low",
	entities.PriorityMedium: "Medium",
	entities.PriorityHigh:   "High",
}

// PriorityBreakdown — три фиксированные корзины приоритетов, нулевые
// значения не опускаются.
func PriorityBreakdown(requests []entities.MaintenanceRequest) []types.CountByGroup {
	counts := map[int]int{}
	for _, req := range requests {
		counts[req.Priority]++
	}
	out := make([]types.CountByGroup, 0, 3)
	for _, p := range []int{entities.PriorityLow, entities.PriorityMedium, entities.PriorityHigh} {
		out = append(out, types.CountByGroup{GroupName: priorityLabels[p], Count: counts[p]})
	}
	return out
}

// StatusBreakdown — четыре фиксированные корзины стадий.
func StatusBreakdown(requests []entities.MaintenanceRequest) []types.CountByGroup {
	counts := map[string]int{}
	for _, req := range requests {
		counts[req.Stage]++
	}
	out := make([]types.CountByGroup, 0, len(entities.Stages))
	for _, stage := range entities.Stages {
		out = append(out, types.CountByGroup{GroupName: stage, Count: counts[stage]})
	}
	return out
}

// TrendSeries группирует заявки по дате подачи и сортирует точки по
// календарной дате, не по строке.
func TrendSeries(requests []entities.MaintenanceRequest) []types.ChartPoint {
	counts := map[string]int{}
	for _, req := range requests {
		counts[req.RequestDate]++
	}
	out := make([]types.ChartPoint, 0, len(counts))
	for label, count := range counts {
		out = append(out, types.ChartPoint{Label: label, Value: count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := utils.ParseDate(out[i].Label)
		b, bok := utils.ParseDate(out[j].Label)
		if aok && bok {
			return a.Before(b)
		}
		if aok != bok {
			return aok
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// ComputeKPIs — карточки верхнего ряда страницы отчётов.
func ComputeKPIs(requests []entities.MaintenanceRequest, now time.Time) types.ReportKPIs {
	kpis := types.ReportKPIs{TotalRequests: len(requests)}

	var resolutionSum float64
	var resolvedCount int
	var scheduledCount, onTimeCount int

	for i := range requests {
		req := &requests[i]

		if req.Stage == entities.StageRepaired {
			start, sok := utils.ParseDate(req.RequestDate)
			end, eok := utils.ParseDate(req.CompletedDate)
			if sok && eok {
				resolutionSum += utils.DaysBetween(start, end)
				resolvedCount++
			}
		}

		if _, ok := utils.ParseDate(req.ScheduledDate); ok {
			scheduledCount++
			if !IsOverdueAt(req, now) {
				onTimeCount++
			}
		}

		if req.Priority == entities.PriorityHigh &&
			req.Stage != entities.StageRepaired && req.Stage != entities.StageScrap {
			kpis.CriticalPending++
		}
	}

	if resolvedCount > 0 {
		kpis.AvgResolutionDays = resolutionSum / float64(resolvedCount)
	}
	if scheduledCount > 0 {
		kpis.ComplianceRate = float64(onTimeCount) / float64(scheduledCount) * 100
	}
	return kpis
}

// Проценты выполнения для трекера, по стадиям.
var stageProgress = map[string]int{
	entities.StageNew:        10,
	entities.StageInProgress: 65,
	entities.StageRepaired:   100,
	entities.StageScrap:      0,
}

func StageProgress(stage string) int {
	return stageProgress[stage]
}

// TrackerRows — строки таблицы хода работ.
func TrackerRows(requests []entities.MaintenanceRequest, now time.Time) []types.TrackerRow {
	out := make([]types.TrackerRow, 0, len(requests))
	for i := range requests {
		req := &requests[i]
		out = append(out, types.TrackerRow{
			RequestID:   req.ID,
			Equipment:   req.Equipment,
			RequestDate: req.RequestDate,
			Technician:  req.Technician,
			Stage:       req.Stage,
			Progress:    StageProgress(req.Stage),
			IsOverdue:   IsOverdueAt(req, now),
		})
	}
	return out
}

// OpenRequestCount — число незакрытых заявок по имени оборудования
// (бейдж на карточке оборудования).
func OpenRequestCount(requests []entities.MaintenanceRequest, equipmentName string) int {
	count := 0
	for i := range requests {
		req := &requests[i]
		if req.Equipment == equipmentName &&
			req.Stage != entities.StageRepaired && req.Stage != entities.StageScrap {
			count++
		}
	}
	return count
}
