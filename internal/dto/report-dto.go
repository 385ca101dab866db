package dto

import "maintenance-system/pkg/types"

// DashboardDTO — плоские значения для страницы отчетов: KPI-карточки и
// готовые серии для графиков. Отрисовка — забота фронтенда.
type DashboardDTO struct {
	KPIs               types.ReportKPIs     `json:"kpis"`
	StatusBreakdown    []types.CountByGroup `json:"status_breakdown"`
	PriorityBreakdown  []types.CountByGroup `json:"priority_breakdown"`
	TechnicianWorkload []types.CountByGroup `json:"technician_workload"`
	TrendSeries        []types.ChartPoint   `json:"trend_series"`
	Tracker            []types.TrackerRow   `json:"tracker"`
}
