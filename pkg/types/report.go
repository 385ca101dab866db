package types

// KPI-карточки страницы отчетов.
type ReportKPIs struct {
	TotalRequests     int     `json:"total_requests"`
	AvgResolutionDays float64 `json:"avg_resolution_days"`
	ComplianceRate    float64 `json:"compliance_rate"`
	CriticalPending   int     `json:"critical_pending"`
}

type CountByGroup struct {
	GroupName string `json:"group_name"`
	Count     int    `json:"count"`
}

type ChartPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type TrackerRow struct {
	RequestID   uint64 `json:"request_id"`
	Equipment   string `json:"equipment"`
	RequestDate string `json:"request_date"`
	Technician  string `json:"technician"`
	Stage       string `json:"stage"`
	Progress    int    `json:"progress"`
	IsOverdue   bool   `json:"is_overdue"`
}
