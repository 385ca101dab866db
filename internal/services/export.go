package services

import (
	"bytes"
	"fmt"
	"strconv"

	"maintenance-system/internal/entities"

	"github.com/xuri/excelize/v2"
)

// Колонки выгрузки заявок в Excel, в порядке таблицы на экране.
var exportHeaders = []string{
	"ID", "Тема", "Оборудование", "Категория", "Команда", "Техник",
	"Стадия", "Приоритет", "Дата заявки", "Плановая дата", "Дата завершения",
	"Чек-лист",
}

// BuildRequestsXLSX формирует книгу Excel с заявками. Вызывающая сторона
// отвечает за фильтрацию списка.
func BuildRequestsXLSX(requests []entities.MaintenanceRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Requests"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	for i := range requests {
		req := &requests[i]
		row := i + 2
		values := []interface{}{
			req.ID,
			req.Subject,
			req.Equipment,
			req.Category,
			req.Team,
			req.Technician,
			req.Stage,
			priorityLabels[req.Priority],
			req.RequestDate,
			req.ScheduledDate,
			req.CompletedDate,
			worksheetSummary(req),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("не удалось записать книгу Excel: %w", err)
	}
	return buf, nil
}

func worksheetSummary(req *entities.MaintenanceRequest) string {
	total := req.TotalCount()
	if total == 0 {
		return ""
	}
	return strconv.Itoa(req.CompletedCount()) + "/" + strconv.Itoa(total)
}
