// Package export produces XLSX snapshots of a profile's task board.
package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"famorg/internal/repository"
)

// Service is a tiny façade over the task repository that produces XLSX
// bytes for exports.
type Service struct {
	tasks  repository.TaskRepository
	logger *slog.Logger
}

func NewService(tasks repository.TaskRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{tasks: tasks, logger: logger}
}

// ExportTasksXLSX returns an XLSX workbook for the profile's tasks,
// optionally narrowed by filter.
func (s *Service) ExportTasksXLSX(ctx context.Context, profileID uuid.UUID, filter repository.TaskFilter) ([]byte, error) {
	start := time.Now()

	tasks, err := s.tasks.List(ctx, profileID, filter)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Tasks"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defaultIndex, _ := f.GetSheetIndex("Sheet1"); defaultIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Title",
		"Category",
		"Deadline",
		"Contact",
		"Contact Email",
		"Done",
		"Source",
		"Created",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, t := range tasks {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, t.Title)
		write(2, t.Category)
		if !t.Deadline.IsZero() {
			write(3, t.Deadline.Format("2006-01-02"))
		} else {
			write(3, "")
		}
		write(4, t.ContactName)
		write(5, t.ContactEmail)
		if t.Done {
			write(6, "yes")
		} else {
			write(6, "no")
		}
		write(7, t.Source)
		write(8, t.CreatedAt.Format("2006-01-02"))
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.tasks.ok",
		"profile_id", profileID,
		"rows", row-2,
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
