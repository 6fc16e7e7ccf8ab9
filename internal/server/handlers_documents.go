package server

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"famorg/internal/common"
	"famorg/internal/entity"
	"famorg/internal/repository"
)

type documentRequest struct {
	TemplateID string            `json:"template_id"`
	ProfileID  uuid.UUID         `json:"profile_id"`
	TaskID     *uuid.UUID        `json:"task_id,omitempty"`
	Overrides  map[string]string `json:"overrides,omitempty"`
}

func (s *Server) handleGenerateDocument(c *fiber.Ctx) error {
	var req documentRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("decode generate request: %w", common.ErrInvalidInput)
	}

	res, err := s.deps.Documents.Generate(c.Context(), req.TemplateID, req.TaskID, req.ProfileID, req.Overrides)
	if err != nil {
		return err
	}

	doc := &entity.Document{
		ProfileID:  req.ProfileID,
		TaskID:     req.TaskID,
		TemplateID: req.TemplateID,
		Filename:   res.Filename,
		URL:        res.URL,
	}
	if s.deps.DocRepo != nil {
		if err := s.deps.DocRepo.Create(c.Context(), doc); err != nil {
			// The PDF exists; the record is bookkeeping.
			s.logger.Warn("server.documents.record_failed", "filename", res.Filename, "error", err)
		}
	}

	if c.Query("download") == "true" {
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.Filename+`"`)
		return c.Send(res.Bytes)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       doc.ID,
		"url":      res.URL,
		"filename": res.Filename,
		"pages":    res.Pages,
		"content":  res.Content,
	})
}

func (s *Server) handlePreviewDocument(c *fiber.Ctx) error {
	var req documentRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("decode preview request: %w", common.ErrInvalidInput)
	}
	res, err := s.deps.Documents.Preview(c.Context(), req.TemplateID, req.TaskID, req.ProfileID, req.Overrides)
	if err != nil {
		return err
	}
	missing := res.Missing
	if missing == nil {
		missing = []string{}
	}
	return c.JSON(fiber.Map{
		"content": res.Content,
		"missing": missing,
	})
}

func (s *Server) handleListDocuments(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Query("profile_id"))
	if err != nil {
		return fmt.Errorf("profile_id query parameter: %w", common.ErrInvalidInput)
	}
	list, err := s.deps.DocRepo.List(c.Context(), profileID)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*entity.Document{}
	}
	return c.JSON(list)
}

func (s *Server) handleExportTasks(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Query("profile_id"))
	if err != nil {
		return fmt.Errorf("profile_id query parameter: %w", common.ErrInvalidInput)
	}
	data, err := s.deps.Export.ExportTasksXLSX(c.Context(), profileID, repository.TaskFilter{Category: c.Query("category")})
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tasks.xlsx"`)
	return c.Send(data)
}

func (s *Server) handleWeather(c *fiber.Ctx) error {
	if s.deps.Weather == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "weather not configured")
	}
	lat, lon := s.deps.Latitude, s.deps.Longitude
	if v := c.Query("lat"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			lat = f
		}
	}
	if v := c.Query("lon"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			lon = f
		}
	}
	days, _ := strconv.Atoi(c.Query("days", "7"))

	forecast, err := s.deps.Weather.Forecast(c.Context(), lat, lon, days)
	if err != nil {
		return err
	}
	return c.JSON(forecast)
}
