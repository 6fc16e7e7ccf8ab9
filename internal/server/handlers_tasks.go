package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"famorg/internal/common"
	"famorg/internal/entity"
	"famorg/internal/repository"
	"famorg/internal/tasks"
)

func (s *Server) handleCreateTask(c *fiber.Ctx) error {
	var t entity.Task
	if err := c.BodyParser(&t); err != nil {
		return fmt.Errorf("decode task: %w", common.ErrInvalidInput)
	}
	created, err := s.deps.Tasks.Create(c.Context(), &t)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) handleListTasks(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Query("profile_id"))
	if err != nil {
		return fmt.Errorf("profile_id query parameter: %w", common.ErrInvalidInput)
	}

	filter := repository.TaskFilter{Category: c.Query("category")}
	switch c.Query("done") {
	case "true":
		done := true
		filter.Done = &done
	case "false":
		done := false
		filter.Done = &done
	}

	list, err := s.deps.Tasks.List(c.Context(), profileID, filter)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*entity.Task{}
	}
	return c.JSON(list)
}

func (s *Server) handleGetTask(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	t, err := s.deps.Tasks.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(t)
}

func (s *Server) handleUpdateTask(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var t entity.Task
	if err := c.BodyParser(&t); err != nil {
		return fmt.Errorf("decode task: %w", common.ErrInvalidInput)
	}
	t.ID = id
	updated, err := s.deps.Tasks.Update(c.Context(), &t)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (s *Server) handleTaskDone(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		Done *bool `json:"done"`
	}
	if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
		return fmt.Errorf("decode body: %w", common.ErrInvalidInput)
	}
	done := true
	if body.Done != nil {
		done = *body.Done
	}
	t, err := s.deps.Tasks.SetDone(c.Context(), id, done)
	if err != nil {
		return err
	}
	return c.JSON(t)
}

func (s *Server) handleDeleteTask(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := s.deps.Tasks.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleIngestEmail(c *fiber.Ctx) error {
	var body struct {
		ProfileID     uuid.UUID `json:"profile_id"`
		Subject       string    `json:"subject"`
		Sender        string    `json:"sender"`
		Body          string    `json:"body"`
		AttachmentURL string    `json:"attachment_url"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fmt.Errorf("decode ingest request: %w", common.ErrInvalidInput)
	}
	t, err := s.deps.Tasks.IngestEmail(c.Context(), tasks.IngestRequest{
		ProfileID:     body.ProfileID,
		Subject:       body.Subject,
		Sender:        body.Sender,
		Body:          body.Body,
		AttachmentURL: body.AttachmentURL,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}
