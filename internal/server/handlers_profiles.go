package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"famorg/internal/common"
	"famorg/internal/entity"
)

func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, common.ErrInvalidInput)
	}
	return id, nil
}

func (s *Server) handleCreateProfile(c *fiber.Ctx) error {
	var p entity.Profile
	if err := c.BodyParser(&p); err != nil {
		return fmt.Errorf("decode profile: %w", common.ErrInvalidInput)
	}
	created, err := s.deps.Profiles.Create(c.Context(), &p)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) handleListProfiles(c *fiber.Ctx) error {
	list, err := s.deps.Profiles.List(c.Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []*entity.Profile{}
	}
	return c.JSON(list)
}

func (s *Server) handleGetProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	p, err := s.deps.Profiles.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (s *Server) handleUpdateProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var p entity.Profile
	if err := c.BodyParser(&p); err != nil {
		return fmt.Errorf("decode profile: %w", common.ErrInvalidInput)
	}
	p.ID = id
	updated, err := s.deps.Profiles.Update(c.Context(), &p)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}
