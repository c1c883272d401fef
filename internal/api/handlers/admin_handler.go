package handlers

import (
	"Treasury-System-Backend/domain"
	"Treasury-System-Backend/internal/api/presenters"
	"Treasury-System-Backend/pkg/admin"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		Login(c *fiber.Ctx) error
		GetAdmins(c *fiber.Ctx) error
		CreateAdmin(c *fiber.Ctx) error
		DeleteAdmin(c *fiber.Ctx) error
	}

	adminHandler struct {
		adminService admin.AdminService
		validator    *validator.Validate
	}
)

func NewAdminHandler(adminService admin.AdminService, validator *validator.Validate) AdminHandler {
	return &adminHandler{
		adminService: adminService,
		validator:    validator,
	}
}

func (h *adminHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedLogin, domain.ErrInvalidCredentials)
	}

	res, err := h.adminService.Login(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrCredentialsMissing) {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedLogin, domain.ErrInvalidCredentials)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedLogin, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *adminHandler) GetAdmins(c *fiber.Ctx) error {
	admins, err := h.adminService.GetAdmins(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetAdmins, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, fiber.Map{"admins": admins})
}

func (h *adminHandler) CreateAdmin(c *fiber.Ctx) error {
	req := new(domain.CreateAdminRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateAdmin, domain.ErrCredentialsMissing)
	}

	res, err := h.adminService.CreateAdmin(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedCreateAdmin, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateAdmin, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"message": domain.MessageSuccessCreateAdmin,
		"admin":   res,
	})
}

func (h *adminHandler) DeleteAdmin(c *fiber.Ctx) error {
	adminID := c.Params("id")

	if err := h.adminService.DeleteAdmin(c.Context(), adminID); err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteAdmin, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteAdmin, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": domain.MessageSuccessDeleteAdmin,
		"id":      adminID,
	})
}
