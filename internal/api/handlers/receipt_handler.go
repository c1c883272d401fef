package handlers

import (
	"Treasury-System-Backend/domain"
	"Treasury-System-Backend/internal/api/presenters"
	"Treasury-System-Backend/pkg/receipt"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReceiptHandler interface {
		UploadReceipt(c *fiber.Ctx) error
		GetReceipts(c *fiber.Ctx) error
		UpdateReceipt(c *fiber.Ctx) error
		DeleteReceipt(c *fiber.Ctx) error
		BulkDeleteReceipts(c *fiber.Ctx) error
		GetReceiptStats(c *fiber.Ctx) error
		ExportReceipts(c *fiber.Ctx) error
		GetReceiptImage(c *fiber.Ctx) error
	}

	receiptHandler struct {
		receiptService receipt.ReceiptService
		validator      *validator.Validate
	}
)

func NewReceiptHandler(receiptService receipt.ReceiptService, validator *validator.Validate) ReceiptHandler {
	return &receiptHandler{
		receiptService: receiptService,
		validator:      validator,
	}
}

func (h *receiptHandler) UploadReceipt(c *fiber.Ctx) error {
	req := new(domain.UploadReceiptRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, domain.ErrImageRequired)
	}
	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	res, err := h.receiptService.UploadReceipt(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *receiptHandler) GetReceipts(c *fiber.Ctx) error {
	search := c.Query("search", "")
	status := c.Query("status", domain.StatusAll)

	receipts, err := h.receiptService.GetReceipts(c.Context(), search, status)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetReceipts, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, fiber.Map{"receipts": receipts})
}

func (h *receiptHandler) UpdateReceipt(c *fiber.Ctx) error {
	receiptID := c.Params("id")
	req := new(domain.UpdateReceiptRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.receiptService.UpdateReceipt(c.Context(), receiptID, *req)
	if err != nil {
		if errors.Is(err, domain.ErrReceiptNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateReceipt, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateReceipt, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": domain.MessageSuccessUpdateReceipt,
		"receipt": res,
	})
}

func (h *receiptHandler) DeleteReceipt(c *fiber.Ctx) error {
	receiptID := c.Params("id")

	if err := h.receiptService.DeleteReceipt(c.Context(), receiptID); err != nil {
		if errors.Is(err, domain.ErrReceiptNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteReceipt, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteReceipt, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": domain.MessageSuccessDeleteReceipt,
		"id":      receiptID,
	})
}

func (h *receiptHandler) BulkDeleteReceipts(c *fiber.Ctx) error {
	// The dashboard posts a bare JSON array of ids.
	var receiptIDs []string
	if err := c.BodyParser(&receiptIDs); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.receiptService.BulkDeleteReceipts(c.Context(), domain.BulkDeleteRequest{ReceiptIDs: receiptIDs})
	if err != nil {
		if errors.Is(err, domain.ErrNoReceiptIDs) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageNoReceiptIDs, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteReceipt, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *receiptHandler) GetReceiptStats(c *fiber.Ctx) error {
	stats, err := h.receiptService.GetReceiptStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetReceiptStats, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, stats)
}

func (h *receiptHandler) ExportReceipts(c *fiber.Ctx) error {
	search := c.Query("search", "")
	status := c.Query("status", domain.StatusAll)

	csv, err := h.receiptService.ExportCSV(c.Context(), search, status)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedExportReceipts, err)
	}

	fileName := fmt.Sprintf("NECF_Treasury_Receipts_%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", fileName))
	return c.SendString(csv)
}

func (h *receiptHandler) GetReceiptImage(c *fiber.Ctx) error {
	receiptID := c.Params("id")

	image, err := h.receiptService.GetReceiptImage(c.Context(), receiptID)
	if err != nil {
		if errors.Is(err, domain.ErrReceiptNotFound) || errors.Is(err, domain.ErrReceiptNoImage) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetReceipts, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetReceipts, err)
	}

	if image.URL != "" {
		return c.Redirect(image.URL, fiber.StatusFound)
	}
	return c.SendFile(image.LocalPath)
}
