package receipt

import (
	"Treasury-System-Backend/domain"
	"Treasury-System-Backend/entities"
	"Treasury-System-Backend/internal/utils"
	"Treasury-System-Backend/internal/utils/mailing"
	"Treasury-System-Backend/internal/utils/storage"
	"Treasury-System-Backend/pkg/ocr"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReceiptService interface {
		UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest) (domain.UploadReceiptResponse, error)
		GetReceipts(ctx context.Context, search, status string) ([]domain.ReceiptResponse, error)
		UpdateReceipt(ctx context.Context, id string, req domain.UpdateReceiptRequest) (domain.ReceiptResponse, error)
		DeleteReceipt(ctx context.Context, id string) error
		BulkDeleteReceipts(ctx context.Context, req domain.BulkDeleteRequest) (domain.BulkDeleteResponse, error)
		GetReceiptStats(ctx context.Context) (domain.ReceiptStatsResponse, error)
		ExportCSV(ctx context.Context, search, status string) (string, error)
		GetReceiptImage(ctx context.Context, id string) (domain.ReceiptImage, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		s3                storage.AwsS3
		ocrEngine         ocr.Engine
	}
)

func NewReceiptService(receiptRepository ReceiptRepository, s3 storage.AwsS3, ocrEngine ocr.Engine) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		s3:                s3,
		ocrEngine:         ocrEngine,
	}
}

func (s *receiptService) UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest) (domain.UploadReceiptResponse, error) {
	if req.Image == nil {
		return domain.UploadReceiptResponse{}, domain.ErrImageRequired
	}

	receiptID := uuid.New()

	fileName := fmt.Sprintf("receipt-%s", receiptID.String())
	objectKey, err := s.s3.UploadFile(fileName, req.Image, "receipts", storage.AllowImage...)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	ocrData := s.runOCR(ctx, req)

	receipt := &entities.Receipt{
		ID:         receiptID,
		UserName:   req.UserName,
		UserPhone:  req.UserPhone,
		ItemBought: req.ItemBought,
		ApprovedBy: req.ApprovedBy,
		OcrPrice:   ocrData.OcrPrice,
		OcrDate:    ocrData.OcrDate,
		OcrTime:    ocrData.OcrTime,
		OcrRawText: ocrData.OcrRawText,
		ImagePath:  s.s3.GetPublicLinkKey(objectKey),
	}

	if err := s.receiptRepository.CreateReceipt(ctx, receipt); err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	s.notifyTreasury(receipt)

	return domain.UploadReceiptResponse{
		Message:   domain.MessageSuccessUploadReceipt,
		ReceiptID: receipt.ID.String(),
		OcrData:   ocrData,
	}, nil
}

// runOCR never fails the upload: a broken or unconfigured OCR service
// just leaves the extracted fields empty.
func (s *receiptService) runOCR(ctx context.Context, req domain.UploadReceiptRequest) domain.OcrData {
	file, err := req.Image.Open()
	if err != nil {
		return domain.OcrData{OcrRawText: fmt.Sprintf("OCR failed: %v", err)}
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		return domain.OcrData{OcrRawText: fmt.Sprintf("OCR failed: %v", err)}
	}

	text, err := s.ocrEngine.ExtractText(ctx, imageData, req.Image.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, ocr.ErrNotConfigured) {
			return domain.OcrData{}
		}
		log.Errorf("OCR extraction failed: %v", err)
		return domain.OcrData{OcrRawText: fmt.Sprintf("OCR failed: %v", err)}
	}

	return ocr.ExtractReceiptData(text)
}

func (s *receiptService) notifyTreasury(receipt *entities.Receipt) {
	toEmail := utils.GetConfig("TREASURY_EMAIL")
	if toEmail == "" || !mailing.Enabled() {
		return
	}

	body := mailing.ReceiptSubmittedBody(receipt.UserName, receipt.ItemBought, receipt.ApprovedBy)
	if err := mailing.SendMail(toEmail, "New receipt submitted", body); err != nil {
		log.Errorf("error sending submission notification: %v", err)
	}
}

func (s *receiptService) GetReceipts(ctx context.Context, search, status string) ([]domain.ReceiptResponse, error) {
	receipts, err := s.receiptRepository.GetReceipts(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		if !domain.MatchesSearch(search, r.UserName, r.ItemBought, r.UserPhone) {
			continue
		}
		if !domain.MatchesStatus(r.ApprovedBy, status) {
			continue
		}
		response = append(response, toReceiptResponse(r))
	}
	return response, nil
}

func toReceiptResponse(r *entities.Receipt) domain.ReceiptResponse {
	return domain.ReceiptResponse{
		ID:         r.ID.String(),
		UserName:   r.UserName,
		UserPhone:  r.UserPhone,
		ItemBought: r.ItemBought,
		ApprovedBy: r.ApprovedBy,
		OcrPrice:   r.OcrPrice,
		OcrDate:    r.OcrDate,
		OcrTime:    r.OcrTime,
		OcrRawText: r.OcrRawText,
		ImagePath:  resolveImagePath(r),
		CreatedAt:  domain.CreatedAtFormat(r.CreatedAt),
	}
}

// resolveImagePath returns a URL a browser can load. New receipts store
// the full object URL; legacy rows stored a relative filesystem path and
// are routed through the per-id image endpoint.
func resolveImagePath(r *entities.Receipt) string {
	if strings.HasPrefix(r.ImagePath, "http://") || strings.HasPrefix(r.ImagePath, "https://") {
		return r.ImagePath
	}
	if r.ImagePath != "" {
		return fmt.Sprintf("%s/api/receipts/%s/image", utils.GetConfig("APP_URL"), r.ID.String())
	}
	return ""
}

func (s *receiptService) UpdateReceipt(ctx context.Context, id string, req domain.UpdateReceiptRequest) (domain.ReceiptResponse, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptResponse{}, domain.ErrReceiptNotFound
		}
		return domain.ReceiptResponse{}, err
	}

	// User-submitted fields only change when a non-empty value arrives,
	// so a sparse draft never blanks existing data.
	if req.UserName != "" {
		receipt.UserName = req.UserName
	}
	if req.UserPhone != "" {
		receipt.UserPhone = req.UserPhone
	}
	if req.ItemBought != "" {
		receipt.ItemBought = req.ItemBought
	}
	if req.ApprovedBy != "" {
		receipt.ApprovedBy = req.ApprovedBy
	}
	if req.OcrPrice != nil {
		receipt.OcrPrice = req.OcrPrice
	}
	if req.OcrDate != "" {
		receipt.OcrDate = req.OcrDate
	}
	if req.OcrTime != "" {
		receipt.OcrTime = req.OcrTime
	}

	if err := s.receiptRepository.UpdateReceipt(ctx, receipt); err != nil {
		return domain.ReceiptResponse{}, err
	}

	return toReceiptResponse(receipt), nil
}

func (s *receiptService) DeleteReceipt(ctx context.Context, id string) error {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrReceiptNotFound
		}
		return err
	}

	s.deleteStoredImage(receipt)

	return s.receiptRepository.DeleteReceipt(ctx, id)
}

func (s *receiptService) deleteStoredImage(receipt *entities.Receipt) {
	if receipt.ImagePath == "" {
		return
	}
	objectKey := s.s3.GetObjectKeyFromLink(receipt.ImagePath)
	if objectKey == "" {
		return
	}
	if err := s.s3.DeleteFile(objectKey); err != nil {
		log.Errorf("error deleting image for receipt %s: %v", receipt.ID, err)
	}
}

func (s *receiptService) BulkDeleteReceipts(ctx context.Context, req domain.BulkDeleteRequest) (domain.BulkDeleteResponse, error) {
	if len(req.ReceiptIDs) == 0 {
		return domain.BulkDeleteResponse{}, domain.ErrNoReceiptIDs
	}

	deletedCount := 0
	var errs []string

	for _, id := range req.ReceiptIDs {
		receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs = append(errs, fmt.Sprintf("Receipt %s not found", id))
			} else {
				errs = append(errs, fmt.Sprintf("Error deleting receipt %s: %v", id, err))
			}
			continue
		}

		s.deleteStoredImage(receipt)

		if err := s.receiptRepository.DeleteReceipt(ctx, id); err != nil {
			errs = append(errs, fmt.Sprintf("Error deleting receipt %s: %v", id, err))
			continue
		}
		deletedCount++
	}

	return domain.BulkDeleteResponse{
		Message:      fmt.Sprintf("Deleted %d receipt(s) successfully", deletedCount),
		DeletedCount: deletedCount,
		Errors:       errs,
	}, nil
}

// GetReceiptStats aggregates over the full list, never a filtered view.
func (s *receiptService) GetReceiptStats(ctx context.Context) (domain.ReceiptStatsResponse, error) {
	receipts, err := s.receiptRepository.GetReceipts(ctx)
	if err != nil {
		return domain.ReceiptStatsResponse{}, err
	}

	stats := domain.ReceiptStatsResponse{Total: len(receipts)}
	for _, r := range receipts {
		if r.OcrPrice != nil {
			stats.TotalAmount += *r.OcrPrice
		}
		if domain.IsApproved(r.ApprovedBy) {
			stats.Approved++
		} else {
			stats.Pending++
		}
	}
	return stats, nil
}

var csvHeaders = []string{"ID", "Date", "Time", "Item/Description", "Amount", "Submitted By", "Phone", "Status", "Approved By", "Created At"}

func (s *receiptService) ExportCSV(ctx context.Context, search, status string) (string, error) {
	receipts, err := s.receiptRepository.GetReceipts(ctx)
	if err != nil {
		return "", err
	}

	var filtered []*entities.Receipt
	for _, r := range receipts {
		if domain.MatchesSearch(search, r.UserName, r.ItemBought, r.UserPhone) &&
			domain.MatchesStatus(r.ApprovedBy, status) {
			filtered = append(filtered, r)
		}
	}

	totalAmount := 0.0
	approvedCount := 0
	for _, r := range filtered {
		if r.OcrPrice != nil {
			totalAmount += *r.OcrPrice
		}
		if domain.IsApproved(r.ApprovedBy) {
			approvedCount++
		}
	}

	var b strings.Builder
	b.WriteString("# NECF Treasury System - Receipt Export\n")
	b.WriteString(fmt.Sprintf("# Generated: %s\n", time.Now().Format("1/2/2006, 3:04:05 PM")))
	b.WriteString(fmt.Sprintf("# Total Receipts: %d\n", len(filtered)))
	b.WriteString(fmt.Sprintf("# Approved Receipts: %d\n", approvedCount))
	b.WriteString(fmt.Sprintf("# Total Amount: ₺%.2f\n", totalAmount))
	b.WriteString("\n")
	b.WriteString(strings.Join(csvHeaders, ",") + "\n")

	for _, r := range filtered {
		rowStatus := "Pending"
		if domain.IsApproved(r.ApprovedBy) {
			rowStatus = "Approved"
		}
		amount := "0"
		if r.OcrPrice != nil {
			amount = strconv.FormatFloat(*r.OcrPrice, 'f', -1, 64)
		}
		b.WriteString(csvRow(
			r.ID.String(),
			r.OcrDate,
			r.OcrTime,
			r.ItemBought,
			amount,
			r.UserName,
			r.UserPhone,
			rowStatus,
			r.ApprovedBy,
			r.CreatedAt.Format(domain.ExportTimeFormat),
		))
	}

	b.WriteString("\n")
	b.WriteString("# Summary\n")
	b.WriteString(csvRow("Total Receipts", "", "", "", strconv.Itoa(len(filtered)), "", "", "", "", ""))
	b.WriteString(csvRow("Total Amount", "", "", "", fmt.Sprintf("₺%.2f", totalAmount), "", "", "", "", ""))
	b.WriteString(csvRow("Approved", "", "", "", strconv.Itoa(approvedCount), "", "", "", "", ""))
	b.WriteString(csvRow("Pending", "", "", "", strconv.Itoa(len(filtered)-approvedCount), "", "", "", "", ""))

	return b.String(), nil
}

func csvRow(cells ...string) string {
	quoted := make([]string, 0, len(cells))
	for _, cell := range cells {
		quoted = append(quoted, `"`+strings.ReplaceAll(cell, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, ",") + "\n"
}

func (s *receiptService) GetReceiptImage(ctx context.Context, id string) (domain.ReceiptImage, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptImage{}, domain.ErrReceiptNotFound
		}
		return domain.ReceiptImage{}, err
	}

	if receipt.ImagePath == "" {
		return domain.ReceiptImage{}, domain.ErrReceiptNoImage
	}

	if strings.HasPrefix(receipt.ImagePath, "http://") || strings.HasPrefix(receipt.ImagePath, "https://") {
		return domain.ReceiptImage{URL: receipt.ImagePath}, nil
	}

	uploadsDir := utils.GetConfig("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	return domain.ReceiptImage{LocalPath: filepath.Join(uploadsDir, filepath.Base(receipt.ImagePath))}, nil
}
