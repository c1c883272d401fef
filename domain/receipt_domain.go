package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"
)

var (
	MessageSuccessUploadReceipt     = "Receipt uploaded successfully"
	MessageSuccessUpdateReceipt     = "Receipt updated successfully"
	MessageSuccessDeleteReceipt     = "Receipt deleted successfully"
	MessageSuccessGetReceipts       = "receipts retrieved successfully"
	MessageSuccessGetReceiptStats   = "receipt statistics retrieved successfully"
	MessageSuccessExportReceipts    = "receipts exported successfully"

	MessageFailedUploadReceipt   = "failed to upload receipt"
	MessageFailedUpdateReceipt   = "failed to update receipt"
	MessageFailedDeleteReceipt   = "failed to delete receipt"
	MessageFailedGetReceipts     = "failed to retrieve receipts"
	MessageFailedGetReceiptStats = "failed to retrieve receipt statistics"
	MessageFailedExportReceipts  = "failed to export receipts"
	MessageNoReceiptIDs          = "No receipt IDs provided"

	ErrReceiptNotFound   = errors.New("Receipt not found")
	ErrImageRequired     = errors.New("receipt image is required")
	ErrNotAnImage        = errors.New("Only image files allowed")
	ErrImageTooLarge     = errors.New("Image size must be less than 5MB")
	ErrNoReceiptIDs      = errors.New("No receipt IDs provided")
	ErrReceiptNoImage    = errors.New("receipt has no stored image")
)

type (
	UploadReceiptRequest struct {
		Image      *multipart.FileHeader `json:"image" form:"image" validate:"required"`
		UserName   string                `json:"user_name" form:"user_name" validate:"required,fullname"`
		UserPhone  string                `json:"user_phone" form:"user_phone" validate:"required,phonedigits"`
		ItemBought string                `json:"item_bought" form:"item_bought" validate:"required,min=3"`
		ApprovedBy string                `json:"approved_by" form:"approved_by" validate:"required"`
	}

	UploadReceiptResponse struct {
		Message   string  `json:"message"`
		ReceiptID string  `json:"receipt_id"`
		OcrData   OcrData `json:"ocr_data"`
	}

	OcrData struct {
		OcrPrice   *float64 `json:"ocr_price"`
		OcrDate    string   `json:"ocr_date"`
		OcrTime    string   `json:"ocr_time"`
		OcrRawText string   `json:"ocr_raw_text"`
	}

	// UpdateReceiptRequest is a partial update: user-submitted fields are
	// applied only when non-empty, ocr_price whenever present, and
	// ocr_date/ocr_time when non-empty. Everything else is left as-is.
	UpdateReceiptRequest struct {
		UserName   string   `json:"user_name"`
		UserPhone  string   `json:"user_phone"`
		ItemBought string   `json:"item_bought"`
		ApprovedBy string   `json:"approved_by"`
		OcrPrice   *float64 `json:"ocr_price"`
		OcrDate    string   `json:"ocr_date"`
		OcrTime    string   `json:"ocr_time"`
	}

	ReceiptResponse struct {
		ID         string   `json:"id"`
		UserName   string   `json:"user_name"`
		UserPhone  string   `json:"user_phone"`
		ItemBought string   `json:"item_bought"`
		ApprovedBy string   `json:"approved_by"`
		OcrPrice   *float64 `json:"ocr_price"`
		OcrDate    string   `json:"ocr_date"`
		OcrTime    string   `json:"ocr_time"`
		OcrRawText string   `json:"ocr_raw_text"`
		ImagePath  string   `json:"image_path"`
		CreatedAt  string   `json:"created_at"`
	}

	BulkDeleteRequest struct {
		ReceiptIDs []string `json:"receipt_ids"`
	}

	BulkDeleteResponse struct {
		Message      string   `json:"message"`
		DeletedCount int      `json:"deleted_count"`
		Errors       []string `json:"errors,omitempty"`
	}

	ReceiptStatsResponse struct {
		Total       int     `json:"total"`
		TotalAmount float64 `json:"total_amount"`
		Approved    int     `json:"approved"`
		Pending     int     `json:"pending"`
	}

	// ReceiptImage is the resolved image location for one receipt:
	// either a URL to redirect to or a local filesystem path to stream.
	ReceiptImage struct {
		URL       string
		LocalPath string
	}
)

// UnmarshalJSON accepts ocr_price as either a JSON number or a numeric
// string. The dashboard's edit form submits the price from a text
// input, so an edited price arrives quoted.
func (r *UpdateReceiptRequest) UnmarshalJSON(data []byte) error {
	type Alias UpdateReceiptRequest
	aux := struct {
		*Alias
		OcrPrice json.RawMessage `json:"ocr_price"`
	}{Alias: (*Alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	price, err := parseOcrPrice(aux.OcrPrice)
	if err != nil {
		return err
	}
	r.OcrPrice = price
	return nil
}

func parseOcrPrice(raw json.RawMessage) (*float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		price, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ocr_price %q", s)
		}
		return &price, nil
	}

	var price float64
	if err := json.Unmarshal(raw, &price); err != nil {
		return nil, err
	}
	return &price, nil
}

// ExportTimeFormat is the created_at format used in CSV exports.
const ExportTimeFormat = "1/2/2006"

// CreatedAtFormat renders timestamps the way list responses expose them.
func CreatedAtFormat(t time.Time) string {
	return t.Format(time.RFC3339)
}
