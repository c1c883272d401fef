package entities

import (
	"github.com/google/uuid"
)

type Receipt struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`

	// Submitted by the end user
	UserName   string `json:"user_name"`
	UserPhone  string `json:"user_phone"`
	ItemBought string `json:"item_bought"`
	ApprovedBy string `json:"approved_by"`

	// Extracted by OCR, editable by admins
	OcrPrice   *float64 `json:"ocr_price,omitempty"`
	OcrDate    string   `json:"ocr_date,omitempty"`
	OcrTime    string   `json:"ocr_time,omitempty"`
	OcrRawText string   `json:"ocr_raw_text,omitempty" gorm:"type:text"`

	ImagePath string `json:"image_path"`

	Timestamp
}
