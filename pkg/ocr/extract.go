package ocr

import (
	"Treasury-System-Backend/domain"
	"regexp"
	"strconv"
	"strings"
)

var (
	pricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Total[:\s]+(?:USD|R|\$|EUR|£)?\s*(\d+[,.]?\d*\.?\d+)`),
		regexp.MustCompile(`(?i)Amount[:\s]+(?:USD|R|\$|EUR|£)?\s*(\d+[,.]?\d*\.?\d+)`),
		regexp.MustCompile(`(?i)(?:USD|R|\$|EUR|£)?\s*(\d+[,.]?\d*\.?\d+)`),
	}

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})\b`),
		regexp.MustCompile(`\b(\d{4}[-/]\d{1,2}[-/]\d{1,2})\b`),
		regexp.MustCompile(`\b([A-Za-z]{3,9}\s+\d{1,2},?\s+\d{4})\b`),
	}

	timePattern = regexp.MustCompile(`\b(\d{1,2}:\d{2}(?::\d{2})?\s*(?:AM|PM|am|pm)?)\b`)
)

// ExtractReceiptData pulls price, date and time out of raw OCR text.
// Fields that cannot be found stay empty; the raw text is always kept
// for the admin to inspect.
func ExtractReceiptData(text string) domain.OcrData {
	return domain.OcrData{
		OcrPrice:   ExtractPrice(text),
		OcrDate:    ExtractDate(text),
		OcrTime:    ExtractTime(text),
		OcrRawText: text,
	}
}

// ExtractPrice prefers labelled totals over the first bare number.
func ExtractPrice(text string) *float64 {
	for _, pattern := range pricePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		priceStr := strings.ReplaceAll(match[1], ",", "")
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			continue
		}
		return &price
	}
	return nil
}

func ExtractDate(text string) string {
	for _, pattern := range datePatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			return match[1]
		}
	}
	return ""
}

func ExtractTime(text string) string {
	if match := timePattern.FindStringSubmatch(text); match != nil {
		return strings.TrimSpace(match[1])
	}
	return ""
}
