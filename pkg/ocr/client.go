package ocr

import (
	"Treasury-System-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when no OCR service URL is set. Callers
// treat it as "no OCR available" rather than a failure.
var ErrNotConfigured = errors.New("OCR service URL not configured")

type (
	// Engine turns a receipt image into raw text.
	Engine interface {
		ExtractText(ctx context.Context, image []byte, mimeType string) (string, error)
	}

	remoteEngine struct {
		url        string
		httpClient *http.Client
	}
)

// NewRemoteEngine builds an engine backed by the external OCR service
// named in the config.
func NewRemoteEngine() Engine {
	return &remoteEngine{
		url:        utils.GetConfig("OCR_SERVICE_URL"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (e *remoteEngine) ExtractText(ctx context.Context, image []byte, mimeType string) (string, error) {
	if e.url == "" {
		return "", ErrNotConfigured
	}

	requestBody := map[string]any{
		"image":     base64.StdEncoding.EncodeToString(image),
		"mime_type": mimeType,
	}
	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OCR service error: %s - %s", resp.Status, string(bodyBytes))
	}

	var ocrResp struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ocrResp); err != nil {
		return "", err
	}

	return ocrResp.Text, nil
}
