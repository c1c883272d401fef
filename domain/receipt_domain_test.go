package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateReceiptRequest_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantPrice *float64
		wantErr   bool
	}{
		{
			name:      "string price from the edit form",
			body:      `{"user_name":"","ocr_price":"12.50"}`,
			wantPrice: ptr(12.50),
		},
		{
			name:      "numeric price",
			body:      `{"ocr_price":12.5}`,
			wantPrice: ptr(12.5),
		},
		{
			name:      "string price with surrounding spaces",
			body:      `{"ocr_price":" 7.25 "}`,
			wantPrice: ptr(7.25),
		},
		{
			name:      "absent price stays nil",
			body:      `{"user_name":"Jane Roe"}`,
			wantPrice: nil,
		},
		{
			name:      "null price stays nil",
			body:      `{"ocr_price":null}`,
			wantPrice: nil,
		},
		{
			name:      "empty string price stays nil",
			body:      `{"ocr_price":""}`,
			wantPrice: nil,
		},
		{
			name:    "non-numeric string rejected",
			body:    `{"ocr_price":"abc"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateReceiptRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantPrice == nil {
				assert.Nil(t, req.OcrPrice)
			} else {
				require.NotNil(t, req.OcrPrice)
				assert.InDelta(t, *tt.wantPrice, *req.OcrPrice, 0.001)
			}
		})
	}
}

func TestUpdateReceiptRequest_UnmarshalKeepsOtherFields(t *testing.T) {
	var req UpdateReceiptRequest
	err := json.Unmarshal([]byte(`{"user_name":"Jane Roe","approved_by":"Pastor Bob","ocr_price":"9.99","ocr_date":"1/15/2024"}`), &req)
	require.NoError(t, err)

	assert.Equal(t, "Jane Roe", req.UserName)
	assert.Equal(t, "Pastor Bob", req.ApprovedBy)
	assert.Equal(t, "1/15/2024", req.OcrDate)
	require.NotNil(t, req.OcrPrice)
	assert.InDelta(t, 9.99, *req.OcrPrice, 0.001)
}

func ptr(f float64) *float64 { return &f }
