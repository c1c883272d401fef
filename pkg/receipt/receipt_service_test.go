package receipt

import (
	"Treasury-System-Backend/domain"
	"Treasury-System-Backend/entities"
	"Treasury-System-Backend/pkg/ocr"
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeReceiptRepository struct {
	receipts []*entities.Receipt
	getErrs  map[string]error
	calls    int
}

func (r *fakeReceiptRepository) CreateReceipt(_ context.Context, receipt *entities.Receipt) error {
	r.calls++
	r.receipts = append([]*entities.Receipt{receipt}, r.receipts...)
	return nil
}

func (r *fakeReceiptRepository) GetReceipts(_ context.Context) ([]*entities.Receipt, error) {
	r.calls++
	out := make([]*entities.Receipt, len(r.receipts))
	copy(out, r.receipts)
	return out, nil
}

func (r *fakeReceiptRepository) GetReceiptByID(_ context.Context, id string) (*entities.Receipt, error) {
	r.calls++
	if err, ok := r.getErrs[id]; ok {
		return nil, err
	}
	for _, receipt := range r.receipts {
		if receipt.ID.String() == id {
			return receipt, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReceiptRepository) UpdateReceipt(_ context.Context, receipt *entities.Receipt) error {
	r.calls++
	for i, existing := range r.receipts {
		if existing.ID == receipt.ID {
			r.receipts[i] = receipt
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeReceiptRepository) DeleteReceipt(_ context.Context, id string) error {
	r.calls++
	for i, receipt := range r.receipts {
		if receipt.ID.String() == id {
			r.receipts = append(r.receipts[:i], r.receipts[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeStorage struct {
	deleted []string
}

const fakeLinkPrefix = "https://treasury-test.s3.us-east-1.amazonaws.com/"

func (f *fakeStorage) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	if file.Size > 5*1024*1024 {
		return "", domain.ErrImageTooLarge
	}
	if len(allowedTypes) > 0 {
		contentType := file.Header.Get("Content-Type")
		allowed := false
		for _, t := range allowedTypes {
			if t == contentType {
				allowed = true
			}
		}
		if !allowed {
			return "", domain.ErrNotAnImage
		}
	}
	return fmt.Sprintf("%s/%s.jpg", folder, fileName), nil
}

func (f *fakeStorage) UpdateFile(objectKey string, _ *multipart.FileHeader, _ ...string) (string, error) {
	return objectKey, nil
}

func (f *fakeStorage) DeleteFile(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeStorage) GetPublicLinkKey(objectKey string) string {
	return fakeLinkPrefix + objectKey
}

func (f *fakeStorage) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, fakeLinkPrefix) {
		return ""
	}
	return strings.TrimPrefix(link, fakeLinkPrefix)
}

type fakeEngine struct {
	text string
	err  error
}

func (e *fakeEngine) ExtractText(_ context.Context, _ []byte, _ string) (string, error) {
	return e.text, e.err
}

func makeFileHeader(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["image"][0]
}

func seedReceipt(repo *fakeReceiptRepository, mutate func(*entities.Receipt)) *entities.Receipt {
	r := &entities.Receipt{
		ID:         uuid.New(),
		UserName:   "John Smith",
		UserPhone:  "(555) 123-4567",
		ItemBought: "Office supplies",
		ImagePath:  fakeLinkPrefix + "receipts/receipt-test.jpg",
		Timestamp:  entities.Timestamp{CreatedAt: time.Now()},
	}
	if mutate != nil {
		mutate(r)
	}
	repo.receipts = append(repo.receipts, r)
	return r
}

func newTestService(repo *fakeReceiptRepository, store *fakeStorage, engine ocr.Engine) ReceiptService {
	if engine == nil {
		engine = &fakeEngine{err: ocr.ErrNotConfigured}
	}
	return NewReceiptService(repo, store, engine)
}

func TestUploadReceipt(t *testing.T) {
	repo := &fakeReceiptRepository{}
	store := &fakeStorage{}
	engine := &fakeEngine{text: "Corner Store\n12/31/2023 14:30\nTotal: $12.50"}
	service := newTestService(repo, store, engine)

	req := domain.UploadReceiptRequest{
		Image:      makeFileHeader(t, "receipt.jpg", "image/jpeg", []byte("jpeg-bytes")),
		UserName:   "John Smith",
		UserPhone:  "5551234567",
		ItemBought: "Office supplies for event",
		ApprovedBy: "Jane Doe",
	}

	res, err := service.UploadReceipt(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.MessageSuccessUploadReceipt, res.Message)
	assert.NotEmpty(t, res.ReceiptID)
	require.NotNil(t, res.OcrData.OcrPrice)
	assert.InDelta(t, 12.50, *res.OcrData.OcrPrice, 0.001)
	assert.Equal(t, "12/31/2023", res.OcrData.OcrDate)
	assert.Equal(t, "14:30", res.OcrData.OcrTime)

	require.Len(t, repo.receipts, 1)
	stored := repo.receipts[0]
	assert.Equal(t, "John Smith", stored.UserName)
	assert.Equal(t, "Jane Doe", stored.ApprovedBy)
	assert.True(t, strings.HasPrefix(stored.ImagePath, fakeLinkPrefix+"receipts/"))
}

func TestUploadReceipt_OCRUnavailable(t *testing.T) {
	repo := &fakeReceiptRepository{}
	service := newTestService(repo, &fakeStorage{}, nil)

	req := domain.UploadReceiptRequest{
		Image:      makeFileHeader(t, "receipt.png", "image/png", []byte("png-bytes")),
		UserName:   "John Smith",
		UserPhone:  "5551234567",
		ItemBought: "Office supplies",
		ApprovedBy: "Jane Doe",
	}

	res, err := service.UploadReceipt(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, res.OcrData.OcrPrice)
	assert.Empty(t, res.OcrData.OcrRawText)
	require.Len(t, repo.receipts, 1)
}

func TestUploadReceipt_RejectsNonImage(t *testing.T) {
	repo := &fakeReceiptRepository{}
	service := newTestService(repo, &fakeStorage{}, nil)

	req := domain.UploadReceiptRequest{
		Image:      makeFileHeader(t, "receipt.pdf", "application/pdf", []byte("%PDF")),
		UserName:   "John Smith",
		UserPhone:  "5551234567",
		ItemBought: "Office supplies",
		ApprovedBy: "Jane Doe",
	}

	_, err := service.UploadReceipt(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotAnImage)
	assert.Empty(t, repo.receipts)
}

func TestUploadReceipt_MissingImage(t *testing.T) {
	service := newTestService(&fakeReceiptRepository{}, &fakeStorage{}, nil)

	_, err := service.UploadReceipt(context.Background(), domain.UploadReceiptRequest{
		UserName:   "John Smith",
		UserPhone:  "5551234567",
		ItemBought: "Office supplies",
		ApprovedBy: "Jane Doe",
	})
	assert.ErrorIs(t, err, domain.ErrImageRequired)
}

func TestUpdateReceipt_PartialFields(t *testing.T) {
	repo := &fakeReceiptRepository{}
	r := seedReceipt(repo, nil)
	service := newTestService(repo, &fakeStorage{}, nil)

	price := 12.50
	res, err := service.UpdateReceipt(context.Background(), r.ID.String(), domain.UpdateReceiptRequest{
		UserName: "",
		OcrPrice: &price,
	})
	require.NoError(t, err)

	// the empty draft field must not blank the stored value
	assert.Equal(t, "John Smith", res.UserName)
	require.NotNil(t, res.OcrPrice)
	assert.InDelta(t, 12.50, *res.OcrPrice, 0.001)

	stored := repo.receipts[0]
	assert.Equal(t, "John Smith", stored.UserName)
	require.NotNil(t, stored.OcrPrice)
}

func TestUpdateReceipt_AllFields(t *testing.T) {
	repo := &fakeReceiptRepository{}
	r := seedReceipt(repo, nil)
	service := newTestService(repo, &fakeStorage{}, nil)

	price := 99.99
	_, err := service.UpdateReceipt(context.Background(), r.ID.String(), domain.UpdateReceiptRequest{
		UserName:   "Jane Roe",
		UserPhone:  "5559876543",
		ItemBought: "Projector rental",
		ApprovedBy: "Pastor Bob",
		OcrPrice:   &price,
		OcrDate:    "1/15/2024",
		OcrTime:    "10:05",
	})
	require.NoError(t, err)

	stored := repo.receipts[0]
	assert.Equal(t, "Jane Roe", stored.UserName)
	assert.Equal(t, "Pastor Bob", stored.ApprovedBy)
	assert.Equal(t, "1/15/2024", stored.OcrDate)
	assert.Equal(t, "10:05", stored.OcrTime)
}

func TestUpdateReceipt_NotFound(t *testing.T) {
	service := newTestService(&fakeReceiptRepository{}, &fakeStorage{}, nil)

	_, err := service.UpdateReceipt(context.Background(), uuid.NewString(), domain.UpdateReceiptRequest{})
	assert.ErrorIs(t, err, domain.ErrReceiptNotFound)
}

func TestGetReceipts_StatusFilter(t *testing.T) {
	repo := &fakeReceiptRepository{}
	approved := seedReceipt(repo, func(r *entities.Receipt) { r.ApprovedBy = "Jane Doe" })
	pending := seedReceipt(repo, func(r *entities.Receipt) { r.ApprovedBy = "" })
	placeholder := seedReceipt(repo, func(r *entities.Receipt) { r.ApprovedBy = "Pending" })
	service := newTestService(repo, &fakeStorage{}, nil)

	all, err := service.GetReceipts(context.Background(), "", domain.StatusAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	approvedOnly, err := service.GetReceipts(context.Background(), "", domain.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approvedOnly, 1)
	assert.Equal(t, approved.ID.String(), approvedOnly[0].ID)

	pendingOnly, err := service.GetReceipts(context.Background(), "", domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, pendingOnly, 2)
	ids := []string{pendingOnly[0].ID, pendingOnly[1].ID}
	assert.Contains(t, ids, pending.ID.String())
	assert.Contains(t, ids, placeholder.ID.String())
}

func TestGetReceipts_Search(t *testing.T) {
	repo := &fakeReceiptRepository{}
	match := seedReceipt(repo, func(r *entities.Receipt) { r.ItemBought = "Projector cables" })
	seedReceipt(repo, func(r *entities.Receipt) {
		r.UserName = "Alice Brown"
		r.ItemBought = "Coffee"
		r.UserPhone = "(111) 222-3333"
	})
	service := newTestService(repo, &fakeStorage{}, nil)

	res, err := service.GetReceipts(context.Background(), "PROJECTOR", domain.StatusAll)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, match.ID.String(), res[0].ID)

	byPhone, err := service.GetReceipts(context.Background(), "222", domain.StatusAll)
	require.NoError(t, err)
	assert.Len(t, byPhone, 1)
}

func TestGetReceipts_Idempotent(t *testing.T) {
	repo := &fakeReceiptRepository{}
	seedReceipt(repo, nil)
	seedReceipt(repo, func(r *entities.Receipt) { r.ApprovedBy = "Jane Doe" })
	service := newTestService(repo, &fakeStorage{}, nil)

	first, err := service.GetReceipts(context.Background(), "", domain.StatusAll)
	require.NoError(t, err)
	second, err := service.GetReceipts(context.Background(), "", domain.StatusAll)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDeleteReceipt(t *testing.T) {
	repo := &fakeReceiptRepository{}
	store := &fakeStorage{}
	r := seedReceipt(repo, nil)
	service := newTestService(repo, store, nil)

	require.NoError(t, service.DeleteReceipt(context.Background(), r.ID.String()))
	assert.Empty(t, repo.receipts)
	assert.Equal(t, []string{"receipts/receipt-test.jpg"}, store.deleted)
}

func TestDeleteReceipt_NotFound(t *testing.T) {
	service := newTestService(&fakeReceiptRepository{}, &fakeStorage{}, nil)

	err := service.DeleteReceipt(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrReceiptNotFound)
}

func TestBulkDelete_EmptySelectionGuard(t *testing.T) {
	repo := &fakeReceiptRepository{}
	service := newTestService(repo, &fakeStorage{}, nil)

	_, err := service.BulkDeleteReceipts(context.Background(), domain.BulkDeleteRequest{})
	assert.ErrorIs(t, err, domain.ErrNoReceiptIDs)
	// the guard must fire before any repository access
	assert.Zero(t, repo.calls)
}

func TestBulkDelete_Mixed(t *testing.T) {
	repo := &fakeReceiptRepository{}
	store := &fakeStorage{}
	a := seedReceipt(repo, nil)
	b := seedReceipt(repo, nil)
	missing := uuid.NewString()
	service := newTestService(repo, store, nil)

	res, err := service.BulkDeleteReceipts(context.Background(), domain.BulkDeleteRequest{
		ReceiptIDs: []string{a.ID.String(), missing, b.ID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.DeletedCount)
	assert.Equal(t, "Deleted 2 receipt(s) successfully", res.Message)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], missing)
	assert.Empty(t, repo.receipts)
	assert.Len(t, store.deleted, 2)
}

func TestBulkDelete_LookupFailureNotReportedAsMissing(t *testing.T) {
	repo := &fakeReceiptRepository{}
	a := seedReceipt(repo, nil)
	failing := uuid.NewString()
	repo.getErrs = map[string]error{failing: errors.New("connection reset")}
	service := newTestService(repo, &fakeStorage{}, nil)

	res, err := service.BulkDeleteReceipts(context.Background(), domain.BulkDeleteRequest{
		ReceiptIDs: []string{a.ID.String(), failing},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.DeletedCount)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Error deleting receipt")
	assert.Contains(t, res.Errors[0], "connection reset")
	assert.NotContains(t, res.Errors[0], "not found")
}

func TestGetReceiptStats_IgnoresFilters(t *testing.T) {
	repo := &fakeReceiptRepository{}
	price1, price2 := 10.0, 2.5
	seedReceipt(repo, func(r *entities.Receipt) {
		r.ApprovedBy = "Jane Doe"
		r.OcrPrice = &price1
	})
	seedReceipt(repo, func(r *entities.Receipt) { r.OcrPrice = &price2 })
	seedReceipt(repo, nil)
	service := newTestService(repo, &fakeStorage{}, nil)

	stats, err := service.GetReceiptStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.InDelta(t, 12.5, stats.TotalAmount, 0.001)
	assert.Equal(t, 1, stats.Approved)
	assert.Equal(t, 2, stats.Pending)
}

func TestExportCSV(t *testing.T) {
	repo := &fakeReceiptRepository{}
	price := 5.75
	seedReceipt(repo, func(r *entities.Receipt) {
		r.ApprovedBy = "Jane Doe"
		r.OcrPrice = &price
		r.OcrDate = "12/31/2023"
		r.OcrTime = "14:30"
		r.ItemBought = "Office supplies"
	})
	seedReceipt(repo, nil)
	service := newTestService(repo, &fakeStorage{}, nil)

	csv, err := service.ExportCSV(context.Background(), "", domain.StatusAll)
	require.NoError(t, err)

	assert.Contains(t, csv, "# NECF Treasury System - Receipt Export")
	assert.Contains(t, csv, "# Total Receipts: 2")
	assert.Contains(t, csv, "# Approved Receipts: 1")
	assert.Contains(t, csv, "ID,Date,Time,Item/Description,Amount,Submitted By,Phone,Status,Approved By,Created At")
	assert.Contains(t, csv, `"12/31/2023","14:30","Office supplies","5.75"`)
	assert.Contains(t, csv, `"Approved","Jane Doe"`)
	assert.Contains(t, csv, "# Summary")
	assert.Contains(t, csv, `"Pending","","","","1"`)
}

func TestExportCSV_HonorsFilters(t *testing.T) {
	repo := &fakeReceiptRepository{}
	seedReceipt(repo, func(r *entities.Receipt) { r.ApprovedBy = "Jane Doe" })
	seedReceipt(repo, func(r *entities.Receipt) { r.UserName = "Walter White" })
	service := newTestService(repo, &fakeStorage{}, nil)

	csv, err := service.ExportCSV(context.Background(), "", domain.StatusApproved)
	require.NoError(t, err)
	assert.Contains(t, csv, "# Total Receipts: 1")
	assert.NotContains(t, csv, "Walter White")
}

func TestGetReceiptImage(t *testing.T) {
	repo := &fakeReceiptRepository{}
	withURL := seedReceipt(repo, nil)
	legacy := seedReceipt(repo, func(r *entities.Receipt) { r.ImagePath = "uploads/20230101_receipt.jpg" })
	noImage := seedReceipt(repo, func(r *entities.Receipt) { r.ImagePath = "" })
	service := newTestService(repo, &fakeStorage{}, nil)

	img, err := service.GetReceiptImage(context.Background(), withURL.ID.String())
	require.NoError(t, err)
	assert.Equal(t, withURL.ImagePath, img.URL)
	assert.Empty(t, img.LocalPath)

	img, err = service.GetReceiptImage(context.Background(), legacy.ID.String())
	require.NoError(t, err)
	assert.Empty(t, img.URL)
	assert.Contains(t, img.LocalPath, "20230101_receipt.jpg")

	_, err = service.GetReceiptImage(context.Background(), noImage.ID.String())
	assert.ErrorIs(t, err, domain.ErrReceiptNoImage)

	_, err = service.GetReceiptImage(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrReceiptNotFound)
}
