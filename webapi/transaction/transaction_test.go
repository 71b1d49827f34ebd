package transaction_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skarim/finledger/internal/fixtures/mocks"
	"github.com/skarim/finledger/pkg/app"
	"github.com/skarim/finledger/pkg/config"
	"github.com/skarim/finledger/pkg/currency"
	"github.com/skarim/finledger/pkg/domain"
	"github.com/skarim/finledger/pkg/dto"
	"github.com/skarim/finledger/pkg/repository"
	"github.com/skarim/finledger/pkg/testutils"
	"github.com/skarim/finledger/pkg/validation"
	"github.com/skarim/finledger/webapi"
	"github.com/skarim/finledger/webapi/common"
)

func fixedClock() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func testConfig() *config.App {
	return &config.App{
		Env:       "test",
		Server:    &config.Server{Host: "localhost", Port: 3000},
		Log:       &config.Log{},
		DB:        &config.DB{},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		Exchange:  &config.Exchange{ReferenceCurrency: "INR", FallbackRate: 80},
		Upload:    &config.Upload{MaxBytes: 1 << 20},
	}
}

func newTestApp(t *testing.T) (*fiber.App, *mocks.MockTransactionRepository, *mocks.MockRateSource) {
	repo := mocks.NewMockTransactionRepository(t)
	rates := mocks.NewMockRateSource(t)
	registry := currency.NewRegistry()

	deps := &app.Deps{
		Repo:             repo,
		RateSource:       rates,
		CurrencyRegistry: registry,
		Validator:        validation.NewWithClock(registry, fixedClock),
		Logger:           testutils.NewTestLogger(),
	}
	return webapi.SetupApp(app.New(deps, testConfig())), repo, rates
}

func decodeResponse(t *testing.T, resp *http.Response) common.Response {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	var out common.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeProblem(t *testing.T, resp *http.Response) common.ProblemDetails {
	t.Helper()
	defer resp.Body.Close() //nolint:errcheck
	var out common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateTransaction(t *testing.T) {
	appT, repo, rates := newTestApp(t)

	repo.On("FindExisting", mock.Anything, mock.Anything).Return(nil, nil).Once()
	rates.On("GetRate", mock.Anything, "USD", "INR", mock.Anything).Return(80.0, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	body := `{"date":"10-01-2025","description":"Coffee","amount":3.5,"currency":"USD"}`
	resp := testutils.MakeRequest(appT, "POST", "/transactions", body)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	out := decodeResponse(t, resp)
	assert.Equal(t, "Transaction added successfully", out.Message)
}

func TestCreateTransactionValidationFailure(t *testing.T) {
	appT, _, _ := newTestApp(t)

	body := `{"date":"10-01-2025","description":"Coffee","amount":3.5,"currency":"ZZZ"}`
	resp := testutils.MakeRequest(appT, "POST", "/transactions", body)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	pd := decodeProblem(t, resp)
	require.NotNil(t, pd.Errors)
	msgs, ok := pd.Errors.([]any)
	require.True(t, ok)
	assert.Contains(t, msgs, "Unsupported 'Currency': ZZZ.")
}

func TestCreateTransactionUnrepresentableAmount(t *testing.T) {
	appT, _, _ := newTestApp(t)

	body := `{"date":"10-01-2025","description":"Windfall","amount":1e300,"currency":"USD"}`
	resp := testutils.MakeRequest(appT, "POST", "/transactions", body)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	pd := decodeProblem(t, resp)
	msgs, ok := pd.Errors.([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Exceeds the maximum supported amount.")
}

func TestCreateTransactionDuplicate(t *testing.T) {
	appT, repo, _ := newTestApp(t)

	repo.On("FindExisting", mock.Anything, mock.Anything).
		Return([]*dto.TransactionRead{{ID: uuid.New()}}, nil).Once()

	body := `{"date":"10-01-2025","description":"Coffee","amount":3.5,"currency":"USD"}`
	resp := testutils.MakeRequest(appT, "POST", "/transactions", body)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateTransactionMalformedBody(t *testing.T) {
	appT, _, _ := newTestApp(t)

	resp := testutils.MakeRequest(appT, "POST", "/transactions", `{"date":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateTransaction(t *testing.T) {
	appT, repo, _ := newTestApp(t)
	id := uuid.New()
	parsed, _ := domain.ParseLedgerDate("10-01-2025")
	stored := &dto.TransactionRead{
		ID: id, RawDate: "10-01-2025", ParsedDate: parsed,
		Description: "Coffee", AmountMinor: 350, AmountRefMinor: 28000,
		Currency: "USD",
	}

	repo.On("GetActive", mock.Anything, id).Return(stored, nil).Twice()
	repo.On("Update", mock.Anything, id, mock.Anything).Return(nil).Once()

	resp := testutils.MakeRequest(appT, "PUT", "/transactions/"+id.String(),
		`{"description":"Pharmacy"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUpdateTransactionBadID(t *testing.T) {
	appT, _, _ := newTestApp(t)

	resp := testutils.MakeRequest(appT, "PUT", "/transactions/not-a-uuid",
		`{"description":"Pharmacy"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateTransactionNotFound(t *testing.T) {
	appT, repo, _ := newTestApp(t)
	id := uuid.New()

	repo.On("GetActive", mock.Anything, id).Return(nil, domain.ErrNotFound).Once()

	resp := testutils.MakeRequest(appT, "PUT", "/transactions/"+id.String(),
		`{"description":"Pharmacy"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteTransaction(t *testing.T) {
	appT, repo, _ := newTestApp(t)
	id := uuid.New()

	repo.On("GetActive", mock.Anything, id).
		Return(&dto.TransactionRead{ID: id}, nil).Once()
	repo.On("SoftDelete", mock.Anything, []uuid.UUID{id}).
		Return(int64(1), nil).Once()

	resp := testutils.MakeRequest(appT, "DELETE", "/transactions/"+id.String(), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDeleteTransactionNotFound(t *testing.T) {
	appT, repo, _ := newTestApp(t)
	id := uuid.New()

	repo.On("GetActive", mock.Anything, id).Return(nil, domain.ErrNotFound).Once()

	resp := testutils.MakeRequest(appT, "DELETE", "/transactions/"+id.String(), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestBulkDeleteAll(t *testing.T) {
	appT, repo, _ := newTestApp(t)

	repo.On("SoftDelete", mock.Anything, []uuid.UUID(nil)).
		Return(int64(4), nil).Once()

	resp := testutils.MakeRequest(appT, "DELETE", "/transactions", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decodeResponse(t, resp)
	data, ok := out.Data.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 4, data["deleted_count"])
}

func TestBulkDeleteByIDs(t *testing.T) {
	appT, repo, _ := newTestApp(t)
	id := uuid.New()

	repo.On("SoftDelete", mock.Anything, []uuid.UUID{id}).
		Return(int64(1), nil).Once()

	body := fmt.Sprintf(`{"ids":["%s"]}`, id)
	resp := testutils.MakeRequest(appT, "DELETE", "/transactions", body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestBulkDeleteBadID(t *testing.T) {
	appT, _, _ := newTestApp(t)

	resp := testutils.MakeRequest(appT, "DELETE", "/transactions", `{"ids":["nope"]}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListTransactions(t *testing.T) {
	appT, repo, _ := newTestApp(t)

	repo.On("ListActive", mock.Anything, repository.ListParams{
		Search: "cof", Limit: 5, Offset: 5,
	}).Return([]*dto.TransactionRead{{ID: uuid.New()}}, int64(11), nil).Once()

	resp := testutils.MakeRequest(appT, "GET", "/transactions?page=2&limit=5&search=cof", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestListTransactionsDefaults(t *testing.T) {
	appT, repo, _ := newTestApp(t)

	repo.On("ListActive", mock.Anything, repository.ListParams{
		Limit: 10, Offset: 0,
	}).Return(nil, int64(0), nil).Once()

	resp := testutils.MakeRequest(appT, "GET", "/transactions", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestListTransactionsBadPagination(t *testing.T) {
	appT, _, _ := newTestApp(t)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"bad page", "?page=0&limit=5", "page"},
		{"bad limit", "?page=1&limit=abc", "limit"},
		{"both bad", "?page=-1&limit=0", "page, limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutils.MakeRequest(appT, "GET", "/transactions"+tt.query, "")
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			pd := decodeProblem(t, resp)
			assert.Contains(t, pd.Detail, tt.want)
		})
	}
}

const uploadCSV = "date,description,amount,currency\n10-01-2025,Coffee,3.5,USD\n"

func TestUploadCSV(t *testing.T) {
	appT, repo, rates := newTestApp(t)

	repo.On("FindExisting", mock.Anything, mock.Anything).Return(nil, nil).Once()
	rates.On("GetRate", mock.Anything, "USD", "INR", mock.Anything).Return(80.0, nil).Once()
	repo.On("CreateMany", mock.Anything, mock.Anything).Return(nil).Once()

	resp := testutils.MakeUploadRequest(appT, "/transactions/upload",
		"batch.csv", "text/csv", []byte(uploadCSV), nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestUploadCSVBlockedBatch(t *testing.T) {
	appT, _, _ := newTestApp(t)

	bad := "date,description,amount,currency\n99-99-2025,Coffee,3.5,USD\n"
	resp := testutils.MakeUploadRequest(appT, "/transactions/upload",
		"batch.csv", "text/csv", []byte(bad), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	pd := decodeProblem(t, resp)
	assert.NotNil(t, pd.Errors, "the rejection report rides in the problem payload")
}

func TestUploadCSVSkipDuplicateCheck(t *testing.T) {
	appT, repo, rates := newTestApp(t)

	dup := "date,description,amount,currency\n" +
		"10-01-2025,Coffee,3.5,USD\n" +
		"10-01-2025,Coffee,3.5,USD\n"

	repo.On("FindExisting", mock.Anything, mock.Anything).Return(nil, nil).Once()
	rates.On("GetRate", mock.Anything, "USD", "INR", mock.Anything).Return(80.0, nil).Once()
	repo.On("CreateMany", mock.Anything, mock.Anything).Return(nil).Once()

	resp := testutils.MakeUploadRequest(appT, "/transactions/upload",
		"batch.csv", "text/csv", []byte(dup),
		map[string]string{"skipDuplicateCheck": "true"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestUploadRejectsWrongContentType(t *testing.T) {
	appT, _, _ := newTestApp(t)

	resp := testutils.MakeUploadRequest(appT, "/transactions/upload",
		"batch.xlsx", "application/vnd.ms-excel", []byte(uploadCSV), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	appT, _, _ := newTestApp(t)

	big := make([]byte, (1<<20)+1)
	resp := testutils.MakeUploadRequest(appT, "/transactions/upload",
		"batch.csv", "text/csv", big, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadRequiresFile(t *testing.T) {
	appT, _, _ := newTestApp(t)

	resp := testutils.MakeRequest(appT, "POST", "/transactions/upload", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHealthCheck(t *testing.T) {
	appT, _, _ := newTestApp(t)

	resp := testutils.MakeRequest(appT, "GET", "/", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
