// Package transaction exposes the ledger over HTTP: single-entry CRUD,
// bulk soft-delete, paginated listing and CSV batch upload.
package transaction

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/skarim/finledger/pkg/config"
	"github.com/skarim/finledger/pkg/ingest"
	ingestsvc "github.com/skarim/finledger/pkg/service/ingest"
	transactionsvc "github.com/skarim/finledger/pkg/service/transaction"
	"github.com/skarim/finledger/webapi/common"
)

// Routes registers HTTP routes for ledger operations.
func Routes(
	app *fiber.App,
	txSvc *transactionsvc.Service,
	ingSvc *ingestsvc.Service,
	cfg *config.App,
) {
	group := app.Group("/transactions")

	group.Post("/", Create(txSvc))
	group.Post("/upload", Upload(ingSvc, cfg.Upload))
	group.Get("/", List(txSvc))
	group.Put("/:id", Update(txSvc))
	group.Delete("/:id", Delete(txSvc))
	group.Delete("/", BulkDelete(txSvc))
}

// Create adds a single transaction.
func Create(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateRequest](c)
		if err != nil {
			return nil
		}

		tx, err := svc.Create(c.Context(), transactionsvc.CreateInput{
			Date:        input.Date,
			Description: input.Description,
			Amount:      input.Amount,
			Currency:    input.Currency,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to add transaction", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusCreated, "Transaction added successfully", tx)
	}
}

// Update applies a partial edit to a non-deleted transaction.
func Update(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid transaction id", err, fiber.StatusBadRequest)
		}

		input, err := common.BindAndValidate[UpdateRequest](c)
		if err != nil {
			return nil
		}

		tx, err := svc.Update(c.Context(), id, transactionsvc.UpdateInput{
			Date:        input.Date,
			Description: input.Description,
			Amount:      input.Amount,
			Currency:    input.Currency,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update transaction", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Transaction updated successfully", tx)
	}
}

// Delete soft-deletes one transaction.
func Delete(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid transaction id", err, fiber.StatusBadRequest)
		}

		if err := svc.SoftDelete(c.Context(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete transaction", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Transaction soft deleted successfully", fiber.Map{"id": id})
	}
}

// BulkDelete soft-deletes the listed transactions, or every non-deleted
// transaction when the body is empty or lists no ids.
func BulkDelete(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ids []uuid.UUID
		if len(c.Body()) > 0 {
			var input BulkDeleteRequest
			if err := c.BodyParser(&input); err != nil {
				return common.ProblemDetailsJSON(
					c, "Invalid request body", err, fiber.StatusBadRequest)
			}
			for _, raw := range input.IDs {
				id, err := uuid.Parse(raw)
				if err != nil {
					return common.ProblemDetailsJSON(
						c, "Invalid transaction id", err, fiber.StatusBadRequest)
				}
				ids = append(ids, id)
			}
		}

		count, err := svc.SoftDeleteBulk(c.Context(), ids)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete transactions", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Transactions soft deleted successfully",
			fiber.Map{"deleted_count": count})
	}
}

// List returns one page of non-deleted transactions ordered by parsed
// date descending, optionally filtered by a case-insensitive substring
// match on description.
func List(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, bad := parsePagination(c)
		if len(bad) > 0 {
			return common.ProblemDetailsJSON(
				c, "Invalid pagination parameters", nil,
				fmt.Sprintf("Invalid value for: %s. Must be a positive integer.",
					strings.Join(bad, ", ")),
				fiber.StatusBadRequest)
		}

		result, err := svc.List(c.Context(), page, limit, c.Query("search"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(
			c, fiber.StatusOK, "Transactions fetched successfully", ListResponse{
				Transactions: result.Transactions,
				TotalCount:   result.TotalCount,
				Page:         page,
				Limit:        limit,
			})
	}
}

// parsePagination reads page and limit, defaulting absent values and
// naming every parameter that is non-numeric or below 1.
func parsePagination(c *fiber.Ctx) (page, limit int, bad []string) {
	page, limit = 1, 10
	if raw := c.Query("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			bad = append(bad, "page")
		} else {
			page = v
		}
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			bad = append(bad, "limit")
		} else {
			limit = v
		}
	}
	return page, limit, bad
}

// Upload ingests a CSV batch. Exactly one text/csv file within the
// configured size cap; duplicates inside the batch can be skipped with
// the skipDuplicateCheck form value.
func Upload(svc *ingestsvc.Service, cfg *config.Upload) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return common.ProblemDetailsJSON(
				c, "Invalid multipart form", err, fiber.StatusBadRequest)
		}

		files := form.File["file"]
		if len(files) == 0 {
			return common.ProblemDetailsJSON(
				c, "No file uploaded", nil,
				"Attach a CSV file under the 'file' field.", fiber.StatusBadRequest)
		}
		if len(files) > 1 {
			return common.ProblemDetailsJSON(
				c, "Too many files", nil,
				"Only a single file may be uploaded.", fiber.StatusBadRequest)
		}

		fh := files[0]
		if fh.Size > cfg.MaxBytes {
			return common.ProblemDetailsJSON(
				c, "File too large", nil,
				fmt.Sprintf("File exceeds the maximum allowed size of %d bytes.", cfg.MaxBytes),
				fiber.StatusBadRequest)
		}
		if ct := fh.Header.Get(fiber.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
			return common.ProblemDetailsJSON(
				c, "Unsupported file type", nil,
				"Only CSV files are accepted.", fiber.StatusBadRequest)
		}

		f, err := fh.Open()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to read uploaded file", err)
		}
		defer f.Close() //nolint:errcheck
		data, err := io.ReadAll(f)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to read uploaded file", err)
		}

		skip := c.FormValue("skipDuplicateCheck") == "true"
		report, err := svc.ProcessCSV(c.Context(), data, skip)
		if err != nil {
			if errors.Is(err, ingest.ErrMalformedCSV) || errors.Is(err, ingest.ErrMissingHeaders) {
				return common.ProblemDetailsJSON(
					c, "Invalid CSV file", err, fiber.StatusBadRequest)
			}
			return common.ProblemDetailsJSON(c, "Failed to process CSV file", err)
		}

		if report.Blocked() {
			return common.ProblemDetailsJSON(
				c, report.Message, nil, report, fiber.StatusBadRequest)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, report.Message, report)
	}
}
