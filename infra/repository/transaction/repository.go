package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	infrarepo "github.com/skarim/finledger/infra/repository"
	"github.com/skarim/finledger/pkg/dto"
	"github.com/skarim/finledger/pkg/repository"
)

type gormRepository struct {
	db *gorm.DB
}

// New creates a transaction repository backed by the provided *gorm.DB.
func New(db *gorm.DB) repository.Transaction {
	return &gormRepository{db: db}
}

// Get implements repository.Transaction. It does not filter on the
// deleted flag so soft-deleted entries stay retrievable by id.
func (r *gormRepository) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	var tx Transaction
	err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToReadDTO(&tx), nil
}

// GetActive implements repository.Transaction.
func (r *gormRepository) GetActive(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	var tx Transaction
	err := r.db.WithContext(ctx).
		Where("deleted = ?", false).
		First(&tx, "id = ?", id).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToReadDTO(&tx), nil
}

// FindExisting implements repository.Transaction with a single query: an
// OR of (raw_date, description) conjunctions over non-deleted rows.
func (r *gormRepository) FindExisting(
	ctx context.Context,
	pairs []repository.DateDescription,
) ([]*dto.TransactionRead, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	cond := r.db.Where(
		"raw_date = ? AND description = ?", pairs[0].RawDate, pairs[0].Description)
	for _, p := range pairs[1:] {
		cond = cond.Or("raw_date = ? AND description = ?", p.RawDate, p.Description)
	}

	var txs []Transaction
	err := r.db.WithContext(ctx).
		Where("deleted = ?", false).
		Where(cond).
		Find(&txs).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}

	result := make([]*dto.TransactionRead, 0, len(txs))
	for i := range txs {
		result = append(result, mapModelToReadDTO(&txs[i]))
	}
	return result, nil
}

// Create implements repository.Transaction.
func (r *gormRepository) Create(ctx context.Context, create dto.TransactionCreate) error {
	tx := mapCreateDTOToModel(create)
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(&tx).Error)
}

// CreateMany implements repository.Transaction as one bulk insert.
func (r *gormRepository) CreateMany(ctx context.Context, creates []dto.TransactionCreate) error {
	if len(creates) == 0 {
		return nil
	}
	txs := make([]Transaction, len(creates))
	for i, c := range creates {
		txs[i] = mapCreateDTOToModel(c)
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(&txs).Error)
}

// Update implements repository.Transaction.
func (r *gormRepository) Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error {
	updates := mapUpdateDTOToModel(update)
	res := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("id = ?", id).
		Updates(updates)
	return infrarepo.MapGormErrorToDomain(res.Error)
}

// SoftDelete implements repository.Transaction. A nil or empty id list
// targets every non-deleted row.
func (r *gormRepository) SoftDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("deleted = ?", false)
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	res := q.Updates(map[string]any{
		"deleted":    true,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return 0, infrarepo.MapGormErrorToDomain(res.Error)
	}
	return res.RowsAffected, nil
}

// HardDelete implements repository.Transaction.
func (r *gormRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Transaction{}, "id = ?", id)
	if res.Error != nil {
		return infrarepo.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return infrarepo.MapGormErrorToDomain(gorm.ErrRecordNotFound)
	}
	return nil
}

// ListActive implements repository.Transaction: one page ordered by
// parsed_date descending plus the total count over the same filter.
func (r *gormRepository) ListActive(
	ctx context.Context,
	params repository.ListParams,
) ([]*dto.TransactionRead, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("deleted = ?", false)
	if params.Search != "" {
		base = base.Where("description ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, infrarepo.MapGormErrorToDomain(err)
	}

	var txs []Transaction
	err := base.
		Order("parsed_date DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&txs).Error
	if err != nil {
		return nil, 0, infrarepo.MapGormErrorToDomain(err)
	}

	result := make([]*dto.TransactionRead, 0, len(txs))
	for i := range txs {
		result = append(result, mapModelToReadDTO(&txs[i]))
	}
	return result, total, nil
}

// --- Mappers ---

func mapCreateDTOToModel(create dto.TransactionCreate) Transaction {
	return Transaction{
		ID:             create.ID,
		RawDate:        create.RawDate,
		ParsedDate:     create.ParsedDate,
		Description:    create.Description,
		AmountMinor:    create.AmountMinor,
		AmountRefMinor: create.AmountRefMinor,
		Currency:       create.Currency,
		Deleted:        false,
		CreatedAt:      create.CreatedAt,
		UpdatedAt:      create.UpdatedAt,
	}
}

func mapUpdateDTOToModel(update dto.TransactionUpdate) map[string]any {
	updates := map[string]any{
		"updated_at": update.UpdatedAt,
	}
	if update.RawDate != nil {
		updates["raw_date"] = *update.RawDate
	}
	if update.ParsedDate != nil {
		updates["parsed_date"] = *update.ParsedDate
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.AmountMinor != nil {
		updates["amount_minor"] = *update.AmountMinor
	}
	if update.AmountRefMinor != nil {
		updates["amount_ref_minor"] = *update.AmountRefMinor
	}
	if update.Currency != nil {
		updates["currency"] = *update.Currency
	}
	if update.Deleted != nil {
		updates["deleted"] = *update.Deleted
	}
	return updates
}

func mapModelToReadDTO(tx *Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:             tx.ID,
		RawDate:        tx.RawDate,
		ParsedDate:     tx.ParsedDate,
		Description:    tx.Description,
		AmountMinor:    tx.AmountMinor,
		AmountRefMinor: tx.AmountRefMinor,
		Currency:       tx.Currency,
		Deleted:        tx.Deleted,
		CreatedAt:      tx.CreatedAt,
		UpdatedAt:      tx.UpdatedAt,
	}
}
