package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gtlearning/storefront-backend/pkg/db/models"
	"github.com/gtlearning/storefront-backend/pkg/enums"
	"github.com/gtlearning/storefront-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a quotes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) NextSequence(ctx context.Context, year int) (int64, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "year"}},
			DoUpdates: clause.Assignments(map[string]any{
				"last_seq": gorm.Expr("quote_counters.last_seq + 1"),
			}),
		}).
		Create(&models.QuoteCounter{Year: year, LastSeq: 1}).Error
	if err != nil {
		return 0, err
	}

	var counter models.QuoteCounter
	if err := r.db.WithContext(ctx).First(&counter, "year = ?", year).Error; err != nil {
		return 0, err
	}
	return counter.LastSeq, nil
}

func (r *repository) Create(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	for i := range quote.Items {
		if quote.Items[i].ID == uuid.Nil {
			quote.Items[i].ID = uuid.New()
		}
		quote.Items[i].QuoteID = quote.ID
	}
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *repository) FindByReference(ctx context.Context, reference string) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("reference_number = ?", reference).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *repository) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Quote, error) {
	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at DESC, id DESC").
		Limit(limit)

	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Quote
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next enums.QuoteStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
