package repository

import (
	"context"
	"errors"

	domainRepo "github.com/sangkips/galleauto-billing/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const invoiceSequenceName = "invoice"

type invoiceSequenceRepository struct {
	db *gorm.DB
}

// NewInvoiceSequenceRepository creates the invoice number counter repository
func NewInvoiceSequenceRepository(db *gorm.DB) domainRepo.InvoiceSequenceRepository {
	return &invoiceSequenceRepository{db: db}
}

func (r *invoiceSequenceRepository) Reserve(ctx context.Context, init func() (int64, error)) (int64, error) {
	db := conn(ctx, r.db)

	var seq InvoiceSequence
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&seq, "name = ?", invoiceSequenceName).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		start, err := init()
		if err != nil {
			return 0, err
		}
		seq = InvoiceSequence{Name: invoiceSequenceName, LastValue: start}
		// A concurrent creator wins the insert; re-read under lock afterwards.
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
			return 0, err
		}
		if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&seq, "name = ?", invoiceSequenceName).Error; err != nil {
			return 0, err
		}
	case err != nil:
		return 0, err
	}

	next := seq.LastValue + 1
	if err := db.Model(&InvoiceSequence{}).
		Where("name = ?", invoiceSequenceName).
		Update("last_value", next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

func (r *invoiceSequenceRepository) Peek(ctx context.Context) (int64, bool, error) {
	var seq InvoiceSequence
	err := conn(ctx, r.db).First(&seq, "name = ?", invoiceSequenceName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return seq.LastValue, true, nil
}

func (r *invoiceSequenceRepository) Set(ctx context.Context, value int64) error {
	seq := InvoiceSequence{Name: invoiceSequenceName, LastValue: value}
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_value", "updated_at"}),
	}).Create(&seq).Error
}
