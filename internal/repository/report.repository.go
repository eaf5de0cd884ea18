package repository

import (
	"context"
	"fmt"

	"github.com/kurirapp/courier-api/internal/model"
	"github.com/kurirapp/courier-api/pkg/pg"
)

type ReportRepository struct {
	*pg.DB
}

func NewReportRepository(db *pg.DB) *ReportRepository {
	return &ReportRepository{
		db,
	}
}

func (r *ReportRepository) Create(ctx context.Context, report *model.DeliveryReport) (*model.DeliveryReport, error) {
	entity := toReportEntity(report)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	return toReportModel(entity), nil
}

// ListByCourier returns the courier's reports, most recent first. The id
// tiebreak keeps the order stable when two rows share a timestamp.
func (r *ReportRepository) ListByCourier(ctx context.Context, courierID int64) ([]*model.DeliveryReport, error) {
	var entities []*DeliveryReportEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("courier_id = ?", courierID).
		Order("created_at DESC, id DESC").
		Find(&entities).Error
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	return toReportModels(entities), nil
}
