package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kurirapp/courier-api/internal/model"
	"github.com/kurirapp/courier-api/pkg/prom"
)

var (
	ErrMissingFields = errors.New("no_resi, latitude and longitude are required")
	ErrMissingPhoto  = errors.New("photo is required")
)

type ReportRepository interface {
	Create(ctx context.Context, report *model.DeliveryReport) (*model.DeliveryReport, error)
	ListByCourier(ctx context.Context, courierID int64) ([]*model.DeliveryReport, error)
}

type PhotoStore interface {
	Save(ctx context.Context, originalName string, data []byte) (string, error)
}

type ReportService struct {
	reports ReportRepository
	photos  PhotoStore
}

func NewReportService(reports ReportRepository, photos PhotoStore) *ReportService {
	return &ReportService{
		reports: reports,
		photos:  photos,
	}
}

// Submit stores the photo, then inserts the report row referencing it.
// The two writes are not transactional: a failed insert leaves the photo
// behind as an orphan and surfaces the error to the caller.
func (s *ReportService) Submit(ctx context.Context, req model.ReportCreateRequest) (*model.DeliveryReport, error) {
	if err := req.Validate(); err != nil {
		return nil, ErrMissingFields
	}
	if len(req.Photo) == 0 {
		return nil, ErrMissingPhoto
	}

	photoURL, err := s.photos.Save(ctx, req.PhotoName, req.Photo)
	if err != nil {
		return nil, fmt.Errorf("save photo: %w", err)
	}

	report, err := s.reports.Create(ctx, &model.DeliveryReport{
		CourierID:      req.CourierID,
		TrackingNumber: req.TrackingNumber,
		PhotoURL:       photoURL,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Status:         model.ReportStatusDelivered,
	})
	if err != nil {
		return nil, err
	}

	prom.IncReportSubmitted()
	return report, nil
}

// List returns the courier's report history, most recent first.
func (s *ReportService) List(ctx context.Context, courierID int64) ([]*model.DeliveryReport, error) {
	return s.reports.ListByCourier(ctx, courierID)
}
