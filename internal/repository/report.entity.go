package repository

import (
	"time"

	"github.com/kurirapp/courier-api/internal/model"
)

type DeliveryReportEntity struct {
	ID             int64     `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	CourierID      int64     `db:"courier_id"      gorm:"column:courier_id;not null;index"`
	TrackingNumber string    `db:"tracking_number" gorm:"column:tracking_number;not null"`
	PhotoURL       string    `db:"photo_url"       gorm:"column:photo_url;not null"`
	Latitude       string    `db:"latitude"        gorm:"column:latitude;not null"`
	Longitude      string    `db:"longitude"       gorm:"column:longitude;not null"`
	Status         string    `db:"status"          gorm:"column:status;not null"`
	CreatedAt      time.Time `db:"created_at"      gorm:"column:created_at;autoCreateTime"`
}

func (DeliveryReportEntity) TableName() string {
	return "delivery_reports"
}

func toReportEntity(m *model.DeliveryReport) *DeliveryReportEntity {
	if m == nil {
		return nil
	}
	return &DeliveryReportEntity{
		ID:             m.ID,
		CourierID:      m.CourierID,
		TrackingNumber: m.TrackingNumber,
		PhotoURL:       m.PhotoURL,
		Latitude:       m.Latitude,
		Longitude:      m.Longitude,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
	}
}

func toReportModel(e *DeliveryReportEntity) *model.DeliveryReport {
	if e == nil {
		return nil
	}
	return &model.DeliveryReport{
		ID:             e.ID,
		CourierID:      e.CourierID,
		TrackingNumber: e.TrackingNumber,
		PhotoURL:       e.PhotoURL,
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		Status:         e.Status,
		CreatedAt:      e.CreatedAt,
	}
}

func toReportModels(entities []*DeliveryReportEntity) []*model.DeliveryReport {
	if entities == nil {
		return nil
	}
	models := make([]*model.DeliveryReport, len(entities))
	for i, e := range entities {
		models[i] = toReportModel(e)
	}
	return models
}
