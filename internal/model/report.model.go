package model

import (
	"errors"
	"time"
)

// ReportStatusDelivered is the only status a report can carry. Reports are
// written once on submission and never move through further states.
const ReportStatusDelivered = "delivered"

type DeliveryReport struct {
	ID             int64     `json:"id"         db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	CourierID      int64     `json:"courier_id" db:"courier_id"      gorm:"column:courier_id;not null;index"`
	Courier        *Courier  `json:"-"                                gorm:"foreignKey:CourierID;references:ID;constraint:OnDelete:CASCADE"`
	TrackingNumber string    `json:"no_resi"    db:"tracking_number" gorm:"column:tracking_number;not null"`
	PhotoURL       string    `json:"foto"       db:"photo_url"       gorm:"column:photo_url;not null"`
	Latitude       string    `json:"latitude"   db:"latitude"        gorm:"column:latitude;not null"`
	Longitude      string    `json:"longitude"  db:"longitude"       gorm:"column:longitude;not null"`
	Status         string    `json:"status"     db:"status"          gorm:"column:status;not null"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"      gorm:"column:created_at;autoCreateTime"`
}

func (DeliveryReport) TableName() string { return "delivery_reports" }

// ReportCreateRequest is the input for submitting a delivery report. Photo
// holds the raw upload bytes; PhotoName is the client-side filename, used
// only for its extension.
type ReportCreateRequest struct {
	CourierID      int64
	TrackingNumber string
	Latitude       string
	Longitude      string
	PhotoName      string
	Photo          []byte
}

func (p ReportCreateRequest) Validate() error {
	if p.CourierID == 0 {
		return errors.New("courier_id is required")
	}
	if p.TrackingNumber == "" {
		return errors.New("no_resi is required")
	}
	if p.Latitude == "" {
		return errors.New("latitude is required")
	}
	if p.Longitude == "" {
		return errors.New("longitude is required")
	}
	return nil
}
