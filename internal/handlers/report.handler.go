package handlers

import (
	"context"
	"errors"
	"io"

	"github.com/fasthttp/router"
	"github.com/kurirapp/courier-api/internal/model"
	"github.com/kurirapp/courier-api/internal/services"
	xhttp "github.com/kurirapp/courier-api/pkg/http"
	"github.com/kurirapp/courier-api/pkg/logger"
)

type ReportService interface {
	Submit(ctx context.Context, req model.ReportCreateRequest) (*model.DeliveryReport, error)
	List(ctx context.Context, courierID int64) ([]*model.DeliveryReport, error)
}

type ReportHandler struct {
	svc ReportService
}

func RegisterReportRoutes(e *router.Group, h *ReportHandler, tokens TokenVerifier) {
	e.POST("/laporan", RequireAuth(tokens, h.SubmitReport))
	e.GET("/laporan", RequireAuth(tokens, h.ListReports))
}

func NewReportHandler(reportService ReportService) *ReportHandler {
	return &ReportHandler{
		svc: reportService,
	}
}

func (h *ReportHandler) SubmitReport(ctx *xhttp.RequestCtx) {
	courierID, ok := CourierIDFromCtx(ctx)
	if !ok {
		writeError(ctx, xhttp.StatusForbidden, "invalid token")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid multipart form")
		return
	}

	req := model.ReportCreateRequest{
		CourierID:      courierID,
		TrackingNumber: formValue(form.Value, "no_resi"),
		Latitude:       formValue(form.Value, "latitude"),
		Longitude:      formValue(form.Value, "longitude"),
	}

	if files := form.File["foto"]; len(files) > 0 {
		fh := files[0]
		f, err := fh.Open()
		if err != nil {
			writeError(ctx, xhttp.StatusBadRequest, "unreadable photo upload")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(ctx, xhttp.StatusBadRequest, "unreadable photo upload")
			return
		}
		req.PhotoName = fh.Filename
		req.Photo = data
	}

	if _, err := h.svc.Submit(ctx, req); err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields),
			errors.Is(err, services.ErrMissingPhoto):
			writeError(ctx, xhttp.StatusBadRequest, err.Error())
		default:
			logger.Error("submit report failed", "error", err)
			writeError(ctx, xhttp.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeMessage(ctx, xhttp.StatusOK, "report submitted")
}

func (h *ReportHandler) ListReports(ctx *xhttp.RequestCtx) {
	courierID, ok := CourierIDFromCtx(ctx)
	if !ok {
		writeError(ctx, xhttp.StatusForbidden, "invalid token")
		return
	}

	reports, err := h.svc.List(ctx, courierID)
	if err != nil {
		logger.Error("list reports failed", "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "internal server error")
		return
	}

	if reports == nil {
		reports = []*model.DeliveryReport{}
	}
	writeJSON(ctx, xhttp.StatusOK, reports)
}

func formValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
