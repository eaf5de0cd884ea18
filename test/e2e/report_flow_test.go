package e2e

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"reflect"
	"testing"
	"time"

	"github.com/kurirapp/courier-api/internal/handlers"
	"github.com/kurirapp/courier-api/internal/model"
	"github.com/kurirapp/courier-api/internal/repository"
	"github.com/kurirapp/courier-api/internal/services"
	"github.com/kurirapp/courier-api/internal/storage"
	"github.com/kurirapp/courier-api/internal/token"
	xhttp "github.com/kurirapp/courier-api/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kurirapp/courier-api/pkg/pg"
)

type TestEnvironment struct {
	DB            *pg.DB
	Tokens        *token.Manager
	PhotoStore    *storage.LocalStorage
	CourierRepo   *repository.CourierRepository
	ReportRepo    *repository.ReportRepository
	AuthService   *services.AuthService
	ReportService *services.ReportService
	AuthHandler   *handlers.AuthHandler
	ReportHandler *handlers.ReportHandler
}

func setupE2EEnvironment(t *testing.T) *TestEnvironment {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.CourierEntity{},
		&repository.DeliveryReportEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	dbField := pgDBValue.FieldByName("db")
	dbField = reflect.NewAt(dbField.Type(), dbField.Addr().UnsafePointer()).Elem()
	dbField.Set(reflect.ValueOf(db))

	photoStore, err := storage.NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)

	tokens := token.NewManager("e2e-secret", time.Hour)

	courierRepo := repository.NewCourierRepository(pgDB)
	reportRepo := repository.NewReportRepository(pgDB)

	authService := services.NewAuthService(courierRepo, tokens)
	reportService := services.NewReportService(reportRepo, photoStore)

	return &TestEnvironment{
		DB:            pgDB,
		Tokens:        tokens,
		PhotoStore:    photoStore,
		CourierRepo:   courierRepo,
		ReportRepo:    reportRepo,
		AuthService:   authService,
		ReportService: reportService,
		AuthHandler:   handlers.NewAuthHandler(authService),
		ReportHandler: handlers.NewReportHandler(reportService),
	}
}

func jsonRequest(method, path string, v any) *xhttp.RequestCtx {
	body, _ := json.Marshal(v)
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&fasthttp.Request{}, nil, nil)
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	ctx.Request.SetBody(body)
	return ctx
}

func multipartRequest(t *testing.T, resi, lat, lng string, photo []byte, bearer string) *xhttp.RequestCtx {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("no_resi", resi))
	require.NoError(t, w.WriteField("latitude", lat))
	require.NoError(t, w.WriteField("longitude", lng))
	if photo != nil {
		fw, err := w.CreateFormFile("foto", "bukti.jpg")
		require.NoError(t, err)
		_, err = fw.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&fasthttp.Request{}, nil, nil)
	ctx.Request.Header.SetMethod("POST")
	ctx.Request.SetRequestURI("/api/laporan")
	ctx.Request.Header.SetContentType(w.FormDataContentType())
	ctx.Request.SetBody(buf.Bytes())
	if bearer != "" {
		ctx.Request.Header.Set("Authorization", "Bearer "+bearer)
	}
	return ctx
}

func listRequest(bearer string) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&fasthttp.Request{}, nil, nil)
	ctx.Request.Header.SetMethod("GET")
	ctx.Request.SetRequestURI("/api/laporan")
	if bearer != "" {
		ctx.Request.Header.Set("Authorization", "Bearer "+bearer)
	}
	return ctx
}

func TestReportFlow_EndToEnd(t *testing.T) {
	env := setupE2EEnvironment(t)

	// register
	ctx := jsonRequest("POST", "/api/register", model.RegisterRequest{Username: "alice", Password: "secret123"})
	env.AuthHandler.Register(ctx)
	require.Equal(t, 201, ctx.Response.StatusCode())

	// duplicate registration is rejected
	ctx = jsonRequest("POST", "/api/register", model.RegisterRequest{Username: "alice", Password: "secret123"})
	env.AuthHandler.Register(ctx)
	require.Equal(t, 400, ctx.Response.StatusCode())

	// login
	ctx = jsonRequest("POST", "/api/login", model.LoginRequest{Username: "alice", Password: "secret123"})
	env.AuthHandler.Login(ctx)
	require.Equal(t, 200, ctx.Response.StatusCode())

	var login struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &login))
	require.NotEmpty(t, login.Token)

	// submit a report with the bearer token
	ctx = multipartRequest(t, "RESI1", "-6.2001", "106.8166", []byte("jpeg bytes"), login.Token)
	handlers.RequireAuth(env.Tokens, env.ReportHandler.SubmitReport)(ctx)
	require.Equal(t, 200, ctx.Response.StatusCode())

	// history contains exactly that report
	ctx = listRequest(login.Token)
	handlers.RequireAuth(env.Tokens, env.ReportHandler.ListReports)(ctx)
	require.Equal(t, 200, ctx.Response.StatusCode())

	var reports []*model.DeliveryReport
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "RESI1", reports[0].TrackingNumber)
	assert.Equal(t, model.ReportStatusDelivered, reports[0].Status)
	assert.NotEmpty(t, reports[0].PhotoURL)
}

func TestReportFlow_AuthFailures(t *testing.T) {
	env := setupE2EEnvironment(t)

	// wrong password after a valid registration
	ctx := jsonRequest("POST", "/api/register", model.RegisterRequest{Username: "alice", Password: "secret123"})
	env.AuthHandler.Register(ctx)
	require.Equal(t, 201, ctx.Response.StatusCode())

	ctx = jsonRequest("POST", "/api/login", model.LoginRequest{Username: "alice", Password: "wrong"})
	env.AuthHandler.Login(ctx)
	assert.Equal(t, 401, ctx.Response.StatusCode())

	ctx = jsonRequest("POST", "/api/login", model.LoginRequest{Username: "ghost", Password: "secret123"})
	env.AuthHandler.Login(ctx)
	assert.Equal(t, 401, ctx.Response.StatusCode())

	// protected routes without a token never reach the stores
	ctx = listRequest("")
	handlers.RequireAuth(env.Tokens, env.ReportHandler.ListReports)(ctx)
	assert.Equal(t, 403, ctx.Response.StatusCode())

	ctx = multipartRequest(t, "RESI1", "-6.2001", "106.8166", []byte("jpeg bytes"), "")
	handlers.RequireAuth(env.Tokens, env.ReportHandler.SubmitReport)(ctx)
	assert.Equal(t, 403, ctx.Response.StatusCode())

	reports, err := env.ReportRepo.ListByCourier(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, reports, 0)
}

func TestReportFlow_CourierIsolation(t *testing.T) {
	env := setupE2EEnvironment(t)

	tokens := make(map[string]string)
	for _, username := range []string{"alice", "bob"} {
		ctx := jsonRequest("POST", "/api/register", model.RegisterRequest{Username: username, Password: "secret123"})
		env.AuthHandler.Register(ctx)
		require.Equal(t, 201, ctx.Response.StatusCode())

		ctx = jsonRequest("POST", "/api/login", model.LoginRequest{Username: username, Password: "secret123"})
		env.AuthHandler.Login(ctx)
		require.Equal(t, 200, ctx.Response.StatusCode())

		var login struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &login))
		tokens[username] = login.Token
	}

	ctx := multipartRequest(t, "ALICE-1", "-6.2001", "106.8166", []byte("a"), tokens["alice"])
	handlers.RequireAuth(env.Tokens, env.ReportHandler.SubmitReport)(ctx)
	require.Equal(t, 200, ctx.Response.StatusCode())

	ctx = multipartRequest(t, "BOB-1", "-6.3000", "106.9000", []byte("b"), tokens["bob"])
	handlers.RequireAuth(env.Tokens, env.ReportHandler.SubmitReport)(ctx)
	require.Equal(t, 200, ctx.Response.StatusCode())

	ctx = listRequest(tokens["alice"])
	handlers.RequireAuth(env.Tokens, env.ReportHandler.ListReports)(ctx)
	require.Equal(t, 200, ctx.Response.StatusCode())

	var aliceReports []*model.DeliveryReport
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &aliceReports))
	require.Len(t, aliceReports, 1)
	assert.Equal(t, "ALICE-1", aliceReports[0].TrackingNumber)

	ctx = listRequest(tokens["bob"])
	handlers.RequireAuth(env.Tokens, env.ReportHandler.ListReports)(ctx)
	require.Equal(t, 200, ctx.Response.StatusCode())

	var bobReports []*model.DeliveryReport
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &bobReports))
	require.Len(t, bobReports, 1)
	assert.Equal(t, "BOB-1", bobReports[0].TrackingNumber)
}

func TestReportFlow_MissingPhoto(t *testing.T) {
	env := setupE2EEnvironment(t)

	ctx := jsonRequest("POST", "/api/register", model.RegisterRequest{Username: "alice", Password: "secret123"})
	env.AuthHandler.Register(ctx)
	require.Equal(t, 201, ctx.Response.StatusCode())

	ctx = jsonRequest("POST", "/api/login", model.LoginRequest{Username: "alice", Password: "secret123"})
	env.AuthHandler.Login(ctx)
	require.Equal(t, 200, ctx.Response.StatusCode())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &login))

	ctx = multipartRequest(t, "RESI1", "-6.2001", "106.8166", nil, login.Token)
	handlers.RequireAuth(env.Tokens, env.ReportHandler.SubmitReport)(ctx)
	assert.Equal(t, 400, ctx.Response.StatusCode())

	// no row was created
	ctx = listRequest(login.Token)
	handlers.RequireAuth(env.Tokens, env.ReportHandler.ListReports)(ctx)
	require.Equal(t, 200, ctx.Response.StatusCode())

	var reports []*model.DeliveryReport
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &reports))
	assert.Len(t, reports, 0)
}
