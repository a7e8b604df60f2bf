package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	mock_handlers "github.com/langchou/garagebook/internal/api/handlers/mocks"
	"github.com/langchou/garagebook/internal/models"
	"github.com/langchou/garagebook/internal/repository"
	"github.com/langchou/garagebook/internal/service"
	"github.com/langchou/garagebook/pkg/ws"
)

type testEnv struct {
	router      *gin.Engine
	garages     *mock_handlers.MockGarageService
	cars        *mock_handlers.MockCarService
	maintenance *mock_handlers.MockMaintenanceService
	db          *mock_handlers.MockPinger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	env := &testEnv{
		garages:     mock_handlers.NewMockGarageService(ctrl),
		cars:        mock_handlers.NewMockCarService(ctrl),
		maintenance: mock_handlers.NewMockMaintenanceService(ctrl),
		db:          mock_handlers.NewMockPinger(ctrl),
	}

	h := NewHandler(zap.NewNop(), env.garages, env.cars, env.maintenance, env.db, ws.NewHub(zap.NewNop()))
	env.router = gin.New()
	env.router.Use(RequestID(), Metrics())
	h.RegisterRoutes(env.router)
	return env
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{"validation", &service.ValidationError{Message: "capacity must be at least 1"}, http.StatusBadRequest, `{"error":"capacity must be at least 1"}`},
		{"not found", repository.ErrGarageNotFound, http.StatusNotFound, `{"error":"garage not found"}`},
		{"conflict", repository.ErrGarageFull, http.StatusConflict, `{"error":"conflict: garage is full"}`},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, `{"error":"Failed to get garage"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.garages.EXPECT().Get(gomock.Any(), int64(1)).Return(nil, tt.err)

			rec := env.do(http.MethodGet, "/garages/1", "")
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestGarageHandlers(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		env := newTestEnv(t)
		env.garages.EXPECT().
			Create(gomock.Any(), models.GarageInput{Name: "North", Location: "1 Main St", City: "Sofia", Capacity: 3}).
			Return(&models.Garage{ID: 1, Name: "North", Location: "1 Main St", City: "Sofia", Capacity: 3}, nil)

		rec := env.do(http.MethodPost, "/garages", `{"name":"North","location":"1 Main St","city":"Sofia","capacity":3}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":1,"name":"North","location":"1 Main St","city":"Sofia","capacity":3}`, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	})

	t.Run("create without name", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(http.MethodPost, "/garages", `{"location":"1 Main St","city":"Sofia","capacity":3}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list filters by city and never returns null", func(t *testing.T) {
		env := newTestEnv(t)
		env.garages.EXPECT().List(gomock.Any(), models.GarageFilter{City: "Sofia"}).Return([]models.Garage{}, nil)

		rec := env.do(http.MethodGet, "/garages?city=Sofia", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", rec.Body.String())
	})

	t.Run("invalid id", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(http.MethodGet, "/garages/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update", func(t *testing.T) {
		env := newTestEnv(t)
		env.garages.EXPECT().
			Update(gomock.Any(), int64(2), models.GarageInput{Name: "N", Location: "L", City: "C", Capacity: 0}).
			Return(&models.Garage{ID: 2, Name: "N", Location: "L", City: "C"}, nil)

		rec := env.do(http.MethodPut, "/garages/2", `{"name":"N","location":"L","city":"C","capacity":0}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete missing", func(t *testing.T) {
		env := newTestEnv(t)
		env.garages.EXPECT().Delete(gomock.Any(), int64(9)).Return(repository.ErrGarageNotFound)

		rec := env.do(http.MethodDelete, "/garages/9", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		env := newTestEnv(t)
		env.garages.EXPECT().Delete(gomock.Any(), int64(9)).Return(nil)

		rec := env.do(http.MethodDelete, "/garages/9", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Garage deleted successfully"}`, rec.Body.String())
	})
}

func TestDailyAvailabilityReport(t *testing.T) {
	day := models.NewDate(2024, time.January, 5)

	t.Run("report", func(t *testing.T) {
		env := newTestEnv(t)
		env.garages.EXPECT().
			DailyAvailability(gomock.Any(), int64(1), day, day).
			Return([]models.DailyAvailability{{Date: "2024-01-05", Requests: 2, FreeCapacity: 1}}, nil)

		rec := env.do(http.MethodGet, "/garages/dailyAvailabilityReport?garageId=1&startDate=2024-01-05&endDate=2024-01-05", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"date":"2024-01-05","requests":2,"free_capacity":1}]`, rec.Body.String())
	})

	t.Run("legacy alias", func(t *testing.T) {
		env := newTestEnv(t)
		env.garages.EXPECT().
			DailyAvailability(gomock.Any(), int64(4), day, day.AddDays(1)).
			Return([]models.DailyAvailability{}, nil)

		rec := env.do(http.MethodGet, "/garages/4/stats?start_date=2024-01-05&end_date=2024-01-06", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	tests := []struct {
		name  string
		query string
	}{
		{"malformed date", "garageId=1&startDate=2024-13-01&endDate=2024-01-05"},
		{"missing end date", "garageId=1&startDate=2024-01-01"},
		{"missing garage", "startDate=2024-01-01&endDate=2024-01-05"},
		{"malformed garage", "garageId=x&startDate=2024-01-01&endDate=2024-01-05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rec := env.do(http.MethodGet, "/garages/dailyAvailabilityReport?"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCarHandlers(t *testing.T) {
	t.Run("create in a full garage", func(t *testing.T) {
		env := newTestEnv(t)
		env.cars.EXPECT().
			Create(gomock.Any(), models.CarInput{Make: "Toyota", Model: "Yaris", ProductionYear: 2019, LicensePlate: "A1", GarageIDs: []int64{3}}).
			Return(nil, repository.ErrGarageFull)

		rec := env.do(http.MethodPost, "/cars", `{"make":"Toyota","model":"Yaris","productionYear":2019,"licensePlate":"A1","garageIds":[3]}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("list with filters", func(t *testing.T) {
		env := newTestEnv(t)
		env.cars.EXPECT().
			List(gomock.Any(), models.CarFilter{Make: "toy", GarageID: 2, FromYear: 2010, ToYear: 2020}).
			Return([]models.Car{{ID: 1, Make: "Toyota", GarageIDs: []int64{2}, Garages: []models.Garage{{ID: 2}}}}, nil)

		rec := env.do(http.MethodGet, "/cars?carMake=toy&garageId=2&fromYear=2010&toYear=2020", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var cars []models.Car
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cars))
		require.Len(t, cars, 1)
		assert.Equal(t, []int64{2}, cars[0].GarageIDs)
	})

	t.Run("list all ignores filters", func(t *testing.T) {
		env := newTestEnv(t)
		env.cars.EXPECT().List(gomock.Any(), models.CarFilter{}).Return([]models.Car{}, nil)

		rec := env.do(http.MethodGet, "/cars/all?carMake=toy", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", rec.Body.String())
	})

	t.Run("list with malformed year", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(http.MethodGet, "/cars?fromYear=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update", func(t *testing.T) {
		env := newTestEnv(t)
		env.cars.EXPECT().
			Update(gomock.Any(), int64(5), gomock.Any()).
			Return(&models.Car{ID: 5, Make: "Honda", Model: "Civic", ProductionYear: 2018, LicensePlate: "B2"}, nil)

		rec := env.do(http.MethodPut, "/cars/5", `{"make":"Honda","model":"Civic","productionYear":2018,"licensePlate":"B2"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		env := newTestEnv(t)
		env.cars.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)

		rec := env.do(http.MethodDelete, "/cars/5", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestMaintenanceHandlers(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		env := newTestEnv(t)
		date := models.NewDate(2024, time.January, 5)
		env.maintenance.EXPECT().
			Create(gomock.Any(), models.MaintenanceInput{GarageID: 1, CarID: 2, ScheduledDate: date, ServiceType: "Oil"}).
			Return(&models.MaintenanceRequest{
				ID: 3, GarageID: 1, GarageName: "North", CarID: 2, CarName: "Toyota Yaris",
				ScheduledDate: date, ServiceType: "Oil", Status: models.StatusScheduled,
			}, nil)

		rec := env.do(http.MethodPost, "/maintenance", `{"garageId":1,"carId":2,"scheduledDate":"2024-01-05","serviceType":"Oil"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":3,"garageId":1,"garageName":"North","carId":2,"carName":"Toyota Yaris","scheduledDate":"2024-01-05","serviceType":"Oil","status":"scheduled"}`, rec.Body.String())
	})

	t.Run("create with malformed date", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(http.MethodPost, "/maintenance", `{"garageId":1,"carId":2,"scheduledDate":"05/01/2024","serviceType":"Oil"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create without capacity", func(t *testing.T) {
		env := newTestEnv(t)
		env.maintenance.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, repository.ErrNoCapacity)

		rec := env.do(http.MethodPost, "/maintenance", `{"garageId":1,"carId":2,"scheduledDate":"2024-01-05","serviceType":"Oil"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("list with date range", func(t *testing.T) {
		env := newTestEnv(t)
		env.maintenance.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f models.MaintenanceFilter) ([]models.MaintenanceRequest, error) {
				assert.Equal(t, int64(2), f.CarID)
				require.NotNil(t, f.StartDate)
				assert.Equal(t, "2024-01-01", f.StartDate.String())
				assert.Nil(t, f.EndDate)
				return []models.MaintenanceRequest{}, nil
			})

		rec := env.do(http.MethodGet, "/maintenance?carId=2&startDate=2024-01-01", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", rec.Body.String())
	})

	t.Run("list with malformed date", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(http.MethodGet, "/maintenance?endDate=tomorrow", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("illegal transition", func(t *testing.T) {
		env := newTestEnv(t)
		env.maintenance.EXPECT().
			Transition(gomock.Any(), int64(3), "start").
			Return(nil, repository.ErrConflict)

		rec := env.do(http.MethodPost, "/maintenance/3/transition", `{"event":"start"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("transition", func(t *testing.T) {
		env := newTestEnv(t)
		env.maintenance.EXPECT().
			Transition(gomock.Any(), int64(3), "complete").
			Return(&service.TransitionResult{
				Request:         &models.MaintenanceRequest{ID: 3, Status: models.StatusCompleted},
				From:            models.StatusInProgress,
				To:              models.StatusCompleted,
				Event:           "complete",
				AvailableEvents: []string{},
			}, nil)

		rec := env.do(http.MethodPost, "/maintenance/3/transition", `{"event":"complete"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"to":"completed"`)
		assert.Contains(t, rec.Body.String(), `"availableEvents":[]`)
	})

	t.Run("delete missing", func(t *testing.T) {
		env := newTestEnv(t)
		env.maintenance.EXPECT().Delete(gomock.Any(), int64(8)).Return(repository.ErrRequestNotFound)

		rec := env.do(http.MethodDelete, "/maintenance/8", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMonthlyReports(t *testing.T) {
	jan := models.NewDate(2024, time.January, 1)
	mar := models.NewDate(2024, time.March, 1)

	t.Run("monthly requests report", func(t *testing.T) {
		env := newTestEnv(t)
		env.maintenance.EXPECT().
			MonthlyReport(gomock.Any(), int64(0), jan, mar).
			Return([]models.MonthlyRequests{{YearMonth: models.YearMonth{Year: 2024, MonthValue: 1}, Requests: 0}}, nil)

		rec := env.do(http.MethodGet, "/maintenance/monthlyRequestsReport?startMonth=2024-01&endMonth=2024-03", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"yearMonth":{"year":2024,"monthValue":1},"requests":0}]`, rec.Body.String())
	})

	t.Run("stats", func(t *testing.T) {
		env := newTestEnv(t)
		env.maintenance.EXPECT().
			Stats(gomock.Any(), int64(2), jan, jan).
			Return([]models.MonthStats{{Month: "2024-01", RequestCount: 5}}, nil)

		rec := env.do(http.MethodGet, "/maintenance/stats?garageId=2&startMonth=2024-01&endMonth=2024-01", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"month":"2024-01","request_count":5}]`, rec.Body.String())
	})

	t.Run("stats without end month", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(http.MethodGet, "/maintenance/stats?startMonth=2024-01", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed month", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(http.MethodGet, "/maintenance/monthlyRequestsReport?startMonth=2024-1-1&endMonth=2024-03", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t)
		env.db.EXPECT().Ping(gomock.Any()).Return(nil)

		rec := env.do(http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","database":"ok","ws_clients":0}`, rec.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		env := newTestEnv(t)
		env.db.EXPECT().Ping(gomock.Any()).Return(errors.New("dial tcp: connection refused"))

		rec := env.do(http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.db.EXPECT().Ping(gomock.Any()).Return(nil)
	env.do(http.MethodGet, "/health", "")

	rec := env.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "garagebook_http_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.GET("/garages", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/garages", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
