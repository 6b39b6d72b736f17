package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/vladimiradmaev/fitness-helper/internal/api"
	"github.com/vladimiradmaev/fitness-helper/internal/calories"
	"github.com/vladimiradmaev/fitness-helper/internal/config"
	"github.com/vladimiradmaev/fitness-helper/internal/database"
	"github.com/vladimiradmaev/fitness-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/fitness-helper/internal/errors"
	"github.com/vladimiradmaev/fitness-helper/internal/repository"
	"github.com/vladimiradmaev/fitness-helper/internal/services"
)

var fixedNow = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func newServer(t *testing.T, overrides ...func(*api.Dependencies)) (*api.Server, uint) {
	t.Helper()
	db, err := database.Open(config.DBConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "api.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	userRepo := repository.NewUserRepository(db)
	logRepo := repository.NewLogRepository(db)
	est := calories.NewDefault()
	now := func() time.Time { return fixedNow }

	users := services.NewUserService(userRepo)
	u, err := users.RegisterUser(context.Background(), 7, "api", "", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	deps := api.Dependencies{
		UserService:    users,
		FoodLogSvc:     services.NewFoodLogService(logRepo, est, time.UTC).WithClock(now),
		ExerciseLogSvc: services.NewExerciseLogService(userRepo, logRepo, est, time.UTC).WithClock(now),
		ReportSvc:      services.NewReportService(logRepo, services.NewCoachServiceWithGenerators(), time.UTC).WithClock(now),
		Estimator:      est,
	}
	for _, o := range overrides {
		o(&deps)
	}
	return api.NewServer(api.Config{Addr: ":0", Location: time.UTC}, deps), u.ID
}

func do(t *testing.T, srv *api.Server, method, target, body string) (int, envelope, http.Header) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp.StatusCode, env, resp.Header
}

func TestHealth(t *testing.T) {
	t.Parallel()
	srv, _ := newServer(t)
	status, _, header := do(t, srv, http.MethodGet, "/health", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if header.Get(api.RequestIDHeader) == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestLogAndReadDashboard(t *testing.T) {
	t.Parallel()
	srv, id := newServer(t)
	base := "/api/users/" + itoa(id)

	status, env, _ := do(t, srv, http.MethodPost, base+"/food", `{"food_name":"banana","quantity":2}`)
	if status != http.StatusCreated {
		t.Fatalf("log food: %d %s", status, env.Error)
	}
	var food struct {
		Calories  float64 `json:"calories"`
		Estimated bool    `json:"estimated"`
	}
	if err := json.Unmarshal(env.Data, &food); err != nil || food.Calories != 213.6 || !food.Estimated {
		t.Fatalf("unexpected food %s (%v)", env.Data, err)
	}

	status, env, _ = do(t, srv, http.MethodPost, base+"/exercise", `{"activity":"walking","duration":"60"}`)
	if status != http.StatusCreated {
		t.Fatalf("log exercise: %d %s", status, env.Error)
	}
	var ex struct {
		Environment *struct {
			Distance float64 `json:"distance_walked"`
		} `json:"environment"`
	}
	if err := json.Unmarshal(env.Data, &ex); err != nil || ex.Environment == nil || ex.Environment.Distance != 5 {
		t.Fatalf("expected walking environment entry, got %s", env.Data)
	}

	status, env, _ = do(t, srv, http.MethodGet, base+"/dashboard?date=2024-01-10", "")
	if status != http.StatusOK {
		t.Fatalf("dashboard: %d %s", status, env.Error)
	}
	var dash struct {
		Date   string `json:"date"`
		Week   []any  `json:"weekly_report"`
		Streak int    `json:"tracking_streak"`
	}
	if err := json.Unmarshal(env.Data, &dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if dash.Date != "2024-01-10" || len(dash.Week) != 7 || dash.Streak != 1 {
		t.Fatalf("unexpected dashboard %s", env.Data)
	}

	status, env, _ = do(t, srv, http.MethodGet, base+"/summary", "")
	if status != http.StatusOK || !strings.Contains(string(env.Data), `"total_calories_consumed":213.6`) {
		t.Fatalf("unexpected summary %d %s", status, env.Data)
	}
}

func TestErrorsMapToStatus(t *testing.T) {
	t.Parallel()
	srv, id := newServer(t)
	base := "/api/users/" + itoa(id)

	cases := []struct {
		method, target, body string
		want                 int
	}{
		{http.MethodGet, "/api/users/abc/dashboard", "", http.StatusBadRequest},
		{http.MethodGet, "/api/users/999/dashboard", "", http.StatusNotFound},
		{http.MethodGet, base + "/dashboard?date=10-01-2024", "", http.StatusBadRequest},
		{http.MethodPost, base + "/food", `{"food_name":"  "}`, http.StatusBadRequest},
		{http.MethodPost, base + "/food", `not json`, http.StatusBadRequest},
		{http.MethodPost, base + "/exercise", `{"duration":30}`, http.StatusBadRequest},
		{http.MethodGet, "/api/estimate/food", "", http.StatusBadRequest},
	}
	for _, tc := range cases {
		status, env, _ := do(t, srv, tc.method, tc.target, tc.body)
		if status != tc.want {
			t.Fatalf("%s %s: expected %d, got %d (%s)", tc.method, tc.target, tc.want, status, env.Error)
		}
		if env.Error == "" {
			t.Fatalf("%s %s: expected an error message", tc.method, tc.target)
		}
	}
}

type failingFoodLog struct{ err error }

func (f failingFoodLog) LogFood(context.Context, uint, services.FoodInput) (*domain.FoodLogEntry, error) {
	return nil, f.err
}

type failingExerciseLog struct{ err error }

func (f failingExerciseLog) LogExercise(context.Context, uint, string, string) (*domain.ExerciseLogEntry, *domain.EnvironmentLogEntry, error) {
	return nil, nil, f.err
}

func TestServerErrorsHideInternals(t *testing.T) {
	t.Parallel()
	dbErr := fmt.Errorf("failed to create food log: %w", apperrors.NewDatabaseError(errors.New("disk I/O error")))
	srv, id := newServer(t, func(d *api.Dependencies) {
		d.FoodLogSvc = failingFoodLog{err: dbErr}
		d.ExerciseLogSvc = failingExerciseLog{err: errors.New("nil map write")}
	})
	base := "/api/users/" + itoa(id)

	status, env, _ := do(t, srv, http.MethodPost, base+"/food", `{"food_name":"banana"}`)
	if status != http.StatusServiceUnavailable || env.Error != apperrors.ErrDatabaseError.Message {
		t.Fatalf("expected 503 %q, got %d %q", apperrors.ErrDatabaseError.Message, status, env.Error)
	}

	status, env, _ = do(t, srv, http.MethodPost, base+"/exercise", `{"activity":"yoga","duration":10}`)
	if status != http.StatusInternalServerError || env.Error != apperrors.ErrInternalServer.Message {
		t.Fatalf("expected 500 %q, got %d %q", apperrors.ErrInternalServer.Message, status, env.Error)
	}

	status, env, _ = do(t, srv, http.MethodPost, base+"/exercise", `{"activity":`)
	if status != http.StatusBadRequest || env.Error != apperrors.ErrInvalidInput.Message {
		t.Fatalf("expected 400 %q, got %d %q", apperrors.ErrInvalidInput.Message, status, env.Error)
	}
}

func TestEstimateEndpoints(t *testing.T) {
	t.Parallel()
	srv, _ := newServer(t)

	_, env, _ := do(t, srv, http.MethodGet, "/api/estimate/food?name=Banana&quantity=2", "")
	var food struct {
		Calories   float64 `json:"calories"`
		Recognized bool    `json:"recognized"`
	}
	if err := json.Unmarshal(env.Data, &food); err != nil || food.Calories != 213.6 || !food.Recognized {
		t.Fatalf("unexpected food estimate %s", env.Data)
	}

	_, env, _ = do(t, srv, http.MethodGet, "/api/estimate/exercise?activity=running+fast&minutes=30&weight=90&height=170&age=40", "")
	var ex struct {
		Pattern  string  `json:"pattern"`
		Calories float64 `json:"calories"`
		Matched  bool    `json:"matched"`
	}
	if err := json.Unmarshal(env.Data, &ex); err != nil || !ex.Matched || ex.Calories != 614.3 {
		t.Fatalf("unexpected exercise estimate %s", env.Data)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
