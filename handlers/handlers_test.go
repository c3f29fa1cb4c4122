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

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/padraicbc/f1history/dataset"
	"github.com/padraicbc/f1history/metrics"
	mw "github.com/padraicbc/f1history/middleware"
	"github.com/padraicbc/f1history/models"
	"github.com/padraicbc/f1history/stats"
)

func ip(i int) *int { return &i }

func testTables() dataset.Tables {
	return dataset.Tables{
		Races: []models.Race{
			{RaceID: 1, Year: 2020, Round: 1, CircuitID: 9, Name: "British Grand Prix"},
			{RaceID: 2, Year: 2020, Round: 2, CircuitID: 9, Name: "70th Anniversary Grand Prix"},
		},
		Drivers: []models.Driver{
			{DriverID: 1, DriverRef: "hamilton", Forename: "Lewis", Surname: "Hamilton"},
			{DriverID: 2, DriverRef: "bottas", Forename: "Valtteri", Surname: "Bottas"},
		},
		Constructors: []models.Constructor{{ConstructorID: 1, ConstructorRef: "mercedes", Name: "Mercedes"}},
		Circuits:     []models.Circuit{{CircuitID: 9, CircuitRef: "silverstone", Name: "Silverstone Circuit"}},
		Statuses:     []models.Status{{StatusID: 1, Status: "Finished"}},
		Results: []models.Result{
			{ResultID: 1, RaceID: 1, DriverID: 1, ConstructorID: 1, Position: ip(1), Grid: 1, Points: 25, StatusID: 1},
			{ResultID: 2, RaceID: 1, DriverID: 2, ConstructorID: 1, Position: ip(2), Grid: 2, Points: 18, StatusID: 1},
			{ResultID: 3, RaceID: 2, DriverID: 2, ConstructorID: 1, Position: ip(1), Grid: 1, Points: 25, StatusID: 1},
			{ResultID: 4, RaceID: 2, DriverID: 1, ConstructorID: 1, Position: ip(2), Grid: 2, Points: 18, StatusID: 1},
		},
		DriverStandings: []models.DriverStanding{
			{DriverStandingsID: 1, RaceID: 1, DriverID: 1, Points: 25, Position: ip(1)},
			{DriverStandingsID: 2, RaceID: 1, DriverID: 2, Points: 18, Position: ip(2)},
			{DriverStandingsID: 3, RaceID: 2, DriverID: 1, Points: 43, Position: ip(1)},
			{DriverStandingsID: 4, RaceID: 2, DriverID: 2, Points: 43, Position: ip(2)},
		},
	}
}

type testServer struct {
	e *echo.Echo
	h *Handler
}

func newTestServer(t *testing.T, load Loader) *testServer {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	h := New(dataset.New(testTables()), Options{
		JWTKey:            []byte("test-secret"),
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
		Season:            stats.SeasonOptions{ContenderLimit: 5, MaxPointsPerRace: 25},
		Metrics:           metrics.NewCollector("f1history"),
		Load:              load,
	})
	e := echo.New()
	Register(e, h)
	return &testServer{e: e, h: h}
}

func (s *testServer) do(method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func TestStatusCodes(t *testing.T) {
	s := newTestServer(t, nil)
	tests := []struct {
		target string
		want   int
	}{
		{"/api/years", http.StatusOK},
		{"/api/seasons/2020", http.StatusOK},
		{"/api/seasons/1900", http.StatusOK},
		{"/api/seasons/abc", http.StatusBadRequest},
		{"/api/seasons/2020/constructors", http.StatusOK},
		{"/api/seasons/2020/qualifying", http.StatusOK},
		{"/api/seasons/2020/h2h?a=1&b=2", http.StatusOK},
		{"/api/seasons/2020/h2h?a=1", http.StatusBadRequest},
		{"/api/seasons/2020/h2h?a=1&b=1", http.StatusBadRequest},
		{"/api/seasons/2020/h2h?a=1&b=77", http.StatusNotFound},
		{"/api/drivers?q=ham", http.StatusOK},
		{"/api/drivers/1/career", http.StatusOK},
		{"/api/drivers/77/career", http.StatusNotFound},
		{"/api/drivers/-1/career", http.StatusBadRequest},
		{"/api/circuits", http.StatusOK},
		{"/api/circuits/9", http.StatusOK},
		{"/api/circuits/10", http.StatusNotFound},
		{"/api/seasons/2020/overview", http.StatusOK},
		{"/api/seasons/x/overview", http.StatusBadRequest},
		{"/api/races/1", http.StatusOK},
		{"/api/races/99", http.StatusNotFound},
		{"/api/races/0", http.StatusBadRequest},
		{"/api/races/1/qualifying", http.StatusOK},
		{"/api/races/99/qualifying", http.StatusNotFound},
	}
	for _, tt := range tests {
		if rec := s.do(http.MethodGet, tt.target, "", ""); rec.Code != tt.want {
			t.Errorf("GET %s = %d, want %d (%s)", tt.target, rec.Code, tt.want, rec.Body.String())
		}
	}
}

func TestSeason(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(http.MethodGet, "/api/seasons/2020", "", "")

	var got stats.SeasonSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Available || len(got.Progression) != 2 || got.Champion == nil || got.Champion.DriverID != 1 {
		t.Errorf("summary = %+v", got)
	}

	rec = s.do(http.MethodGet, "/api/seasons/1900", "", "")
	var empty stats.SeasonSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &empty); err != nil {
		t.Fatal(err)
	}
	if empty.Available {
		t.Error("1900 reported as available")
	}
}

func TestRace(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(http.MethodGet, "/api/races/2", "", "")

	var got stats.RaceDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Winner == nil || got.Winner.DriverID != 2 || got.CircuitName != "Silverstone Circuit" {
		t.Errorf("race = %+v", got)
	}
	if len(got.Results) != 2 || got.Results[0].Status != "Finished" {
		t.Errorf("results = %+v", got.Results)
	}
	if got.Pole == nil || got.Pole.DriverID != 2 || got.Pole.Source != stats.PoleFromGrid {
		t.Errorf("pole = %+v", got.Pole)
	}
}

func TestSeasonOverview(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(http.MethodGet, "/api/seasons/2020/overview", "", "")

	var got stats.SeasonOverview
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Available || got.DifferentWinners != 2 || got.DifferentConstructorWinners != 1 || len(got.Races) != 2 {
		t.Errorf("overview = %+v", got)
	}
	if got.DriverChampion == nil || got.DriverChampion.DriverID != 1 {
		t.Errorf("driver champion = %+v", got.DriverChampion)
	}
}

func TestHeadToHead(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(http.MethodGet, "/api/seasons/2020/h2h?a=1&b=2", "", "")

	var got h2hData
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	c := got.Comparison
	if c.CommonRaces != 2 || c.FinishWinsA != 1 || c.FinishWinsB != 1 || c.WinsA != 1 || c.WinsB != 1 {
		t.Errorf("comparison = %+v", c)
	}
	if got.SeasonA.Entries != 2 || got.SeasonA.ConstructorName != "Mercedes" {
		t.Errorf("season a = %+v", got.SeasonA)
	}
}

func TestDriversSearch(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(http.MethodGet, "/api/drivers?q=ham", "", "")

	var got []driverData
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Lewis Hamilton" {
		t.Errorf("drivers = %+v", got)
	}
}

func TestYearsDirect(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/years", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	if err := s.h.Years(c); err != nil {
		t.Fatal(err)
	}
	var got []seasonData
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Year != 2020 || got[0].Races != 2 {
		t.Errorf("years = %+v", got)
	}
}

func TestCareerDirect(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.SetPath("/api/drivers/:id/career")
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := s.h.DriverCareer(c); err != nil {
		t.Fatal(err)
	}
	var got stats.CareerStats
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Totals.Wins != 1 || got.Totals.Races != 2 {
		t.Errorf("totals = %+v", got.Totals)
	}
}

func signin(t *testing.T, s *testServer, password string) (string, int) {
	t.Helper()
	rec := s.do(http.MethodPost, "/api/signin", `{"username":"admin","password":"`+password+`"}`, "")
	if rec.Code != http.StatusOK {
		return "", rec.Code
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	return body["token"], rec.Code
}

func TestSigninAndReload(t *testing.T) {
	reloaded := testTables()
	reloaded.Races = append(reloaded.Races, models.Race{RaceID: 3, Year: 2021, Round: 1, CircuitID: 9})
	s := newTestServer(t, func(ctx context.Context) (*dataset.Dataset, error) {
		return dataset.New(reloaded), nil
	})

	if _, code := signin(t, s, "wrong"); code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", code)
	}
	token, code := signin(t, s, "letmein")
	if code != http.StatusOK || token == "" {
		t.Fatalf("signin status = %d", code)
	}

	if rec := s.do(http.MethodPost, "/api/admin/reload", "", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("reload without token = %d, want 400", rec.Code)
	}
	rec := s.do(http.MethodPost, "/api/admin/reload", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("reload = %d (%s)", rec.Code, rec.Body.String())
	}
	if years := s.h.Dataset().Years(); len(years) != 2 || years[0] != 2021 {
		t.Errorf("years after reload = %v", years)
	}
}

func TestReloadRequiresAdminRole(t *testing.T) {
	s := newTestServer(t, func(ctx context.Context) (*dataset.Dataset, error) {
		t.Error("loader called for a non-admin token")
		return nil, nil
	})
	tests := []struct {
		name string
		user string
		role string
	}{
		{"viewer role", "admin", "viewer"},
		{"other user", "guest", mw.RoleAdmin},
	}
	for _, tt := range tests {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mw.NewClaims(tt.user, tt.role, s.h.JWTKey, time.Hour)).SignedString(s.h.JWTKey)
		if err != nil {
			t.Fatal(err)
		}
		if rec := s.do(http.MethodPost, "/api/admin/reload", "", token); rec.Code != http.StatusForbidden {
			t.Errorf("%s: reload = %d, want 403", tt.name, rec.Code)
		}
	}
}

func TestReloadFailureKeepsDataset(t *testing.T) {
	s := newTestServer(t, func(ctx context.Context) (*dataset.Dataset, error) {
		return nil, errors.New("results.csv: no such file")
	})
	before := s.h.Dataset()
	token, _ := signin(t, s, "letmein")

	if rec := s.do(http.MethodPost, "/api/admin/reload", "", token); rec.Code != http.StatusInternalServerError {
		t.Errorf("reload = %d, want 500", rec.Code)
	}
	if s.h.Dataset() != before {
		t.Error("failed reload replaced the dataset")
	}
}

func TestSigninDisabled(t *testing.T) {
	h := New(dataset.New(testTables()), Options{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/signin", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Signin(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Errorf("err = %v, want 403", err)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(http.MethodGet, "/api/seasons/2020", "", "")
	s.do(http.MethodGet, "/api/seasons/abc", "", "")

	body := s.do(http.MethodGet, "/metrics", "", "").Body.String()
	for _, want := range []string{
		`f1history_api_requests_total{method="GET",route="/api/seasons/:year",status="200"} 1`,
		`f1history_api_requests_total{method="GET",route="/api/seasons/:year",status="400"} 1`,
		`f1history_aggregation_duration_seconds_count{operation="season"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
