package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap/zaptest"
	"go.viam.com/test"

	pathplanning "path-planning"
)

func openRequest() pathplanning.Request {
	return pathplanning.Request{
		Start:         pathplanning.NewPose(1, 1, 0),
		Goal:          pathplanning.NewPose(9, 9, 0),
		MaxIterations: 500,
		StepSize:      1,
		Space: pathplanning.SpaceConfig{
			Bounds: []orb.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		},
		Robot: pathplanning.Robot{Width: 1, Height: 1, MaxSteer: 0.5},
	}
}

func do(t *testing.T, h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		test.That(t, json.NewEncoder(&buf).Encode(body), test.ShouldBeNil)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPlanHandler(t *testing.T) {
	h := New(zaptest.NewLogger(t).Sugar()).Handler()

	rec := do(t, h, http.MethodPost, "/plan", openRequest())
	test.That(t, rec.Code, test.ShouldEqual, http.StatusOK)

	var resp PlanResponse
	test.That(t, json.NewDecoder(rec.Body).Decode(&resp), test.ShouldBeNil)
	test.That(t, resp.Success, test.ShouldBeTrue)
	test.That(t, resp.Status, test.ShouldEqual, statusFound)
	test.That(t, resp.Path[0], test.ShouldResemble, orb.Point{1, 1})
	test.That(t, resp.Path[len(resp.Path)-1], test.ShouldResemble, orb.Point{9, 9})
	test.That(t, resp.Length, test.ShouldBeGreaterThanOrEqualTo, math.Hypot(8, 8))
}

func TestPlanHandlerRejectsBadRequests(t *testing.T) {
	h := New(zaptest.NewLogger(t).Sugar()).Handler()

	rec := do(t, h, http.MethodGet, "/plan", nil)
	test.That(t, rec.Code, test.ShouldEqual, http.StatusMethodNotAllowed)

	req := httptest.NewRequest(http.MethodPost, "/plan", bytes.NewBufferString("{"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	test.That(t, rec.Code, test.ShouldEqual, http.StatusBadRequest)

	bad := openRequest()
	bad.StepSize = 0
	rec = do(t, h, http.MethodPost, "/plan", bad)
	test.That(t, rec.Code, test.ShouldEqual, http.StatusBadRequest)

	var resp PlanResponse
	test.That(t, json.NewDecoder(rec.Body).Decode(&resp), test.ShouldBeNil)
	test.That(t, resp.Status, test.ShouldEqual, statusFailed)
	test.That(t, resp.Message, test.ShouldNotBeBlank)
}

func TestPlanHandlerExhausted(t *testing.T) {
	h := New(zaptest.NewLogger(t).Sugar()).Handler()

	req := openRequest()
	req.MaxIterations = 50
	req.Space.Obstacles = [][]orb.Point{{{0, 4}, {10, 4}, {10, 6}, {0, 6}}}

	rec := do(t, h, http.MethodPost, "/plan", req)
	test.That(t, rec.Code, test.ShouldEqual, http.StatusOK)

	var resp PlanResponse
	test.That(t, json.NewDecoder(rec.Body).Decode(&resp), test.ShouldBeNil)
	test.That(t, resp.Success, test.ShouldBeFalse)
	test.That(t, resp.Status, test.ShouldEqual, statusExhausted)
	test.That(t, resp.Path, test.ShouldBeEmpty)
}

func TestAsyncPlanning(t *testing.T) {
	s := New(zaptest.NewLogger(t).Sugar())
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/plan/async", openRequest())
	test.That(t, rec.Code, test.ShouldEqual, http.StatusAccepted)

	var started map[string]string
	test.That(t, json.NewDecoder(rec.Body).Decode(&started), test.ShouldBeNil)
	id := started["id"]
	test.That(t, id, test.ShouldNotBeBlank)

	var resp PlanResponse
	deadline := time.Now().Add(10 * time.Second)
	for {
		rec = do(t, h, http.MethodGet, "/plan/status?id="+id, nil)
		test.That(t, rec.Code, test.ShouldEqual, http.StatusOK)
		resp = PlanResponse{}
		test.That(t, json.NewDecoder(rec.Body).Decode(&resp), test.ShouldBeNil)
		if resp.Status != statusPending {
			break
		}
		test.That(t, time.Now().Before(deadline), test.ShouldBeTrue)
		time.Sleep(5 * time.Millisecond)
	}
	test.That(t, resp.Status, test.ShouldEqual, statusFound)
	test.That(t, resp.Path[len(resp.Path)-1], test.ShouldResemble, orb.Point{9, 9})

	// finished jobs are evicted once reported
	rec = do(t, h, http.MethodGet, "/plan/status?id="+id, nil)
	test.That(t, rec.Code, test.ShouldEqual, http.StatusNotFound)
	test.That(t, s.pendingJobs(), test.ShouldEqual, 0)
	test.That(t, s.started.Load(), test.ShouldEqual, int64(1))
	test.That(t, s.finished.Load(), test.ShouldEqual, int64(1))
}

func TestStatusUnknownJob(t *testing.T) {
	h := New(zaptest.NewLogger(t).Sugar()).Handler()

	rec := do(t, h, http.MethodGet, "/plan/status?id=nope", nil)
	test.That(t, rec.Code, test.ShouldEqual, http.StatusNotFound)
}

func TestCircleHandler(t *testing.T) {
	h := New(zaptest.NewLogger(t).Sugar()).Handler()

	rec := do(t, h, http.MethodPost, "/circle", circleRequest{Center: orb.Point{0, 0}, Radius: 5})
	test.That(t, rec.Code, test.ShouldEqual, http.StatusOK)

	var resp struct {
		Points orb.Ring `json:"points"`
	}
	test.That(t, json.NewDecoder(rec.Body).Decode(&resp), test.ShouldBeNil)
	test.That(t, len(resp.Points), test.ShouldBeGreaterThan, 3)
	for _, p := range resp.Points {
		test.That(t, orb.Point{0, 0}.Equal(p), test.ShouldBeFalse)
	}

	rec = do(t, h, http.MethodPost, "/circle", circleRequest{Radius: 0})
	test.That(t, rec.Code, test.ShouldEqual, http.StatusBadRequest)
}

func TestSimplifyHandler(t *testing.T) {
	h := New(zaptest.NewLogger(t).Sugar()).Handler()

	rec := do(t, h, http.MethodPost, "/simplify", simplifyRequest{
		Points:    orb.LineString{{0, 0}, {1, 0.01}, {2, 0}},
		Tolerance: 0.1,
	})
	test.That(t, rec.Code, test.ShouldEqual, http.StatusOK)

	var resp struct {
		Points orb.LineString `json:"points"`
	}
	test.That(t, json.NewDecoder(rec.Body).Decode(&resp), test.ShouldBeNil)
	test.That(t, resp.Points, test.ShouldResemble, orb.LineString{{0, 0}, {2, 0}})

	rec = do(t, h, http.MethodPost, "/simplify", simplifyRequest{Tolerance: -1})
	test.That(t, rec.Code, test.ShouldEqual, http.StatusBadRequest)
}

func TestHealthHandler(t *testing.T) {
	h := New(zaptest.NewLogger(t).Sugar()).Handler()

	rec := do(t, h, http.MethodGet, "/health", nil)
	test.That(t, rec.Code, test.ShouldEqual, http.StatusOK)
	test.That(t, rec.Header().Get("Content-Type"), test.ShouldEqual, "application/json")

	var resp map[string]interface{}
	test.That(t, json.NewDecoder(rec.Body).Decode(&resp), test.ShouldBeNil)
	test.That(t, resp["status"], test.ShouldEqual, "ready")
}

func TestCORS(t *testing.T) {
	h := New(zaptest.NewLogger(t).Sugar()).Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	test.That(t, rec.Header().Get("Access-Control-Allow-Origin"), test.ShouldEqual, "*")
}
