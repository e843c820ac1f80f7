package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/rushteam/dishrec/core"
	"github.com/rushteam/dishrec/service"
	"github.com/rushteam/dishrec/store"
)

func newTestServer(t *testing.T) (*Server, *store.MemoryBehaviorStore) {
	t.Helper()

	behavior := store.NewMemoryBehaviorStore()
	catalog := store.NewMemoryCatalog([]*core.Dish{
		{ID: "d-1", Name: "Pho bo", Description: "beef noodle soup", CategoryID: "cat-noodle", Active: true},
		{ID: "d-2", Name: "Com tam", Description: "broken rice", CategoryID: "cat-rice", Active: true},
	})

	return &Server{
		Recommender: service.NewRecommender(behavior, catalog),
		Behavior:    behavior,
	}, behavior
}

func doRequest(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestLogBehavior_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing user_id", `{"item_id":"d-1","action_type":"CLICK"}`},
		{"unknown action", `{"user_id":"u-1","item_id":"d-1","action_type":"PURCHASE"}`},
		{"search without query", `{"user_id":"u-1","action_type":"SEARCH"}`},
		{"click without item", `{"user_id":"u-1","action_type":"CLICK"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			rec := doRequest(t, s, http.MethodPost, "/api/user-behavior", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			body := decodeBody(t, rec)
			if body["success"] != false {
				t.Errorf("success = %v, want false", body["success"])
			}
		})
	}
}

func TestLogBehavior_Created(t *testing.T) {
	s, behavior := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/user-behavior",
		`{"user_id":"u-1","item_id":"d-1","action_type":"CLICK"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("data = %v, want object", body["data"])
	}
	if data["id"] == "" || data["id"] == nil {
		t.Error("stored event must get a generated id")
	}

	events, err := behavior.FindByUser(context.Background(), "u-1", core.BehaviorActionTypes)
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	if len(events) != 1 || events[0].ItemID != "d-1" {
		t.Errorf("stored events = %v, want single click on d-1", events)
	}
}

func TestRecommendedDishes(t *testing.T) {
	s, behavior := newTestServer(t)
	_ = behavior.Append(context.Background(), &core.BehaviorEvent{
		ID: "e1", UserID: "u-1", ItemID: "d-1",
		ActionType: core.ActionOrder, Timestamp: time.Now().Add(-time.Hour),
	})

	rec := doRequest(t, s, http.MethodGet, "/api/dishes/recommended?user_id=u-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["count"] != float64(2) {
		t.Errorf("count = %v, want 2", body["count"])
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 2 {
		t.Fatalf("data = %v, want 2 dishes", body["data"])
	}
	first, _ := data[0].(map[string]any)
	if first["id"] != "d-1" {
		t.Errorf("top dish = %v, want d-1 (ordered recently)", first["id"])
	}
}

func TestRecommendedDishes_MissingUserID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/dishes/recommended", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestRecommendedDishes_CategoryFilter(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet,
		"/api/dishes/recommended?user_id=u-1&category_ids=cat-rice", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	data, _ := body["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("data = %v, want single rice dish", data)
	}
	dish, _ := data[0].(map[string]any)
	if dish["id"] != "d-2" {
		t.Errorf("dish = %v, want d-2", dish["id"])
	}
}

func TestListBehaviors(t *testing.T) {
	s, behavior := newTestServer(t)
	now := time.Now()
	_ = behavior.Append(context.Background(), &core.BehaviorEvent{
		ID: "e1", UserID: "u-1", ItemID: "d-1", ActionType: core.ActionClick, Timestamp: now.Add(-time.Minute),
	})
	_ = behavior.Append(context.Background(), &core.BehaviorEvent{
		ID: "e2", UserID: "u-2", ActionType: core.ActionSearch, SearchQuery: "pho", Timestamp: now,
	})

	rec := doRequest(t, s, http.MethodGet, "/api/user-behaviors", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["count"] != float64(2) {
		t.Errorf("count = %v, want 2", body["count"])
	}

	rec = doRequest(t, s, http.MethodGet, "/api/user-behaviors/u-1", "")
	body = decodeBody(t, rec)
	if body["count"] != float64(1) {
		t.Errorf("count = %v, want 1 for u-1", body["count"])
	}

	rec = doRequest(t, s, http.MethodGet, "/api/user-behaviors?action_type=SEARCH", "")
	body = decodeBody(t, rec)
	if body["count"] != float64(1) {
		t.Errorf("count = %v, want 1 search event", body["count"])
	}
	pagination, ok := body["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("pagination = %v, want object", body["pagination"])
	}
	if pagination["totalPages"] != float64(1) {
		t.Errorf("totalPages = %v, want 1", pagination["totalPages"])
	}
}
