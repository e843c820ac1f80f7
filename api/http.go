// Package api 暴露行为埋点与推荐的 HTTP 接口。
// 鉴权、限流等横切中间件由部署方挂载，不在本包职责内。
package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/rushteam/dishrec/core"
	"github.com/rushteam/dishrec/service"
)

// Server 持有各接口依赖的协作方。
type Server struct {
	Recommender *service.Recommender
	Behavior    core.BehaviorStore
}

// Routes 组装路由。
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/api/user-behavior", s.logBehavior)
	r.Get("/api/dishes/recommended", s.recommendedDishes)
	r.Get("/api/user-behaviors", s.listBehaviors)
	r.Get("/api/user-behaviors/{user_id}", s.listBehaviors)
	return r
}

type logBehaviorRequest struct {
	UserID      string `json:"user_id"`
	ItemID      string `json:"item_id"`
	ActionType  string `json:"action_type"`
	SearchQuery string `json:"search_query"`
}

// logBehavior 写入一条行为日志。
// 校验规则：动作类型必须合法；SEARCH 必须带 search_query；
// 非 SEARCH 必须带 item_id。
func (s *Server) logBehavior(w http.ResponseWriter, r *http.Request) {
	var req logBehaviorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	event := &core.BehaviorEvent{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		ItemID:      req.ItemID,
		ActionType:  core.ActionType(req.ActionType),
		SearchQuery: req.SearchQuery,
		Timestamp:   time.Now(),
	}
	if err := event.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.Behavior.Append(r.Context(), event); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to log behavior")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    event,
	})
}

// recommendedDishes 个性化推荐列表。
func (s *Server) recommendedDishes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := &service.Request{
		UserID:     q.Get("user_id"),
		SearchTerm: q.Get("search_term"),
		Page:       atoiDefault(q.Get("page"), 1),
		Limit:      atoiDefault(q.Get("limit"), 20),
	}
	if raw := q.Get("category_ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.CategoryIDs = append(req.CategoryIDs, id)
			}
		}
	}

	resp, err := s.Recommender.Recommend(r.Context(), req)
	if err != nil {
		if core.IsInvalidInput(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get recommendations")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// listBehaviors 行为日志列表，按时间倒序，可选 action_type 过滤。
// 路由带 user_id 参数时只查该用户。
func (s *Server) listBehaviors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := core.BehaviorQuery{
		UserID:     chi.URLParam(r, "user_id"),
		ActionType: core.ActionType(q.Get("action_type")),
		Page:       atoiDefault(q.Get("page"), 1),
		Limit:      atoiDefault(q.Get("limit"), 20),
	}

	events, total, err := s.Behavior.List(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list behaviors")
		return
	}

	totalPages := 0
	if query.Limit > 0 {
		totalPages = (total + query.Limit - 1) / query.Limit
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   total,
		"pagination": map[string]any{
			"page":       query.Page,
			"limit":      query.Limit,
			"totalPages": totalPages,
		},
		"data": events,
	})
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}
