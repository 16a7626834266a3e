package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"ti-tracker/logger"
	"ti-tracker/pkg/chart"
	"ti-tracker/pkg/filter"
	"ti-tracker/services"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
)

// MatchFilters 比赛列表查询参数
type MatchFilters struct {
	// 分页参数
	Page     int
	PageSize int

	Criteria filter.Criteria
}

func (f *MatchFilters) toMap() map[string]interface{} {
	heroes := f.Criteria.Heroes
	if heroes == nil {
		heroes = []string{}
	}
	return map[string]interface{}{
		"heroes": heroes,
		"player": f.Criteria.Player,
		"team":   f.Criteria.Team,
		"mode":   f.Criteria.Combinator,
	}
}

// parseMatchFilters 解析查询参数
func parseMatchFilters(r *http.Request) (*MatchFilters, error) {
	query := r.URL.Query()
	filters := &MatchFilters{
		Page:     1,
		PageSize: defaultPageSize,
	}

	// 分页参数
	if pageParam := query.Get("page"); pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			filters.Page = p
		}
	}

	if pageSizeParam := query.Get("page_size"); pageSizeParam != "" {
		if ps, err := strconv.Atoi(pageSizeParam); err == nil && ps > 0 && ps <= maxPageSize {
			filters.PageSize = ps
		}
	}

	// 英雄: ?hero=Axe&hero=Lina 或 ?hero=Axe,Lina
	for _, raw := range query["hero"] {
		filters.Criteria.Heroes = append(filters.Criteria.Heroes, strings.Split(raw, ",")...)
	}

	filters.Criteria.Player = query.Get("player")
	filters.Criteria.Team = query.Get("team")
	filters.Criteria = filters.Criteria.Normalize()

	mode, err := filter.ParseCombinator(query.Get("mode"))
	if err != nil {
		return nil, err
	}
	filters.Criteria.Combinator = mode

	return filters, nil
}

// pageBounds 计算当前页的切片范围
func pageBounds(total, page, pageSize int) (start, end, totalPages int) {
	totalPages = (total + pageSize - 1) / pageSize
	// 超出最后一页时先截断, 避免 (page-1)*pageSize 溢出
	if page > totalPages {
		return total, total, totalPages
	}
	start = (page - 1) * pageSize
	end = start + pageSize
	if end > total {
		end = total
	}
	return start, end, totalPages
}

// handleGetMatches 获取比赛列表(支持英雄/选手/战队筛选)
// GET /api/matches
func (s *Server) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	filters, err := parseMatchFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result := s.service.Filter(filters.Criteria)
	total := len(result.Matches)
	start, end, totalPages := pageBounds(total, filters.Page, filters.PageSize)

	matches := make([]services.MatchSummary, 0, end-start)
	for _, rec := range result.Matches[start:end] {
		matches = append(matches, services.Summarize(rec))
	}

	if result.FellBack {
		logger.Printf("[API] No matches for filters %v, showing all %d matches", filters.toMap(), total)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"count":       len(matches),
		"total":       total,
		"page":        filters.Page,
		"page_size":   filters.PageSize,
		"total_pages": totalPages,
		"fell_back":   result.FellBack,
		"filters":     filters.toMap(),
		"matches":     matches,
	})
}

// handleGetMatch 比赛详情
// GET /api/matches/{match_id}
func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["match_id"]

	match, found, cacheHit := s.service.MatchDetail(raw)
	if !found {
		writeNotFound(w, raw)
		return
	}

	if cacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"found": true,
		"match": match,
	})
}

// handleGetChart 比赛图表
// GET /api/matches/{match_id}/charts/{kind}
func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	kind, err := chart.ParseKind(vars["kind"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	c, found, err := s.service.Chart(vars["match_id"], kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !found {
		writeNotFound(w, vars["match_id"])
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"found": true,
		"chart": c,
	})
}

func writeNotFound(w http.ResponseWriter, matchID string) {
	writeJSON(w, http.StatusNotFound, map[string]interface{}{
		"found":    false,
		"match_id": matchID,
		"message":  notFoundMessage,
	})
}

const notFoundMessage = "No match found for the provided match ID"
