package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dmercier-mercurius/schedule-generate-oop/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

func businessRulesCacheKey(shiftLength int) string {
	return fmt.Sprintf("business_rules_%d", shiftLength)
}

// businessRulesForShiftLength reads through the redis cache to the database.
// A cache miss or a broken cache entry falls back to the database and
// repopulates the key.
func (h *Handler) businessRulesForShiftLength(ctx context.Context, shiftLength int) (*domain.BusinessRules, error) {
	key := businessRulesCacheKey(shiftLength)

	cached, err := h.redisClient.Get(ctx, key).Result()
	if err == nil {
		rules := &domain.BusinessRules{}
		if err := json.Unmarshal([]byte(cached), rules); err == nil {
			return rules, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	rules, err := h.repository.GetBusinessRulesByShiftLength(shiftLength)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rules); err == nil {
		h.redisClient.Set(ctx, key, data, time.Duration(h.config.Roster.RulesCacheTTL)*time.Second)
	}

	return rules, nil
}

func shiftLengthParam(r *http.Request) (int, error) {
	shiftLength, err := strconv.Atoi(chi.URLParam(r, "shiftLength"))
	if err != nil || shiftLength <= 0 || 40%shiftLength != 0 {
		return 0, errors.New("invalid shift length")
	}
	return shiftLength, nil
}

func (h *Handler) GetAllBusinessRules(w http.ResponseWriter, r *http.Request) {
	allRules, err := h.repository.GetAllBusinessRules()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "business rules fetched", allRules)
}

func (h *Handler) GetBusinessRules(w http.ResponseWriter, r *http.Request) {
	shiftLength, err := shiftLengthParam(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	rules, err := h.businessRulesForShiftLength(ctx, shiftLength)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "no business rules for this shift length")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "business rules fetched", rules)
}

func (h *Handler) UpsertBusinessRules(w http.ResponseWriter, r *http.Request) {
	shiftLength, err := shiftLengthParam(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	var req struct {
		MinRestDayToMid   float64 `json:"minRestDayToMid" validate:"required,gt=0"`
		MinRestEveToDay   float64 `json:"minRestEveToDay" validate:"required,gt=0"`
		MinRestMidToMid   float64 `json:"minRestMidToMid" validate:"required,gt=0"`
		MaxConsecutiveMid int     `json:"maxConsecutiveMid" validate:"required,gte=1,lte=7"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rules := &domain.BusinessRules{
		ShiftLength:       shiftLength,
		MinRestDayToMid:   req.MinRestDayToMid,
		MinRestEveToDay:   req.MinRestEveToDay,
		MinRestMidToMid:   req.MinRestMidToMid,
		MaxConsecutiveMid: req.MaxConsecutiveMid,
	}

	if err := h.repository.UpsertBusinessRules(rules); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// stale cache entries would hand old rules to the engine
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if err := h.redisClient.Del(ctx, businessRulesCacheKey(shiftLength)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "business rules saved", rules)
}
