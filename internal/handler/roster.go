package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmercier-mercurius/schedule-generate-oop/internal/domain"
	"github.com/dmercier-mercurius/schedule-generate-oop/internal/roster"
	"github.com/dmercier-mercurius/schedule-generate-oop/internal/utils"
	amqp "github.com/rabbitmq/amqp091-go"
)

const unresolvedCell = "----"

func (h *Handler) GenerateRoster(w http.ResponseWriter, r *http.Request) {
	var req domain.RosterRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateRosterRequest(&req); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	engineReq, err := toEngineRequest(&req)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	rules, err := h.businessRulesForShiftLength(ctx, req.ShiftLength)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "no business rules for this shift length")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	outliers := roster.DetectOutliers(engineReq.DailyShifts)

	engine := roster.NewEngine(rules, roster.Options{MaxAttempts: h.config.Roster.MaxAttempts}, slog.Default())

	genCtx, genCancel := context.WithTimeout(r.Context(), time.Duration(h.config.Roster.GenerateTimeout)*time.Second)
	defer genCancel()

	result, err := engine.Generate(genCtx, engineReq)
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrInvalidPreferredOrder):
			h.errorResponse(w, r, err.Error())
		case errors.Is(err, roster.ErrImpossibleRdoDistribution):
			h.errorResponse(w, r, "demand does not admit any rostered-day-off distribution")
		case errors.Is(err, roster.ErrNoSchedule):
			h.errorResponse(w, r, "no attempt produced a schedule, check the demand totals")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	resp := toRosterResponse(result, outliers)

	h.publishRosterReport(r, result)

	h.successResponse(w, r, "roster generated", resp)
}

func (h *Handler) CheckShiftLine(w http.ResponseWriter, r *http.Request) {
	var req domain.ShiftLineCheckRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	var week [7]roster.ShiftValue
	for i := range week {
		week[i] = roster.Unassigned()
	}
	for name, cell := range req.Days {
		day, err := roster.ParseDay(name)
		if err != nil {
			h.errorResponse(w, r, err.Error())
			return
		}
		if cell == "OFF" {
			week[day] = roster.Off()
			continue
		}
		hour, err := utils.MilitaryToHour(cell)
		if err != nil {
			h.errorResponse(w, r, err.Error())
			return
		}
		week[day] = roster.At(hour)
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	rules, err := h.businessRulesForShiftLength(ctx, req.ShiftLength)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "no business rules for this shift length")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	violations := roster.CheckLine(week, req.ShiftLength, rules)

	h.successResponse(w, r, "shift line checked", domain.ShiftLineCheckResponse{
		Valid:      len(violations) == 0,
		Violations: violations,
	})
}

// toEngineRequest converts wire notation into engine values: day names to
// indexes and military times to fractional hours.
func toEngineRequest(req *domain.RosterRequest) (*roster.Request, error) {
	out := &roster.Request{
		ShiftLength:          req.ShiftLength,
		PreferredWorkPattern: req.PreferredWorkPattern,
		RdoContiguous:        req.RdoContiguous,
	}

	for name, shifts := range req.DailyShifts {
		day, err := roster.ParseDay(name)
		if err != nil {
			return nil, err
		}
		out.DailyShifts[day] = make(map[float64]int, len(shifts))
		for clock, quantity := range shifts {
			if quantity < 0 {
				return nil, fmt.Errorf("negative quantity for %s on %s", clock, name)
			}
			hour, err := utils.MilitaryToHour(clock)
			if err != nil {
				return nil, err
			}
			out.DailyShifts[day][hour] = quantity
		}
	}

	for _, clock := range req.PreferredShiftOrder {
		hour, err := utils.MilitaryToHour(clock)
		if err != nil {
			return nil, err
		}
		out.PreferredShiftOrder = append(out.PreferredShiftOrder, hour)
	}

	return out, nil
}

func toRosterResponse(result *roster.Result, outliers roster.OutlierReport) *domain.RosterResponse {
	resp := &domain.RosterResponse{Attempts: result.Attempts}

	for _, schedule := range result.Schedules {
		out := domain.RosterSchedule{
			Grade:               schedule.Grade,
			DesirabilityRelaxed: schedule.DesirabilityRelaxed,
			QuotaRelaxed:        schedule.QuotaRelaxed,
			Unresolved:          schedule.Unresolved,
			ShiftTotals:         make(map[string]map[string]int),
		}

		for row, week := range schedule.Grid {
			days := make(map[string]string, 7)
			for day, value := range week {
				days[roster.Day(day).String()] = cellString(value)
			}
			out.Rows = append(out.Rows, domain.RosterRow{
				Rotation: schedule.Rotations[row],
				Days:     days,
			})
		}

		for day, totals := range schedule.ShiftTotals {
			converted := make(map[string]int, len(totals))
			for shift, count := range totals {
				converted[utils.HourToMilitary(shift)] = count
			}
			out.ShiftTotals[roster.Day(day).String()] = converted
		}

		resp.Schedules = append(resp.Schedules, out)
	}

	for shift, days := range outliers {
		if resp.Outliers == nil {
			resp.Outliers = make(map[string]map[string]int)
		}
		converted := make(map[string]int, len(days))
		for day, quantity := range days {
			converted[day.String()] = quantity
		}
		resp.Outliers[utils.HourToMilitary(shift)] = converted
	}

	return resp
}

func cellString(value roster.ShiftValue) string {
	switch value.Kind {
	case roster.ValueOff:
		return "OFF"
	case roster.ValueTime:
		return utils.HourToMilitary(value.Start)
	default:
		return unresolvedCell
	}
}

// publishRosterReport queues a summary email for the requesting planner. A
// failed publish only logs; the roster itself already succeeded.
func (h *Handler) publishRosterReport(r *http.Request, result *roster.Result) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	best := result.Schedules[0]

	mailMessage := domain.MailMessage{
		Type: "roster_report",
		To:   myInfo.Email,
		Data: domain.RosterReportMailData{
			FullName:  myInfo.FullName,
			Grade:     best.Grade,
			Workers:   len(best.Grid),
			Attempts:  result.Attempts,
			Generated: time.Now().Format(time.RFC1123),
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Error("failed to marshal roster report", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		slog.Error("failed to publish roster report", "error", err)
	}
}
