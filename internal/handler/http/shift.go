package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/shift"
	"github.com/shiftwise/timeclock-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	RecordAction(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	DayView(w http.ResponseWriter, r *http.Request)
	MonthView(w http.ResponseWriter, r *http.Request)
	PeriodTotals(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.Service
}

func NewShiftHandler(shiftService shift.Service) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
	}
}

// employeeIDFromContext reads the authenticated employee from the JWT claims.
// The employee acting is always the token holder; it is never taken from the
// request body.
func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, nil
}

// RecordAction implements ShiftHandler.
func (h *shiftHandlerImpl) RecordAction(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req shift.RecordActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode shift action request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.RecordAction(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.Action == shift.ActionClockIn {
		response.Created(w, "Clock in successful", result)
		return
	}
	response.SuccessWithMessage(w, "Shift action recorded", result)
}

// Status implements ShiftHandler.
func (h *shiftHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.shiftService.GetStatus(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DayView implements ShiftHandler.
func (h *shiftHandlerImpl) DayView(w http.ResponseWriter, r *http.Request) {
	filter := shift.DayViewFilter{
		Search: r.URL.Query().Get("search"),
	}

	var err error
	if filter.Year, err = strconv.Atoi(r.URL.Query().Get("year")); err != nil {
		response.BadRequest(w, "Query parameter 'year' must be a number", nil)
		return
	}
	if filter.Month, err = strconv.Atoi(r.URL.Query().Get("month")); err != nil {
		response.BadRequest(w, "Query parameter 'month' must be a number", nil)
		return
	}
	if filter.Day, err = strconv.Atoi(r.URL.Query().Get("day")); err != nil {
		response.BadRequest(w, "Query parameter 'day' must be a number", nil)
		return
	}

	result, err := h.shiftService.GetDayView(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthView implements ShiftHandler.
func (h *shiftHandlerImpl) MonthView(w http.ResponseWriter, r *http.Request) {
	var filter shift.MonthViewFilter

	var err error
	if filter.Year, err = strconv.Atoi(r.URL.Query().Get("year")); err != nil {
		response.BadRequest(w, "Query parameter 'year' must be a number", nil)
		return
	}
	if filter.Month, err = strconv.Atoi(r.URL.Query().Get("month")); err != nil {
		response.BadRequest(w, "Query parameter 'month' must be a number", nil)
		return
	}

	result, err := h.shiftService.GetMonthView(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PeriodTotals implements ShiftHandler.
func (h *shiftHandlerImpl) PeriodTotals(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.shiftService.GetPeriodTotals(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
