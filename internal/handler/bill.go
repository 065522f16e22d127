package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/paydue/reminder-engine/internal/domain"
	"github.com/paydue/reminder-engine/internal/service"
	customError "github.com/paydue/reminder-engine/pkg/errors"
	"github.com/paydue/reminder-engine/pkg/response"
)

type BillHandler struct {
	service   *service.BillService
	validator *validator.Validate
}

func NewBillHandler(service *service.BillService) *BillHandler {
	return &BillHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateBill handles POST /api/v1/users/{user_id}/bills
func (h *BillHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "user_id")
	if !ok {
		return
	}

	var request domain.CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	bill, err := h.service.CreateBill(r.Context(), userID, &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, bill)
}

// ListBills handles GET /api/v1/users/{user_id}/bills
func (h *BillHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "user_id")
	if !ok {
		return
	}

	bills, err := h.service.ListBills(r.Context(), userID, time.Now())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, bills)
}

// MarkPaid handles POST /api/v1/bills/{id}/pay
func (h *BillHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	billID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var request domain.MarkPaidRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			response.BadRequest(w, "Invalid request body", err)
			return
		}
		if err := h.validator.Struct(&request); err != nil {
			response.BadRequest(w, "Validation failed", err)
			return
		}
	}

	paidDate := time.Now()
	if request.PaidDate != "" {
		parsed, err := time.Parse("2006-01-02", request.PaidDate)
		if err != nil {
			response.BadRequest(w, "paid_date must be YYYY-MM-DD", err)
			return
		}
		paidDate = parsed
	}

	result, err := h.service.MarkPaid(r.Context(), billID, paidDate)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAchievements handles GET /api/v1/users/{user_id}/achievements
func (h *BillHandler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "user_id")
	if !ok {
		return
	}

	summary, err := h.service.GetAchievements(r.Context(), userID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, summary)
}

// GetBudgetSummary handles GET /api/v1/users/{user_id}/budgets
func (h *BillHandler) GetBudgetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "user_id")
	if !ok {
		return
	}

	summaries, err := h.service.BudgetSummary(r.Context(), userID, time.Now())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, summaries)
}

type setBudgetRequest struct {
	MonthlyLimit   decimal.Decimal `json:"monthly_limit" validate:"required"`
	AlertThreshold int             `json:"alert_threshold" validate:"gte=0,lte=100"`
}

// SetBudget handles PUT /api/v1/users/{user_id}/budgets/{category}
func (h *BillHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "user_id")
	if !ok {
		return
	}
	category := mux.Vars(r)["category"]

	var request setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	budget, err := h.service.SetBudget(r.Context(), userID, category, request.MonthlyLimit, request.AlertThreshold)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, budget)
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, name+" must be a valid UUID", err)
		return uuid.Nil, false
	}
	return id, true
}

// writeBusinessError maps service errors onto HTTP statuses.
func writeBusinessError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		response.InternalServerError(w, "Unexpected error", err)
		return
	}

	switch businessErr.Code {
	case customError.ErrCodeBillNotFound:
		response.NotFound(w, businessErr.Message)
	case customError.ErrCodeBillAlreadyPaid:
		response.Conflict(w, businessErr.Message, businessErr.Err)
	case customError.ErrCodeInvalidArgument, customError.ErrCodeInvalidBillAmount, customError.ErrCodeInvalidOperation:
		response.BadRequest(w, businessErr.Message, businessErr.Err)
	default:
		response.InternalServerError(w, businessErr.Message, businessErr.Err)
	}
}
