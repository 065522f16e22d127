package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/paydue/reminder-engine/internal/achievement"
	"github.com/paydue/reminder-engine/internal/config"
	"github.com/paydue/reminder-engine/internal/domain"
	customError "github.com/paydue/reminder-engine/pkg/errors"
	"github.com/paydue/reminder-engine/tests/mocks"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testConfig() *config.Config {
	return &config.Config{
		Notifications: config.NotificationsConfig{
			SmartEnabled:     true,
			WeeklyWindowDays: 7,
			DueSoonDays:      7,
		},
	}
}

func newBillService() (*BillService, *mocks.MockBillRepository, *mocks.MockPaymentRepository, *mocks.MockStatsRepository) {
	billRepo := &mocks.MockBillRepository{}
	paymentRepo := &mocks.MockPaymentRepository{}
	statsRepo := &mocks.MockStatsRepository{}

	service := &BillService{
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		statsRepo:   statsRepo,
		budgetRepo:  &mocks.MockBudgetRepository{},
		config:      testConfig(),
	}

	return service, billRepo, paymentRepo, statsRepo
}

func pendingBill(dueDate time.Time, frequency string) *domain.Bill {
	return &domain.Bill{
		ID:                 uuid.New(),
		UserID:             uuid.New(),
		Name:               "Electric",
		Amount:             decimal.NewFromFloat(120.50),
		DueDate:            dueDate,
		Frequency:          frequency,
		Category:           domain.CategoryUtilities,
		Status:             domain.BillStatusPending,
		ReminderDaysBefore: []int64{7, 3, 1},
	}
}

func TestMarkPaid_MonthlyAdvancesDueDate(t *testing.T) {
	service, billRepo, paymentRepo, statsRepo := newBillService()

	bill := pendingBill(date(2024, time.March, 15), domain.FrequencyMonthly)

	billRepo.On("GetByID", mock.Anything, bill.ID).Return(bill, nil)
	paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.PaymentHistory) bool {
		return p.BillID == bill.ID &&
			p.PaidDate.Equal(date(2024, time.March, 10)) &&
			p.Amount.Equal(decimal.NewFromFloat(120.50))
	})).Return(nil)
	billRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Bill) bool {
		return b.DueDate.Equal(date(2024, time.April, 15)) && b.Status == domain.BillStatusPending
	})).Return(nil)

	statsRepo.On("Get", mock.Anything, bill.UserID).Return(&domain.UserStats{
		UserID:          bill.UserID,
		TotalAmountPaid: decimal.Zero,
		TotalSaved:      decimal.Zero,
	}, nil)
	statsRepo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.UserStats) bool {
		return s.TotalBillsPaid == 1 &&
			s.CurrentStreak == 1 &&
			s.LongestStreak == 1 &&
			s.OnTimePayments == 1 &&
			s.TotalSaved.Equal(decimal.NewFromInt(30))
	})).Return(nil)
	statsRepo.On("ListAchievements", mock.Anything, bill.UserID).Return([]*domain.Achievement{}, nil)
	statsRepo.On("CreateAchievement", mock.Anything, mock.MatchedBy(func(a *domain.Achievement) bool {
		return a.Type == achievement.TypeFirstBill && a.UserID == bill.UserID
	})).Return(nil)

	result, err := service.MarkPaid(context.Background(), bill.ID, date(2024, time.March, 10))

	require.NoError(t, err)
	assert.True(t, result.Bill.DueDate.Equal(date(2024, time.April, 15)))
	assert.Equal(t, domain.BillStatusPending, result.Bill.Status)
	require.Len(t, result.Achievements, 1)
	assert.Equal(t, achievement.TypeFirstBill, result.Achievements[0].Type)

	billRepo.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
	statsRepo.AssertExpectations(t)
}

func TestMarkPaid_MonthEndClampsToLeapFebruary(t *testing.T) {
	service, billRepo, paymentRepo, statsRepo := newBillService()

	bill := pendingBill(date(2024, time.January, 31), domain.FrequencyMonthly)

	billRepo.On("GetByID", mock.Anything, bill.ID).Return(bill, nil)
	paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	billRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Bill) bool {
		return b.DueDate.Equal(date(2024, time.February, 29))
	})).Return(nil)

	statsRepo.On("Get", mock.Anything, bill.UserID).Return(&domain.UserStats{
		UserID:          bill.UserID,
		TotalAmountPaid: decimal.Zero,
		TotalSaved:      decimal.Zero,
	}, nil)
	statsRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	statsRepo.On("ListAchievements", mock.Anything, bill.UserID).Return([]*domain.Achievement{}, nil)
	statsRepo.On("CreateAchievement", mock.Anything, mock.Anything).Return(nil)

	result, err := service.MarkPaid(context.Background(), bill.ID, date(2024, time.January, 31))

	require.NoError(t, err)
	assert.True(t, result.Bill.DueDate.Equal(date(2024, time.February, 29)))

	billRepo.AssertExpectations(t)
}

func TestMarkPaid_OneTimeBillTerminates(t *testing.T) {
	service, billRepo, paymentRepo, statsRepo := newBillService()

	dueDate := date(2024, time.June, 1)
	bill := pendingBill(dueDate, domain.FrequencyOnce)

	billRepo.On("GetByID", mock.Anything, bill.ID).Return(bill, nil)
	paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	billRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Bill) bool {
		return b.Status == domain.BillStatusPaid && b.DueDate.Equal(dueDate)
	})).Return(nil)

	statsRepo.On("Get", mock.Anything, bill.UserID).Return(&domain.UserStats{
		UserID:          bill.UserID,
		TotalAmountPaid: decimal.Zero,
		TotalSaved:      decimal.Zero,
	}, nil)
	statsRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	statsRepo.On("ListAchievements", mock.Anything, bill.UserID).Return([]*domain.Achievement{}, nil)
	statsRepo.On("CreateAchievement", mock.Anything, mock.Anything).Return(nil)

	result, err := service.MarkPaid(context.Background(), bill.ID, date(2024, time.May, 30))

	require.NoError(t, err)
	assert.Equal(t, domain.BillStatusPaid, result.Bill.Status)

	billRepo.AssertExpectations(t)
}

func TestMarkPaid_AlreadyPaid(t *testing.T) {
	service, billRepo, _, _ := newBillService()

	bill := pendingBill(date(2024, time.June, 1), domain.FrequencyOnce)
	bill.Status = domain.BillStatusPaid

	billRepo.On("GetByID", mock.Anything, bill.ID).Return(bill, nil)

	result, err := service.MarkPaid(context.Background(), bill.ID, date(2024, time.June, 1))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, customError.ErrBillAlreadyPaid)
}

func TestMarkPaid_NotFound(t *testing.T) {
	service, billRepo, _, _ := newBillService()

	billID := uuid.New()
	billRepo.On("GetByID", mock.Anything, billID).Return(nil, sql.ErrNoRows)

	result, err := service.MarkPaid(context.Background(), billID, date(2024, time.June, 1))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, customError.ErrBillNotFound)
}

func TestMarkPaid_LatePaymentResetsStreak(t *testing.T) {
	service, billRepo, paymentRepo, statsRepo := newBillService()

	bill := pendingBill(date(2024, time.March, 15), domain.FrequencyMonthly)

	billRepo.On("GetByID", mock.Anything, bill.ID).Return(bill, nil)
	paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	billRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	statsRepo.On("Get", mock.Anything, bill.UserID).Return(&domain.UserStats{
		UserID:          bill.UserID,
		CurrentStreak:   5,
		LongestStreak:   5,
		TotalBillsPaid:  12,
		OnTimePayments:  8,
		TotalAmountPaid: decimal.NewFromInt(1000),
		TotalSaved:      decimal.NewFromInt(240),
	}, nil)
	statsRepo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.UserStats) bool {
		return s.CurrentStreak == 0 &&
			s.LongestStreak == 5 &&
			s.LatePayments == 1 &&
			s.TotalBillsPaid == 13 &&
			s.TotalSaved.Equal(decimal.NewFromInt(240))
	})).Return(nil)
	statsRepo.On("ListAchievements", mock.Anything, bill.UserID).Return([]*domain.Achievement{
		{Type: achievement.TypeFirstBill},
		{Type: achievement.TypeBills10},
		{Type: achievement.TypeSaved100},
	}, nil)

	result, err := service.MarkPaid(context.Background(), bill.ID, date(2024, time.March, 20))

	require.NoError(t, err)
	assert.Empty(t, result.Achievements)

	statsRepo.AssertExpectations(t)
	statsRepo.AssertNotCalled(t, "CreateAchievement", mock.Anything, mock.Anything)
}

func TestCreateBill_DefaultsAndNormalization(t *testing.T) {
	service, billRepo, _, _ := newBillService()

	userID := uuid.New()
	billRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Bill) bool {
		return b.UserID == userID &&
			b.DueDate.Equal(date(2024, time.July, 1)) &&
			b.Status == domain.BillStatusPending &&
			len(b.ReminderDaysBefore) == 3
	})).Return(nil)

	bill, err := service.CreateBill(context.Background(), userID, &domain.CreateBillRequest{
		Name:      "Rent",
		Amount:    decimal.NewFromInt(1500),
		DueDate:   "2024-07-01",
		Frequency: domain.FrequencyMonthly,
		Category:  domain.CategoryRent,
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{7, 3, 1}, []int64(bill.ReminderDaysBefore))

	billRepo.AssertExpectations(t)
}

func TestCreateBill_RejectsUnknownFrequency(t *testing.T) {
	service, _, _, _ := newBillService()

	bill, err := service.CreateBill(context.Background(), uuid.New(), &domain.CreateBillRequest{
		Name:      "Rent",
		Amount:    decimal.NewFromInt(1500),
		DueDate:   "2024-07-01",
		Frequency: "fortnightly",
		Category:  domain.CategoryRent,
	})

	assert.Nil(t, bill)
	assert.ErrorIs(t, err, customError.ErrUnknownFrequency)
}

func TestCreateBill_RejectsBadCustomDay(t *testing.T) {
	service, _, _, _ := newBillService()

	bill, err := service.CreateBill(context.Background(), uuid.New(), &domain.CreateBillRequest{
		Name:             "Rent",
		Amount:           decimal.NewFromInt(1500),
		DueDate:          "2024-07-01",
		Frequency:        domain.FrequencyMonthly,
		Category:         domain.CategoryRent,
		CustomDayOfMonth: 32,
	})

	assert.Nil(t, bill)
	assert.ErrorIs(t, err, customError.ErrInvalidDayOfMonth)
}

func TestMarkPaid_PaymentInsertFailureAborts(t *testing.T) {
	service, billRepo, paymentRepo, statsRepo := newBillService()

	bill := pendingBill(date(2024, time.March, 15), domain.FrequencyMonthly)

	billRepo.On("GetByID", mock.Anything, bill.ID).Return(bill, nil)
	paymentRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	result, err := service.MarkPaid(context.Background(), bill.ID, date(2024, time.March, 10))

	assert.Nil(t, result)
	require.Error(t, err)

	var businessErr *customError.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, customError.ErrCodeDatabaseError, businessErr.Code)

	billRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	statsRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
