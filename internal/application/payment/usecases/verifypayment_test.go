package usecases

import (
	"context"
	"testing"
	"time"

	"melodia/internal/domain/payment"
	"melodia/internal/domain/subscription"
	"melodia/internal/domain/user"
	gateway "melodia/internal/infrastructure/payment"
	"melodia/internal/shared/constants"
	"melodia/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func paymentTestCatalog(t *testing.T) *subscription.Catalog {
	t.Helper()
	catalog, err := subscription.NewCatalog([]subscription.Plan{
		{
			ID: constants.PlanFree, Name: "Free", Price: 0, Currency: "INR",
			Duration: subscription.DurationLifetime,
			Limits:   subscription.PlanLimits{SongsPerMonth: 5, PracticeMinutesPerDay: 15, AudioQuality: "standard", AIGenerationsPerMonth: 3},
		},
		{
			ID: constants.PlanMonthly, Name: "Pro Monthly", Price: 49900, Currency: "INR",
			Duration: subscription.DurationMonthly,
			Limits: subscription.PlanLimits{
				SongsPerMonth:         subscription.UnlimitedQuota,
				PracticeMinutesPerDay: subscription.UnlimitedQuota,
				AudioQuality:          "hd",
				AIGenerationsPerMonth: subscription.UnlimitedQuota,
			},
		},
	})
	require.NoError(t, err)
	return catalog
}

func paymentTestUser(t *testing.T) *user.User {
	t.Helper()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	u, err := user.ReconstructUser(42, "user_abc123def456", "singer@example.com",
		"Asha", "$2a$12$hash", "", false, constants.PlanFree, now, now)
	require.NoError(t, err)
	return u
}

func pendingTestPayment(t *testing.T, orderID string) *payment.Payment {
	t.Helper()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p, err := payment.ReconstructPayment(7, "pay_abc123def456", 42, 49900, "INR",
		payment.StatusPending, payment.TypeSubscription, constants.PlanMonthly,
		orderID, "", "", now, now)
	require.NoError(t, err)
	return p
}

type verifyFixture struct {
	paymentRepo *mockPaymentRepository
	subRepo     *mockSubscriptionRepository
	userRepo    *mockUserRepository
	gw          *mockGateway
	planCache   *mockPlanCache
	uc          *VerifyPaymentUseCase
}

func newVerifyFixture(t *testing.T) *verifyFixture {
	t.Helper()
	f := &verifyFixture{
		paymentRepo: new(mockPaymentRepository),
		subRepo:     new(mockSubscriptionRepository),
		userRepo:    new(mockUserRepository),
		gw:          new(mockGateway),
		planCache:   new(mockPlanCache),
	}
	log := new(mockLogger)
	log.On("Infow", mock.Anything, mock.Anything).Return().Maybe()
	log.On("Warnw", mock.Anything, mock.Anything).Return().Maybe()
	log.On("Errorw", mock.Anything, mock.Anything).Return().Maybe()
	f.uc = NewVerifyPaymentUseCase(f.paymentRepo, f.subRepo, f.userRepo,
		paymentTestCatalog(t), f.gw, f.planCache, log)
	return f
}

func TestVerifyPayment_ValidSignatureActivatesSubscription(t *testing.T) {
	f := newVerifyFixture(t)
	u := paymentTestUser(t)
	p := pendingTestPayment(t, "order_xyz789")

	f.userRepo.On("GetBySID", mock.Anything, "user_abc123def456").Return(u, nil)
	f.paymentRepo.On("GetByOrderID", mock.Anything, "order_xyz789").Return(p, nil)
	f.gw.On("VerifySignature", "order_xyz789", "rzp_pay_123", "sig_valid").Return(true)
	f.paymentRepo.On("Update", mock.Anything, p).Return(nil)
	f.subRepo.On("Create", mock.Anything, mock.AnythingOfType("*subscription.Subscription")).Return(nil)
	f.userRepo.On("Update", mock.Anything, u).Return(nil)
	f.planCache.On("Invalidate", mock.Anything, "user_abc123def456").Return(nil)

	result, err := f.uc.Execute(context.Background(), VerifyPaymentCommand{
		UserSID:           "user_abc123def456",
		RazorpayOrderID:   "order_xyz789",
		RazorpayPaymentID: "rzp_pay_123",
		RazorpaySignature: "sig_valid",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, payment.StatusCompleted, result.Payment.Status())
	assert.Equal(t, constants.PlanMonthly, result.Subscription.PlanID())
	assert.True(t, result.Subscription.IsEffectivelyActive(time.Now().UTC()))
	assert.Equal(t, constants.PlanMonthly, u.PlanID())
	f.planCache.AssertCalled(t, "Invalidate", mock.Anything, "user_abc123def456")
}

func TestVerifyPayment_InvalidSignatureFailsPayment(t *testing.T) {
	f := newVerifyFixture(t)
	u := paymentTestUser(t)
	p := pendingTestPayment(t, "order_xyz789")

	f.userRepo.On("GetBySID", mock.Anything, "user_abc123def456").Return(u, nil)
	f.paymentRepo.On("GetByOrderID", mock.Anything, "order_xyz789").Return(p, nil)
	f.gw.On("VerifySignature", "order_xyz789", "rzp_pay_123", "sig_forged").Return(false)
	f.paymentRepo.On("Update", mock.Anything, p).Return(nil)

	result, err := f.uc.Execute(context.Background(), VerifyPaymentCommand{
		UserSID:           "user_abc123def456",
		RazorpayOrderID:   "order_xyz789",
		RazorpayPaymentID: "rzp_pay_123",
		RazorpaySignature: "sig_forged",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	appErr, ok := errors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid payment signature", appErr.Message)
	assert.Equal(t, payment.StatusFailed, p.Status())
	f.subRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestVerifyPayment_AlreadyCompletedIsConflict(t *testing.T) {
	f := newVerifyFixture(t)
	u := paymentTestUser(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p, err := payment.ReconstructPayment(7, "pay_abc123def456", 42, 49900, "INR",
		payment.StatusCompleted, payment.TypeSubscription, constants.PlanMonthly,
		"order_xyz789", "rzp_pay_123", "sig_valid", now, now)
	require.NoError(t, err)

	f.userRepo.On("GetBySID", mock.Anything, "user_abc123def456").Return(u, nil)
	f.paymentRepo.On("GetByOrderID", mock.Anything, "order_xyz789").Return(p, nil)

	_, execErr := f.uc.Execute(context.Background(), VerifyPaymentCommand{
		UserSID:           "user_abc123def456",
		RazorpayOrderID:   "order_xyz789",
		RazorpayPaymentID: "rzp_pay_123",
		RazorpaySignature: "sig_valid",
	})

	require.Error(t, execErr)
	f.gw.AssertNotCalled(t, "VerifySignature", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyPayment_WrongUserIsForbidden(t *testing.T) {
	f := newVerifyFixture(t)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	otherUser, err := user.ReconstructUser(99, "user_other9999999", "other@example.com",
		"Ravi", "$2a$12$hash", "", false, constants.PlanFree, now, now)
	require.NoError(t, err)
	p := pendingTestPayment(t, "order_xyz789")

	f.userRepo.On("GetBySID", mock.Anything, "user_other9999999").Return(otherUser, nil)
	f.paymentRepo.On("GetByOrderID", mock.Anything, "order_xyz789").Return(p, nil)

	_, execErr := f.uc.Execute(context.Background(), VerifyPaymentCommand{
		UserSID:           "user_other9999999",
		RazorpayOrderID:   "order_xyz789",
		RazorpayPaymentID: "rzp_pay_123",
		RazorpaySignature: "sig_valid",
	})

	require.Error(t, execErr)
	appErr, ok := errors.IsAppError(execErr)
	require.True(t, ok)
	assert.Equal(t, "payment belongs to another user", appErr.Message)
}

func TestVerifyPayment_UnknownOrderIsNotFound(t *testing.T) {
	f := newVerifyFixture(t)
	u := paymentTestUser(t)

	f.userRepo.On("GetBySID", mock.Anything, "user_abc123def456").Return(u, nil)
	f.paymentRepo.On("GetByOrderID", mock.Anything, "order_missing").Return(nil, nil)

	_, err := f.uc.Execute(context.Background(), VerifyPaymentCommand{
		UserSID:         "user_abc123def456",
		RazorpayOrderID: "order_missing",
	})

	require.Error(t, err)
	appErr, ok := errors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "payment not found", appErr.Message)
}

func TestCreateOrder_PaidPlanOpensGatewayOrder(t *testing.T) {
	paymentRepo := new(mockPaymentRepository)
	userRepo := new(mockUserRepository)
	gw := new(mockGateway)
	log := new(mockLogger)
	log.On("Infow", mock.Anything, mock.Anything).Return().Maybe()
	uc := NewCreateOrderUseCase(paymentRepo, userRepo, paymentTestCatalog(t), gw, "rzp_test_key", log)

	u := paymentTestUser(t)
	userRepo.On("GetBySID", mock.Anything, "user_abc123def456").Return(u, nil)
	gw.On("CreateOrder", mock.Anything, int64(49900), "INR", "user_abc123def456").
		Return(&gateway.Order{ID: "order_new123", Amount: 49900, Currency: "INR", Status: "created"}, nil)
	paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*payment.Payment")).Return(nil)

	result, err := uc.Execute(context.Background(), CreateOrderCommand{
		UserSID: "user_abc123def456",
		PlanID:  constants.PlanMonthly,
	})

	require.NoError(t, err)
	assert.Equal(t, "order_new123", result.Order.ID)
	assert.Equal(t, "rzp_test_key", result.KeyID)
	assert.Equal(t, payment.StatusPending, result.Payment.Status())
	assert.Equal(t, "order_new123", result.Payment.RazorpayOrderID())
}

func TestCreateOrder_FreePlanRejected(t *testing.T) {
	paymentRepo := new(mockPaymentRepository)
	userRepo := new(mockUserRepository)
	gw := new(mockGateway)
	log := new(mockLogger)
	uc := NewCreateOrderUseCase(paymentRepo, userRepo, paymentTestCatalog(t), gw, "rzp_test_key", log)

	u := paymentTestUser(t)
	userRepo.On("GetBySID", mock.Anything, "user_abc123def456").Return(u, nil)

	_, err := uc.Execute(context.Background(), CreateOrderCommand{
		UserSID: "user_abc123def456",
		PlanID:  constants.PlanFree,
	})

	require.Error(t, err)
	appErr, ok := errors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "free plan does not require payment", appErr.Message)
	gw.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
