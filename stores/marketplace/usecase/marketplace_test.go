package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/event"
	mockEvent "github.com/tessera-xyz/goapi/domain/event/mocks"
	"github.com/tessera-xyz/goapi/domain/ledger"
	mockLedger "github.com/tessera-xyz/goapi/domain/ledger/mocks"
	"github.com/tessera-xyz/goapi/domain/marketplace"
	mockMarketplace "github.com/tessera-xyz/goapi/domain/marketplace/mocks"
	mockQuery "github.com/tessera-xyz/goapi/service/query/mocks"
)

var mockCtx = ctx.Background()

const operator = domain.Address("0xoperator")

type testsuite struct {
	suite.Suite

	q            *mockQuery.Mongo
	settingsRepo *mockMarketplace.Repo
	ledgerRepo   *mockLedger.Repo
	eventRepo    *mockEvent.Repo
	subject      *impl

	now time.Time
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.q = &mockQuery.Mongo{}
	t.settingsRepo = &mockMarketplace.Repo{}
	t.ledgerRepo = &mockLedger.Repo{}
	t.eventRepo = &mockEvent.Repo{}
	t.subject = &impl{
		q:               t.q,
		settingsRepo:    t.settingsRepo,
		ledgerRepo:      t.ledgerRepo,
		eventRepo:       t.eventRepo,
		operatorAddress: operator,
	}

	t.now = time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return t.now }
}

func (t *testsuite) TearDownTest() {
	timeNow = time.Now
}

func (t *testsuite) stubTransaction() {
	t.q.
		On("RunWithTransaction", mockCtx, mock.Anything).
		Return(func(c ctx.Ctx, run func(ctx.Ctx) error) error {
			return run(c)
		})
}

func (t *testsuite) TestGetCommissionPercent() {
	chainId := domain.ChainId(1)

	t.settingsRepo.
		On("FindOne", mockCtx, marketplace.SettingsId{ChainId: chainId}).
		Return(&marketplace.Settings{ChainId: chainId, CommissionPercent: 3}, nil)

	percent, err := t.subject.GetCommissionPercent(mockCtx, chainId)
	t.NoError(err)
	t.Equal(int64(3), percent)
}

func (t *testsuite) TestGetCommissionPercentDefaultsToZero() {
	chainId := domain.ChainId(1)

	t.settingsRepo.
		On("FindOne", mockCtx, marketplace.SettingsId{ChainId: chainId}).
		Return(nil, domain.ErrNotFound)

	percent, err := t.subject.GetCommissionPercent(mockCtx, chainId)
	t.NoError(err)
	t.Equal(int64(0), percent)
}

func (t *testsuite) TestSetCommissionPercent() {
	chainId := domain.ChainId(1)

	t.settingsRepo.On("Upsert", mockCtx, mock.Anything).Return(nil)
	t.eventRepo.On("Insert", mockCtx, mock.Anything).Return(nil)

	err := t.subject.SetCommissionPercent(mockCtx, chainId, "0xOPERATOR", 5)
	t.NoError(err)

	settings := t.settingsRepo.Calls[0].Arguments.Get(1).(*marketplace.Settings)
	t.Equal(int64(5), settings.CommissionPercent)
	t.Equal(t.now, settings.UpdatedAt)

	evt := t.eventRepo.Calls[0].Arguments.Get(1).(*event.Event)
	t.Equal(event.TypeCommissionPercentChanged, evt.Type)
	t.Equal(int64(5), evt.CommissionPercent)
}

func (t *testsuite) TestSetCommissionPercentUnauthorized() {
	err := t.subject.SetCommissionPercent(mockCtx, 1, "0xsomeoneelse", 5)
	t.ErrorIs(err, domain.ErrUnauthorized)
	t.settingsRepo.AssertNotCalled(t.T(), "Upsert", mock.Anything, mock.Anything)
}

func (t *testsuite) TestSetCommissionPercentOutOfRange() {
	err := t.subject.SetCommissionPercent(mockCtx, 1, operator, marketplace.MaxCommissionPercent+1)
	t.ErrorIs(err, domain.ErrCommissionOutOfRange)

	err = t.subject.SetCommissionPercent(mockCtx, 1, operator, -1)
	t.ErrorIs(err, domain.ErrCommissionOutOfRange)
}

func (t *testsuite) TestWithdraw() {
	chainId := domain.ChainId(1)
	treasuryId := ledger.AccountId{ChainId: chainId, Address: ledger.TreasuryAddress}
	operatorId := ledger.AccountId{ChainId: chainId, Address: operator}

	t.stubTransaction()
	t.ledgerRepo.
		On("FindOne", mockCtx, treasuryId).
		Return(&ledger.Account{ChainId: chainId, Address: ledger.TreasuryAddress, Balance: 700}, nil)
	t.ledgerRepo.On("Debit", mockCtx, treasuryId, int64(700)).Return(nil)
	t.ledgerRepo.On("Credit", mockCtx, operatorId, int64(700)).Return(nil)

	amount, err := t.subject.Withdraw(mockCtx, chainId, operator)
	t.NoError(err)
	t.Equal(int64(700), amount)
}

func (t *testsuite) TestWithdrawEmptyTreasury() {
	chainId := domain.ChainId(1)
	treasuryId := ledger.AccountId{ChainId: chainId, Address: ledger.TreasuryAddress}

	t.stubTransaction()
	t.ledgerRepo.On("FindOne", mockCtx, treasuryId).Return(nil, domain.ErrNotFound)

	amount, err := t.subject.Withdraw(mockCtx, chainId, operator)
	t.NoError(err)
	t.Equal(int64(0), amount)
	t.ledgerRepo.AssertNotCalled(t.T(), "Debit", mock.Anything, mock.Anything, mock.Anything)
}

func (t *testsuite) TestWithdrawUnauthorized() {
	_, err := t.subject.Withdraw(mockCtx, 1, "0xsomeoneelse")
	t.ErrorIs(err, domain.ErrUnauthorized)
}
