package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/keylock"
	"github.com/tessera-xyz/goapi/domain"
	mockGateway "github.com/tessera-xyz/goapi/domain/mocks"

	"github.com/tessera-xyz/goapi/domain/event"
	mockEvent "github.com/tessera-xyz/goapi/domain/event/mocks"
	"github.com/tessera-xyz/goapi/domain/ledger"
	mockLedger "github.com/tessera-xyz/goapi/domain/ledger/mocks"
	"github.com/tessera-xyz/goapi/domain/listing"
	mockListing "github.com/tessera-xyz/goapi/domain/listing/mocks"
	"github.com/tessera-xyz/goapi/domain/settlement"
	mockQuery "github.com/tessera-xyz/goapi/service/query/mocks"
)

var mockCtx = ctx.Background()

const operator = domain.Address("0x000000000000000000000000000000000000beef")

type testsuite struct {
	suite.Suite

	q            *mockQuery.Mongo
	listingRepo  *mockListing.Repo
	ledgerRepo   *mockLedger.Repo
	eventRepo    *mockEvent.Repo
	assetGateway *mockGateway.AssetGateway
	subject      *impl

	now time.Time
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.q = &mockQuery.Mongo{}
	t.listingRepo = &mockListing.Repo{}
	t.ledgerRepo = &mockLedger.Repo{}
	t.eventRepo = &mockEvent.Repo{}
	t.assetGateway = &mockGateway.AssetGateway{}
	t.subject = &impl{
		q:               t.q,
		listingRepo:     t.listingRepo,
		ledgerRepo:      t.ledgerRepo,
		eventRepo:       t.eventRepo,
		assetGateway:    t.assetGateway,
		keyLock:         keylock.New(),
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

func (t *testsuite) stubApproved(l *listing.Listing) {
	t.assetGateway.
		On("IsApproved", mockCtx, l.ChainId, l.TokenType, l.Contract, l.Seller, operator).
		Return(true, nil)
}

func (t *testsuite) fixtureListing() *listing.Listing {
	return &listing.Listing{
		ListingId:         42,
		ChainId:           1,
		Contract:          "0xc0ffee",
		TokenId:           "7",
		TokenType:         domain.TokenType1155,
		Seller:            "0xseller",
		Quantity:          5,
		UnitPrice:         200,
		CommissionPercent: 2,
		ExpiresAt:         t.now.Add(time.Hour),
		CreatedAt:         t.now.Add(-time.Hour),
	}
}

func (t *testsuite) TestPurchase() {
	l := t.fixtureListing()
	id := l.ToId()
	buyer := domain.Address("0xbuyer")

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)
	t.assetGateway.
		On("OwnerOrBalance", mockCtx, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller).
		Return(int64(5), nil)
	t.stubApproved(l)

	t.stubTransaction()

	buyerId := ledger.AccountId{ChainId: 1, Address: buyer}
	sellerId := ledger.AccountId{ChainId: 1, Address: l.Seller}
	treasuryId := ledger.AccountId{ChainId: 1, Address: ledger.TreasuryAddress}

	// paid 1000, 2% commission keeps 20 and forwards 980
	t.ledgerRepo.On("Debit", mockCtx, buyerId, int64(1000)).Return(nil)
	t.ledgerRepo.On("Credit", mockCtx, sellerId, int64(980)).Return(nil)
	t.ledgerRepo.On("Credit", mockCtx, treasuryId, int64(20)).Return(nil)
	t.listingRepo.On("Remove", mockCtx, id).Return(nil)
	t.eventRepo.On("Insert", mockCtx, mock.Anything).Return(nil)
	t.assetGateway.
		On("Transfer", mockCtx, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller, buyer, int64(5)).
		Return(domain.TxHash("0xhash"), nil)

	receipt, err := t.subject.Purchase(mockCtx, settlement.PurchasePayload{
		Id:               id,
		Buyer:            buyer,
		ExpectedQuantity: 5,
		PaidAmount:       1000,
	})
	t.NoError(err)
	t.Equal(domain.ListingId(42), receipt.ListingId)
	t.Equal(int64(1000), receipt.PaidAmount)
	t.Equal(int64(20), receipt.Commission)
	t.Equal(int64(980), receipt.SellerProceeds)
	t.Equal(domain.TxHash("0xhash"), receipt.TxHash)

	evt := t.eventRepo.Calls[0].Arguments.Get(1).(*event.Event)
	t.Equal(event.TypeSold, evt.Type)
	t.Equal(buyer, evt.Buyer)
	t.Equal(int64(1000), evt.PaidAmount)
}

func (t *testsuite) TestPurchaseZeroCommission() {
	l := t.fixtureListing()
	l.CommissionPercent = 0
	id := l.ToId()
	buyer := domain.Address("0xbuyer")

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)
	t.assetGateway.
		On("OwnerOrBalance", mockCtx, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller).
		Return(int64(5), nil)
	t.stubApproved(l)

	t.stubTransaction()

	t.ledgerRepo.On("Debit", mockCtx, mock.Anything, int64(1000)).Return(nil)
	t.ledgerRepo.On("Credit", mockCtx, mock.Anything, int64(1000)).Return(nil)
	t.listingRepo.On("Remove", mockCtx, id).Return(nil)
	t.eventRepo.On("Insert", mockCtx, mock.Anything).Return(nil)
	t.assetGateway.
		On("Transfer", mockCtx, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller, buyer, int64(5)).
		Return(domain.TxHash("0xhash"), nil)

	receipt, err := t.subject.Purchase(mockCtx, settlement.PurchasePayload{
		Id:               id,
		Buyer:            buyer,
		ExpectedQuantity: 5,
		PaidAmount:       1000,
	})
	t.NoError(err)
	t.Equal(int64(0), receipt.Commission)
	t.Equal(int64(1000), receipt.SellerProceeds)

	// no treasury credit happens when the commission rounds to zero
	t.ledgerRepo.AssertNumberOfCalls(t.T(), "Credit", 1)
}

func (t *testsuite) TestPurchaseNotFound() {
	l := t.fixtureListing()
	id := l.ToId()

	t.listingRepo.On("FindOne", mockCtx, id).Return(nil, domain.ErrNotFound)

	_, err := t.subject.Purchase(mockCtx, settlement.PurchasePayload{
		Id:               id,
		Buyer:            "0xbuyer",
		ExpectedQuantity: 5,
		PaidAmount:       1000,
	})
	t.ErrorIs(err, domain.ErrNotFound)
}

func (t *testsuite) TestPurchaseExpired() {
	l := t.fixtureListing()
	l.ExpiresAt = t.now.Add(-time.Minute)
	id := l.ToId()

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)

	_, err := t.subject.Purchase(mockCtx, settlement.PurchasePayload{
		Id:               id,
		Buyer:            "0xbuyer",
		ExpectedQuantity: 5,
		PaidAmount:       1000,
	})
	t.ErrorIs(err, domain.ErrListingExpired)
}

func (t *testsuite) TestPurchaseSelfPurchase() {
	l := t.fixtureListing()
	id := l.ToId()

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)

	_, err := t.subject.Purchase(mockCtx, settlement.PurchasePayload{
		Id:               id,
		Buyer:            l.Seller,
		ExpectedQuantity: 5,
		PaidAmount:       1000,
	})
	t.ErrorIs(err, domain.ErrSelfPurchase)
}

func (t *testsuite) TestPurchaseQuantityMismatch() {
	l := t.fixtureListing()
	id := l.ToId()

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)

	_, err := t.subject.Purchase(mockCtx, settlement.PurchasePayload{
		Id:               id,
		Buyer:            "0xbuyer",
		ExpectedQuantity: 3,
		PaidAmount:       600,
	})
	t.ErrorIs(err, domain.ErrQuantityMismatch)
}

func (t *testsuite) TestPurchaseSingleItemSkipsQuantityCheck() {
	l := t.fixtureListing()
	l.TokenType = domain.TokenType721
	l.Quantity = 1
	id := l.ToId()
	buyer := domain.Address("0xbuyer")

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)
	t.assetGateway.
		On("OwnerOrBalance", mockCtx, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller).
		Return(int64(1), nil)
	t.stubApproved(l)

	t.stubTransaction()

	t.ledgerRepo.On("Debit", mockCtx, mock.Anything, int64(200)).Return(nil)
	t.ledgerRepo.On("Credit", mockCtx, mock.Anything, mock.Anything).Return(nil)
	t.listingRepo.On("Remove", mockCtx, id).Return(nil)
	t.eventRepo.On("Insert", mockCtx, mock.Anything).Return(nil)
	t.assetGateway.
		On("Transfer", mockCtx, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller, buyer, int64(1)).
		Return(domain.TxHash("0xhash"), nil)

	// single-item purchases carry no expected quantity
	receipt, err := t.subject.Purchase(mockCtx, settlement.PurchasePayload{
		Id:         id,
		Buyer:      buyer,
		PaidAmount: 200,
	})
	t.NoError(err)
	t.Equal(int64(200), receipt.PaidAmount)
}

func (t *testsuite) TestPurchaseStaleHoldingRejected() {
	l := t.fixtureListing()
	id := l.ToId()

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)
	t.assetGateway.
		On("OwnerOrBalance", mockCtx, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller).
		Return(int64(2), nil)

	_, err := t.subject.Purchase(mockCtx, settlement.PurchasePayload{
		Id:               id,
		Buyer:            "0xbuyer",
		ExpectedQuantity: 5,
		PaidAmount:       1000,
	})
	t.ErrorIs(err, domain.ErrInsufficientBalance)

	// the listing stays in place, the seller may re-acquire before expiry
	t.listingRepo.AssertNotCalled(t.T(), "Remove", mock.Anything, mock.Anything)
	t.eventRepo.AssertNotCalled(t.T(), "Insert", mock.Anything, mock.Anything)
}

func (t *testsuite) TestPurchaseSingleItemStaleOwnerRejected() {
	l := t.fixtureListing()
	l.TokenType = domain.TokenType721
	l.Quantity = 1
	id := l.ToId()

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)
	t.assetGateway.
		On("OwnerOrBalance", mockCtx, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller).
		Return(int64(0), nil)

	_, err := t.subject.Purchase(mockCtx, settlement.PurchasePayload{
		Id:         id,
		Buyer:      "0xbuyer",
		PaidAmount: 200,
	})
	t.ErrorIs(err, domain.ErrNotOwner)

	t.listingRepo.AssertNotCalled(t.T(), "Remove", mock.Anything, mock.Anything)
	t.eventRepo.AssertNotCalled(t.T(), "Insert", mock.Anything, mock.Anything)
}

func (t *testsuite) TestPurchaseApprovalRevoked() {
	l := t.fixtureListing()
	id := l.ToId()

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)
	t.assetGateway.
		On("OwnerOrBalance", mockCtx, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller).
		Return(int64(5), nil)
	t.assetGateway.
		On("IsApproved", mockCtx, l.ChainId, l.TokenType, l.Contract, l.Seller, operator).
		Return(false, nil)

	_, err := t.subject.Purchase(mockCtx, settlement.PurchasePayload{
		Id:               id,
		Buyer:            "0xbuyer",
		ExpectedQuantity: 5,
		PaidAmount:       1000,
	})
	t.ErrorIs(err, domain.ErrNotApproved)

	t.assetGateway.AssertCalled(t.T(), "IsApproved", mockCtx, l.ChainId, l.TokenType, l.Contract, l.Seller, operator)
	t.ledgerRepo.AssertNotCalled(t.T(), "Debit", mock.Anything, mock.Anything, mock.Anything)
	t.assetGateway.AssertNotCalled(t.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (t *testsuite) TestPurchasePaymentMismatch() {
	l := t.fixtureListing()
	id := l.ToId()

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)
	t.assetGateway.
		On("OwnerOrBalance", mockCtx, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller).
		Return(int64(5), nil)
	t.stubApproved(l)

	_, err := t.subject.Purchase(mockCtx, settlement.PurchasePayload{
		Id:               id,
		Buyer:            "0xbuyer",
		ExpectedQuantity: 5,
		PaidAmount:       999,
	})
	t.ErrorIs(err, domain.ErrPaymentMismatch)
}

func (t *testsuite) TestPurchaseInsufficientFunds() {
	l := t.fixtureListing()
	id := l.ToId()
	buyer := domain.Address("0xbuyer")

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)
	t.assetGateway.
		On("OwnerOrBalance", mockCtx, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller).
		Return(int64(5), nil)
	t.stubApproved(l)

	t.stubTransaction()
	t.ledgerRepo.On("Debit", mockCtx, mock.Anything, int64(1000)).Return(domain.ErrInsufficientFunds)

	_, err := t.subject.Purchase(mockCtx, settlement.PurchasePayload{
		Id:               id,
		Buyer:            buyer,
		ExpectedQuantity: 5,
		PaidAmount:       1000,
	})
	t.ErrorIs(err, domain.ErrInsufficientFunds)

	t.ledgerRepo.AssertNotCalled(t.T(), "Credit", mock.Anything, mock.Anything, mock.Anything)
	t.assetGateway.AssertNotCalled(t.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (t *testsuite) TestPurchasePayoutFailed() {
	l := t.fixtureListing()
	id := l.ToId()
	buyer := domain.Address("0xbuyer")

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)
	t.assetGateway.
		On("OwnerOrBalance", mockCtx, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller).
		Return(int64(5), nil)
	t.stubApproved(l)

	t.stubTransaction()

	t.ledgerRepo.On("Debit", mockCtx, mock.Anything, int64(1000)).Return(nil)
	t.ledgerRepo.On("Credit", mockCtx, mock.Anything, mock.Anything).Return(nil)
	t.listingRepo.On("Remove", mockCtx, id).Return(nil)
	t.eventRepo.On("Insert", mockCtx, mock.Anything).Return(nil)
	t.assetGateway.
		On("Transfer", mockCtx, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller, buyer, int64(5)).
		Return(domain.TxHash(""), errors.New("rpc down"))

	_, err := t.subject.Purchase(mockCtx, settlement.PurchasePayload{
		Id:               id,
		Buyer:            buyer,
		ExpectedQuantity: 5,
		PaidAmount:       1000,
	})
	t.ErrorIs(err, domain.ErrPayoutFailed)
}

func (t *testsuite) TestCommissionOf() {
	t.Equal(int64(0), commissionOf(99, 0))
	t.Equal(int64(1), commissionOf(99, 2))
	t.Equal(int64(0), commissionOf(49, 2))
	t.Equal(int64(100), commissionOf(1000, 10))
	// no overflow near the int64 cap
	t.Equal(int64(92233720368547758), commissionOf(9223372036854775807, 1))
}
