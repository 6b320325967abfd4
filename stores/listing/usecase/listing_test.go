package usecase

import (
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
	"github.com/tessera-xyz/goapi/domain/listing"
	mockListing "github.com/tessera-xyz/goapi/domain/listing/mocks"
	mockMarketplace "github.com/tessera-xyz/goapi/domain/marketplace/mocks"
)

var mockCtx = ctx.Background()

const operator = domain.Address("0x000000000000000000000000000000000000beef")

type testsuite struct {
	suite.Suite

	listingRepo   *mockListing.Repo
	sequenceRepo  *mockListing.SequenceRepo
	eventRepo     *mockEvent.Repo
	marketplaceUC *mockMarketplace.UseCase
	assetGateway  *mockGateway.AssetGateway
	subject       *impl

	now time.Time
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.listingRepo = &mockListing.Repo{}
	t.sequenceRepo = &mockListing.SequenceRepo{}
	t.eventRepo = &mockEvent.Repo{}
	t.marketplaceUC = &mockMarketplace.UseCase{}
	t.assetGateway = &mockGateway.AssetGateway{}
	t.subject = &impl{
		listingRepo:     t.listingRepo,
		sequenceRepo:    t.sequenceRepo,
		eventRepo:       t.eventRepo,
		marketplaceUC:   t.marketplaceUC,
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

func (t *testsuite) payload721() listing.CreatePayload {
	return listing.CreatePayload{
		ChainId:       1,
		Contract:      "0x71C7656EC7ab88b098defB751B7401B5f6d8976F",
		TokenId:       "7",
		TokenType:     domain.TokenType721,
		Seller:        "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
		Quantity:      1,
		UnitPrice:     1000,
		DurationHours: 24,
	}
}

func (t *testsuite) TestCreate() {
	p := t.payload721()

	t.assetGateway.
		On("OwnerOrBalance", mockCtx, p.ChainId, p.TokenType, p.Contract, p.TokenId, p.Seller).
		Return(int64(1), nil)
	t.assetGateway.
		On("IsApproved", mockCtx, p.ChainId, p.TokenType, p.Contract, p.Seller, operator).
		Return(true, nil)
	t.marketplaceUC.On("GetCommissionPercent", mockCtx, p.ChainId).Return(int64(2), nil)
	t.sequenceRepo.On("NextListingId", mockCtx).Return(domain.ListingId(42), nil)
	t.listingRepo.On("Upsert", mockCtx, mock.Anything).Return(nil)
	t.eventRepo.On("Insert", mockCtx, mock.Anything).Return(nil)

	id, err := t.subject.Create(mockCtx, p)
	t.NoError(err)
	t.Equal(domain.ListingId(42), id)

	l := t.listingRepo.Calls[0].Arguments.Get(1).(*listing.Listing)
	t.Equal(domain.ListingId(42), l.ListingId)
	t.Equal(p.Contract.ToLower(), l.Contract)
	t.Equal(p.Seller.ToLower(), l.Seller)
	t.Equal(int64(2), l.CommissionPercent)
	t.Equal(t.now, l.CreatedAt)
	t.Equal(t.now.Add(24*time.Hour), l.ExpiresAt)

	evt := t.eventRepo.Calls[0].Arguments.Get(1).(*event.Event)
	t.Equal(event.TypeListingCreated, evt.Type)
	t.Equal(domain.ListingId(42), evt.ListingId)
}

func (t *testsuite) TestCreateBadParams() {
	cases := []func(*listing.CreatePayload){
		func(p *listing.CreatePayload) { p.ChainId = 0 },
		func(p *listing.CreatePayload) { p.TokenType = domain.TokenType(20) },
		func(p *listing.CreatePayload) { p.TokenId = "" },
		func(p *listing.CreatePayload) { p.UnitPrice = 0 },
		func(p *listing.CreatePayload) { p.UnitPrice = -5 },
		func(p *listing.CreatePayload) { p.DurationHours = 0 },
		func(p *listing.CreatePayload) { p.Quantity = 0 },
		func(p *listing.CreatePayload) { p.Quantity = 3 }, // single-item must list exactly one
	}
	for _, mutate := range cases {
		p := t.payload721()
		mutate(&p)
		_, err := t.subject.Create(mockCtx, p)
		t.ErrorIs(err, domain.ErrBadParamInput)
	}
}

func (t *testsuite) TestCreateInvalidAddress() {
	p := t.payload721()
	p.Contract = "not-an-address"
	_, err := t.subject.Create(mockCtx, p)
	t.ErrorIs(err, domain.ErrInvalidAddress)
}

func (t *testsuite) TestCreateNotOwner() {
	p := t.payload721()

	t.assetGateway.
		On("OwnerOrBalance", mockCtx, p.ChainId, p.TokenType, p.Contract, p.TokenId, p.Seller).
		Return(int64(0), nil)

	_, err := t.subject.Create(mockCtx, p)
	t.ErrorIs(err, domain.ErrNotOwner)
}

func (t *testsuite) TestCreateInsufficientBalance() {
	p := t.payload721()
	p.TokenType = domain.TokenType1155
	p.Quantity = 10

	t.assetGateway.
		On("OwnerOrBalance", mockCtx, p.ChainId, p.TokenType, p.Contract, p.TokenId, p.Seller).
		Return(int64(4), nil)

	_, err := t.subject.Create(mockCtx, p)
	t.ErrorIs(err, domain.ErrInsufficientBalance)
}

func (t *testsuite) TestCreateNotApproved() {
	p := t.payload721()

	t.assetGateway.
		On("OwnerOrBalance", mockCtx, p.ChainId, p.TokenType, p.Contract, p.TokenId, p.Seller).
		Return(int64(1), nil)
	t.assetGateway.
		On("IsApproved", mockCtx, p.ChainId, p.TokenType, p.Contract, p.Seller, operator).
		Return(false, nil)

	_, err := t.subject.Create(mockCtx, p)
	t.ErrorIs(err, domain.ErrNotApproved)
}

func (t *testsuite) fixtureListing() *listing.Listing {
	return &listing.Listing{
		ListingId: 42,
		ChainId:   1,
		Contract:  "0xc0ffee",
		TokenId:   "7",
		TokenType: domain.TokenType721,
		Seller:    "0xseller",
		Quantity:  1,
		UnitPrice: 1000,
		ExpiresAt: t.now.Add(time.Hour),
		CreatedAt: t.now.Add(-time.Hour),
	}
}

func (t *testsuite) TestCancel() {
	l := t.fixtureListing()
	id := l.ToId()

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)
	t.listingRepo.On("Remove", mockCtx, id).Return(nil)
	t.eventRepo.On("Insert", mockCtx, mock.Anything).Return(nil)

	err := t.subject.Cancel(mockCtx, id, "0xSELLER")
	t.NoError(err)

	evt := t.eventRepo.Calls[0].Arguments.Get(1).(*event.Event)
	t.Equal(event.TypeListingRemoved, evt.Type)
}

func (t *testsuite) TestCancelUnauthorized() {
	l := t.fixtureListing()
	id := l.ToId()

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)

	err := t.subject.Cancel(mockCtx, id, "0xsomeoneelse")
	t.ErrorIs(err, domain.ErrUnauthorized)
	t.listingRepo.AssertNotCalled(t.T(), "Remove", mockCtx, id)
}

func (t *testsuite) TestCancelAfterExpiry() {
	l := t.fixtureListing()
	l.ExpiresAt = t.now.Add(-time.Hour)
	id := l.ToId()

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)
	t.listingRepo.On("Remove", mockCtx, id).Return(nil)
	t.eventRepo.On("Insert", mockCtx, mock.Anything).Return(nil)

	// expiry hides a listing from readers but its seller may still cancel
	err := t.subject.Cancel(mockCtx, id, l.Seller)
	t.NoError(err)
	t.listingRepo.AssertCalled(t.T(), "Remove", mockCtx, id)
}

func (t *testsuite) TestCancelLeavesOtherSellersListing() {
	a := t.fixtureListing()
	a.TokenType = domain.TokenType1155
	a.Quantity = 3
	b := t.fixtureListing()
	b.TokenType = domain.TokenType1155
	b.Seller = "0xothervendor"
	b.Quantity = 2

	idA := a.ToId()
	idB := b.ToId()
	// the seller is part of the multi-item key
	t.NotEqual(idA, idB)

	t.listingRepo.On("FindOne", mockCtx, idA).Return(a, nil)
	t.listingRepo.On("FindOne", mockCtx, idB).Return(b, nil)
	t.listingRepo.On("Remove", mockCtx, idA).Return(nil)
	t.eventRepo.On("Insert", mockCtx, mock.Anything).Return(nil)

	t.NoError(t.subject.Cancel(mockCtx, idA, a.Seller))
	t.listingRepo.AssertNotCalled(t.T(), "Remove", mockCtx, idB)

	got, err := t.subject.Get(mockCtx, idB)
	t.NoError(err)
	t.Equal(b, got)
}

func (t *testsuite) TestGet() {
	l := t.fixtureListing()
	id := l.ToId()

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)

	got, err := t.subject.Get(mockCtx, id)
	t.NoError(err)
	t.Equal(l, got)
}

func (t *testsuite) TestGetExpiredReadsAsAbsent() {
	l := t.fixtureListing()
	l.ExpiresAt = t.now.Add(-time.Minute)
	id := l.ToId()

	t.listingRepo.On("FindOne", mockCtx, id).Return(l, nil)

	_, err := t.subject.Get(mockCtx, id)
	t.ErrorIs(err, domain.ErrNotFound)

	// readers never destroy the record, only the seller can
	t.listingRepo.AssertNotCalled(t.T(), "Remove", mock.Anything, mock.Anything)
	t.eventRepo.AssertNotCalled(t.T(), "Insert", mock.Anything, mock.Anything)
}

func (t *testsuite) TestFindAllFiltersExpired() {
	live := t.fixtureListing()
	dead := t.fixtureListing()
	dead.TokenId = "8"
	dead.ExpiresAt = t.now.Add(-time.Minute)

	t.listingRepo.On("FindAll", mockCtx).Return([]*listing.Listing{live, dead}, nil)

	got, err := t.subject.FindAll(mockCtx)
	t.NoError(err)
	t.Len(got, 1)
	t.Equal(live, got[0])
}
