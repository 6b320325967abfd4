package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/keylock"
	"github.com/tessera-xyz/goapi/base/log"
	"github.com/tessera-xyz/goapi/base/validator"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/event"
	"github.com/tessera-xyz/goapi/domain/listing"
	"github.com/tessera-xyz/goapi/domain/marketplace"
)

var timeNow = time.Now

type ListingUseCaseCfg struct {
	ListingRepo   listing.Repo
	SequenceRepo  listing.SequenceRepo
	EventRepo     event.Repo
	Notifier      event.Notifier
	MarketplaceUC marketplace.UseCase
	AssetGateway  domain.AssetGateway
	KeyLock       *keylock.KeyLock
	// OperatorAddress is the transfer operator sellers must approve before
	// their listing is accepted.
	OperatorAddress domain.Address
}

type impl struct {
	listingRepo     listing.Repo
	sequenceRepo    listing.SequenceRepo
	eventRepo       event.Repo
	notifier        event.Notifier
	marketplaceUC   marketplace.UseCase
	assetGateway    domain.AssetGateway
	keyLock         *keylock.KeyLock
	operatorAddress domain.Address
}

func New(cfg *ListingUseCaseCfg) listing.UseCase {
	return &impl{
		listingRepo:     cfg.ListingRepo,
		sequenceRepo:    cfg.SequenceRepo,
		eventRepo:       cfg.EventRepo,
		notifier:        cfg.Notifier,
		marketplaceUC:   cfg.MarketplaceUC,
		assetGateway:    cfg.AssetGateway,
		keyLock:         cfg.KeyLock,
		operatorAddress: cfg.OperatorAddress,
	}
}

func (im *impl) validate(c ctx.Ctx, payload *listing.CreatePayload) error {
	if payload.ChainId <= 0 {
		return domain.ErrBadParamInput
	}
	if !payload.TokenType.Valid() {
		return domain.ErrBadParamInput
	}
	if !validator.IsValidAddress(string(payload.Contract)) || !validator.IsValidAddress(string(payload.Seller)) {
		return domain.ErrInvalidAddress
	}
	if payload.TokenId == "" {
		return domain.ErrBadParamInput
	}
	if payload.UnitPrice <= 0 || payload.DurationHours <= 0 {
		return domain.ErrBadParamInput
	}
	if payload.Quantity < 1 {
		return domain.ErrBadParamInput
	}
	if payload.TokenType == domain.TokenType721 && payload.Quantity != 1 {
		return domain.ErrBadParamInput
	}
	return nil
}

func (im *impl) Create(c ctx.Ctx, payload listing.CreatePayload) (domain.ListingId, error) {
	if err := im.validate(c, &payload); err != nil {
		return 0, err
	}

	held, err := im.assetGateway.OwnerOrBalance(c, payload.ChainId, payload.TokenType, payload.Contract, payload.TokenId, payload.Seller)
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"contract": payload.Contract,
			"tokenId":  payload.TokenId,
		}).Error("assetGateway.OwnerOrBalance failed")
		return 0, err
	}
	if payload.TokenType == domain.TokenType721 && held != 1 {
		return 0, domain.ErrNotOwner
	}
	if payload.TokenType == domain.TokenType1155 && held < payload.Quantity {
		return 0, domain.ErrInsufficientBalance
	}

	approved, err := im.assetGateway.IsApproved(c, payload.ChainId, payload.TokenType, payload.Contract, payload.Seller, im.operatorAddress)
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"contract": payload.Contract,
			"seller":   payload.Seller,
		}).Error("assetGateway.IsApproved failed")
		return 0, err
	}
	if !approved {
		return 0, domain.ErrNotApproved
	}

	percent, err := im.marketplaceUC.GetCommissionPercent(c, payload.ChainId)
	if err != nil {
		c.WithField("err", err).Error("marketplaceUC.GetCommissionPercent failed")
		return 0, err
	}

	listingId, err := im.sequenceRepo.NextListingId(c)
	if err != nil {
		c.WithField("err", err).Error("sequenceRepo.NextListingId failed")
		return 0, err
	}

	now := timeNow().UTC()
	l := &listing.Listing{
		ListingId:         listingId,
		ChainId:           payload.ChainId,
		Contract:          payload.Contract,
		TokenId:           payload.TokenId,
		TokenType:         payload.TokenType,
		Seller:            payload.Seller,
		Quantity:          payload.Quantity,
		UnitPrice:         payload.UnitPrice,
		CommissionPercent: percent,
		ExpiresAt:         now.Add(time.Duration(payload.DurationHours) * time.Hour),
		CreatedAt:         now,
	}
	l.LowerCase()
	id := l.ToId()

	unlock := im.keyLock.Lock(id.LockKey())
	defer unlock()

	// relisting the same key replaces the previous terms
	if err := im.listingRepo.Upsert(c, l); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("listingRepo.Upsert failed")
		return 0, err
	}

	evt := &event.Event{
		EventId:   uuid.New().String(),
		Type:      event.TypeListingCreated,
		ListingId: l.ListingId,
		ChainId:   l.ChainId,
		Contract:  l.Contract,
		TokenId:   l.TokenId,
		Seller:    l.Seller,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		Time:      now,
	}
	if err := im.eventRepo.Insert(c, evt); err != nil {
		c.WithField("err", err).Error("eventRepo.Insert failed")
		return 0, err
	}
	if im.notifier != nil {
		im.notifier.Notify(c, evt)
	}

	return l.ListingId, nil
}

func (im *impl) Cancel(c ctx.Ctx, id listing.Id, caller domain.Address) error {
	id = id.LowerCased()

	unlock := im.keyLock.Lock(id.LockKey())
	defer unlock()

	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return err
	}

	if !l.Seller.Equals(caller) {
		return domain.ErrUnauthorized
	}

	if err := im.listingRepo.Remove(c, id); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("listingRepo.Remove failed")
		return err
	}

	evt := &event.Event{
		EventId:   uuid.New().String(),
		Type:      event.TypeListingRemoved,
		ListingId: l.ListingId,
		ChainId:   l.ChainId,
		Contract:  l.Contract,
		TokenId:   l.TokenId,
		Seller:    l.Seller,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		Time:      timeNow().UTC(),
	}
	if err := im.eventRepo.Insert(c, evt); err != nil {
		c.WithField("err", err).Error("eventRepo.Insert failed")
		return err
	}
	if im.notifier != nil {
		im.notifier.Notify(c, evt)
	}

	return nil
}

func (im *impl) Get(c ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	id = id.LowerCased()

	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	// expiry is lazy, an expired record reads as absent but stays in the
	// table until its seller cancels or relists
	if l.Expired(timeNow()) {
		return nil, domain.ErrNotFound
	}

	return l, nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	all, err := im.listingRepo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("listingRepo.FindAll failed")
		return nil, err
	}

	now := timeNow()
	res := make([]*listing.Listing, 0, len(all))
	for _, l := range all {
		if l.Expired(now) {
			continue
		}
		res = append(res, l)
	}

	return res, nil
}
