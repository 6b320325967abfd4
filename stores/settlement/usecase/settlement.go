package usecase

import (
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/keylock"
	"github.com/tessera-xyz/goapi/base/log"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/event"
	"github.com/tessera-xyz/goapi/domain/ledger"
	"github.com/tessera-xyz/goapi/domain/listing"
	"github.com/tessera-xyz/goapi/domain/settlement"
	"github.com/tessera-xyz/goapi/service/query"
)

var timeNow = time.Now

type SettlementUseCaseCfg struct {
	Q            query.Mongo
	ListingRepo  listing.Repo
	LedgerRepo   ledger.Repo
	EventRepo    event.Repo
	Notifier     event.Notifier
	AssetGateway domain.AssetGateway
	KeyLock      *keylock.KeyLock
	// OperatorAddress is the transfer operator sellers approve; approval is
	// rechecked against it right before settling.
	OperatorAddress domain.Address
}

type impl struct {
	q               query.Mongo
	listingRepo     listing.Repo
	ledgerRepo      ledger.Repo
	eventRepo       event.Repo
	notifier        event.Notifier
	assetGateway    domain.AssetGateway
	keyLock         *keylock.KeyLock
	operatorAddress domain.Address
}

func New(cfg *SettlementUseCaseCfg) settlement.UseCase {
	return &impl{
		q:               cfg.Q,
		listingRepo:     cfg.ListingRepo,
		ledgerRepo:      cfg.LedgerRepo,
		eventRepo:       cfg.EventRepo,
		notifier:        cfg.Notifier,
		assetGateway:    cfg.AssetGateway,
		keyLock:         cfg.KeyLock,
		operatorAddress: cfg.OperatorAddress,
	}
}

// commissionOf is floor(paid * percent / 100) computed without int64
// overflow.
func commissionOf(paid, percent int64) int64 {
	res := new(big.Int).Mul(big.NewInt(paid), big.NewInt(percent))
	res.Div(res, big.NewInt(100))
	return res.Int64()
}

func (im *impl) Purchase(c ctx.Ctx, payload settlement.PurchasePayload) (*settlement.Receipt, error) {
	id := payload.Id.LowerCased()
	buyer := payload.Buyer.ToLower()

	unlock := im.keyLock.Lock(id.LockKey())
	defer unlock()

	l, err := im.listingRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}

	if l.Expired(timeNow()) {
		return nil, domain.ErrListingExpired
	}

	if l.Seller.Equals(buyer) {
		return nil, domain.ErrSelfPurchase
	}

	// multi-item terms may have been replaced since the buyer observed them
	if l.TokenType == domain.TokenType1155 && payload.ExpectedQuantity != l.Quantity {
		return nil, domain.ErrQuantityMismatch
	}

	// revalidate against the asset authority, the listing may be stale. A
	// stale listing is rejected but left in place, the seller may re-acquire
	// or re-approve before expiry.
	held, err := im.assetGateway.OwnerOrBalance(c, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller)
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"contract": l.Contract,
			"tokenId":  l.TokenId,
		}).Error("assetGateway.OwnerOrBalance failed")
		return nil, err
	}
	if l.TokenType == domain.TokenType721 && held != 1 {
		return nil, domain.ErrNotOwner
	}
	if l.TokenType == domain.TokenType1155 && held < l.Quantity {
		return nil, domain.ErrInsufficientBalance
	}

	approved, err := im.assetGateway.IsApproved(c, l.ChainId, l.TokenType, l.Contract, l.Seller, im.operatorAddress)
	if err != nil {
		c.WithFields(log.Fields{
			"err":      err,
			"contract": l.Contract,
			"seller":   l.Seller,
		}).Error("assetGateway.IsApproved failed")
		return nil, err
	}
	if !approved {
		return nil, domain.ErrNotApproved
	}

	total := l.TotalPrice()
	if total.Cmp(big.NewInt(payload.PaidAmount)) != 0 {
		return nil, domain.ErrPaymentMismatch
	}

	commission := commissionOf(payload.PaidAmount, l.CommissionPercent)
	proceeds := payload.PaidAmount - commission

	buyerId := ledger.AccountId{ChainId: l.ChainId, Address: buyer}
	sellerId := ledger.AccountId{ChainId: l.ChainId, Address: l.Seller}
	treasuryId := ledger.AccountId{ChainId: l.ChainId, Address: ledger.TreasuryAddress}

	var (
		txHash domain.TxHash
		evt    *event.Event
	)
	err = im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.ledgerRepo.Debit(c, buyerId, payload.PaidAmount); err != nil {
			return err
		}
		if err := im.ledgerRepo.Credit(c, sellerId, proceeds); err != nil {
			c.WithField("err", err).Error("ledgerRepo.Credit failed")
			return err
		}
		if commission > 0 {
			if err := im.ledgerRepo.Credit(c, treasuryId, commission); err != nil {
				c.WithField("err", err).Error("ledgerRepo.Credit failed")
				return err
			}
		}

		if err := im.listingRepo.Remove(c, id); err != nil {
			c.WithFields(log.Fields{
				"err": err,
				"id":  id,
			}).Error("listingRepo.Remove failed")
			return err
		}

		evt = &event.Event{
			EventId:           uuid.New().String(),
			Type:              event.TypeSold,
			ListingId:         l.ListingId,
			ChainId:           l.ChainId,
			Contract:          l.Contract,
			TokenId:           l.TokenId,
			Seller:            l.Seller,
			Buyer:             buyer,
			Quantity:          l.Quantity,
			UnitPrice:         l.UnitPrice,
			PaidAmount:        payload.PaidAmount,
			CommissionPercent: l.CommissionPercent,
			Time:              timeNow().UTC(),
		}
		if err := im.eventRepo.Insert(c, evt); err != nil {
			c.WithField("err", err).Error("eventRepo.Insert failed")
			return err
		}

		// the external transfer is last so its failure unwinds every write
		// above
		hash, err := im.assetGateway.Transfer(c, l.ChainId, l.TokenType, l.Contract, l.TokenId, l.Seller, buyer, l.Quantity)
		if err != nil {
			c.WithFields(log.Fields{
				"err":      err,
				"contract": l.Contract,
				"tokenId":  l.TokenId,
			}).Error("assetGateway.Transfer failed")
			return domain.ErrPayoutFailed
		}
		txHash = hash
		return nil
	})
	if err != nil {
		return nil, err
	}

	if im.notifier != nil {
		im.notifier.Notify(c, evt)
	}

	return &settlement.Receipt{
		ListingId:      l.ListingId,
		PaidAmount:     payload.PaidAmount,
		Commission:     commission,
		SellerProceeds: proceeds,
		TxHash:         txHash,
	}, nil
}
