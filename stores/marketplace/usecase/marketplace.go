package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/log"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/event"
	"github.com/tessera-xyz/goapi/domain/ledger"
	"github.com/tessera-xyz/goapi/domain/marketplace"
	"github.com/tessera-xyz/goapi/service/query"
)

var timeNow = time.Now

type MarketplaceUseCaseCfg struct {
	Q            query.Mongo
	SettingsRepo marketplace.Repo
	LedgerRepo   ledger.Repo
	EventRepo    event.Repo
	Notifier     event.Notifier
	// OperatorAddress is the only caller allowed to change policy or sweep
	// the treasury.
	OperatorAddress domain.Address
}

type impl struct {
	q               query.Mongo
	settingsRepo    marketplace.Repo
	ledgerRepo      ledger.Repo
	eventRepo       event.Repo
	notifier        event.Notifier
	operatorAddress domain.Address
}

func New(cfg *MarketplaceUseCaseCfg) marketplace.UseCase {
	return &impl{
		q:               cfg.Q,
		settingsRepo:    cfg.SettingsRepo,
		ledgerRepo:      cfg.LedgerRepo,
		eventRepo:       cfg.EventRepo,
		notifier:        cfg.Notifier,
		operatorAddress: cfg.OperatorAddress.ToLower(),
	}
}

func (im *impl) GetCommissionPercent(c ctx.Ctx, chainId domain.ChainId) (int64, error) {
	settings, err := im.settingsRepo.FindOne(c, marketplace.SettingsId{ChainId: chainId})
	if err == domain.ErrNotFound {
		return 0, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
		}).Error("settingsRepo.FindOne failed")
		return 0, err
	}
	return settings.CommissionPercent, nil
}

func (im *impl) SetCommissionPercent(c ctx.Ctx, chainId domain.ChainId, caller domain.Address, percent int64) error {
	if !caller.Equals(im.operatorAddress) {
		return domain.ErrUnauthorized
	}
	if percent < 0 || percent > marketplace.MaxCommissionPercent {
		return domain.ErrCommissionOutOfRange
	}

	now := timeNow().UTC()
	settings := &marketplace.Settings{
		ChainId:           chainId,
		CommissionPercent: percent,
		UpdatedAt:         now,
	}
	if err := im.settingsRepo.Upsert(c, settings); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
		}).Error("settingsRepo.Upsert failed")
		return err
	}

	evt := &event.Event{
		EventId:           uuid.New().String(),
		Type:              event.TypeCommissionPercentChanged,
		ChainId:           chainId,
		CommissionPercent: percent,
		Time:              now,
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

func (im *impl) Withdraw(c ctx.Ctx, chainId domain.ChainId, caller domain.Address) (int64, error) {
	if !caller.Equals(im.operatorAddress) {
		return 0, domain.ErrUnauthorized
	}

	treasuryId := ledger.AccountId{ChainId: chainId, Address: ledger.TreasuryAddress}
	operatorId := ledger.AccountId{ChainId: chainId, Address: im.operatorAddress}

	var amount int64
	err := im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		treasury, err := im.ledgerRepo.FindOne(c, treasuryId)
		if err == domain.ErrNotFound {
			amount = 0
			return nil
		} else if err != nil {
			c.WithField("err", err).Error("ledgerRepo.FindOne failed")
			return err
		}

		amount = treasury.Balance
		if amount == 0 {
			return nil
		}

		if err := im.ledgerRepo.Debit(c, treasuryId, amount); err != nil {
			c.WithField("err", err).Error("ledgerRepo.Debit failed")
			return err
		}
		if err := im.ledgerRepo.Credit(c, operatorId, amount); err != nil {
			c.WithField("err", err).Error("ledgerRepo.Credit failed")
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return amount, nil
}
