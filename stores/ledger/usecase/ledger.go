package usecase

import (
	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/log"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/ledger"
)

type LedgerUseCaseCfg struct {
	LedgerRepo ledger.Repo
}

type impl struct {
	ledgerRepo ledger.Repo
}

func New(cfg *LedgerUseCaseCfg) ledger.UseCase {
	return &impl{
		ledgerRepo: cfg.LedgerRepo,
	}
}

func (im *impl) GetBalance(c ctx.Ctx, id ledger.AccountId) (int64, error) {
	account, err := im.ledgerRepo.FindOne(c, id)
	if err == domain.ErrNotFound {
		return 0, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("ledgerRepo.FindOne failed")
		return 0, err
	}
	return account.Balance, nil
}

func (im *impl) Deposit(c ctx.Ctx, id ledger.AccountId, amount int64) error {
	if amount <= 0 {
		return domain.ErrBadParamInput
	}
	if err := im.ledgerRepo.Credit(c, id, amount); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"id":     id,
			"amount": amount,
		}).Error("ledgerRepo.Credit failed")
		return err
	}
	return nil
}
