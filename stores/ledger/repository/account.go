package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/database/mongoclient"
	"github.com/tessera-xyz/goapi/base/log"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/ledger"
	"github.com/tessera-xyz/goapi/service/query"
)

type accountImpl struct {
	q query.Mongo
}

func NewAccountRepo(q query.Mongo) ledger.Repo {
	return &accountImpl{q}
}

func (im *accountImpl) FindOne(c ctx.Ctx, id ledger.AccountId) (*ledger.Account, error) {
	id = id.LowerCased()

	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	res := &ledger.Account{}
	if err := im.q.FindOne(c, domain.TableLedgerAccounts, qry, res); errors.Is(err, query.ErrNotFound) {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.FindOne")
		return nil, err
	}

	return res, nil
}

func (im *accountImpl) Credit(c ctx.Ctx, id ledger.AccountId, amount int64) error {
	id = id.LowerCased()

	selector := bson.M{
		"chainId": id.ChainId,
		"address": id.Address,
	}
	update := bson.M{
		"$inc": bson.M{"balance": amount},
	}
	if err := im.q.CustomPatch(c, domain.TableLedgerAccounts, selector, update, true); err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"id":     id,
			"amount": amount,
		}).Error("failed to q.CustomPatch")
		return err
	}

	return nil
}

func (im *accountImpl) Debit(c ctx.Ctx, id ledger.AccountId, amount int64) error {
	id = id.LowerCased()

	// the balance guard lives in the selector so a concurrent debit can
	// never push the account negative
	selector := bson.M{
		"chainId": id.ChainId,
		"address": id.Address,
		"balance": bson.M{"$gte": amount},
	}
	update := bson.M{
		"$inc": bson.M{"balance": -amount},
	}
	if err := im.q.CustomPatch(c, domain.TableLedgerAccounts, selector, update, false); errors.Is(err, query.ErrNotFound) {
		return domain.ErrInsufficientFunds
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"id":     id,
			"amount": amount,
		}).Error("failed to q.CustomPatch")
		return err
	}

	return nil
}
