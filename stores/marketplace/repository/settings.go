package repository

import (
	"errors"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/database/mongoclient"
	"github.com/tessera-xyz/goapi/base/log"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/marketplace"
	"github.com/tessera-xyz/goapi/service/query"
)

type settingsImpl struct {
	q query.Mongo
}

func NewSettingsRepo(q query.Mongo) marketplace.Repo {
	return &settingsImpl{q}
}

func (im *settingsImpl) FindOne(c ctx.Ctx, id marketplace.SettingsId) (*marketplace.Settings, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	res := &marketplace.Settings{}
	if err := im.q.FindOne(c, domain.TableMarketplaceSettings, qry, res); errors.Is(err, query.ErrNotFound) {
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

func (im *settingsImpl) Upsert(c ctx.Ctx, settings *marketplace.Settings) error {
	selector, err := mongoclient.MakeBsonM(settings.ToId())
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := im.q.Upsert(c, domain.TableMarketplaceSettings, selector, settings); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  settings.ToId(),
		}).Error("failed to q.Upsert")
		return err
	}

	return nil
}
