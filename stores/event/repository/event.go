package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/log"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/event"
	"github.com/tessera-xyz/goapi/service/query"
)

type eventImpl struct {
	q query.Mongo
}

func NewEventRepo(q query.Mongo) event.Repo {
	return &eventImpl{q}
}

func (im *eventImpl) Insert(c ctx.Ctx, e *event.Event) error {
	if err := im.q.Insert(c, domain.TableMarketplaceEvents, e); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"eventId": e.EventId,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func makeFindQuery(opts event.FindAllOptions) bson.M {
	qry := bson.M{}

	if opts.Type != nil {
		qry["type"] = *opts.Type
	}

	if opts.ChainId != nil {
		qry["chainId"] = *opts.ChainId
	}

	if opts.Contract != nil {
		qry["contract"] = *opts.Contract
	}

	if opts.TokenId != nil {
		qry["tokenId"] = *opts.TokenId
	}

	if opts.ListingId != nil {
		qry["listingId"] = *opts.ListingId
	}

	return qry
}

func (im *eventImpl) FindAll(c ctx.Ctx, opts ...event.FindAllOptionsFunc) ([]*event.Event, error) {
	options, err := event.GetFindAllOptions(opts...)
	if err != nil {
		c.WithField("err", err).Error("event.GetFindAllOptions failed")
		return nil, err
	}

	offset := int32(0)
	limit := int32(0)

	if options.Offset != nil {
		offset = *options.Offset
	}

	if options.Limit != nil {
		limit = *options.Limit
	}

	qry := makeFindQuery(options)

	res := []*event.Event{}
	if err := im.q.Search(c, domain.TableMarketplaceEvents, int(offset), int(limit), "time", qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}
