package repository

import (
	"errors"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/database/mongoclient"
	"github.com/tessera-xyz/goapi/base/log"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/keys"
	"github.com/tessera-xyz/goapi/domain/listing"
	"github.com/tessera-xyz/goapi/service/cache"
	"github.com/tessera-xyz/goapi/service/cache/provider/primitive"
	redisCache "github.com/tessera-xyz/goapi/service/cache/provider/redis"
	"github.com/tessera-xyz/goapi/service/query"
	"github.com/tessera-xyz/goapi/service/redis"
)

type listingImpl struct {
	q            query.Mongo
	listingCache cache.Service
}

// NewListingRepo builds the listing table access layer. Redis is optional,
// without it only the in process cache is used.
func NewListingRepo(q query.Mongo, redisService redis.Service) listing.Repo {
	var cacheProvider = primitive.NewPrimitive("listing", 128)
	if redisService != nil {
		cacheProvider = redisCache.NewRedis(redisService)
	}
	return &listingImpl{
		q: q,
		listingCache: cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Second,
			Pfx:   keys.PfxListing,
			Cache: cacheProvider,
		}),
	}
}

func makeFindQuery(opts listing.FindAllOptions) bson.M {
	qry := bson.M{}

	if opts.ChainId != nil {
		qry["chainId"] = *opts.ChainId
	}

	if opts.Contract != nil {
		qry["contract"] = *opts.Contract
	}

	if opts.TokenId != nil {
		qry["tokenId"] = *opts.TokenId
	}

	if opts.Seller != nil {
		qry["seller"] = *opts.Seller
	}

	if opts.TokenType != nil {
		qry["tokenType"] = *opts.TokenType
	}

	return qry
}

func cacheKey(id listing.Id) string {
	return keys.RedisKey(strconv.Itoa(int(id.ChainId)), string(id.Contract), string(id.TokenId), string(id.Seller))
}

func (im *listingImpl) FindAll(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		c.WithField("err", err).Error("listing.GetFindAllOptions failed")
		return nil, err
	}

	offset := int32(0)
	limit := int32(0)
	sort := "-createdAt"

	if options.Offset != nil {
		offset = *options.Offset
	}

	if options.Limit != nil {
		limit = *options.Limit
	}

	if options.Sort != nil {
		sort = *options.Sort
	}

	qry := makeFindQuery(options)

	res := []*listing.Listing{}
	if err := im.q.Search(c, domain.TableListings, int(offset), int(limit), sort, qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *listingImpl) FindOne(c ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	id = id.LowerCased()
	res := &listing.Listing{}
	if err := im.listingCache.GetByFunc(c, cacheKey(id), res, func() (interface{}, error) {
		return im.findOne(c, id)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (im *listingImpl) findOne(c ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	res := &listing.Listing{}
	if err := im.q.FindOne(c, domain.TableListings, qry, res); errors.Is(err, query.ErrNotFound) {
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

func (im *listingImpl) Upsert(c ctx.Ctx, l *listing.Listing) error {
	l.LowerCase()
	id := l.ToId()

	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := im.q.Upsert(c, domain.TableListings, selector, l); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.Upsert")
		return err
	}

	if err := im.listingCache.Del(c, cacheKey(id)); err != nil {
		c.WithField("err", err).Warn("listingCache.Del failed")
	}

	return nil
}

func (im *listingImpl) Remove(c ctx.Ctx, id listing.Id) error {
	id = id.LowerCased()

	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := im.q.Remove(c, domain.TableListings, selector); errors.Is(err, query.ErrNotFound) {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.Remove")
		return err
	}

	if err := im.listingCache.Del(c, cacheKey(id)); err != nil {
		c.WithField("err", err).Warn("listingCache.Del failed")
	}

	return nil
}

func (im *listingImpl) Count(c ctx.Ctx, opts ...listing.FindAllOptionsFunc) (int, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		c.WithField("err", err).Error("listing.GetFindAllOptions failed")
		return 0, err
	}

	qry := makeFindQuery(options)

	cnt, err := im.q.Count(c, domain.TableListings, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}
