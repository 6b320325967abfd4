package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/listing"
	"github.com/tessera-xyz/goapi/service/query"
)

type sequenceDoc struct {
	Name  string `bson:"name"`
	Value int64  `bson:"value"`
}

type sequenceImpl struct {
	q query.Mongo
}

func NewSequenceRepo(q query.Mongo) listing.SequenceRepo {
	return &sequenceImpl{q}
}

func (im *sequenceImpl) NextListingId(c ctx.Ctx) (domain.ListingId, error) {
	res := &sequenceDoc{}
	if err := im.q.Increment(c, domain.TableSequences, bson.M{"name": "listings"}, res, "value", int64(1)); err != nil {
		c.WithField("err", err).Error("q.Increment failed")
		return 0, err
	}
	return domain.ListingId(res.Value), nil
}
