package listing

import (
	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/domain"
)

// SequenceRepo hands out listing ids. Ids are strictly increasing across
// the whole deployment and never reused.
type SequenceRepo interface {
	NextListingId(c ctx.Ctx) (domain.ListingId, error)
}
