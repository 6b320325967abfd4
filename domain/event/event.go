package event

import (
	"time"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/domain"
)

type Type string

const (
	TypeListingCreated           Type = "ListingCreated"
	TypeListingRemoved           Type = "ListingRemoved"
	TypeSold                     Type = "Sold"
	TypeCommissionPercentChanged Type = "CommissionPercentChanged"
)

// Event is one append-only record of the marketplace event log.
type Event struct {
	EventId   string           `json:"eventId" bson:"eventId"`
	Type      Type             `json:"type" bson:"type"`
	ListingId domain.ListingId `json:"listingId,omitempty" bson:"listingId,omitempty"`
	ChainId   domain.ChainId   `json:"chainId" bson:"chainId"`
	Contract  domain.Address   `json:"contract,omitempty" bson:"contract,omitempty"`
	TokenId   domain.TokenId   `json:"tokenId,omitempty" bson:"tokenId,omitempty"`
	Seller    domain.Address   `json:"seller,omitempty" bson:"seller,omitempty"`
	Buyer     domain.Address   `json:"buyer,omitempty" bson:"buyer,omitempty"`
	Quantity  int64            `json:"quantity,omitempty" bson:"quantity,omitempty"`
	UnitPrice int64            `json:"unitPrice,omitempty" bson:"unitPrice,omitempty"`
	// PaidAmount and CommissionPercent are set on Sold events
	PaidAmount        int64     `json:"paidAmount,omitempty" bson:"paidAmount,omitempty"`
	CommissionPercent int64     `json:"commissionPercent,omitempty" bson:"commissionPercent,omitempty"`
	Time              time.Time `json:"time" bson:"time"`
}

type FindAllOptions struct {
	Type      *Type
	ChainId   *domain.ChainId
	Contract  *domain.Address
	TokenId   *domain.TokenId
	ListingId *domain.ListingId
	Offset    *int32
	Limit     *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithType(t Type) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Type = &t
		return nil
	}
}

func WithChainId(chainId domain.ChainId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func WithContract(contract domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Contract = contract.ToLowerPtr()
		return nil
	}
}

func WithTokenId(tokenId domain.TokenId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.TokenId = &tokenId
		return nil
	}
}

func WithListingId(listingId domain.ListingId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ListingId = &listingId
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

// Repo appends to and reads the event log. Records are never updated or
// removed.
type Repo interface {
	Insert(c ctx.Ctx, e *Event) error
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Event, error)
}

// Notifier pushes events to an out-of-band observability sink. Failures are
// logged, never surfaced to the caller.
type Notifier interface {
	Notify(c ctx.Ctx, e *Event)
}
