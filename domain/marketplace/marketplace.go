package marketplace

import (
	"time"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/domain"
)

// MaxCommissionPercent bounds what the operator may set. Fixed at design
// time; raising it is a code change, not a config change.
const MaxCommissionPercent = int64(10)

// Settings is the per-chain marketplace policy document. The commission
// percent recorded here only applies to listings created after an update;
// live listings keep their creation-time snapshot.
type Settings struct {
	ChainId           domain.ChainId `json:"chainId" bson:"chainId"`
	CommissionPercent int64          `json:"commissionPercent" bson:"commissionPercent"`
	UpdatedAt         time.Time      `json:"updatedAt" bson:"updatedAt"`
}

func (s *Settings) ToId() SettingsId {
	return SettingsId{ChainId: s.ChainId}
}

type SettingsId struct {
	ChainId domain.ChainId `json:"chainId" bson:"chainId"`
}

type Repo interface {
	FindOne(c ctx.Ctx, id SettingsId) (*Settings, error)
	Upsert(c ctx.Ctx, settings *Settings) error
}

// UseCase is the commission policy plus the operator's treasury sweep.
type UseCase interface {
	// GetCommissionPercent returns the current policy value, 0 when the
	// chain has no settings document yet.
	GetCommissionPercent(c ctx.Ctx, chainId domain.ChainId) (int64, error)

	// SetCommissionPercent updates the policy. Only the configured operator
	// may call it, and percent must not exceed MaxCommissionPercent.
	SetCommissionPercent(c ctx.Ctx, chainId domain.ChainId, caller domain.Address, percent int64) error

	// Withdraw sweeps the whole retained commission balance to the operator
	// account and returns the amount moved.
	Withdraw(c ctx.Ctx, chainId domain.ChainId, caller domain.Address) (int64, error)
}
