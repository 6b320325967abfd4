package discord

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	"github.com/viney-shih/goroutines"

	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/log"
	"github.com/tessera-xyz/goapi/domain/event"
)

type NotifierCfg struct {
	BotKey    string
	ChannelId string
	// PriceDecimals converts base unit amounts into the display unit
	PriceDecimals int32
	PriceSymbol   string
}

type notifier struct {
	cfg     NotifierCfg
	discord *discordgo.Session
	pool    *goroutines.Pool
}

// NewNotifier builds a discord backed event sink. Pushes run on a small
// worker pool so callers never block on the discord api.
func NewNotifier(cfg NotifierCfg) (event.Notifier, error) {
	discord, err := discordgo.New(fmt.Sprintf("Bot %s", cfg.BotKey))
	if err != nil {
		return nil, err
	}
	return &notifier{
		cfg:     cfg,
		discord: discord,
		pool:    goroutines.NewPool(4, goroutines.WithTaskQueueLength(64)),
	}, nil
}

func (n *notifier) Notify(c ctx.Ctx, e *event.Event) {
	if e.Type != event.TypeSold {
		return
	}
	evt := *e
	err := n.pool.Schedule(func() {
		n.notifySold(c, &evt)
	})
	if err != nil {
		c.WithField("err", err).Warn("failed to schedule discord notification")
	}
}

func (n *notifier) formatPrice(amount int64) string {
	v, _ := decimal.NewFromBigInt(big.NewInt(amount), -n.cfg.PriceDecimals).Float64()
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (n *notifier) notifySold(c ctx.Ctx, e *event.Event) {
	msg := &discordgo.MessageEmbed{
		Title:       "Item sold!",
		Description: fmt.Sprintf("chain %d / %s / %s", e.ChainId, e.Contract, e.TokenId),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Seller", Value: string(e.Seller)},
			{Name: "Buyer", Value: string(e.Buyer)},
			{Name: "Quantity", Value: strconv.FormatInt(e.Quantity, 10)},
			{Name: "Price", Value: fmt.Sprintf("%s %s", n.formatPrice(e.PaidAmount), n.cfg.PriceSymbol)},
		},
	}

	if _, err := n.discord.ChannelMessageSendEmbed(n.cfg.ChannelId, msg); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"eventId": e.EventId,
		}).Warn("failed to send discord notification")
	}
}
