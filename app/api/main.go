package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/tessera-xyz/goapi/base/ctx"
	"github.com/tessera-xyz/goapi/base/database/mongoclient"
	"github.com/tessera-xyz/goapi/base/database/redisclient"
	"github.com/tessera-xyz/goapi/base/keylock"
	"github.com/tessera-xyz/goapi/base/log"
	"github.com/tessera-xyz/goapi/base/metrics"
	bValidator "github.com/tessera-xyz/goapi/base/validator"
	"github.com/tessera-xyz/goapi/domain"
	"github.com/tessera-xyz/goapi/domain/event"
	mmiddleware "github.com/tessera-xyz/goapi/middleware"
	"github.com/tessera-xyz/goapi/service/chain"
	"github.com/tessera-xyz/goapi/service/chain/contract"
	"github.com/tessera-xyz/goapi/service/notifier/discord"
	"github.com/tessera-xyz/goapi/service/query"
	"github.com/tessera-xyz/goapi/service/redis"
	auth_delivery "github.com/tessera-xyz/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/tessera-xyz/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/tessera-xyz/goapi/stores/auth/usecase"
	event_delivery "github.com/tessera-xyz/goapi/stores/event/delivery/http"
	event_repository "github.com/tessera-xyz/goapi/stores/event/repository"
	hc_delivery "github.com/tessera-xyz/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/tessera-xyz/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/tessera-xyz/goapi/stores/healthcheck/usecase"
	ledger_delivery "github.com/tessera-xyz/goapi/stores/ledger/delivery/http"
	ledger_repository "github.com/tessera-xyz/goapi/stores/ledger/repository"
	ledger_usecase "github.com/tessera-xyz/goapi/stores/ledger/usecase"
	listing_delivery "github.com/tessera-xyz/goapi/stores/listing/delivery/http"
	listing_repository "github.com/tessera-xyz/goapi/stores/listing/repository"
	listing_usecase "github.com/tessera-xyz/goapi/stores/listing/usecase"
	marketplace_delivery "github.com/tessera-xyz/goapi/stores/marketplace/delivery/http"
	marketplace_repository "github.com/tessera-xyz/goapi/stores/marketplace/repository"
	marketplace_usecase "github.com/tessera-xyz/goapi/stores/marketplace/usecase"
	settlement_delivery "github.com/tessera-xyz/goapi/stores/settlement/delivery/http"
	settlement_usecase "github.com/tessera-xyz/goapi/stores/settlement/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcUrl := networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		rpcs[chainId] = rpcUrl
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls:   rpcs,
		SignerKey: viper.GetString("chain.signerKey"),
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}
	assetGateway := contract.NewAssetGateway(chainService)

	operatorAddress := domain.Address(viper.GetString("marketplace.operatorAddress")).ToLower()

	// sellers approve the operator address; transfers are signed by
	// chain.signerKey. The two must be the same account or every settlement
	// would fail on-chain.
	if signer := chainService.Signer(); signer != (common.Address{}) && !operatorAddress.Equals(domain.Address(signer.Hex())) {
		context.WithFields(log.Fields{
			"operator": operatorAddress,
			"signer":   signer.Hex(),
		}).Panic("marketplace.operatorAddress does not match chain.signerKey")
	}

	var soldNotifier event.Notifier
	if botKey := viper.GetString("discord.botKey"); botKey != "" {
		soldNotifier, err = discord.NewNotifier(discord.NotifierCfg{
			BotKey:        botKey,
			ChannelId:     viper.GetString("discord.channelId"),
			PriceDecimals: viper.GetInt32("discord.priceDecimals"),
			PriceSymbol:   viper.GetString("discord.priceSymbol"),
		})
		if err != nil {
			context.WithField("err", err).Warn("discord notifier disabled")
			soldNotifier = nil
		}
	}

	keyLock := keylock.New()

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	listingRepo := listing_repository.NewListingRepo(q, redisCache)
	sequenceRepo := listing_repository.NewSequenceRepo(q)
	settingsRepo := marketplace_repository.NewSettingsRepo(q)
	accountRepo := ledger_repository.NewAccountRepo(q)
	eventRepo := event_repository.NewEventRepo(q)

	hc := hc_usecase.New(hcRepo)
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"))
	marketplaceUC := marketplace_usecase.New(&marketplace_usecase.MarketplaceUseCaseCfg{
		Q:               q,
		SettingsRepo:    settingsRepo,
		LedgerRepo:      accountRepo,
		EventRepo:       eventRepo,
		Notifier:        soldNotifier,
		OperatorAddress: operatorAddress,
	})
	ledgerUC := ledger_usecase.New(&ledger_usecase.LedgerUseCaseCfg{
		LedgerRepo: accountRepo,
	})
	listingUC := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ListingRepo:     listingRepo,
		SequenceRepo:    sequenceRepo,
		EventRepo:       eventRepo,
		Notifier:        soldNotifier,
		MarketplaceUC:   marketplaceUC,
		AssetGateway:    assetGateway,
		KeyLock:         keyLock,
		OperatorAddress: operatorAddress,
	})
	settlementUC := settlement_usecase.New(&settlement_usecase.SettlementUseCaseCfg{
		Q:               q,
		ListingRepo:     listingRepo,
		LedgerRepo:      accountRepo,
		EventRepo:       eventRepo,
		Notifier:        soldNotifier,
		AssetGateway:    assetGateway,
		KeyLock:         keyLock,
		OperatorAddress: operatorAddress,
	})

	authMw := auth_middleware.New(auth)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, viper.GetString("auth.signatureMsg"))
	listing_delivery.New(e, authMw, listingUC)
	settlement_delivery.New(e, authMw, settlementUC)
	marketplace_delivery.New(e, authMw, marketplaceUC)
	ledger_delivery.New(e, authMw, ledgerUC)
	event_delivery.New(e, eventRepo)

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"address": c.Get("address").(domain.Address),
		})
	}, authMw.Auth())

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
