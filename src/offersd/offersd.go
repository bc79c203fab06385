package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/substytucje-pro/offers-backend/src/offersd/config"
	"github.com/substytucje-pro/offers-backend/src/offersd/data"
	"github.com/substytucje-pro/offers-backend/src/offersd/notify"
	"github.com/substytucje-pro/offers-backend/src/offersd/offers"
	"github.com/substytucje-pro/offers-backend/src/offersd/parser"
	"github.com/substytucje-pro/offers-backend/src/offersd/places"
	"github.com/substytucje-pro/offers-backend/src/offersd/webserver"
)

func main() {
	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		mysqlDSN = "offers:offers@tcp(127.0.0.1:3306)/offers"
	}
	db := data.MustMySQL(mysqlDSN)

	cfg := config.Load(db)
	rdb := data.MustRedis(cfg.RedisURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Notifiers are selected here, by injection: the real senders only in
	// production, capturing/noop doubles everywhere else.
	var email notify.EmailNotifier = &notify.FakeEmailNotifier{}
	if cfg.Env == "PROD" && cfg.MailerSendAPIKey != "" {
		email = notify.NewMailerSend(cfg.MailerSendAPIKey, cfg.AdminEmail, cfg.AppDomain, cfg.AppURL)
	}

	var chat notify.ChatNotifier = notify.NoopChat{}
	if cfg.DiscordToken != "" && cfg.DiscordChannelID != "" {
		d, err := notify.NewDiscord(cfg.DiscordToken, cfg.DiscordChannelID)
		if err != nil {
			log.Printf("chat notifier disabled: %v", err)
		} else {
			chat = d
			defer d.Close()
		}
	}

	offerRepo := offers.NewRepository(db)
	placeRepo := places.NewRepository(db)
	svc := offers.NewService(offerRepo, placeRepo, email, chat,
		cfg.Env, cfg.LocalZone, cfg.DefaultExpiryDays, cfg.ExpiryGrace)

	ai := parser.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel)

	go data.ExpirySweeper(ctx, db, 15*time.Minute, cfg.ExpiryGrace)

	router := webserver.New(cfg, svc, placeRepo, ai, rdb)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("offers API listening on port %s (env %s)", cfg.Port, cfg.Env)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	cancel()
	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
