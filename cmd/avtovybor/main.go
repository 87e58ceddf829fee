package main

import (
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"avtovybor/internal/config"
	"avtovybor/internal/http/handlers"
	applog "avtovybor/internal/log"
	"avtovybor/internal/notify"
	"avtovybor/internal/repos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	applog.SetLevel(cfg.LogLevel)

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	log.SetOutput(out)
	applog.SetOutput(out)

	driver, dsn, err := cfg.DB.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	db, err := repos.OpenDB(driver, dsn, cfg.DB.MaxOpenConns)
	if err != nil {
		log.Fatalf("[db] %s: %v", driver, err)
	}
	defer db.Close()

	pub := notify.New(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer pub.Close()

	app := handlers.NewApp(cfg, handlers.NewDeps(db, cfg, pub), out)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Printf("[server] shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("[server] shutdown: %v", err)
		}
	}()

	log.Printf("[server] listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("[server] %v", err)
	}
}
