package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"demographic_communication_hub/analyzer"
	"demographic_communication_hub/catalog"
	"demographic_communication_hub/config"
	"demographic_communication_hub/generator"
	"demographic_communication_hub/hub"
	"demographic_communication_hub/logging"
	"demographic_communication_hub/server"
	"demographic_communication_hub/store"
)

func main() {
	configPath := flag.String("config", "config/config.json", "path to config.json")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	analyze := flag.String("analyze", "", "print the heuristic style analysis of a message as JSON")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	// Heuristics only, no model or config needed.
	if *analyze != "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analyzer.Quick(*analyze)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if !*serve {
		fmt.Fprintln(os.Stderr, "--serve or --analyze is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	log, err := logging.Init(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(cfg, *addr, log); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

func run(cfg config.Config, addr string, log *logrus.Entry) error {
	st, err := buildStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	llm, err := generator.NewLLM(generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLM.Timeout(),
	})
	if err != nil {
		return err
	}
	agent, err := generator.NewAgent(llm, cfg.LLM.Model, log)
	if err != nil {
		return err
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := agent.Load(loadCtx); err != nil {
		log.WithError(err).Warn("starting without a model; generation retries on each request")
	}
	cancelLoad()

	svc, err := hub.New(agent, st, log)
	if err != nil {
		return err
	}
	cat, err := catalog.Load()
	if err != nil {
		return err
	}
	srv, err := server.New(svc, cat, server.Options{ModelTimeout: cfg.LLM.Timeout(), Log: log})
	if err != nil {
		return err
	}

	listen := cfg.ServerAddr
	if addr != "" {
		listen = addr
	}
	httpSrv := &http.Server{
		Addr:              listen,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"addr": listen, "provider": cfg.LLM.Provider, "store": cfg.Store.Driver}).Info("starting web server")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func buildStore(cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return store.NewMemory(), nil
	case "sqlite":
		return store.NewSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("store driver %s not supported", cfg.Driver)
	}
}
