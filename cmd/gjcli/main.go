package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"

	"github.com/c-bata/go-prompt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/term"

	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/cmd/gjcli/storage"
	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/gamejolt"
	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/log"
)

func main() {
	conf, dotEnvLoaded, err := LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %s\n", err.Error())
		os.Exit(1)
	}

	logger, err := log.NewZapLogger(conf.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %s\n", err.Error())
		os.Exit(1)
	}
	logger = logger.WithName("gjcli")
	if !dotEnvLoaded {
		logger.Debug(".env file not found")
	}
	ctx := log.SetContextLogger(context.Background(), logger)

	var metrics *gamejolt.Metrics
	if conf.MetricsAddr != "" {
		registry := prometheus.NewRegistry()
		metrics = gamejolt.NewMetricsWithRegistry(registry)
		go serveMetrics(logger, conf.MetricsAddr, registry)
	}

	transport := gamejolt.NewHTTPTransport(conf.API.TransportConfig())
	client, err := gamejolt.NewClient(conf.API, transport, gamejolt.WithMetrics(metrics))
	if err != nil {
		fmt.Printf("Failed to create client: %s\n", err.Error())
		os.Exit(1)
	}

	store, err := storage.NewStorage(conf.StoragePath)
	if err != nil {
		fmt.Printf("Failed to initialize storage: %s\n", err.Error())
		os.Exit(1)
	}
	defer store.Close()

	operator := NewOperator(ctx, gamejolt.NewSession(client), store, os.Stdout)

	initialState, _ := term.GetState(int(os.Stdin.Fd()))
	handleExit := func() {
		if initialState != nil {
			term.Restore(int(os.Stdin.Fd()), initialState)
		}
		exec.Command("stty", "sane").Run()
	}

	options := append(getStyleOptions(),
		prompt.OptionPrefix(">>> "),
		prompt.OptionAddKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(buf *prompt.Buffer) {
				fmt.Println("Exiting gjcli.")
				handleExit()
				os.Exit(0)
			},
		}),
		prompt.OptionAddKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn:  func(buf *prompt.Buffer) {},
		}),
	)
	p := prompt.New(
		operator.Execute,
		operator.Complete,
		options...,
	)

	promptExitCh := make(chan struct{})
	go func() {
		p.Run()
		close(promptExitCh)
	}()

	select {
	case <-operator.Wait():
	case <-promptExitCh:
	}
	handleExit()
	fmt.Println("Exiting gjcli.")
}

func serveMetrics(logger log.Logger, addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics listener stopped", "error", err)
	}
}

func emptyCompleter(d prompt.Document) []prompt.Suggest {
	return []prompt.Suggest{}
}

func getStyleOptions() []prompt.Option {
	return []prompt.Option{
		prompt.OptionTitle("gjcli"),
		prompt.OptionPrefixTextColor(prompt.Yellow),
		prompt.OptionPreviewSuggestionTextColor(prompt.Cyan),

		prompt.OptionSuggestionTextColor(prompt.White),
		prompt.OptionSuggestionBGColor(prompt.DarkBlue),

		prompt.OptionDescriptionTextColor(prompt.Black),
		prompt.OptionDescriptionBGColor(prompt.Yellow),

		prompt.OptionSelectedSuggestionTextColor(prompt.Black),
		prompt.OptionSelectedSuggestionBGColor(prompt.Yellow),

		prompt.OptionSelectedDescriptionTextColor(prompt.White),
		prompt.OptionSelectedDescriptionBGColor(prompt.DarkBlue),

		prompt.OptionShowCompletionAtStart(),
	}
}
