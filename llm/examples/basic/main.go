package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lgc202/modelgate/config"
	"github.com/lgc202/modelgate/llm"
	"github.com/lgc202/modelgate/llm/backends"
)

// End-to-end wiring: settings file -> endpoint -> server -> adapter -> generate.
// Secrets are resolved outside the gateway core; here the value of the
// server's secret name is read from the environment.
func main() {
	settingsPath := os.Getenv("MODELGATE_SETTINGS")
	if settingsPath == "" {
		settingsPath = "./settings.toml"
	}

	cfg, err := config.LoadSettings(settingsPath)
	if err != nil {
		log.Fatal(err)
	}
	settings := cfg.Get()

	endpoint, err := settings.EndpointByPath("/summarize")
	if err != nil {
		log.Fatal(err)
	}
	server, err := settings.ServerByName(endpoint.Server)
	if err != nil {
		log.Fatal(err)
	}

	apiKey := ""
	if server.Secret != "" {
		apiKey = os.Getenv(strings.ToUpper(server.Secret))
	}

	gen, err := backends.New(server, apiKey)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := gen.Generate(ctx, llm.GenerateRequest{
		Model:        server.Model,
		SystemPrompt: endpoint.SystemPrompt,
		Prompt:       strings.ReplaceAll(endpoint.UserPrompt, "{input}", "Go is a statically typed language designed at Google."),
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("backend: %s\n", llm.BackendOf(gen))
	fmt.Println("text:", res.Text)
	if res.EvalCount != nil {
		fmt.Printf("eval_count: %d\n", *res.EvalCount)
	}
	if res.TotalDuration != nil {
		fmt.Printf("total_duration: %s\n", time.Duration(*res.TotalDuration))
	}
}
