package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go-stopwatch/internal/config"
	"go-stopwatch/internal/gemini"
	"go-stopwatch/internal/jira"
	"go-stopwatch/internal/session"

	"github.com/pterm/pterm"
)

var Version = "dev"

func main() {
	args := os.Args[1:]
	logger := pterm.DefaultLogger.WithLevel(pterm.LogLevelWarn)
	if len(args) > 0 && args[0] == "--debug" {
		logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelDebug).WithCaller(true)
		args = args[1:]
	}

	if len(args) > 0 && args[0] == "version" {
		fmt.Println("stopwatch version", Version)
		return
	}

	if len(args) > 0 && args[0] == "config" {
		if _, err := config.RunSetup(); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(1)
		}
		return
	}

	cfg, err := config.LoadFromFile()
	if err != nil {
		if !config.Exists() {
			fmt.Println("No configuration found. Let's set it up!")
			fmt.Println()
			cfg, err = config.RunSetup()
			if err != nil {
				pterm.Error.Println(err.Error())
				os.Exit(1)
			}
		} else {
			pterm.Error.Println("Failed to load config: " + err.Error())
			os.Exit(1)
		}
	}

	if cfg.KeychainErr != nil {
		logger.Warn("keychain unavailable, you will be asked for your Jira token", logger.Args("error", cfg.KeychainErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	jiraClient := jira.NewClient(cfg.JiraURL, cfg.JiraUsername, cfg.JiraAPIToken, cfg.AllowUntrustedCerts)

	var assistant *gemini.Assistant
	if cfg.GeminiAPIKey != "" {
		assistant, err = gemini.NewAssistant(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("Gemini drafting disabled", logger.Args("error", err))
		}
	}

	runner := session.NewRunner(cfg, jiraClient, assistant, logger)
	if err := runner.Run(ctx); err != nil {
		if ctx.Err() != nil {
			pterm.Println()
			pterm.Println(pterm.Gray("Interrupted. Bye!"))
			os.Exit(0)
		}
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}
