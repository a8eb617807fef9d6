package main

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"tgwatch/internal/config"
	"tgwatch/internal/heartbeat"
	"tgwatch/internal/notify"
	"tgwatch/internal/watch"

	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run diagnostic checks on your tgwatch installation",
		Long: `Verifies that tgwatch's configuration, watch rules, notification
provider, and heartbeat are correctly set up. Reports pass/fail for each check.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			fmt.Printf("tgwatch Doctor v%s\n", version)
			fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

			passed := 0
			failed := 0
			warned := 0

			// 1. Config: file, or pure-environment deployment
			if _, err := os.Stat(cfgPath); err != nil {
				printWarn("Config file", fmt.Sprintf("not found at %s (environment-only setup)", cfgPath))
				warned++
			} else {
				printPass("Config file", cfgPath)
				passed++
			}

			cfg, err := loadConfig()
			if err != nil {
				printFail("Config validation", err.Error())
				fmt.Printf("\nResults: %d passed, %d warnings, 1 failed\n", passed, warned)
				return fmt.Errorf("config invalid")
			}
			printPass("Config validation", "valid")
			passed++

			// 2. Watched account credentials
			if cfg.Telegram.Token == "" {
				printFail("Telegram token", "not set (telegram.token or "+config.EnvBotToken+")")
				failed++
			} else {
				printPass("Telegram token", "configured")
				passed++
			}

			// 3. Watch rules
			keywords, chats := cfg.Watch.Keywords, cfg.Watch.Chats
			if cfg.Watch.RulesFile != "" {
				rules, err := watch.LoadRules(cfg.Watch.RulesFile)
				if err != nil {
					printFail("Rules file", err.Error())
					failed++
				} else {
					printPass("Rules file", cfg.Watch.RulesFile)
					passed++
					keywords, chats = watch.MergeRules(keywords, chats, rules)
				}
			}
			policy := watch.NewPolicy(keywords, chats)
			if len(policy.Keywords) == 0 {
				printWarn("Keywords", "none configured, only image alerts will fire")
				warned++
			} else {
				printPass("Keywords", fmt.Sprintf("%d configured", len(policy.Keywords)))
				passed++
			}
			if len(policy.Chats) == 0 {
				printWarn("Chats", "none configured, all chats are monitored")
				warned++
			} else {
				printPass("Chats", fmt.Sprintf("%d configured", len(policy.Chats)))
				passed++
			}

			// 4. Notification provider
			dispatcher := notify.NewDispatcher(cfg.Notify, logger)
			switch name := dispatcher.ProviderName(); name {
			case "":
				printFail("Provider", "no provider fully configured, every alert will be dropped")
				failed++
			case "webhook":
				if _, err := url.ParseRequestURI(cfg.Notify.Webhook.URL); err != nil {
					printFail("Provider", fmt.Sprintf("webhook URL invalid: %v", err))
					failed++
				} else {
					printPass("Provider", "webhook")
					passed++
				}
			default:
				printPass("Provider", name)
				passed++
			}

			// 5. Heartbeat freshness (meaningful when a watcher is already running)
			maxAge := time.Duration(cfg.Heartbeat.MaxAgeSeconds) * time.Second
			if err := heartbeat.Check(cfg.Heartbeat.Path, maxAge, time.Now()); err != nil {
				printWarn("Heartbeat", fmt.Sprintf("%v (ok if the watcher is not running)", err))
				warned++
			} else {
				printPass("Heartbeat", cfg.Heartbeat.Path)
				passed++
			}

			fmt.Printf("\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
			fmt.Printf("Results: %d passed, %d warnings, %d failed\n", passed, warned, failed)
			if failed > 0 {
				fmt.Printf("\nPlease fix the failed checks before running tgwatch.\n")
				return fmt.Errorf("%d check(s) failed", failed)
			}
			if warned > 0 {
				fmt.Printf("\ntgwatch should work but consider reviewing the warnings.\n")
			} else {
				fmt.Printf("\nAll checks passed! tgwatch is ready to run.\n")
			}
			return nil
		},
	}
}

func printPass(check, detail string) {
	fmt.Printf("  [PASS] %-20s %s\n", check, detail)
}

func printFail(check, detail string) {
	fmt.Printf("  [FAIL] %-20s %s\n", check, detail)
}

func printWarn(check, detail string) {
	fmt.Printf("  [WARN] %-20s %s\n", check, detail)
}
