package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"tgwatch/internal/config"
	"tgwatch/internal/notify"

	"github.com/spf13/cobra"
)

var knownProviders = []struct {
	ID   string
	Desc string
}{
	{"telegram", "Telegram bot (token from @BotFather + destination chat ID)"},
	{"twilio", "Twilio WhatsApp/SMS gateway (account SID + auth token)"},
	{"webhook", "Generic webhook GET (e.g. CallMeBot URL with key baked in)"},
	{"none", "Skip for now (alerts will be dropped)"},
}

func wizardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Interactive setup for account, rules, and provider",
		Long:  "Guides you through the watched account credentials, the keyword/chat rules, and the notification provider, then writes the config to the path used by --config or default.",
		RunE:  runWizard,
	}
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		cfg = config.Defaults()
	}

	reader := bufio.NewReader(os.Stdin)
	prompt := func(def string) (string, error) {
		if def != "" {
			fmt.Fprintf(os.Stdout, " [%s]: ", def)
		} else {
			fmt.Fprint(os.Stdout, ": ")
		}
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		s := strings.TrimSpace(line)
		if s == "" && def != "" {
			return def, nil
		}
		return s, nil
	}

	// Step 1: Watched account
	fmt.Println("\n--- Step 1: Watched account ---")
	fmt.Fprint(os.Stdout, "Telegram bot token (from @BotFather)")
	tok, err := prompt(cfg.Telegram.Token)
	if err != nil {
		return err
	}
	cfg.Telegram.Token = tok

	// Step 2: Watch rules
	fmt.Println("\n--- Step 2: Watch rules ---")
	fmt.Fprint(os.Stdout, "Keywords, comma separated (empty = no keyword alerts)")
	kws, err := prompt(strings.Join(cfg.Watch.Keywords, ","))
	if err != nil {
		return err
	}
	cfg.Watch.Keywords = config.SplitList(kws)

	fmt.Fprint(os.Stdout, "Chats to monitor, comma separated IDs or titles (empty = all)")
	chats, err := prompt(strings.Join(cfg.Watch.Chats, ","))
	if err != nil {
		return err
	}
	cfg.Watch.Chats = config.SplitList(chats)

	fmt.Fprint(os.Stdout, "Summary interval in hours")
	hoursStr, err := prompt(fmt.Sprint(cfg.Watch.SummaryIntervalHours))
	if err != nil {
		return err
	}
	var hours int
	if n, _ := fmt.Sscanf(hoursStr, "%d", &hours); n == 1 && hours > 0 {
		cfg.Watch.SummaryIntervalHours = hours
	}

	// Step 3: Notification provider
	fmt.Println("\n--- Step 3: Notification provider ---")
	for i, p := range knownProviders {
		fmt.Fprintf(os.Stdout, "  %d) %s - %s\n", i+1, p.ID, p.Desc)
	}
	fmt.Fprint(os.Stdout, "Choose provider (1-"+fmt.Sprint(len(knownProviders))+")")
	choice, err := prompt("1")
	if err != nil {
		return err
	}
	var idx int
	if n, _ := fmt.Sscanf(choice, "%d", &idx); n != 1 || idx < 1 || idx > len(knownProviders) {
		idx = 1
	}

	switch knownProviders[idx-1].ID {
	case "telegram":
		fmt.Fprint(os.Stdout, "Alert bot token")
		if cfg.Notify.Telegram.Token, err = prompt(cfg.Notify.Telegram.Token); err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, "Destination chat ID")
		if cfg.Notify.Telegram.ChatID, err = prompt(cfg.Notify.Telegram.ChatID); err != nil {
			return err
		}
	case "twilio":
		fmt.Fprint(os.Stdout, "Account SID")
		if cfg.Notify.Twilio.AccountSID, err = prompt(cfg.Notify.Twilio.AccountSID); err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, "Auth token")
		if cfg.Notify.Twilio.AuthToken, err = prompt(cfg.Notify.Twilio.AuthToken); err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, "From number (e.g. whatsapp:+14155238886)")
		if cfg.Notify.Twilio.From, err = prompt(cfg.Notify.Twilio.From); err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, "To number")
		if cfg.Notify.Twilio.To, err = prompt(cfg.Notify.Twilio.To); err != nil {
			return err
		}
	case "webhook":
		fmt.Fprint(os.Stdout, "Webhook URL (keys and phone already in the URL)")
		if cfg.Notify.Webhook.URL, err = prompt(cfg.Notify.Webhook.URL); err != nil {
			return err
		}
	}

	// Save
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\nConfig written to %s\n", cfgPath)

	// Optional test alert through the freshly configured provider.
	dispatcher := notify.NewDispatcher(cfg.Notify, logger)
	if dispatcher.ProviderName() != "" {
		fmt.Fprint(os.Stdout, "Send a test alert now? (y/N)")
		answer, err := prompt("N")
		if err != nil {
			return err
		}
		if strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes") {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if dispatcher.Send(ctx, "✅ tgwatch test alert: your provider is configured correctly.") {
				fmt.Println("Test alert sent.")
			} else {
				fmt.Println("Test alert failed, check the log output above.")
			}
		}
	}

	fmt.Println("Run 'tgwatch watch' to start the watcher.")
	return nil
}
