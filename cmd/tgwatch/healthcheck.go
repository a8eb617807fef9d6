package main

import (
	"fmt"
	"time"

	"tgwatch/internal/heartbeat"

	"github.com/spf13/cobra"
)

// healthcheckCmd is the probe wired into the container HEALTHCHECK: exit 0
// when the heartbeat file is fresh, exit 1 otherwise.
func healthcheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "healthcheck",
		Short:         "Check that the watcher heartbeat is fresh",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return err
			}

			now := time.Now()
			maxAge := time.Duration(cfg.Heartbeat.MaxAgeSeconds) * time.Second

			if err := heartbeat.Check(cfg.Heartbeat.Path, maxAge, now); err != nil {
				fmt.Printf("Error: %v\n", err)
				return err
			}

			age, _ := heartbeat.Age(cfg.Heartbeat.Path, now)
			fmt.Printf("Healthy: heartbeat updated %.1fs ago.\n", age.Seconds())
			return nil
		},
	}
}
