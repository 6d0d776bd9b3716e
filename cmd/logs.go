package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/powerplan/config"
	"github.com/kilianp07/powerplan/core/dispatch/logging"
)

var (
	logsSince    time.Duration
	logsPlant    string
	logsFailures bool
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print persisted production plan logs",
	RunE:  runLogs,
}

func init() {
	logsCmd.Flags().DurationVar(&logsSince, "since", 0, "only show plans newer than this duration")
	logsCmd.Flags().StringVar(&logsPlant, "plant", "", "only show plans involving this powerplant")
	logsCmd.Flags().BoolVar(&logsFailures, "failures", false, "only show failed plans")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.Logging.Enabled() {
		return fmt.Errorf("plan logging is disabled")
	}
	store, err := logging.NewLogStore(cfg.Logging.Module())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	q := logging.LogQuery{Plant: logsPlant, FailuresOnly: logsFailures}
	if logsSince > 0 {
		q.Start = time.Now().Add(-logsSince)
	}
	recs, err := store.Query(cmd.Context(), q)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
