package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/powerplan/config"
	"github.com/kilianp07/powerplan/core/dispatch"
	"github.com/kilianp07/powerplan/core/factory"
	"github.com/kilianp07/powerplan/core/model"
	"github.com/kilianp07/powerplan/pkg/export"
)

var (
	planFile     string
	planStrategy string
	planFormat   string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a production plan from a payload file",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planFile, "file", "f", "", "payload file, - for stdin")
	planCmd.Flags().StringVar(&planStrategy, "strategy", "", "dispatcher type (merit or lp), defaults to the configured one")
	planCmd.Flags().StringVar(&planFormat, "format", "json", "output format (json or csv)")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	req, err := readPayload(cmd, planFile)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	mc := cfg.Components.Dispatcher
	if planStrategy != "" {
		mc = factory.ModuleConfig{Type: planStrategy, Conf: mc.Conf}
	}
	d, err := dispatch.NewDispatcher(mc)
	if err != nil {
		return err
	}
	plan, err := d.Dispatch(req.Load, req.Fuels, req.Powerplants)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch planFormat {
	case "json":
		return export.WriteJSON(out, plan)
	case "csv":
		return export.WriteCSV(out, plan)
	default:
		return fmt.Errorf("unknown format %q", planFormat)
	}
}

func readPayload(cmd *cobra.Command, path string) (model.PlanRequest, error) {
	var req model.PlanRequest
	in := cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return req, err
		}
		defer func() { _ = f.Close() }()
		in = f
	}
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return req, fmt.Errorf("decode payload: %w", err)
	}
	return req, nil
}
