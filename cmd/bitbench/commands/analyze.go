package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ib-77/bitbench/pkg/action"
	"github.com/ib-77/bitbench/pkg/actor"
	"github.com/ib-77/bitbench/pkg/worker"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <analyzer>",
	Short: "Run an analyzer on an input file and print its report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringSliceVarP(&flagInputs, "input", "i", nil, "Input file")
	analyzeCmd.Flags().StringVar(&flagState, "state", "", "Plugin state as a JSON object")
	analyzeCmd.Flags().StringVar(&flagStateFile, "state-file", "", "Plugin state JSON file")
	analyzeCmd.Flags().Int64Var(&flagBits, "bits", 0, "Bits to load from the input (default: whole file)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	an, err := e.registry.NewAnalyzer(args[0])
	if err != nil {
		return err
	}
	if len(flagInputs) != 1 {
		return fmt.Errorf("analyze takes exactly one --input, got %d", len(flagInputs))
	}
	state, err := loadState(flagState, flagStateFile)
	if err != nil {
		return err
	}
	input, err := loadContainer(flagInputs[0], flagBits)
	if err != nil {
		return err
	}

	ctx := e.context(cmd.Context())
	manager := action.NewManager(e.logger)
	a := actor.NewAnalyzerActor(manager, worker.FromContext(ctx), actor.WithLogger(e.logger))

	stop := cancelOnInterrupt(manager)
	defer stop()

	w, err := a.Act(ctx, an, input, state)
	if err != nil {
		return err
	}
	res, err := w.Wait(ctx)
	if err != nil {
		return err
	}
	if !res.IsSuccess() {
		return fmt.Errorf("%s (%s)", res.Message(), res.Kind())
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"analyzer":   an.Name(),
		"input":      input.Name(),
		"report":     res.Result().Report,
		"highlights": res.Result().Highlights,
		"state":      res.Result().State,
	})
}
