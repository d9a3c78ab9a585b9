package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ib-77/bitbench/pkg/action"
	"github.com/ib-77/bitbench/pkg/actor"
	"github.com/ib-77/bitbench/pkg/bits"
	"github.com/ib-77/bitbench/pkg/worker"
)

var (
	flagInputs    []string
	flagState     string
	flagStateFile string
	flagOutDir    string
	flagBits      int64
	flagQuiet     bool
)

var operateCmd = &cobra.Command{
	Use:   "operate <operator>",
	Short: "Run an operator on one or more input files",
	Args:  cobra.ExactArgs(1),
	RunE:  runOperate,
}

func init() {
	operateCmd.Flags().StringSliceVarP(&flagInputs, "input", "i", nil, "Input file (repeatable)")
	operateCmd.Flags().StringVar(&flagState, "state", "", "Plugin state as a JSON object")
	operateCmd.Flags().StringVar(&flagStateFile, "state-file", "", "Plugin state JSON file")
	operateCmd.Flags().StringVarP(&flagOutDir, "output", "o", ".", "Directory for output containers")
	operateCmd.Flags().Int64Var(&flagBits, "bits", 0, "Bits to load from each input (default: whole file)")
	operateCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Do not render progress")
	rootCmd.AddCommand(operateCmd)
}

func runOperate(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	op, err := e.registry.NewOperator(args[0])
	if err != nil {
		return err
	}
	state, err := loadState(flagState, flagStateFile)
	if err != nil {
		return err
	}

	inputs := make([]*bits.Container, 0, len(flagInputs))
	for _, path := range flagInputs {
		c, err := loadContainer(path, flagBits)
		if err != nil {
			return err
		}
		inputs = append(inputs, c)
	}

	store, err := e.openHistory()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	ctx := e.context(cmd.Context())
	manager := action.NewManager(e.logger)
	pool := worker.FromContext(ctx)
	a := actor.NewOperatorActor(manager, pool, actor.WithLogger(e.logger))

	stop := cancelOnInterrupt(manager)
	defer stop()

	w, err := a.Act(ctx, op, inputs, state)
	if err != nil {
		return err
	}
	var rendered <-chan struct{}
	if !flagQuiet {
		rendered = renderProgress(cmd.ErrOrStderr(), w.Progress().Watch())
	}

	res, err := w.Wait(ctx)
	if rendered != nil {
		<-rendered
	}
	if err != nil {
		return err
	}
	if !res.IsSuccess() {
		return fmt.Errorf("%s (%s)", res.Message(), res.Kind())
	}

	out := res.Result()
	for i, c := range out.Containers {
		path, err := writeContainer(flagOutDir, i, c)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d bits\t%s\n", path, c.Len(), c.Name())
	}

	if store != nil {
		entry, err := store.Record(res.Id(), op.Name(), out)
		if err != nil {
			e.logger.Warn("could not record result", slog.String("error", err.Error()))
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "recorded as %s\n", entry.ID)
		}
	}
	return nil
}
