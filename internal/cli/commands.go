package cli

import (
	"github.com/spf13/cobra"
	"github.com/vk/modelopt/internal/app"
)

func addModelFlags(cmd *cobra.Command, modelType, paramsPath *string) {
	cmd.Flags().StringVarP(modelType, "model-type", "t", app.DefaultModel, "Model type to translate the parameters for.")
	cmd.Flags().StringVarP(paramsPath, "parameters", "p", "", "Parameter file (.json, .yaml, .yml or .hcl).")
}

// runIDFlag converts the --run-id value, where a negative number selects the
// default run.
func runIDFlag(id int) *int {
	if id < 0 {
		return nil
	}
	return &id
}

func newWriteCommand(opts *options) *cobra.Command {
	var modelType, paramsPath string
	cmd := &cobra.Command{
		Use:   "write MODELDIR",
		Short: "Apply a parameter file to a model directory",
		Long: `Translates the parameters into namelist edits and patches the files
of MODELDIR in place. Every modified file is kept with a '~' backup suffix.`,
		Args: exactArgs(1, "a model directory"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag(cmd, "parameters", paramsPath); err != nil {
				return err
			}
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			_, err = a.Write(cmd.Context(), modelType, args[0], paramsPath)
			return err
		},
	}
	addModelFlags(cmd, &modelType, &paramsPath)
	return cmd
}

func newShowCommand(opts *options) *cobra.Command {
	var modelType, paramsPath string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the namelist edits of a parameter file without writing",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag(cmd, "parameters", paramsPath); err != nil {
				return err
			}
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			return a.Show(cmd.Context(), modelType, paramsPath)
		},
	}
	addModelFlags(cmd, &modelType, &paramsPath)
	return cmd
}

func newConfigureCommand(opts *options) *cobra.Command {
	var (
		modelType, paramsPath, clone string
		runID                        int
	)
	cmd := &cobra.Command{
		Use:   "configure BASEDIR",
		Short: "Clone a model setup into a run directory and apply parameters",
		Long: `Copies the --clone setup to BASEDIR/run_NNNN (or BASEDIR/default without
--run-id), records the run id and applies the parameter file. The new
directory is printed on success.`,
		Args: exactArgs(1, "a base directory"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag(cmd, "parameters", paramsPath); err != nil {
				return err
			}
			if err := requireFlag(cmd, "clone", clone); err != nil {
				return err
			}
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			_, err = a.Configure(cmd.Context(), app.ConfigureOptions{
				BaseDir:    args[0],
				Clone:      clone,
				RunID:      runIDFlag(runID),
				ModelType:  modelType,
				ParamsPath: paramsPath,
			})
			return err
		},
	}
	addModelFlags(cmd, &modelType, &paramsPath)
	cmd.Flags().StringVarP(&clone, "clone", "C", "", "Model setup to clone.")
	cmd.Flags().IntVar(&runID, "run-id", -1, "Run id; negative selects the default run.")
	return cmd
}

func newRundirCommand(opts *options) *cobra.Command {
	var (
		runID  int
		create bool
	)
	cmd := &cobra.Command{
		Use:   "rundir BASEDIR",
		Short: "Print the run directory of a run id, checking or creating it",
		Args:  exactArgs(1, "a base directory"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			_, err = a.Locate(cmd.Context(), args[0], runIDFlag(runID), create)
			return err
		},
	}
	cmd.Flags().IntVar(&runID, "run-id", -1, "Run id; negative selects the default run.")
	cmd.Flags().BoolVar(&create, "create", false, "Create the directory and record the run id.")
	return cmd
}

func newModelsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the known models and their parameters",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			return a.ListModels()
		},
	}
}
