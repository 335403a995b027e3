package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// scenariosCmd lists the presets of the scenarios file
var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the presets in the scenarios file",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		file, err := LoadScenarios(scenariosFile)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := listScenarios(cmd.OutOrStdout(), file); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func listScenarios(out io.Writer, file *ScenarioFile) error {
	if len(file.Scenarios) == 0 {
		_, err := fmt.Fprintln(out, "no scenarios found")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, name := range file.Names() {
		fmt.Fprintf(w, "%s\t%s\n", name, file.Scenarios[name].Description)
	}
	return w.Flush()
}

func init() {
	scenariosCmd.Flags().StringVar(&scenariosFile, "scenarios-file", "scenarios.yaml", "Path to the scenarios file")
	rootCmd.AddCommand(scenariosCmd)
}
