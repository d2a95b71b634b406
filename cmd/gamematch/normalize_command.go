package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gamematch/internal/normalize"
)

type normalizeOutput struct {
	Input           string   `json:"input"`
	Normalized      string   `json:"normalized"`
	BaseName        string   `json:"baseName"`
	SequelNumber    int      `json:"sequelNumber,omitempty"`
	MeaningfulWords []string `json:"meaningfulWords"`
	SceneRelease    bool     `json:"sceneRelease"`
	Repack          bool     `json:"repack"`
	ConsoleToken    string   `json:"consoleToken,omitempty"`
}

func newNormalizeCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "normalize <title>",
		Short:       "Show how a release title normalizes",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			info := normalize.ExtractSequelInfo(title)
			console, _ := normalize.DetectedConsoleToken(title)
			output := normalizeOutput{
				Input:           title,
				Normalized:      normalize.NormalizeName(title),
				BaseName:        info.BaseName,
				SequelNumber:    info.Number,
				MeaningfulWords: normalize.MeaningfulWords(normalize.Words(title)),
				SceneRelease:    normalize.IsSceneRelease(title),
				Repack:          normalize.IsRepack(title),
				ConsoleToken:    console,
			}

			if jsonOutput {
				return writeJSON(cmd, output)
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"normalized", output.Normalized},
				{"base name", output.BaseName},
				{"sequel number", sequelLabel(output.SequelNumber)},
				{"meaningful words", strings.Join(output.MeaningfulWords, " ")},
				{"scene release", yesNo(output.SceneRelease)},
				{"repack", yesNo(output.Repack)},
				{"console token", output.ConsoleToken},
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func sequelLabel(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
