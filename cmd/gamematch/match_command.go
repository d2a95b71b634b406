package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gamematch/internal/matching"
)

type matchFlags struct {
	referencePath     string
	category          string
	releaseDate       string
	platforms         []string
	altNames          []string
	editionTitles     []string
	siblings          []string
	patterns          []string
	summary           string
	description       string
	candDescription   string
	descAuthoritative bool
	refSizeBytes      int64
	candSizeBytes     int64
	sourceKey         string
	trustLevel        string
	seeders           int
	leechers          int
	grabs             int
	preferredPlatform string
	strictPlatform    bool
	minScore          int
	jsonOutput        bool
}

func (f *matchFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.referencePath, "reference", "r", "", "Catalog entry JSON file; replaces the game-name argument")
	flags.StringVar(&f.category, "category", "", "Reference category (main_game, dlc, expansion, ...)")
	flags.StringVar(&f.releaseDate, "release-date", "", "Reference release date (YYYY-MM-DD)")
	flags.StringSliceVar(&f.platforms, "platform", nil, "Reference platform (repeatable)")
	flags.StringArrayVar(&f.altNames, "alt", nil, "Alternative reference name (repeatable)")
	flags.StringArrayVar(&f.editionTitles, "edition", nil, "Known edition title (repeatable)")
	flags.StringArrayVar(&f.siblings, "sibling", nil, "Franchise sibling title (repeatable)")
	flags.StringArrayVar(&f.patterns, "related-pattern", nil, "Related-title regular expression (repeatable)")
	flags.StringVar(&f.summary, "summary", "", "Reference summary text")
	flags.StringVar(&f.description, "description", "", "Authoritative store description for the reference")
	flags.StringVar(&f.candDescription, "candidate-description", "", "Candidate description text")
	flags.BoolVar(&f.descAuthoritative, "description-authoritative", false, "Penalize description mismatches harder")
	flags.Int64Var(&f.refSizeBytes, "reference-size", 0, "Authoritative install size in bytes")
	flags.Int64Var(&f.candSizeBytes, "candidate-size", 0, "Candidate archive size in bytes")
	flags.StringVar(&f.sourceKey, "source", "", "Source key the candidate came from")
	flags.StringVar(&f.trustLevel, "trust", "", "Source trust level (trusted, known, unknown, suspect)")
	flags.IntVar(&f.seeders, "seeders", 0, "Seeder count")
	flags.IntVar(&f.leechers, "leechers", 0, "Leecher count")
	flags.IntVar(&f.grabs, "grabs", 0, "Grab count")
	flags.StringVar(&f.preferredPlatform, "preferred-platform", "", "Platform the caller wants")
	flags.BoolVar(&f.strictPlatform, "strict-platform", false, "Reject confident platform mismatches")
	flags.IntVar(&f.minScore, "min-score", 0, "Heuristic accept threshold override")
	flags.BoolVar(&f.jsonOutput, "json", false, "Emit JSON instead of a table")
}

func (f *matchFlags) buildContext(ref matching.ReferenceItem, cfg configValues) (*matching.MatchContext, error) {
	if cat := strings.TrimSpace(f.category); cat != "" {
		ref.Category = matching.Category(cat)
	}
	ref.Platforms = append(ref.Platforms, f.platforms...)
	ref.FranchiseSiblingNames = append(ref.FranchiseSiblingNames, f.siblings...)
	ref.EditionTitles = append(ref.EditionTitles, f.editionTitles...)
	if f.summary != "" {
		ref.Summary = f.summary
	}
	for _, alt := range f.altNames {
		if alt = strings.TrimSpace(alt); alt != "" {
			ref.AlternativeNames = append(ref.AlternativeNames, matching.AlternativeName{Name: alt})
		}
	}
	if raw := strings.TrimSpace(f.releaseDate); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("parse release date %q: %w", raw, err)
		}
		ref.ReleaseDate = &parsed
	}

	minScore := f.minScore
	if minScore == 0 {
		minScore = cfg.minMatchScore
	}

	return &matching.MatchContext{
		Reference:                ref,
		MinMatchScore:            minScore,
		PreferredPlatform:        f.preferredPlatform,
		StrictPlatform:           f.strictPlatform,
		Description:              f.description,
		ReferenceSizeBytes:       f.refSizeBytes,
		CandidateSizeBytes:       f.candSizeBytes,
		CandidateDescription:     f.candDescription,
		DescriptionAuthoritative: f.descAuthoritative,
		RelatedGamePatterns:      f.patterns,
		SourceKey:                strings.TrimSpace(f.sourceKey),
		TrustLevel:               strings.ToLower(strings.TrimSpace(f.trustLevel)),
		Seeders:                  f.seeders,
		Leechers:                 f.leechers,
		Grabs:                    f.grabs,
		NewReleaseWindowDays:     cfg.newReleaseWindowDays,
	}, nil
}

// configValues carries the two scorer knobs commands read from config.
type configValues struct {
	minMatchScore        int
	newReleaseWindowDays int
}

func (c *commandContext) scorerValues() configValues {
	cfg := c.configValue()
	if cfg == nil {
		return configValues{}
	}
	return configValues{
		minMatchScore:        cfg.Matching.MinMatchScore,
		newReleaseWindowDays: cfg.Matching.NewReleaseWindowDays,
	}
}

type matchOutput struct {
	GameName       string   `json:"gameName"`
	CandidateTitle string   `json:"candidateTitle"`
	Matches        bool     `json:"matches"`
	Score          int      `json:"score"`
	Reasons        []string `json:"reasons"`
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	flags := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "match <game-name> <candidate-title>",
		Short: "Evaluate one candidate title against a catalog game",
		Long: `Evaluate one candidate title against a catalog game.

The reference comes from the game-name argument, or from a catalog entry
JSON file via --reference (then only the candidate title is expected).
Flags refine either form.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ref matching.ReferenceItem
			candidate := args[len(args)-1]
			if flags.referencePath != "" {
				if len(args) != 1 {
					return errors.New("with --reference pass only the candidate title")
				}
				loaded, err := loadReference(flags.referencePath)
				if err != nil {
					return err
				}
				ref = loaded
			} else {
				if len(args) != 2 {
					return errors.New("expected <game-name> <candidate-title>")
				}
				ref = matching.ReferenceItem{Name: args[0]}
			}

			eng, err := ctx.buildEngine()
			if err != nil {
				return err
			}
			matchCtx, err := flags.buildContext(ref, ctx.scorerValues())
			if err != nil {
				return err
			}

			result := eng.Match(candidate, matchCtx)
			output := matchOutput{
				GameName:       ref.Name,
				CandidateTitle: candidate,
				Matches:        result.Matches,
				Score:          result.Score,
				Reasons:        result.Reasons,
			}

			if flags.jsonOutput {
				return writeJSON(cmd, output)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Game", "Candidate", "Verdict", "Score"},
				[][]string{{output.GameName, output.CandidateTitle, verdictLabel(output.Matches), strconv.Itoa(output.Score)}},
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			for _, reason := range output.Reasons {
				fmt.Fprintf(out, "  - %s\n", reason)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
