package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dass21/internal/questionnaire"
)

var scoreJSON bool

var scoreCmd = &cobra.Command{
	Use:   "score [answers...]",
	Short: "Score 21 answers without recording them",
	Long: `Score 21 answers (0-3, in item order) and print the subscale totals and
labels. Answers are read from the arguments, or from stdin when none are
given, separated by spaces or commas. Nothing is written to the log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := cfg.LoadBank()
		if err != nil {
			return err
		}
		e := bank.Default()

		text := strings.Join(args, " ")
		if len(args) == 0 {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read answers: %w", err)
			}
			text = string(b)
		}
		r, err := parseAnswers(text)
		if err != nil {
			return err
		}

		res, err := e.ScoreResponses(r)
		if err != nil {
			var ve *questionnaire.ValidationError
			if errors.As(err, &ve) {
				return errors.New(ve.Localize(e.Variant()))
			}
			return err
		}

		out := cmd.OutOrStdout()
		if scoreJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		for _, sc := range res.Scores {
			fmt.Fprintf(out, "%s: %d → %s\n", sc.Name, sc.Total, sc.Label)
		}
		return nil
	},
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the result as JSON")
}

// parseAnswers reads answers in position order. "-" or "_" leaves a
// position unanswered.
func parseAnswers(text string) (questionnaire.Responses, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) > questionnaire.ItemCount {
		return nil, fmt.Errorf("got %d answers, want %d", len(fields), questionnaire.ItemCount)
	}

	r := questionnaire.NewResponses()
	for i, f := range fields {
		if f == "-" || f == "_" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %q is not a number", i+1, f)
		}
		r[i+1] = questionnaire.Answer(n)
	}
	return r, nil
}
