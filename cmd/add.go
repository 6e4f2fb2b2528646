package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/seventy/internal/app"
	"github.com/theirongolddev/seventy/internal/cli"
	"github.com/theirongolddev/seventy/internal/feedback"
	"github.com/theirongolddev/seventy/internal/ledger"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [income spent]",
	Short: "Record today's income and spending",
	Long:  "Record today's income and spending. Without arguments an interactive form asks for both.",
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return errors.New("add takes either no arguments or both income and spent")
		}
		return nil
	},
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	var incomeText, spentText string
	if len(args) == 2 {
		incomeText, spentText = args[0], args[1]
	} else {
		if err := amountForm(&incomeText, &spentText).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("reading amounts: %w", err)
		}
	}

	svc := openApp()
	defer closeApp(svc)

	res, err := svc.OnSave(incomeText, spentText)
	if err != nil {
		return fmt.Errorf("please enter valid numbers: %w", err)
	}

	printResult(svc, res)
	return nil
}

// amountForm asks for both amounts, validating as the user types.
func amountForm(income, spent *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Income").
				Placeholder("0.00").
				Validate(amountValidator("income", true)).
				Value(income),
			huh.NewInput().
				Title("Spent").
				Placeholder("0.00").
				Validate(amountValidator("spent", false)).
				Value(spent),
		),
	)
}

func amountValidator(field string, positive bool) func(string) error {
	return func(s string) error {
		v, err := ledger.ParseAmount(field, s)
		if err != nil {
			return err
		}
		if positive && v <= 0 {
			return fmt.Errorf("%s must be greater than 0", field)
		}
		if v < 0 {
			return fmt.Errorf("%s can't be negative", field)
		}
		return nil
	}
}

func printResult(svc *app.App, res app.Result) {
	cur := svc.Config().General.Currency
	e := res.Entry
	r := res.Reaction

	fmt.Println()
	fmt.Printf("  %s  spent %s of %s allowed  %s\n",
		e.Date,
		cli.FormatMoney(e.Spent, cur),
		cli.FormatMoney(e.Allowed(), cur),
		cli.RenderStatus(e.Status(), e.Within()),
	)
	fmt.Println()

	if r.Modal() {
		if r.Confetti {
			fmt.Println("  " + feedback.Confetti(40, uint64(time.Now().UnixNano())))
		}
		fmt.Printf("  %s  %s\n", feedback.Frame(r.Mood, 0), r.Title)
		fmt.Printf("  %s\n\n", r.Body)
	} else if r.Badge != "" {
		fmt.Printf("  %s  %s\n\n", feedback.Frame(r.Mood, 0), r.Badge)
	}

	fmt.Print(cli.RenderScore(res.View, 30))
	fmt.Println()

	if res.Warning != nil {
		fmt.Fprintf(os.Stderr, "  Saved for this run only: %v\n", res.Warning)
	}
}
