package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/mlv/internal/quote"
	"github.com/zjrosen/mlv/internal/view"
)

var (
	quoteRender   bool
	quoteCollapse int
	quoteWidth    int
)

var quoteCmd = &cobra.Command{
	Use:   "quote [file|-]",
	Short: "Show the quote tree of a message body",
	Long: `Parse a plain-text body into its quote tree and print the tree.
With --render the body is printed with quote bars and folding instead.
Reads stdin when the file is "-" or omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().BoolVarP(&quoteRender, "render", "r", false, "render the body instead of dumping the tree")
	quoteCmd.Flags().IntVar(&quoteCollapse, "collapse", 0, "with --render, fold quotes at this depth or deeper")
	quoteCmd.Flags().IntVarP(&quoteWidth, "width", "w", defaultWidth, "with --render, wrap at this width (0 disables)")
}

func runQuote(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	root := quote.Parse(text)
	out := cmd.OutOrStdout()

	if !quoteRender {
		_, err = fmt.Fprint(out, quote.Dump(root))
		return err
	}

	if err := applyUITheme(); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}
	v := view.NewQuoteView(root, quoteCollapse)
	return writeLines(out, v.Strings(view.QuoteOptions{Width: quoteWidth, Wrap: quoteWidth > 0}))
}
