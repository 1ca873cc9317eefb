package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/mlv/internal/highlight"
	"github.com/zjrosen/mlv/internal/view"
)

var (
	showWidth    int
	showNoWrap   bool
	showCollapse int
)

var showCmd = &cobra.Command{
	Use:   "show <archive> <n|message-id>",
	Short: "Print one message of an archive",
	Long: `Print a message with its quotes and diff, rendered the same way as in
the viewer. The message is picked by its 1-based position in the mbox or by
its Message-ID.

Example:
  mlv show lkml.mbox 3
  mlv show lkml.mbox '<20260105.patch1@example.org>'`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVarP(&showWidth, "width", "w", defaultWidth, "output width")
	showCmd.Flags().BoolVar(&showNoWrap, "no-wrap", false, "do not wrap long lines")
	showCmd.Flags().IntVar(&showCollapse, "collapse", 0, "fold quotes at this depth or deeper (0 shows all)")
}

func runShow(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging("mlv-show")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := applyUITheme(); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	svc, err := newServices(highlight.FormatTerminal)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := context.Background()
	a, err := svc.loader.Load(ctx, args[0])
	if err != nil {
		return fmt.Errorf("loading archive: %w", err)
	}

	msg, err := a.Lookup(args[1])
	if err != nil {
		return fmt.Errorf("%s: %w", args[1], err)
	}

	v := view.NewMessage(ctx, msg, svc.pipeline, showCollapse)
	opts := view.MessageOptions{
		Width:    showWidth,
		Wrap:     !showNoWrap,
		TabWidth: cfg.Diff.TabWidth,
	}
	if v.Diff != nil {
		opts.Markup = lineMarkup(ctx, svc.highlighter, *v.Diff)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), v.String(opts))
	return err
}
