package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmorckos/sudoku/pkg/store"
)

func newHistoryCmd(configFile *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List stored solve records",
		Long: `History lists past solve records, newest first. With an ID argument it
prints the full record including input and solution grids.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			if st == nil {
				printInfo("history is disabled in the configuration")
				return nil
			}
			defer st.Close(cmd.Context())

			if len(args) == 1 {
				return showRecord(cmd, st, args[0])
			}
			return listRecords(cmd, st, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of records to list")
	return cmd
}

func listRecords(cmd *cobra.Command, st store.Store, limit int) error {
	metas, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		printInfo("no solve records yet")
		return nil
	}
	if limit > 0 && len(metas) > limit {
		metas = metas[:limit]
	}

	fmt.Println(StyleTitle.Render("Solve history"))
	for _, m := range metas {
		status := StyleSuccess.Render("solved")
		if !m.Solved {
			status = StyleWarning.Render("unsolved")
		}
		fmt.Printf("  %s  %s  %2dx%-2d  %s\n",
			StyleValue.Render(m.ID),
			StyleDim.Render(m.CreatedAt.Local().Format("2006-01-02 15:04:05")),
			m.Size, m.Size,
			status,
		)
	}
	return nil
}

func showRecord(cmd *cobra.Command, st store.Store, id string) error {
	rec, err := st.Load(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render("Record " + rec.ID))
	printDetail("size: %dx%d", rec.Size, rec.Size)
	printDetail("technique: %s", rec.Technique)
	printDetail("solved: %t", rec.Solved)
	printDetail("duration: %dms", rec.DurationMs)
	printDetail("created: %s", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))

	fmt.Println()
	fmt.Println(StyleDim.Render("Input:"))
	fmt.Println(renderBoard(rec.Input, nil))
	if rec.Solved {
		fmt.Println()
		fmt.Println(StyleDim.Render("Solution:"))
		fmt.Println(renderBoard(rec.Solution, rec.Input))
	}
	return nil
}
