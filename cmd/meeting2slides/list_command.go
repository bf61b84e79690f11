package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List presentations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			defer ctx.close()

			list, err := a.proc.ListPresentations(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No presentations")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, p := range list {
				slides, err := a.store.ListSlides(cmd.Context(), p.ID)
				if err != nil {
					return err
				}
				title := p.Title
				if title == "" {
					title = "-"
				}
				rows = append(rows, []string{
					p.ID,
					title,
					string(p.Status),
					strconv.Itoa(len(slides)),
					p.CreatedAt.Local().Format("2006-01-02 15:04"),
					p.PDFURL,
				})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Title", "Status", "Slides", "Created", "PDF"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
