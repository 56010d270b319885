package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"nota/internal/projection"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items",
		Run:   runList,
	}

	cmd.Flags().StringP("filter", "f", "", "Case-insensitive title filter")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	filter, _ := cmd.Flags().GetString("filter")

	e, err := openEnv(nil)
	if err != nil {
		exitErr("open", err)
	}
	defer e.close()

	items, err := e.repo.FetchItems(cmd.Context())
	if err != nil {
		exitErr("list", err)
	}

	home := projection.NewHome(e.repo)
	home.Apply(items)
	home.SetQuery(filter)

	for _, it := range home.Visible() {
		mark := " "
		if it.Finished {
			mark = "x"
		}
		kind := "note"
		if it.Kind {
			kind = "task"
		}
		fmt.Printf("%4d [%s] %-4s %s  %s\n", it.ID, mark, kind, it.Title, it.Date)
	}
}
