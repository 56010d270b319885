package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nota/internal/projection"
)

func init() {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark an item finished",
		Args:  cobra.ExactArgs(1),
		Run:   runDone,
	}

	cmd.Flags().Bool("undo", false, "Mark unfinished instead")

	RootCmd.AddCommand(cmd)
}

func runDone(cmd *cobra.Command, args []string) {
	undo, _ := cmd.Flags().GetBool("undo")

	id, err := strconv.Atoi(args[0])
	if err != nil {
		exitErr("done", fmt.Errorf("invalid id %q", args[0]))
	}

	e, err := openEnv(nil)
	if err != nil {
		exitErr("open", err)
	}
	defer e.close()

	edit := projection.NewEdit(e.repo, id)
	if err := edit.Load(cmd.Context()); err != nil {
		exitErr("done", err)
	}
	if err := edit.SetFinished(cmd.Context(), !undo); err != nil {
		exitErr("done", err)
	}
}
