package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nota/internal/projection"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		exitErr("rm", fmt.Errorf("invalid id %q", args[0]))
	}

	e, err := openEnv(nil)
	if err != nil {
		exitErr("open", err)
	}
	defer e.close()

	if err := projection.NewEdit(e.repo, id).Delete(cmd.Context()); err != nil {
		exitErr("rm", err)
	}
}
