package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"nota/internal/projection"
)

func init() {
	cmd := &cobra.Command{
		Use:   "record <audio-path>",
		Short: "File a captured recording as a new task",
		Args:  cobra.ExactArgs(1),
		Run:   runRecord,
	}

	RootCmd.AddCommand(cmd)
}

func runRecord(cmd *cobra.Command, args []string) {
	e, err := openEnv(nil)
	if err != nil {
		exitErr("open", err)
	}
	defer e.close()

	id, err := projection.NewHome(e.repo).AddRecording(cmd.Context(), args[0])
	if err != nil {
		exitErr("record", err)
	}
	fmt.Printf("added recording item %d\n", id)
}
