package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nota/internal/projection"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an item",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAdd,
	}

	cmd.Flags().StringP("desc", "D", "", "Description (required)")
	cmd.Flags().String("date", "", "Date (blank = now)")
	cmd.Flags().Bool("note", false, "Create a note instead of a task")
	cmd.Flags().StringArray("photo", nil, "Photo URI (repeatable)")
	cmd.Flags().StringArray("video", nil, "Video URI (repeatable)")
	cmd.Flags().StringArray("audio", nil, "Audio URI (repeatable)")

	cmd.MarkFlagRequired("desc")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	desc, _ := cmd.Flags().GetString("desc")
	date, _ := cmd.Flags().GetString("date")
	note, _ := cmd.Flags().GetBool("note")
	photos, _ := cmd.Flags().GetStringArray("photo")
	videos, _ := cmd.Flags().GetStringArray("video")
	audios, _ := cmd.Flags().GetStringArray("audio")

	e, err := openEnv(nil)
	if err != nil {
		exitErr("open", err)
	}
	defer e.close()

	entry := projection.NewEntry(e.repo)
	entry.Update(projection.ItemDetails{
		Title:       strings.Join(args, " "),
		Description: desc,
		Date:        date,
		Kind:        !note,
	})
	for _, uri := range photos {
		entry.AddURI(uri, projection.PhotoContent)
	}
	for _, uri := range videos {
		entry.AddURI(uri, projection.VideoContent)
	}
	for _, uri := range audios {
		entry.AddURI(uri, projection.AudioContent)
	}

	if !entry.Valid() {
		exitErr("add", fmt.Errorf("title and description must be non-blank"))
	}
	id, saved, err := entry.Save(cmd.Context())
	if err != nil {
		exitErr("add", err)
	}
	if !saved {
		exitErr("add", fmt.Errorf("item was not saved"))
	}
	fmt.Printf("added item %d\n", id)
}
