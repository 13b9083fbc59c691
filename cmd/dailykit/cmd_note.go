package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/dailykit/internal/model"
	"github.com/nhle/dailykit/internal/ui"
)

var (
	noteTags   []string
	notePin    string
	notePinned bool
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add [title] [content...]",
	Short: "Add a note",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note := model.Note{
			Title:   args[0],
			Content: strings.Join(args[1:], " "),
			Tags:    noteTags,
		}
		if notePin != "" {
			note.IsLocked = true
			note.LockPin = notePin
		}

		saved, ok := kit.Notes.Add(cmd.Context(), note)
		if !ok {
			return errNotSaved("note")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added note %d\n", saved.ID)
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, most recently edited first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes := kit.Notes.Items()
		if notePinned {
			var err error
			if notes, err = kit.Notes.Pinned(cmd.Context()); err != nil {
				return fmt.Errorf("listing pinned notes: %w", err)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderNotes(notes))
		return nil
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a note, asking for its PIN when locked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		n, ok := kit.Notes.Find(id)
		if !ok {
			return fmt.Errorf("no note %d", id)
		}
		if !kit.Notes.Unlock(id, notePin) {
			return fmt.Errorf("note %d is locked; pass the right --pin", id)
		}
		kit.Notes.Select(id)
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", n.Title, n.Content)
		if len(n.Tags) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\ntags: %s\n", strings.Join(n.Tags, ", "))
		}
		return nil
	},
}

var notePinCmd = &cobra.Command{
	Use:   "pin [id]",
	Short: "Toggle whether a note is pinned",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		n, ok := kit.Notes.Find(id)
		if !ok {
			return fmt.Errorf("no note %d", id)
		}
		if !kit.Notes.SetPinned(cmd.Context(), id, !n.IsPinned) {
			return errNotSaved("note")
		}
		return nil
	},
}

var noteRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if !kit.Notes.Remove(cmd.Context(), id) {
			return errNotSaved("note")
		}
		return nil
	},
}

func init() {
	noteAddCmd.Flags().StringSliceVar(&noteTags, "tag", nil, "tag (repeatable)")
	noteAddCmd.Flags().StringVar(&notePin, "pin", "", "lock the note with this PIN")
	noteShowCmd.Flags().StringVar(&notePin, "pin", "", "PIN of a locked note")
	noteListCmd.Flags().BoolVar(&notePinned, "pinned", false, "only pinned, unarchived notes")

	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteShowCmd, notePinCmd, noteRmCmd)
}
