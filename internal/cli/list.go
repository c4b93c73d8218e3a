package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/shelf/internal/listview"
	"github.com/idilsaglam/shelf/internal/liststore"
	"github.com/idilsaglam/shelf/internal/log"
	"github.com/idilsaglam/shelf/internal/tui"
	"github.com/idilsaglam/shelf/internal/ui"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Interactive shopping list (TUI)",
		Args:  noArgs("shelf list"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app)
		},
	}
}

func runList(cmd *cobra.Command, app *App) error {
	closeLog := tuiLogger(app)
	defer closeLog()
	s, err := openSession(cmd.Context(), app, log.Logger())
	if err != nil {
		return err
	}
	defer s.Close()
	if err := tui.RunShopping(s.list, s.view); err != nil {
		log.Error().Err(err).Msg("list tui")
		return err
	}
	return nil
}

func newLsCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Print the shopping list",
		Args:  noArgs("shelf ls [--group]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app, log.Logger())
			if err != nil {
				return err
			}
			defer s.Close()
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(listingLines(s.view, group)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group output by pending/done")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Add an item (name can be multiple words)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageErr("usage: shelf add <name...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app, log.Logger())
			if err != nil {
				return err
			}
			defer s.Close()
			it, err := s.list.Add(strings.Join(args, " "))
			if err != nil {
				return usageErr("add: %v", err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %s (%d)", it.Name, it.ID))
			return nil
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle complete for the item with this id",
		Args:  idArg("shelf done <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := strconv.ParseInt(args[0], 10, 64)
			s, err := openSession(cmd.Context(), app, log.Logger())
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.list.ToggleComplete(id); err != nil {
				ui.Hint(cmd.ErrOrStderr(), "run `shelf ls` to see item ids")
				return usageErr("done: %d: %v", id, err)
			}
			it, _ := s.list.Get(id)
			state := "pending"
			if it.Complete {
				state = "done"
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%s marked %s", it.Name, state))
			return nil
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove the item with this id",
		Args:  idArg("shelf rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := strconv.ParseInt(args[0], 10, 64)
			s, err := openSession(cmd.Context(), app, log.Logger())
			if err != nil {
				return err
			}
			defer s.Close()
			if !s.list.Remove(id) {
				ui.Hint(cmd.ErrOrStderr(), "run `shelf ls` to see item ids")
				return usageErr("rm: %d: %v", id, liststore.ErrNotFound)
			}
			ui.OK(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}

func noArgs(usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			return usageErr("usage: %s", usage)
		}
		return nil
	}
}

func idArg(usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return usageErr("usage: %s", usage)
		}
		if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
			return usageErr("%s: not an item id: %s", cmd.Name(), args[0])
		}
		return nil
	}
}

// -------------- rendering helpers --------------

func listingLines(v *listview.View, group bool) []string {
	rows := v.Rows()
	t := ui.Current()
	done := 0
	for _, r := range rows {
		if r.Complete.Checked {
			done++
		}
	}
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Shopping"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), len(rows)-done,
		t.Accent.Render("Total"), len(rows),
	)
	lines := []string{header, t.Muted.Render(ui.ProgressBar(done, len(rows), 28)), ""}
	if group {
		var pend, fin []listview.Row
		for _, r := range rows {
			if r.Complete.Checked {
				fin = append(fin, r)
			} else {
				pend = append(pend, r)
			}
		}
		lines = append(lines, t.Accent.Render("Pending"))
		lines = append(lines, flatLines(pend)...)
		lines = append(lines, "", t.Accent.Render("Done"))
		lines = append(lines, flatLines(fin)...)
	} else {
		lines = append(lines, flatLines(rows)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `shelf add \"Buy milk\"`"))
	return lines
}

func flatLines(rows []listview.Row) []string {
	if len(rows) == 0 {
		return []string{ui.Current().Muted.Render("(none)")}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		id := ui.Current().Muted.Render(r.Remove.Value)
		out = append(out, fmt.Sprintf("%s  %s", id, listview.Line(r)))
	}
	return out
}
