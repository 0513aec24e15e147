package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fentz26/todo/internal/models"
	"github.com/fentz26/todo/internal/tui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var toggleCmd = &cobra.Command{
	Use:     "toggle [task-id]",
	Aliases: []string{"done"},
	Short:   "Mark a task completed, or active again",
	Args:    cobra.ExactArgs(1),
	RunE:    runToggle,
}

var editCmd = &cobra.Command{
	Use:   "edit [task-id] [text...]",
	Short: "Replace the text of a task",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runEdit,
}

var rmCmd = &cobra.Command{
	Use:     "rm [task-id]",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

var (
	listFilter string
	rmYes      bool
)

var (
	errNoMatch   = errors.New("no task matches")
	errAmbiguous = errors.New("ambiguous task id")
)

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", string(models.FilterAll), "Filter by state (all, active, completed)")
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Delete without asking")
}

func runAdd(cmd *cobra.Command, args []string) error {
	task, ok := tasks.Create(strings.Join(args, " "))
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to add")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created task: %s\n", truncateID(task.ID))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	f, err := models.ParseFilter(listFilter)
	if err != nil {
		return err
	}
	printTasks(cmd.OutOrStdout(), tasks.Filtered(f), tasks.RemainingLabel())
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	task, err := resolveTask(tasks.Tasks(), args[0])
	if err != nil {
		return err
	}
	tasks.ToggleCompleted(task.ID)

	state := "completed"
	if task.Completed {
		state = "active"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Marked %s %s\n", truncateID(task.ID), state)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	task, err := resolveTask(tasks.Tasks(), args[0])
	if err != nil {
		return err
	}
	if !tasks.Update(task.ID, strings.Join(args[1:], " ")) {
		return fmt.Errorf("task text cannot be empty")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", truncateID(task.ID))
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	task, err := resolveTask(tasks.Tasks(), args[0])
	if err != nil {
		return err
	}

	prompt := fmt.Sprintf("Delete %q?", tui.Truncate(tui.SanitizeText(task.Text), 50))
	if !rmYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
		fmt.Fprintln(cmd.OutOrStdout(), "Kept task")
		return nil
	}
	tasks.Delete(task.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", truncateID(task.ID))
	return nil
}

func printTasks(out io.Writer, list []models.Task, remaining string) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No tasks found")
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDONE\tTEXT\tCREATED")
		for _, t := range list {
			done := "[ ]"
			if t.Completed {
				done = "[x]"
			}
			text := tui.Truncate(tui.SanitizeText(t.Text), 50)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", truncateID(t.ID), done, text, t.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		w.Flush()
	}
	fmt.Fprintln(out, remaining)
}

// resolveTask finds the task whose id equals ref or, failing that, the only
// task whose id starts with ref.
func resolveTask(list []models.Task, ref string) (models.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Task{}, fmt.Errorf("%w: empty id", errNoMatch)
	}

	var matches []models.Task
	for _, t := range list {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return models.Task{}, fmt.Errorf("%w %q", errNoMatch, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Task{}, fmt.Errorf("%w %q matches %d tasks", errAmbiguous, ref, len(matches))
	}
}

// confirm asks a y/N question. Anything but y or yes, including EOF, is no.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func truncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
