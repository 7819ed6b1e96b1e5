package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect recorded gate runs",
}

var runsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent gate runs",
	RunE:    runRunsList,
}

var runsGetCmd = &cobra.Command{
	Use:   "get <run-id>",
	Short: "Show one gate run as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsGet,
}

var runsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs older than the retention window",
	RunE:  runRunsPrune,
}

func init() {
	runsListCmd.Flags().Int("limit", 50, "Maximum runs to list (0 for all)")
	viper.BindPFlag("runs.limit", runsListCmd.Flags().Lookup("limit"))

	runsPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "Delete runs older than this")
	viper.BindPFlag("runs.older-than", runsPruneCmd.Flags().Lookup("older-than"))

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsGetCmd)
	runsCmd.AddCommand(runsPruneCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	store, err := openRunStore()
	if err != nil {
		return err
	}
	if store == nil {
		return ErrNoRunStore
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPHASE\tTXN\tAUTHOR\tVERDICT\tVIOLATIONS\tCREATED")
	for _, r := range runs {
		created := r.CreatedAt.Format("2006-01-02 15:04")
		author := r.Author
		if author == "" {
			author = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			r.ID, r.Phase, r.Txn, author, r.Verdict, r.Violations, created)
	}
	return w.Flush()
}

func runRunsGet(cmd *cobra.Command, args []string) error {
	store, err := openRunStore()
	if err != nil {
		return err
	}
	if store == nil {
		return ErrNoRunStore
	}
	defer store.Close()

	run, err := store.Get(args[0])
	if err != nil {
		return err
	}
	out, _ := json.MarshalIndent(run, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func runRunsPrune(cmd *cobra.Command, args []string) error {
	store, err := openRunStore()
	if err != nil {
		return err
	}
	if store == nil {
		return ErrNoRunStore
	}
	defer store.Close()

	olderThan, _ := cmd.Flags().GetDuration("older-than")
	n, err := store.Prune(time.Now().Add(-olderThan))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d run(s)\n", n)
	return nil
}
