package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/google/uuid"

	"github.com/repogate/repogate/pkg/state"
)

var postCommitCmd = &cobra.Command{
	Use:   "post-commit [changeset.json]",
	Short: "Run post-commit hooks for a committed changeset",
	Long: `Runs every configured post-commit hook. Hook failures are reported
but never undo the commit; a non-zero exit only signals the server that an
operator should look at the log.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPostCommit,
}

func init() {
	postCommitCmd.Flags().String("changeset", "", "Changeset file (default stdin)")
	viper.BindPFlag("post-commit.changeset", postCommitCmd.Flags().Lookup("changeset"))

	rootCmd.AddCommand(postCommitCmd)
}

func runPostCommit(cmd *cobra.Command, args []string) error {
	csPath, _ := cmd.Flags().GetString("changeset")
	if len(args) > 0 {
		csPath = args[0]
	}

	cfg, err := loadGateConfig()
	if err != nil {
		return err
	}
	change, err := loadChangeset(csPath)
	if err != nil {
		return err
	}

	engine, emitter, err := newEngine(cfg)
	if err != nil {
		return err
	}
	if emitter != nil {
		defer emitter.Close()
	}

	errs := engine.PostCommit(change)

	if store, serr := openRunStore(); serr != nil {
		return serr
	} else if store != nil {
		defer store.Close()
		verdict := "ok"
		var msgs []string
		if len(errs) > 0 {
			verdict = "failed"
			for _, e := range errs {
				msgs = append(msgs, e.Error())
			}
		}
		run := state.Run{
			ID:         "run-" + uuid.New().String()[:8],
			Phase:      state.PhasePostCommit,
			Txn:        change.Txn,
			Author:     change.Author,
			Verdict:    verdict,
			Violations: len(errs),
			Report:     strings.Join(msgs, "\n"),
		}
		if err := store.Record(run); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
	}

	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
		}
		return fmt.Errorf("%d hook(s) failed", len(errs))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
