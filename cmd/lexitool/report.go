package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"go_5_lexicard/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

type wordCoverage struct {
	Total          int64 `db:"total"`
	WithAudio      int64 `db:"with_audio"`
	WithDefinition int64 `db:"with_definition"`
}

type organizationUsage struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Users    int64  `db:"users"`
	Words    int64  `db:"words"`
	Learned  int64  `db:"learned"`
	Mastered int64  `db:"mastered"`
}

type usageReport struct {
	Global        wordCoverage
	Organizations []organizationUsage
}

const wordCoverageQuery = `
SELECT
	COUNT(*) AS total,
	COUNT(CASE WHEN audio_url IS NOT NULL AND audio_url <> '' THEN 1 END) AS with_audio,
	COUNT(CASE WHEN definition IS NOT NULL AND definition <> '' THEN 1 END) AS with_definition
FROM words_global`

const organizationUsageQuery = `
SELECT
	o.id, o.name,
	(SELECT COUNT(*) FROM users u WHERE u.organization_id = o.id) AS users,
	(SELECT COUNT(*) FROM words w WHERE w.organization_id = o.id) AS words,
	(SELECT COUNT(*) FROM user_progress p WHERE p.organization_id = o.id AND p.acertos > 0) AS learned,
	(SELECT COUNT(*) FROM user_progress p WHERE p.organization_id = o.id AND p.acertos >= ?) AS mastered
FROM organizations o
ORDER BY o.name`

// buildReport は GORM を介さず sqlx で集計クエリを直接流します
func buildReport(ctx context.Context, db *sqlx.DB) (*usageReport, error) {
	r := &usageReport{}
	if err := db.GetContext(ctx, &r.Global, wordCoverageQuery); err != nil {
		return nil, fmt.Errorf("word coverage: %w", err)
	}
	if err := db.SelectContext(ctx, &r.Organizations, db.Rebind(organizationUsageQuery), model.MasteryThreshold); err != nil {
		return nil, fmt.Errorf("organization usage: %w", err)
	}
	return r, nil
}

func writeReport(w io.Writer, r *usageReport) error {
	fmt.Fprintf(w, "Global words: %d (audio %d, definition %d)\n\n", r.Global.Total, r.Global.WithAudio, r.Global.WithDefinition)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORGANIZATION\tID\tUSERS\tWORDS\tLEARNED\tMASTERED")
	for _, o := range r.Organizations {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\n", o.Name, o.ID, o.Users, o.Words, o.Learned, o.Mastered)
	}
	return tw.Flush()
}

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print word coverage and per-organization usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := sqlx.ConnectContext(cmd.Context(), "postgres", a.cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer db.Close()

			r, err := buildReport(cmd.Context(), db)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), r)
		},
	}
}
