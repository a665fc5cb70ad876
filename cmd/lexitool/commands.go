package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go_5_lexicard/internal/dictionary"
	"go_5_lexicard/internal/importer"
	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/repository"
	"go_5_lexicard/internal/service"

	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update backend tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			if err := repository.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			a.logger.Info("Migration completed")
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert global words from a JSON, CSV or XLSX file",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := importer.Load(file)
			if err != nil {
				return err
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}
			svc := service.NewMaintenanceService(db, repository.NewGormGlobalWordRepository(), nil, nil, a.cfg)
			report, err := svc.SeedWords(a.context(cmd), entries)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed file (.json, .csv, .xlsx)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newBackfillCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "backfill-audio",
		Short: "Look up audio for global words that have none",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			wordCache, err := a.openWordCache()
			if err != nil {
				return err
			}
			svc := service.NewMaintenanceService(db, repository.NewGormGlobalWordRepository(), dictionary.NewHTTPClient(a.cfg.Dictionary), wordCache, a.cfg)
			report, err := svc.BackfillMissingAudio(a.context(cmd), limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum words to check (default enrichment.backfill_limit)")
	return cmd
}

func newEnrichCmd(a *app) *cobra.Command {
	var orgID, userID string
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Fill missing definitions and audio for an organization's words",
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := model.NewTenantContext(orgID, userID)
			if err != nil {
				return err
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}
			wordCache, err := a.openWordCache()
			if err != nil {
				return err
			}
			svc := service.NewWordService(db,
				repository.NewGormGlobalWordRepository(),
				repository.NewGormWordRepository(),
				dictionary.NewHTTPClient(a.cfg.Dictionary),
				wordCache,
				a.cfg,
			)
			report, err := svc.EnrichWords(a.context(cmd), tc)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&orgID, "org", "", "organization ID")
	cmd.Flags().StringVar(&userID, "user", "", "user ID")
	cmd.MarkFlagRequired("org")
	cmd.MarkFlagRequired("user")
	return cmd
}

func newCreateOrgCmd(a *app) *cobra.Command {
	var req model.CreateOrganizationRequest
	cmd := &cobra.Command{
		Use:   "create-org",
		Short: "Create an organization (the HTTP endpoint requires an admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			org, err := service.NewOrganizationService(db, repository.NewGormOrganizationRepository()).
				CreateOrganization(a.context(cmd), &req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), org)
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "organization name")
	cmd.Flags().StringVar(&req.PlanType, "plan", model.PlanFree, "plan type (free, pro, enterprise)")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newSetRoleCmd(a *app) *cobra.Command {
	var email, role string
	cmd := &cobra.Command{
		Use:   "set-role",
		Short: "Change a user's role (member or admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != model.RoleAdmin && role != model.RoleMember {
				return fmt.Errorf("set-role: unknown role %q", role)
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}
			ctx := a.context(cmd)
			users := repository.NewGormUserRepository()
			user, err := users.FindByEmail(ctx, db, email)
			if err != nil {
				return fmt.Errorf("set-role: %s: %w", email, err)
			}
			if err := users.Update(ctx, db, user.ID, map[string]interface{}{"role": role}); err != nil {
				return fmt.Errorf("set-role: %w", err)
			}
			a.logger.Info("User role updated", "user_id", user.ID.String(), "role", role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user e-mail")
	cmd.Flags().StringVar(&role, "role", model.RoleAdmin, "new role")
	cmd.MarkFlagRequired("email")
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	if v == nil {
		return errors.New("nothing to print")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
