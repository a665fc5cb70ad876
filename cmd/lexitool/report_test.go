package main

import (
	"bytes"
	"context"
	"testing"

	"go_5_lexicard/internal/model"
	"go_5_lexicard/internal/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupReportDB(t *testing.T) (*gorm.DB, *sqlx.DB) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(gdb))
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return gdb, sqlx.NewDb(sqlDB, "sqlite3")
}

func TestBuildReport(t *testing.T) {
	gdb, db := setupReportDB(t)

	audio := "https://example.com/a.mp3"
	def := "a fruit"
	require.NoError(t, gdb.Create([]*model.GlobalWord{
		{ID: uuid.New(), Word: "apple", AudioURL: &audio, Definition: &def},
		{ID: uuid.New(), Word: "pear", Definition: &def},
		{ID: uuid.New(), Word: "plum"},
	}).Error)

	alpha := &model.Organization{ID: uuid.New(), Name: "Alpha", PlanType: model.PlanFree}
	beta := &model.Organization{ID: uuid.New(), Name: "Beta", PlanType: model.PlanPro}
	require.NoError(t, gdb.Create([]*model.Organization{beta, alpha}).Error)

	userID := uuid.New()
	require.NoError(t, gdb.Create(&model.User{ID: userID, Email: "a@example.com", PasswordHash: "x", OrganizationID: alpha.ID, Role: model.RoleMember}).Error)
	require.NoError(t, gdb.Create(&model.TenantWord{ID: uuid.New(), Word: "apple", Translation: "maçã", OrganizationID: alpha.ID, CreatedBy: userID}).Error)
	require.NoError(t, gdb.Create([]*model.ProgressRecord{
		{ID: uuid.New(), UserID: userID, WordID: uuid.New(), OrganizationID: alpha.ID, Acertos: 3},
		{ID: uuid.New(), UserID: userID, WordID: uuid.New(), OrganizationID: alpha.ID, Acertos: 1},
	}).Error)

	r, err := buildReport(context.Background(), db)
	require.NoError(t, err)

	assert.Equal(t, wordCoverage{Total: 3, WithAudio: 1, WithDefinition: 2}, r.Global)
	require.Len(t, r.Organizations, 2)
	assert.Equal(t, "Alpha", r.Organizations[0].Name)
	assert.Equal(t, organizationUsage{ID: alpha.ID.String(), Name: "Alpha", Users: 1, Words: 1, Learned: 2, Mastered: 1}, r.Organizations[0])
	assert.Equal(t, organizationUsage{ID: beta.ID.String(), Name: "Beta"}, r.Organizations[1])
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	err := writeReport(&buf, &usageReport{
		Global:        wordCoverage{Total: 10, WithAudio: 4, WithDefinition: 7},
		Organizations: []organizationUsage{{ID: "id-1", Name: "Alpha", Users: 2, Words: 5, Learned: 3, Mastered: 1}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Global words: 10 (audio 4, definition 7)")
	assert.Contains(t, out, "ORGANIZATION")
	assert.Regexp(t, `Alpha\s+id-1\s+2\s+5\s+3\s+1`, out)
}

func TestRootCmd_RequiredFlags(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "異常系: seed に --file がない", args: []string{"seed"}},
		{name: "異常系: enrich に --user がない", args: []string{"enrich", "--org", uuid.NewString()}},
		{name: "異常系: create-org に --name がない", args: []string{"create-org"}},
		{name: "異常系: set-role に --email がない", args: []string{"set-role"}},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "required flag")
		})
	}
}
