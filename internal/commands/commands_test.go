package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/holdco_books/internal/coa"
	"github.com/SscSPs/holdco_books/internal/core/domain"
)

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{
		"migrate", "create-entity", "register-document", "seed-chart",
		"export-chart", "create-user", "purge-entries",
	}, names)
	assert.True(t, root.SilenceUsage)
}

func TestMigrateCommand_RejectsUnknownDirection(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"migrate", "sideways"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestPurgeEntries_RequiresIDs(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"purge-entries", "--entity", "ent-1", "--as", "admin"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	require.Error(t, root.Execute())
}

func TestBuildEntity(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	entity, err := buildEntity("", "  Holdco Parent LLC ", true, now)
	require.NoError(t, err)
	assert.NotEmpty(t, entity.EntityID)
	assert.Equal(t, "Holdco Parent LLC", entity.Name)
	assert.True(t, entity.IsActive)
	assert.Equal(t, adminActor, entity.CreatedBy)
	assert.Equal(t, now, entity.LastUpdatedAt)

	fixed, err := buildEntity("ent-7", "Sub", false, now)
	require.NoError(t, err)
	assert.Equal(t, "ent-7", fixed.EntityID)
	assert.False(t, fixed.IsActive)

	_, err = buildEntity("", "   ", true, now)
	assert.Error(t, err)
}

func TestLoadChart_Default(t *testing.T) {
	accounts, err := loadChart("")
	require.NoError(t, err)
	assert.Equal(t, len(coa.DefaultChart()), len(accounts))
}

func TestLoadChart_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.csv")
	want := []domain.Account{{
		AccountNumber: "1010",
		Name:          "Operating Cash",
		AccountType:   domain.Asset,
		NormalBalance: domain.NormalDebit,
		AllowPosting:  true,
		IsActive:      true,
	}}
	var buf bytes.Buffer
	require.NoError(t, coa.WriteAccounts(&buf, want))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := loadChart(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1010", got[0].AccountNumber)
	assert.Equal(t, domain.Asset, got[0].AccountType)
}

func TestLoadChart_MissingFile(t *testing.T) {
	_, err := loadChart(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
