package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"timehair/internal/database"
	"timehair/internal/domain"
	"timehair/internal/repository"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "timehairctl", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{{"backup"}, {"restore"}, {"path"}, {"ledger", "summary"}, {"ledger", "daily"}}

	for _, args := range commands {
		t.Run(args[len(args)-1], func(t *testing.T) {
			subCmd, _, err := cmd.Find(args)
			require.NoError(t, err)
			assert.Equal(t, args[len(args)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("db"))
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "--db", filepath.Join(t.TempDir(), "x.db"), "--format", "xml", "path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

// seededDB creates a file store with two entries on 2026-03-05 and one on
// 2026-03-07.
func seededDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timehair.db")
	store, err := database.Open(path, "silent")
	require.NoError(t, err)
	defer store.Close()

	day := func(d, h int) time.Time { return time.Date(2026, 3, d, h, 0, 0, 0, time.Local) }
	entries := []domain.LedgerEntry{
		{StaffID: "s1", StaffName: "원장", Services: []domain.SelectedService{{Name: "커트", Price: 20000}}, TotalPrice: 20000, CompletedAt: day(5, 10)},
		{StaffID: "s2", StaffName: "직원1", Services: []domain.SelectedService{{Name: "펌", Price: 80000}}, TotalPrice: 80000, CompletedAt: day(5, 14)},
		{StaffID: "s1", StaffName: "원장", Services: []domain.SelectedService{{Name: "커트", Price: 20000}}, TotalPrice: 20000, CompletedAt: day(7, 11)},
	}
	err = store.Tx(context.Background(), func(tx *gorm.DB) error {
		repo := repository.NewLedgerRepository(tx)
		for i := range entries {
			entries[i].ID = uuid.NewString()
			entries[i].SeatID = 1
			entries[i].MemberName = repository.GuestName
			entries[i].CreatedAt = entries[i].CompletedAt
			if err := repo.Create(context.Background(), &entries[i]); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLedgerSummary_JSON(t *testing.T) {
	db := seededDB(t)

	out, err := execute(t, "--db", db, "--format", "json", "ledger", "summary", "--date", "2026-03-05")
	require.NoError(t, err)

	var summary domain.LedgerSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 100000, summary.TotalRevenue)
	assert.Equal(t, 2, summary.TotalCount)
	require.Len(t, summary.ByStaff, 2)
	assert.Equal(t, "직원1", summary.ByStaff[0].StaffName)
}

func TestLedgerSummary_RangeAndStaff(t *testing.T) {
	db := seededDB(t)

	out, err := execute(t, "--db", db, "--format", "yaml", "ledger", "summary", "--from", "2026-03-01", "--to", "2026-03-31", "--staff", "s1")
	require.NoError(t, err)

	var summary domain.LedgerSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 40000, summary.TotalRevenue)
	assert.Equal(t, 2, summary.TotalCount)
}

func TestLedgerSummary_BadDate(t *testing.T) {
	db := seededDB(t)

	_, err := execute(t, "--db", db, "ledger", "summary", "--date", "03/05/2026")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLedgerDaily_Text(t *testing.T) {
	db := seededDB(t)

	out, err := execute(t, "--db", db, "ledger", "daily", "--year", "2026", "--month", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "DATE")
	assert.Contains(t, out, "2026-03-05")
	assert.Contains(t, out, "100000")
	assert.Contains(t, out, "2026-03-07")
}

func TestLedgerDaily_InvalidMonth(t *testing.T) {
	db := seededDB(t)

	_, err := execute(t, "--db", db, "ledger", "daily", "--year", "2026", "--month", "13")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBackupRestorePath(t *testing.T) {
	db := seededDB(t)
	backup := filepath.Join(t.TempDir(), "backups", "copy.db")

	out, err := execute(t, "--db", db, "backup", backup)
	require.NoError(t, err)
	assert.Contains(t, out, backup)
	_, err = os.Stat(backup)
	require.NoError(t, err)

	out, err = execute(t, "--db", db, "--format", "json", "path")
	require.NoError(t, err)
	var info struct {
		Path string `json:"path"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	abs, _ := filepath.Abs(db)
	assert.Equal(t, abs, info.Path)

	_, err = execute(t, "--db", db, "restore", backup)
	require.NoError(t, err)

	out, err = execute(t, "--db", db, "--format", "json", "ledger", "daily", "--year", "2026", "--month", "3")
	require.NoError(t, err)
	var totals []domain.DailyTotal
	require.NoError(t, json.Unmarshal([]byte(out), &totals))
	assert.Len(t, totals, 2)
}

func TestRestore_RejectsNonSQLite(t *testing.T) {
	db := seededDB(t)
	bogus := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(bogus, []byte("not a database at all"), 0o600))

	_, err := execute(t, "--db", db, "restore", bogus)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestEmptyDB(t *testing.T) {
	_, err := execute(t, "--db", "", "path")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
