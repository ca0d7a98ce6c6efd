package cmd

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnibridge/internal/script"
)

func parseTaskFlags(t *testing.T, args []string) (*taskAttributeFlags, *cobra.Command) {
	t.Helper()
	var attrs taskAttributeFlags
	cmd := &cobra.Command{Use: "test"}
	attrs.register(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return &attrs, cmd
}

func TestTaskAttributeFlags_Input(t *testing.T) {
	attrs, cmd := parseTaskFlags(t, []string{
		"--note", "call first",
		"--project", "Errands",
		"--tags", "home, waiting",
		"--due", "2026-09-01",
		"--flagged",
		"--estimate", "30",
		"--repeat-unit", "weeks",
		"--repeat-every", "2",
		"--repeat-method", "due-after-completion",
	})

	input, err := attrs.input(cmd)
	require.NoError(t, err)

	assert.Equal(t, "call first", input.Note)
	assert.Equal(t, "Errands", input.ProjectName)
	assert.Equal(t, []string{"home", "waiting"}, input.Tags)
	assert.True(t, input.DueDate.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)))
	assert.True(t, input.Flagged)
	assert.True(t, input.FlaggedSet)
	assert.Equal(t, 30, input.EstimatedMinutes)

	require.NotNil(t, input.Repetition)
	assert.Equal(t, script.UnitWeekly, input.Repetition.Unit)
	assert.Equal(t, 2, input.Repetition.Steps)
	assert.Equal(t, script.MethodDueAfterCompletion, input.Repetition.Method)
}

func TestTaskAttributeFlags_FlaggedUnset(t *testing.T) {
	attrs, cmd := parseTaskFlags(t, []string{"--note", "n"})

	input, err := attrs.input(cmd)
	require.NoError(t, err)

	assert.False(t, input.FlaggedSet)
	assert.Nil(t, input.Repetition)
	assert.True(t, input.DueDate.IsZero())
}

func TestTaskAttributeFlags_BadDate(t *testing.T) {
	attrs, cmd := parseTaskFlags(t, []string{"--due", "next tuesday"})

	_, err := attrs.input(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "due")
}

func TestTaskAttributeFlags_BadRepetitionUnit(t *testing.T) {
	attrs, cmd := parseTaskFlags(t, []string{"--repeat-unit", "fortnights"})

	_, err := attrs.input(cmd)
	require.Error(t, err)
}
