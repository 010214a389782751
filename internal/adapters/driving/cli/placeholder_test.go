package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sigplace/internal/core/domain"
)

func TestPlaceholderCmd_HasSubcommands(t *testing.T) {
	commandNames := make([]string, 0)
	for _, cmd := range placeholderCmd.Commands() {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.ElementsMatch(t,
		[]string{"add", "list", "move", "resize", "reorder", "remove"},
		commandNames,
	)
}

func TestPlaceholderAddCmd_CentresOnPage(t *testing.T) {
	env := setupTestServices(t)
	session, alice, _ := env.newSession(t)

	out, err := execute(t, "placeholder", "add", session.ID, alice.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "for Alice (#1) on page 1")
	assert.Contains(t, out, "x=256.00 y=371.00 w=100.00 h=50.00")
}

func TestPlaceholderAddCmd_ScaledCentre(t *testing.T) {
	env := setupTestServices(t)
	session, alice, _ := env.newSession(t)

	out, err := execute(t, "placeholder", "add", session.ID, alice.ID,
		"--x", "400", "--y", "400", "--scale", "2", "--page", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "on page 2")
	assert.Contains(t, out, "x=175.00 y=579.50 w=50.00 h=25.00")
}

func TestPlaceholderAddCmd_OnePerRecipient(t *testing.T) {
	env := setupTestServices(t)
	session, alice, _ := env.newSession(t)
	_, err := execute(t, "placeholder", "add", session.ID, alice.ID)
	require.NoError(t, err)

	_, err = execute(t, "placeholder", "add", session.ID, alice.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRecipientAssigned)
}

func TestPlaceholderAddCmd_PageOutOfRange(t *testing.T) {
	env := setupTestServices(t)
	session, alice, _ := env.newSession(t)

	_, err := execute(t, "placeholder", "add", session.ID, alice.ID, "--page", "9")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
}

func TestPlaceholderMoveCmd(t *testing.T) {
	env := setupTestServices(t)
	session, alice, _ := env.newSession(t)
	_, err := execute(t, "placeholder", "add", session.ID, alice.ID)
	require.NoError(t, err)
	id := env.session(t, session.ID).Placeholders[0].ID

	out, err := execute(t, "placeholder", "move", session.ID, id, "--x", "10", "--y", "20")

	require.NoError(t, err)
	assert.Contains(t, out, "Moved placeholder "+id+": x=10.00 y=722.00 w=100.00 h=50.00")
}

func TestPlaceholderMoveCmd_RequiresFlags(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "placeholder", "move", "sess-1", "ph-1", "--x", "10")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestPlaceholderResizeCmd_KeepsTopLeft(t *testing.T) {
	env := setupTestServices(t)
	session, alice, _ := env.newSession(t)
	_, err := execute(t, "placeholder", "add", session.ID, alice.ID)
	require.NoError(t, err)
	id := env.session(t, session.ID).Placeholders[0].ID

	out, err := execute(t, "placeholder", "resize", session.ID, id, "--width", "200", "--height", "80")

	require.NoError(t, err)
	assert.Contains(t, out, "x=256.00 y=341.00 w=200.00 h=80.00")

	p := env.session(t, session.ID).Placeholders[0]
	assert.InDelta(t, 421, p.Y+p.Height, 1e-9)
}

func TestPlaceholderResizeCmd_RejectsNonPositive(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "placeholder", "resize", "sess-1", "ph-1", "--width", "0", "--height", "10")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlaceholderReorderAndRemove(t *testing.T) {
	env := setupTestServices(t)
	session, alice, bob := env.newSession(t)
	_, err := execute(t, "placeholder", "add", session.ID, alice.ID)
	require.NoError(t, err)
	_, err = execute(t, "placeholder", "add", session.ID, bob.ID, "--page", "2")
	require.NoError(t, err)

	var bobID string
	for _, p := range env.session(t, session.ID).Placeholders {
		if p.RecipientID == bob.ID {
			bobID = p.ID
		}
	}

	out, err := execute(t, "placeholder", "reorder", session.ID, bobID, "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "#1 "+bobID)
	assert.Contains(t, lines[2], "Alice")

	out, err = execute(t, "placeholder", "remove", session.ID, bobID)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed placeholder "+bobID)
	got := env.session(t, session.ID)
	require.Len(t, got.Placeholders, 1)
	assert.Equal(t, 1, got.Placeholders[0].Order)
}

func TestPlaceholderReorderCmd_InvalidOrder(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "placeholder", "reorder", "sess-1", "ph-1", "zero")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlaceholderListCmd_Empty(t *testing.T) {
	env := setupTestServices(t)
	session, _, _ := env.newSession(t)

	out, err := execute(t, "placeholder", "list", session.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "Placeholders: none")
}
