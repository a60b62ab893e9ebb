package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/alexanderramin/okrtree/internal/domain"
	"github.com/alexanderramin/okrtree/internal/remote"
	"github.com/alexanderramin/okrtree/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and captures stdout.
func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestLoginCmdStoresSession(t *testing.T) {
	app, _ := testApp(t)

	out, err := execute(t, app, "login", "--emp-id", "E01", "--password", "s3cret-pass")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as")
	assert.Contains(t, out, "Ada Lovelace")

	snap, err := app.Sessions.Load()
	require.NoError(t, err)
	assert.Equal(t, "E01", snap.EmpID)
	assert.NotEmpty(t, snap.Token)
}

func TestLoginCmdRejectsBadPassword(t *testing.T) {
	app, _ := testApp(t)

	// A good login first, so the rejection has a snapshot to invalidate.
	_, err := execute(t, app, "login", "--emp-id", "E01", "--password", "s3cret-pass")
	require.NoError(t, err)

	_, err = execute(t, app, "login", "--emp-id", "E01", "--password", "wrong-pass")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid employee ID or password")

	_, err = app.Sessions.Load()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestRegisterCmdSignsIn(t *testing.T) {
	app, _ := testApp(t)

	out, err := execute(t, app, "register",
		"--emp-id", "E02",
		"--name", "Grace Hopper",
		"--email", "grace@example.com",
		"--password", "longenough")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered")

	snap, err := app.Sessions.Load()
	require.NoError(t, err)
	assert.Equal(t, "E02", snap.EmpID)
}

func TestRegisterCmdValidatesInput(t *testing.T) {
	app, _ := testApp(t)

	// Password below the minimum length never reaches the backend.
	_, err := execute(t, app, "register",
		"--emp-id", "E02",
		"--name", "Grace Hopper",
		"--email", "grace@example.com",
		"--password", "short")
	assert.Error(t, err)
}

func TestLogoutCmdClearsSession(t *testing.T) {
	app, _ := testApp(t)
	_, err := execute(t, app, "login", "--emp-id", "E01", "--password", "s3cret-pass")
	require.NoError(t, err)

	out, err := execute(t, app, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")

	_, err = app.Sessions.Load()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestWhoamiCmd(t *testing.T) {
	app, fake := testApp(t)

	_, err := execute(t, app, "whoami")
	assert.Error(t, err, "no session yet")

	_, err = execute(t, app, "login", "--emp-id", "E01", "--password", "s3cret-pass")
	require.NoError(t, err)

	out, err := execute(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "E01")

	// Backend down: the stored snapshot still answers.
	fake.FailPath("/users/E01", 500)
	out, err = execute(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "cached")
}

func TestTasksCmd(t *testing.T) {
	app, fake := testApp(t)
	root := fake.AddObjective("Grow revenue", "")

	_, err := app.Remote.CreateTask(context.Background(), root, remote.TaskInput{
		Title: "Close Q4 pipeline", Description: "pipeline", DueDate: "2026-12-01",
		Status: domain.TaskPending, AssignedTo: []string{"E01"},
	})
	require.NoError(t, err)

	_, err = execute(t, app, "login", "--emp-id", "E01", "--password", "s3cret-pass")
	require.NoError(t, err)

	out, err := execute(t, app, "tasks")
	require.NoError(t, err)
	assert.Contains(t, out, "Close Q4 pipeline")

	out, err = execute(t, app, "tasks", "--emp-id", "E99")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks assigned")
}

func TestTreeCmdPrintsOutline(t *testing.T) {
	app, fake := testApp(t)
	root := fake.AddObjective("Grow revenue", "")
	fake.AddObjective("EMEA expansion", root)
	fake.AddObjective("Improve retention", "")

	out, err := execute(t, app, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "Grow revenue")
	assert.Contains(t, out, "EMEA expansion")
	assert.Contains(t, out, "Improve retention")
	assert.Contains(t, out, "%")

	out, err = execute(t, app, "tree", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Grow revenue")
	assert.NotContains(t, out, "Improve retention")
}
