package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/okrtree/internal/db"
	"github.com/alexanderramin/okrtree/internal/remote"
	"github.com/alexanderramin/okrtree/internal/session"
	"github.com/alexanderramin/okrtree/internal/teatest"
	"github.com/alexanderramin/okrtree/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// testApp builds an App backed by a fake OKR API with one signed-in user
// (E01 / Ada Lovelace) and an in-memory session store.
func testApp(t *testing.T) (*App, *testutil.FakeAPI) {
	t.Helper()

	fake := testutil.NewFakeAPI(t)
	fake.AddUser("E01", "Ada Lovelace", "s3cret-pass")

	client := remote.New(fake.URL(), zerolog.Nop())
	auth, err := client.Login(context.Background(), "E01", "s3cret-pass")
	require.NoError(t, err)

	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	app := &App{
		Remote:      client,
		Sessions:    session.NewStore(database),
		CurrentUser: auth.User,
	}
	return app, fake
}

// TestDriver wraps teatest.Driver with okrtree-specific inspection methods.
// It provides access to appModel internals (view stack, shared state, the
// tree controller) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App. It constructs the
// appModel, sets terminal size, and drains Init() (which loads roots, the
// selected tree, and the user map from the fake backend).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Tree returns the tree controller at the bottom of the stack.
func (d *TestDriver) Tree() *treeView {
	return d.appModel().viewStack[0].(*treeView)
}

// Notice returns the transient notice line.
func (d *TestDriver) Notice() string {
	return d.appModel().notice
}

// IsQuitting reports whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}
