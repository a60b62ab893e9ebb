package remote_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/alexanderramin/okrtree/internal/domain"
	"github.com/alexanderramin/okrtree/internal/remote"
	"github.com/alexanderramin/okrtree/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newClient returns a logged-in client backed by a fresh fake store.
func newClient(t *testing.T) (*remote.Client, *testutil.FakeAPI) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	api.AddUser("E01", "Ada Lovelace", "s3cret-pass")

	c := remote.New(api.URL(), zerolog.Nop())
	_, err := c.Login(context.Background(), "E01", "s3cret-pass")
	require.NoError(t, err)
	return c, api
}

func TestLoginStoresToken(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddUser("E01", "Ada Lovelace", "s3cret-pass")
	c := remote.New(api.URL(), zerolog.Nop())

	auth, err := c.Login(context.Background(), "E01", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, "Ada Lovelace", auth.User.Name)
	assert.Equal(t, auth.Token, c.Token(), "client must forward the token on later calls")
}

func TestLoginRejectedIsUnauthorized(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.AddUser("E01", "Ada Lovelace", "s3cret-pass")
	c := remote.New(api.URL(), zerolog.Nop())

	_, err := c.Login(context.Background(), "E01", "wrong")
	require.Error(t, err)
	assert.True(t, remote.IsUnauthorized(err))
}

func TestMissingCredentialRejected(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	c := remote.New(api.URL(), zerolog.Nop())

	_, err := c.RootObjectives(context.Background())
	require.Error(t, err)
	assert.True(t, remote.IsUnauthorized(err))
}

func TestCreateRootForcesRootFields(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()

	parent := "99"
	created, err := c.CreateRootObjective(ctx, remote.ObjectiveInput{
		Title:       "Grow Revenue",
		Description: "Increase ARR",
		Level:       domain.LevelCompany,
		TreeLevel:   7,       // must be ignored
		ParentID:    &parent, // must be ignored
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created.TreeLevel)
	assert.Nil(t, created.ParentID)
	assert.Equal(t, 0, created.ProgressPercentage)
}

func TestSubObjectiveTreeLevel(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()

	root, err := c.CreateRootObjective(ctx, remote.ObjectiveInput{
		Title: "Grow Revenue", Description: "d", Level: domain.LevelCompany,
	})
	require.NoError(t, err)

	sub, err := c.CreateSubObjective(ctx, root.ID, remote.ObjectiveInput{
		Title: "Expand EMEA", Description: "d", Level: domain.LevelDepartment,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sub.TreeLevel)
	require.NotNil(t, sub.ParentID)
	assert.Equal(t, root.ID, *sub.ParentID)

	tree, err := c.ObjectiveTree(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "Expand EMEA", tree.Children[0].Title)
}

func TestRootObjectivesAppendOrder(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := c.CreateRootObjective(ctx, remote.ObjectiveInput{
			Title: title, Description: "d", Level: domain.LevelCompany,
		})
		require.NoError(t, err)
	}

	roots, err := c.RootObjectives(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 3)
	assert.Equal(t, "Third", roots[2].Title, "latest root must be the last element")
}

func TestCascadeDelete(t *testing.T) {
	c, api := newClient(t)
	ctx := context.Background()

	rootID := api.AddObjective("Root", "")
	subID := api.AddObjective("Sub", rootID)
	api.AddTask(subID, "Hire regional lead")

	require.NoError(t, c.DeleteObjective(ctx, rootID))
	assert.Equal(t, 0, api.ObjectiveCount())
	assert.Equal(t, 0, api.TaskCount(), "tasks under the deleted subtree must be gone")

	_, err := c.TasksByObjective(ctx, subID)
	assert.True(t, remote.IsNotFound(err) || err == nil)
}

func TestNotFoundCategorized(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()

	_, err := c.ObjectiveTree(ctx, "12345")
	require.Error(t, err)
	assert.True(t, remote.IsNotFound(err))
	assert.False(t, remote.IsUnauthorized(err))
}

func TestTransportFailureCategorized(t *testing.T) {
	c := remote.New("http://127.0.0.1:1", zerolog.Nop())
	_, err := c.RootObjectives(context.Background())
	require.Error(t, err)

	assert.False(t, remote.IsNotFound(err))
	assert.False(t, remote.IsUnauthorized(err))
}

func TestForcedServerError(t *testing.T) {
	c, api := newClient(t)
	api.FailPath("/objectives/trees", http.StatusInternalServerError)

	_, err := c.RootObjectives(context.Background())
	require.Error(t, err)
	assert.False(t, remote.IsNotFound(err))

	api.ClearFailures()
	_, err = c.RootObjectives(context.Background())
	assert.NoError(t, err)
}

func TestTaskLifecycle(t *testing.T) {
	c, api := newClient(t)
	ctx := context.Background()
	objID := api.AddObjective("Root", "")

	created, err := c.CreateTask(ctx, objID, remote.TaskInput{
		Title:       "Hire regional lead",
		Description: "Open the req",
		DueDate:     "2025-03-01",
		Status:      domain.TaskPending,
		AssignedTo:  []string{"E01", "E01", "E02"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, objID, created.ObjectiveID)
	assert.Equal(t, []string{"E01", "E02"}, created.AssignedTo, "duplicates suppressed at selection time")

	listed, err := c.TasksByObjective(ctx, objID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	created.ProgressPercentage = 60
	updated, err := c.UpdateTask(ctx, created.ID, remote.TaskInput{
		Title: created.Title, Description: created.Description, DueDate: created.DueDate,
		Status: domain.TaskInProgress, AssignedTo: created.AssignedTo, ProgressPercentage: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, updated.ProgressPercentage)
	assert.Equal(t, domain.TaskInProgress, updated.Status)

	require.NoError(t, c.DeleteTask(ctx, created.ID))
	listed, err = c.TasksByObjective(ctx, objID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestProgressClampedBeforeSend(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()

	root, err := c.CreateRootObjective(ctx, remote.ObjectiveInput{
		Title: "Grow Revenue", Description: "d", Level: domain.LevelCompany,
		ProgressPercentage: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, root.ProgressPercentage, "over-range progress is clamped, never persisted")

	created, err := c.CreateTask(ctx, root.ID, remote.TaskInput{
		Title: "T", Description: "d", DueDate: "2025-03-01",
		Status: domain.TaskPending, ProgressPercentage: -10,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created.ProgressPercentage)

	updated, err := c.UpdateTask(ctx, created.ID, remote.TaskInput{
		Title: "T", Description: "d", DueDate: "2025-03-01",
		Status: domain.TaskInProgress, ProgressPercentage: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, updated.ProgressPercentage)

	saved, err := c.UpdateObjective(ctx, root.ID, remote.ObjectiveInput{
		Title: "Grow Revenue", Description: "d", Level: domain.LevelCompany,
		ProgressPercentage: -40,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, saved.ProgressPercentage)
}

func TestUsersMapAndUserTasks(t *testing.T) {
	c, api := newClient(t)
	ctx := context.Background()
	api.AddUser("E02", "Grace Hopper", "pw-pw-pw")

	m, err := c.UsersMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", m.NameFor("E01"))
	assert.Equal(t, "Grace Hopper", m.NameFor("E02"))

	objID := api.AddObjective("Root", "")
	_, err = c.CreateTask(ctx, objID, remote.TaskInput{
		Title: "T", Description: "d", DueDate: "2025-03-01",
		Status: domain.TaskPending, AssignedTo: []string{"E02"},
	})
	require.NoError(t, err)

	tasks, err := c.UserTasks(ctx, "E02")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "T", tasks[0].Title)

	tasks, err = c.UserTasks(ctx, "E01")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
