package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusgo-backend/models"
	"campusgo-backend/repository"
)

func newErrandFixture(t *testing.T) (*testEnv, *ErrandService, *models.User, *models.User, *models.ErrandTask) {
	t.Helper()
	e := newTestEnv(t)
	svc := NewErrandService(e.errands, e.users)

	owner := e.mustUser(t, "owner")
	helper := e.mustUser(t, "helper")

	task, err := svc.CreateTask(owner.ID, "Pick up package", "Parcel locker at the library", 5, "Main Library", time.Now().Add(48*time.Hour))
	require.NoError(t, err)
	return e, svc, owner, helper, task
}

func TestErrandCreateValidation(t *testing.T) {
	e := newTestEnv(t)
	svc := NewErrandService(e.errands, e.users)
	owner := e.mustUser(t, "owner")
	deadline := time.Now().Add(time.Hour)

	_, err := svc.CreateTask(owner.ID, "", "desc", 5, "loc", deadline)
	assert.Error(t, err)

	_, err = svc.CreateTask(owner.ID, "title", "desc", -1, "loc", deadline)
	assert.Error(t, err)

	_, err = svc.CreateTask(owner.ID, "title", "desc", 5, "loc", time.Now().Add(-time.Hour))
	assert.Error(t, err)
}

func TestErrandLifecycle(t *testing.T) {
	e, svc, owner, helper, task := newErrandFixture(t)

	assert.Equal(t, models.ErrandOpen, task.Status)
	assert.Equal(t, "owner", task.OwnerName)

	resp, err := svc.Respond(task.ID, helper.ID, "I can do this today")
	require.NoError(t, err)

	t.Run("duplicate response rejected", func(t *testing.T) {
		_, err := svc.Respond(task.ID, helper.ID, "again")
		assert.ErrorIs(t, err, ErrAlreadyResponded)
	})

	t.Run("owner cannot respond", func(t *testing.T) {
		_, err := svc.Respond(task.ID, owner.ID, "my own task")
		assert.Error(t, err)
	})

	t.Run("only owner reads responses", func(t *testing.T) {
		_, err := svc.ListResponses(task.ID, helper.ID)
		assert.ErrorIs(t, err, ErrTaskNotFound)

		resps, err := svc.ListResponses(task.ID, owner.ID)
		require.NoError(t, err)
		require.Len(t, resps, 1)
		assert.Equal(t, "helper", resps[0].UserName)
	})

	require.NoError(t, svc.Accept(task.ID, resp.ID, owner.ID))

	inProgress, err := svc.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ErrandInProgress, inProgress.Status)
	require.NotNil(t, inProgress.AssigneeID)
	assert.Equal(t, helper.ID, *inProgress.AssigneeID)
	assert.Equal(t, "helper", inProgress.AssigneeName)

	t.Run("responses closed after accept", func(t *testing.T) {
		late := e.mustUser(t, "late")
		_, err := svc.Respond(task.ID, late.ID, "too late")
		assert.ErrorIs(t, err, ErrTaskNotOpen)
	})

	t.Run("owner cannot complete", func(t *testing.T) {
		assert.ErrorIs(t, svc.Complete(task.ID, owner.ID), ErrNotAssignee)
	})

	require.NoError(t, svc.Complete(task.ID, helper.ID))

	done, err := svc.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ErrandCompleted, done.Status)
}

func TestErrandUpdateAndCancelOnlyWhileOpen(t *testing.T) {
	_, svc, owner, helper, task := newErrandFixture(t)

	t.Run("only owner edits", func(t *testing.T) {
		_, err := svc.UpdateTask(task.ID, helper.ID, "x", "y", 1, "z", time.Now().Add(time.Hour))
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	updated, err := svc.UpdateTask(task.ID, owner.ID, "Pick up two packages", task.Description, 8, task.Location, task.Deadline)
	require.NoError(t, err)
	assert.Equal(t, "Pick up two packages", updated.Title)
	assert.Equal(t, 8.0, updated.Reward)

	resp, err := svc.Respond(task.ID, helper.ID, "on it")
	require.NoError(t, err)
	require.NoError(t, svc.Accept(task.ID, resp.ID, owner.ID))

	t.Run("in-progress task frozen", func(t *testing.T) {
		_, err := svc.UpdateTask(task.ID, owner.ID, "late edit", "d", 1, "l", time.Now().Add(time.Hour))
		assert.ErrorIs(t, err, ErrTaskNotOpen)
		assert.ErrorIs(t, svc.CancelTask(task.ID, owner.ID), ErrTaskNotOpen)
	})

	t.Run("cancelled task disappears from listings", func(t *testing.T) {
		open, err := svc.CreateTask(owner.ID, "Another task", "desc", 3, "Dorm B", time.Now().Add(time.Hour))
		require.NoError(t, err)
		require.NoError(t, svc.CancelTask(open.ID, owner.ID))

		_, err = svc.GetTask(open.ID)
		assert.ErrorIs(t, err, ErrTaskNotFound)

		page, err := svc.ListTasks(repository.ErrandFilter{}, 0, 50)
		require.NoError(t, err)
		for _, item := range page.Tasks {
			assert.NotEqual(t, open.ID, item.ID)
		}
	})
}

func TestErrandListFilters(t *testing.T) {
	e := newTestEnv(t)
	svc := NewErrandService(e.errands, e.users)
	owner := e.mustUser(t, "owner")
	deadline := time.Now().Add(24 * time.Hour)

	_, err := svc.CreateTask(owner.ID, "Print thesis", "30 pages, double sided", 4, "Copy Center", deadline)
	require.NoError(t, err)
	_, err = svc.CreateTask(owner.ID, "Grocery run", "Milk and eggs", 6, "Campus Market", deadline)
	require.NoError(t, err)

	page, err := svc.ListTasks(repository.ErrandFilter{Search: "thesis"}, 0, 50)
	require.NoError(t, err)
	require.Len(t, page.Tasks, 1)
	assert.Equal(t, "Print thesis", page.Tasks[0].Title)
	assert.Equal(t, int64(1), page.Total)

	all, err := svc.ListTasks(repository.ErrandFilter{Status: models.ErrandOpen}, 0, 50)
	require.NoError(t, err)
	assert.Len(t, all.Tasks, 2)
}
