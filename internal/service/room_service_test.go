package service

import (
	"context"
	"errors"
	"testing"

	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomAssignment(t *testing.T) {
	repos := memory.NewSet()
	svc := NewRoomService(repos.Rooms, repos.Users)
	ctx := context.Background()

	room, err := svc.Create(ctx, "101", models.RoomDoubleSharing)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "101", models.RoomTripleSharing)
	assert.ErrorIs(t, err, ErrConflict)
	_, err = svc.Create(ctx, "102", "Single")
	assert.ErrorIs(t, err, ErrValidation)

	a := seedUser(t, repos.Users, "a@example.com", models.RoleStudent)
	b := seedUser(t, repos.Users, "b@example.com", models.RoleStudent)
	c := seedUser(t, repos.Users, "c@example.com", models.RoleStudent)

	_, err = svc.Assign(ctx, room.ID, a.ID)
	require.NoError(t, err)

	_, err = svc.Assign(ctx, room.ID, a.ID)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Student is already in this room", Message(err, ""))

	view, err := svc.Assign(ctx, room.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, view.Room.ID)
	assert.Len(t, view.Members, 2)
	assert.Equal(t, 0, view.AvailableBeds)

	_, err = svc.Assign(ctx, room.ID, c.ID)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "No available beds", Message(err, ""))

	_, err = svc.Assign(ctx, "missing", c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Assign(ctx, room.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	views, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Len(t, views[0].Members, 2)
	assert.Equal(t, 0, views[0].AvailableBeds)
}

func TestComplaintFlow(t *testing.T) {
	repos := memory.NewSet()
	notifier := &recordingNotifier{err: errors.New("telegram down")}
	svc := NewComplaintService(repos.Complaints, notifier)
	ctx := context.Background()

	homeless := &models.User{ID: "u1"}
	_, err := svc.Create(ctx, homeless, "leaking tap")
	assert.ErrorIs(t, err, ErrValidation)

	roomID := "room-1"
	housed := &models.User{ID: "u2", RoomID: &roomID}
	c, err := svc.Create(ctx, housed, "leaking tap")
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintPending, c.Status)
	assert.Equal(t, roomID, c.RoomID)
	// a failing notifier does not fail the complaint
	require.Len(t, notifier.filed, 1)
	assert.Equal(t, c.ID, notifier.filed[0])

	_, err = svc.UpdateStatus(ctx, c.ID, "Closed")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.UpdateStatus(ctx, "missing", models.ComplaintResolved)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.UpdateStatus(ctx, c.ID, models.ComplaintInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintInProgress, updated.Status)

	mine, err := svc.ListMine(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

type recordingNotifier struct {
	filed []string
	err   error
}

func (n *recordingNotifier) ComplaintFiled(ctx context.Context, user *models.User, c *models.Complaint) error {
	n.filed = append(n.filed, c.ID)
	return n.err
}
