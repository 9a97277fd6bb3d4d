package audit

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListByEntity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewAuditService(store.Audit())

	reason := "late badge"
	for _, e := range []audit.Entry{
		{Action: audit.ActionOverride, ActorUserID: "admin", EntityType: audit.EntityAttendance, EntityID: "att-1", Reason: &reason},
		{Action: audit.ActionApprove, ActorUserID: "admin", EntityType: audit.EntityLeave, EntityID: "leave-1"},
		{Action: audit.ActionOverride, ActorUserID: "admin", EntityType: audit.EntityAttendance, EntityID: "att-1"},
	} {
		_, err := store.Audit().Append(ctx, e)
		require.NoError(t, err)
	}

	got, err := svc.ListByEntity(ctx, audit.ListFilter{EntityType: audit.EntityAttendance, EntityID: "att-1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "late badge", *got[0].Reason)
	assert.True(t, !got[1].CreatedAt.Before(got[0].CreatedAt))

	_, err = svc.ListByEntity(ctx, audit.ListFilter{EntityType: " "})
	assert.ErrorIs(t, err, audit.ErrEntityRequired)
}
