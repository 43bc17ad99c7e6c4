package contact

import (
	"context"
	"testing"
	"time"

	"pizzeria/database"
	contactRepo "pizzeria/database/repository/contact"
	"pizzeria/models"
	"pizzeria/services/notification"
	"pizzeria/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	jobs []notification.Job
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, job notification.Job) {
	d.jobs = append(d.jobs, job)
}

func TestCreateAndList(t *testing.T) {
	d := &recordingDispatcher{}
	svc := NewService(contactRepo.NewContactRepo(database.NewMemoryStore()), d, nil)
	clock := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	ctx := context.Background()

	tests := []struct {
		name  string
		req   models.ContactRequest
		field string
	}{
		{"missing name", models.ContactRequest{Message: "hola"}, "name"},
		{"missing message", models.ContactRequest{Name: "Ana"}, "message"},
		{"bad email", models.ContactRequest{Name: "Ana", Message: "hola", Email: "not-an-email"}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			var vErr *utils.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
	assert.Empty(t, d.jobs)

	first, err := svc.Create(ctx, models.ContactRequest{Name: "Ana", Email: "ana@example.com", Message: "¿Tienen fechas en mayo?"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, models.ContactRequest{Name: "Luis", Phone: "912345678", Message: "Cotización para 30"})
	require.NoError(t, err)

	require.Len(t, d.jobs, 2)
	assert.Equal(t, notification.KindContactReceived, d.jobs[0].Kind)
	assert.Equal(t, first.ID, d.jobs[0].Contact.ID)

	list, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
}
