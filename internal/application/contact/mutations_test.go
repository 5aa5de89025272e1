package contact_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	app "github.com/arkenix/client-portal/internal/application/contact"
	domain "github.com/arkenix/client-portal/internal/domain/contact"
)

func TestAddRecordStampsClientAndIgnoresPayloadIdentity(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	notifier := &countingNotifier{}
	uc := app.NewAddRecord(repo, notifier)

	rec, err := uc.Execute(context.Background(), app.AddRecordInput{
		ClientID: "client-a",
		Data: map[string]any{
			"id":             "forged",
			"client_id":      "client-b",
			"first_name":     "  Ada ",
			"official_email": "ada@example.com",
			"mobile_number":  float64(15550001234),
		},
	})
	require.NoError(t, err)
	require.Equal(t, "client-a", rec.ClientID)
	require.NotEqual(t, "forged", rec.ID)
	require.Equal(t, "Ada", rec.FirstName)
	require.Equal(t, "15550001234", rec.MobileNumber)
	require.Equal(t, []string{"client-a"}, notifier.clients)
}

func TestAddRecordValidates(t *testing.T) {
	t.Parallel()

	uc := app.NewAddRecord(&memoryRepo{}, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, app.AddRecordInput{ClientID: "client-a", Data: map[string]any{"first_name": "Ada"}})
	var invalid *app.InvalidRecordError
	require.True(t, errors.As(err, &invalid))
	require.ErrorIs(t, err, app.ErrInvalidRecord)
	require.Equal(t, "official_email", invalid.Errors[0].Field)

	_, err = uc.Execute(ctx, app.AddRecordInput{ClientID: "client-a", Data: map[string]any{"favourite_colour": "blue"}})
	require.ErrorIs(t, err, app.ErrNoUpdatableFields)

	_, err = uc.Execute(ctx, app.AddRecordInput{ClientID: "client-a", Data: map[string]any{"first_name": "  "}})
	require.ErrorIs(t, err, app.ErrNoUpdatableFields)

	_, err = uc.Execute(ctx, app.AddRecordInput{Data: map[string]any{"official_email": "a@b.co"}})
	require.ErrorIs(t, err, app.ErrMissingClientID)
}

func TestUpdateRecord(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	repo.add(domain.Record{ID: "r1", ClientID: "client-a", NormalizedRow: domain.NormalizedRow{OfficialEmail: "a@example.com"}})
	notifier := &countingNotifier{}
	uc := app.NewUpdateRecord(repo, notifier)
	ctx := context.Background()

	rec, err := uc.Execute(ctx, app.UpdateRecordInput{
		ClientID: "client-a",
		ID:       "r1",
		Data:     map[string]any{"title": " CEO ", "client_id": "client-b"},
	})
	require.NoError(t, err)
	require.Equal(t, "CEO", rec.Title)
	require.Equal(t, "client-a", rec.ClientID)
	require.Equal(t, []string{"client-a"}, notifier.clients)

	_, err = uc.Execute(ctx, app.UpdateRecordInput{ClientID: "client-b", ID: "r1", Data: map[string]any{"title": "CTO"}})
	require.ErrorIs(t, err, app.ErrRecordNotFound)

	_, err = uc.Execute(ctx, app.UpdateRecordInput{ClientID: "client-a", ID: "r1", Data: map[string]any{"id": "x"}})
	require.ErrorIs(t, err, app.ErrNoUpdatableFields)

	_, err = uc.Execute(ctx, app.UpdateRecordInput{ClientID: "client-a", ID: "r1", Data: map[string]any{"official_email": "nope"}})
	require.ErrorIs(t, err, app.ErrInvalidRecord)

	_, err = uc.Execute(ctx, app.UpdateRecordInput{ClientID: "client-a", ID: "r1", Data: map[string]any{"mobile_number": ""}})
	require.NoError(t, err)
}

func TestDeleteRecordsIsScopedToClient(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	repo.add(domain.Record{ID: "a1", ClientID: "client-a"})
	repo.add(domain.Record{ID: "b1", ClientID: "client-b"})
	notifier := &countingNotifier{}
	uc := app.NewDeleteRecords(repo, notifier)
	ctx := context.Background()

	out, err := uc.Execute(ctx, app.DeleteRecordsInput{ClientID: "client-a", IDs: []string{"b1"}})
	require.NoError(t, err)
	require.Equal(t, 0, out.Deleted)
	require.Equal(t, []string{}, out.DeletedIDs)
	require.Empty(t, notifier.clients)

	remaining, _ := repo.ListByClient(ctx, "client-b")
	require.Len(t, remaining, 1)

	out, err = uc.Execute(ctx, app.DeleteRecordsInput{ClientID: "client-a", IDs: []string{"a1", "b1", " "}})
	require.NoError(t, err)
	require.Equal(t, 1, out.Deleted)
	require.Equal(t, []string{"a1"}, out.DeletedIDs)
	require.Equal(t, []string{"client-a"}, notifier.clients)

	_, err = uc.Execute(ctx, app.DeleteRecordsInput{ClientID: "client-a"})
	require.ErrorIs(t, err, app.ErrNoIDs)

	_, err = uc.Execute(ctx, app.DeleteRecordsInput{IDs: []string{"a1"}})
	require.ErrorIs(t, err, app.ErrMissingClientID)
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	repo := seededRepo()
	repo.add(domain.Record{ID: "5", ClientID: "client-a", UpdatedAt: day(20)})

	out, err := app.NewDashboard(repo).Execute(context.Background(), "client-a")
	require.NoError(t, err)
	require.Equal(t, 4, out.Total)
	require.Equal(t, []app.UserTypeCount{
		{UserType: "lead", Count: 2},
		{UserType: "prospect", Count: 1},
		{UserType: "unspecified", Count: 1},
	}, out.ByUserType)
	require.NotNil(t, out.LastUpdated)
	require.True(t, out.LastUpdated.Equal(day(20)))

	_, err = app.NewDashboard(repo).Execute(context.Background(), "")
	require.ErrorIs(t, err, app.ErrMissingClientID)
}
