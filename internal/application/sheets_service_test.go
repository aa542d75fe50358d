package application

import (
	"context"
	"errors"
	"testing"

	"georeview/internal/models"
	"georeview/internal/repository"
	"georeview/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSheets struct {
	created     []string
	tabs        []string
	values      map[string][][]interface{}
	permissions []string
	public      bool
	failCreate  error
}

func (f *fakeSheets) CreateSpreadsheet(_ context.Context, title string, tabs ...string) (string, string, error) {
	if f.failCreate != nil {
		return "", "", f.failCreate
	}
	f.created = append(f.created, title)
	f.tabs = tabs
	return "sheet-1", "https://docs.google.com/spreadsheets/d/sheet-1", nil
}

func (f *fakeSheets) AddPermission(_ context.Context, _, email, role string) error {
	f.permissions = append(f.permissions, email+":"+role)
	return nil
}

func (f *fakeSheets) MakePublic(context.Context, string) error {
	f.public = true
	return nil
}

func (f *fakeSheets) UpdateValues(_ context.Context, _, rangeStr string, values [][]interface{}) error {
	if f.values == nil {
		f.values = make(map[string][][]interface{})
	}
	f.values[rangeStr] = values
	return nil
}

func TestSheetPublisherPublishesOnce(t *testing.T) {
	ctx := context.Background()
	client := &fakeSheets{}
	pub := NewSheetPublisher(client, repository.NewMemoryStore(), "owner@example.com", logger.Nop{})
	report := models.ReviewReport{Rounds: []models.RoundReview{reviewFor(1), reviewFor(2)}}

	url, err := pub.Publish(ctx, "duel-abc", report)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/sheet-1", url)

	assert.Equal(t, []string{"GeoGuessr review duel-abc"}, client.created)
	assert.Equal(t, []string{roundsSheet, tipsSheet}, client.tabs)
	assert.Len(t, client.values["Rounds!A1"], 3)
	assert.Equal(t, "Match", client.values["Rounds!A1"][0][0])
	assert.Equal(t, []interface{}{2, 1, "Bollards", "Look at the bollard caps."}, client.values["Tips!A1"][2])
	assert.Equal(t, []string{"owner@example.com:writer"}, client.permissions)
	assert.True(t, client.public)

	again, err := pub.Publish(ctx, "duel-abc", report)
	require.NoError(t, err)
	assert.Equal(t, url, again)
	assert.Len(t, client.created, 1)
}

func TestSheetPublisherErrors(t *testing.T) {
	var disabled *SheetPublisher
	_, err := disabled.Publish(context.Background(), "m1", models.ReviewReport{})
	assert.ErrorIs(t, err, ErrSharingDisabled)

	boom := errors.New("quota")
	pub := NewSheetPublisher(&fakeSheets{failCreate: boom}, repository.NewMemoryStore(), "", logger.Nop{})
	_, err = pub.Publish(context.Background(), "m1", models.ReviewReport{})
	assert.ErrorIs(t, err, boom)
}

func TestShareReviewRequiresCachedReview(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&fakeMatchSource{match: sampleMatch()}, &scriptedDispatcher{}, "")
	require.NoError(t, svc.Credentials.Save(ctx, []string{testKey(1)}))

	_, err := svc.ShareReview(ctx, "duel-abc")
	assert.ErrorIs(t, err, ErrNotReviewed)

	_, _, err = svc.Cache.Put(ctx, "duel-abc", models.ReviewReport{Rounds: []models.RoundReview{reviewFor(1)}})
	require.NoError(t, err)

	_, err = svc.ShareReview(ctx, "duel-abc")
	assert.ErrorIs(t, err, ErrSharingDisabled)

	client := &fakeSheets{}
	svc.Sheets = NewSheetPublisher(client, repository.NewMemoryStore(), "", logger.Nop{})
	url, err := svc.ShareReview(ctx, "duel-abc")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	assert.Empty(t, client.permissions)
}
