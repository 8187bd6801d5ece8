package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

func TestListActiveWithoutCacheReadsStore(t *testing.T) {
	ads := newFakeAdRepo()
	svc := NewAdsService(ads, nil, nil)
	ctx := context.Background()

	msgID := "msg-1"
	require.NoError(t, ads.UpsertDiscord(ctx, &domain.Ad{
		Title:            "active ad",
		Body:             "body",
		Source:           domain.AdSourceDiscord,
		DiscordMessageID: &msgID,
	}))
	archivedID := "msg-2"
	require.NoError(t, ads.UpsertDiscord(ctx, &domain.Ad{
		Title:            "archived ad",
		Body:             "body",
		Source:           domain.AdSourceDiscord,
		DiscordMessageID: &archivedID,
	}))
	_, err := ads.ArchiveByMessageID(ctx, archivedID)
	require.NoError(t, err)

	list, err := svc.ListActive(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "active ad", list[0].Title)
}

func TestInvalidateWithoutCacheIsNoop(t *testing.T) {
	svc := NewAdsService(newFakeAdRepo(), nil, nil)
	svc.Invalidate(context.Background())
}
