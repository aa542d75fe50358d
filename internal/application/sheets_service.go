package application

import (
	"context"
	"errors"
	"fmt"

	"georeview/internal/models"
	"georeview/internal/repository"
	"georeview/pkg/sheets"
)

const (
	sheetTitlePattern = "GeoGuessr review %s"
	sheetLinkPrefix   = "georeview_sheet"
)

var (
	// ErrSharingDisabled is returned when no Google service account is configured.
	ErrSharingDisabled = errors.New("sheet sharing is not configured")
	ErrNotReviewed     = errors.New("match has not been reviewed yet")
)

// SheetPublisher publishes a review as a public Google spreadsheet. Each
// match is published once; later calls return the stored link.
type SheetPublisher struct {
	client     sheets.Client
	store      repository.Store
	ownerEmail string
	logger     Logger
}

func NewSheetPublisher(client sheets.Client, store repository.Store, ownerEmail string, logger Logger) *SheetPublisher {
	return &SheetPublisher{
		client:     client,
		store:      store,
		ownerEmail: ownerEmail,
		logger:     logger,
	}
}

func sheetLinkKey(id MatchID) string {
	return sheetLinkPrefix + "_" + string(id)
}

func (p *SheetPublisher) Publish(ctx context.Context, id MatchID, report models.ReviewReport) (string, error) {
	if p == nil || p.client == nil {
		return "", ErrSharingDisabled
	}

	if url, found, err := p.store.Get(ctx, sheetLinkKey(id)); err != nil {
		return "", err
	} else if found {
		return url, nil
	}

	sheetID, url, err := p.client.CreateSpreadsheet(ctx, fmt.Sprintf(sheetTitlePattern, id), roundsSheet, tipsSheet)
	if err != nil {
		return "", err
	}

	if err := p.client.UpdateValues(ctx, sheetID, roundsSheet+"!A1", withHeader(roundsHeader, roundRows(id, report))); err != nil {
		return "", err
	}
	if err := p.client.UpdateValues(ctx, sheetID, tipsSheet+"!A1", withHeader(tipsHeader, tipRows(report))); err != nil {
		return "", err
	}

	if p.ownerEmail != "" {
		if err := p.client.AddPermission(ctx, sheetID, p.ownerEmail, "writer"); err != nil {
			return "", fmt.Errorf("failed to add owner permission: %w", err)
		}
	}
	if err := p.client.MakePublic(ctx, sheetID); err != nil {
		return "", err
	}

	if _, err := p.store.Add(ctx, sheetLinkKey(id), url); err != nil {
		p.logger.Warn("failed to remember sheet link for %s: %v", id, err)
	}
	p.logger.Info("published review of %s to %s", id, url)
	return url, nil
}

func withHeader(header []string, rows [][]interface{}) [][]interface{} {
	out := make([][]interface{}, 0, len(rows)+1)
	h := make([]interface{}, len(header))
	for i, v := range header {
		h[i] = v
	}
	return append(append(out, h), rows...)
}
