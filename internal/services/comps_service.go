// Package services holds orchestration that spans the store and the
// external clients.
package services

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"bidhouse-backend/internal/comps"
	"bidhouse-backend/internal/models"
	"bidhouse-backend/internal/store"
)

const (
	compPersistRetries = 3
	compPersistBackoff = time.Second

	// BatchCompsLimit caps one batch request.
	BatchCompsLimit = 100
)

// CompsService runs comparable-sale discovery for items and persists what
// the agent finds.
type CompsService struct {
	store  *store.Client
	finder *comps.Finder
}

func NewCompsService(storeClient *store.Client, finder *comps.Finder) *CompsService {
	return &CompsService{store: storeClient, finder: finder}
}

// Generate runs discovery for a single item, fills missing query fields from
// the stored item, and persists every usable candidate. Persistence failures
// are logged and swallowed; the caller still gets the candidates.
func (s *CompsService) Generate(req models.CompsRequest) (*models.CompsResponse, error) {
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item id: %w", err)
	}

	item, err := s.store.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	query := comps.Query{
		Brand: firstNonEmpty(req.Brand, item.Brand, "Unknown"),
		Model: firstNonEmpty(req.Model, item.Model, "Unknown"),
		Year:  firstNonEmpty(req.Year, yearString(item.Year), "Unknown"),
		Notes: req.Notes,
	}

	result, err := s.finder.Find(query)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		log.Printf("comps for item %s did not fully validate after %d attempts, using last output", itemID, result.Attempts)
	}

	s.persistCandidates(itemID, result.Candidates)

	return &models.CompsResponse{
		Success: true,
		ItemID:  req.ItemID,
		Comps:   tripleFrom(result.Candidates),
	}, nil
}

// GenerateBatch fans discovery out across the batch, one goroutine per item.
// A failed item never aborts the batch; it is reported in its result slot.
func (s *CompsService) GenerateBatch(items []models.BatchCompsItem) models.BatchCompsResponse {
	results := make([]models.BatchCompsResult, len(items))

	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int, it models.BatchCompsItem) {
			defer wg.Done()
			resp, err := s.Generate(models.CompsRequest{
				ItemID: it.ItemID,
				Brand:  it.Brand,
				Model:  it.Model,
				Year:   it.Year,
				Notes:  it.Notes,
			})
			if err != nil {
				results[i] = models.BatchCompsResult{ItemID: it.ItemID, Success: false, Error: err.Error()}
				return
			}
			results[i] = models.BatchCompsResult{ItemID: it.ItemID, Success: true, Comps: &resp.Comps}
		}(i, items[i])
	}
	wg.Wait()

	successful := 0
	for _, r := range results {
		if r.Success {
			successful++
		}
	}

	return models.BatchCompsResponse{
		BatchID:    ulid.Make().String(),
		Status:     "completed",
		TotalItems: len(items),
		Successful: successful,
		Failed:     len(items) - successful,
		Results:    results,
		Message:    fmt.Sprintf("Batch processing complete. %d/%d items processed successfully.", successful, len(items)),
	}
}

func (s *CompsService) persistCandidates(itemID uuid.UUID, candidates []models.CompCandidate) {
	for _, c := range candidates {
		if !comps.Usable(c) {
			continue
		}

		params := store.InsertCompParams{
			ItemID:    itemID,
			Source:    c.Source,
			SourceURL: c.URL,
			SoldPrice: comps.ParsePrice(c.Price),
			Currency:  "USD",
			Notes:     c.Notes,
		}
		if soldAt, ok := comps.ParseSaleDate(c.SaleDate); ok {
			params.SoldAt = &soldAt
		}

		var err error
		for attempt := 1; attempt <= compPersistRetries; attempt++ {
			if _, err = s.store.InsertComp(params); err == nil {
				break
			}
			log.Printf("failed to save comp for item %s (attempt %d/%d): %v", itemID, attempt, compPersistRetries, err)
			if attempt < compPersistRetries {
				time.Sleep(compPersistBackoff)
			}
		}
	}
}

func tripleFrom(candidates []models.CompCandidate) models.CompsTriple {
	var triple models.CompsTriple
	if len(candidates) > 0 {
		triple.Comp1 = candidates[0]
	}
	if len(candidates) > 1 {
		triple.Comp2 = candidates[1]
	}
	if len(candidates) > 2 {
		triple.Comp3 = candidates[2]
	}
	return triple
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func yearString(year *int) string {
	if year == nil {
		return ""
	}
	return strconv.Itoa(*year)
}
