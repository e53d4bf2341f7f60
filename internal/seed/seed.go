package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"jewelryshop/internal/domain"
	slotrepo "jewelryshop/internal/repository/slot"
	catalogsvc "jewelryshop/internal/service/catalog"
)

// Products returns the sample catalog used when no durable record exists.
func Products() []domain.Product {
	size := &domain.ProductOptions{Label: "Size", Values: []string{"16cm", "18cm"}}
	return []domain.Product{
		{
			ID:        "1",
			Name:      "Silver Bracelet",
			Price:     3500,
			Image:     "/silver-bracelet.png",
			Stock:     10,
			Options:   size,
			DetailURL: "https://example.com/silver-bracelet-details",
		},
		{
			ID:        "2",
			Name:      "Gold Necklace",
			Price:     8900,
			Image:     "/gold-necklace.png",
			Stock:     5,
			DetailURL: "https://example.com/gold-necklace-details",
		},
		{
			ID:        "3",
			Name:      "Pearl Earrings",
			Price:     4200,
			Image:     "/pearl-earrings-jewelry.jpg",
			Stock:     0,
			DetailURL: "https://example.com/pearl-earrings-details",
		},
	}
}

// Apply writes the sample catalog into the products slot unless one already
// exists, so it is safe to run repeatedly.
func Apply(ctx context.Context, repo slotrepo.Repository) error {
	_, err := repo.Read(ctx, catalogsvc.SlotKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("read products slot: %w", err)
	}

	raw, err := json.Marshal(Products())
	if err != nil {
		return fmt.Errorf("marshal seed catalog: %w", err)
	}
	if err := repo.Write(ctx, catalogsvc.SlotKey, raw); err != nil {
		return fmt.Errorf("write seed catalog: %w", err)
	}
	return nil
}
