package usecases

import (
	"context"

	"melodia/internal/domain/subscription"
)

// ListPlansUseCase exposes the plan catalog.
type ListPlansUseCase struct {
	catalog *subscription.Catalog
}

func NewListPlansUseCase(catalog *subscription.Catalog) *ListPlansUseCase {
	return &ListPlansUseCase{catalog: catalog}
}

func (uc *ListPlansUseCase) Execute(_ context.Context) []subscription.Plan {
	return uc.catalog.All()
}
