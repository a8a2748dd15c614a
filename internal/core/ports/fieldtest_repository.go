package ports

import (
	"context"

	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
)

type FieldTestRepository interface {
	Add(ctx context.Context, test *fieldtest.FieldTest) error
	Update(ctx context.Context, test *fieldtest.FieldTest) error
	Delete(ctx context.Context, id kernel.UUID) error
	Get(ctx context.Context, id kernel.UUID) (*fieldtest.FieldTest, error)
	Exists(ctx context.Context, orderID, componentID kernel.UUID, kind client.Kind) (bool, error)
}
