package publisher

import (
	"context"

	"github.com/haroldegbako/vehicule-tracker/module/tracking/domain"
)

type AlertPublisher interface {
	Publish(ctx context.Context, alert *domain.Alert) error
}
