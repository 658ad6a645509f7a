package dashboard

import "context"

// DashboardService backs the management landing page.
type DashboardService interface {
	Overview(ctx context.Context) (OverviewResponse, error)
}
