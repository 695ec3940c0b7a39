package crm

import (
	"context"
	"time"

	"github.com/sells-group/account-brief/internal/metrics"
	"github.com/sells-group/account-brief/pkg/hubspot"
)

const providerHubSpot = "hubspot"

// observedClient records latency and outcome of every HubSpot call.
type observedClient struct {
	next hubspot.Client
	m    *metrics.Metrics
}

func observe(c hubspot.Client, m *metrics.Metrics) hubspot.Client {
	if m == nil {
		return c
	}
	return &observedClient{next: c, m: m}
}

func (o *observedClient) SearchObjects(ctx context.Context, objectType string, req hubspot.SearchRequest) (*hubspot.SearchResponse, error) {
	start := time.Now()
	resp, err := o.next.SearchObjects(ctx, objectType, req)
	o.m.ObserveProvider(providerHubSpot, start, err)
	return resp, err
}

func (o *observedClient) CreateObject(ctx context.Context, objectType string, props map[string]any) (*hubspot.Object, error) {
	start := time.Now()
	obj, err := o.next.CreateObject(ctx, objectType, props)
	o.m.ObserveProvider(providerHubSpot, start, err)
	return obj, err
}

func (o *observedClient) UpdateObject(ctx context.Context, objectType, id string, props map[string]any) (*hubspot.Object, error) {
	start := time.Now()
	obj, err := o.next.UpdateObject(ctx, objectType, id, props)
	o.m.ObserveProvider(providerHubSpot, start, err)
	return obj, err
}

func (o *observedClient) Associate(ctx context.Context, fromType, fromID, toType, toID, assoc string) error {
	start := time.Now()
	err := o.next.Associate(ctx, fromType, fromID, toType, toID, assoc)
	o.m.ObserveProvider(providerHubSpot, start, err)
	return err
}

func (o *observedClient) PortalID(ctx context.Context) (string, error) {
	start := time.Now()
	id, err := o.next.PortalID(ctx)
	o.m.ObserveProvider(providerHubSpot, start, err)
	return id, err
}
