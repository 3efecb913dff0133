package client

import (
	"context"

	carmuseum "github.com/logan676/carMuseum"
)

type offline struct {
	q *carmuseum.QueryService
}

// Offline serves content straight from a QueryService with no network
// round trip. Calls only fail when ctx is already done.
func Offline(q *carmuseum.QueryService) Source {
	return offline{q: q}
}

func (o offline) Health(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "ok", nil
}

func (o offline) News(ctx context.Context, category string) (carmuseum.NewsResult, error) {
	if err := ctx.Err(); err != nil {
		return carmuseum.NewsResult{}, err
	}
	return o.q.ListNews(category), nil
}

func (o offline) Models(ctx context.Context) (carmuseum.ModelsResult, error) {
	if err := ctx.Err(); err != nil {
		return carmuseum.ModelsResult{}, err
	}
	return o.q.ListModels(), nil
}

func (o offline) Brands(ctx context.Context) ([]carmuseum.Brand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return o.q.ListBrands(), nil
}

func (o offline) Garage(ctx context.Context) ([]carmuseum.GarageVehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return o.q.ListGarageVehicles(), nil
}

func (o offline) Dealerships(ctx context.Context) ([]carmuseum.Dealership, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return o.q.ListDealerships(), nil
}

func (o offline) Projects(ctx context.Context) (carmuseum.ProjectsResult, error) {
	if err := ctx.Err(); err != nil {
		return carmuseum.ProjectsResult{}, err
	}
	return o.q.ListProjects(), nil
}

func (o offline) Summary(ctx context.Context) (carmuseum.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return carmuseum.Dataset{}, err
	}
	return o.q.GetSummary(), nil
}
