package service

import (
	"context"
	"fmt"

	"github.com/aajcs/apiLionGym/internal/model"
	"github.com/aajcs/apiLionGym/internal/repository"
	"github.com/aajcs/apiLionGym/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PeriodService handles financial period CRUD. Plain document shuffling;
// the references stay unresolved ids.
type PeriodService struct {
	periods repository.IPeriodRepository
}

func NewPeriodService(periods repository.IPeriodRepository) *PeriodService {
	return &PeriodService{periods: periods}
}

func (s *PeriodService) List(ctx context.Context) ([]*model.Period, int64, error) {
	return s.periods.FindAll(ctx)
}

func (s *PeriodService) Get(ctx context.Context, id primitive.ObjectID) (*model.Period, error) {
	period, err := s.periods.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, ErrPeriodNotFound
	}
	return period, nil
}

func (s *PeriodService) Create(ctx context.Context, req *model.CreatePeriodRequest) (*model.Period, error) {
	status := req.Status
	if status == "" {
		status = model.PeriodOpen
	}
	if status != model.PeriodOpen && status != model.PeriodClosed {
		return nil, fmt.Errorf("%w: unknown period status %q", ErrInvalidInput, status)
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must be after startDate", ErrInvalidInput)
	}

	period := &model.Period{
		Amount:    req.Amount,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    status,
	}

	if req.RefineryID != "" {
		oid, err := util.ParseObjectID(req.RefineryID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		period.RefineryID = oid
	}

	var err error
	if period.Purchases, err = parseObjectIDs(req.Purchases); err != nil {
		return nil, err
	}
	if period.Sales, err = parseObjectIDs(req.Sales); err != nil {
		return nil, err
	}
	if period.Expenses, err = parseObjectIDs(req.Expenses); err != nil {
		return nil, err
	}

	return s.periods.Create(ctx, period)
}

func (s *PeriodService) Update(ctx context.Context, id primitive.ObjectID, req *model.UpdatePeriodRequest) (*model.Period, error) {
	fields := bson.M{}

	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}
	if req.StartDate != nil {
		fields["startDate"] = *req.StartDate
	}
	if req.EndDate != nil {
		fields["endDate"] = *req.EndDate
	}
	if req.Status != nil {
		if *req.Status != model.PeriodOpen && *req.Status != model.PeriodClosed {
			return nil, fmt.Errorf("%w: unknown period status %q", ErrInvalidInput, *req.Status)
		}
		fields["status"] = *req.Status
	}
	if req.Purchases != nil {
		ids, err := parseObjectIDs(req.Purchases)
		if err != nil {
			return nil, err
		}
		fields["purchases"] = ids
	}
	if req.Sales != nil {
		ids, err := parseObjectIDs(req.Sales)
		if err != nil {
			return nil, err
		}
		fields["sales"] = ids
	}
	if req.Expenses != nil {
		ids, err := parseObjectIDs(req.Expenses)
		if err != nil {
			return nil, err
		}
		fields["expenses"] = ids
	}

	period, err := s.periods.UpdateByID(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, ErrPeriodNotFound
	}
	return period, nil
}

func (s *PeriodService) Delete(ctx context.Context, id primitive.ObjectID) (*model.Period, error) {
	period, err := s.periods.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, ErrPeriodNotFound
	}
	return period, nil
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		oid, err := util.ParseObjectID(h)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		ids = append(ids, oid)
	}
	return ids, nil
}
