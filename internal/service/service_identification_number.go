package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/med-cms/internal/logger"
	"github.com/MKhiriev/med-cms/internal/metrics"
	"github.com/MKhiriev/med-cms/internal/store"
	"github.com/MKhiriev/med-cms/internal/validators"
	"github.com/MKhiriev/med-cms/models"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

type identificationNumberService struct {
	numberRepository store.IdentificationNumberRepository
	validator        validators.Validator

	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewIdentificationNumberService(numbers store.IdentificationNumberRepository, validator validators.Validator, m *metrics.Metrics, logger *logger.Logger) IdentificationNumberService {
	return &identificationNumberService{
		numberRepository: numbers,
		validator:        validator,
		metrics:          m,
		logger:           logger,
	}
}

// List returns one page of codes together with the overall registry stats.
// per_page defaults to 15 and is capped at 100.
func (s *identificationNumberService) List(ctx context.Context, filter models.IdentificationNumberFilter) (models.IdentificationNumberPage, error) {
	log := logger.FromContext(ctx)

	filter = normalizeFilter(filter)

	items, total, err := s.numberRepository.List(ctx, filter)
	if err != nil {
		log.Err(err).Str("func", "*identificationNumberService.List").Msg("error listing identification numbers")
		return models.IdentificationNumberPage{}, err
	}

	stats, err := s.numberRepository.Stats(ctx)
	if err != nil {
		log.Err(err).Str("func", "*identificationNumberService.List").Msg("error computing stats")
		return models.IdentificationNumberPage{}, err
	}

	return models.IdentificationNumberPage{
		Items:      items,
		Pagination: models.NewPagination(filter.Page, filter.PerPage, total),
		Stats:      stats,
	}, nil
}

func normalizeFilter(filter models.IdentificationNumberFilter) models.IdentificationNumberFilter {
	switch {
	case filter.PerPage <= 0:
		filter.PerPage = defaultPerPage
	case filter.PerPage > maxPerPage:
		filter.PerPage = maxPerPage
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.Search = strings.TrimSpace(filter.Search)
	if !strings.EqualFold(filter.SortOrder, "desc") {
		filter.SortOrder = "asc"
	} else {
		filter.SortOrder = "desc"
	}
	return filter
}

func (s *identificationNumberService) Report(ctx context.Context) (models.IdentificationNumberReport, error) {
	overall, err := s.numberRepository.Stats(ctx)
	if err != nil {
		return models.IdentificationNumberReport{}, err
	}

	departments, err := s.numberRepository.DepartmentStats(ctx)
	if err != nil {
		return models.IdentificationNumberReport{}, err
	}

	return models.IdentificationNumberReport{
		Overall:      overall,
		ByDepartment: departments,
	}, nil
}

func (s *identificationNumberService) Get(ctx context.Context, id int64) (models.IdentificationNumber, error) {
	number, err := s.numberRepository.FindByID(ctx, id)
	return number, numberError(err)
}

func (s *identificationNumberService) Create(ctx context.Context, req models.IdentificationNumberRequest) (models.IdentificationNumber, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.IdentificationNumber{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := s.numberRepository.Create(ctx, models.IdentificationNumber{
		Number:      req.Number,
		Description: req.Description,
		IsActive:    isActive,
	})
	if err != nil {
		return models.IdentificationNumber{}, numberError(err)
	}

	s.metrics.AddIdentificationNumbers(1)
	logger.FromContext(ctx).Info().Str("number", created.Number).Msg("identification number created")
	return created, nil
}

// Update overwrites the number and the description; a nil is_active keeps
// the current state.
func (s *identificationNumberService) Update(ctx context.Context, id int64, req models.IdentificationNumberRequest) (models.IdentificationNumber, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.IdentificationNumber{}, err
	}

	current, err := s.numberRepository.FindByID(ctx, id)
	if err != nil {
		return models.IdentificationNumber{}, numberError(err)
	}

	current.Number = req.Number
	current.Description = req.Description
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	updated, err := s.numberRepository.Update(ctx, current)
	return updated, numberError(err)
}

func (s *identificationNumberService) Delete(ctx context.Context, id int64) error {
	err := s.numberRepository.Delete(ctx, id)
	if errors.Is(err, store.ErrIdentificationNumberInUse) {
		return ErrCannotDeleteUsedNumber
	}
	if err != nil {
		return numberError(err)
	}

	logger.FromContext(ctx).Info().Int64("identification_number_id", id).Msg("identification number deleted")
	return nil
}

// CreateBatch builds PREFIX+%03d codes for every i in [start, end]. Spans
// wider than models.MaxBatchSpan are refused with ErrBatchTooLarge.
func (s *identificationNumberService) CreateBatch(ctx context.Context, req models.BatchRequest) (models.BatchResult, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.BatchResult{}, err
	}
	if req.End-req.Start > models.MaxBatchSpan {
		return models.BatchResult{}, ErrBatchTooLarge
	}

	prefix := models.NormalizeNumber(req.Prefix)
	numbers := make([]string, 0, req.End-req.Start+1)
	for i := req.Start; i <= req.End; i++ {
		numbers = append(numbers, models.BatchNumber(prefix, i))
	}

	created, err := s.numberRepository.CreateBatch(ctx, numbers, req.Description)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*identificationNumberService.CreateBatch").Str("prefix", prefix).Msg("error creating batch")
		return models.BatchResult{}, err
	}

	s.metrics.AddIdentificationNumbers(created)
	logger.FromContext(ctx).Info().
		Str("prefix", prefix).
		Int("start", req.Start).
		Int("end", req.End).
		Int("created", created).
		Msg("identification number batch created")

	return models.BatchResult{CreatedCount: created}, nil
}

func (s *identificationNumberService) Release(ctx context.Context, id int64) (models.IdentificationNumber, *models.UserSummary, error) {
	current, err := s.numberRepository.FindByID(ctx, id)
	if err != nil {
		return models.IdentificationNumber{}, nil, numberError(err)
	}
	if !current.IsUsed {
		return models.IdentificationNumber{}, nil, ErrIdentificationNumberNotInUse
	}

	released, err := s.numberRepository.Release(ctx, id)
	if err != nil {
		return models.IdentificationNumber{}, nil, numberError(err)
	}

	logger.FromContext(ctx).Info().Int64("identification_number_id", id).Msg("identification number released")
	return released, current.User, nil
}

func (s *identificationNumberService) ToggleStatus(ctx context.Context, id int64) (models.IdentificationNumber, error) {
	number, err := s.numberRepository.ToggleStatus(ctx, id)
	return number, numberError(err)
}

// numberError translates repository errors into service errors.
func numberError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrIdentificationNumberNotFound):
		return ErrIdentificationNumberNotFound
	case errors.Is(err, store.ErrIdentificationNumberExists):
		return validators.NewValidationError("number", "The number has already been taken.")
	}
	return err
}
