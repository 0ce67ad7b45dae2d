package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/tolkflow/tolkflow-backend/pkg/db/models"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
	"github.com/tolkflow/tolkflow-backend/pkg/logger"
	"github.com/tolkflow/tolkflow-backend/pkg/metrics"
)

// SkillCatalog yields the skills every language pair group must cover.
type SkillCatalog interface {
	List(ctx context.Context) ([]models.Skill, error)
}

// Service exposes the vendor price list read and submit operations.
type Service interface {
	GetPriceList(ctx context.Context, vendorID uuid.UUID) (*PriceListResponse, error)
	SubmitPriceList(ctx context.Context, vendorID uuid.UUID, req SubmitPriceListRequest) (*SubmitPriceListResponse, error)
}

type service struct {
	repo            Repository
	catalog         SkillCatalog
	publisher       EventPublisher
	metrics         *metrics.PricingMetrics
	logg            *logger.Logger
	dispatchTimeout time.Duration
}

// NewService wires the price list service. Metrics and publisher may be nil.
func NewService(repo Repository, catalog SkillCatalog, publisher EventPublisher, m *metrics.PricingMetrics, logg *logger.Logger, dispatchTimeout time.Duration) (Service, error) {
	if repo == nil {
		return nil, errors.New("pricing: repository is required")
	}
	if catalog == nil {
		return nil, errors.New("pricing: skill catalog is required")
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if dispatchTimeout <= 0 {
		dispatchTimeout = 30 * time.Second
	}
	return &service{
		repo:            repo,
		catalog:         catalog,
		publisher:       publisher,
		metrics:         m,
		logg:            logg,
		dispatchTimeout: dispatchTimeout,
	}, nil
}

// GetPriceList renders the vendor's editable form: one group per stored
// language pair, each carrying a row for every catalog skill. Skills the
// vendor has not priced yet appear as deselected drafts.
func (s *service) GetPriceList(ctx context.Context, vendorID uuid.UUID) (*PriceListResponse, error) {
	records, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	skills, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	skillNames := make(map[uuid.UUID]string, len(skills))
	for _, skill := range skills {
		skillNames[skill.ID] = skill.Name
	}

	groups := groupRecords(records)
	for i := range groups {
		groups[i] = padGroup(groups[i], vendorID, skills)
	}

	resp := &PriceListResponse{VendorID: vendorID, Groups: make([]PriceGroupDTO, 0, len(groups))}
	for _, group := range groups {
		resp.Groups = append(resp.Groups, NewPriceGroupDTO(group, skillNames))
	}
	return resp, nil
}

// SubmitPriceList reconciles every submitted group against the stored
// baseline and applies the resulting batches concurrently. Server-side
// field problems come back re-targeted onto form paths.
func (s *service) SubmitPriceList(ctx context.Context, vendorID uuid.UUID, req SubmitPriceListRequest) (*SubmitPriceListResponse, error) {
	records, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	baselineByKey := make(map[string]LanguagePairGroup)
	for _, group := range groupRecords(records) {
		baselineByKey[group.Key] = group
	}

	var ops []Operation
	for _, dto := range req.Groups {
		edited := dto.ToGroup(vendorID)
		baseline, known := baselineByKey[edited.Key]
		isNewPair := edited.Key == NewGroupKey || !known
		ops = append(ops, Reconcile(baseline, edited, isNewPair)...)
	}

	dispatchCtx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
	defer cancel()

	started := time.Now()
	results := Dispatch(dispatchCtx, s.repo, ops)

	resp := &SubmitPriceListResponse{
		Changed: HasMutations(ops),
		Applied: map[string]int{},
	}
	var depErr error
	for _, result := range results {
		state := string(result.Operation.State)
		s.metrics.ObserveDispatch(state, time.Since(started))

		if result.Err == nil {
			s.metrics.IncOperation(state, "success")
			if result.Operation.State != StateUnchanged {
				resp.Applied[state] += len(result.Operation.Entries)
			}
			continue
		}

		s.metrics.IncOperation(state, "failure")
		if fieldErrs := s.mapFieldErrors(ctx, result.Operation, result.Err); len(fieldErrs) > 0 {
			if resp.Errors == nil {
				resp.Errors = map[string][]string{}
			}
			for path, messages := range fieldErrs {
				resp.Errors[path] = append(resp.Errors[path], messages...)
			}
			continue
		}
		depErr = multierr.Append(depErr, result.Err)
	}

	if depErr != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, depErr, "apply price list")
	}
	if len(resp.Errors) > 0 {
		resp.Changed = false
		return resp, nil
	}

	if resp.Changed {
		event := PriceListUpdatedEvent{VendorID: vendorID, Applied: resp.Applied}
		if err := s.publisher.PriceListUpdated(ctx, event); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithVendorID(ctx, vendorID.String()), "price list event publish failed")
		}
	}
	return resp, nil
}

// mapFieldErrors re-targets "data.<index>.<field>" keys from a failed batch
// onto the form paths the submitting group used.
func (s *service) mapFieldErrors(ctx context.Context, op Operation, err error) map[string][]string {
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		return nil
	}
	details, ok := coded.Details().(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := details["errors"].(map[string][]string)
	if !ok {
		return nil
	}

	out := make(map[string][]string, len(raw))
	for key, messages := range raw {
		fieldErr, mapErr := MapError(op.State, op.Entries, key, messages)
		if mapErr != nil {
			if s.logg != nil {
				s.logg.Warn(s.logg.WithField(ctx, "error_key", key), "unmappable field error")
			}
			continue
		}
		s.metrics.IncFieldError()
		out[fieldErr.Path] = append(out[fieldErr.Path], fieldErr.Messages...)
	}
	return out
}

// groupRecords partitions stored records into language pair groups,
// preserving the repository's ordering.
func groupRecords(records []models.PriceRecord) []LanguagePairGroup {
	var groups []LanguagePairGroup
	index := map[string]int{}
	for _, record := range records {
		key := PairKey(record.SrcLangClassifierValueID, record.DstLangClassifierValueID)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, LanguagePairGroup{
				Key:        key,
				SrcLangID:  record.SrcLangClassifierValueID,
				DstLangIDs: []uuid.UUID{record.DstLangClassifierValueID},
			})
		}
		groups[i].Entries = append(groups[i].Entries, recordToEntry(record, key))
	}
	return groups
}

// padGroup appends a deselected draft row for every catalog skill the
// group does not price yet, keeping catalog order for the padding.
func padGroup(group LanguagePairGroup, vendorID uuid.UUID, skills []models.Skill) LanguagePairGroup {
	priced := make(map[uuid.UUID]bool, len(group.Entries))
	for _, entry := range group.Entries {
		priced[entry.SkillID] = true
	}
	dstLangID := uuid.UUID{}
	if len(group.DstLangIDs) == 1 {
		dstLangID = group.DstLangIDs[0]
	}
	for _, skill := range skills {
		if priced[skill.ID] {
			continue
		}
		group.Entries = append(group.Entries, SkillPriceEntry{
			Ref:       DraftRef(),
			GroupKey:  group.Key,
			SkillID:   skill.ID,
			VendorID:  vendorID,
			SrcLangID: group.SrcLangID,
			DstLangID: dstLangID,
			Selected:  false,
		})
	}
	return group
}
