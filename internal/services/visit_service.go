package services

import (
	"context"

	"github.com/pagetrail/backend/internal/events"
	"github.com/pagetrail/backend/internal/geo"
	"github.com/pagetrail/backend/internal/models"
	"github.com/pagetrail/backend/internal/privacy"
	"go.uber.org/zap"
)

// VisitStore is the append-only persistence the pipeline writes to.
type VisitStore interface {
	Insert(ctx context.Context, v *models.Visit) error
	List(ctx context.Context, limit, offset int) ([]models.Visit, error)
	Count(ctx context.Context) (int64, error)
	DeleteOlderThan(ctx context.Context, horizonDays int) (int64, error)
}

// GeoLookup resolves a coarse location, or nil when none is available.
type GeoLookup interface {
	Lookup(ctx context.Context, addr string) *geo.Location
}

// RecordInput is everything the HTTP layer extracts from an inbound page-view
// event. Path and UserAgent are client-supplied and untrusted.
type RecordInput struct {
	Path         string
	UserAgent    string
	ForwardedFor string
	RemoteAddr   string
	Consented    bool
}

// VisitService runs the logging pipeline: resolve the client address, derive
// its masked and pseudonymized forms, keep the raw value only behind consent,
// enrich with best-effort geo data, and append the record.
type VisitService struct {
	repo      VisitStore
	geo       GeoLookup
	pseudo    *privacy.Pseudonymizer
	publisher events.Publisher
	log       *zap.Logger
}

func NewVisitService(repo VisitStore, geoClient GeoLookup, pseudo *privacy.Pseudonymizer, publisher events.Publisher, log *zap.Logger) *VisitService {
	return &VisitService{
		repo:      repo,
		geo:       geoClient,
		pseudo:    pseudo,
		publisher: publisher,
		log:       log,
	}
}

// Record writes one visit. Only a storage failure is returned as an error;
// a failed or timed-out geo lookup just leaves the geo fields empty.
func (s *VisitService) Record(ctx context.Context, in RecordInput) (*models.Visit, error) {
	addr := privacy.ResolveAddress(in.ForwardedFor, in.RemoteAddr)

	path := in.Path
	if path == "" {
		path = "/"
	}

	v := &models.Visit{
		MaskedIP:  privacy.MaskAddress(addr),
		Pseudonym: s.pseudo.Pseudonym(addr),
		Path:      path,
	}
	if in.UserAgent != "" {
		v.UserAgent = &in.UserAgent
	}
	if in.Consented {
		v.RawIP = &addr
	}

	// Bounded by the client's own timeout; a miss means no geo fields, the
	// record is written regardless.
	if loc := s.geo.Lookup(ctx, addr); loc != nil {
		v.GeoCountry = &loc.Country
		v.GeoRegion = &loc.Region
		v.GeoCity = &loc.City
	}

	if err := s.repo.Insert(ctx, v); err != nil {
		s.log.Error("failed to insert visit", zap.Error(err), zap.String("path", v.Path))
		return nil, err
	}

	s.publishRecorded(ctx, v)
	return v, nil
}

// publishRecorded feeds the admin live tail. Best-effort: a broken broker
// must not fail a write that already committed.
func (s *VisitService) publishRecorded(ctx context.Context, v *models.Visit) {
	if s.publisher == nil {
		return
	}

	payload := map[string]any{
		"id":         v.ID,
		"created_at": v.CreatedAt,
		"masked_ip":  v.MaskedIP,
		"path":       v.Path,
	}
	if v.GeoCountry != nil {
		payload["geo_country"] = *v.GeoCountry
	}

	err := s.publisher.Publish(ctx, events.StreamVisits, events.Event{
		Type:    events.EventVisitRecorded,
		Payload: payload,
	})
	if err != nil {
		s.log.Warn("failed to publish visit event", zap.Error(err))
	}
}
