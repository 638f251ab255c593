package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eventfeed/eventfeed-api/internal/assets"
	"github.com/eventfeed/eventfeed-api/internal/domain/entity"
	repo "github.com/eventfeed/eventfeed-api/internal/domain/repository"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotOwner      = errors.New("not the event owner")
)

const (
	DefaultPage  = 1
	DefaultLimit = 5
)

// EventService owns the event lifecycle: create with image upload, the
// paginated feed, the per-owner listing, and owner-gated deletion.
type EventService struct {
	Events repo.EventRepository
	Assets assets.Store
	Logger *logrus.Logger

	// Optional search index. Index writes are best-effort and never fail
	// the operation that triggered them.
	ES      *elasticsearch.Client
	ESIndex string
}

func NewEventService(events repo.EventRepository, store assets.Store, logger *logrus.Logger) *EventService {
	return &EventService{Events: events, Assets: store, Logger: logger}
}

type CreateEventInput struct {
	Title   string
	Caption string
	Rating  int
	Image   string // base64 data URI
}

// Create uploads the image first; the event row is only written once the
// upload has succeeded, so a failed upload leaves no partial state.
func (s *EventService) Create(ctx context.Context, ownerID string, in CreateEventInput) (*entity.Event, error) {
	url, err := s.Assets.Upload(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	e := &entity.Event{
		ID:        id.String(),
		Title:     in.Title,
		Caption:   in.Caption,
		Rating:    in.Rating,
		ImageURL:  url,
		UserID:    ownerID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Events.Create(ctx, e); err != nil {
		return nil, err
	}

	s.indexEvent(ctx, e)
	return e, nil
}

// FeedPage is a page of the public feed, newest events first.
// TotalBooks keeps the original API's wire name for the total count.
type FeedPage struct {
	Items       []entity.FeedEvent `json:"items"`
	CurrentPage int                `json:"currentPage"`
	TotalBooks  int                `json:"totalBooks"`
	TotalPages  int                `json:"totalPages"`
}

// List returns one feed page. page and limit fall back to 1 and 5; a page
// past the end yields empty items without error. Count and scan are two
// reads, so totals can momentarily race concurrent writes.
func (s *EventService) List(ctx context.Context, page, limit int) (*FeedPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	items, err := s.Events.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.Events.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &FeedPage{
		Items:       items,
		CurrentPage: page,
		TotalBooks:  total,
		TotalPages:  (total + limit - 1) / limit,
	}, nil
}

// ListByOwner returns all of one user's events, newest first.
func (s *EventService) ListByOwner(ctx context.Context, ownerID string) ([]entity.Event, error) {
	items, err := s.Events.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.Event{}
	}
	return items, nil
}

// Delete removes an event on behalf of requesterID. Only the owner may
// delete. The stored image is destroyed best-effort before the row goes;
// record deletion is authoritative, asset cleanup is advisory.
func (s *EventService) Delete(ctx context.Context, eventID, requesterID string) error {
	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if e.UserID != requesterID {
		return ErrNotOwner
	}

	if s.Assets.IsManaged(e.ImageURL) {
		if err := s.Assets.Destroy(ctx, e.ImageURL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", e.ID).Warn("image cleanup failed")
		}
	}

	if err := s.Events.Delete(ctx, eventID); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	s.unindexEvent(ctx, e.ID)
	return nil
}

func (s *EventService) indexEvent(ctx context.Context, e *entity.Event) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         e.ID,
		"title":      e.Title,
		"caption":    e.Caption,
		"rating":     e.Rating,
		"image":      e.ImageURL,
		"user":       e.UserID,
		"created_at": e.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: e.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", e.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("event_id", e.ID).Warn("es index response error")
	}
}

func (s *EventService) unindexEvent(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search does a multi_match over title and caption in the search index.
func (s *EventService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "caption"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		// The error payload has no hits; decoding it would silently
		// yield an empty result set.
		return nil, fmt.Errorf("search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
