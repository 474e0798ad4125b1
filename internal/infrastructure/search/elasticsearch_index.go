package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/provider"
)

const requestTimeout = 3 * time.Second

// ElasticIndex indexes users and rooms. A nil client turns every call into a
// no-op so the API runs without a search cluster.
type ElasticIndex struct {
	es         *elasticsearch.Client
	usersIndex string
	roomsIndex string
	log        *logrus.Logger
}

func NewElasticIndex(es *elasticsearch.Client, usersIndex, roomsIndex string, log *logrus.Logger) *ElasticIndex {
	return &ElasticIndex{es: es, usersIndex: usersIndex, roomsIndex: roomsIndex, log: log}
}

// Enabled reports whether searches hit a cluster.
func (x *ElasticIndex) Enabled() bool { return x != nil && x.es != nil }

func (x *ElasticIndex) index(ctx context.Context, index, id string, doc any) error {
	if !x.Enabled() || index == "" {
		return nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: index, DocumentID: id, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		x.log.WithError(err).WithFields(logrus.Fields{"index": index, "id": id}).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		x.log.WithFields(logrus.Fields{"index": index, "id": id, "status": res.Status()}).Warn("es index response error")
		return fmt.Errorf("es index %s: %s", index, res.Status())
	}
	return nil
}

func (x *ElasticIndex) IndexUser(ctx context.Context, u *entity.User) error {
	return x.index(ctx, x.usersIndex, u.ID, map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"role":       string(u.Role),
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	})
}

func (x *ElasticIndex) IndexRoom(ctx context.Context, r *entity.Room) error {
	return x.index(ctx, x.roomsIndex, r.ID, map[string]any{
		"id":          r.ID,
		"number":      r.Number,
		"type":        string(r.Type),
		"price":       r.Price,
		"capacity":    r.Capacity,
		"amenities":   r.Amenities,
		"description": r.Description,
		"available":   r.Available,
	})
}

func (x *ElasticIndex) DeleteRoom(ctx context.Context, id string) error {
	if !x.Enabled() || x.roomsIndex == "" {
		return nil
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := esapi.DeleteRequest{Index: x.roomsIndex, DocumentID: id}.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete %s: %s", id, res.Status())
	}
	return nil
}

type hit struct {
	ID     string         `json:"_id"`
	Source map[string]any `json:"_source"`
}

func (x *ElasticIndex) search(ctx context.Context, index string, q string, fields []string, size int) ([]hit, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    fields,
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.es.Search(x.es.Search.WithContext(c), x.es.Search.WithIndex(index), x.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search %s: %s", index, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []hit `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return parsed.Hits.Hits, nil
}

func (x *ElasticIndex) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if !x.Enabled() {
		return []map[string]any{}, nil
	}
	hits, err := x.search(ctx, x.usersIndex, q, []string{"email^2", "name"}, size)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// SearchRooms returns matching room ids in relevance order.
func (x *ElasticIndex) SearchRooms(ctx context.Context, q string, size int) ([]string, error) {
	if !x.Enabled() {
		return nil, provider.ErrSearchDisabled
	}
	hits, err := x.search(ctx, x.roomsIndex, q, []string{"number^3", "type^2", "description", "amenities"}, size)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

var _ provider.SearchIndex = (*ElasticIndex)(nil)
