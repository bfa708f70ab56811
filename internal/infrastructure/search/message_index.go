package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-ddd-group-chat/internal/application"
	"github.com/oksasatya/go-ddd-group-chat/internal/domain/event"
)

const requestTimeout = 3 * time.Second

type messageDoc struct {
	MessageID string    `json:"message_id"`
	GroupID   string    `json:"group_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	SentAt    time.Time `json:"sent_at"`
}

// MessageIndex keeps one document per message, keyed by message id. A nil
// client turns every call into a no-op.
type MessageIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewMessageIndex(es *elasticsearch.Client, index string) *MessageIndex {
	return &MessageIndex{ES: es, Index: index}
}

func (x *MessageIndex) enabled() bool {
	return x != nil && x.ES != nil && x.Index != ""
}

// Apply mirrors a chat event into the index. Membership events are ignored.
func (x *MessageIndex) Apply(ctx context.Context, ev event.ChatEvent) error {
	switch ev.Type {
	case event.MessageCreated, event.MessageEdited:
		return x.Put(ctx, messageDoc{
			MessageID: ev.MessageID,
			GroupID:   ev.GroupID,
			SenderID:  ev.UserID,
			Content:   ev.Content,
			SentAt:    ev.SentAt,
		})
	case event.MessageDeleted:
		return x.Delete(ctx, ev.MessageID)
	}
	return nil
}

func (x *MessageIndex) Put(ctx context.Context, doc messageDoc) error {
	if !x.enabled() {
		return nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: doc.MessageID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", doc.MessageID, res.Status())
	}
	return nil
}

// Delete removes a message document. A missing document is not an error.
func (x *MessageIndex) Delete(ctx context.Context, messageID string) error {
	if !x.enabled() {
		return nil
	}
	req := esapi.DeleteRequest{Index: x.Index, DocumentID: messageID}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete %s: %s", messageID, res.Status())
	}
	return nil
}

// Search matches content within one group, best match first.
func (x *MessageIndex) Search(ctx context.Context, groupID, q string, size int) ([]application.SearchHit, error) {
	if !x.enabled() {
		return []application.SearchHit{}, nil
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"filter": []any{
					map[string]any{"term": map[string]any{"group_id": groupID}},
				},
				"must": []any{
					map[string]any{"match": map[string]any{"content": q}},
				},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.Index), x.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source messageDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]application.SearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, application.SearchHit{
			MessageID: h.Source.MessageID,
			GroupID:   h.Source.GroupID,
			SenderID:  h.Source.SenderID,
			Content:   h.Source.Content,
			SentAt:    h.Source.SentAt,
		})
	}
	return out, nil
}

var _ application.MessageSearcher = (*MessageIndex)(nil)
