// Package es provides the Elasticsearch client used for conversation search.
package es

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"guardian-portal-go/internal/config"
	"guardian-portal-go/pkg/log"
	"guardian-portal-go/pkg/tasks"

	"github.com/elastic/go-elasticsearch/v8"
)

var ESClient *elasticsearch.Client

// InitES initializes the Elasticsearch client and bootstraps the index.
func InitES(esCfg config.ElasticsearchConfig) error {
	cfg := elasticsearch.Config{
		Addresses: []string{esCfg.Addresses},
		Username:  esCfg.Username,
		Password:  esCfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return err
	}
	ESClient = client
	return createIndexIfNotExists(esCfg.IndexName)
}

// createIndexIfNotExists checks for the index and creates it when missing.
func createIndexIfNotExists(indexName string) error {
	res, err := ESClient.Indices.Exists([]string{indexName})
	if err != nil {
		log.Errorf("failed to check index existence: %v", err)
		return err
	}
	defer res.Body.Close()
	if !res.IsError() && res.StatusCode == http.StatusOK {
		log.Infof("index '%s' already exists", indexName)
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		log.Errorf("unexpected status code while checking index '%s': %d", indexName, res.StatusCode)
		return fmt.Errorf("unexpected status code while checking index: %d", res.StatusCode)
	}

	mapping := `{
		"mappings": {
			"properties": {
				"conversationId":  { "type": "long" },
				"accountId":       { "type": "long" },
				"recipientId":     { "type": "long" },
				"phoneNumber":     { "type": "keyword" },
				"incomingMessage": { "type": "text" },
				"response":        { "type": "text" },
				"contentSent":     { "type": "keyword" },
				"createdAt":       { "type": "date" }
			}
		}
	}`

	createRes, err := ESClient.Indices.Create(indexName, ESClient.Indices.Create.WithBody(strings.NewReader(mapping)))
	if err != nil {
		return fmt.Errorf("failed to create index '%s': %w", indexName, err)
	}
	defer createRes.Body.Close()
	if createRes.IsError() {
		return fmt.Errorf("failed to create index '%s': %s", indexName, createRes.String())
	}
	log.Infof("index '%s' created successfully", indexName)
	return nil
}

// ConversationIndexer writes conversation events into the search index. It
// satisfies the kafka.EventIndexer interface.
type ConversationIndexer struct {
	IndexName string
}

// Index stores one conversation event document, keyed by conversation ID so
// redelivered events overwrite instead of duplicating.
func (i *ConversationIndexer) Index(ctx context.Context, event tasks.ConversationEvent) error {
	doc, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation event: %w", err)
	}

	res, err := ESClient.Index(
		i.IndexName,
		bytes.NewReader(doc),
		ESClient.Index.WithContext(ctx),
		ESClient.Index.WithDocumentID(strconv.FormatUint(uint64(event.ConversationID), 10)),
	)
	if err != nil {
		return fmt.Errorf("failed to index conversation event: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index request failed: %s", res.String())
	}
	return nil
}

// SearchConversations runs a full-text query over one account's conversation
// history and returns the matching events, newest first.
func SearchConversations(ctx context.Context, indexName string, accountID uint, query string, size int) ([]tasks.ConversationEvent, error) {
	if size <= 0 {
		size = 20
	}

	body := map[string]interface{}{
		"size": size,
		"sort": []map[string]interface{}{
			{"createdAt": map[string]string{"order": "desc"}},
		},
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"accountId": accountID}},
				},
				"must": []map[string]interface{}{
					{"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"incomingMessage", "response", "contentSent"},
					}},
				},
			},
		},
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := ESClient.Search(
		ESClient.Search.WithContext(ctx),
		ESClient.Search.WithIndex(indexName),
		ESClient.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search request failed: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source tasks.ConversationEvent `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	events := make([]tasks.ConversationEvent, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		events = append(events, hit.Source)
	}
	return events, nil
}
