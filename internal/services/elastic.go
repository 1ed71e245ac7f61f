package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const booksIndex = "books"

//
// --- INDEXING ---
//

// IndexBook writes a book document into Elasticsearch. Called on every
// catalog write so search stays consistent with Scylla.
func IndexBook(b models.Book) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic not initialized, cannot index:", b.Name)
		return
	}

	data, _ := json.Marshal(b)
	req := esapi.IndexRequest{
		Index:      booksIndex,
		DocumentID: b.ID.String(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Elastic index error:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic returned an error for %s: %s", b.Name, res.String())
	} else {
		log.Printf("✅ Book indexed in Elasticsearch: %s", b.Name)
	}
}

// RemoveBookFromIndex deletes a book document (deactivated titles must not
// surface in search).
func RemoveBookFromIndex(bookID string) {
	if database.Elastic == nil {
		return
	}

	req := esapi.DeleteRequest{Index: booksIndex, DocumentID: bookID}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Elastic delete error:", err)
		return
	}
	res.Body.Close()
}

//
// --- SEARCH ---
//

// SearchBooks queries the books index by name, description and author.
func SearchBooks(query string) ([]map[string]interface{}, error) {
	if database.Elastic == nil {
		return nil, errors.New("elasticsearch client not initialized")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "description", "author"},
			},
		},
	}

	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("query encoding error: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{booksIndex},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("elastic request error: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		json.NewDecoder(res.Body).Decode(&e)
		log.Printf("❌ Elasticsearch error: %+v", e)
		return nil, errors.New("index missing or empty")
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("JSON decoding error: %v", err)
	}

	hitsData, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, errors.New("invalid Elastic response (no hits)")
	}
	hitsArray, ok := hitsData["hits"].([]interface{})
	if !ok {
		return nil, errors.New("invalid Elastic response (hits shape)")
	}

	results := make([]map[string]interface{}, 0, len(hitsArray))
	for _, h := range hitsArray {
		hit, ok := h.(map[string]interface{})
		if !ok {
			continue
		}
		if source, ok := hit["_source"].(map[string]interface{}); ok {
			results = append(results, source)
		}
	}

	return results, nil
}
