package service

import (
	"encoding/json"
	"html"
	"log"
	"strconv"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"

	"miniblog/internal/dto"
	"miniblog/internal/model"
)

// SearchService maintains the post search index and serves queries.
type SearchService interface {
	IndexPost(post *model.Post) error
	RemovePost(id uint) error
	SearchPosts(query string, publishedOnly bool, limit int) ([]dto.PostResponse, error)
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewMeiliSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	filterable := []any{"status", "category_id"}
	if _, err := s.client.Index("posts").UpdateFilterableAttributes(&filterable); err != nil {
		log.Printf("failed to update posts filterable attributes: %v", err)
	}

	sortable := []string{"created_at"}
	if _, err := s.client.Index("posts").UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("failed to update posts sortable attributes: %v", err)
	}
}

type meiliPostDoc struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Status     string `json:"status"`
	Author     string `json:"author"`
	AuthorID   uint   `json:"author_id"`
	CategoryID uint   `json:"category_id"`
	Category   string `json:"category"`
	CreatedAt  int64  `json:"created_at"`
}

// cleanBodyForIndex strips markup so the index holds plain text only.
func (s *meiliSearchService) cleanBodyForIndex(body string) string {
	body = strings.ReplaceAll(body, "</p>", " ")
	body = strings.ReplaceAll(body, "<br>", " ")

	sanitized := s.sanitizer.Sanitize(body)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *meiliSearchService) IndexPost(post *model.Post) error {
	doc := meiliPostDoc{
		ID:         post.ID,
		Title:      post.Title,
		Body:       s.cleanBodyForIndex(post.Body),
		Status:     post.Status,
		Author:     post.Author.Username,
		AuthorID:   post.AuthorID,
		CategoryID: post.CategoryID,
		Category:   post.Category.Name,
		CreatedAt:  post.CreatedAt.Unix(),
	}

	primaryKey := "id"
	_, err := s.client.Index("posts").AddDocuments([]meiliPostDoc{doc}, &primaryKey)
	return err
}

func (s *meiliSearchService) RemovePost(id uint) error {
	_, err := s.client.Index("posts").DeleteDocument(strconv.FormatUint(uint64(id), 10))
	return err
}

func (s *meiliSearchService) SearchPosts(query string, publishedOnly bool, limit int) ([]dto.PostResponse, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	req := &meilisearch.SearchRequest{Limit: int64(limit)}
	if publishedOnly {
		req.Filter = "status = published"
	}

	resp, err := s.client.Index("posts").Search(query, req)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, err
	}
	var docs []meiliPostDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	results := make([]dto.PostResponse, 0, len(docs))
	for _, doc := range docs {
		results = append(results, dto.PostResponse{
			ID:         doc.ID,
			Title:      doc.Title,
			Body:       doc.Body,
			Status:     doc.Status,
			Author:     doc.Author,
			AuthorID:   doc.AuthorID,
			CategoryID: doc.CategoryID,
			Category:   doc.Category,
		})
	}
	return results, nil
}
