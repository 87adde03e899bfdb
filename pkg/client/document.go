package client

import (
	"context"

	"go.uber.org/zap"
)

// NewDocument payload of POST /api/v1/documents
type NewDocument struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	TemplateType string `json:"template_type,omitempty"`
	RecipientID  *uint  `json:"recipient_id,omitempty"`
}

// DocumentInfo document as returned by the document service
type DocumentInfo struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Status       string `json:"status"`
	AuthorID     uint   `json:"author_id"`
	TemplateType string `json:"template_type"`
	CreatedAt    string `json:"created_at"`
}

// TemplateInfo document template as returned by the document service
type TemplateInfo struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DocumentClient typed client of the document service
type DocumentClient struct {
	c *Client
}

// NewDocumentClient creates a DocumentClient
func NewDocumentClient(opts Options, logger *zap.Logger) *DocumentClient {
	return &DocumentClient{c: New("document", opts, logger)}
}

// CreateDocument POST /api/v1/documents, authored by the forwarded caller
func (d *DocumentClient) CreateDocument(ctx context.Context, doc NewDocument) (*DocumentInfo, error) {
	var out DocumentInfo
	if err := d.c.Post(ctx, "/api/v1/documents", doc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTemplates GET /api/v1/templates, filtered to what the caller may use
func (d *DocumentClient) ListTemplates(ctx context.Context) ([]TemplateInfo, error) {
	var out []TemplateInfo
	if err := d.c.Get(ctx, "/api/v1/templates", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
