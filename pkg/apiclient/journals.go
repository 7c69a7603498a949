package apiclient

import (
	"context"
	"net/url"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/focus/domain"
)

type JournalInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tag     string `json:"tag"`
	UserID  string `json:"user_id,omitempty"`
}

func (c *Client) ListJournals(ctx context.Context) ([]domain.Journal, error) {
	var journals []domain.Journal
	if err := c.do(ctx, fasthttp.MethodGet, "/api/journals", true, nil, &journals); err != nil {
		return nil, err
	}
	return journals, nil
}

func (c *Client) CreateJournal(ctx context.Context, in JournalInput) (*domain.Journal, error) {
	var journal domain.Journal
	if err := c.do(ctx, fasthttp.MethodPost, "/api/journals", true, in, &journal); err != nil {
		return nil, err
	}
	return &journal, nil
}

func (c *Client) UpdateJournal(ctx context.Context, id string, in JournalInput) (*domain.Journal, error) {
	in.UserID = ""
	var journal domain.Journal
	if err := c.do(ctx, fasthttp.MethodPut, "/api/journals/"+url.PathEscape(id), true, in, &journal); err != nil {
		return nil, err
	}
	return &journal, nil
}

func (c *Client) DeleteJournal(ctx context.Context, id string) error {
	return c.do(ctx, fasthttp.MethodDelete, "/api/journals/"+url.PathEscape(id), true, nil, nil)
}
