package apiclient

import (
	"context"
	"net/url"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/focus/domain"
)

type NewTask struct {
	Text     string          `json:"text"`
	Deadline *domain.Date    `json:"deadline"`
	Quadrant domain.Quadrant `json:"quadrant"`
}

// TaskUpdate is a partial update; nil fields are omitted from the body.
type TaskUpdate struct {
	Text     *string          `json:"text,omitempty"`
	Deadline *domain.Date     `json:"deadline,omitempty"`
	Quadrant *domain.Quadrant `json:"quadrant,omitempty"`
}

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, fasthttp.MethodGet, "/api/tasks", true, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, in NewTask) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, fasthttp.MethodPost, "/api/tasks", true, in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, in TaskUpdate) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, fasthttp.MethodPut, "/api/tasks/"+url.PathEscape(id), true, in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// MoveTask sends only the new quadrant.
func (c *Client) MoveTask(ctx context.Context, id string, target domain.Quadrant) (*domain.Task, error) {
	return c.UpdateTask(ctx, id, TaskUpdate{Quadrant: &target})
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, fasthttp.MethodDelete, "/api/tasks/"+url.PathEscape(id), true, nil, nil)
}
