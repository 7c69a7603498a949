package httpcontext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestAttach_PropagatesRequestID(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("X-Request-ID", "abc")
	SetIdentity(&ctx, "u1", "alice", "s1")

	stdCtx, cancel := NewAdapter(time.Second).Attach(&ctx)
	defer cancel()

	assert.Equal(t, "abc", string(ctx.Response.Header.Peek("X-Request-ID")))
	assert.Equal(t, "u1", stdCtx.Value(KeyUserID))
	_, hasDeadline := stdCtx.Deadline()
	assert.True(t, hasDeadline)
}

func TestAttach_GeneratesRequestID(t *testing.T) {
	var ctx fasthttp.RequestCtx

	_, cancel := NewAdapter(0).Attach(&ctx)
	defer cancel()

	assert.Len(t, string(ctx.Response.Header.Peek("X-Request-ID")), 36)
	assert.Empty(t, UserID(&ctx))
	assert.Empty(t, SessionID(&ctx))
}
