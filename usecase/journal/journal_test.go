package journal

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/focus/domain"
	"github.com/fastygo/focus/repository"
	"github.com/fastygo/focus/repository/memory"
)

func TestJournalLifecycle(t *testing.T) {
	uc := New(memory.NewStore().Journals(), nil, nil)
	ctx := context.Background()

	created, err := uc.CreateJournal(ctx, "u1", Input{Title: "Monday", Content: "calm", Tag: "  mood "})
	require.NoError(t, err)
	assert.Equal(t, "mood", created.Tag)

	updated, err := uc.UpdateJournal(ctx, "u1", created.ID, Input{Title: "Tuesday", Content: "busy", Tag: "work"})
	require.NoError(t, err)
	assert.Equal(t, "Tuesday", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = uc.UpdateJournal(ctx, "u2", created.ID, Input{Title: "hijack"})
	assert.ErrorIs(t, err, domain.ErrJournalNotFound)

	list, err := uc.ListJournals(ctx, repository.JournalFilter{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, uc.DeleteJournal(ctx, "u1", created.ID))
	assert.ErrorIs(t, uc.DeleteJournal(ctx, "u1", created.ID), domain.ErrJournalNotFound)
}

func TestCreateJournal_TitleRules(t *testing.T) {
	uc := New(memory.NewStore().Journals(), nil, nil)

	_, err := uc.CreateJournal(context.Background(), "u1", Input{Title: ""})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.CreateJournal(context.Background(), "u1", Input{Title: strings.Repeat("t", 21)})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}
