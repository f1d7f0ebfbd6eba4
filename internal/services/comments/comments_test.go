package comments

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"cinelist/proj/internal/domain/models"
	"cinelist/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommentsStorage struct {
	mu       sync.Mutex
	comments map[int64]*models.Comment
	nextID   int64
	now      time.Time
}

func newFakeCommentsStorage() *fakeCommentsStorage {
	return &fakeCommentsStorage{comments: make(map[int64]*models.Comment), now: time.Now()}
}

// tick returns strictly increasing timestamps so ordering tests are
// deterministic.
func (f *fakeCommentsStorage) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakeCommentsStorage) Insert(_ context.Context, movieID int64, author, text string, rating int) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ts := f.tick()
	comment := &models.Comment{
		ID:        f.nextID,
		MovieID:   movieID,
		Author:    author,
		Text:      text,
		Rating:    rating,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	f.comments[comment.ID] = comment
	return comment, nil
}

func (f *fakeCommentsStorage) Get(_ context.Context, id int64) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeCommentsStorage) ListForMovie(_ context.Context, movieID int64) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Comment
	for _, comment := range f.comments {
		if comment.MovieID == movieID {
			out = append(out, *comment)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeCommentsStorage) Update(_ context.Context, id int64, text string, rating int) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	comment.Text = text
	comment.Rating = rating
	comment.UpdatedAt = f.tick()
	copied := *comment
	return &copied, nil
}

func (f *fakeCommentsStorage) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.comments[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

func newTestService() (*CommentService, *fakeCommentsStorage) {
	fake := newFakeCommentsStorage()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, fake), fake
}

func TestCreateRatingBounds(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	for _, rating := range []int{0, 6, -1, 100} {
		_, err := svc.Create(ctx, 550, "a@x.com", "text", rating)
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d must be rejected", rating)
	}
	for rating := 1; rating <= 5; rating++ {
		comment, err := svc.Create(ctx, 550, "a@x.com", "text", rating)
		require.NoError(t, err)
		assert.Equal(t, rating, comment.Rating)
	}
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	svc, _ := newTestService()
	comment, err := svc.Create(context.Background(), 550, "a@x.com", "Great film", 5)
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.False(t, comment.CreatedAt.IsZero())

	list, err := svc.ListForMovie(context.Background(), 550)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, comment.ID, list[0].ID)
}

func TestListForMovieNewestFirst(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, 550, "a@x.com", "text", 3)
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, 551, "a@x.com", "other movie", 3)
	require.NoError(t, err)

	list, err := svc.ListForMovie(ctx, 550)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i := 1; i < len(list); i++ {
		assert.True(
			t,
			list[i-1].CreatedAt.After(list[i].CreatedAt),
			"comments must be ordered by creation time descending",
		)
	}
}

func TestUpdateByAuthor(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, 550, "a@x.com", "Great film", 5)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, "a@x.com", "Edited", 4)
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Text)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Author, updated.Author)
	assert.Equal(t, created.MovieID, updated.MovieID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
}

func TestUpdateRevalidatesRating(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, 550, "a@x.com", "Great film", 5)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, "a@x.com", "Edited", 6)
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = svc.Update(ctx, created.ID, "a@x.com", "Edited", 0)
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestOwnershipEnforced(t *testing.T) {
	svc, fake := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, 550, "a@x.com", "Great film", 5)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, "b@x.com", "Hijacked", 1)
	assert.ErrorIs(t, err, ErrNotCommentAuthor)

	err = svc.Delete(ctx, created.ID, "b@x.com")
	assert.ErrorIs(t, err, ErrNotCommentAuthor)
	assert.Len(t, fake.comments, 1, "comment must survive a stranger's delete")

	err = svc.Delete(ctx, created.ID, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, fake.comments)
}

func TestUpdateAndDeleteAbsentComment(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Update(ctx, 42, "a@x.com", "text", 3)
	assert.ErrorIs(t, err, ErrCommentNotFound)
	err = svc.Delete(ctx, 42, "a@x.com")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
