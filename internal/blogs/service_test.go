package blogs_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/oversea-labs/compass/internal/blogs"
	"github.com/oversea-labs/compass/internal/platform/httpx"
	_ "github.com/oversea-labs/compass/testing"
)

type memoryRepo struct {
	posts  map[string]blogs.Blog
	nextID int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{posts: make(map[string]blogs.Blog), nextID: 1}
}

func (r *memoryRepo) Insert(ctx context.Context, blog *blogs.Blog) (string, error) {
	for _, p := range r.posts {
		if p.Slug == blog.Slug {
			return "", blogs.ErrSlugTaken
		}
	}
	id := fmt.Sprintf("b%d", r.nextID)
	r.nextID++
	stored := *blog
	stored.ID = id
	r.posts[id] = stored
	return id, nil
}

func (r *memoryRepo) Update(ctx context.Context, blog *blogs.Blog) error {
	if _, ok := r.posts[blog.ID]; !ok {
		return blogs.ErrNotFound
	}
	r.posts[blog.ID] = *blog
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return blogs.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id string) (*blogs.Blog, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, blogs.ErrNotFound
	}
	return &p, nil
}

func (r *memoryRepo) FindBySlug(ctx context.Context, slug, status string) (*blogs.Blog, error) {
	for _, p := range r.posts {
		if p.Slug == slug && (status == "" || p.Status == status) {
			return &p, nil
		}
	}
	return nil, blogs.ErrNotFound
}

func (r *memoryRepo) List(ctx context.Context, status string) ([]blogs.Blog, error) {
	var out []blogs.Blog
	for _, p := range r.posts {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestService(t *testing.T, repo blogs.Repository) *blogs.Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return blogs.NewService(repo, blogs.NewCache(client, time.Minute))
}

func TestCreateDerivesSlug(t *testing.T) {
	service := newTestService(t, newMemoryRepo())

	post, err := service.Create(context.Background(), blogs.CreateBlogRequest{
		Title:   "Études à Montréal: A Guide",
		Content: "body",
		Status:  blogs.StatusPublished,
	})
	require.NoError(t, err)
	require.Equal(t, "etudes-a-montreal-a-guide", post.Slug)
	require.NotEmpty(t, post.ID)
}

func TestCreateDefaultsToDraft(t *testing.T) {
	service := newTestService(t, newMemoryRepo())

	post, err := service.Create(context.Background(), blogs.CreateBlogRequest{Title: "Draft Post", Content: "x"})
	require.NoError(t, err)
	require.Equal(t, blogs.StatusDraft, post.Status)

	published, err := service.ListPublished(context.Background())
	require.NoError(t, err)
	require.Empty(t, published)
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	service := newTestService(t, newMemoryRepo())

	_, err := service.Create(context.Background(), blogs.CreateBlogRequest{Title: "x", Content: "y", Status: "live"})
	require.ErrorIs(t, err, blogs.ErrInvalidStatus)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestListPublishedUsesCache(t *testing.T) {
	repo := newMemoryRepo()
	service := newTestService(t, repo)

	_, err := service.Create(context.Background(), blogs.CreateBlogRequest{
		Title: "First", Content: "x", Status: blogs.StatusPublished,
	})
	require.NoError(t, err)

	first, err := service.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Mutate the store behind the service's back: the warm cache should
	// still serve the previous listing.
	repo.posts = map[string]blogs.Blog{}
	cached, err := service.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, cached, 1)
}

func TestWritesInvalidateCache(t *testing.T) {
	repo := newMemoryRepo()
	service := newTestService(t, repo)

	_, err := service.Create(context.Background(), blogs.CreateBlogRequest{
		Title: "First", Content: "x", Status: blogs.StatusPublished,
	})
	require.NoError(t, err)

	listed, err := service.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)

	_, err = service.Create(context.Background(), blogs.CreateBlogRequest{
		Title: "Second", Content: "y", Status: blogs.StatusPublished,
	})
	require.NoError(t, err)

	listed, err = service.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 2)
}

func TestUpdateRestatusesPost(t *testing.T) {
	repo := newMemoryRepo()
	service := newTestService(t, repo)

	post, err := service.Create(context.Background(), blogs.CreateBlogRequest{Title: "Draft", Content: "x"})
	require.NoError(t, err)

	published := blogs.StatusPublished
	updated, err := service.Update(context.Background(), post.ID, blogs.UpdateBlogRequest{Status: &published})
	require.NoError(t, err)
	require.Equal(t, blogs.StatusPublished, updated.Status)

	got, err := service.GetPublished(context.Background(), post.Slug)
	require.NoError(t, err)
	require.Equal(t, post.ID, got.ID)
}

func TestUpdateMissingPost(t *testing.T) {
	service := newTestService(t, newMemoryRepo())

	title := "New Title"
	_, err := service.Update(context.Background(), "nope", blogs.UpdateBlogRequest{Title: &title})
	require.ErrorIs(t, err, blogs.ErrNotFound)
}
