package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"artmarket-gateway/internal/logger"

	"go.uber.org/zap"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

var (
	ErrNotFound       = errors.New("cms: article not found")
	ErrInvalidArticle = errors.New("cms: article needs id and artist_id")
)

// Store keeps articles as JSON documents under artists/<artistID>/articles/.
type Store struct {
	bucket *blob.Bucket
}

// OpenStore opens the bucket behind urlstr (mem://, file:///path, ...).
func OpenStore(ctx context.Context, urlstr string) (*Store, error) {
	b, err := blob.OpenBucket(ctx, urlstr)
	if err != nil {
		return nil, fmt.Errorf("cms: opening bucket %q: %w", urlstr, err)
	}
	return NewStore(b), nil
}

func NewStore(b *blob.Bucket) *Store {
	return &Store{bucket: b}
}

func (s *Store) Close() error {
	return s.bucket.Close()
}

func articlesPrefix(artistID string) string {
	return path.Join("artists", artistID, "articles") + "/"
}

func articleKey(artistID, id string) string {
	return articlesPrefix(artistID) + id + ".json"
}

func (s *Store) PutArticle(ctx context.Context, a Article) error {
	if a.ID == "" || a.ArtistID == "" {
		return ErrInvalidArticle
	}
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.bucket.WriteAll(ctx, articleKey(a.ArtistID, a.ID), data, &blob.WriterOptions{
		ContentType: "application/json",
	})
}

func (s *Store) Article(ctx context.Context, artistID, id string) (*Article, error) {
	data, err := s.bucket.ReadAll(ctx, articleKey(artistID, id))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var a Article
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("cms: decoding %s: %w", id, err)
	}
	return &a, nil
}

// ArtistArticles returns one window of the artist's articles ordered by
// PublishedAt, plus the number of articles the artist has.
func (s *Store) ArtistArticles(ctx context.Context, artistID string, opts ListOptions) ([]Article, int, error) {
	all, err := s.listAll(ctx, artistID)
	if err != nil {
		return nil, 0, err
	}

	desc := opts.Sort != "ASC"
	slices.SortFunc(all, func(a, b Article) int {
		c := a.PublishedAt.Compare(b.PublishedAt)
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		if desc {
			return -c
		}
		return c
	})

	total := len(all)
	start := min(max(opts.Offset, 0), total)
	end := total
	if opts.Size >= 0 {
		end = min(start+opts.Size, total)
	}
	return all[start:end], total, nil
}

func (s *Store) listAll(ctx context.Context, artistID string) ([]Article, error) {
	var articles []Article
	iter := s.bucket.List(&blob.ListOptions{Prefix: articlesPrefix(artistID)})
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cms: listing %s: %w", artistID, err)
		}
		if obj.IsDir || !strings.HasSuffix(obj.Key, ".json") {
			continue
		}

		data, err := s.bucket.ReadAll(ctx, obj.Key)
		if err != nil {
			return nil, fmt.Errorf("cms: reading %s: %w", obj.Key, err)
		}
		var a Article
		if err := json.Unmarshal(data, &a); err != nil {
			logger.FromCtx(ctx).Warn("skipping malformed article", zap.String("key", obj.Key), zap.Error(err))
			continue
		}
		articles = append(articles, a)
	}
	return articles, nil
}
