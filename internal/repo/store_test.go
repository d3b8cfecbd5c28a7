package repo_test

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-news-api/internal/apperr"
	"github.com/tbourn/go-news-api/internal/repo"
	"github.com/tbourn/go-news-api/internal/seed"
)

// newSeededDB opens a file-backed SQLite store under t.TempDir and loads the
// canonical fixtures.
func newSeededDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "news.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Logger = logger.Default.LogMode(logger.Silent)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := seed.Run(context.Background(), db, seed.TestData()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

func wantBusiness(t *testing.T, err error, status int, msg string) {
	t.Helper()
	var be *apperr.BusinessError
	if !errors.As(err, &be) {
		t.Fatalf("want BusinessError, got %T %v", err, err)
	}
	if be.Status != status || be.Msg != msg {
		t.Fatalf("got %d %q, want %d %q", be.Status, be.Msg, status, msg)
	}
}

func wantStore(t *testing.T, err error, code string) {
	t.Helper()
	var se *apperr.StoreError
	if !errors.As(err, &se) {
		t.Fatalf("want StoreError %s, got %T %v", code, err, err)
	}
	if se.Code != code {
		t.Fatalf("code = %s, want %s (%v)", se.Code, code, err)
	}
}

func TestListTopics_InsertionOrder(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	topics, err := repo.ListTopics(ctx, db)
	if err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if len(topics) != 3 {
		t.Fatalf("len = %d", len(topics))
	}
	if topics[0].Slug != "mitch" || topics[0].Description != "The man, the Mitch, the legend" {
		t.Fatalf("first topic: %+v", topics[0])
	}
	if topics[2].Slug != "paper" || topics[2].Description != "what books are made of" {
		t.Fatalf("third topic: %+v", topics[2])
	}
}

func TestListUsers(t *testing.T) {
	db := newSeededDB(t)

	users, err := repo.ListUsers(context.Background(), db)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 4 || users[0].Username != "butter_bridge" {
		t.Fatalf("unexpected users: %+v", users)
	}
	for _, u := range users {
		if u.Name == "" || u.AvatarURL == "" {
			t.Fatalf("incomplete user: %+v", u)
		}
	}
}

func TestListTopics_EmptyStoreGivesEmptySlice(t *testing.T) {
	db := newSeededDB(t)
	if err := seed.Run(context.Background(), db, seed.Data{}); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	topics, err := repo.ListTopics(context.Background(), db)
	if err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if topics == nil || len(topics) != 0 {
		t.Fatalf("want non-nil empty slice, got %#v", topics)
	}
}

func TestListArticles_NewestFirst_WithCommentCount(t *testing.T) {
	db := newSeededDB(t)

	list, err := repo.ListArticles(context.Background(), db)
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(list) != 6 {
		t.Fatalf("len = %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Fatalf("not sorted desc at %d: %v after %v", i, list[i].CreatedAt, list[i-1].CreatedAt)
		}
	}
	wantIDs := []int64{3, 6, 2, 5, 1, 4}
	wantCounts := map[int64]int64{1: 4, 2: 0, 3: 2, 4: 0, 5: 1, 6: 1}
	for i, a := range list {
		if a.ArticleID != wantIDs[i] {
			t.Fatalf("position %d: id %d, want %d", i, a.ArticleID, wantIDs[i])
		}
		if a.CommentCount != wantCounts[a.ArticleID] {
			t.Fatalf("article %d: comment_count %d, want %d", a.ArticleID, a.CommentCount, wantCounts[a.ArticleID])
		}
		if a.Title == "" || a.Author == "" || a.Topic == "" || a.ArticleImgURL == "" {
			t.Fatalf("incomplete summary: %+v", a)
		}
	}
}

func TestGetArticleByID(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	a, err := repo.GetArticleByID(ctx, db, "1")
	if err != nil {
		t.Fatalf("GetArticleByID: %v", err)
	}
	if a.ArticleID != 1 || a.Author != "butter_bridge" || a.Title != "Living in the shadow of a great man" ||
		a.Body != "I find this existence challenging" || a.Topic != "mitch" || a.Votes != 100 {
		t.Fatalf("unexpected article: %+v", a)
	}
	if want := time.Date(2020, 7, 9, 20, 11, 0, 0, time.UTC); !a.CreatedAt.Equal(want) {
		t.Fatalf("created_at = %v, want %v", a.CreatedAt, want)
	}

	_, err = repo.GetArticleByID(ctx, db, "9999")
	wantBusiness(t, err, http.StatusNotFound, "Article not found")

	_, err = repo.GetArticleByID(ctx, db, "abc")
	wantStore(t, err, apperr.CodeInvalidTextRepresentation)
}

func TestIncrementArticleVotes(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	a, err := repo.IncrementArticleVotes(ctx, db, "1", float64(1))
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if a.Votes != 101 || a.Title != "Living in the shadow of a great man" {
		t.Fatalf("unexpected article: %+v", a)
	}

	a, err = repo.IncrementArticleVotes(ctx, db, "1", float64(-201))
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if a.Votes != -100 {
		t.Fatalf("votes = %d, want -100", a.Votes)
	}
}

func TestIncrementArticleVotes_Failures(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	_, err := repo.IncrementArticleVotes(ctx, db, "9999", float64(1))
	wantBusiness(t, err, http.StatusNotFound, "Path not found")

	_, err = repo.IncrementArticleVotes(ctx, db, "abc", float64(1))
	wantStore(t, err, apperr.CodeInvalidTextRepresentation)

	_, err = repo.IncrementArticleVotes(ctx, db, "1", "cat")
	wantStore(t, err, apperr.CodeInvalidTextRepresentation)

	_, err = repo.IncrementArticleVotes(ctx, db, "1", nil)
	wantStore(t, err, apperr.CodeNotNullViolation)

	a, err := repo.GetArticleByID(ctx, db, "1")
	if err != nil || a.Votes != 100 {
		t.Fatalf("votes changed by failed updates: %+v %v", a, err)
	}
}

func TestIncrementArticleVotes_ConcurrentIsAtomic(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.IncrementArticleVotes(ctx, db, "2", 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent increment: %v", err)
	}

	a, err := repo.GetArticleByID(ctx, db, "2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Votes != n {
		t.Fatalf("votes = %d, want %d", a.Votes, n)
	}
}

func TestListCommentsForArticle(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	cs, err := repo.ListCommentsForArticle(ctx, db, "1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cs) != 4 {
		t.Fatalf("len = %d", len(cs))
	}
	for i, c := range cs {
		if c.ArticleID != 1 {
			t.Fatalf("foreign comment: %+v", c)
		}
		if i > 0 && c.CreatedAt.After(cs[i-1].CreatedAt) {
			t.Fatalf("not sorted desc at %d", i)
		}
	}

	cs, err = repo.ListCommentsForArticle(ctx, db, "2")
	if err != nil || cs == nil || len(cs) != 0 {
		t.Fatalf("article without comments: %#v %v", cs, err)
	}

	cs, err = repo.ListCommentsForArticle(ctx, db, "9999")
	if err != nil || len(cs) != 0 {
		t.Fatalf("unknown article: %#v %v", cs, err)
	}

	_, err = repo.ListCommentsForArticle(ctx, db, "abc")
	wantStore(t, err, apperr.CodeInvalidTextRepresentation)
}

func strp(s string) *string { return &s }

func TestInsertComment(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	c, err := repo.InsertComment(ctx, db, "2", strp("lurker"), strp("first!"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if c.CommentID == 0 || c.ArticleID != 2 || c.Author != "lurker" || c.Body != "first!" || c.Votes != 0 {
		t.Fatalf("unexpected comment: %+v", c)
	}
	if c.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}

	cs, err := repo.ListCommentsForArticle(ctx, db, "2")
	if err != nil || len(cs) != 1 || cs[0].CommentID != c.CommentID {
		t.Fatalf("readback: %+v %v", cs, err)
	}
}

func TestInsertComment_Failures(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	_, err := repo.InsertComment(ctx, db, "9999", strp("lurker"), strp("x"))
	wantStore(t, err, apperr.CodeForeignKeyViolation)

	_, err = repo.InsertComment(ctx, db, "1", strp("nobody"), strp("x"))
	wantStore(t, err, apperr.CodeForeignKeyViolation)

	_, err = repo.InsertComment(ctx, db, "1", strp("lurker"), nil)
	wantStore(t, err, apperr.CodeNotNullViolation)

	_, err = repo.InsertComment(ctx, db, "1", nil, strp("x"))
	wantStore(t, err, apperr.CodeNotNullViolation)

	_, err = repo.InsertComment(ctx, db, "abc", strp("lurker"), strp("x"))
	wantStore(t, err, apperr.CodeInvalidTextRepresentation)
}

func TestDeleteComment(t *testing.T) {
	db := newSeededDB(t)
	ctx := context.Background()

	if err := repo.DeleteComment(ctx, db, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	cs, err := repo.ListCommentsForArticle(ctx, db, "1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, c := range cs {
		if c.CommentID == 1 {
			t.Fatal("comment 1 still present")
		}
	}

	err = repo.DeleteComment(ctx, db, "1")
	wantBusiness(t, err, http.StatusBadRequest, "Bad Request")

	err = repo.DeleteComment(ctx, db, "abc")
	wantStore(t, err, apperr.CodeInvalidTextRepresentation)
}
