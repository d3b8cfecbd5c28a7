// Package seed loads fixture data into the store. Tests use it to start
// every case from a known state; the server uses it when SEED_ON_START is
// set.
package seed

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-news-api/internal/domain"
	"github.com/tbourn/go-news-api/internal/repo"
)

// Data is a complete fixture set. Article and comment identities are
// assigned by the store in slice order, starting at 1.
type Data struct {
	Topics   []domain.Topic
	Users    []domain.User
	Articles []domain.Article
	Comments []domain.Comment
}

// Run drops and recreates all tables, then inserts data in dependency order.
func Run(ctx context.Context, db *gorm.DB, data Data) error {
	db = db.WithContext(ctx)
	if err := db.Migrator().DropTable(&domain.Comment{}, &domain.Article{}, &domain.User{}, &domain.Topic{}); err != nil {
		return fmt.Errorf("seed: drop tables: %w", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		return fmt.Errorf("seed: create tables: %w", err)
	}

	tx := db.Omit(clause.Associations).Session(&gorm.Session{})
	if len(data.Topics) > 0 {
		if err := tx.Create(&data.Topics).Error; err != nil {
			return fmt.Errorf("seed: topics: %w", err)
		}
	}
	if len(data.Users) > 0 {
		if err := tx.Create(&data.Users).Error; err != nil {
			return fmt.Errorf("seed: users: %w", err)
		}
	}
	// One row per statement keeps identity assignment in slice order on
	// every driver.
	for i := range data.Articles {
		if err := tx.Create(&data.Articles[i]).Error; err != nil {
			return fmt.Errorf("seed: article %d: %w", i+1, err)
		}
	}
	for i := range data.Comments {
		if err := tx.Create(&data.Comments[i]).Error; err != nil {
			return fmt.Errorf("seed: comment %d: %w", i+1, err)
		}
	}
	return nil
}

func at(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

const defaultImg = "https://images.pexels.com/photos/158651/news-newsletter-newspaper-information-158651.jpeg?w=700&h=700"

// TestData returns the canonical fixture set. Article 1 has 100 votes and
// several comments; article 2 has none.
func TestData() Data {
	return Data{
		Topics: []domain.Topic{
			{Slug: "mitch", Description: "The man, the Mitch, the legend"},
			{Slug: "cats", Description: "Not dogs"},
			{Slug: "paper", Description: "what books are made of"},
		},
		Users: []domain.User{
			{Username: "butter_bridge", Name: "jonny", AvatarURL: "https://www.healthytherapies.com/wp-content/uploads/2016/06/Lime3.jpg"},
			{Username: "icellusedkars", Name: "sam", AvatarURL: "https://avatars2.githubusercontent.com/u/24604688?s=460&v=4"},
			{Username: "rogersop", Name: "paul", AvatarURL: "https://avatars2.githubusercontent.com/u/24394918?s=400&v=4"},
			{Username: "lurker", Name: "do_nothing", AvatarURL: "https://www.golenbock.com/wp-content/uploads/2015/01/placeholder-user.png"},
		},
		Articles: []domain.Article{
			{
				Title: "Living in the shadow of a great man", Topic: "mitch", Author: "butter_bridge",
				Body: "I find this existence challenging", CreatedAt: at(1594325460000), Votes: 100,
				ArticleImgURL: defaultImg,
			},
			{
				Title: "Sony Vaio; or, The Laptop", Topic: "mitch", Author: "icellusedkars",
				Body:      "Call me Mitchell. Some years ago I thought I would buy a laptop and see the watery part of the world.",
				CreatedAt: at(1602828180000), ArticleImgURL: defaultImg,
			},
			{
				Title: "Eight pug gifs that remind me of mitch", Topic: "mitch", Author: "icellusedkars",
				Body: "some gifs", CreatedAt: at(1604394720000), ArticleImgURL: defaultImg,
			},
			{
				Title: "Student SUES Mitch!", Topic: "mitch", Author: "rogersop",
				Body:      "We all love Mitch and his wonderful, unique typing style.",
				CreatedAt: at(1588731240000), ArticleImgURL: defaultImg,
			},
			{
				Title: "UNCOVERED: catspiracy to bring down democracy", Topic: "cats", Author: "rogersop",
				Body: "Bastet walks amongst us, and the cats are taking arms!", CreatedAt: at(1596464040000),
				ArticleImgURL: defaultImg,
			},
			{
				Title: "A", Topic: "mitch", Author: "icellusedkars",
				Body: "Delicious tin of cat food", CreatedAt: at(1602986400000), ArticleImgURL: defaultImg,
			},
		},
		Comments: []domain.Comment{
			{ArticleID: 1, Author: "butter_bridge", Votes: 16, CreatedAt: at(1586179020000),
				Body: "The beautiful thing about treasure is that it exists. Got to find out what kind of sheets these are."},
			{ArticleID: 1, Author: "butter_bridge", Votes: 14, CreatedAt: at(1604113380000),
				Body: "Replacing the quiet elegance of the dark suit and tie with the casual indifference of these muted earth tones is a form of fashion suicide, but, uh, call me crazy, on you it works."},
			{ArticleID: 1, Author: "icellusedkars", Votes: 100, CreatedAt: at(1583025180000),
				Body: "The owls are not what they seem."},
			{ArticleID: 1, Author: "icellusedkars", Votes: -100, CreatedAt: at(1582459260000),
				Body: "I hate streaming noses"},
			{ArticleID: 3, Author: "icellusedkars", Votes: 0, CreatedAt: at(1600560600000),
				Body: "Ambidextrous marsupial"},
			{ArticleID: 3, Author: "icellusedkars", Votes: 0, CreatedAt: at(1579126860000),
				Body: "git push origin master"},
			{ArticleID: 5, Author: "icellusedkars", Votes: 0, CreatedAt: at(1592641440000),
				Body: "What do you see? I have no idea where this will lead us."},
			{ArticleID: 6, Author: "butter_bridge", Votes: 16, CreatedAt: at(1601761920000),
				Body: "This is a bad article name"},
		},
	}
}
