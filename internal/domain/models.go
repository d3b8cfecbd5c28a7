// Package domain defines the persistence models for topics, users, articles,
// and comments. These types are mapped with GORM and their JSON tags form the
// wire contract of the public API.
package domain

import "time"

// Topic is a subject area articles are filed under. Topics are read-only
// through the API.
type Topic struct {
	Slug        string `json:"slug"        gorm:"type:varchar(255);primaryKey"`
	Description string `json:"description" gorm:"type:varchar(255);not null"`
}

// TableName returns the database table name for Topic.
func (Topic) TableName() string { return "topics" }

// User is a registered author of articles and comments. Users are read-only
// through the API.
type User struct {
	Username  string `json:"username"   gorm:"type:varchar(255);primaryKey"`
	Name      string `json:"name"       gorm:"type:varchar(255);not null"`
	AvatarURL string `json:"avatar_url" gorm:"column:avatar_url;type:varchar(1000)"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Article is a single news item. Votes are only ever changed by an atomic
// increment at the store.
//
// Fields:
//   - ArticleID: serial primary key.
//   - Topic: foreign key to topics.slug.
//   - Author: foreign key to users.username.
//   - CreatedAt: set by the store when not supplied.
//   - Votes: defaults to 0.
type Article struct {
	ArticleID     int64     `json:"article_id"      gorm:"primaryKey;autoIncrement"`
	Title         string    `json:"title"           gorm:"type:varchar(255);not null"`
	Topic         string    `json:"topic"           gorm:"type:varchar(255);not null;index"`
	Author        string    `json:"author"          gorm:"type:varchar(255);not null;index"`
	Body          string    `json:"body"            gorm:"type:text;not null"`
	CreatedAt     time.Time `json:"created_at"      gorm:"not null;default:CURRENT_TIMESTAMP;index"`
	Votes         int       `json:"votes"           gorm:"not null;default:0"`
	ArticleImgURL string    `json:"article_img_url" gorm:"column:article_img_url;type:varchar(1000)"`

	TopicRef  Topic     `json:"-" gorm:"foreignKey:Topic;references:Slug"`
	AuthorRef User      `json:"-" gorm:"foreignKey:Author;references:Username"`
	Comments  []Comment `json:"-" gorm:"foreignKey:ArticleID;references:ArticleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Article.
func (Article) TableName() string { return "articles" }

// ArticleSummary is the list projection of an Article: the body is omitted
// and CommentCount is aggregated over comments at read time.
type ArticleSummary struct {
	ArticleID     int64     `json:"article_id"`
	Author        string    `json:"author"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
	CommentCount  int64     `json:"comment_count"`
}

// Comment is a reader response attached to an article. Comments are removed
// together with their article.
type Comment struct {
	CommentID int64     `json:"comment_id" gorm:"primaryKey;autoIncrement"`
	Body      string    `json:"body"       gorm:"type:text;not null"`
	ArticleID int64     `json:"article_id" gorm:"not null;index:idx_article_comments,priority:1"`
	Author    string    `json:"author"     gorm:"type:varchar(255);not null"`
	Votes     int       `json:"votes"      gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_article_comments,priority:2"`

	AuthorRef User `json:"-" gorm:"foreignKey:Author;references:Username"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }
