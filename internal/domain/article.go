package domain

import "time"

type Article struct {
	Id                ArticleId `bson:"_id,omitempty"`
	ArticleUserID     UserId    `bson:"ArticleUserID"`
	ArticleTitle      string    `bson:"ArticleTitle"`
	ArticleBody       string    `bson:"ArticleBody"`
	ArticleImage      string    `bson:"ArticleImage,omitempty"`
	ArticleDate       time.Time `bson:"ArticleDate"`
	ArticleCategory   Category  `bson:"ArticleCategory"`
	ArticleHashtags   Hashtags  `bson:"ArticleHashtags"`
	ArticleVisibility bool      `bson:"ArticleVisibility"`
}

// ArticleListing pairs an article with its batch-fetched author.
type ArticleListing struct {
	Article
	Author *UserSummary
}
