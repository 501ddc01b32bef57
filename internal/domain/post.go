package domain

import "time"

// Post belongs to a thread and optionally points at the previous post in the
// reply chain. PostToPost is nil for a thread's seed post.
type Post struct {
	Id             PostId    `bson:"_id,omitempty"`
	PostUserID     UserId    `bson:"PostUserID"`
	PostBody       string    `bson:"PostBody"`
	PostDate       time.Time `bson:"PostDate"`
	PostToThread   *ThreadId `bson:"PostToThread"`
	PostToPost     *PostId   `bson:"PostToPost"`
	PostVisibility bool      `bson:"PostVisibility"`
}

// PostListing pairs a post with its batch-fetched author.
type PostListing struct {
	Post
	Author *UserSummary
}
