package domain

import "time"

// Thread owns an ordered, append-only list of post ids. ThreadPosts is seeded
// with exactly one post at creation and never shrinks.
type Thread struct {
	Id               ThreadId  `bson:"_id,omitempty"`
	ThreadUserID     UserId    `bson:"ThreadUserID"`
	ThreadTitle      string    `bson:"ThreadTitle"`
	ThreadImage      string    `bson:"ThreadImage,omitempty"`
	ThreadDate       time.Time `bson:"ThreadDate"`
	ThreadAccess     int       `bson:"ThreadAccess"`
	ThreadCategory   Category  `bson:"ThreadCategory"`
	ThreadHashtags   Hashtags  `bson:"ThreadHashtags"`
	ThreadPosts      []PostId  `bson:"ThreadPosts"`
	ThreadVisibility bool      `bson:"ThreadVisibility"`
}

// ThreadCreationData travels handler -> service -> storage.
type ThreadCreationData struct {
	Thread   Thread
	SeedBody string // body of the seed post, already sanitized by the service
}

// ThreadListing is a thread enriched for chunk responses: the seed post and
// its author, merged by the read-side join.
type ThreadListing struct {
	Thread
	SeedPostID PostId
	SeedBody   string
	Author     *UserSummary
}
