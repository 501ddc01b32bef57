package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type (
	UserId    = primitive.ObjectID
	ArticleId = primitive.ObjectID
	ThreadId  = primitive.ObjectID
	PostId    = primitive.ObjectID

	Category = string
	Hashtags = []string
)

// DefaultImage is assigned when a thread or article is created without one.
const DefaultImage = "d741b779-9c57-472a-a983-5c1dcaef7426.webp"

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)
