package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User carries the full profile. Password holds the bcrypt hash and is never
// serialized into responses.
type User struct {
	Id          UserId    `bson:"_id,omitempty" json:"-"`
	UserName    string    `bson:"UserName" json:"UserName"`
	Password    string    `bson:"Password,omitempty" json:"-"`
	Avatar      string    `bson:"Avatar,omitempty" json:"Avatar,omitempty"`
	JournalDesc string    `bson:"JournalDesc,omitempty" json:"JournalDesc,omitempty"`
	FirstName   string    `bson:"FirstName" json:"FirstName"`
	LastName    string    `bson:"LastName" json:"LastName"`
	AddressOne  string    `bson:"AddressOne,omitempty" json:"AddressOne,omitempty"`
	AddressTwo  string    `bson:"AddressTwo,omitempty" json:"AddressTwo,omitempty"`
	City        string    `bson:"City,omitempty" json:"City,omitempty"`
	Region      string    `bson:"Region,omitempty" json:"Region,omitempty"`
	PostCode    string    `bson:"Post,omitempty" json:"Post,omitempty"`
	Country     string    `bson:"Country,omitempty" json:"Country,omitempty"`
	EMail       string    `bson:"EMail,omitempty" json:"EMail,omitempty"`
	Cellphone   string    `bson:"Cellphone,omitempty" json:"Cellphone,omitempty"`
	DateOfBirth time.Time `bson:"DateOfBirth,omitempty" json:"DateOfBirth"`
	CreatedDate time.Time `bson:"CreatedDate" json:"CreatedDate"`
	Role        string    `bson:"Role" json:"Role"`
}

// UserSummary is the merged shape used by read-side joins and user listings.
type UserSummary struct {
	Id       UserId `bson:"_id" json:"ID"`
	UserName string `bson:"UserName" json:"UserName"`
	Avatar   string `bson:"Avatar,omitempty" json:"Avatar,omitempty"`
}

// UserScanQuery drives the regex-cursor search over user names.
type UserScanQuery struct {
	Pattern   string
	LastID    *primitive.ObjectID
	Ascending bool
	Limit     int64
}
