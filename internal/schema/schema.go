// Package schema holds declarative per-entity field rules, evaluated by the
// storage layer just before a write. It mirrors the request-level pipeline as
// a defensive second layer: whatever slips past the handlers is still caught
// here and reported as a field -> message map.
package schema

import (
	"regexp"

	"github.com/Pangeneses/NeonServer/internal/domain"
	internal_errors "github.com/Pangeneses/NeonServer/internal/errors"
)

type rule[T any] struct {
	Field    string
	Message  string
	Optional bool // empty value passes
	Get      func(*T) string
	Pattern  *regexp.Regexp
	Check    func(*T) bool // used instead of Pattern for non-string rules
}

func validate[T any](entity *T, rules []rule[T]) error {
	details := map[string]string{}
	for _, r := range rules {
		if r.Check != nil {
			if !r.Check(entity) {
				details[r.Field] = r.Message
			}
			continue
		}
		v := r.Get(entity)
		if v == "" {
			if !r.Optional {
				details[r.Field] = r.Message
			}
			continue
		}
		if !r.Pattern.MatchString(v) {
			details[r.Field] = r.Message
		}
	}
	if len(details) > 0 {
		return &internal_errors.SchemaError{Details: details}
	}
	return nil
}

var (
	alnumRe    = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	nameRe     = regexp.MustCompile(`^[a-zA-Z-]+$`)
	placeRe    = regexp.MustCompile(`^[a-zA-Z- ]+$`)
	addressRe  = regexp.MustCompile(`^[a-zA-Z0-9- ]+$`)
	postCodeRe = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)
	journalRe  = regexp.MustCompile(`^[a-zA-Z0-9-#\r\n ]+$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	titleRe    = regexp.MustCompile(`^[a-zA-Z0-9-; ]+$`)
	categoryRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	imageRe    = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\.(webp|jpg)$`)
	hashtagRe  = regexp.MustCompile(`^#[a-zA-Z0-9]{1,29}$`)
)

func hashtagsValid(tags domain.Hashtags) bool {
	if len(tags) > 10 {
		return false
	}
	for _, tag := range tags {
		if !hashtagRe.MatchString(tag) {
			return false
		}
	}
	return true
}

var userRules = []rule[domain.User]{
	{Field: "UserName", Message: "UserName must be a - z, A - Z, or 0 - 9 no white space.",
		Get: func(u *domain.User) string { return u.UserName }, Pattern: alnumRe},
	{Field: "FirstName", Message: "First name shouldn't include special characters.",
		Get: func(u *domain.User) string { return u.FirstName }, Pattern: nameRe},
	{Field: "LastName", Message: "Last name shouldn't include special characters.",
		Get: func(u *domain.User) string { return u.LastName }, Pattern: nameRe},
	{Field: "Avatar", Message: "Avatar should be UUID and .jpg or .webp.", Optional: true,
		Get: func(u *domain.User) string { return u.Avatar }, Pattern: imageRe},
	{Field: "JournalDesc", Message: "Journal description shouldn't include special characters.", Optional: true,
		Get: func(u *domain.User) string { return u.JournalDesc }, Pattern: journalRe},
	{Field: "AddressOne", Message: "Address shouldn't include special characters.", Optional: true,
		Get: func(u *domain.User) string { return u.AddressOne }, Pattern: addressRe},
	{Field: "AddressTwo", Message: "Address shouldn't include special characters.", Optional: true,
		Get: func(u *domain.User) string { return u.AddressTwo }, Pattern: postCodeRe},
	{Field: "City", Message: "Please provide a valid City name.", Optional: true,
		Get: func(u *domain.User) string { return u.City }, Pattern: placeRe},
	{Field: "Region", Message: "Please provide a valid Region for your Country.", Optional: true,
		Get: func(u *domain.User) string { return u.Region }, Pattern: placeRe},
	{Field: "Post", Message: "Please provide a valid post code.", Optional: true,
		Get: func(u *domain.User) string { return u.PostCode }, Pattern: postCodeRe},
	{Field: "Country", Message: "Please provide a valid Country.", Optional: true,
		Get: func(u *domain.User) string { return u.Country }, Pattern: placeRe},
	{Field: "EMail", Message: "Please provide a valid email.", Optional: true,
		Get: func(u *domain.User) string { return u.EMail }, Pattern: emailRe},
	{Field: "Role", Message: "Role must be Admin or User.",
		Check: func(u *domain.User) bool { return u.Role == domain.RoleAdmin || u.Role == domain.RoleUser }},
}

var articleRules = []rule[domain.Article]{
	{Field: "ArticleUserID", Message: "Article requires an author.",
		Check: func(a *domain.Article) bool { return !a.ArticleUserID.IsZero() }},
	{Field: "ArticleTitle", Message: "Article title shouldn't include special characters.",
		Get: func(a *domain.Article) string { return a.ArticleTitle }, Pattern: titleRe},
	{Field: "ArticleBody", Message: "Article requires content.",
		Check: func(a *domain.Article) bool { return a.ArticleBody != "" }},
	{Field: "ArticleImage", Message: "ArticleImage must be a UUID with .webp or .jpg extension.", Optional: true,
		Get: func(a *domain.Article) string { return a.ArticleImage }, Pattern: imageRe},
	{Field: "ArticleCategory", Message: "Article requires a category.",
		Get: func(a *domain.Article) string { return a.ArticleCategory }, Pattern: categoryRe},
	{Field: "ArticleHashtags", Message: "Each hashtag must be an alphanumeric string under 30 chars.",
		Check: func(a *domain.Article) bool { return hashtagsValid(a.ArticleHashtags) }},
}

var threadRules = []rule[domain.Thread]{
	{Field: "ThreadUserID", Message: "Thread requires an author.",
		Check: func(t *domain.Thread) bool { return !t.ThreadUserID.IsZero() }},
	{Field: "ThreadTitle", Message: "Thread title shouldn't include special characters.",
		Get: func(t *domain.Thread) string { return t.ThreadTitle }, Pattern: titleRe},
	{Field: "ThreadImage", Message: "ThreadImage must be a UUID with .webp or .jpg extension.", Optional: true,
		Get: func(t *domain.Thread) string { return t.ThreadImage }, Pattern: imageRe},
	{Field: "ThreadAccess", Message: "ThreadAccess must be a number between 0 and 60 (months).",
		Check: func(t *domain.Thread) bool { return t.ThreadAccess >= 0 && t.ThreadAccess <= 60 }},
	{Field: "ThreadCategory", Message: "Thread requires a category.",
		Get: func(t *domain.Thread) string { return t.ThreadCategory }, Pattern: categoryRe},
	{Field: "ThreadHashtags", Message: "Each hashtag must be an alphanumeric string under 30 chars.",
		Check: func(t *domain.Thread) bool { return hashtagsValid(t.ThreadHashtags) }},
}

var postRules = []rule[domain.Post]{
	{Field: "PostUserID", Message: "Post requires an author.",
		Check: func(p *domain.Post) bool { return !p.PostUserID.IsZero() }},
}

func ValidateUser(u *domain.User) error       { return validate(u, userRules) }
func ValidateArticle(a *domain.Article) error { return validate(a, articleRules) }
func ValidateThread(t *domain.Thread) error   { return validate(t, threadRules) }
func ValidatePost(p *domain.Post) error       { return validate(p, postRules) }
