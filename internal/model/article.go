package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	CategoryPolitics      = "politics"
	CategoryBusiness      = "business"
	CategorySports        = "sports"
	CategoryEntertainment = "entertainment"
	CategoryHealth        = "health"
	CategoryTechnology    = "technology"
	CategoryWorld         = "world"
)

// Categories lists the category slugs the authoring flow accepts.
var Categories = []string{
	CategoryPolitics,
	CategoryBusiness,
	CategorySports,
	CategoryEntertainment,
	CategoryHealth,
	CategoryTechnology,
	CategoryWorld,
}

type Article struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Title        string    `bson:"title" json:"title"`
	TitleLower   string    `bson:"title_lower" json:"-"`
	Writer       string    `bson:"writer" json:"writer"`
	Summary      string    `bson:"summary" json:"summary"`
	Content      string    `bson:"content" json:"content"`
	ImageURL     string    `bson:"image_url" json:"image_url"`
	VideoURL     string    `bson:"video_url,omitempty" json:"video_url,omitempty"`
	Category     string    `bson:"category" json:"category"`
	BreakingNews bool      `bson:"breaking_news" json:"breaking_news"`
	Verified     bool      `bson:"verified" json:"verified"`
	Likes        int64     `bson:"likes" json:"likes"`
	Views        int64     `bson:"views" json:"views"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

type Comment struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	ArticleID string    `bson:"article_id" json:"article_id"`
	AuthorRef string    `bson:"author_ref" json:"author_ref"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type Reply struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CommentID string    `bson:"comment_id" json:"comment_id"`
	AuthorRef string    `bson:"author_ref" json:"author_ref"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ArticleInput carries the authoring form fields. Validation happens
// here, before any database call is made.
type ArticleInput struct {
	Title        string `json:"title"`
	Writer       string `json:"writer"`
	Summary      string `json:"summary"`
	Content      string `json:"content"`
	ImageURL     string `json:"image_url"`
	VideoURL     string `json:"video_url"`
	Category     string `json:"category"`
	BreakingNews bool   `json:"breaking_news"`
	Verified     bool   `json:"verified"`
}

const (
	minTitleLen   = 10
	maxTitleLen   = 120
	minContentLen = 100
)

func (in *ArticleInput) Validate() error {
	var problems []string

	title := strings.TrimSpace(in.Title)
	if len(title) < minTitleLen || len(title) > maxTitleLen {
		problems = append(problems, fmt.Sprintf("title must be between %d and %d characters", minTitleLen, maxTitleLen))
	}
	if len(strings.TrimSpace(in.Content)) < minContentLen {
		problems = append(problems, fmt.Sprintf("content must be at least %d characters", minContentLen))
	}
	if !validCategory(in.Category) {
		problems = append(problems, "category is required and must be a known section")
	}
	if in.ImageURL != "" && !validURL(in.ImageURL) {
		problems = append(problems, "image_url must be a well-formed http(s) URL")
	}
	if in.VideoURL != "" && !validURL(in.VideoURL) {
		problems = append(problems, "video_url must be a well-formed http(s) URL")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Article builds an Article from the input. Identity, timestamps and
// counters are assigned by the store on insert.
func (in *ArticleInput) Article() *Article {
	title := strings.TrimSpace(in.Title)
	return &Article{
		Title:        title,
		TitleLower:   strings.ToLower(title),
		Writer:       strings.TrimSpace(in.Writer),
		Summary:      strings.TrimSpace(in.Summary),
		Content:      in.Content,
		ImageURL:     in.ImageURL,
		VideoURL:     in.VideoURL,
		Category:     in.Category,
		BreakingNews: in.BreakingNews,
		Verified:     in.Verified,
	}
}

func validCategory(slug string) bool {
	for _, c := range Categories {
		if c == slug {
			return true
		}
	}
	return false
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
