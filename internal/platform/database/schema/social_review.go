// Copyright (c) 2026 MangaList. All rights reserved.

package schema

// SocialReviewTable represents the 'social.review' table
type SocialReviewTable struct {
	Table     string
	ID        string
	UserID    string
	MangaID   string
	Content   string
	Rating    string
	Likes     string
	CreatedAt string
}

// SocialReview is the schema definition for social.review
var SocialReview = SocialReviewTable{
	Table:     "social.review",
	ID:        "id",
	UserID:    "userid",
	MangaID:   "mangaid",
	Content:   "content",
	Rating:    "rating",
	Likes:     "likes",
	CreatedAt: "createdat",
}

func (t SocialReviewTable) Columns() []string {
	return []string{t.ID, t.UserID, t.MangaID, t.Content, t.Rating, t.Likes, t.CreatedAt}
}

// SocialReviewLikeTable represents the 'social.reviewlike' table
type SocialReviewLikeTable struct {
	Table    string
	UserID   string
	ReviewID string
}

// SocialReviewLike is the schema definition for social.reviewlike
var SocialReviewLike = SocialReviewLikeTable{
	Table:    "social.reviewlike",
	UserID:   "userid",
	ReviewID: "reviewid",
}
