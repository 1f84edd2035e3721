package repo

import (
	"fmt"

	"module/postforge/internal/models"

	"gorm.io/gorm"
)

var ErrPostNotFound = fmt.Errorf("post not found")

type PostRepo struct {
	DB *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{DB: db}
}

func (r *PostRepo) CreatePost(post *models.Post) error {
	return r.DB.Create(post).Error
}

// GetPosts returns every post owned by the user, newest first. An empty
// slice is a valid result.
func (r *PostRepo) GetPosts(userId string) ([]models.Post, error) {
	posts := []models.Post{}
	err := r.DB.Where("user_id = ?", userId).Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepo) GetPost(postId string) (*models.Post, error) {
	var post models.Post
	if err := r.DB.Where("id = ?", postId).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies only the supplied fields to the matching row and
// returns the updated post. Id, user_id and created_at never change.
func (r *PostRepo) UpdatePost(postId string, fields map[string]interface{}) (*models.Post, error) {
	if len(fields) > 0 {
		result := r.DB.Model(&models.Post{}).Where("id = ?", postId).Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrPostNotFound
		}
	}
	return r.GetPost(postId)
}

// DeletePost removes the row scoped by owner. Deleting a post that does
// not exist, or that belongs to someone else, is reported as not found.
func (r *PostRepo) DeletePost(userId, postId string) error {
	result := r.DB.Where("id = ? AND user_id = ?", postId, userId).Delete(&models.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}
