package editor

import (
	"context"

	"module/postforge/internal/models"
	"module/postforge/internal/repo"

	"github.com/google/uuid"
)

// RepoStore adapts the post repository to the PostStore capability.
type RepoStore struct {
	postRepo *repo.PostRepo
}

func NewRepoStore(postRepo *repo.PostRepo) *RepoStore {
	return &RepoStore{postRepo: postRepo}
}

func (s *RepoStore) List(ctx context.Context, userId string) ([]models.Post, error) {
	return s.postRepo.GetPosts(userId)
}

func (s *RepoStore) Create(ctx context.Context, post models.Post) (models.Post, error) {
	if post.Id == "" {
		post.Id = uuid.NewString()
	}
	if err := s.postRepo.CreatePost(&post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

func (s *RepoStore) Update(ctx context.Context, id string, fields map[string]interface{}) (models.Post, error) {
	updated, err := s.postRepo.UpdatePost(id, fields)
	if err != nil {
		return models.Post{}, err
	}
	return *updated, nil
}

func (s *RepoStore) Delete(ctx context.Context, userId, id string) error {
	return s.postRepo.DeletePost(userId, id)
}
