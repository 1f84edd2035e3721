package posts

import (
	"context"
	"errors"

	"module/postforge/internal/dto"
	"module/postforge/internal/metrics"
	"module/postforge/internal/models"
	"module/postforge/internal/repo"
	"module/postforge/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ContentGenerator produces post text for a rendered prompt.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type PostService struct {
	postRepo  *repo.PostRepo
	generator ContentGenerator
	metrics   *metrics.Metrics
}

func NewPostService(postRepo *repo.PostRepo, generator ContentGenerator, m *metrics.Metrics) *PostService {
	return &PostService{postRepo: postRepo, generator: generator, metrics: m}
}

func (s *PostService) GetPosts(ctx *gin.Context) {
	userId := ctx.Query("user_id")
	if userId == "" {
		utilities.Response(ctx, 400, false, nil, "user_id parameter is required")
		return
	}

	posts, err := s.postRepo.GetPosts(userId)
	if err != nil {
		log.Errorf("fetching posts: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to fetch posts")
		return
	}

	utilities.Response(ctx, 200, true, gin.H{"posts": posts}, "Posts fetched successfully")
}

func (s *PostService) CreatePost(ctx *gin.Context) {
	var request dto.CreatePostRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		utilities.Response(ctx, 400, false, nil, "Invalid request body")
		return
	}
	if request.Topic == "" || request.UserId == "" {
		utilities.Response(ctx, 400, false, nil, "topic and user_id are required")
		return
	}

	post := models.Post{
		Id:             uuid.NewString(),
		UserId:         request.UserId,
		Tone:           request.Tone,
		Topic:          request.Topic,
		Content:        request.Content,
		TargetAudience: request.TargetAudience,
		TargetReaction: request.TargetReaction,
	}
	if err := s.postRepo.CreatePost(&post); err != nil {
		log.Errorf("creating post: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to create post")
		return
	}

	utilities.Response(ctx, 201, true, gin.H{"post": post}, "Post created successfully")
}

func (s *PostService) UpdatePost(ctx *gin.Context) {
	var request dto.UpdatePostRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		utilities.Response(ctx, 400, false, nil, "Invalid request body")
		return
	}
	if request.Id == "" {
		utilities.Response(ctx, 400, false, nil, "id is required")
		return
	}

	// Only supplied fields reach the update; id, user_id and created_at
	// stay as they were.
	fields := map[string]interface{}{}
	if request.Tone != nil {
		fields["tone"] = request.Tone
	}
	if request.Topic != nil {
		fields["topic"] = request.Topic
	}
	if request.Content != nil {
		fields["content"] = request.Content
	}
	if request.TargetAudience != nil {
		fields["target_audience"] = request.TargetAudience
	}
	if request.TargetReaction != nil {
		fields["target_reaction"] = request.TargetReaction
	}

	post, err := s.postRepo.UpdatePost(request.Id, fields)
	if err != nil {
		if errors.Is(err, repo.ErrPostNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			utilities.Response(ctx, 404, false, nil, "Post not found")
			return
		}
		log.Errorf("updating post: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to update post")
		return
	}

	utilities.Response(ctx, 200, true, gin.H{"post": post}, "Post updated successfully")
}

func (s *PostService) DeletePost(ctx *gin.Context) {
	userId := ctx.GetString("user_id")

	postId := ctx.Query("id")
	if postId == "" {
		utilities.Response(ctx, 400, false, nil, "id parameter is required")
		return
	}

	if err := s.postRepo.DeletePost(userId, postId); err != nil {
		if errors.Is(err, repo.ErrPostNotFound) {
			utilities.Response(ctx, 404, false, nil, "Post not found")
			return
		}
		log.Errorf("deleting post: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to delete post")
		return
	}

	utilities.Response(ctx, 200, true, nil, "Post deleted successfully")
}

// GeneratePost forwards the rendered prompt to the completion model and
// returns whatever text came back, including the fallback sentinel when
// the model produced nothing usable.
func (s *PostService) GeneratePost(ctx *gin.Context) {
	var request dto.GeneratePostRequest
	if err := ctx.ShouldBindBodyWithJSON(&request); err != nil {
		utilities.Response(ctx, 400, false, nil, "Invalid request body")
		return
	}
	if request.Prompt == "" {
		utilities.Response(ctx, 400, false, nil, "prompt is required")
		return
	}

	generated, err := s.generator.GenerateContent(ctx.Request.Context(), request.Prompt)
	if err != nil {
		log.Errorf("generating post: %v", err)
		utilities.Response(ctx, 500, false, nil, "Failed to generate LinkedIn post")
		return
	}

	if s.metrics != nil {
		s.metrics.PostsGenerated.Inc()
	}
	utilities.Response(ctx, 200, true, dto.GeneratePostResponse{GeneratedText: generated}, "")
}
