package communityController

import (
	"context"

	. "gamestore/internal/models"
	"gamestore/internal/services"
	"gamestore/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
)

type CommunityController struct {
	catalog *services.CatalogService
	policy  *services.PolicyService
	log     logger.Logger
}

type CommunityControllerInterface interface {
	Posts(ctx context.Context, caller services.Principal) ([]*Post, error)
	CreatePost(ctx context.Context, caller services.Principal, req CreatePostRequest) (*Post, error)
}

type CreatePostRequest struct {
	Content string `json:"content"`
}

func New(service services.Service) CommunityControllerInterface {
	return &CommunityController{
		catalog: service.Catalog,
		policy:  service.Policy,
		log:     logger.New("communityController"),
	}
}

func (c *CommunityController) Posts(ctx context.Context, caller services.Principal) ([]*Post, error) {
	if err := c.policy.AuthorizePrincipal(caller, services.PermPostsRead); err != nil {
		return nil, err
	}
	return c.catalog.Posts(), nil
}

// CreatePost publishes to the community feed under the caller's username.
func (c *CommunityController) CreatePost(
	ctx context.Context,
	caller services.Principal,
	req CreatePostRequest,
) (*Post, error) {
	log := c.log.TraceFromContext(ctx).Function("CreatePost")

	if err := c.policy.AuthorizePrincipal(caller, services.PermPostsWrite); err != nil {
		return nil, err
	}

	content, cleaned := utils.CleanUTF8(req.Content)
	if cleaned {
		log.Warn("Post content contained invalid characters", "author", caller.Username)
	}

	return c.catalog.CreatePost(caller.Username, content)
}
