package identity

import (
	"errors"
	"net/http"

	dmn "github.com/beka-birhanu/vinom-belief/domain"
	"github.com/beka-birhanu/vinom-belief/service/i"
	"github.com/gin-gonic/gin"
)

// IdentityServer exposes account creation and token issuance.
// Every model and run route requires the token it hands out.
type IdentityServer struct {
	authService i.Authenticator
}

// NewIdentityServer creates an IdentityServer backed by a.
func NewIdentityServer(a i.Authenticator) *IdentityServer {
	return &IdentityServer{
		authService: a,
	}
}

// RegisterPublic mounts /auth/register and /auth/login.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/register", c.registerUser)
		auth.POST("/login", c.login)
	}
}

// RegisterProtected mounts nothing; identity routes are all public.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {}

// registerUser creates an account. A taken username is a conflict;
// a weak password or malformed username is a bad request.
func (c *IdentityServer) registerUser(ctx *gin.Context) {
	var request AuthRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch err := c.authService.Register(request.Username, request.Password); {
	case errors.Is(err, dmn.ErrUsernameConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// login exchanges credentials for a bearer token carrying the user ID,
// which scopes every model and run the caller can see.
func (c *IdentityServer) login(ctx *gin.Context) {
	var request AuthRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := c.authService.SignIn(request.Username, request.Password)
	switch {
	case errors.Is(err, dmn.ErrInvalidCredential):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	case err != nil:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &AuthResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Token:    token,
	})
}
