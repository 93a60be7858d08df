package beliefapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-belief/api/identity"
	"github.com/beka-birhanu/vinom-belief/belief"
	dmn "github.com/beka-birhanu/vinom-belief/domain"
	"github.com/beka-birhanu/vinom-belief/maze"
	"github.com/beka-birhanu/vinom-belief/service"
	"github.com/beka-birhanu/vinom-belief/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BeliefController handles model and filtering requests.
type BeliefController struct {
	tracker i.BeliefTracker
}

// NewBeliefController initializes a BeliefController.
func NewBeliefController(t i.BeliefTracker) (*BeliefController, error) {
	if t == nil {
		return nil, errors.New("belief tracker is required")
	}
	return &BeliefController{tracker: t}, nil
}

// RegisterPublic registers public routes.
func (bc *BeliefController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (bc *BeliefController) RegisterProtected(route *gin.RouterGroup) {
	models := route.Group("/models")
	{
		models.POST("", bc.createModel)
		models.GET("/:ID", bc.model)
		models.POST("/:ID/filter", bc.filter)
		models.POST("/:ID/filter/batch", bc.filterBatch)
	}

	runs := route.Group("/runs")
	{
		runs.GET("/:ID", bc.run)
		runs.GET("/:ID/render", bc.render)
	}
}

func (bc *BeliefController) createModel(ctx *gin.Context) {
	owner, ok := requireUser(ctx)
	if !ok {
		return
	}

	var request CreateModelRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model, err := bc.tracker.CreateModel(ctx.Request.Context(), dmn.ModelConfig{
		OwnerID:  owner,
		Name:     request.Name,
		Passable: request.Passable,
		Rewards:  request.Rewards,
		Config: belief.Config{
			ActionConfusion:      request.ActionConfusion,
			ObservationConfusion: request.ObservationConfusion,
		},
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newModelResponse(model))
}

func (bc *BeliefController) model(ctx *gin.Context) {
	owner, id, ok := requireUserAndID(ctx)
	if !ok {
		return
	}

	model, err := bc.tracker.Model(ctx.Request.Context(), owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newModelResponse(model))
}

func (bc *BeliefController) filter(ctx *gin.Context) {
	owner, modelID, ok := requireUserAndID(ctx)
	if !ok {
		return
	}

	var request FilterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := bc.tracker.Filter(ctx.Request.Context(), owner, modelID, request.toDomain())
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newRunResponse(run))
}

func (bc *BeliefController) filterBatch(ctx *gin.Context) {
	owner, modelID, ok := requireUserAndID(ctx)
	if !ok {
		return
	}

	var request BatchFilterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requests := make([]dmn.FilterRequest, len(request.Requests))
	for idx, r := range request.Requests {
		requests[idx] = r.toDomain()
	}

	runs, err := bc.tracker.FilterBatch(ctx.Request.Context(), owner, modelID, requests)
	if err != nil {
		writeError(ctx, err)
		return
	}

	response := make([]RunResponse, len(runs))
	for idx, r := range runs {
		response[idx] = newRunResponse(r)
	}
	ctx.JSON(http.StatusOK, gin.H{"runs": response})
}

func (bc *BeliefController) run(ctx *gin.Context) {
	owner, id, ok := requireUserAndID(ctx)
	if !ok {
		return
	}

	run, err := bc.tracker.Run(ctx.Request.Context(), owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newRunResponse(run))
}

// render writes one snapshot of a run as a text grid. The final snapshot is the default.
func (bc *BeliefController) render(ctx *gin.Context) {
	owner, id, ok := requireUserAndID(ctx)
	if !ok {
		return
	}

	run, err := bc.tracker.Run(ctx.Request.Context(), owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	step := len(run.Snapshots) - 1
	if raw, set := ctx.GetQuery("step"); set {
		step, err = strconv.Atoi(raw)
		if err != nil || step < 0 || step >= len(run.Snapshots) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "step must be between 0 and " + strconv.Itoa(len(run.Snapshots)-1)})
			return
		}
	}

	ctx.String(http.StatusOK, run.Snapshots[step].String())
}

func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	owner, err := identity.UserID(ctx)
	if err != nil {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return owner, true
}

func requireUserAndID(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	owner, ok := requireUser(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, uuid.Nil, false
	}
	return owner, id, true
}

// writeError maps service errors onto HTTP statuses.
func writeError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, dmn.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, belief.ErrDegenerateEvidence):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, maze.ErrConfig), errors.Is(err, maze.ErrTopology), errors.Is(err, service.ErrBatchTooLarge):
		status = http.StatusBadRequest
	}

	body := gin.H{"error": err.Error()}
	var degenerate *belief.DegenerateEvidenceError
	if errors.As(err, &degenerate) {
		body["step"] = degenerate.Step
	}
	ctx.JSON(status, body)
}
