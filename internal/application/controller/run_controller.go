package controller

import (
	"context"
	"net/http"

	"redfin-etl/internal/domain/entity"
	"redfin-etl/internal/domain/model"
	"redfin-etl/internal/domain/usecase/catalog"
	"redfin-etl/internal/domain/usecase/pipeline"
	"redfin-etl/pkg/log"
	"redfin-etl/pkg/util/numberutils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type RunController struct {
	api             *echo.Group
	catalogUseCase  catalog.UseCase
	pipelineUseCase pipeline.UseCase
}

func NewRunController(api *echo.Group, catalogUseCase catalog.UseCase, pipelineUseCase pipeline.UseCase) *RunController {
	return &RunController{
		api:             api,
		catalogUseCase:  catalogUseCase,
		pipelineUseCase: pipelineUseCase,
	}
}

// InitRunRoutes initializes pipeline run routes
func (controller *RunController) InitRunRoutes() {
	controller.api.GET("/runs", controller.FindAllRuns)
	controller.api.GET("/runs/latest", controller.FindLatestRun)
	controller.api.GET("/runs/:id", controller.FindRunByID)
	controller.api.POST("/runs", controller.TriggerRun)
}

// FindAllRuns godoc
// @Summary Get all pipeline runs
// @Description Retrieve the recorded pipeline runs, newest first, with pagination
// @Tags runs
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} model.Page[entity.PipelineRun] "Paginated list of runs"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /runs [get]
func (controller *RunController) FindAllRuns(c echo.Context) error {
	var page int = numberutils.ToIntWithDefault(c.QueryParam("page"), 0)
	var size int = numberutils.ToIntWithDefault(c.QueryParam("size"), 10)

	runs, err := controller.catalogUseCase.FindAllRuns(page, size)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, runs)
}

// FindLatestRun godoc
// @Summary Get the latest pipeline run
// @Description Retrieve the most recently started pipeline run
// @Tags runs
// @Accept json
// @Produce json
// @Success 200 {object} entity.PipelineRun "Latest run"
// @Failure 404 {object} map[string]string "No runs recorded yet"
// @Router /runs/latest [get]
func (controller *RunController) FindLatestRun(c echo.Context) error {
	run, err := controller.catalogUseCase.FindLatestRun()
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, run)
}

// FindRunByID godoc
// @Summary Get a pipeline run by id
// @Description Find a specific pipeline run by its id
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} entity.PipelineRun "Run data"
// @Failure 404 {object} map[string]string "Run not found"
// @Router /runs/{id} [get]
func (controller *RunController) FindRunByID(c echo.Context) error {
	id := c.Param("id")

	run, err := controller.catalogUseCase.FindRunByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, run)
}

// TriggerRun godoc
// @Summary Trigger a pipeline run
// @Description Start a manual pipeline run, optionally forcing through an unchanged snapshot
// @Tags runs
// @Accept json
// @Produce json
// @Param trigger body model.TriggerRunDTO false "Trigger options"
// @Success 202 {object} map[string]string "Pipeline run scheduled successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /runs [post]
func (controller *RunController) TriggerRun(c echo.Context) error {
	var dto model.TriggerRunDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	requestID := uuid.NewString()
	log.Info("manual pipeline run accepted",
		zap.String("request_id", requestID),
		zap.Bool("force", dto.Force))

	// Execute in a separate goroutine to avoid blocking the request
	go func() {
		controller.pipelineUseCase.Execute(context.Background(), entity.RunTriggerManual, dto.Force)
	}()

	return c.JSON(http.StatusAccepted, map[string]string{
		"message":   "Pipeline run scheduled successfully",
		"requestId": requestID,
	})
}
