package controller

import (
	"strings"

	"polyrun/internal/executor/service"
	"polyrun/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// ExecutorController handles the executor HTTP endpoints.
type ExecutorController struct {
	executorService *service.ExecutorService
}

// NewExecutorController creates a new ExecutorController.
func NewExecutorController(executorService *service.ExecutorService) *ExecutorController {
	return &ExecutorController{executorService: executorService}
}

// Register mounts the endpoints on group.
func (h *ExecutorController) Register(group *gin.RouterGroup) {
	group.GET("/ping", h.Ping)
	group.GET("/languages", h.Languages)
	group.GET("/languages/:lang/version", h.Version)
	group.GET("/languages/:lang/blacklist", h.Blacklist)
	group.POST("/languages/:lang/fragment", h.Fragment)
	group.POST("/execute", h.Execute)
}

// Ping handles liveness probes.
func (h *ExecutorController) Ping(c *gin.Context) {
	response.Success(c, h.executorService.Ping(c.Request.Context()))
}

// Languages lists the supported languages.
func (h *ExecutorController) Languages(c *gin.Context) {
	response.Success(c, h.executorService.SupportedLanguages(c.Request.Context()))
}

// Version describes a language's toolchain.
func (h *ExecutorController) Version(c *gin.Context) {
	info, err := h.executorService.VersionInformation(c.Request.Context(), languageParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// Blacklist lists a language's disallowed tokens.
func (h *ExecutorController) Blacklist(c *gin.Context) {
	resp, err := h.executorService.Blacklist(c.Request.Context(), languageParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Fragment renders a skeleton for the posted functions.
func (h *ExecutorController) Fragment(c *gin.Context) {
	var req FragmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request parameters")
		return
	}

	resp, err := h.executorService.Fragment(c.Request.Context(), service.FragmentRequest{
		Language:  languageParam(c),
		Functions: req.Functions,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Execute runs a fragment against test cases.
func (h *ExecutorController) Execute(c *gin.Context) {
	var req service.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request parameters")
		return
	}

	resp, err := h.executorService.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// FragmentRequest defines the fragment payload; the language comes from the path.
type FragmentRequest struct {
	Functions []service.FunctionDef `json:"functions" binding:"required"`
}

func languageParam(c *gin.Context) string {
	return strings.ToLower(strings.TrimSpace(c.Param("lang")))
}
