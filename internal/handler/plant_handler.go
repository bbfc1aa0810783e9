package handler

import (
	"net/http"

	"seedy/internal/middleware"
	"seedy/internal/service"

	"github.com/gin-gonic/gin"
)

type PlantHandler struct {
	svc *service.PlantService
}

func NewPlantHandler(svc *service.PlantService) *PlantHandler {
	return &PlantHandler{svc: svc}
}

type PlantReq struct {
	ScientificName string   `json:"scientific_name"`
	Family         string   `json:"family"`
	Images         []string `json:"images"`
	CommonNames    []string `json:"common_names"`
}

func (h *PlantHandler) Create(c *gin.Context) {
	var req PlantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	plant, err := h.svc.Create(req.ScientificName, req.Family, req.Images, req.CommonNames)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Plant registered successfully", "plant": plant})
}

func (h *PlantHandler) FirstOrCreate(c *gin.Context) {
	var req PlantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	plant, found, err := h.svc.FirstOrCreate(req.ScientificName, req.Family, req.Images, req.CommonNames)
	if err != nil {
		respondError(c, err)
		return
	}
	if found {
		c.JSON(http.StatusOK, gin.H{
			"message": "A plant with the given scientific name already exists",
			"created": false,
			"plant":   plant,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Plant registered successfully",
		"created": true,
		"plant":   plant,
	})
}

func (h *PlantHandler) List(c *gin.Context) {
	plants, err := h.svc.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plants": plants})
}

type AssociateReq struct {
	PlantID uint64 `json:"plant_id"`
}

func (h *PlantHandler) Associate(c *gin.Context) {
	var req AssociateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	created, err := h.svc.Associate(middleware.UserID(c), req.PlantID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Plant already associated"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Plant associated successfully"})
}

func (h *PlantHandler) Dissociate(c *gin.Context) {
	if err := h.svc.Dissociate(middleware.UserID(c), paramID(c, "plant_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plant dissociated successfully"})
}

func (h *PlantHandler) IsAssociated(c *gin.Context) {
	associated, err := h.svc.IsAssociated(middleware.UserID(c), paramID(c, "plant_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"associated": associated})
}

// GetUserPlants pages when page and limit query parameters are present,
// otherwise returns the full list.
func (h *PlantHandler) GetUserPlants(c *gin.Context) {
	plants, total, err := h.svc.UserPlants(paramID(c, "user_id"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plants": plants, "total": total})
}

type IdentifyReq struct {
	PhotoURL string `json:"photo_url"`
	Lang     string `json:"lang"`
}

// Identify proxies the photo to the identification API and relays its body.
func (h *PlantHandler) Identify(c *gin.Context) {
	var req IdentifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	result, err := h.svc.Identify(c.Request.Context(), req.PhotoURL, req.Lang)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}
